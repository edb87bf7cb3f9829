package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/application/dto"
	"github.com/vsinha/takeoff/pkg/application/services/costing"
	"github.com/vsinha/takeoff/pkg/application/services/gantt"
	"github.com/vsinha/takeoff/pkg/application/services/rebar"
	"github.com/vsinha/takeoff/pkg/application/services/volume"
	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/repositories"
	"github.com/vsinha/takeoff/pkg/interfaces/httpapi/response"
)

// CalculationHandler exposes the stateless calculators
type CalculationHandler struct {
	masterlist repositories.RebarMasterlistRepository
}

func NewCalculationHandler(masterlist repositories.RebarMasterlistRepository) *CalculationHandler {
	return &CalculationHandler{masterlist: masterlist}
}

func (h *CalculationHandler) lookup() dto.RebarLookup {
	if h.masterlist == nil {
		return nil
	}
	return h.masterlist.GetSpec
}

// Volumes computes per-item volumes, per-floor breakdowns and the grand total
func (h *CalculationHandler) Volumes(c *gin.Context) {
	var req dto.VolumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidJSON, err)
		return
	}

	resp := dto.VolumeResponse{Items: make([]dto.ItemVolumeResponse, 0, len(req.Items))}
	grand := decimal.Zero
	for _, item := range req.Items {
		takeoff, err := item.ToTakeoff(nil)
		if err != nil {
			respondBoundaryError(c, err)
			return
		}
		total, ok := volume.TakeoffVolume(takeoff)
		if !ok {
			response.RespondError(c, http.StatusBadRequest, response.CodeInvalidInput,
				fmt.Errorf("work item %s: volumes apply to simple and custom items only", item.ID))
			return
		}

		iv := dto.ItemVolumeResponse{
			WorkItemID:  item.ID,
			ComputeType: takeoff.ComputeType().String(),
			Volume:      total.InexactFloat64(),
		}
		if custom, isCustom := takeoff.(entities.CustomTakeoff); isCustom {
			iv.Floors = dto.NewFloorVolumes(volume.SortedFloorTotals(custom.Rows))
		}
		resp.Items = append(resp.Items, iv)
		grand = grand.Add(total)
	}
	resp.GrandTotal = grand.InexactFloat64()

	response.RespondOK(c, resp)
}

// Rebar computes row weights with by-masterlist and by-work-item aggregates
func (h *CalculationHandler) Rebar(c *gin.Context) {
	var req dto.RebarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidJSON, err)
		return
	}

	rows := make([]entities.RebarRow, 0, len(req.Rows))
	for _, r := range req.Rows {
		row, err := r.ToRebarRow("", h.lookup())
		if err != nil {
			respondBoundaryError(c, err)
			return
		}
		rows = append(rows, row)
	}

	resp := dto.RebarResponse{
		Rows:         make([]dto.RebarRowResponse, len(rows)),
		ByMasterlist: dto.NewRebarUsage(rebar.SortedUsage(rebar.AggregateByMasterlist(rows))),
		ByWorkItem:   make(map[string]float64),
	}
	for i, row := range rows {
		resp.Rows[i] = dto.NewRebarRow(row)
	}
	for id, w := range rebar.AggregateByWorkItem(rows) {
		resp.ByWorkItem[string(id)] = w.InexactFloat64()
	}

	response.RespondOK(c, resp)
}

// CostLines prices lines whose base quantity is known and rolls them up
func (h *CalculationHandler) CostLines(c *gin.Context) {
	var req dto.CostLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidJSON, err)
		return
	}

	lines := make([]entities.MaterialLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		base, multiplier, unitCost := l.BaseQuantity.OrZero(), l.Multiplier.OrZero(), l.UnitCost.OrZero()
		cost := costing.ComputeLine(base, multiplier, unitCost)

		parent := entities.WorkItemID(l.ParentWorkItemID)
		if parent == "" {
			parent = entities.WorkItemID(l.WorkItemID)
		}
		lines = append(lines, entities.MaterialLine{
			ProposalID:       entities.ProposalID(l.ProposalID),
			WorkItemID:       entities.WorkItemID(l.WorkItemID),
			ParentWorkItemID: parent,
			ResourceID:       entities.ResourceID(l.ResourceID),
			BaseQuantity:     base,
			Multiplier:       multiplier,
			UnitCost:         unitCost,
			ActualQty:        cost.ActualQty,
			TotalCost:        cost.TotalCost,
		})
	}

	response.RespondOK(c, dto.CostLinesResponse{
		Lines:        dto.NewMaterialLines(lines),
		ParentTotals: dto.NewParentTotals(costing.SortedParentTotals(lines)),
	})
}

// Schedule builds the timeline and spreads task amounts across its weeks
func (h *CalculationHandler) Schedule(c *gin.Context) {
	var req dto.ScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidJSON, err)
		return
	}

	start, err := gantt.ParseDate(req.StartDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidDate, fmt.Errorf("start_date: %w", err))
		return
	}
	end, err := gantt.ParseDate(req.EndDate)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidDate, fmt.Errorf("end_date: %w", err))
		return
	}

	inputs := make([]entities.GanttTaskInput, len(req.Tasks))
	for i, t := range req.Tasks {
		inputs[i] = t.ToGanttTaskInput()
	}

	schedule := gantt.BuildSchedule(gantt.ResolveTasks(inputs), gantt.BuildTimeline(start, end))
	response.RespondOK(c, dto.NewScheduleResponse(schedule))
}

// respondBoundaryError maps input conversion failures to 4xx responses
func respondBoundaryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		response.RespondError(c, http.StatusUnprocessableEntity, response.CodeNotFound, err)
	default:
		response.RespondError(c, http.StatusBadRequest, response.CodeInvalidInput, err)
	}
}
