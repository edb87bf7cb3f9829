package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/application/services/volume"
	"github.com/vsinha/takeoff/pkg/domain/entities"
)

func f(d decimal.Decimal) float64 {
	return d.InexactFloat64()
}

func floats(ds []decimal.Decimal) []float64 {
	out := make([]float64, len(ds))
	for i, d := range ds {
		out[i] = f(d)
	}
	return out
}

// FloorVolumeResponse is one floor of a custom item
type FloorVolumeResponse struct {
	FloorID string  `json:"floor_id"`
	Volume  float64 `json:"volume"`
}

// ItemVolumeResponse is the measured volume of one work item
type ItemVolumeResponse struct {
	WorkItemID  string                `json:"work_item_id"`
	ComputeType string                `json:"compute_type"`
	Volume      float64               `json:"volume"`
	Floors      []FloorVolumeResponse `json:"floors,omitempty"`
}

// VolumeResponse lists item volumes and their grand total
type VolumeResponse struct {
	Items      []ItemVolumeResponse `json:"items"`
	GrandTotal float64              `json:"grand_total"`
}

// NewFloorVolumes converts floor totals
func NewFloorVolumes(floors []volume.FloorTotal) []FloorVolumeResponse {
	if len(floors) == 0 {
		return nil
	}
	out := make([]FloorVolumeResponse, len(floors))
	for i, fl := range floors {
		out[i] = FloorVolumeResponse{FloorID: string(fl.FloorID), Volume: f(fl.Volume)}
	}
	return out
}

// RebarRowResponse is a rebar row with its computed weight
type RebarRowResponse struct {
	WorkItemID        string  `json:"work_item_id"`
	RebarMasterlistID string  `json:"rebar_masterlist_id"`
	DiameterMM        float64 `json:"diameter_mm"`
	LengthM           float64 `json:"length_m"`
	WeightPerMeter    float64 `json:"weight_per_meter"`
	Quantity          float64 `json:"quantity"`
	Location          string  `json:"location,omitempty"`
	TotalWeight       float64 `json:"total_weight"`
}

// RebarUsageResponse is the usage of one rebar type
type RebarUsageResponse struct {
	RebarMasterlistID string  `json:"rebar_masterlist_id"`
	TotalQuantity     float64 `json:"total_quantity"`
	TotalWeight       float64 `json:"total_weight"`
}

// RebarResponse reports row weights and their aggregates
type RebarResponse struct {
	Rows         []RebarRowResponse   `json:"rows"`
	ByMasterlist []RebarUsageResponse `json:"by_masterlist"`
	ByWorkItem   map[string]float64   `json:"by_work_item"`
}

// NewRebarRow converts a rebar row
func NewRebarRow(row entities.RebarRow) RebarRowResponse {
	return RebarRowResponse{
		WorkItemID:        string(row.WorkItemID),
		RebarMasterlistID: string(row.RebarID),
		DiameterMM:        f(row.DiameterMM),
		LengthM:           f(row.LengthM),
		WeightPerMeter:    f(row.WeightPerMeter),
		Quantity:          f(row.Quantity),
		Location:          row.Location,
		TotalWeight:       f(row.TotalWeight),
	}
}

// NewRebarUsage converts usage lines
func NewRebarUsage(usage []entities.RebarUsage) []RebarUsageResponse {
	out := make([]RebarUsageResponse, len(usage))
	for i, u := range usage {
		out[i] = RebarUsageResponse{
			RebarMasterlistID: string(u.RebarID),
			TotalQuantity:     f(u.TotalQuantity),
			TotalWeight:       f(u.TotalWeight),
		}
	}
	return out
}

// MaterialLineResponse is a priced material line
type MaterialLineResponse struct {
	ProposalID       string  `json:"proposal_id"`
	WorkItemID       string  `json:"work_item_id"`
	ParentWorkItemID string  `json:"parent_work_item_id"`
	ResourceID       string  `json:"resource_id"`
	BaseQuantity     float64 `json:"base_quantity"`
	Multiplier       float64 `json:"multiplier"`
	UnitCost         float64 `json:"unit_cost"`
	ActualQty        float64 `json:"actual_qty"`
	TotalCost        float64 `json:"total_cost"`
}

// ParentTotalResponse is the rolled-up cost of one parent work item
type ParentTotalResponse struct {
	ProposalID       string  `json:"proposal_id"`
	ParentWorkItemID string  `json:"parent_work_item_id"`
	LineCount        int     `json:"line_count"`
	Total            float64 `json:"total"`
}

// CostLinesResponse lists priced lines and parent totals
type CostLinesResponse struct {
	Lines        []MaterialLineResponse `json:"lines"`
	ParentTotals []ParentTotalResponse  `json:"parent_totals"`
}

// NewMaterialLines converts priced lines
func NewMaterialLines(lines []entities.MaterialLine) []MaterialLineResponse {
	out := make([]MaterialLineResponse, len(lines))
	for i, l := range lines {
		out[i] = MaterialLineResponse{
			ProposalID:       string(l.ProposalID),
			WorkItemID:       string(l.WorkItemID),
			ParentWorkItemID: string(l.ParentWorkItemID),
			ResourceID:       string(l.ResourceID),
			BaseQuantity:     f(l.BaseQuantity),
			Multiplier:       f(l.Multiplier),
			UnitCost:         f(l.UnitCost),
			ActualQty:        f(l.ActualQty),
			TotalCost:        f(l.TotalCost),
		}
	}
	return out
}

// NewParentTotals converts parent totals
func NewParentTotals(totals []entities.ParentTotal) []ParentTotalResponse {
	out := make([]ParentTotalResponse, len(totals))
	for i, pt := range totals {
		out[i] = ParentTotalResponse{
			ProposalID:       string(pt.Key.ProposalID),
			ParentWorkItemID: string(pt.Key.ParentWorkItemID),
			LineCount:        pt.LineCount,
			Total:            f(pt.Total),
		}
	}
	return out
}

// ItemQuantityResponse is the base quantity of one work item
type ItemQuantityResponse struct {
	WorkItemID  string                `json:"work_item_id"`
	ParentID    string                `json:"parent_id,omitempty"`
	Description string                `json:"description,omitempty"`
	Unit        string                `json:"unit,omitempty"`
	ComputeType string                `json:"compute_type"`
	Quantity    float64               `json:"quantity"`
	Floors      []FloorVolumeResponse `json:"floors,omitempty"`
}

// EstimateResponse is the wire form of an EstimateResult
type EstimateResponse struct {
	RunID         string                 `json:"run_id"`
	ProposalID    string                 `json:"proposal_id"`
	Quantities    []ItemQuantityResponse `json:"quantities"`
	Lines         []MaterialLineResponse `json:"lines"`
	ParentTotals  []ParentTotalResponse  `json:"parent_totals"`
	ProposalTotal float64                `json:"proposal_total"`
	RebarUsage    []RebarUsageResponse   `json:"rebar_usage"`
	Warnings      []string               `json:"warnings,omitempty"`
	ComputedAt    time.Time              `json:"computed_at"`
}

// NewEstimateResponse converts an estimate result
func NewEstimateResponse(r *EstimateResult) EstimateResponse {
	quantities := make([]ItemQuantityResponse, len(r.Quantities))
	for i, q := range r.Quantities {
		quantities[i] = ItemQuantityResponse{
			WorkItemID:  string(q.WorkItemID),
			ParentID:    string(q.ParentID),
			Description: q.Description,
			Unit:        q.Unit,
			ComputeType: q.ComputeType.String(),
			Quantity:    f(q.Quantity),
			Floors:      NewFloorVolumes(q.Floors),
		}
	}

	return EstimateResponse{
		RunID:         r.RunID,
		ProposalID:    string(r.ProposalID),
		Quantities:    quantities,
		Lines:         NewMaterialLines(r.Lines),
		ParentTotals:  NewParentTotals(r.ParentTotals),
		ProposalTotal: f(r.ProposalTotal),
		RebarUsage:    NewRebarUsage(r.RebarUsage),
		Warnings:      r.Warnings,
		ComputedAt:    r.ComputedAt,
	}
}

// BatchEstimateResponse holds estimates in request order
type BatchEstimateResponse struct {
	Estimates []EstimateResponse `json:"estimates"`
}

// MonthResponse is a timeline month header
type MonthResponse struct {
	Label string `json:"label"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Weeks []int  `json:"weeks"`
}

// WeekResponse is a timeline week column
type WeekResponse struct {
	Number     int    `json:"number"`
	Label      string `json:"label"`
	MonthIndex int    `json:"month_index"`
}

// ScheduleRowResponse is one task row of the schedule
type ScheduleRowResponse struct {
	ItemNo         string  `json:"item_no"`
	Description    string  `json:"description,omitempty"`
	Amount         float64 `json:"amount"`
	StartWeek      int     `json:"start_week"`
	FinishWeek     int     `json:"finish_week"`
	Duration       float64 `json:"duration"`
	Placeholder    bool    `json:"placeholder"`
	WeightPercent  float64 `json:"weight_percent"`
	PerWeekPercent float64 `json:"per_week_percent"`
	Weeks          []int   `json:"weeks"`
}

// ScheduleResponse is the wire form of a Schedule
type ScheduleResponse struct {
	Months           []MonthResponse       `json:"months"`
	Weeks            []WeekResponse        `json:"weeks"`
	Rows             []ScheduleRowResponse `json:"rows"`
	TotalAmount      float64               `json:"total_amount"`
	WeekTotals       []float64             `json:"week_totals"`
	CumulativeTotals []float64             `json:"cumulative_totals"`
	GrandTotal       float64               `json:"grand_total"`
	Unscheduled      []string              `json:"unscheduled,omitempty"`
}

// NewScheduleResponse converts a schedule
func NewScheduleResponse(s entities.Schedule) ScheduleResponse {
	resp := ScheduleResponse{
		Months:           make([]MonthResponse, len(s.Timeline.Months)),
		Weeks:            make([]WeekResponse, len(s.Timeline.Weeks)),
		Rows:             make([]ScheduleRowResponse, len(s.Rows)),
		TotalAmount:      f(s.TotalAmount),
		WeekTotals:       floats(s.WeekTotals),
		CumulativeTotals: floats(s.CumulativeTotals),
		GrandTotal:       f(s.GrandTotal),
		Unscheduled:      s.Unscheduled,
	}
	for i, m := range s.Timeline.Months {
		resp.Months[i] = MonthResponse{Label: m.Label, Year: m.Year, Month: int(m.Month), Weeks: m.Weeks}
	}
	for i, w := range s.Timeline.Weeks {
		resp.Weeks[i] = WeekResponse{Number: w.Number, Label: w.Label, MonthIndex: w.MonthIndex}
	}
	for i, row := range s.Rows {
		weeks := row.Weeks
		if weeks == nil {
			weeks = []int{}
		}
		resp.Rows[i] = ScheduleRowResponse{
			ItemNo:         row.Task.ItemNo,
			Description:    row.Task.Description,
			Amount:         f(row.Task.Amount),
			StartWeek:      row.Task.StartWeek,
			FinishWeek:     row.Task.FinishWeek,
			Duration:       f(row.Task.Duration),
			Placeholder:    row.Placeholder,
			WeightPercent:  f(row.WeightPercent),
			PerWeekPercent: f(row.PerWeekPercent),
			Weeks:          weeks,
		}
	}
	return resp
}

// RebarSpecResponse is a masterlist catalog entry
type RebarSpecResponse struct {
	RebarMasterlistID string  `json:"rebar_masterlist_id"`
	DiameterMM        float64 `json:"diameter_mm"`
	LengthM           float64 `json:"length_m"`
	WeightPerMeter    float64 `json:"weight_per_meter"`
}

// NewRebarSpecs converts masterlist entries
func NewRebarSpecs(specs []*entities.RebarSpec) []RebarSpecResponse {
	out := make([]RebarSpecResponse, len(specs))
	for i, s := range specs {
		out[i] = RebarSpecResponse{
			RebarMasterlistID: string(s.ID),
			DiameterMM:        f(s.DiameterMM),
			LengthM:           f(s.LengthM),
			WeightPerMeter:    f(s.WeightPerMeter),
		}
	}
	return out
}

// ResourceResponse is a resource catalog entry
type ResourceResponse struct {
	ResourceID  string  `json:"resource_id"`
	Description string  `json:"description,omitempty"`
	Unit        string  `json:"unit,omitempty"`
	UnitCost    float64 `json:"unit_cost"`
}

// NewResources converts catalog entries
func NewResources(resources []*entities.Resource) []ResourceResponse {
	out := make([]ResourceResponse, len(resources))
	for i, r := range resources {
		out[i] = ResourceResponse{
			ResourceID:  string(r.ID),
			Description: r.Description,
			Unit:        r.Unit,
			UnitCost:    f(r.UnitCost),
		}
	}
	return out
}
