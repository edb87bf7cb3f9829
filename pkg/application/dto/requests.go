package dto

import (
	"fmt"
	"strings"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

// RebarLookup resolves a masterlist id to its catalog entry
type RebarLookup func(id entities.RebarID) (*entities.RebarSpec, error)

// DimensionRowRequest is a raw dimension row. FloorID is only read for custom items.
type DimensionRowRequest struct {
	FloorID string        `json:"floor_id,omitempty"`
	Label   string        `json:"label,omitempty"`
	Length  numeric.Loose `json:"length"`
	Width   numeric.Loose `json:"width"`
	Depth   numeric.Loose `json:"depth"`
	Count   numeric.Loose `json:"count"`
}

// RebarRowRequest is a raw rebar row. When weight_per_meter is missing the
// masterlist entry supplies diameter, length and weight.
type RebarRowRequest struct {
	WorkItemID        string        `json:"work_item_id,omitempty"`
	RebarMasterlistID string        `json:"rebar_masterlist_id"`
	DiameterMM        numeric.Loose `json:"diameter_mm"`
	LengthM           numeric.Loose `json:"length_m"`
	WeightPerMeter    numeric.Loose `json:"weight_per_meter"`
	Quantity          numeric.Loose `json:"quantity"`
	Location          string        `json:"location,omitempty"`
}

// WorkItemRequest is a raw work item with its measurements
type WorkItemRequest struct {
	ID          string                `json:"work_item_id"`
	ParentID    string                `json:"parent_id,omitempty"`
	ProposalID  string                `json:"proposal_id"`
	Description string                `json:"description,omitempty"`
	Unit        string                `json:"unit,omitempty"`
	ComputeType string                `json:"compute_type,omitempty"`
	Dimensions  []DimensionRowRequest `json:"dimensions,omitempty"`
	Rebar       []RebarRowRequest     `json:"rebar,omitempty"`
}

// MaterialSelectionRequest attaches a resource to a work item
type MaterialSelectionRequest struct {
	WorkItemID string        `json:"work_item_id"`
	ResourceID string        `json:"resource_id"`
	Multiplier numeric.Loose `json:"multiplier"`
	UnitCost   numeric.Loose `json:"unit_cost"`
}

// VolumeRequest asks for the volumes of simple and custom work items
type VolumeRequest struct {
	Items []WorkItemRequest `json:"items"`
}

// RebarRequest asks for rebar weights and usage
type RebarRequest struct {
	Rows []RebarRowRequest `json:"rows"`
}

// CostLineRequest is a material line whose base quantity is already known
type CostLineRequest struct {
	ProposalID       string        `json:"proposal_id"`
	WorkItemID       string        `json:"work_item_id"`
	ParentWorkItemID string        `json:"parent_work_item_id"`
	ResourceID       string        `json:"resource_id"`
	BaseQuantity     numeric.Loose `json:"base_quantity"`
	Multiplier       numeric.Loose `json:"multiplier"`
	UnitCost         numeric.Loose `json:"unit_cost"`
}

// CostLinesRequest asks for priced lines and their parent totals
type CostLinesRequest struct {
	Lines []CostLineRequest `json:"lines"`
}

// EstimateRequest asks for a full proposal estimate
type EstimateRequest struct {
	ProposalID string                     `json:"proposal_id"`
	WorkItems  []WorkItemRequest          `json:"work_items"`
	Materials  []MaterialSelectionRequest `json:"materials"`
}

// BatchEstimateRequest asks for several proposal estimates at once
type BatchEstimateRequest struct {
	Proposals []EstimateRequest `json:"proposals"`
}

// GanttTaskRequest is a raw schedule task in either entry mode
type GanttTaskRequest struct {
	ItemNo      string        `json:"item_no"`
	Description string        `json:"description,omitempty"`
	Amount      numeric.Loose `json:"amount"`
	StartWeek   numeric.Loose `json:"start_week"`
	FinishWeek  numeric.Loose `json:"finish_week"`
	Duration    numeric.Loose `json:"duration"`
	Quantity    numeric.Loose `json:"quantity"`
	Rate        numeric.Loose `json:"rate"`
}

// ScheduleRequest asks for a timeline and weekly allocation
type ScheduleRequest struct {
	StartDate string             `json:"start_date"`
	EndDate   string             `json:"end_date"`
	Tasks     []GanttTaskRequest `json:"tasks"`
}

// ToDimensionRow coerces the row
func (r DimensionRowRequest) ToDimensionRow() entities.DimensionRow {
	return entities.NewDimensionRow(r.Label, r.Length, r.Width, r.Depth, r.Count)
}

// ToRebarRow builds a row from inline values or, failing that, the masterlist
func (r RebarRowRequest) ToRebarRow(workItemID entities.WorkItemID, lookup RebarLookup) (entities.RebarRow, error) {
	if workItemID == "" {
		workItemID = entities.WorkItemID(strings.TrimSpace(r.WorkItemID))
	}
	id := entities.RebarID(strings.TrimSpace(r.RebarMasterlistID))

	if r.WeightPerMeter.Valid {
		spec := entities.RebarSpec{
			ID:             id,
			DiameterMM:     r.DiameterMM.OrZero(),
			LengthM:        r.LengthM.OrZero(),
			WeightPerMeter: r.WeightPerMeter.OrZero(),
		}
		return entities.NewRebarRow(workItemID, spec, r.Quantity, r.Location), nil
	}

	if lookup == nil {
		return entities.RebarRow{}, fmt.Errorf("rebar row %s has no weight_per_meter", id)
	}
	spec, err := lookup(id)
	if err != nil {
		return entities.RebarRow{}, fmt.Errorf("rebar row for %s: %w", workItemID, err)
	}
	return entities.NewRebarRow(workItemID, *spec, r.Quantity, r.Location), nil
}

// ToTakeoff parses the compute type and builds the matching takeoff. A blank
// compute type yields nil, a grouping item.
func (r WorkItemRequest) ToTakeoff(lookup RebarLookup) (entities.Takeoff, error) {
	id := entities.WorkItemID(strings.TrimSpace(r.ID))
	if strings.TrimSpace(r.ComputeType) == "" {
		return nil, nil
	}

	kind, err := entities.ParseComputeType(r.ComputeType)
	if err != nil {
		return nil, fmt.Errorf("work item %s: %w", id, err)
	}

	switch kind {
	case entities.Custom:
		rows := make([]entities.FloorDimensionRow, 0, len(r.Dimensions))
		for _, d := range r.Dimensions {
			rows = append(rows, entities.FloorDimensionRow{
				FloorID:      entities.FloorID(strings.TrimSpace(d.FloorID)),
				DimensionRow: d.ToDimensionRow(),
			})
		}
		return entities.CustomTakeoff{Rows: rows}, nil
	case entities.Rebar:
		rows := make([]entities.RebarRow, 0, len(r.Rebar))
		for _, rr := range r.Rebar {
			row, err := rr.ToRebarRow(id, lookup)
			if err != nil {
				return nil, err
			}
			rows = append(rows, row)
		}
		return entities.RebarTakeoff{Rows: rows}, nil
	default:
		rows := make([]entities.DimensionRow, 0, len(r.Dimensions))
		for _, d := range r.Dimensions {
			rows = append(rows, d.ToDimensionRow())
		}
		return entities.SimpleTakeoff{Rows: rows}, nil
	}
}

// ToWorkItem builds a validated work item with its takeoff
func (r WorkItemRequest) ToWorkItem(lookup RebarLookup) (*entities.WorkItem, error) {
	takeoff, err := r.ToTakeoff(lookup)
	if err != nil {
		return nil, err
	}

	return entities.NewWorkItem(
		entities.WorkItemID(strings.TrimSpace(r.ID)),
		entities.WorkItemID(strings.TrimSpace(r.ParentID)),
		entities.ProposalID(strings.TrimSpace(r.ProposalID)),
		r.Description,
		r.Unit,
		takeoff,
	)
}

// ToMaterialSelection coerces the selection
func (r MaterialSelectionRequest) ToMaterialSelection() entities.MaterialSelection {
	return entities.NewMaterialSelection(
		entities.WorkItemID(strings.TrimSpace(r.WorkItemID)),
		entities.ResourceID(strings.TrimSpace(r.ResourceID)),
		r.Multiplier,
		r.UnitCost,
	)
}

// ToGanttTaskInput copies the raw task
func (r GanttTaskRequest) ToGanttTaskInput() entities.GanttTaskInput {
	return entities.GanttTaskInput{
		ItemNo:      strings.TrimSpace(r.ItemNo),
		Description: r.Description,
		Amount:      r.Amount,
		StartWeek:   r.StartWeek,
		FinishWeek:  r.FinishWeek,
		Duration:    r.Duration,
		Quantity:    r.Quantity,
		Rate:        r.Rate,
	}
}

// ToWorkItems converts every item of an estimate request. Items with a blank
// proposal id inherit the request's.
func (r EstimateRequest) ToWorkItems(lookup RebarLookup) ([]entities.WorkItem, error) {
	items := make([]entities.WorkItem, 0, len(r.WorkItems))
	for _, wr := range r.WorkItems {
		if strings.TrimSpace(wr.ProposalID) == "" {
			wr.ProposalID = r.ProposalID
		}
		item, err := wr.ToWorkItem(lookup)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Selections converts every material selection
func (r EstimateRequest) Selections() []entities.MaterialSelection {
	selections := make([]entities.MaterialSelection, 0, len(r.Materials))
	for _, m := range r.Materials {
		selections = append(selections, m.ToMaterialSelection())
	}
	return selections
}
