package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/application/services/volume"
	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// EstimateResult contains the complete output of a proposal estimate run
type EstimateResult struct {
	RunID         string
	ProposalID    entities.ProposalID
	Quantities    []ItemQuantity
	Lines         []entities.MaterialLine
	ParentTotals  []entities.ParentTotal
	ProposalTotal decimal.Decimal
	RebarUsage    []entities.RebarUsage
	Warnings      []string
	ComputedAt    time.Time
}

// ItemQuantity is the measured base quantity of one work item
type ItemQuantity struct {
	WorkItemID  entities.WorkItemID
	ParentID    entities.WorkItemID
	Description string
	Unit        string
	ComputeType entities.ComputeType
	Quantity    decimal.Decimal
	Floors      []volume.FloorTotal // custom items only
}

// ParentTotal returns the rolled-up total for a parent work item, or false if
// no line rolls up to it
func (r *EstimateResult) ParentTotal(parentID entities.WorkItemID) (decimal.Decimal, bool) {
	for _, pt := range r.ParentTotals {
		if pt.Key.ParentWorkItemID == parentID {
			return pt.Total, true
		}
	}
	return decimal.Zero, false
}
