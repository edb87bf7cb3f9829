package entities

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

// Resource is a resource catalog entry
type Resource struct {
	ID          ResourceID
	Description string
	Unit        string
	UnitCost    decimal.Decimal
}

// NewResource creates a validated Resource
func NewResource(id ResourceID, description, unit string, unitCost numeric.Loose) (*Resource, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("resource id cannot be empty")
	}

	return &Resource{
		ID:          id,
		Description: description,
		Unit:        unit,
		UnitCost:    unitCost.OrZero(),
	}, nil
}

// MaterialSelection attaches a resource to a work item. An invalid UnitCost
// means the price comes from the resource catalog.
type MaterialSelection struct {
	WorkItemID WorkItemID
	ResourceID ResourceID
	Multiplier decimal.Decimal
	UnitCost   decimal.NullDecimal
}

// NewMaterialSelection coerces raw selection input
func NewMaterialSelection(workItemID WorkItemID, resourceID ResourceID, multiplier, unitCost numeric.Loose) MaterialSelection {
	return MaterialSelection{
		WorkItemID: workItemID,
		ResourceID: resourceID,
		Multiplier: multiplier.OrZero(),
		UnitCost:   unitCost.Null(),
	}
}

// MaterialLine is a priced material take-off line
type MaterialLine struct {
	ProposalID       ProposalID
	WorkItemID       WorkItemID
	ParentWorkItemID WorkItemID
	ResourceID       ResourceID
	BaseQuantity     decimal.Decimal
	Multiplier       decimal.Decimal
	UnitCost         decimal.Decimal
	ActualQty        decimal.Decimal
	TotalCost        decimal.Decimal
}

// ParentKey groups material lines under a parent work item of a proposal
type ParentKey struct {
	ProposalID       ProposalID
	ParentWorkItemID WorkItemID
}

// ParentKey returns the line's aggregation key
func (l MaterialLine) ParentKey() ParentKey {
	return ParentKey{ProposalID: l.ProposalID, ParentWorkItemID: l.ParentWorkItemID}
}

// ParentTotal is the fresh sum of all lines under one parent
type ParentTotal struct {
	Key       ParentKey
	LineCount int
	Total     decimal.Decimal
}
