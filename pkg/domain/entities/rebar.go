package entities

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

// RebarSpec is a rebar masterlist entry
type RebarSpec struct {
	ID             RebarID
	DiameterMM     decimal.Decimal
	LengthM        decimal.Decimal
	WeightPerMeter decimal.Decimal
}

// NewRebarSpec creates a validated RebarSpec
func NewRebarSpec(id RebarID, diameterMM, lengthM, weightPerMeter numeric.Loose) (*RebarSpec, error) {
	if string(id) == "" {
		return nil, fmt.Errorf("rebar masterlist id cannot be empty")
	}

	return &RebarSpec{
		ID:             id,
		DiameterMM:     diameterMM.OrZero(),
		LengthM:        lengthM.OrZero(),
		WeightPerMeter: weightPerMeter.OrZero(),
	}, nil
}

// RebarRow is one rebar selection on a work item. TotalWeight is kept in step
// with the quantity and the referenced masterlist entry.
type RebarRow struct {
	WorkItemID     WorkItemID
	RebarID        RebarID
	DiameterMM     decimal.Decimal
	LengthM        decimal.Decimal
	WeightPerMeter decimal.Decimal
	Quantity       decimal.Decimal
	Location       string
	TotalWeight    decimal.Decimal
}

// NewRebarRow builds a row from a masterlist entry. A missing quantity is 0.
func NewRebarRow(workItemID WorkItemID, spec RebarSpec, quantity numeric.Loose, location string) RebarRow {
	row := RebarRow{
		WorkItemID: workItemID,
		Location:   location,
		Quantity:   quantity.OrZero(),
	}
	return row.WithReference(spec)
}

// Weight returns weight_per_meter × length_m × quantity
func (r RebarRow) Weight() decimal.Decimal {
	return r.WeightPerMeter.Mul(r.LengthM).Mul(r.Quantity)
}

// WithQuantity returns a copy with a new quantity and recomputed total weight
func (r RebarRow) WithQuantity(quantity numeric.Loose) RebarRow {
	r.Quantity = quantity.OrZero()
	r.TotalWeight = r.Weight()
	return r
}

// WithReference returns a copy pointing at another masterlist entry, with recomputed total weight
func (r RebarRow) WithReference(spec RebarSpec) RebarRow {
	r.RebarID = spec.ID
	r.DiameterMM = spec.DiameterMM
	r.LengthM = spec.LengthM
	r.WeightPerMeter = spec.WeightPerMeter
	r.TotalWeight = r.Weight()
	return r
}

// RebarUsage is the usage summary of one rebar type
type RebarUsage struct {
	RebarID       RebarID
	TotalQuantity decimal.Decimal
	TotalWeight   decimal.Decimal
}
