package entities

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

var one = decimal.NewFromInt(1)

// DimensionRow represents one measured entry of a quantity take-off
type DimensionRow struct {
	Label  string
	Length decimal.Decimal
	Width  decimal.Decimal
	Depth  decimal.NullDecimal // invalid = not measured, distinct from a literal 0
	Count  decimal.Decimal
}

// NewDimensionRow coerces raw measurements into a DimensionRow.
// Length and width default to 0, count defaults to 1, and an absent depth stays absent.
func NewDimensionRow(label string, length, width, depth, count numeric.Loose) DimensionRow {
	return DimensionRow{
		Label:  label,
		Length: length.OrZero(),
		Width:  width.OrZero(),
		Depth:  depth.Null(),
		Count:  count.Or(one),
	}
}

// FloorDimensionRow is a DimensionRow measured on a specific floor of a custom item
type FloorDimensionRow struct {
	FloorID FloorID
	DimensionRow
}
