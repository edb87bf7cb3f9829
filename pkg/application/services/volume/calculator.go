// Package volume converts dimension rows into take-off volumes.
package volume

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// ComputeRowVolume returns length × width × depth × count. When depth was not
// measured it drops out of the product; a measured depth of 0 yields 0.
func ComputeRowVolume(row entities.DimensionRow) decimal.Decimal {
	area := row.Length.Mul(row.Width).Mul(row.Count)
	if !row.Depth.Valid {
		return area
	}
	return area.Mul(row.Depth.Decimal)
}

// ComputeItemTotal sums row volumes of one item
func ComputeItemTotal(rows []entities.DimensionRow) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(ComputeRowVolume(row))
	}
	return total
}

// ComputeFloorTotals sums row volumes per floor of a custom item
func ComputeFloorTotals(rows []entities.FloorDimensionRow) map[entities.FloorID]decimal.Decimal {
	totals := make(map[entities.FloorID]decimal.Decimal)
	for _, row := range rows {
		totals[row.FloorID] = totals[row.FloorID].Add(ComputeRowVolume(row.DimensionRow))
	}
	return totals
}

// ComputeCustomItemTotal sums the floor totals of a custom item
func ComputeCustomItemTotal(rows []entities.FloorDimensionRow) decimal.Decimal {
	total := decimal.Zero
	for _, floorTotal := range ComputeFloorTotals(rows) {
		total = total.Add(floorTotal)
	}
	return total
}

// ComputeGrandTotal sums item totals across items
func ComputeGrandTotal(items [][]entities.DimensionRow) decimal.Decimal {
	total := decimal.Zero
	for _, rows := range items {
		total = total.Add(ComputeItemTotal(rows))
	}
	return total
}

// TakeoffVolume returns the volume of a simple or custom takeoff. ok is false
// for rebar takeoffs and grouping items, which are not measured by volume.
func TakeoffVolume(takeoff entities.Takeoff) (total decimal.Decimal, ok bool) {
	switch t := takeoff.(type) {
	case entities.SimpleTakeoff:
		return ComputeItemTotal(t.Rows), true
	case entities.CustomTakeoff:
		return ComputeCustomItemTotal(t.Rows), true
	default:
		return decimal.Zero, false
	}
}

// FloorTotal is one floor's share of a custom item
type FloorTotal struct {
	FloorID entities.FloorID
	Volume  decimal.Decimal
}

// SortedFloorTotals returns ComputeFloorTotals ordered by floor id
func SortedFloorTotals(rows []entities.FloorDimensionRow) []FloorTotal {
	totals := ComputeFloorTotals(rows)
	floors := make([]FloorTotal, 0, len(totals))
	for id, v := range totals {
		floors = append(floors, FloorTotal{FloorID: id, Volume: v})
	}
	sort.Slice(floors, func(i, j int) bool {
		return floors[i].FloorID < floors[j].FloorID
	})
	return floors
}
