// Package rebar computes reinforcement weights and usage summaries.
package rebar

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// ComputeRowWeight returns weight_per_meter × length_m × quantity.
// Unlike a dimension row's count, a missing quantity is 0, never 1.
func ComputeRowWeight(row entities.RebarRow) decimal.Decimal {
	return row.Weight()
}

// AggregateByMasterlist sums quantity and weight per rebar type. Rows of the same
// type are merged regardless of location or work item.
func AggregateByMasterlist(rows []entities.RebarRow) map[entities.RebarID]entities.RebarUsage {
	usage := make(map[entities.RebarID]entities.RebarUsage)
	for _, row := range rows {
		u := usage[row.RebarID]
		u.RebarID = row.RebarID
		u.TotalQuantity = u.TotalQuantity.Add(row.Quantity)
		u.TotalWeight = u.TotalWeight.Add(ComputeRowWeight(row))
		usage[row.RebarID] = u
	}
	return usage
}

// AggregateByWorkItem sums weight per work item. The result is the base quantity
// of rebar materials on each item.
func AggregateByWorkItem(rows []entities.RebarRow) map[entities.WorkItemID]decimal.Decimal {
	totals := make(map[entities.WorkItemID]decimal.Decimal)
	for _, row := range rows {
		totals[row.WorkItemID] = totals[row.WorkItemID].Add(ComputeRowWeight(row))
	}
	return totals
}

// SortedUsage orders a usage map by rebar id for reporting
func SortedUsage(usage map[entities.RebarID]entities.RebarUsage) []entities.RebarUsage {
	lines := make([]entities.RebarUsage, 0, len(usage))
	for _, u := range usage {
		lines = append(lines, u)
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i].RebarID < lines[j].RebarID
	})
	return lines
}

// CollectRows flattens the rows of every rebar takeoff, stamping each row with
// its work item id.
func CollectRows(items []entities.WorkItem) []entities.RebarRow {
	var rows []entities.RebarRow
	for _, item := range items {
		takeoff, ok := item.Takeoff.(entities.RebarTakeoff)
		if !ok {
			continue
		}
		for _, row := range takeoff.Rows {
			row.WorkItemID = item.ID
			rows = append(rows, row)
		}
	}
	return rows
}
