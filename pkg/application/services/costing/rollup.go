// Package costing prices material take-off lines and rolls them up to parent
// work items and proposals.
//
// Totals are never maintained incrementally: every aggregate is a fresh sum over
// the complete current line set, so a displayed parent total can not drift from
// the lines beneath it.
package costing

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

// LineCost is the priced result of one material line
type LineCost struct {
	ActualQty decimal.Decimal
	TotalCost decimal.Decimal
}

// ComputeLine prices a line in two rounding stages: the actual quantity is
// rounded to cents first, and the rounded quantity is what gets multiplied by
// the unit cost.
func ComputeLine(baseQuantity, multiplier, unitCost decimal.Decimal) LineCost {
	actualQty := numeric.Round2(baseQuantity.Mul(multiplier))
	return LineCost{
		ActualQty: actualQty,
		TotalCost: numeric.Round2(actualQty.Mul(unitCost)),
	}
}

// PriceLine builds a MaterialLine for a selection on a work item
func PriceLine(item entities.WorkItem, sel entities.MaterialSelection, baseQuantity, unitCost decimal.Decimal) entities.MaterialLine {
	cost := ComputeLine(baseQuantity, sel.Multiplier, unitCost)
	return entities.MaterialLine{
		ProposalID:       item.ProposalID,
		WorkItemID:       item.ID,
		ParentWorkItemID: item.GroupID(),
		ResourceID:       sel.ResourceID,
		BaseQuantity:     baseQuantity,
		Multiplier:       sel.Multiplier,
		UnitCost:         unitCost,
		ActualQty:        cost.ActualQty,
		TotalCost:        cost.TotalCost,
	}
}

// AggregateBy sums TotalCost of lines sharing the same key
func AggregateBy[K comparable](lines []entities.MaterialLine, key func(entities.MaterialLine) K) map[K]decimal.Decimal {
	totals := make(map[K]decimal.Decimal)
	for _, line := range lines {
		k := key(line)
		totals[k] = totals[k].Add(line.TotalCost)
	}
	return totals
}

// AggregateParentTotal sums TotalCost per (proposal, parent work item)
func AggregateParentTotal(lines []entities.MaterialLine) map[entities.ParentKey]decimal.Decimal {
	return AggregateBy(lines, entities.MaterialLine.ParentKey)
}

// WorkItemTotals sums TotalCost per child work item
func WorkItemTotals(lines []entities.MaterialLine) map[entities.WorkItemID]decimal.Decimal {
	return AggregateBy(lines, func(l entities.MaterialLine) entities.WorkItemID { return l.WorkItemID })
}

// ProposalTotals sums TotalCost per proposal
func ProposalTotals(lines []entities.MaterialLine) map[entities.ProposalID]decimal.Decimal {
	return AggregateBy(lines, func(l entities.MaterialLine) entities.ProposalID { return l.ProposalID })
}

// SortedParentTotals returns parent totals with line counts, ordered by proposal
// then parent id
func SortedParentTotals(lines []entities.MaterialLine) []entities.ParentTotal {
	totals := AggregateParentTotal(lines)
	counts := make(map[entities.ParentKey]int, len(totals))
	for _, line := range lines {
		counts[line.ParentKey()]++
	}

	out := make([]entities.ParentTotal, 0, len(totals))
	for key, total := range totals {
		out = append(out, entities.ParentTotal{Key: key, LineCount: counts[key], Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.ProposalID != out[j].Key.ProposalID {
			return out[i].Key.ProposalID < out[j].Key.ProposalID
		}
		return out[i].Key.ParentWorkItemID < out[j].Key.ParentWorkItemID
	})
	return out
}
