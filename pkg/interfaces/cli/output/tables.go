package output

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// table is a named grid of cells shared by the CSV and XLSX writers. Cells hold
// strings, ints or decimals.
type table struct {
	name   string
	header []string
	rows   [][]any
}

func estimateTables(report *Report) []table {
	quantities := table{
		name:   "quantities",
		header: []string{"proposal_id", "work_item_id", "parent_id", "description", "compute_type", "unit", "floor_id", "quantity"},
	}
	lines := table{
		name: "material_lines",
		header: []string{"proposal_id", "work_item_id", "parent_work_item_id", "resource_id",
			"base_quantity", "multiplier", "unit_cost", "actual_qty", "total_cost"},
	}
	parents := table{
		name:   "parent_totals",
		header: []string{"proposal_id", "parent_work_item_id", "line_count", "total"},
	}
	rebar := table{
		name:   "rebar_usage",
		header: []string{"proposal_id", "rebar_masterlist_id", "total_quantity", "total_weight"},
	}

	for _, r := range report.Estimates {
		proposal := string(r.ProposalID)
		for _, q := range r.Quantities {
			quantities.rows = append(quantities.rows, []any{
				proposal, string(q.WorkItemID), string(q.ParentID), q.Description,
				q.ComputeType.String(), q.Unit, "", q.Quantity,
			})
			for _, floor := range q.Floors {
				quantities.rows = append(quantities.rows, []any{
					proposal, string(q.WorkItemID), string(q.ParentID), q.Description,
					q.ComputeType.String(), q.Unit, string(floor.FloorID), floor.Volume,
				})
			}
		}
		for _, l := range r.Lines {
			lines.rows = append(lines.rows, []any{
				proposal, string(l.WorkItemID), string(l.ParentWorkItemID), string(l.ResourceID),
				l.BaseQuantity, l.Multiplier, l.UnitCost, l.ActualQty, l.TotalCost,
			})
		}
		for _, pt := range r.ParentTotals {
			parents.rows = append(parents.rows, []any{
				proposal, string(pt.Key.ParentWorkItemID), pt.LineCount, pt.Total,
			})
		}
		for _, u := range r.RebarUsage {
			rebar.rows = append(rebar.rows, []any{
				proposal, string(u.RebarID), u.TotalQuantity, u.TotalWeight,
			})
		}
	}

	return []table{quantities, lines, parents, rebar}
}

// scheduleTable has one row per task plus week total and cumulative rows. Week
// columns hold the task's per-week percentage in its active weeks.
func scheduleTable(s *entities.Schedule) table {
	t := table{
		name: "schedule",
		header: []string{"item_no", "description", "amount", "start_week", "finish_week",
			"duration", "weight_percent", "per_week_percent"},
	}
	fixed := len(t.header)
	for _, week := range s.Timeline.Weeks {
		t.header = append(t.header, week.Label)
	}

	for _, row := range s.Rows {
		cells := []any{
			row.Task.ItemNo, row.Task.Description, row.Task.Amount, row.Task.StartWeek,
			row.Task.FinishWeek, row.Task.Duration, row.WeightPercent, row.PerWeekPercent,
		}
		active := make(map[int]bool, len(row.Weeks))
		for _, w := range row.Weeks {
			active[w] = true
		}
		for _, week := range s.Timeline.Weeks {
			if active[week.Number] {
				cells = append(cells, row.PerWeekPercent)
			} else {
				cells = append(cells, "")
			}
		}
		t.rows = append(t.rows, cells)
	}

	t.rows = append(t.rows, summaryRow("WEEK TOTAL", fixed, s.WeekTotals))
	t.rows = append(t.rows, summaryRow("CUMULATIVE", fixed, s.CumulativeTotals))
	return t
}

func summaryRow(label string, fixed int, values []decimal.Decimal) []any {
	cells := make([]any, fixed, fixed+len(values))
	cells[0] = label
	for i := 1; i < fixed; i++ {
		cells[i] = ""
	}
	for _, v := range values {
		cells = append(cells, v)
	}
	return cells
}

// cellString formats a cell for text formats. Decimals keep their exact value.
func cellString(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int:
		return strconv.Itoa(c)
	case decimal.Decimal:
		return c.String()
	default:
		return fmt.Sprint(c)
	}
}
