package gantt

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

var hundred = decimal.NewFromInt(100)

// contributes reports whether a task takes part in the percentage split.
// Tasks with no positive amount are placeholders.
func contributes(t entities.GanttTask) bool {
	return t.Amount.IsPositive()
}

// TotalAmount sums the amounts of contributing tasks
func TotalAmount(tasks []entities.GanttTask) decimal.Decimal {
	total := decimal.Zero
	for _, t := range tasks {
		if contributes(t) {
			total = total.Add(t.Amount)
		}
	}
	return total
}

// WeightPercent is the task's share of total as a 0-100 percentage
func WeightPercent(t entities.GanttTask, total decimal.Decimal) decimal.Decimal {
	if !contributes(t) || !total.IsPositive() {
		return decimal.Zero
	}
	return t.Amount.Div(total).Mul(hundred)
}

// PerWeekPercent spreads the weight evenly over the task's duration.
// Unscheduled tasks get nothing.
func PerWeekPercent(t entities.GanttTask, total decimal.Decimal) decimal.Decimal {
	if !t.Scheduled() {
		return decimal.Zero
	}
	return WeightPercent(t, total).Div(t.Duration)
}

// AllocateWeeks returns, for each week, the sum of per-week percentages of the
// tasks active in it. The result is indexed like weeks.
func AllocateWeeks(tasks []entities.GanttTask, weeks []entities.Week) []decimal.Decimal {
	total := TotalAmount(tasks)
	perWeek := make([]decimal.Decimal, len(tasks))
	for i, t := range tasks {
		perWeek[i] = PerWeekPercent(t, total)
	}

	totals := make([]decimal.Decimal, len(weeks))
	for wi, week := range weeks {
		sum := decimal.Zero
		for ti, t := range tasks {
			if contributes(t) && t.ActiveIn(week.Number) {
				sum = sum.Add(perWeek[ti])
			}
		}
		totals[wi] = sum
	}
	return totals
}

// BuildSchedule lays tasks over a timeline. Placeholder rows come first, then
// contributing tasks in their original order.
func BuildSchedule(tasks []entities.GanttTask, timeline entities.Timeline) entities.Schedule {
	total := TotalAmount(tasks)

	schedule := entities.Schedule{
		Timeline:    timeline,
		Rows:        make([]entities.ScheduleRow, 0, len(tasks)),
		TotalAmount: total,
		WeekTotals:  AllocateWeeks(tasks, timeline.Weeks),
	}

	var active []entities.ScheduleRow
	for _, t := range tasks {
		if !contributes(t) {
			schedule.Rows = append(schedule.Rows, entities.ScheduleRow{Task: t, Placeholder: true})
			continue
		}

		row := entities.ScheduleRow{
			Task:           t,
			WeightPercent:  WeightPercent(t, total),
			PerWeekPercent: PerWeekPercent(t, total),
		}
		if !t.Scheduled() {
			schedule.Unscheduled = append(schedule.Unscheduled, t.ItemNo)
		}
		for _, week := range timeline.Weeks {
			if t.ActiveIn(week.Number) {
				row.Weeks = append(row.Weeks, week.Number)
			}
		}
		active = append(active, row)
	}
	schedule.Rows = append(schedule.Rows, active...)

	schedule.CumulativeTotals = make([]decimal.Decimal, len(schedule.WeekTotals))
	running := decimal.Zero
	for i, v := range schedule.WeekTotals {
		running = running.Add(v)
		schedule.CumulativeTotals[i] = running
	}
	schedule.GrandTotal = running

	return schedule
}
