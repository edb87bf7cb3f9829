package entities

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/takeoff/pkg/domain/numeric"
)

// GanttTask is one scheduled row of the project Gantt chart
type GanttTask struct {
	ItemNo      string
	Description string
	Amount      decimal.Decimal
	StartWeek   int
	FinishWeek  int
	Duration    decimal.Decimal // weeks, may be fractional
}

// FinishWeek returns start + ceil(duration) - 1. A non-positive duration leaves
// the task with no active weeks.
func FinishWeek(startWeek int, duration decimal.Decimal) int {
	if !duration.IsPositive() {
		return startWeek - 1
	}
	return startWeek + numeric.CeilInt(duration) - 1
}

// NewTaskFromDuration builds a task from a start week and a duration in weeks
func NewTaskFromDuration(itemNo, description string, amount numeric.Loose, startWeek int, duration numeric.Loose) GanttTask {
	if startWeek < 1 {
		startWeek = 1
	}
	d := duration.OrZero()
	return GanttTask{
		ItemNo:      itemNo,
		Description: description,
		Amount:      amount.OrZero(),
		StartWeek:   startWeek,
		FinishWeek:  FinishWeek(startWeek, d),
		Duration:    d,
	}
}

// NewTaskFromWeeks builds a task from an explicit start and finish week
func NewTaskFromWeeks(itemNo, description string, amount numeric.Loose, startWeek, finishWeek int) GanttTask {
	if startWeek < 1 {
		startWeek = 1
	}
	weeks := finishWeek - startWeek + 1
	if weeks < 0 {
		weeks = 0
	}
	return NewTaskFromDuration(itemNo, description, amount, startWeek, numeric.OfInt(int64(weeks)))
}

// Scheduled reports whether the task occupies at least one week
func (t GanttTask) Scheduled() bool {
	return t.Duration.IsPositive()
}

// ActiveIn reports whether week falls inside the task's start..finish range
func (t GanttTask) ActiveIn(week int) bool {
	return week >= t.StartWeek && week <= t.FinishWeek
}

// GanttTaskInput is raw task input in either entry mode: duration-based
// (Duration, or Quantity / Rate) or week-based (FinishWeek).
type GanttTaskInput struct {
	ItemNo      string
	Description string
	Amount      numeric.Loose
	StartWeek   numeric.Loose
	FinishWeek  numeric.Loose
	Duration    numeric.Loose
	Quantity    numeric.Loose
	Rate        numeric.Loose
}
