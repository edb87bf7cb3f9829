package entities

import "github.com/shopspring/decimal"

// ScheduleRow is a task with its share of the total amount spread over its weeks
type ScheduleRow struct {
	Task           GanttTask
	Placeholder    bool // zero-amount rows are listed but carry no percentages
	WeightPercent  decimal.Decimal
	PerWeekPercent decimal.Decimal
	Weeks          []int // active week numbers inside the timeline
}

// Schedule is the weekly allocation of a set of tasks
type Schedule struct {
	Timeline         Timeline
	Rows             []ScheduleRow
	TotalAmount      decimal.Decimal
	WeekTotals       []decimal.Decimal // index i is week i+1
	CumulativeTotals []decimal.Decimal
	GrandTotal       decimal.Decimal
	Unscheduled      []string // item numbers of tasks with no usable duration
}
