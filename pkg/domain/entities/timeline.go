package entities

import "time"

// WeeksPerMonth is the fixed number of schedule weeks given to every calendar month
const WeeksPerMonth = 4

// Week is one column of the schedule. Numbers run 1..n across the whole timeline.
type Week struct {
	Number     int
	Label      string
	MonthIndex int
}

// Month is one calendar month of the timeline
type Month struct {
	Year  int
	Month time.Month
	Label string
	Weeks []int
}

// Timeline is the month/week header of a Gantt chart
type Timeline struct {
	Start  time.Time
	End    time.Time
	Months []Month
	Weeks  []Week
}
