// Package gantt builds schedule timelines and spreads task amounts across weeks.
package gantt

import (
	"fmt"
	"strings"
	"time"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// DateLayout is the ISO calendar date format accepted for timeline bounds
const DateLayout = "2006-01-02"

// ParseDate parses an ISO YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", s, err)
	}
	return t, nil
}

// BuildTimeline produces one month per calendar month from start's month through
// end's month inclusive. Every month has exactly entities.WeeksPerMonth weeks and
// week numbers run sequentially across the whole timeline.
func BuildTimeline(start, end time.Time) entities.Timeline {
	timeline := entities.Timeline{Start: start, End: end}
	if end.Before(start) {
		return timeline
	}

	cursor := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, time.UTC)

	weekNumber := 1
	for monthIndex := 0; !cursor.After(last); monthIndex++ {
		month := entities.Month{
			Year:  cursor.Year(),
			Month: cursor.Month(),
			Label: cursor.Format("January 2006"),
			Weeks: make([]int, 0, entities.WeeksPerMonth),
		}
		for i := 0; i < entities.WeeksPerMonth; i++ {
			timeline.Weeks = append(timeline.Weeks, entities.Week{
				Number:     weekNumber,
				Label:      fmt.Sprintf("W%d", weekNumber),
				MonthIndex: monthIndex,
			})
			month.Weeks = append(month.Weeks, weekNumber)
			weekNumber++
		}
		timeline.Months = append(timeline.Months, month)
		cursor = cursor.AddDate(0, 1, 0)
	}

	return timeline
}
