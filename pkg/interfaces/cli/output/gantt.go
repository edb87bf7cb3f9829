package output

import (
	"fmt"
	"html"
	"strings"

	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// GanttChart lays out a schedule as an SVG Gantt chart with one column per week
type GanttChart struct {
	Width        int
	Height       int
	MarginLeft   int
	MarginTop    int
	MarginRight  int
	MarginBottom int
	RowHeight    int
	WeekWidth    int
}

// GanttBar represents a single task bar in the Gantt chart
type GanttBar struct {
	ItemNo      string
	Description string
	StartWeek   int
	FinishWeek  int
	PerWeek     string
	X           int
	Width       int
	Color       string
	Clipped     bool // the task runs past the last week of the timeline
}

const (
	colorScheduled   = "#4CAF50"
	colorClipped     = "#FF9800"
	colorPlaceholder = "#9E9E9E"
	colorCurve       = "#2196F3"
)

// NewGanttChart sizes a chart for the schedule
func NewGanttChart(schedule *entities.Schedule) *GanttChart {
	weeks := len(schedule.Timeline.Weeks)
	if weeks == 0 || len(schedule.Rows) == 0 {
		return &GanttChart{
			Width:        800,
			Height:       200,
			MarginLeft:   150,
			MarginTop:    50,
			MarginRight:  50,
			MarginBottom: 50,
			RowHeight:    25,
		}
	}

	weekWidth := 28
	if weeks > 40 {
		weekWidth = 16
	}
	rowHeight := 30

	gc := &GanttChart{
		MarginLeft:   260,
		MarginTop:    90,
		MarginRight:  60,
		MarginBottom: 80,
		RowHeight:    rowHeight,
		WeekWidth:    weekWidth,
	}
	gc.Width = gc.MarginLeft + weeks*weekWidth + gc.MarginRight
	gc.Height = gc.MarginTop + len(schedule.Rows)*rowHeight + gc.MarginBottom
	return gc
}

// GenerateSVG creates an SVG representation of the schedule
func (gc *GanttChart) GenerateSVG(schedule *entities.Schedule) string {
	if len(schedule.Timeline.Weeks) == 0 || len(schedule.Rows) == 0 {
		return gc.generateEmptyChart()
	}

	var svg strings.Builder

	svg.WriteString(fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">`, gc.Width, gc.Height))
	svg.WriteString(`<defs>`)
	svg.WriteString(`<style>`)
	svg.WriteString(`.task-label { font-family: Arial, sans-serif; font-size: 12px; fill: #333; }`)
	svg.WriteString(`.time-label { font-family: Arial, sans-serif; font-size: 10px; fill: #666; }`)
	svg.WriteString(`.month-label { font-family: Arial, sans-serif; font-size: 11px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.title { font-family: Arial, sans-serif; font-size: 16px; font-weight: bold; fill: #333; }`)
	svg.WriteString(`.grid-line { stroke: #e0e0e0; stroke-width: 1; }`)
	svg.WriteString(`.month-line { stroke: #999; stroke-width: 1; }`)
	svg.WriteString(`.task-bar { stroke: #333; stroke-width: 1; }`)
	svg.WriteString(`.task-text { font-family: Arial, sans-serif; font-size: 9px; fill: white; }`)
	svg.WriteString(`.s-curve { fill: none; stroke-width: 2; }`)
	svg.WriteString(`</style>`)
	svg.WriteString(`</defs>`)

	svg.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, gc.Width, gc.Height))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="25" class="title" text-anchor="middle">Project Schedule %s to %s</text>`,
		gc.Width/2,
		schedule.Timeline.Start.Format("2006-01-02"),
		schedule.Timeline.End.Format("2006-01-02")))

	gc.drawTimeAxis(&svg, schedule.Timeline)
	gc.drawTimeGrid(&svg, schedule.Timeline, len(schedule.Rows))
	gc.drawTaskRows(&svg, gc.createBars(schedule))
	gc.drawSCurve(&svg, schedule)
	gc.drawLegend(&svg)

	svg.WriteString(`</svg>`)
	return svg.String()
}

// weekX returns the left edge of week number n
func (gc *GanttChart) weekX(n int) int {
	return gc.MarginLeft + (n-1)*gc.WeekWidth
}

// createBars converts schedule rows to bars, in row order
func (gc *GanttChart) createBars(schedule *entities.Schedule) []GanttBar {
	lastWeek := len(schedule.Timeline.Weeks)
	bars := make([]GanttBar, 0, len(schedule.Rows))

	for _, row := range schedule.Rows {
		bar := GanttBar{
			ItemNo:      row.Task.ItemNo,
			Description: row.Task.Description,
			StartWeek:   row.Task.StartWeek,
			FinishWeek:  row.Task.FinishWeek,
			PerWeek:     row.PerWeekPercent.StringFixed(2),
		}

		switch {
		case row.Placeholder:
			bar.Color = colorPlaceholder
		case row.Task.FinishWeek > lastWeek:
			bar.Color = colorClipped
			bar.Clipped = true
		default:
			bar.Color = colorScheduled
		}

		if row.Task.Scheduled() && row.Task.StartWeek <= lastWeek {
			finish := row.Task.FinishWeek
			if finish > lastWeek {
				finish = lastWeek
			}
			bar.X = gc.weekX(row.Task.StartWeek)
			bar.Width = (finish - row.Task.StartWeek + 1) * gc.WeekWidth
		}

		bars = append(bars, bar)
	}
	return bars
}

// drawTimeAxis draws the month and week headers
func (gc *GanttChart) drawTimeAxis(svg *strings.Builder, timeline entities.Timeline) {
	for _, month := range timeline.Months {
		if len(month.Weeks) == 0 {
			continue
		}
		x := gc.weekX(month.Weeks[0])
		width := len(month.Weeks) * gc.WeekWidth
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="month-label" text-anchor="middle">%s</text>`,
			x+width/2, gc.MarginTop-40, month.Label))
	}

	for _, week := range timeline.Weeks {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label" text-anchor="middle">%s</text>`,
			gc.weekX(week.Number)+gc.WeekWidth/2, gc.MarginTop-10, week.Label))
	}

	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
		gc.MarginLeft, gc.MarginTop, gc.Width-gc.MarginRight, gc.MarginTop))
}

// drawTimeGrid draws a vertical line per week, heavier at month boundaries
func (gc *GanttChart) drawTimeGrid(svg *strings.Builder, timeline entities.Timeline, numRows int) {
	gridTop := gc.MarginTop - 30
	gridBottom := gc.MarginTop + numRows*gc.RowHeight

	for _, week := range timeline.Weeks {
		class := "grid-line"
		if (week.Number-1)%entities.WeeksPerMonth == 0 {
			class = "month-line"
		}
		x := gc.weekX(week.Number)
		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="%s"/>`,
			x, gridTop, x, gridBottom, class))
	}
	right := gc.weekX(len(timeline.Weeks) + 1)
	svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="month-line"/>`,
		right, gridTop, right, gridBottom))
}

// drawTaskRows draws one labelled row per bar
func (gc *GanttChart) drawTaskRows(svg *strings.Builder, bars []GanttBar) {
	for i, bar := range bars {
		y := gc.MarginTop + i*gc.RowHeight

		label := bar.ItemNo
		if bar.Description != "" {
			label = fmt.Sprintf("%s %s", bar.ItemNo, truncate(bar.Description, 28))
		}
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="task-label" text-anchor="end">%s</text>`,
			gc.MarginLeft-15, y+gc.RowHeight/2+4, html.EscapeString(label)))

		svg.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" class="grid-line"/>`,
			gc.MarginLeft, y+gc.RowHeight, gc.Width-gc.MarginRight, y+gc.RowHeight))

		if bar.Width > 0 {
			gc.drawBar(svg, bar, y)
		}
	}
}

// drawBar draws a task bar with its per-week percentage
func (gc *GanttChart) drawBar(svg *strings.Builder, bar GanttBar, rowY int) {
	barHeight := gc.RowHeight - 8
	barY := rowY + 4

	svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="%d" height="%d" fill="%s" class="task-bar">`,
		bar.X, barY, bar.Width, barHeight, bar.Color))
	svg.WriteString(fmt.Sprintf(`<title>%s, weeks %d-%d, %s%% per week</title>`,
		html.EscapeString(bar.ItemNo), bar.StartWeek, bar.FinishWeek, bar.PerWeek))
	svg.WriteString(`</rect>`)

	if bar.Width > 40 && bar.Color != colorPlaceholder {
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="task-text" text-anchor="middle">%s%%</text>`,
			bar.X+bar.Width/2, barY+barHeight/2+3, bar.PerWeek))
	}
}

// drawSCurve plots cumulative percentage against the row area, 0% at the bottom
func (gc *GanttChart) drawSCurve(svg *strings.Builder, schedule *entities.Schedule) {
	if len(schedule.CumulativeTotals) == 0 {
		return
	}

	top := gc.MarginTop
	bottom := gc.MarginTop + len(schedule.Rows)*gc.RowHeight
	height := float64(bottom - top)

	points := make([]string, 0, len(schedule.CumulativeTotals)+1)
	points = append(points, fmt.Sprintf("%d,%d", gc.MarginLeft, bottom))
	for i, cum := range schedule.CumulativeTotals {
		pct := clampPercent(cum.InexactFloat64())
		x := gc.weekX(i+1) + gc.WeekWidth
		y := bottom - int(pct/100*height)
		points = append(points, fmt.Sprintf("%d,%d", x, y))
	}

	svg.WriteString(fmt.Sprintf(`<polyline points="%s" stroke="%s" class="s-curve"/>`,
		strings.Join(points, " "), colorCurve))
	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label">%s%% complete</text>`,
		gc.Width-gc.MarginRight+4, bottom-int(clampPercent(schedule.GrandTotal.InexactFloat64())/100*height),
		schedule.GrandTotal.StringFixed(2)))
}

func clampPercent(p float64) float64 {
	if p > 100 {
		return 100
	}
	if p < 0 {
		return 0
	}
	return p
}

// drawLegend draws a legend explaining the colors
func (gc *GanttChart) drawLegend(svg *strings.Builder) {
	legendX := 10
	legendY := gc.Height - gc.MarginBottom + 10

	items := []struct {
		color string
		label string
	}{
		{colorScheduled, "Scheduled task"},
		{colorClipped, "Runs past timeline end"},
		{colorPlaceholder, "Placeholder (no amount)"},
		{colorCurve, "Cumulative progress"},
	}

	svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="task-label" font-weight="bold">Legend</text>`,
		legendX, legendY+10))
	for i, item := range items {
		itemX := legendX + 60 + i*170
		svg.WriteString(fmt.Sprintf(`<rect x="%d" y="%d" width="12" height="8" fill="%s"/>`,
			itemX, legendY+3, item.color))
		svg.WriteString(fmt.Sprintf(`<text x="%d" y="%d" class="time-label">%s</text>`,
			itemX+18, legendY+10, item.label))
	}
}

// generateEmptyChart creates an empty chart when there is nothing to schedule
func (gc *GanttChart) generateEmptyChart() string {
	return fmt.Sprintf(`<svg width="%d" height="%d" xmlns="http://www.w3.org/2000/svg">
		<rect width="%d" height="%d" fill="white"/>
		<text x="%d" y="%d" class="title" text-anchor="middle">No Scheduled Tasks Found</text>
		<style>
			.title { font-family: Arial, sans-serif; font-size: 16px; fill: #666; }
		</style>
	</svg>`, gc.Width, gc.Height, gc.Width, gc.Height, gc.Width/2, gc.Height/2)
}
