package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/vsinha/takeoff/pkg/application/dto"
	"github.com/vsinha/takeoff/pkg/domain/entities"
)

// Report is everything one CLI run produces
type Report struct {
	ScenarioDir string
	Estimates   []*dto.EstimateResult
	Schedule    *entities.Schedule // nil when no schedule was built
	Elapsed     time.Duration
}

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Out       io.Writer // defaults to os.Stdout
}

var formats = []string{"text", "json", "csv", "xlsx", "svg"}

// SupportedFormat reports whether Generate can write format
func SupportedFormat(format string) bool {
	for _, f := range formats {
		if f == format {
			return true
		}
	}
	return false
}

// Generate creates output in the specified format
func Generate(report *Report, config Config) error {
	if config.Out == nil {
		config.Out = os.Stdout
	}

	switch config.Format {
	case "text":
		return generateTextOutput(report, config)
	case "json":
		return generateJSONOutput(report, config)
	case "csv":
		return generateCSVOutput(report, config)
	case "xlsx":
		return generateXLSXOutput(report, config)
	case "svg":
		return generateSVGOutput(report, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(report *Report, config Config) error {
	var buf bytes.Buffer
	writeText(&buf, report)

	if _, err := config.Out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write text output: %w", err)
	}

	if config.OutputDir != "" {
		filename, err := writeFile(config.OutputDir, "takeoff_results.txt", buf.Bytes())
		if err != nil {
			return err
		}
		if config.Verbose {
			fmt.Fprintf(config.Out, "💾 Results saved to: %s\n", filename)
		}
	}
	return nil
}

func writeText(w io.Writer, report *Report) {
	fmt.Fprintf(w, "📊 Takeoff Results Summary\n")
	fmt.Fprintf(w, "==========================\n\n")

	fmt.Fprintf(w, "Proposals: %d\n", len(report.Estimates))
	fmt.Fprintf(w, "Estimate Time: %v\n\n", report.Elapsed)

	for _, r := range report.Estimates {
		writeEstimateText(w, r)
	}

	if report.Schedule != nil {
		writeScheduleText(w, report.Schedule)
	}
}

func writeEstimateText(w io.Writer, r *dto.EstimateResult) {
	fmt.Fprintf(w, "🏗️  Proposal %s (run %s)\n", r.ProposalID, r.RunID)
	fmt.Fprintf(w, "%s\n\n", strings.Repeat("-", 40))

	if len(r.Quantities) > 0 {
		fmt.Fprintf(w, "📐 Quantities:\n")
		fmt.Fprintf(w, "%-15s %-15s %-8s %-6s %14s\n",
			"Work Item", "Parent", "Type", "Unit", "Quantity")
		fmt.Fprintf(w, "%-15s %-15s %-8s %-6s %14s\n",
			"---------------", "---------------", "--------", "------", "--------------")
		for _, q := range r.Quantities {
			fmt.Fprintf(w, "%-15s %-15s %-8s %-6s %14s\n",
				q.WorkItemID, q.ParentID, q.ComputeType, q.Unit, q.Quantity.String())
			for _, floor := range q.Floors {
				fmt.Fprintf(w, "  floor %-38s %14s\n", floor.FloorID, floor.Volume.String())
			}
		}
		fmt.Fprintln(w)
	}

	if len(r.Lines) > 0 {
		fmt.Fprintf(w, "💰 Material Lines:\n")
		fmt.Fprintf(w, "%-15s %-12s %12s %8s %12s %12s %14s\n",
			"Work Item", "Resource", "Base Qty", "Mult", "Actual Qty", "Unit Cost", "Total Cost")
		fmt.Fprintf(w, "%-15s %-12s %12s %8s %12s %12s %14s\n",
			"---------------", "------------", "------------", "--------", "------------", "------------", "--------------")
		for _, line := range r.Lines {
			fmt.Fprintf(w, "%-15s %-12s %12s %8s %12s %12s %14s\n",
				line.WorkItemID,
				line.ResourceID,
				line.BaseQuantity.String(),
				line.Multiplier.String(),
				line.ActualQty.StringFixed(2),
				line.UnitCost.StringFixed(2),
				line.TotalCost.StringFixed(2))
		}
		fmt.Fprintln(w)
	}

	if len(r.ParentTotals) > 0 {
		fmt.Fprintf(w, "🧮 Parent Totals:\n")
		fmt.Fprintf(w, "%-15s %-6s %14s\n", "Parent", "Lines", "Total")
		fmt.Fprintf(w, "%-15s %-6s %14s\n", "---------------", "------", "--------------")
		for _, pt := range r.ParentTotals {
			fmt.Fprintf(w, "%-15s %-6d %14s\n",
				pt.Key.ParentWorkItemID, pt.LineCount, pt.Total.StringFixed(2))
		}
		fmt.Fprintf(w, "%-22s %14s\n\n", "Proposal Total", r.ProposalTotal.StringFixed(2))
	}

	if len(r.RebarUsage) > 0 {
		fmt.Fprintf(w, "🔩 Rebar Usage:\n")
		fmt.Fprintf(w, "%-12s %10s %14s\n", "Rebar", "Pieces", "Weight (kg)")
		fmt.Fprintf(w, "%-12s %10s %14s\n", "------------", "----------", "--------------")
		for _, u := range r.RebarUsage {
			fmt.Fprintf(w, "%-12s %10s %14s\n", u.RebarID, u.TotalQuantity.String(), u.TotalWeight.String())
		}
		fmt.Fprintln(w)
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "⚠️  Warnings:\n")
		for _, warning := range r.Warnings {
			fmt.Fprintf(w, "  - %s\n", warning)
		}
		fmt.Fprintln(w)
	}
}

func writeScheduleText(w io.Writer, s *entities.Schedule) {
	fmt.Fprintf(w, "📅 Schedule %s to %s (%d weeks)\n",
		s.Timeline.Start.Format("2006-01-02"), s.Timeline.End.Format("2006-01-02"), len(s.Timeline.Weeks))
	fmt.Fprintf(w, "%-10s %-28s %14s %6s %6s %9s %9s\n",
		"Item", "Description", "Amount", "Start", "Finish", "Weight %", "Per Week")
	fmt.Fprintf(w, "%-10s %-28s %14s %6s %6s %9s %9s\n",
		"----------", "----------------------------", "--------------", "------", "------", "---------", "---------")
	for _, row := range s.Rows {
		fmt.Fprintf(w, "%-10s %-28s %14s %6d %6d %9s %9s\n",
			row.Task.ItemNo,
			truncate(row.Task.Description, 28),
			row.Task.Amount.StringFixed(2),
			row.Task.StartWeek,
			row.Task.FinishWeek,
			row.WeightPercent.StringFixed(2),
			row.PerWeekPercent.StringFixed(2))
	}
	fmt.Fprintln(w)

	if len(s.Timeline.Weeks) > 0 {
		fmt.Fprintf(w, "%-6s %-16s %10s %12s\n", "Week", "Month", "Week %", "Cumulative")
		fmt.Fprintf(w, "%-6s %-16s %10s %12s\n", "------", "----------------", "----------", "------------")
		for i, week := range s.Timeline.Weeks {
			fmt.Fprintf(w, "%-6s %-16s %10s %12s\n",
				week.Label,
				s.Timeline.Months[week.MonthIndex].Label,
				s.WeekTotals[i].StringFixed(2),
				s.CumulativeTotals[i].StringFixed(2))
		}
		fmt.Fprintf(w, "%-24s %12s\n", "Grand Total", s.GrandTotal.StringFixed(2))
	}

	if len(s.Unscheduled) > 0 {
		fmt.Fprintf(w, "⚠️  Unscheduled: %s\n", strings.Join(s.Unscheduled, ", "))
	}
	fmt.Fprintln(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// jsonReport is the JSON document written for a run
type jsonReport struct {
	Estimates []dto.EstimateResponse `json:"estimates"`
	Schedule  *dto.ScheduleResponse  `json:"schedule,omitempty"`
}

// generateJSONOutput creates JSON output
func generateJSONOutput(report *Report, config Config) error {
	doc := jsonReport{Estimates: make([]dto.EstimateResponse, len(report.Estimates))}
	for i, r := range report.Estimates {
		doc.Estimates[i] = dto.NewEstimateResponse(r)
	}
	if report.Schedule != nil {
		schedule := dto.NewScheduleResponse(*report.Schedule)
		doc.Schedule = &schedule
	}

	jsonData, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if config.OutputDir == "" {
		fmt.Fprintln(config.Out, string(jsonData))
		return nil
	}

	filename, err := writeFile(config.OutputDir, "takeoff_results.json", jsonData)
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 JSON results saved to: %s\n", filename)
	}
	return nil
}

// generateSVGOutput renders the schedule as a Gantt chart
func generateSVGOutput(report *Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for SVG format")
	}
	if report.Schedule == nil {
		return fmt.Errorf("SVG format requires a schedule (schedule.csv with -start and -end)")
	}

	chart := NewGanttChart(report.Schedule)
	filename, err := writeFile(config.OutputDir, "gantt.svg", []byte(chart.GenerateSVG(report.Schedule)))
	if err != nil {
		return err
	}
	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 Gantt chart saved to: %s\n", filename)
	}
	return nil
}

// writeFile creates dir if needed and writes name into it
func writeFile(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(dir, name)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	return filename, nil
}
