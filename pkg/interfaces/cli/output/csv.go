package output

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
)

// generateCSVOutput creates CSV output, one file per table
func generateCSVOutput(report *Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for CSV format")
	}

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	tables := estimateTables(report)
	if report.Schedule != nil {
		tables = append(tables, scheduleTable(report.Schedule))
	}

	var written []string
	for _, t := range tables {
		filename := filepath.Join(config.OutputDir, t.name+".csv")
		if err := writeTableCSV(t, filename); err != nil {
			return fmt.Errorf("failed to write %s CSV: %w", t.name, err)
		}
		written = append(written, filename)
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 CSV results saved to:\n")
		for _, filename := range written {
			fmt.Fprintf(config.Out, "  %s\n", filename)
		}
	}

	return nil
}

func writeTableCSV(t table, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(t.header); err != nil {
		return err
	}
	record := make([]string, 0, len(t.header))
	for _, row := range t.rows {
		record = record[:0]
		for _, cell := range row {
			record = append(record, cellString(cell))
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return file.Close()
}
