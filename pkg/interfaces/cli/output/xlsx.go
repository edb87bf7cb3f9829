package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// sheetTitles maps table names to worksheet names
var sheetTitles = map[string]string{
	"quantities":     "Quantities",
	"material_lines": "Material Lines",
	"parent_totals":  "Parent Totals",
	"rebar_usage":    "Rebar Usage",
	"schedule":       "Schedule",
}

// generateXLSXOutput writes every table into one workbook
func generateXLSXOutput(report *Report, config Config) error {
	if config.OutputDir == "" {
		return fmt.Errorf("output directory required for XLSX format")
	}

	tables := estimateTables(report)
	if report.Schedule != nil {
		tables = append(tables, scheduleTable(report.Schedule))
	}

	f, err := buildWorkbook(tables)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	filename := filepath.Join(config.OutputDir, "takeoff.xlsx")
	if err := f.SaveAs(filename); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	if config.Verbose {
		fmt.Fprintf(config.Out, "💾 Workbook saved to: %s\n", filename)
	}
	return nil
}

func buildWorkbook(tables []table) (*excelize.File, error) {
	f := excelize.NewFile()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("create header style: %w", err)
	}

	for i, t := range tables {
		sheet := sheetTitles[t.name]
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
				f.Close()
				return nil, fmt.Errorf("set sheet name: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			f.Close()
			return nil, fmt.Errorf("create sheet %s: %w", sheet, err)
		}

		if err := writeSheet(f, sheet, t, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("write sheet %s: %w", sheet, err)
		}
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, t table, headerStyle int) error {
	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(t.header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for r, row := range t.rows {
		cells := make([]any, len(row))
		for i, cell := range row {
			cells[i] = cellValue(cell)
		}
		start, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, start, &cells); err != nil {
			return err
		}
	}
	return nil
}

// cellValue converts decimals to numbers so spreadsheet formulas work on them
func cellValue(v any) any {
	if d, ok := v.(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return v
}
