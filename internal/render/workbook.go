package render

import (
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/prospectforge/prospectforge/internal/enrich"
)

const (
	prospectSheet = "Prospects"
	statsSheet    = "Summary"
)

var workbookHeader = []string{
	"Company", "Website", "Industry", "Location", "Revenue", "Employees",
	"Contact", "Title", "Summary", "Quality", "Retries", "Logo Source",
}

// WriteWorkbook renders the two-sheet deliverable: the formatted prospect
// sheet and a run statistics sheet.
func WriteWorkbook(records []enrich.Record, path string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	f.SetSheetName("Sheet1", prospectSheet)
	if _, err := f.NewSheet(statsSheet); err != nil {
		return fmt.Errorf("create stats sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2F5496"}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	for col, title := range workbookHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(prospectSheet, cell, title); err != nil {
			return err
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(workbookHeader), 1)
	if err := f.SetCellStyle(prospectSheet, "A1", last, headerStyle); err != nil {
		return err
	}

	for i, rec := range records {
		values := []any{
			rec.Company, rec.Website, rec.Industry, rec.Location,
			rec.Revenue, rec.Employees, rec.ContactName, rec.ContactTitle,
			rec.Summary, string(rec.QualityTag), rec.RetryCount, string(rec.Asset.Provenance),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(prospectSheet, cell, v); err != nil {
				return err
			}
		}
	}

	if err := f.SetColWidth(prospectSheet, "A", "A", 28); err != nil {
		return err
	}
	if err := f.SetColWidth(prospectSheet, "I", "I", 70); err != nil {
		return err
	}

	if err := writeStats(f, enrich.Summarize(records)); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func writeStats(f *excelize.File, stats enrich.Stats) error {
	lines := [][2]string{
		{"Total prospects", strconv.Itoa(stats.Total)},
		{"Excellent summaries", strconv.Itoa(stats.Excellent)},
		{"Good summaries", strconv.Itoa(stats.Good)},
		{"Needs review", strconv.Itoa(stats.NeedsReview)},
		{"Total retries", strconv.Itoa(stats.TotalRetries)},
		{"Logos from primary source", strconv.Itoa(stats.AssetPrimary)},
		{"Logos from secondary source", strconv.Itoa(stats.AssetSecondary)},
		{"Synthesized placeholders", strconv.Itoa(stats.AssetSynthesized)},
		{"No asset", strconv.Itoa(stats.AssetNone)},
	}
	for i, line := range lines {
		row := strconv.Itoa(i + 1)
		if err := f.SetCellValue(statsSheet, "A"+row, line[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(statsSheet, "B"+row, line[1]); err != nil {
			return err
		}
	}
	return f.SetColWidth(statsSheet, "A", "A", 32)
}
