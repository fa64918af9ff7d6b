package render

import (
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/prospectforge/prospectforge/internal/enrich"
)

// WriteDocument renders the paginated deliverable: one block per prospect,
// flowing across pages.
func WriteDocument(records []enrich.Record, title, path string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 18)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("%d prospects", len(records)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	for _, rec := range records {
		// Keep each block together when close to the page edge.
		if pdf.GetY() > 240 {
			pdf.AddPage()
		}

		pdf.SetFont("Helvetica", "B", 13)
		pdf.CellFormat(0, 8, rec.Company, "", 1, "L", false, 0, "")

		meta := metaLine(rec)
		if meta != "" {
			pdf.SetFont("Helvetica", "I", 9)
			pdf.SetTextColor(90, 90, 90)
			pdf.CellFormat(0, 5, meta, "", 1, "L", false, 0, "")
			pdf.SetTextColor(0, 0, 0)
		}

		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, rec.Summary, "", "L", false)

		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(130, 130, 130)
		pdf.CellFormat(0, 5, fmt.Sprintf("quality: %s", rec.QualityTag), "", 1, "L", false, 0, "")
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(3)
	}

	return pdf.OutputFileAndClose(path)
}

func metaLine(rec enrich.Record) string {
	parts := make([]string, 0, 4)
	for _, p := range []string{rec.Industry, rec.Location, rec.Revenue} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, p)
		}
	}
	if rec.ContactName != "" {
		contact := rec.ContactName
		if rec.ContactTitle != "" {
			contact += " (" + rec.ContactTitle + ")"
		}
		parts = append(parts, contact)
	}
	return strings.Join(parts, "  |  ")
}
