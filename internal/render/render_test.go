package render_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/prospectforge/prospectforge/internal/enrich"
	"github.com/prospectforge/prospectforge/internal/logo"
	"github.com/prospectforge/prospectforge/internal/quality"
	"github.com/prospectforge/prospectforge/internal/render"
)

func sampleRecords() []enrich.Record {
	return []enrich.Record{
		{
			Company:      "Acme Widgets, Inc.",
			Website:      "https://www.acme.com",
			Industry:     "Manufacturing",
			Location:     "Columbus, OH, USA",
			Revenue:      "$12M",
			Employees:    "85",
			ContactName:  "Jane Doe",
			ContactTitle: "VP Sales",
			Summary:      "Acme Widgets, Inc. manufactures custom widgets and precision tooling for industrial clients.",
			QualityTag:   quality.TierExcellent,
			RetryCount:   0,
			Asset:        logo.Asset{Provenance: logo.ProvenancePrimary},
		},
		{
			Company:    "Globex Corporation",
			Summary:    "Globex Corporation operates regional power plants.",
			QualityTag: quality.TierNeedsReview,
			RetryCount: 2,
			Asset:      logo.Asset{Provenance: logo.ProvenanceSynthesized},
		},
	}
}

func TestWriteWorkbook(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	if err := render.WriteWorkbook(sampleRecords(), path); err != nil {
		t.Fatal(err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) != 2 || sheets[0] != "Prospects" || sheets[1] != "Summary" {
		t.Fatalf("sheets = %v", sheets)
	}

	rows, err := f.GetRows("Prospects")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header plus 2 records", len(rows))
	}
	if rows[0][0] != "Company" || rows[0][8] != "Summary" {
		t.Fatalf("header = %v", rows[0])
	}
	if rows[1][0] != "Acme Widgets, Inc." || rows[1][9] != "excellent" {
		t.Fatalf("record row = %v", rows[1])
	}
	if rows[2][10] != "2" || rows[2][11] != "synthesized" {
		t.Fatalf("retry/provenance cells = %v", rows[2])
	}

	stats, err := f.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(stats) == 0 || stats[0][0] != "Total prospects" || stats[0][1] != "2" {
		t.Fatalf("stats sheet = %v", stats)
	}
}

func TestWriteWorkbook_EmptyRecords(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	if err := render.WriteWorkbook(nil, path); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatal(err)
	}
}

func TestWriteDocument(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "out.pdf")

	if err := render.WriteDocument(sampleRecords(), "Prospect Report", path); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) < 4 || string(b[:4]) != "%PDF" {
		t.Fatalf("output is not a PDF (%d bytes)", len(b))
	}
}

func TestWriteDocument_ManyRecordsPaginate(t *testing.T) {
	t.Parallel()
	records := make([]enrich.Record, 60)
	for i := range records {
		records[i] = enrich.Record{
			Company:    "Filler Co",
			Summary:    "Filler Co exists to push the document across a page boundary during this test.",
			QualityTag: quality.TierGood,
		}
	}

	path := filepath.Join(t.TempDir(), "long.pdf")
	if err := render.WriteDocument(records, "Long Report", path); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(path); err != nil || info.Size() == 0 {
		t.Fatalf("stat: %v", err)
	}
}
