package app

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadInput_UnsupportedExtension(t *testing.T) {
	t.Parallel()
	if _, _, err := readInput("prospects.json"); err == nil {
		t.Fatal("expected an error for an unsupported extension")
	}
}

func TestReadInput_CSV(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "prospects.csv")
	data := "Company,Description\nAcme,Acme makes widgets.\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	rows, validation, err := readInput(path)
	if err != nil {
		t.Fatal(err)
	}
	if !validation.OK || len(rows) != 1 || rows[0].CompanyName != "Acme" {
		t.Fatalf("rows = %+v, validation = %+v", rows, validation)
	}
}

func TestStderrProgress(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	p := StderrProgress{W: &buf}

	p.OnRow(0, 3, "Acme Widgets")
	p.OnAsset(2, 3)

	out := buf.String()
	if !strings.Contains(out, "[1/3] summarizing Acme Widgets") {
		t.Errorf("row line missing: %q", out)
	}
	if !strings.Contains(out, "logos: 2/3") {
		t.Errorf("asset line missing: %q", out)
	}
}
