package app

import (
	"fmt"
	"io"
	"os"

	"github.com/prospectforge/prospectforge/internal/enrich"
	"github.com/prospectforge/prospectforge/internal/row"
)

func readCSVFile(path string) ([]row.NormalizedRow, row.Validation, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, row.Validation{}, err
	}
	defer func() {
		_ = f.Close()
	}()
	return row.ReadCSV(f)
}

// StderrProgress writes incremental progress lines for interactive runs.
type StderrProgress struct {
	W io.Writer
}

func (p StderrProgress) OnRow(index, total int, name string) {
	fmt.Fprintf(p.W, "[%d/%d] summarizing %s\n", index+1, total, name)
}

func (p StderrProgress) OnAsset(done, total int) {
	fmt.Fprintf(p.W, "logos: %d/%d\n", done, total)
}

var _ enrich.Progress = StderrProgress{}
