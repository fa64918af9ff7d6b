package row

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ReadXLSX parses the first sheet of a workbook export, applying the same
// header aliasing and validation as ReadCSV.
func ReadXLSX(path string) ([]NormalizedRow, Validation, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, Validation{}, fmt.Errorf("open workbook: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, Validation{}, fmt.Errorf("workbook has no sheets")
	}

	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, Validation{}, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, validate(map[string]int{}, nil), nil
	}

	columns := make(map[string]int, len(records[0]))
	for i, col := range records[0] {
		if name, ok := canonicalColumn(col); ok {
			if _, dup := columns[name]; !dup {
				columns[name] = i
			}
		}
	}

	var rows []NormalizedRow
	for _, rec := range records[1:] {
		fields := make(map[string]string, len(columns))
		for name, idx := range columns {
			if idx < len(rec) {
				fields[name] = rec[idx]
			}
		}
		rows = append(rows, fromFields(fields))
	}

	return rows, validate(columns, rows), nil
}
