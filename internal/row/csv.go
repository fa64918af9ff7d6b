package row

import (
	"encoding/csv"
	"fmt"
	"io"
)

// ReadCSV parses a prospect export and returns the normalized rows plus the
// validation gate result. A non-nil error means the file itself could not be
// read; schema problems surface through the Validation instead.
func ReadCSV(r io.Reader) ([]NormalizedRow, Validation, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, Validation{}, fmt.Errorf("read header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, col := range header {
		if name, ok := canonicalColumn(col); ok {
			if _, dup := columns[name]; !dup {
				columns[name] = i
			}
		}
	}

	var rows []NormalizedRow
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, Validation{}, fmt.Errorf("read row: %w", err)
		}
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
