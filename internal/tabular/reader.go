// Package tabular reads the two-column activity tables fed to the analyzer.
package tabular

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/unzippd/portfolio/internal/domain/model"
)

// expected table shape: column 1 user id, column 2 time of day.
const columnCount = 2

// Read loads path as a delimited table of (user, time-of-day) rows.
//
// When hasHeader is true the first row is dropped, matching inputs exported
// with a title row. Any structural problem - missing file, a row without
// exactly two columns, no data rows left after the header strip - fails fast
// with an error wrapping ErrBadFormat; no partially parsed table is returned.
func Read(ctx context.Context, path string, hasHeader bool) ([]model.RawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = columnCount
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFormat, err)
	}
	if hasHeader && len(rows) > 0 {
		rows = rows[1:]
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: no data rows in %s", ErrBadFormat, path)
	}

	records := make([]model.RawRecord, len(rows))
	for i, row := range rows {
		records[i] = model.RawRecord{UserID: row[0], Clock: row[1]}
	}
	return records, nil
}
