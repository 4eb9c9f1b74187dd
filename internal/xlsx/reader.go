// Package xlsx reads office spreadsheets into raw rows for the import core.
package xlsx

import (
	"fmt"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/mvanrooyen/officeloader/internal/core"
)

// Reader loads rows from the first sheet of an .xlsx workbook. The first
// row supplies the column headers; SkipRows leading rows (the header row
// included) are excluded from the data. Row numbers on the returned rows
// are 1-based file positions, so error messages match what the user sees in
// the spreadsheet.
type Reader struct {
	SkipRows int
}

// NewReader creates a Reader that skips the given number of leading rows.
// At least the header row is always skipped.
func NewReader(skipRows int) *Reader {
	if skipRows < 1 {
		skipRows = 1
	}
	return &Reader{SkipRows: skipRows}
}

// ReadRows implements core.RowSource. Cells are trimmed; blank and missing
// cells come back as "". Fully empty rows are dropped.
func (r *Reader) ReadRows(path string) ([]core.RawRow, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("spreadsheet not found: %s", path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) <= r.SkipRows {
		return nil, fmt.Errorf("spreadsheet has no data rows after the first %d", r.SkipRows)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var out []core.RawRow
	for i := r.SkipRows; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}
		cells := make(map[string]string, len(headers))
		for j, header := range headers {
			if header == "" {
				continue
			}
			if j < len(row) {
				cells[header] = strings.TrimSpace(row[j])
			} else {
				cells[header] = ""
			}
		}
		out = append(out, core.RawRow{Row: i + 1, Cells: cells})
	}
	return out, nil
}

func isEmptyRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
