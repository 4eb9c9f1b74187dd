package xlsx

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// writeWorkbook creates an .xlsx file with the given rows on the first sheet.
func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	path := filepath.Join(t.TempDir(), "offices.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())
	return path
}

func TestReadRows_HeaderMappingAndOffset(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"OfficeCode", "OfficeDesc", "Address1"},
		{"HQ", "Head Office", "12 Long Street"},
		{"", "Cape Town Branch", ""},
	})

	rows, err := NewReader(1).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 2, rows[0].Row)
	assert.Equal(t, "HQ", rows[0].Cells["OfficeCode"])
	assert.Equal(t, "Head Office", rows[0].Cells["OfficeDesc"])
	assert.Equal(t, "12 Long Street", rows[0].Cells["Address1"])

	// Empty cells are present with an explicit empty value.
	assert.Equal(t, 3, rows[1].Row)
	code, ok := rows[1].Cells["OfficeCode"]
	assert.True(t, ok)
	assert.Equal(t, "", code)
}

func TestReadRows_SkipsExtraLeadingRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"OfficeCode", "OfficeDesc"},
		{"template", "do not fill in"},
		{"HQ", "Head Office"},
	})

	rows, err := NewReader(2).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Row)
	assert.Equal(t, "HQ", rows[0].Cells["OfficeCode"])
}

func TestReadRows_TrimsCellsAndHeaders(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{" OfficeCode ", "OfficeDesc"},
		{"  HQ  ", " Head Office "},
	})

	rows, err := NewReader(1).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "HQ", rows[0].Cells["OfficeCode"])
	assert.Equal(t, "Head Office", rows[0].Cells["OfficeDesc"])
}

func TestReadRows_DropsEmptyRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"OfficeCode", "OfficeDesc"},
		{"", ""},
		{"HQ", "Head Office"},
	})

	rows, err := NewReader(1).ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 3, rows[0].Row)
}

func TestReadRows_NoDataRows(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"OfficeCode", "OfficeDesc"},
	})

	_, err := NewReader(1).ReadRows(path)
	assert.ErrorContains(t, err, "no data rows")
}

func TestReadRows_MissingFile(t *testing.T) {
	_, err := NewReader(1).ReadRows(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.ErrorContains(t, err, "not found")
}

func TestNewReader_MinimumSkip(t *testing.T) {
	assert.Equal(t, 1, NewReader(0).SkipRows)
	assert.Equal(t, 3, NewReader(3).SkipRows)
}
