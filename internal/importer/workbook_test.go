package importer

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xuri/excelize/v2"
)

func writeTestWorkbook(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Sony"))
	require.NoError(t, f.SetCellValue("Sony", "A1", "Item Code"))
	require.NoError(t, f.SetCellValue("Sony", "B1", "Description"))
	require.NoError(t, f.SetCellValue("Sony", "C1", "RSP+VAT"))
	require.NoError(t, f.SetCellValue("Sony", "A2", "S1"))
	require.NoError(t, f.SetCellValue("Sony", "B2", "55 inch TV"))
	require.NoError(t, f.SetCellValue("Sony", "C2", "500"))
	// Blank row, then another record
	require.NoError(t, f.SetCellValue("Sony", "A4", "S2"))
	require.NoError(t, f.SetCellValue("Sony", "B4", "Soundbar"))

	_, err := f.NewSheet("LG")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("LG", "A1", "Item Code"))
	require.NoError(t, f.SetCellValue("LG", "B1", "Description"))
	require.NoError(t, f.SetCellValue("LG", "A2", "L1"))
	require.NoError(t, f.SetCellValue("LG", "B2", "Fridge"))

	path := filepath.Join(t.TempDir(), "catalog.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadWorkbook(t *testing.T) {
	wb, err := ReadWorkbook(writeTestWorkbook(t))
	require.NoError(t, err)

	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "Sony", wb.Sheets[0].Name)
	assert.Equal(t, "LG", wb.Sheets[1].Name)

	require.Len(t, wb.Sheets[0].Rows, 2, "blank rows are dropped")
	assert.Equal(t, "S1", wb.Sheets[0].Rows[0]["Item Code"])
	assert.Equal(t, "500", wb.Sheets[0].Rows[0]["RSP+VAT"])
	assert.Equal(t, "Soundbar", wb.Sheets[0].Rows[1]["Description"])

	assert.Equal(t, 3, wb.TotalRows())
}

func TestReadWorkbookHeaderOnlyIsEmpty(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Item Code"))
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))

	_, err := ReadWorkbook(path)
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestReadWorkbookMissingFile(t *testing.T) {
	_, err := ReadWorkbook(filepath.Join(t.TempDir(), "nope.xlsx"))
	assert.Error(t, err)
}
