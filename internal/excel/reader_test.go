package excel

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadOnboardingSkipsBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendor.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Title"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "UPC"))
	// Row 2 intentionally blank, data on row 3.
	require.NoError(t, f.SetCellValue("Sheet1", "A3", "Gadget"))
	require.NoError(t, f.SetCellValue("Sheet1", "B3", "123"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	headers, records, err := ReadOnboarding(wb, "Sheet1")
	require.NoError(t, err)

	assert.Equal(t, []string{"Title", "UPC"}, headers)
	require.Len(t, records, 1)
	assert.Equal(t, 3, records[0].Row)
	assert.Equal(t, "Gadget", records[0].Values["Title"])
	assert.Equal(t, "123", records[0].Values["UPC"])
}

func TestPickSheetPrefersMatchingHeaders(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vendor.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Notes"))
	require.NoError(t, f.SetCellValue("Notes", "A1", "Remember to call the vendor"))

	_, err := f.NewSheet("Products")
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Products", "A1", "Product Title"))
	require.NoError(t, f.SetCellValue("Products", "B1", "UPC"))
	require.NoError(t, f.SetCellValue("Products", "A2", "Gadget"))
	require.NoError(t, f.SetCellValue("Products", "B2", "123"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	sheet, err := PickSheet(wb, []string{"Title", "UPC Code", "Price ($)"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "Products", sheet)
}
