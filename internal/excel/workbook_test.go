package excel

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestOpenRejectsUnsupportedContainer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a,b\n"), 0644))

	_, err := Open(path)
	assert.ErrorContains(t, err, "unsupported container format")
}

func TestSaveAsKeepsContainerVariant(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")
	newTemplateFile(t, path)

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, ".xlsx", wb.Ext())

	err = wb.SaveAs(filepath.Join(t.TempDir(), "out.xlsm"))
	assert.ErrorContains(t, err, "does not match template container")
}

func TestHeaderSpanStopsAtBlankStreak(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "One"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "Two"))
	require.NoError(t, f.SetCellValue("Sheet1", "C1", "Three"))
	// P1 sits beyond the blank-column streak and must be ignored.
	require.NoError(t, f.SetCellValue("Sheet1", "P1", "Stray"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	span, err := wb.HeaderSpan("Sheet1", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, span)

	headers, err := wb.Headers("Sheet1", 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "Two", "Three"}, headers)
}

func TestHeaderSpanSecondRowExtends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "template.xlsx")

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "One"))
	// Row 2 carries an internal key past the display labels.
	require.NoError(t, f.SetCellValue("Sheet1", "C2", "internal_key"))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	wb, err := Open(path)
	require.NoError(t, err)
	defer wb.Close()

	span, err := wb.HeaderSpan("Sheet1", 2)
	require.NoError(t, err)
	assert.Equal(t, 3, span)

	// Display headers pad out to the span.
	headers, err := wb.Headers("Sheet1", 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"One", "", ""}, headers)
}

func TestParseCellValue(t *testing.T) {
	assert.Equal(t, int64(42), parseCellValue("42"))
	assert.Equal(t, 19.99, parseCellValue("19.99"))
	assert.Equal(t, "036000291452", parseCellValue("036000291452"))
	// A leading zero before the decimal point is not significant.
	assert.Equal(t, 0.5, parseCellValue("0.5"))
	assert.Equal(t, "Gadget", parseCellValue("Gadget"))
	assert.Equal(t, "", parseCellValue(""))
}
