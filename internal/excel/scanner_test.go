package excel

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWorkbookFiles(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"a.xlsx", "b.XLSM", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	files, err := WorkbookFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.xlsx", filepath.Base(files[0]))
	assert.Equal(t, "b.XLSM", filepath.Base(files[1]))
}

func TestScanAllColumnsInDirectory(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()

	f := excelize.NewFile()
	require.NoError(t, f.SetCellValue("Sheet1", "A1", "Title"))
	require.NoError(t, f.SetCellValue("Sheet1", "B1", "UPC"))
	require.NoError(t, f.SaveAs(filepath.Join(inputDir, "vendor.xlsx")))
	require.NoError(t, f.Close())

	require.NoError(t, ScanAllColumnsInDirectory(inputDir, outputDir))

	data, err := os.ReadFile(filepath.Join(outputDir, "scanned_columns"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Title", "UPC"}, strings.Fields(string(data)))
}
