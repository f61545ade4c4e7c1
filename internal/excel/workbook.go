package excel

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Limits for the header span heuristic: scanning stops after this many
// consecutive blank columns, and never looks past the hard cap.
const (
	headerEmptyStreakStop = 8
	headerHardCap         = 512
)

// Workbook wraps an excelize file. The underlying document is mutated in
// place so styles, formulas, defined names and any embedded VBA project
// survive serialization.
type Workbook struct {
	file     *excelize.File
	filepath string
}

// Open opens an existing workbook. Both macro-free (.xlsx) and
// macro-enabled (.xlsm) containers are accepted.
func Open(filepath string) (*Workbook, error) {
	if err := checkContainerExt(filepath); err != nil {
		return nil, err
	}

	file, err := excelize.OpenFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return &Workbook{
		file:     file,
		filepath: filepath,
	}, nil
}

// Ext returns the container extension of the workbook (".xlsx" or ".xlsm").
func (w *Workbook) Ext() string {
	return strings.ToLower(filepath.Ext(w.filepath))
}

// SheetNames returns all sheet names in the workbook
func (w *Workbook) SheetNames() []string {
	return w.file.GetSheetList()
}

// HasSheet reports whether the workbook contains the named sheet.
func (w *Workbook) HasSheet(name string) bool {
	idx, err := w.file.GetSheetIndex(name)
	return err == nil && idx >= 0
}

// Rows returns all rows from a sheet
func (w *Workbook) Rows(sheet string) ([][]string, error) {
	return w.file.GetRows(sheet)
}

// HeaderSpan detects the used column span of a sheet by scanning the
// given number of header rows. A column counts as used when any header
// row has a value in it; scanning stops after a streak of blank columns.
func (w *Workbook) HeaderSpan(sheet string, headerRows int) (int, error) {
	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to get rows: %v", err)
	}
	if headerRows > len(rows) {
		headerRows = len(rows)
	}

	lastNonEmpty, streak := 0, 0
	for c := 0; c < headerHardCap; c++ {
		anyVal := false
		for r := 0; r < headerRows; r++ {
			if c < len(rows[r]) && strings.TrimSpace(rows[r][c]) != "" {
				anyVal = true
				break
			}
		}
		if anyVal {
			lastNonEmpty = c + 1
			streak = 0
		} else {
			streak++
			if streak >= headerEmptyStreakStop {
				break
			}
		}
	}

	if lastNonEmpty == 0 {
		lastNonEmpty = 1
	}
	return lastNonEmpty, nil
}

// Headers returns the display labels (row 1) of a sheet, padded out to
// the detected header span.
func (w *Workbook) Headers(sheet string, headerRows int) ([]string, error) {
	span, err := w.HeaderSpan(sheet, headerRows)
	if err != nil {
		return nil, err
	}

	rows, err := w.file.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows: %v", err)
	}

	headers := make([]string, span)
	if len(rows) > 0 {
		for c := 0; c < span && c < len(rows[0]); c++ {
			headers[c] = rows[0][c]
		}
	}
	return headers, nil
}

// CellValue returns the value in a specific cell
func (w *Workbook) CellValue(sheet, cell string) (string, error) {
	return w.file.GetCellValue(sheet, cell)
}

// SetCellValue sets a value in a specific cell
func (w *Workbook) SetCellValue(sheet, cell string, value interface{}) error {
	return w.file.SetCellValue(sheet, cell, value)
}

// SetCellValueSmart sets a cell value, automatically detecting numbers.
// Only the cell content changes; the cell keeps whatever style and
// number format the template defines for it.
func (w *Workbook) SetCellValueSmart(sheet, cell string, value string) error {
	return w.file.SetCellValue(sheet, cell, parseCellValue(value))
}

// parseCellValue attempts to parse a string as a number. Values with a
// significant leading zero (UPC/EAN codes) stay strings so the zero
// survives the round trip.
func parseCellValue(value string) interface{} {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return value
	}

	if len(trimmed) > 1 && trimmed[0] == '0' && !strings.Contains(trimmed, ".") {
		return value
	}

	if intVal, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return intVal
	}

	if floatVal, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return floatVal
	}

	return value
}

// mergeRange is a merged cell area in 1-based coordinates.
type mergeRange struct {
	x1, y1, x2, y2 int
}

func (r mergeRange) contains(col, row int) bool {
	return col >= r.x1 && col <= r.x2 && row >= r.y1 && row <= r.y2
}

func (r mergeRange) isAnchor(col, row int) bool {
	return col == r.x1 && row == r.y1
}

// mergedRanges returns the merged cell areas of a sheet.
func (w *Workbook) mergedRanges(sheet string) ([]mergeRange, error) {
	cells, err := w.file.GetMergeCells(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get merged cells: %v", err)
	}

	ranges := make([]mergeRange, 0, len(cells))
	for _, mc := range cells {
		x1, y1, err := excelize.CellNameToCoordinates(mc.GetStartAxis())
		if err != nil {
			return nil, err
		}
		x2, y2, err := excelize.CellNameToCoordinates(mc.GetEndAxis())
		if err != nil {
			return nil, err
		}
		ranges = append(ranges, mergeRange{x1: x1, y1: y1, x2: x2, y2: y2})
	}
	return ranges, nil
}

// SaveAs persists the workbook to a new path. The destination must keep
// the container variant of the source file: a macro-enabled template
// stays macro-enabled.
func (w *Workbook) SaveAs(path string) error {
	if err := checkContainerExt(path); err != nil {
		return err
	}
	if strings.ToLower(filepath.Ext(path)) != w.Ext() {
		return fmt.Errorf("output extension %s does not match template container %s", filepath.Ext(path), w.Ext())
	}
	return w.file.SaveAs(path)
}

// Close closes the workbook
func (w *Workbook) Close() error {
	return w.file.Close()
}

func checkContainerExt(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx", ".xlsm":
		return nil
	default:
		return fmt.Errorf("unsupported container format: %s", path)
	}
}
