package excel

import (
	"fmt"
	"strings"

	"masterfile/internal/logger"
	"masterfile/internal/mapping"

	"github.com/xuri/excelize/v2"
)

// WriteOptions controls where and how records land in the target sheet.
type WriteOptions struct {
	// DataStartRow is the first row that may hold data (1-based). The
	// rows above it are the template's header block.
	DataStartRow int
	// MaxDataRows caps the data area of the sheet. Zero means the Excel
	// hard row limit.
	MaxDataRows int
	// Constants are fixed values written into the given 0-based columns
	// on every written row.
	Constants map[int]string
}

// SkippedRow is a record that could not be written. The run continues;
// the row's cells keep their template defaults.
type SkippedRow struct {
	SourceRow int // row in the onboarding sheet
	SheetRow  int // row in the target sheet that was skipped
	Err       error
}

// WriteResult summarizes a fill of one sheet.
type WriteResult struct {
	StartRow    int
	RowsWritten int
	Skipped     []SkippedRow
}

// Fill writes the mapped record values into the target sheet, one sheet
// row per record in input order, starting at the first free data row.
// Only cell contents change: styles, number formats, formulas in other
// cells and the sheet structure are left alone. Capacity is checked
// before the first write so an overflowing run mutates nothing.
func Fill(wb *Workbook, sheet string, m *mapping.Mapping, records []Record, opts WriteOptions) (*WriteResult, error) {
	if opts.DataStartRow < 1 {
		opts.DataStartRow = 1
	}

	columns := make([]int, 0, len(m.Entries)+len(opts.Constants))
	for _, e := range m.Entries {
		columns = append(columns, e.Column+1)
	}
	for col := range opts.Constants {
		columns = append(columns, col+1)
	}

	result := &WriteResult{}
	if len(records) == 0 || len(columns) == 0 {
		return result, nil
	}

	startRow, err := nextFreeRow(wb, sheet, columns, opts.DataStartRow)
	if err != nil {
		return nil, err
	}
	result.StartRow = startRow

	limit := excelize.TotalRows
	if opts.MaxDataRows > 0 {
		limit = opts.DataStartRow + opts.MaxDataRows - 1
	}
	capacity := limit - startRow + 1
	if capacity < 0 {
		capacity = 0
	}
	if len(records) > capacity {
		return nil, &RowOverflowError{Sheet: sheet, Capacity: capacity, Records: len(records)}
	}

	merged, err := wb.mergedRanges(sheet)
	if err != nil {
		return nil, err
	}

	for i, rec := range records {
		sheetRow := startRow + i

		// Refuse the whole row before touching any of its cells.
		if cell, conflict := mergeConflict(merged, columns, sheetRow); conflict {
			werr := &CellWriteError{Sheet: sheet, Cell: cell, Reason: "cell is merged into another cell"}
			result.Skipped = append(result.Skipped, SkippedRow{SourceRow: rec.Row, SheetRow: sheetRow, Err: werr})
			logger.Warn("Skipping record", "source_row", rec.Row, "sheet_row", sheetRow, "error", werr)
			continue
		}

		for _, e := range m.Entries {
			value, ok := rec.Values[e.Source]
			if !ok || value == "" {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(e.Column+1, sheetRow)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValueSmart(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %v", cell, err)
			}
		}

		for col, value := range opts.Constants {
			cell, err := excelize.CoordinatesToCellName(col+1, sheetRow)
			if err != nil {
				return nil, err
			}
			if err := wb.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("failed to write cell %s: %v", cell, err)
			}
		}

		result.RowsWritten++
	}

	logger.Info("Filled sheet",
		"sheet", sheet,
		"start_row", result.StartRow,
		"rows_written", result.RowsWritten,
		"rows_skipped", len(result.Skipped))

	return result, nil
}

// nextFreeRow finds the first row at or below startRow where every
// mapped column is empty. Re-running against a part-filled template
// appends instead of overwriting.
func nextFreeRow(wb *Workbook, sheet string, columns []int, startRow int) (int, error) {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return 0, fmt.Errorf("failed to get rows: %v", err)
	}

	for r := startRow; ; r++ {
		if r > len(rows) {
			return r, nil
		}
		row := rows[r-1]
		occupied := false
		for _, c := range columns {
			if c <= len(row) && strings.TrimSpace(row[c-1]) != "" {
				occupied = true
				break
			}
		}
		if !occupied {
			return r, nil
		}
	}
}

// mergeConflict reports the first destination cell in the row that lies
// inside a merged range without being its anchor.
func mergeConflict(merged []mergeRange, columns []int, row int) (string, bool) {
	for _, c := range columns {
		for _, mr := range merged {
			if mr.contains(c, row) && !mr.isAnchor(c, row) {
				cell, _ := excelize.CoordinatesToCellName(c, row)
				return cell, true
			}
		}
	}
	return "", false
}
