package excel

import (
	"fmt"
	"strings"

	"masterfile/internal/logger"
	"masterfile/internal/mapping"
)

// Record is one onboarding row, keyed by source column name. Values are
// kept as the raw cell strings; typing happens at write time.
type Record struct {
	Row    int // 1-based row in the onboarding sheet, for reporting
	Values map[string]string
}

// ReadOnboarding reads the header row and data records from an
// onboarding sheet. Row 1 holds the headers, rows 2+ the data; rows with
// no non-blank cell are skipped.
func ReadOnboarding(wb *Workbook, sheet string) ([]string, []Record, error) {
	rows, err := wb.Rows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read sheet %q: %v", sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var records []Record
	for i, row := range rows[1:] {
		values := make(map[string]string, len(headers))
		empty := true
		for c, h := range headers {
			if h == "" || c >= len(row) {
				continue
			}
			v := strings.TrimSpace(row[c])
			if v == "" {
				continue
			}
			values[h] = v
			empty = false
		}
		if empty {
			continue
		}
		records = append(records, Record{Row: i + 2, Values: values})
	}

	logger.Info("Read onboarding sheet",
		"sheet", sheet,
		"headers", len(headers),
		"records", len(records))

	return headers, records, nil
}

// PickSheet inspects every sheet of an onboarding workbook and picks the
// one whose headers satisfy the most template columns, counting alias
// hits. Ties break toward sheets that actually hold data.
func PickSheet(wb *Workbook, templateHeaders []string, aliases mapping.AliasTable) (string, error) {
	bestSheet := ""
	bestScore := -1.0

	for _, sheet := range wb.SheetNames() {
		headers, records, err := ReadOnboarding(wb, sheet)
		if err != nil {
			continue
		}

		m := mapping.Match(headers, templateHeaders, mapping.WithAliases(aliases))
		score := float64(len(m.Entries))
		if len(records) > 0 {
			score += 0.01 // tiny tie-breaker for having data
		}

		logger.Debug("Scored onboarding sheet",
			"sheet", sheet,
			"matched", len(m.Entries),
			"records", len(records))

		if score > bestScore {
			bestSheet = sheet
			bestScore = score
		}
	}

	if bestSheet == "" {
		return "", fmt.Errorf("no readable sheet found in onboarding workbook")
	}

	logger.Info("Picked onboarding sheet", "sheet", bestSheet)
	return bestSheet, nil
}
