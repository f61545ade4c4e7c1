package excel

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ScanAllColumnsInDirectory scans every workbook in the input directory
// and collects all unique column names across all sheets into the
// scanned_columns file. The file is the raw material for curating the
// alias table.
func ScanAllColumnsInDirectory(inputDir, outputDir string) error {
	if err := os.MkdirAll(inputDir, 0755); err != nil {
		return fmt.Errorf("failed to create input directory: %v", err)
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %v", err)
	}

	files, err := WorkbookFiles(inputDir)
	if err != nil {
		return fmt.Errorf("failed to list workbooks: %v", err)
	}

	if len(files) == 0 {
		fmt.Printf("No workbooks found in directory: %s\n", inputDir)
		return nil
	}

	fmt.Printf("Found %d workbooks to scan\n", len(files))

	uniqueColumns := make(map[string]bool)
	for _, filePath := range files {
		fmt.Printf("Scanning file: %s\n", filepath.Base(filePath))

		if err := scanFileColumns(filePath, uniqueColumns); err != nil {
			fmt.Printf("Warning: Failed to scan file %s: %v\n", filepath.Base(filePath), err)
			continue
		}
	}

	columnNames := make([]string, 0, len(uniqueColumns))
	for column := range uniqueColumns {
		columnNames = append(columnNames, column)
	}
	sort.Strings(columnNames)

	outputFilePath := filepath.Join(outputDir, "scanned_columns")
	if err := writeColumnsToFile(outputFilePath, columnNames); err != nil {
		return fmt.Errorf("failed to write columns to file: %v", err)
	}

	fmt.Printf("✓ Scanning completed successfully!\n")
	fmt.Printf("✓ Found %d unique column names across all files\n", len(columnNames))
	fmt.Printf("✓ Results saved to '%s' file\n", outputFilePath)

	return nil
}

// WorkbookFiles returns all .xlsx and .xlsm files under the directory.
func WorkbookFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		switch strings.ToLower(filepath.Ext(path)) {
		case ".xlsx", ".xlsm":
			if !info.IsDir() {
				files = append(files, path)
			}
		}

		return nil
	})

	return files, err
}

// scanFileColumns scans all sheets in a single workbook and adds the
// header names to the set.
func scanFileColumns(filePath string, uniqueColumns map[string]bool) error {
	wb, err := Open(filePath)
	if err != nil {
		return fmt.Errorf("failed to open file: %v", err)
	}
	defer wb.Close()

	for _, sheetName := range wb.SheetNames() {
		fmt.Printf("  - Scanning sheet: %s\n", sheetName)

		headers, err := wb.Headers(sheetName, 1)
		if err != nil {
			fmt.Printf("    Warning: Failed to read headers from sheet %s: %v\n", sheetName, err)
			continue
		}

		for _, header := range headers {
			trimmed := strings.TrimSpace(header)
			if trimmed != "" {
				uniqueColumns[trimmed] = true
			}
		}

		fmt.Printf("    Found %d column headers\n", len(headers))
	}

	return nil
}

// writeColumnsToFile writes the column names to a plain text file
func writeColumnsToFile(filename string, columns []string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %v", err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	for _, column := range columns {
		if _, err := writer.WriteString(column + "\n"); err != nil {
			return fmt.Errorf("failed to write column: %v", err)
		}
	}

	return nil
}
