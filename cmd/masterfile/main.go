package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"masterfile/internal/config"
	"masterfile/internal/excel"
	"masterfile/internal/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]

	cfg, err := config.LoadConfig("configs/config.toml")
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}

	switch command {
	case "fill":
		if len(os.Args) < 3 {
			fmt.Println("Error: fill command requires an onboarding file path")
			fmt.Println("Usage: masterfile fill <onboarding_file>")
			return
		}
		runFill(cfg, os.Args[2])
	case "fill-all":
		runFillAll(cfg)
	case "match":
		if len(os.Args) < 3 {
			fmt.Println("Error: match command requires an onboarding file path")
			fmt.Println("Usage: masterfile match <onboarding_file>")
			return
		}
		runMatch(cfg, os.Args[2])
	case "scan":
		runScan(cfg)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
	}
}

func printUsage() {
	fmt.Println("Masterfile - Onboarding-to-Masterfile Transfer Tool")
	fmt.Println("\nUsage:")
	fmt.Println("  masterfile fill <onboarding_file>     - Fill the masterfile template from one onboarding workbook")
	fmt.Println("  masterfile fill-all                   - Fill from every onboarding workbook in the input directory")
	fmt.Println("  masterfile match <onboarding_file>    - Show the column mapping without writing anything")
	fmt.Println("  masterfile scan                       - Scan onboarding workbooks for column names")
}

func runFill(cfg *config.Config, inputFile string) {
	logger.Info("Starting fill operation", "input_file", inputFile)

	if err := os.MkdirAll(cfg.Input.OutputDirectory, 0755); err != nil {
		fmt.Printf("Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	report, err := excel.FillFile(inputFile, outputPathFor(cfg, inputFile, cfg.Input.OutputDirectory), cfg)
	if err != nil {
		logger.Error("Fill operation failed", "error", err)
		fmt.Printf("Error filling masterfile: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✓ Masterfile filled successfully!")
	fmt.Print(report.Summary())
}

func runFillAll(cfg *config.Config) {
	logger.Info("Starting fill-all operation", "input_directory", cfg.Input.OnboardingDirectory)

	files, err := excel.WorkbookFiles(cfg.Input.OnboardingDirectory)
	if err != nil {
		logger.Error("Failed to list onboarding workbooks", "error", err)
		fmt.Printf("Error listing onboarding workbooks: %v\n", err)
		return
	}

	if len(files) == 0 {
		fmt.Printf("No workbooks found in directory: %s\n", cfg.Input.OnboardingDirectory)
		return
	}

	logger.Info("Found files to fill", "file_count", len(files))

	resultsDir := filepath.Join(cfg.Input.OutputDirectory, "results")
	if err := os.MkdirAll(resultsDir, 0755); err != nil {
		logger.Error("Failed to create results directory", "error", err)
		fmt.Printf("Error creating results directory: %v\n", err)
		return
	}

	successCount := 0
	errorCount := 0
	rowsTotal := 0

	for i, inputFile := range files {
		fileName := filepath.Base(inputFile)
		fmt.Printf("\n[%d/%d] Processing: %s\n", i+1, len(files), fileName)

		logger.Info("Processing file", "file", fileName, "progress", fmt.Sprintf("%d/%d", i+1, len(files)))

		report, err := excel.FillFile(inputFile, outputPathFor(cfg, inputFile, resultsDir), cfg)
		if err != nil {
			logger.Error("Failed to fill from file", "file", fileName, "error", err)
			fmt.Printf("❌ Error: %v\n", err)
			errorCount++
			continue
		}

		fmt.Print(report.Summary())
		successCount++
		rowsTotal += report.RowsWritten
	}

	logger.Info("Fill-all operation completed",
		"success_count", successCount,
		"error_count", errorCount,
		"rows_total", rowsTotal)

	fmt.Printf("\n========================================\n")
	fmt.Printf("Fill complete!\n")
	fmt.Printf("✓ Success: %d files, %d rows written\n", successCount, rowsTotal)
	if errorCount > 0 {
		fmt.Printf("❌ Errors: %d files\n", errorCount)
	}
	fmt.Printf("Results saved to: %s\n", resultsDir)
}

func runMatch(cfg *config.Config, inputFile string) {
	logger.Info("Starting match preview", "input_file", inputFile)

	report, err := excel.PreviewFile(inputFile, cfg)
	if err != nil {
		logger.Error("Match preview failed", "error", err)
		fmt.Printf("Error matching columns: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(report.Summary())
}

func runScan(cfg *config.Config) {
	logger.Info("Starting scan operation")
	fmt.Println("\nScanning onboarding workbooks for column names...")
	err := excel.ScanAllColumnsInDirectory(cfg.Input.OnboardingDirectory, cfg.Input.OutputDirectory)
	if err != nil {
		logger.Error("Scan operation failed", "error", err)
		fmt.Printf("Error scanning workbooks: %v\n", err)
		os.Exit(1)
	}
}

// outputPathFor derives the output file name from the onboarding file,
// keeping the template's container extension so a macro-enabled template
// produces a macro-enabled output.
func outputPathFor(cfg *config.Config, inputFile, dir string) string {
	stem := strings.TrimSuffix(filepath.Base(inputFile), filepath.Ext(inputFile))
	ext := filepath.Ext(cfg.Template.MasterfilePath)
	return filepath.Join(dir, stem+"_masterfile"+ext)
}
