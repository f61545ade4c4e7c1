package excel

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"masterfile/internal/config"
	"masterfile/internal/logger"
	"masterfile/internal/mapping"
)

// Report is the outcome of one fill run, returned to the caller and
// rendered as the end-of-run console summary. Warnings accumulate here;
// they never abort the run.
type Report struct {
	OnboardingFile  string
	OnboardingSheet string
	TargetSheet     string
	OutputFile      string

	Mapping     *mapping.Mapping
	StartRow    int
	RowsWritten int
	Skipped     []SkippedRow
	Warnings    []string
	Suggestions []mapping.Suggestion
}

// Summary renders the human-readable end-of-run summary.
func (r *Report) Summary() string {
	var b strings.Builder

	fmt.Fprintf(&b, "Onboarding: %s (sheet %q)\n", filepath.Base(r.OnboardingFile), r.OnboardingSheet)
	fmt.Fprintf(&b, "Target sheet: %s\n", r.TargetSheet)
	fmt.Fprintf(&b, "Columns matched: %d\n", len(r.Mapping.Entries))
	for _, e := range r.Mapping.Entries {
		fmt.Fprintf(&b, "  ✓ %s → %s (%s", e.Source, e.Target, e.Via)
		if e.Via == mapping.MethodFuzzy {
			fmt.Fprintf(&b, " %.0f%%", e.Score*100)
		}
		b.WriteString(")\n")
	}
	if r.OutputFile != "" {
		fmt.Fprintf(&b, "Rows written: %d\n", r.RowsWritten)
	}

	for _, col := range r.Mapping.Unmatched {
		fmt.Fprintf(&b, "  ❌ unmatched column: %s\n", col)
	}
	for _, s := range r.Skipped {
		fmt.Fprintf(&b, "  ❌ onboarding row %d skipped: %v\n", s.SourceRow, s.Err)
	}
	for _, w := range r.Warnings {
		fmt.Fprintf(&b, "  ❌ %s\n", w)
	}
	for _, s := range r.Suggestions {
		fmt.Fprintf(&b, "  ? suggestion: %s → %s (%.0f%% confidence)\n", s.ScannedColumn, s.TargetColumn, s.Confidence*100)
	}

	if r.OutputFile != "" {
		fmt.Fprintf(&b, "Output: %s\n", r.OutputFile)
	}

	return b.String()
}

// FillFile runs the whole pipeline for one onboarding workbook: load the
// template, verify the required sheets, match columns, write the records
// and persist the result to outputPath. Fatal errors return before
// anything is saved, so the template file on disk is never left
// half-written.
func FillFile(onboardingPath, outputPath string, cfg *config.Config) (*Report, error) {
	return run(onboardingPath, outputPath, cfg)
}

// PreviewFile runs the matching stages only: nothing is written and no
// output file is produced. Used by the "match" command.
func PreviewFile(onboardingPath string, cfg *config.Config) (*Report, error) {
	return run(onboardingPath, "", cfg)
}

func run(onboardingPath, outputPath string, cfg *config.Config) (*Report, error) {
	template, err := Open(cfg.Template.MasterfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open template: %v", err)
	}
	defer template.Close()

	headerRows := cfg.Template.HeaderRows
	templateHeaders := make(map[string][]string, len(cfg.Template.Sheets))
	for _, sheet := range cfg.Template.Sheets {
		if !template.HasSheet(sheet) {
			return nil, &SheetNotFoundError{Sheet: sheet}
		}
		headers, err := template.Headers(sheet, headerRows)
		if err != nil {
			return nil, err
		}
		templateHeaders[sheet] = headers
	}

	var aliases mapping.AliasTable
	if cfg.Match.AliasesFile != "" {
		if aliases, err = mapping.LoadAliases(cfg.Match.AliasesFile); err != nil {
			return nil, err
		}
	}

	onb, err := Open(onboardingPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open onboarding workbook: %v", err)
	}
	defer onb.Close()

	sheet := cfg.Input.OnboardingSheet
	if sheet == "" {
		if sheet, err = PickSheet(onb, unionHeaders(cfg.Template.Sheets, templateHeaders), aliases); err != nil {
			return nil, err
		}
	} else if !onb.HasSheet(sheet) {
		return nil, fmt.Errorf("sheet %q not found in onboarding workbook", sheet)
	}

	headers, records, err := ReadOnboarding(onb, sheet)
	if err != nil {
		return nil, err
	}

	// The destination is the required sheet whose headers fit best.
	matchOpts := []mapping.Option{
		mapping.WithThreshold(cfg.Match.Threshold),
		mapping.WithAliases(aliases),
	}
	var (
		target string
		m      *mapping.Mapping
	)
	for _, s := range cfg.Template.Sheets {
		cand := mapping.Match(headers, templateHeaders[s], matchOpts...)
		if m == nil || len(cand.Entries) > len(m.Entries) {
			target, m = s, cand
		}
	}

	report := &Report{
		OnboardingFile:  onboardingPath,
		OnboardingSheet: sheet,
		TargetSheet:     target,
		Mapping:         m,
	}

	if cfg.AI.Enabled && len(m.Unmatched) > 0 {
		report.Suggestions = suggest(cfg, m, templateHeaders[target])
	}

	if outputPath == "" {
		return report, nil
	}

	constants, unresolved := resolveConstants(cfg.Fill.Constants, templateHeaders[target], m)
	for _, name := range unresolved {
		report.Warnings = append(report.Warnings, fmt.Sprintf("constant fill column not found in template: %s", name))
	}

	result, err := Fill(template, target, m, records, WriteOptions{
		DataStartRow: cfg.Template.DataStartRow,
		MaxDataRows:  cfg.Template.MaxDataRows,
		Constants:    constants,
	})
	if err != nil {
		return nil, err
	}
	report.StartRow = result.StartRow
	report.RowsWritten = result.RowsWritten
	report.Skipped = result.Skipped

	if err := template.SaveAs(outputPath); err != nil {
		return nil, fmt.Errorf("failed to save output: %v", err)
	}
	report.OutputFile = outputPath

	logger.Info("Fill run completed",
		"onboarding", onboardingPath,
		"output", outputPath,
		"rows_written", report.RowsWritten,
		"warnings", len(report.Mapping.Unmatched)+len(report.Skipped)+len(report.Warnings))

	return report, nil
}

// resolveConstants turns the configured header-name -> value table into
// 0-based column positions on the target sheet. Columns already claimed
// by the mapping keep the record values.
func resolveConstants(constants map[string]string, headers []string, m *mapping.Mapping) (map[int]string, []string) {
	if len(constants) == 0 {
		return nil, nil
	}

	mapped := make(map[int]bool, len(m.Entries))
	for _, e := range m.Entries {
		mapped[e.Column] = true
	}

	resolved := make(map[int]string)
	var unresolved []string
	for name, value := range constants {
		want := mapping.Normalize(name)
		col := -1
		for c, h := range headers {
			if mapping.Normalize(h) == want {
				col = c
				break
			}
		}
		if col < 0 {
			unresolved = append(unresolved, name)
			continue
		}
		if mapped[col] {
			continue
		}
		resolved[col] = value
	}
	return resolved, unresolved
}

// suggest asks the AI suggester about the unmatched columns. Failures
// downgrade to a log warning; suggestions are advisory only.
func suggest(cfg *config.Config, m *mapping.Mapping, headers []string) []mapping.Suggestion {
	taken := make(map[int]bool, len(m.Entries))
	for _, e := range m.Entries {
		taken[e.Column] = true
	}
	var free []string
	for c, h := range headers {
		if !taken[c] && strings.TrimSpace(h) != "" {
			free = append(free, h)
		}
	}
	if len(free) == 0 {
		return nil
	}

	suggester, err := mapping.NewSuggester(mapping.GeminiAPIKey(), cfg.AI.Model)
	if err != nil {
		logger.Warn("AI suggester unavailable", "error", err)
		return nil
	}
	defer suggester.Close()

	suggestions, err := suggester.Suggest(context.Background(), m.Unmatched, free)
	if err != nil {
		logger.Warn("AI suggestions failed", "error", err)
		return nil
	}
	return suggestions
}

// unionHeaders flattens the headers of all required sheets, preserving
// config order, for the onboarding sheet picker.
func unionHeaders(sheets []string, headers map[string][]string) []string {
	seen := make(map[string]bool)
	var union []string
	for _, s := range sheets {
		for _, h := range headers[s] {
			norm := mapping.Normalize(h)
			if norm == "" || seen[norm] {
				continue
			}
			seen[norm] = true
			union = append(union, h)
		}
	}
	return union
}
