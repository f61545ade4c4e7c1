package excel

import "fmt"

// SheetNotFoundError reports a required sheet missing from the template.
// It is fatal: the run aborts before any output is written.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("required sheet %q not found in template", e.Sheet)
}

// RowOverflowError reports more onboarding records than the target sheet
// has remaining capacity for. It is fatal and raised before any cell is
// written, so the template stays untouched.
type RowOverflowError struct {
	Sheet    string
	Capacity int
	Records  int
}

func (e *RowOverflowError) Error() string {
	return fmt.Sprintf("sheet %q has capacity for %d more rows, got %d records", e.Sheet, e.Capacity, e.Records)
}

// CellWriteError reports a destination cell that cannot take a value,
// typically because it sits inside a merged range without being its
// anchor. The affected record is skipped and the run continues.
type CellWriteError struct {
	Sheet  string
	Cell   string
	Reason string
}

func (e *CellWriteError) Error() string {
	return fmt.Sprintf("cannot write cell %s on sheet %q: %s", e.Cell, e.Sheet, e.Reason)
}
