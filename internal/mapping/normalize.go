package mapping

import (
	"regexp"
	"strings"
)

var (
	dashRunes    = strings.NewReplacer("–", "-", "—", "-", "−", "-")
	localeSuffix = regexp.MustCompile(`\s*-\s*en\s*[-_ ]\s*us\s*$`)
	separators   = regexp.MustCompile(`[._/\\-]+`)
	nonAlnum     = regexp.MustCompile(`[^0-9a-z\s]+`)
	whitespace   = regexp.MustCompile(`\s+`)
)

// Normalize reduces a header to its canonical comparison form.
// The pipeline:
//  1. Trim and case-fold to lower.
//  2. Unify unicode dashes to '-'.
//  3. Strip a trailing "- en-US" marketplace locale marker.
//  4. Replace separator runs (. _ / \ -) with a space.
//  5. Drop anything that is not alphanumeric or space.
//  6. Collapse whitespace runs.
//
// Examples:
//   - "  Product Title " -> "product title"
//   - "Brand Name - en-US" -> "brand name"
//   - "Price ($)" -> "price"
//   - "barcode.value" -> "barcode value"
func Normalize(s string) string {
	x := strings.ToLower(strings.TrimSpace(s))
	x = dashRunes.Replace(x)
	x = localeSuffix.ReplaceAllString(x, "")
	x = separators.ReplaceAllString(x, " ")
	x = nonAlnum.ReplaceAllString(x, " ")
	x = whitespace.ReplaceAllString(x, " ")
	return strings.TrimSpace(x)
}

// Tokens splits a header into its normalized lowercase tokens.
func Tokens(s string) []string {
	return strings.Fields(Normalize(s))
}
