package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"color", "colour", 1},
		{"flaw", "lawn", 2},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "Levenshtein(%q, %q)", tt.a, tt.b)
		assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "Levenshtein(%q, %q)", tt.b, tt.a)
	}
}

func TestLevenshteinRatio(t *testing.T) {
	assert.Equal(t, 1.0, LevenshteinRatio("", ""))
	assert.Equal(t, 1.0, LevenshteinRatio("price", "price"))
	assert.InDelta(t, 0.833, LevenshteinRatio("color", "colour"), 0.001)
	assert.Equal(t, 0.0, LevenshteinRatio("abc", "xyz"))
}

func TestSimilarity(t *testing.T) {
	// Token containment must dominate the edit-distance ratio: the raw
	// ratio of "upc" vs "upc code" is far below any usable threshold.
	assert.Equal(t, 1.0, Similarity("UPC", "UPC Code"))
	assert.Equal(t, 1.0, Similarity("Product Title", "Title"))
	assert.Equal(t, 1.0, Similarity("price", "Price ($)"))
	assert.Equal(t, 1.0, Similarity("Brand Name - en-US", "Brand Name"))

	assert.Less(t, Similarity("Product Title", "UPC Code"), 0.5)
	assert.Greater(t, Similarity("Colour", "Color"), 0.8)

	// Blank headers never resemble anything.
	assert.Equal(t, 0.0, Similarity("", "Title"))
}
