package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"trims and lowers", "  Product Title ", "product title"},
		{"collapses internal whitespace", "Product   \t Title", "product title"},
		{"strips locale suffix", "Brand Name - en-US", "brand name"},
		{"strips locale suffix with underscore", "Walmart Brand Name - en_us", "walmart brand name"},
		{"unifies unicode dashes", "Size – Width", "size width"},
		{"drops punctuation", "Price ($)", "price"},
		{"separators become spaces", "barcode.value", "barcode value"},
		{"slash separators", "UPC/EAN", "upc ean"},
		{"empty", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestTokens(t *testing.T) {
	assert.Equal(t, []string{"upc", "code"}, Tokens("UPC Code"))
	assert.Equal(t, []string{"product", "title"}, Tokens("Product.Title"))
	assert.Empty(t, Tokens("  "))
}
