package mapping

import (
	"encoding/json"
	"fmt"
	"os"
)

// AliasTable maps a template header to onboarding header aliases in
// priority order: the first alias found among the onboarding headers is
// used. Lookups compare normalized forms, so the table can be written
// with the display spellings.
//
// File format:
//
//	{
//	  "Partner SKU": ["Target SKU", "Seller SKU", "item_sku"],
//	  "Barcode": ["UPC/EAN", "UPC", "barcode.value"]
//	}
type AliasTable map[string][]string

// LoadAliases loads an alias table from a JSON file.
func LoadAliases(filepath string) (AliasTable, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read aliases file %s: %v", filepath, err)
	}

	var table AliasTable
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, fmt.Errorf("failed to parse aliases file %s: %v", filepath, err)
	}

	return table, nil
}

// SaveToFile saves the alias table to a JSON file.
func (t AliasTable) SaveToFile(filepath string) error {
	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath, data, 0644)
}

// aliasesFor returns the alias list for a template header, matched on
// normalized form. Nil when the table has no entry for the header.
func (t AliasTable) aliasesFor(templateHeader string) []string {
	if len(t) == 0 {
		return nil
	}

	want := Normalize(templateHeader)
	for key, aliases := range t {
		if Normalize(key) == want {
			return aliases
		}
	}

	return nil
}
