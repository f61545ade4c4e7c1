package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", "config.toml")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "data/input", cfg.Input.OnboardingDirectory)
	assert.Equal(t, []string{"Bulk Product Data"}, cfg.Template.Sheets)
	assert.Equal(t, 2, cfg.Template.HeaderRows)
	assert.Equal(t, 3, cfg.Template.DataStartRow)
	assert.Equal(t, 0.6, cfg.Match.Threshold)
	assert.False(t, cfg.AI.Enabled)

	// The default file is written for next time.
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[template]
masterfile_path = "templates/master.xlsm"
sheets = ["Bulk Product Data", "Dietary Supplements"]
header_rows = 1
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "templates/master.xlsm", cfg.Template.MasterfilePath)
	assert.Equal(t, []string{"Bulk Product Data", "Dietary Supplements"}, cfg.Template.Sheets)
	// Data starts right below the single header row.
	assert.Equal(t, 2, cfg.Template.DataStartRow)
	assert.Equal(t, 0.6, cfg.Match.Threshold)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.AI.Model)
}
