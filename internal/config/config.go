package config

import (
	"fmt"
	"os"
	"path/filepath"

	"masterfile/internal/logger"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Input    InputConfig    `toml:"input"`
	Template TemplateConfig `toml:"template"`
	Match    MatchConfig    `toml:"match"`
	Fill     FillConfig     `toml:"fill"`
	AI       AIConfig       `toml:"ai"`
}

type InputConfig struct {
	OnboardingDirectory string `toml:"onboarding_directory"`
	OutputDirectory     string `toml:"output_directory"`
	// OnboardingSheet pins the sheet to read from vendor workbooks.
	// Empty means pick the sheet whose headers match the template best.
	OnboardingSheet string `toml:"onboarding_sheet"`
}

type TemplateConfig struct {
	MasterfilePath string `toml:"masterfile_path"`
	// Sheets lists the data sheets that must exist in the template.
	// Records are written into the one whose headers fit the onboarding
	// headers best; the rest pass through untouched.
	Sheets []string `toml:"sheets"`
	// HeaderRows is the number of header rows scanned for column labels
	// (row 1 holds display labels, row 2 internal keys).
	HeaderRows   int `toml:"header_rows"`
	DataStartRow int `toml:"data_start_row"`
	// MaxDataRows caps how many data rows the template accepts.
	// Zero means the Excel sheet row limit.
	MaxDataRows int `toml:"max_data_rows"`
}

type MatchConfig struct {
	// Threshold is the minimum similarity for a fuzzy column match.
	Threshold float64 `toml:"threshold"`
	// AliasesFile is an optional JSON table mapping template headers to
	// onboarding header aliases, consulted before exact matching.
	AliasesFile string `toml:"aliases_file"`
}

type FillConfig struct {
	// Constants assigns fixed values to template columns on every
	// written row, e.g. "Listing Action (List or Unlist)" = "List".
	Constants map[string]string `toml:"constants"`
}

type AIConfig struct {
	Enabled bool   `toml:"enabled"`
	Model   string `toml:"model"`
}

// LoadConfig loads configuration from the specified config file path
func LoadConfig(configPath string) (*Config, error) {
	// Check if config file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		// Create configs directory if it doesn't exist
		configDir := filepath.Dir(configPath)
		if err := os.MkdirAll(configDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create config directory: %v", err)
		}

		defaultConfig := DefaultConfig()
		err = SaveConfig(configPath, defaultConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create default config: %v", err)
		}

		logger.Info("Created default config file", "path", configPath)
		return defaultConfig, nil
	}

	// Load existing config
	var config Config
	_, err := toml.DecodeFile(configPath, &config)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %v", configPath, err)
	}

	applyDefaults(&config)

	logger.Info("Loaded configuration", "path", configPath)
	return &config, nil
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() *Config {
	return &Config{
		Input: InputConfig{
			OnboardingDirectory: "data/input",
			OutputDirectory:     "data/output",
		},
		Template: TemplateConfig{
			MasterfilePath: "configs/masterfile_template.xlsx",
			Sheets:         []string{"Bulk Product Data"},
			HeaderRows:     2,
			DataStartRow:   3,
		},
		Match: MatchConfig{
			Threshold: 0.6,
		},
		AI: AIConfig{
			Model: "gemini-2.0-flash-exp",
		},
	}
}

// applyDefaults fills in missing values on a loaded config.
func applyDefaults(config *Config) {
	if config.Template.MasterfilePath == "" {
		config.Template.MasterfilePath = "configs/masterfile_template.xlsx"
	}
	if len(config.Template.Sheets) == 0 {
		config.Template.Sheets = []string{"Bulk Product Data"}
	}
	if config.Template.HeaderRows == 0 {
		config.Template.HeaderRows = 2
	}
	if config.Template.DataStartRow == 0 {
		config.Template.DataStartRow = config.Template.HeaderRows + 1
	}
	if config.Match.Threshold == 0 {
		config.Match.Threshold = 0.6
	}
	if config.AI.Model == "" {
		config.AI.Model = "gemini-2.0-flash-exp"
	}
}

// SaveConfig saves configuration to the specified config file path
func SaveConfig(configPath string, config *Config) error {
	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("failed to create config file: %v", err)
	}
	defer file.Close()

	encoder := toml.NewEncoder(file)
	err = encoder.Encode(config)
	if err != nil {
		return fmt.Errorf("failed to encode config: %v", err)
	}

	logger.Info("Saved configuration", "path", configPath)
	return nil
}
