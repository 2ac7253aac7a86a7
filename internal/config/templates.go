package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# optionlab configuration

[pricing]
# Default risk-free rate, as a decimal string
risk_free_rate = "0.05"
# Default dividend yield, as a decimal string
dividend_yield = "0"

[neutrality]
# Net delta magnitude at or below which a book counts as neutral
threshold = "0.0001"

[store]
# SQLite database path; defaults next to this file
# path = ""

[logging]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal
console = true
# Log to a rotated file
file = true
max_size_mb = 100
max_backups = 7
max_age_days = 30
`

func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return fmt.Errorf("config file not found, created template at %s", path)
}
