package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	apperrors "optionlab/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return dir
}

func TestLoad(t *testing.T) {
	dir := writeConfig(t, `
[pricing]
risk_free_rate = "0.06"
dividend_yield = "0.01"

[neutrality]
threshold = "0.005"

[logging]
level = "debug"
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.RiskFreeRate().Equal(decimal.NewFromFloat(0.06)) {
		t.Errorf("risk free rate = %s, want 0.06", cfg.RiskFreeRate())
	}
	if !cfg.DeltaThreshold().Equal(decimal.NewFromFloat(0.005)) {
		t.Errorf("threshold = %s, want 0.005", cfg.DeltaThreshold())
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("log level = %q, want debug", cfg.Logging.Level)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := writeConfig(t, "")
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.RiskFreeRate().Equal(decimal.NewFromFloat(0.05)) {
		t.Errorf("default risk free rate = %s, want 0.05", cfg.RiskFreeRate())
	}
	if !cfg.DeltaThreshold().Equal(decimal.NewFromFloat(0.0001)) {
		t.Errorf("default threshold = %s, want 0.0001", cfg.DeltaThreshold())
	}
	if cfg.Store.Path == "" {
		t.Error("default store path is empty")
	}
}

func TestLoadCreatesTemplate(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(dir)
	if err == nil {
		t.Fatal("Load should fail on missing config")
	}
	if _, statErr := os.Stat(filepath.Join(dir, "config.toml")); statErr != nil {
		t.Errorf("template was not created: %v", statErr)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OPTIONLAB_DELTA_THRESHOLD", "0.01")
	dir := writeConfig(t, `
[neutrality]
threshold = "0.0001"
`)
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !cfg.DeltaThreshold().Equal(decimal.NewFromFloat(0.01)) {
		t.Errorf("threshold = %s, want env override 0.01", cfg.DeltaThreshold())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad rate", "[pricing]\nrisk_free_rate = \"abc\"\n"},
		{"negative yield", "[pricing]\ndividend_yield = \"-0.1\"\n"},
		{"zero threshold", "[neutrality]\nthreshold = \"0\"\n"},
		{"bad level", "[logging]\nlevel = \"verbose\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfig(t, tt.content)
			if _, err := Load(dir); !errors.Is(err, apperrors.ErrConfigInvalid) {
				t.Errorf("Load error = %v, want %v", err, apperrors.ErrConfigInvalid)
			}
		})
	}
}
