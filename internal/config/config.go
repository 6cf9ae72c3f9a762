// Package config loads and persists the safeprag configuration file.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Retention defaults. These mirror the long-standing behavior of the
// app and apply whenever the config file does not override them.
const (
	DefaultRetentionDays     = 30
	DefaultAggressiveDays    = 90
	DefaultMaxOrders         = 100
	DefaultSoftLimitMB       = 4
	DefaultHardLimitMB       = 8
	DefaultCertValidityDays  = 90
	DefaultReminderLeadHours = 1
)

// Config represents the flat safeprag configuration.
type Config struct {
	Version           string  `json:"version"`
	RetentionDays     int     `json:"retention_days,omitempty"`      // age-based order pruning
	AggressiveDays    int     `json:"aggressive_days,omitempty"`     // retention under the hard size sweep
	MaxOrders         int     `json:"max_orders,omitempty"`          // count-based cap
	SoftLimitMB       float64 `json:"soft_limit_mb,omitempty"`       // usage level that triggers a sweep check
	HardLimitMB       float64 `json:"hard_limit_mb,omitempty"`       // usage level that triggers the aggressive sweep
	CertValidityDays  int     `json:"cert_validity_days,omitempty"`  // default certificate validity
	ReminderLeadHours int     `json:"reminder_lead_hours,omitempty"` // schedule reminder lead time
	DocumentsDir      string  `json:"documents_dir,omitempty"`       // where generated artifacts land
}

// Defaults returns a config populated with the default thresholds.
func Defaults() *Config {
	return &Config{
		Version:           "1",
		RetentionDays:     DefaultRetentionDays,
		AggressiveDays:    DefaultAggressiveDays,
		MaxOrders:         DefaultMaxOrders,
		SoftLimitMB:       DefaultSoftLimitMB,
		HardLimitMB:       DefaultHardLimitMB,
		CertValidityDays:  DefaultCertValidityDays,
		ReminderLeadHours: DefaultReminderLeadHours,
	}
}

// LoadConfig reads config.json from <dir>/.safeprag. Missing file
// yields the defaults; a present but unparsable file is an error.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".safeprag", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// SaveConfig writes config.json to <dir>/.safeprag.
func SaveConfig(dir string, cfg *Config) error {
	appDir := filepath.Join(dir, ".safeprag")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create .safeprag dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(appDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// AppDir returns the safeprag home directory, creating it if needed.
func AppDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	dir := filepath.Join(home, ".safeprag")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create .safeprag directory: %w", err)
	}
	return dir, nil
}
