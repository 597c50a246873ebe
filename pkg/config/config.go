// Package config provides configuration management for the rscodec CLI tool
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Davincible/rscodec/pkg/rs"
)

// Config represents the main configuration structure
type Config struct {
	Version  string          `json:"version"`
	Defaults DefaultSettings `json:"defaults"`
	UI       UIConfig        `json:"ui"`
	Storage  StorageConfig   `json:"storage"`
	Sweep    SweepConfig     `json:"sweep"`
}

// DefaultSettings contains default values for encode/decode
type DefaultSettings struct {
	Nsym    int    `json:"nsym"`     // Default: 4
	FlipBit int    `json:"flip_bit"` // Bit flipped by --flip, default: 0
	Format  string `json:"format"`   // hex or base64
}

// UIConfig contains user interface settings
type UIConfig struct {
	UseColor    bool `json:"use_color"`
	ProgressBar bool `json:"progress_bar"`
}

// StorageConfig contains session storage settings
type StorageConfig struct {
	SessionPath       string `json:"session_path"`
	RequirePassphrase bool   `json:"require_passphrase"`
}

// SweepConfig contains defaults for corruption sweeps
type SweepConfig struct {
	Workers int   `json:"workers"`
	Samples int   `json:"samples"`
	Seed    int64 `json:"seed"`
}

// ConfigManager manages configuration loading and saving
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new configuration manager
func NewConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return NewConfigManagerAt(configPath)
}

// NewConfigManagerAt creates a configuration manager for an explicit path.
// A missing file is created with defaults.
func NewConfigManagerAt(configPath string) (*ConfigManager, error) {
	cm := &ConfigManager{configPath: configPath}

	if err := cm.LoadConfig(); err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		cm.config = DefaultConfig()
		if err := cm.SaveConfig(); err != nil {
			return nil, fmt.Errorf("failed to save default config: %w", err)
		}
	}

	return cm, nil
}

// NewDefaultConfigManager returns a manager for the usual config path that
// holds the defaults. The file on disk is neither read nor written.
func NewDefaultConfigManager() (*ConfigManager, error) {
	configPath, err := getConfigPath()
	if err != nil {
		return nil, err
	}
	return &ConfigManager{config: DefaultConfig(), configPath: configPath}, nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0.0",
		Defaults: DefaultSettings{
			Nsym:    4,
			FlipBit: 0,
			Format:  "hex",
		},
		UI: UIConfig{
			UseColor:    true,
			ProgressBar: true,
		},
		Storage: StorageConfig{
			SessionPath:       "",
			RequirePassphrase: false,
		},
		Sweep: SweepConfig{
			Workers: 4,
			Samples: 1000,
			Seed:    1,
		},
	}
}

// LoadConfig loads the configuration from disk
func (cm *ConfigManager) LoadConfig() error {
	data, err := os.ReadFile(cm.configPath)
	if err != nil {
		return err
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cm.configPath, err)
	}

	cm.config = config
	return nil
}

// SaveConfig saves the configuration to disk
func (cm *ConfigManager) SaveConfig() error {
	configDir := filepath.Dir(cm.configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(cm.config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(cm.configPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (cm *ConfigManager) GetConfig() *Config {
	return cm.config
}

// SetConfig updates the configuration
func (cm *ConfigManager) SetConfig(config *Config) {
	cm.config = config
}

// Path returns the configuration file path
func (cm *ConfigManager) Path() string {
	return cm.configPath
}

// SessionPath returns where the last encoded codeword is kept. It defaults
// to session.json next to the config file.
func (cm *ConfigManager) SessionPath() string {
	if cm.config.Storage.SessionPath != "" {
		return expandHome(cm.config.Storage.SessionPath)
	}
	return filepath.Join(filepath.Dir(cm.configPath), "session.json")
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if c.Defaults.Nsym < 1 || c.Defaults.Nsym >= rs.MaxCodewordLength {
		return fmt.Errorf("defaults.nsym must be between 1 and %d", rs.MaxCodewordLength-1)
	}
	if c.Defaults.FlipBit < 0 || c.Defaults.FlipBit > 7 {
		return fmt.Errorf("defaults.flip_bit must be between 0 and 7")
	}
	switch c.Defaults.Format {
	case "hex", "base64":
	default:
		return fmt.Errorf("defaults.format must be hex or base64, got %q", c.Defaults.Format)
	}
	if c.Sweep.Workers < 1 {
		return fmt.Errorf("sweep.workers must be positive")
	}
	if c.Sweep.Samples < 1 {
		return fmt.Errorf("sweep.samples must be positive")
	}
	return nil
}

// getConfigPath returns the configuration file path
func getConfigPath() (string, error) {
	if customPath := os.Getenv("RSCODEC_CONFIG"); customPath != "" {
		return customPath, nil
	}

	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "rscodec", "config.json"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".config", "rscodec", "config.json"), nil
}

func expandHome(path string) string {
	if len(path) < 2 || path[:2] != "~/" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
