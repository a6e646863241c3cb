package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tidwall/jsonc"

	"simple-panels/layout"
	"simple-panels/log"
)

const (
	ConfigFileName = "config.json"

	// ConfigDirEnv overrides the configuration directory.
	ConfigDirEnv = "SP_CONFIG_DIR"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnv); dir != "" {
		return dir, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".simple-panels"), nil
}

// Config represents the application configuration. The file may contain
// comments and trailing commas.
type Config struct {
	// ProximityThreshold is how many cells from a separator the pointer may be
	// for the separator to highlight.
	ProximityThreshold int `json:"proximity_threshold"`
	// PersistDelayMs is the debounce window (ms) before a resized layout is written.
	PersistDelayMs int `json:"persist_delay_ms"`
	// LayoutFile points at a YAML layout declaration. Empty uses the built-in layout.
	LayoutFile string `json:"layout_file"`
	// MouseAllMotion reports pointer motion without a button held, which hover
	// highlighting needs. Some terminals flood the input with it.
	MouseAllMotion bool `json:"mouse_all_motion"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		ProximityThreshold: int(layout.DefaultProximityThreshold),
		PersistDelayMs:     int(layout.DefaultPersistDelay / time.Millisecond),
		LayoutFile:         "",
		MouseAllMotion:     true,
	}
}

// PersistDelay returns PersistDelayMs as a duration, falling back to the
// default for non-positive values.
func (c *Config) PersistDelay() time.Duration {
	if c.PersistDelayMs <= 0 {
		return layout.DefaultPersistDelay
	}
	return time.Duration(c.PersistDelayMs) * time.Millisecond
}

// Proximity returns ProximityThreshold as a float, falling back to the
// default for non-positive values.
func (c *Config) Proximity() float64 {
	if c.ProximityThreshold <= 0 {
		return layout.DefaultProximityThreshold
	}
	return float64(c.ProximityThreshold)
}

// ParseConfig decodes a config file. Fields the file leaves out keep their
// defaults.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()
	if err := json.Unmarshal(jsonc.ToJSON(data), config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return config, nil
}

func LoadConfig() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	config, err := ParseConfig(data)
	if err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}

	return config
}

// saveConfig saves the configuration to disk
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig exports the saveConfig function for use by other packages
func SaveConfig(config *Config) error {
	return saveConfig(config)
}
