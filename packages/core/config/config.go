package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the suiterun configuration
type Config struct {
	Manifest    string  `yaml:"manifest,omitempty"`    // default manifest path
	Interpreter string  `yaml:"interpreter,omitempty"` // invocation prefix for each entry
	RootEnv     string  `yaml:"rootEnv,omitempty"`     // env var carrying the project root
	Key         string  `yaml:"key,omitempty"`         // client key file (authenticated runs)
	Cert        string  `yaml:"cert,omitempty"`        // client cert file (authenticated runs)
	Pace        float64 `yaml:"pace,omitempty"`        // max script launches per second
	NoColor     *bool   `yaml:"noColor,omitempty"`
	Verbose     *bool   `yaml:"verbose,omitempty"`
	HistoryFile string  `yaml:"historyFile,omitempty"` // SQLite run history location
}

// getBool returns the value of a bool pointer, or the default if nil
func getBool(b *bool, defaultVal bool) bool {
	if b == nil {
		return defaultVal
	}
	return *b
}

// GetNoColor returns the no color setting, defaulting to false
func (c *Config) GetNoColor() bool {
	return getBool(c.NoColor, false)
}

// GetVerbose returns the verbose setting, defaulting to false
func (c *Config) GetVerbose() bool {
	return getBool(c.Verbose, false)
}

// ConfigFilenames contains the possible config file names
var ConfigFilenames = []string{
	"suiterun.yaml",
	"suiterun.yml",
	".suiterun.yaml",
	".suiterun.yml",
}

// DefaultConfig returns the built-in defaults. The interpreter and root
// environment variable match the Python test suites the tool grew up
// driving.
func DefaultConfig() *Config {
	return &Config{
		Manifest:    "tests.txt",
		Interpreter: "python",
		RootEnv:     "PYTHONPATH",
		HistoryFile: filepath.Join(".suiterun", "history.db"),
	}
}

// LoadConfig loads configuration from the specified path or searches for
// config files in the current directory.
func LoadConfig(path string) (*Config, error) {
	if path != "" {
		return loadConfigFromFile(path)
	}
	return FindAndLoadConfig(".")
}

// FindAndLoadConfig searches for a config file in the given directory
func FindAndLoadConfig(dir string) (*Config, error) {
	for _, filename := range ConfigFilenames {
		configPath := filepath.Join(dir, filename)
		if _, err := os.Stat(configPath); err == nil {
			return loadConfigFromFile(configPath)
		}
	}

	// Return defaults if no config file found
	return DefaultConfig(), nil
}

// loadConfigFromFile loads configuration from a specific file
func loadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return config, nil
}

// ExpandHome replaces a leading "~" with the user home directory. Paths
// without the prefix are returned unchanged.
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
