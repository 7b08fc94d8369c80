package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"coursectl/pkg/portal"

	"github.com/spf13/viper"
)

const (
	// DefaultSections is how many sections each course is expanded into unless configured otherwise
	DefaultSections   = 4
	DefaultTableClass = portal.DefaultTableClass
	DefaultFormat     = "json"

	maxRecentFiles = 5
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	Sections    int      `json:"sections" mapstructure:"sections"`
	TableClass  string   `json:"table_class" mapstructure:"table_class"`
	Format      string   `json:"format" mapstructure:"format"`
	AccentColor string   `json:"accent_color,omitempty" mapstructure:"accent_color"`
	RecentFiles []string `json:"recent_files,omitempty" mapstructure:"recent_files"`
}

// getConfigPath returns the absolute path to ~/.coursectl.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".coursectl.json"), nil
}

const envPrefix = "COURSECTL"

// Load reads the application configuration from disk and applies COURSECTL_*
// environment overrides. Returns the defaults if the file does not exist.
func Load() (*AppConfig, error) {
	return load(true)
}

func load(withEnv bool) (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	v.SetDefault("sections", DefaultSections)
	v.SetDefault("table_class", DefaultTableClass)
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("accent_color", "")
	v.SetDefault("recent_files", []string{})

	if withEnv {
		v.SetEnvPrefix(envPrefix)
		v.AutomaticEnv()
	}

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk. Fields still holding
// the value of a COURSECTL_* override keep what the file had before.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(withoutEnv(cfg), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func envSet(key string) bool {
	_, ok := os.LookupEnv(envPrefix + "_" + strings.ToUpper(key))
	return ok
}

// withoutEnv returns a copy of cfg in which every field that came from the
// environment is swapped back to its stored value.
func withoutEnv(cfg *AppConfig) *AppConfig {
	out := *cfg

	stored, err := load(false)
	if err != nil {
		return &out
	}
	merged, err := load(true)
	if err != nil {
		return &out
	}

	if envSet("sections") && out.Sections == merged.Sections {
		out.Sections = stored.Sections
	}
	if envSet("table_class") && out.TableClass == merged.TableClass {
		out.TableClass = stored.TableClass
	}
	if envSet("format") && out.Format == merged.Format {
		out.Format = stored.Format
	}
	if envSet("accent_color") && out.AccentColor == merged.AccentColor {
		out.AccentColor = stored.AccentColor
	}
	return &out
}

// RememberFile moves path to the front of the recently used input files.
func RememberFile(cfg *AppConfig, path string) {
	if path == "" || path == "-" {
		return
	}

	recent := []string{path}
	for _, p := range cfg.RecentFiles {
		if p != path && len(recent) < maxRecentFiles {
			recent = append(recent, p)
		}
	}
	cfg.RecentFiles = recent
}
