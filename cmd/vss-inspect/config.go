package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vss-go/vss-go/pkg/catalog"
	"github.com/vss-go/vss-go/pkg/identifier"
)

// Config holds the inspector configuration. Values come from an optional
// YAML file and are overridden by explicitly set flags.
type Config struct {
	Catalog        string   `yaml:"catalog"`
	Policy         string   `yaml:"policy"`
	LogLevel       string   `yaml:"log_level"`
	EventLog       string   `yaml:"event_log"`
	Interactive    bool     `yaml:"interactive"`
	Watch          bool     `yaml:"watch"`
	ShowIDs        bool     `yaml:"show_identifiers"`
	RecentCapacity int      `yaml:"recent_capacity"`
	ReservedNames  []string `yaml:"reserved_names"`
	Marker         string   `yaml:"marker"`
}

// defaultConfig returns the built-in defaults.
func defaultConfig() Config {
	return Config{
		Policy:         "strict",
		LogLevel:       "info",
		RecentCapacity: 32,
	}
}

// loadConfigFile merges the YAML file at path into cfg.
func loadConfigFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c Config) validate() error {
	if c.Catalog == "" {
		return fmt.Errorf("no catalog given (use -catalog or the config file)")
	}
	if _, ok := catalog.ParsePolicy(c.Policy); !ok {
		return fmt.Errorf("unknown policy %q (must be strict or skip)", c.Policy)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Watch && c.Interactive {
		return fmt.Errorf("-watch cannot be combined with -interactive")
	}
	return nil
}

func (c Config) policy() catalog.Policy {
	p, _ := catalog.ParsePolicy(c.Policy)
	return p
}

func (c Config) identifiers() identifier.Generator {
	return identifier.Generator{Reserved: c.ReservedNames, Marker: c.Marker}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (must be debug, info, warn or error)", s)
	}
}
