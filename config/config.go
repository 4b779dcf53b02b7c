// Package config loads server configuration from defaults, an optional
// TOML file, and COMPLYEUR_-prefixed environment variables (later
// sources win). Every compliance parameter is overridable here so the
// math carries no baked-in constants.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/thisjamieguy/complyeur-v2-sub005/schengen"
)

// Config is the full server configuration.
type Config struct {
	Server struct {
		Port     int    `koanf:"port"`
		DBPath   string `koanf:"db_path"`
		LogLevel string `koanf:"log_level"`
	} `koanf:"server"`

	Compliance struct {
		WindowDays int    `koanf:"window_days"`
		Limit      int    `koanf:"limit"`
		StartDate  string `koanf:"start_date"`
		CacheSize  int    `koanf:"cache_size"`
		Thresholds struct {
			GreenMin int `koanf:"green_min"`
			AmberMin int `koanf:"amber_min"`
		} `koanf:"thresholds"`
	} `koanf:"compliance"`
}

// Load reads configuration. An empty path skips the file layer.
func Load(configPath string) (*Config, error) {
	k := koanf.New(".")

	k.Load(confmap.Provider(map[string]interface{}{
		"server.port":                     8080,
		"server.db_path":                  "complyeur.db",
		"server.log_level":                "info",
		"compliance.window_days":          schengen.DefaultWindowDays,
		"compliance.limit":                schengen.DefaultLimit,
		"compliance.start_date":           schengen.DefaultStartDate.String(),
		"compliance.cache_size":           0, // 0 = engine default
		"compliance.thresholds.green_min": schengen.DefaultThresholds().GreenMin,
		"compliance.thresholds.amber_min": schengen.DefaultThresholds().AmberMin,
	}, "."), nil)

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), toml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	k.Load(env.Provider("COMPLYEUR_", ".", func(s string) string {
		return strings.Replace(strings.ToLower(strings.TrimPrefix(s, "COMPLYEUR_")), "_", ".", -1)
	}), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if _, err := cfg.ComplianceConfig(schengen.Today()); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ComplianceConfig materializes the engine config for a reference date.
func (c *Config) ComplianceConfig(ref schengen.Day) (schengen.Config, error) {
	start, err := schengen.ParseDay(c.Compliance.StartDate)
	if err != nil {
		return schengen.Config{}, fmt.Errorf("compliance.start_date: %w", err)
	}
	out := schengen.Config{
		ReferenceDate: ref,
		Mode:          schengen.ModeAudit,
		Limit:         c.Compliance.Limit,
		WindowDays:    c.Compliance.WindowDays,
		StartDate:     start,
		Thresholds: schengen.Thresholds{
			GreenMin: c.Compliance.Thresholds.GreenMin,
			AmberMin: c.Compliance.Thresholds.AmberMin,
		},
	}
	if err := out.Validate(); err != nil {
		return schengen.Config{}, err
	}
	return out, nil
}
