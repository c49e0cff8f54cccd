package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/piwi3910/BoardCut/internal/project"
	"github.com/piwi3910/BoardCut/internal/units"
)

// EnvPrefix is prepended to every environment override, e.g. BOARDCUT_HTTP_ADDR.
const EnvPrefix = "BOARDCUT"

type Config struct {
	Environment      string  `yaml:"environment"`
	LogLevel         string  `yaml:"log_level"`
	HTTPAddr         string  `yaml:"http_addr"`
	DefaultUnit      string  `yaml:"default_unit"`
	KerfInches       float64 `yaml:"kerf_inches"`
	MinRemnantInches float64 `yaml:"min_remnant_inches"`
	DataDir          string  `yaml:"data_dir"`
}

// Load reads configuration from an optional YAML file, BOARDCUT_* environment
// variables and defaults, in decreasing priority: env, file, default. An empty
// path searches ./config.yaml and <data dir>/config.yaml; a missing file is
// not an error unless path names it explicitly.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	defaultDataDir, err := project.DefaultDataDir()
	if err != nil {
		defaultDataDir = ".boardcut"
	}

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(defaultDataDir)
	}

	// Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("environment", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":8080")
	v.SetDefault("default_unit", "ft")
	v.SetDefault("kerf_inches", 0.0)
	v.SetDefault("min_remnant_inches", model.DefaultRemnantTolerance)
	v.SetDefault("data_dir", defaultDataDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	cfg := &Config{
		Environment:      v.GetString("environment"),
		LogLevel:         v.GetString("log_level"),
		HTTPAddr:         v.GetString("http_addr"),
		DefaultUnit:      v.GetString("default_unit"),
		KerfInches:       v.GetFloat64("kerf_inches"),
		MinRemnantInches: v.GetFloat64("min_remnant_inches"),
		DataDir:          expandHome(v.GetString("data_dir")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that would otherwise fail deep inside a command.
func (c *Config) Validate() error {
	u, err := units.Canonical(c.DefaultUnit)
	if err != nil {
		return fmt.Errorf("default_unit: %w", err)
	}
	c.DefaultUnit = string(u)
	if err := model.ValidateSettings(c.PlanSettings()); err != nil {
		return err
	}
	return nil
}

// PlanSettings returns the optimizer settings carried by the config.
func (c *Config) PlanSettings() model.PlanSettings {
	return model.PlanSettings{
		KerfInches:       c.KerfInches,
		MinRemnantInches: c.MinRemnantInches,
	}
}

// InventoryPath returns the board preset file under DataDir.
func (c *Config) InventoryPath() string {
	return project.InventoryPath(c.DataDir)
}

// TemplatesPath returns the template store file under DataDir.
func (c *Config) TemplatesPath() string {
	return project.TemplatesPath(c.DataDir)
}

// Save writes cfg as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func expandHome(p string) string {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return p
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~"))
}
