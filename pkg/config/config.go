// Package config loads tlc settings from a YAML file and TLCAL_* environment
// variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tlcal/tlcal/pkg/calendar"
	"github.com/tlcal/tlcal/pkg/strip"
)

// EnvPrefix prefixes environment overrides, e.g. TLCAL_CALENDAR=coptic.
const EnvPrefix = "TLCAL"

// Config holds the resolved settings.
type Config struct {
	DB        string `mapstructure:"db"`
	Calendar  string `mapstructure:"calendar"`
	WeekStart string `mapstructure:"week_start"`
}

func Default() Config {
	return Config{
		DB:        "tlcal.db",
		Calendar:  "gregorian",
		WeekStart: strip.FirstWeekday.String(),
	}
}

// Path returns the default config file location,
// $XDG_CONFIG_HOME/tlcal/config.yaml or ~/.config/tlcal/config.yaml.
func Path() (string, error) {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "tlcal", "config.yaml"), nil
}

// Load reads the config file at path, or at Path() when path is empty, then
// applies environment overrides. A missing default file is not an error; a
// missing explicit one is.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		p, err := Path()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db", cfg.DB)
	v.SetDefault("calendar", cfg.Calendar)
	v.SetDefault("week_start", cfg.WeekStart)

	if err := v.ReadInConfig(); err != nil {
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}
	cfg.Calendar = strings.ToLower(strings.TrimSpace(cfg.Calendar))
	cfg.WeekStart = strings.TrimSpace(cfg.WeekStart)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks that the calendar exists and the week start is valid for it.
func (c Config) Validate() error {
	_, err := c.WeekStartValue()
	return err
}

// CalendarValue resolves the configured calendar.
func (c Config) CalendarValue() (calendar.Calendar, error) {
	return calendar.Lookup(c.Calendar)
}

// WeekStartValue resolves the configured week start against the calendar.
func (c Config) WeekStartValue() (strip.WeekStart, error) {
	cal, err := c.CalendarValue()
	if err != nil {
		return 0, err
	}
	return strip.ParseWeekStart(cal, c.WeekStart)
}
