// Package config handles loading application settings from built-in
// defaults, an optional json5 file and environment variables.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"time"

	"dario.cat/mergo"
	"github.com/BartekS5/gdpetl/pkg/database"
	"github.com/BartekS5/gdpetl/pkg/utils"
)

const (
	DefaultFile      = "gdpetl.json5"
	DefaultSourceURL = "https://web.archive.org/web/20230902185326/https://en.wikipedia.org/wiki/List_of_countries_by_GDP_%28nominal%29"
)

// Config holds all configuration for the application.
type Config struct {
	SourceURL     string  `json:"sourceUrl"`
	TableSelector string  `json:"tableSelector"`
	HeaderLabel   string  `json:"headerLabel"`
	CountryCell   int     `json:"countryCell"`
	GDPCell       int     `json:"gdpCell"`
	Placeholder   string  `json:"placeholder"`
	CSVPath       string  `json:"csvPath"`
	LogPath       string  `json:"logPath"`
	SQLitePath    string  `json:"sqlitePath"`
	TableName     string  `json:"tableName"`
	Threshold     float64 `json:"threshold"`
	HTTPTimeout   string  `json:"httpTimeout"`

	ServerDriver    string `json:"serverDriver"`
	SQLConnString   string `json:"sqlConnectionString"`
	MongoConnString string `json:"mongoConnectionString"`
	MongoDatabase   string `json:"mongoDatabase"`
}

func Defaults() Config {
	return Config{
		SourceURL:     DefaultSourceURL,
		TableSelector: "table.wikitable",
		HeaderLabel:   "Country",
		CountryCell:   0,
		GDPCell:       2,
		Placeholder:   "—",
		CSVPath:       "./Countries_by_GDP.csv",
		LogPath:       "./etl_project_log.txt",
		SQLitePath:    "World_Economies.db",
		TableName:     "Countries_by_GDP",
		Threshold:     100,
		HTTPTimeout:   "30s",
		ServerDriver:  string(database.SQLServer),
		MongoDatabase: "World_Economies",
	}
}

// LoadConfig layers defaults, the config file at path (plus its .local
// override) and environment variables (which should be populated by the
// .env file in main.go). A missing file is only an error when required
// is set.
func LoadConfig(path string, required bool) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		fileCfg, err := ReadFile[Config](path)
		switch {
		case errors.Is(err, os.ErrNotExist) && !required:
		case err != nil:
			return nil, fmt.Errorf("failed to read config file '%s': %w", path, err)
		default:
			if err := mergo.Merge(&cfg, fileCfg, mergo.WithOverride); err != nil {
				return nil, fmt.Errorf("failed to merge config file '%s': %w", path, err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.SourceURL == "" {
		return errors.New("source URL is empty")
	}
	if c.CSVPath == "" || c.LogPath == "" || c.SQLitePath == "" {
		return errors.New("csv, log and sqlite paths must all be set")
	}
	if !utils.IsIdentifier(c.TableName) {
		return fmt.Errorf("table name %q is not a valid SQL identifier", c.TableName)
	}
	if c.CountryCell < 0 || c.GDPCell < 0 {
		return errors.New("cell indexes must not be negative")
	}
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		return fmt.Errorf("threshold %v is not a finite number", c.Threshold)
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}
	if !c.Dialect().Valid() {
		return fmt.Errorf("unsupported SQL driver %q", c.ServerDriver)
	}
	return nil
}

func (c *Config) Timeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.HTTPTimeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http timeout %q: %w", c.HTTPTimeout, err)
	}
	return d, nil
}

func (c *Config) Dialect() database.Dialect {
	return database.Dialect(c.ServerDriver)
}

// ServerEnabled reports whether a server store connection is configured.
func (c *Config) ServerEnabled() bool {
	return c.SQLConnString != ""
}

func (c *Config) MongoEnabled() bool {
	return c.MongoConnString != ""
}
