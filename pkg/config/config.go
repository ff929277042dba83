// Package config holds the settings every tvetl component is constructed
// from. Column lists used by the cleaning stages and the relational column
// mapping used by the store are configuration data, not code.
package config

import (
	"fmt"
	"regexp"
	"time"
)

// DateLayout is the layout of every date in configuration and file names.
const DateLayout = "2006-01-02"

type Config struct {
	API      APIConfig      `yaml:"api" toml:"api"`
	Collect  CollectConfig  `yaml:"collect" toml:"collect"`
	Cleaning CleaningConfig `yaml:"cleaning" toml:"cleaning"`
	Sink     SinkConfig     `yaml:"sink" toml:"sink"`
	Database DatabaseConfig `yaml:"database" toml:"database"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Profile  ProfileConfig  `yaml:"profile" toml:"profile"`
}

type APIConfig struct {
	BaseURL        string `yaml:"base_url" toml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds" toml:"timeout_seconds"`
}

// Timeout is the HTTP client timeout; zero disables it.
func (c APIConfig) Timeout() time.Duration { return time.Duration(c.TimeoutSeconds) * time.Second }

type CollectConfig struct {
	Start   string `yaml:"start" toml:"start"`
	End     string `yaml:"end" toml:"end"`
	DataDir string `yaml:"data_dir" toml:"data_dir"`
}

// Range parses Start and End.
func (c CollectConfig) Range() (time.Time, time.Time, error) {
	start, err := time.Parse(DateLayout, c.Start)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("collect.start: %w", err)
	}
	end, err := time.Parse(DateLayout, c.End)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("collect.end: %w", err)
	}
	return start, end, nil
}

// CleaningConfig drives the cleaning pipeline. Each stage is a no-op when its
// column is absent; Skip disables stages by name.
type CleaningConfig struct {
	DropColumns    []string `yaml:"drop_columns" toml:"drop_columns"`
	SentinelColumn string   `yaml:"sentinel_column" toml:"sentinel_column"`
	SentinelValue  float64  `yaml:"sentinel_value" toml:"sentinel_value"`
	ListColumns    []string `yaml:"list_columns" toml:"list_columns"`
	ListSeparator  string   `yaml:"list_separator" toml:"list_separator"`
	WeekdayColumn  string   `yaml:"weekday_column" toml:"weekday_column"`
	MaxNullRatio   float64  `yaml:"max_null_ratio" toml:"max_null_ratio"`
	MedianColumns  []string `yaml:"median_columns" toml:"median_columns"`
	BucketColumn   string   `yaml:"bucket_column" toml:"bucket_column"`
	BucketMaxCount int      `yaml:"bucket_max_count" toml:"bucket_max_count"`
	BucketLabel    string   `yaml:"bucket_label" toml:"bucket_label"`
	OneHotColumns  []string `yaml:"one_hot_columns" toml:"one_hot_columns"`
	Skip           []string `yaml:"skip" toml:"skip"`
}

type SinkConfig struct {
	ParquetPath string         `yaml:"parquet_path" toml:"parquet_path"`
	Tables      []TableMapping `yaml:"tables" toml:"tables"`
	Countries   []CountryPaths `yaml:"countries" toml:"countries"`
	Genres      GenrePaths     `yaml:"genres" toml:"genres"`
}

// TableMapping maps one relational table's columns onto dotted source paths.
// Key names the column whose null value skips the row for this table.
type TableMapping struct {
	Table   string          `yaml:"table" toml:"table"`
	Key     string          `yaml:"key" toml:"key"`
	Columns []ColumnMapping `yaml:"columns" toml:"columns"`
}

type ColumnMapping struct {
	Column string `yaml:"column" toml:"column"`
	Path   string `yaml:"path" toml:"path"`
}

// KeyPath returns the source path mapped to Key.
func (t TableMapping) KeyPath() string {
	for _, c := range t.Columns {
		if c.Column == t.Key {
			return c.Path
		}
	}
	return ""
}

type CountryPaths struct {
	Code     string `yaml:"code" toml:"code"`
	Name     string `yaml:"name" toml:"name"`
	Timezone string `yaml:"timezone" toml:"timezone"`
}

type GenrePaths struct {
	Names     string `yaml:"names" toml:"names"`
	Separator string `yaml:"separator" toml:"separator"`
	ShowID    string `yaml:"show_id" toml:"show_id"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" toml:"driver"`
	DSN    string `yaml:"dsn" toml:"dsn"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

type ProfileConfig struct {
	Path string `yaml:"path" toml:"path"`
	TopK int    `yaml:"top_k" toml:"top_k"`
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Validate checks the settings that would otherwise fail late or unsafely.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return fmt.Errorf("api.base_url is required")
	}
	start, end, err := c.Collect.Range()
	if err != nil {
		return err
	}
	if end.Before(start) {
		return fmt.Errorf("collect.end %s is before collect.start %s", c.Collect.End, c.Collect.Start)
	}
	if c.Cleaning.MaxNullRatio < 0 || c.Cleaning.MaxNullRatio > 1 {
		return fmt.Errorf("cleaning.max_null_ratio must be within [0,1], got %v", c.Cleaning.MaxNullRatio)
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("database.driver must be sqlite or postgres, got %q", c.Database.Driver)
	}
	for _, t := range c.Sink.Tables {
		if !identRe.MatchString(t.Table) {
			return fmt.Errorf("sink table name %q is not a plain identifier", t.Table)
		}
		if t.KeyPath() == "" {
			return fmt.Errorf("sink table %s: key %q is not mapped", t.Table, t.Key)
		}
		for _, col := range t.Columns {
			if !identRe.MatchString(col.Column) {
				return fmt.Errorf("sink table %s: column %q is not a plain identifier", t.Table, col.Column)
			}
		}
	}
	return nil
}
