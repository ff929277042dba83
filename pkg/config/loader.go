package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Environment variables that override file settings.
const (
	EnvBaseURL     = "TVETL_API_BASE_URL"
	EnvStart       = "TVETL_COLLECT_START"
	EnvEnd         = "TVETL_COLLECT_END"
	EnvDataDir     = "TVETL_DATA_DIR"
	EnvParquetPath = "TVETL_PARQUET_PATH"
	EnvDBDriver    = "TVETL_DB_DRIVER"
	EnvDBDSN       = "TVETL_DB_DSN"
	EnvLogLevel    = "TVETL_LOG_LEVEL"
	EnvLogFormat   = "TVETL_LOG_FORMAT"
)

// Load builds a Config from the defaults, the optional file at path (YAML, or
// TOML when the extension is .toml) and TVETL_* environment variables, in
// that order of precedence, lowest first. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	case ".yaml", ".yml", "":
		return yaml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("unsupported config extension %q", filepath.Ext(path))
	}
}

func applyEnvOverrides(cfg *Config) {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvBaseURL, &cfg.API.BaseURL},
		{EnvStart, &cfg.Collect.Start},
		{EnvEnd, &cfg.Collect.End},
		{EnvDataDir, &cfg.Collect.DataDir},
		{EnvParquetPath, &cfg.Sink.ParquetPath},
		{EnvDBDriver, &cfg.Database.Driver},
		{EnvDBDSN, &cfg.Database.DSN},
		{EnvLogLevel, &cfg.Logging.Level},
		{EnvLogFormat, &cfg.Logging.Format},
	}
	for _, o := range overrides {
		if v := strings.TrimSpace(os.Getenv(o.key)); v != "" {
			*o.dst = v
		}
	}
}
