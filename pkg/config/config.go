package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// DefaultPath is the config file the CLI looks for when --config is not set.
const DefaultPath = "tablint.yaml"

// Config holds all configuration for tablint.
// Configuration can come from a YAML file (tablint.yaml) or environment
// variables. Environment variables always override YAML values for fields
// that support both. Secrets (database DSNs) must only come from
// environment variables.
type Config struct {
	// Logging configuration
	Log LogConfig `yaml:"log"`

	// Check defaults, applied when the matching flag is not given
	Check CheckConfig `yaml:"check"`

	// Connection strings for the postgres and mssql drivers.
	// DSNs embed credentials, so they are env-only (yaml:"-" fields).
	PostgresDSN string `yaml:"-" env:"TABLINT_POSTGRES_DSN"`
	MSSQLDSN    string `yaml:"-" env:"TABLINT_MSSQL_DSN"`

	Version string `yaml:"-"` // Set at load time, not from config
}

// LogConfig controls the diagnostic log on stderr. Reports go to stdout
// and are not affected by these settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"TABLINT_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"TABLINT_LOG_FORMAT" env-default:"console"`
}

// CheckConfig holds defaults for check runs. Command-line flags override
// these per invocation.
type CheckConfig struct {
	// Output selects the report rendering: "text" or "json".
	Output string `yaml:"output" env:"TABLINT_OUTPUT" env-default:"text"`

	// Verbose adds the per-column analysis blocks to text reports.
	Verbose bool `yaml:"verbose" env:"TABLINT_VERBOSE" env-default:"false"`

	// RowLimit caps how many rows database drivers fetch. Zero means no cap.
	RowLimit int `yaml:"row_limit" env:"TABLINT_ROW_LIMIT" env-default:"0"`

	// DetectTypes promotes text columns whose every value parses as a
	// number before checking.
	DetectTypes bool `yaml:"detect_types" env:"TABLINT_DETECT_TYPES" env-default:"false"`

	// NullLiterals replaces the built-in set of cell spellings treated as
	// missing values. Empty means the built-in set.
	NullLiterals []string `yaml:"null_literals" env:"TABLINT_NULL_LITERALS"`
}

// Load reads configuration from the YAML file at path with environment
// variable overrides. An empty path means DefaultPath. A missing file is
// not an error: the CLI then runs on environment variables and defaults
// alone. The version parameter is injected at build time and set on the
// returned Config.
func Load(path, version string) (*Config, error) {
	cfg := &Config{
		Version: version,
	}

	if path == "" {
		path = DefaultPath
	}

	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := cfg.validateOutput(); err != nil {
		return nil, fmt.Errorf("invalid output configuration: %w", err)
	}

	return cfg, nil
}

// validateOutput ensures the configured report format is one the CLI can
// render.
func (c *Config) validateOutput() error {
	switch c.Check.Output {
	case "text", "json":
		return nil
	}
	return fmt.Errorf("unknown output format %q (expected text or json)", c.Check.Output)
}

// DSN returns the configured connection string for a database driver, or
// the empty string when none is set.
func (c *Config) DSN(driver string) string {
	switch driver {
	case "postgres":
		return c.PostgresDSN
	case "mssql":
		return c.MSSQLDSN
	}
	return ""
}
