package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Plan is a reusable description of a check run: where the table comes
// from, which columns to verify, and how to report the result. Plans are
// YAML files passed to the CLI with --plan.
//
// Plans never carry connection strings. The postgres and mssql drivers
// take their DSN from the environment (TABLINT_POSTGRES_DSN,
// TABLINT_MSSQL_DSN) or the --dsn flag.
type Plan struct {
	Input   PlanInput  `yaml:"input"`
	Columns []string   `yaml:"columns"`
	Output  PlanOutput `yaml:"output"`
}

// PlanInput names the table source for a plan.
type PlanInput struct {
	Driver       string   `yaml:"driver"`
	Path         string   `yaml:"path"`
	Sheet        string   `yaml:"sheet"`
	Query        string   `yaml:"query"`
	RowLimit     int      `yaml:"row_limit"`
	Delimiter    string   `yaml:"delimiter"`
	NoHeader     bool     `yaml:"no_header"`
	DetectTypes  bool     `yaml:"detect_types"`
	NullLiterals []string `yaml:"null_literals"`
}

// PlanOutput selects the report rendering for a plan. An empty Format
// falls back to the check defaults from Config.
type PlanOutput struct {
	Format  string `yaml:"format"`
	Verbose bool   `yaml:"verbose"`
}

// LoadPlan reads and validates the plan file at path.
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plan file: %w", err)
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("failed to parse plan file %s: %w", path, err)
	}

	if err := plan.Validate(); err != nil {
		return nil, fmt.Errorf("invalid plan %s: %w", path, err)
	}

	return &plan, nil
}

// Validate checks that the plan names a source the CLI can open. Driver
// names themselves are checked later, when the source is constructed.
func (p *Plan) Validate() error {
	if p.Input.Driver == "" {
		return fmt.Errorf("input.driver is required")
	}
	if p.Input.Path == "" && p.Input.Query == "" {
		return fmt.Errorf("input needs a path or a query")
	}
	if _, err := ParseDelimiter(p.Input.Delimiter); err != nil {
		return err
	}
	switch p.Output.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown output format %q (expected text or json)", p.Output.Format)
	}
	return nil
}

// ParseDelimiter converts a field separator to a rune. The empty string
// parses to 0, meaning the driver default. The two-character escape "\t"
// is accepted for tab because a literal tab is hard to pass on a command
// line.
func ParseDelimiter(s string) (rune, error) {
	if s == "" {
		return 0, nil
	}
	if s == `\t` {
		return '\t', nil
	}
	r := []rune(s)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r[0], nil
}
