package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writePlanFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write plan file: %v", err)
	}
	return path
}

func TestLoadPlan(t *testing.T) {
	path := writePlanFile(t, `
input:
  driver: csv
  path: data/orders.csv
  delimiter: ";"
  null_literals:
    - "-"
columns:
  - quantity
  - unit_price
output:
  format: json
  verbose: true
`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() failed: %v", err)
	}

	if plan.Input.Driver != "csv" {
		t.Errorf("expected driver=csv, got %s", plan.Input.Driver)
	}
	if plan.Input.Path != "data/orders.csv" {
		t.Errorf("expected path=data/orders.csv, got %s", plan.Input.Path)
	}
	if plan.Input.Delimiter != ";" {
		t.Errorf("expected delimiter=;, got %s", plan.Input.Delimiter)
	}
	if len(plan.Columns) != 2 || plan.Columns[0] != "quantity" || plan.Columns[1] != "unit_price" {
		t.Errorf("expected columns=[quantity unit_price], got %v", plan.Columns)
	}
	if plan.Output.Format != "json" {
		t.Errorf("expected format=json, got %s", plan.Output.Format)
	}
	if !plan.Output.Verbose {
		t.Error("expected verbose=true")
	}
}

func TestLoadPlan_QueryInput(t *testing.T) {
	path := writePlanFile(t, `
input:
  driver: postgres
  query: "SELECT * FROM orders"
  row_limit: 1000
columns:
  - total
`)

	plan, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan() failed: %v", err)
	}
	if plan.Input.Query != "SELECT * FROM orders" {
		t.Errorf("expected query from yaml, got %q", plan.Input.Query)
	}
	if plan.Input.RowLimit != 1000 {
		t.Errorf("expected row_limit=1000, got %d", plan.Input.RowLimit)
	}
}

func TestLoadPlan_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{
			name:    "missing driver",
			content: "input:\n  path: data.csv\n",
			errPart: "driver",
		},
		{
			name:    "missing path and query",
			content: "input:\n  driver: csv\n",
			errPart: "path or a query",
		},
		{
			name:    "bad delimiter",
			content: "input:\n  driver: csv\n  path: data.csv\n  delimiter: \"||\"\n",
			errPart: "single character",
		},
		{
			name:    "bad output format",
			content: "input:\n  driver: csv\n  path: data.csv\noutput:\n  format: xml\n",
			errPart: "xml",
		},
		{
			name:    "not yaml",
			content: "{{{{",
			errPart: "parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writePlanFile(t, tt.content)
			_, err := LoadPlan(path)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Errorf("expected error to contain %q, got: %v", tt.errPart, err)
			}
		})
	}
}

func TestLoadPlan_MissingFile(t *testing.T) {
	_, err := LoadPlan(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected error for missing plan file, got nil")
	}
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
		wantErr  bool
	}{
		{"", 0, false},
		{",", ',', false},
		{";", ';', false},
		{"|", '|', false},
		{`\t`, '\t', false},
		{"\t", '\t', false},
		{"ab", 0, true},
		{"--", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseDelimiter(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDelimiter(%q) expected error, got %q", tt.input, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDelimiter(%q) failed: %v", tt.input, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("ParseDelimiter(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
