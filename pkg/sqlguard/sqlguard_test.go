package sqlguard

import (
	"errors"
	"testing"
)

func TestNormalize_ValidQueries(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "simple select without semicolon",
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "simple select with trailing semicolon",
			input:    "SELECT 1;",
			expected: "SELECT 1",
		},
		{
			name:     "select with trailing semicolon and whitespace",
			input:    "SELECT 1;  ",
			expected: "SELECT 1",
		},
		{
			name:     "select with leading and trailing whitespace",
			input:    "  SELECT 1  ",
			expected: "SELECT 1",
		},
		{
			name:     "select from table",
			input:    "SELECT * FROM orders",
			expected: "SELECT * FROM orders",
		},
		{
			name:     "select with where clause",
			input:    "SELECT * FROM orders WHERE id = 1;",
			expected: "SELECT * FROM orders WHERE id = 1",
		},
		{
			name:     "semicolon inside single quoted string",
			input:    "SELECT * FROM orders WHERE note = 'a;b'",
			expected: "SELECT * FROM orders WHERE note = 'a;b'",
		},
		{
			name:     "semicolon inside double quoted identifier",
			input:    `SELECT * FROM "table;name"`,
			expected: `SELECT * FROM "table;name"`,
		},
		{
			name:     "SQL standard escaped single quote",
			input:    "SELECT * FROM customers WHERE name = 'O''Brien'",
			expected: "SELECT * FROM customers WHERE name = 'O''Brien'",
		},
		{
			name:     "semicolon inside string with trailing semicolon",
			input:    "SELECT * FROM orders WHERE note = 'a;b';",
			expected: "SELECT * FROM orders WHERE note = 'a;b'",
		},
		{
			name:     "complex query with joins",
			input:    "SELECT o.*, c.* FROM orders o JOIN customers c ON o.customer_id = c.id;",
			expected: "SELECT o.*, c.* FROM orders o JOIN customers c ON o.customer_id = c.id",
		},
		{
			name:     "cte query",
			input:    "WITH recent AS (SELECT * FROM orders WHERE placed_at > now() - interval '7 days') SELECT * FROM recent;",
			expected: "WITH recent AS (SELECT * FROM orders WHERE placed_at > now() - interval '7 days') SELECT * FROM recent",
		},
		{
			name:     "query with newlines",
			input:    "SELECT *\nFROM orders\nWHERE id = 1;",
			expected: "SELECT *\nFROM orders\nWHERE id = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.input)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("got %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalize_MultipleStatements(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "two selects with semicolon separator",
			input: "SELECT 1; SELECT 2",
		},
		{
			name:  "two selects with semicolon separator and trailing",
			input: "SELECT 1; SELECT 2;",
		},
		{
			name:  "two selects no space after semicolon",
			input: "SELECT 1;SELECT 2",
		},
		{
			name:  "three statements",
			input: "SELECT 1; SELECT 2; SELECT 3",
		},
		{
			name:  "drop table attempt",
			input: "SELECT 1; DROP TABLE orders",
		},
		{
			name:  "delete attempt",
			input: "SELECT * FROM orders WHERE 1=1; DELETE FROM orders",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Normalize(tt.input)
			if err == nil {
				t.Error("expected error for multiple statements, got nil")
			}
			if !errors.Is(err, ErrMultipleStatements) {
				t.Errorf("expected ErrMultipleStatements, got %v", err)
			}
		})
	}
}

func TestNormalize_Empty(t *testing.T) {
	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := Normalize(input)
		if !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("Normalize(%q): expected ErrEmptyQuery, got %v", input, err)
		}
	}
}

func TestHasSemicolonOutsideStrings(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{
			name:     "no semicolons",
			input:    "SELECT 1",
			expected: false,
		},
		{
			name:     "semicolon in normal position",
			input:    "SELECT 1; SELECT 2",
			expected: true,
		},
		{
			name:     "semicolon in single quoted string",
			input:    "SELECT 'a;b'",
			expected: false,
		},
		{
			name:     "semicolon in double quoted identifier",
			input:    `SELECT "a;b"`,
			expected: false,
		},
		{
			name:     "mixed: semicolon in string and real semicolon",
			input:    "SELECT 'a;b'; SELECT 1",
			expected: true,
		},
		{
			name:     "escaped quote in string with semicolon",
			input:    "SELECT 'it''s;here'",
			expected: false,
		},
		{
			name:     "backslash escaped quote",
			input:    `SELECT 'test\';more'`,
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := hasSemicolonOutsideStrings(tt.input)
			if result != tt.expected {
				t.Errorf("got %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestStripTrailingSemicolon(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "no semicolon",
			input:    "SELECT 1",
			expected: "SELECT 1",
		},
		{
			name:     "trailing semicolon",
			input:    "SELECT 1;",
			expected: "SELECT 1",
		},
		{
			name:     "whitespace before semicolon",
			input:    "SELECT 1 ;",
			expected: "SELECT 1",
		},
		{
			name:     "multiple trailing semicolons only strips one",
			input:    "SELECT 1;;",
			expected: "SELECT 1;",
		},
		{
			name:     "semicolon with tabs and newlines",
			input:    "SELECT 1;\t\n",
			expected: "SELECT 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripTrailingSemicolon(tt.input)
			if result != tt.expected {
				t.Errorf("got %q, want %q", result, tt.expected)
			}
		})
	}
}
