package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/tablint-io/tablint/pkg/table"
)

// ============================================================================
// Column Reports
// ============================================================================

// CellIssue pinpoints one cell that failed the numeric check.
type CellIssue struct {
	// Index is the zero-based row position of the cell in its column.
	Index int `json:"index"`

	// Value is the cell's original display form, untrimmed.
	Value string `json:"value"`

	// Type is the Go type label of the cell's underlying value.
	Type string `json:"type"`
}

// ColumnReport is the outcome of checking one column. Reports are built
// fresh per check and are not modified after being returned.
type ColumnReport struct {
	Column       string           `json:"column"`
	DeclaredType table.ColumnType `json:"declared_type"`

	// IsNumeric is true when no non-null cell failed the numeric check.
	IsNumeric bool `json:"is_numeric"`

	// NonNumeric lists the offending cells in row order.
	NonNumeric      []CellIssue `json:"non_numeric_values,omitempty"`
	NonNumericCount int         `json:"non_numeric_count"`

	TotalCount int `json:"total_count"`

	// Null cells are counted and located separately; they never appear in
	// NonNumeric.
	NullCount   int   `json:"null_count"`
	NullIndices []int `json:"null_indices,omitempty"`
}

// ============================================================================
// Run Reports
// ============================================================================

// RunReport aggregates the column reports of one checking run.
type RunReport struct {
	RunID       uuid.UUID `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	// Columns holds the checked column names in request order.
	Columns []string `json:"columns"`

	// Results maps column name to its report. Every name in Columns has an
	// entry.
	Results map[string]*ColumnReport `json:"results"`
}

// NewRunReport creates an empty run report for the given columns.
func NewRunReport(columns []string) *RunReport {
	return &RunReport{
		RunID:       uuid.New(),
		GeneratedAt: time.Now().UTC(),
		Columns:     columns,
		Results:     make(map[string]*ColumnReport, len(columns)),
	}
}

// Result returns the report for a column, or nil if the column was not part
// of the run.
func (r *RunReport) Result(column string) *ColumnReport {
	return r.Results[column]
}

// NumericColumns returns the checked columns flagged numeric, in request
// order.
func (r *RunReport) NumericColumns() []string {
	return r.partition(true)
}

// NonNumericColumns returns the checked columns with at least one offending
// cell, in request order.
func (r *RunReport) NonNumericColumns() []string {
	return r.partition(false)
}

func (r *RunReport) partition(numeric bool) []string {
	var cols []string
	for _, name := range r.Columns {
		rep := r.Results[name]
		if rep != nil && rep.IsNumeric == numeric {
			cols = append(cols, name)
		}
	}
	return cols
}
