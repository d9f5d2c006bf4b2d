package models

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewRunReport(t *testing.T) {
	r := NewRunReport([]string{"qty", "price"})

	if r.RunID == uuid.Nil {
		t.Error("NewRunReport() RunID is nil")
	}
	if r.GeneratedAt.IsZero() {
		t.Error("NewRunReport() GeneratedAt is zero")
	}
	if len(r.Columns) != 2 {
		t.Errorf("NewRunReport() Columns = %v, want 2 entries", r.Columns)
	}
	if r.Results == nil {
		t.Error("NewRunReport() Results map is nil")
	}
}

func TestRunReport_Partitions(t *testing.T) {
	r := NewRunReport([]string{"qty", "note", "price"})
	r.Results["qty"] = &ColumnReport{Column: "qty", IsNumeric: true}
	r.Results["note"] = &ColumnReport{Column: "note", IsNumeric: false, NonNumericCount: 3}
	r.Results["price"] = &ColumnReport{Column: "price", IsNumeric: true}

	numeric := r.NumericColumns()
	if len(numeric) != 2 || numeric[0] != "qty" || numeric[1] != "price" {
		t.Errorf("NumericColumns() = %v, want [qty price]", numeric)
	}

	nonNumeric := r.NonNumericColumns()
	if len(nonNumeric) != 1 || nonNumeric[0] != "note" {
		t.Errorf("NonNumericColumns() = %v, want [note]", nonNumeric)
	}
}

func TestRunReport_Result(t *testing.T) {
	r := NewRunReport([]string{"qty"})
	rep := &ColumnReport{Column: "qty", IsNumeric: true}
	r.Results["qty"] = rep

	if got := r.Result("qty"); got != rep {
		t.Errorf("Result(qty) = %v, want the stored report", got)
	}
	if got := r.Result("missing"); got != nil {
		t.Errorf("Result(missing) = %v, want nil", got)
	}
}
