package table

import (
	"fmt"
	"strings"

	"github.com/tablint-io/tablint/pkg/apperrors"
)

// ColumnType is the declared storage type a source attaches to a column.
// It reflects what the source knows about the column as a whole, not what
// any individual cell holds.
type ColumnType string

const (
	TypeNumber    ColumnType = "number"
	TypeInteger   ColumnType = "integer"
	TypeText      ColumnType = "text"
	TypeBool      ColumnType = "bool"
	TypeTimestamp ColumnType = "timestamp"
	TypeMixed     ColumnType = "mixed"
)

// Numeric reports whether the declared type already guarantees that every
// non-null cell is a number.
func (t ColumnType) Numeric() bool {
	return t == TypeNumber || t == TypeInteger
}

// Column is one named, typed column of cells. Columns are read-only after
// construction.
type Column struct {
	name  string
	ctype ColumnType
	cells []Value
}

// NewColumn builds a column from its cells. The cell slice is retained, not
// copied; the caller must not modify it afterwards.
func NewColumn(name string, ctype ColumnType, cells []Value) Column {
	return Column{name: name, ctype: ctype, cells: cells}
}

// Name returns the column name.
func (c Column) Name() string { return c.name }

// Type returns the declared column type.
func (c Column) Type() ColumnType { return c.ctype }

// Len returns the number of cells.
func (c Column) Len() int { return len(c.cells) }

// Cell returns the value at row i.
func (c Column) Cell(i int) Value { return c.cells[i] }

// ColumnNotFoundError reports a lookup of a column the table does not have.
// Available holds the table's actual column names in table order.
type ColumnNotFoundError struct {
	Column    string
	Available []string
}

func (e *ColumnNotFoundError) Error() string {
	return fmt.Sprintf("column %q not found in table; available columns: %s",
		e.Column, strings.Join(e.Available, ", "))
}

// Is matches the apperrors sentinel so callers can test with errors.Is
// without depending on the concrete type.
func (e *ColumnNotFoundError) Is(target error) bool {
	return target == apperrors.ErrColumnNotFound
}

// Table is an ordered collection of named columns of uniform length.
// Tables are read-only after construction.
type Table struct {
	columns []Column
	byName  map[string]int
	rows    int
}

// New builds a table and validates its shape: at least one column, no empty
// or duplicate names, and every column the same length.
func New(columns ...Column) (*Table, error) {
	if len(columns) == 0 {
		return nil, apperrors.ErrNoColumns
	}

	byName := make(map[string]int, len(columns))
	rows := columns[0].Len()
	for i, col := range columns {
		if col.Name() == "" {
			return nil, fmt.Errorf("column %d: %w", i, apperrors.ErrEmptyColumnName)
		}
		if _, exists := byName[col.Name()]; exists {
			return nil, fmt.Errorf("column %q: %w", col.Name(), apperrors.ErrDuplicateColumn)
		}
		if col.Len() != rows {
			return nil, fmt.Errorf("column %q has %d rows, expected %d: %w",
				col.Name(), col.Len(), rows, apperrors.ErrLengthMismatch)
		}
		byName[col.Name()] = i
	}

	return &Table{columns: columns, byName: byName, rows: rows}, nil
}

// NumRows returns the row count.
func (t *Table) NumRows() int { return t.rows }

// NumCols returns the column count.
func (t *Table) NumCols() int { return len(t.columns) }

// ColumnNames returns the column names in table order. The slice is a copy.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.Name()
	}
	return names
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.byName[name]
	return ok
}

// Column looks up a column by name. A miss returns *ColumnNotFoundError
// naming the missing column and listing the columns the table does have.
func (t *Table) Column(name string) (Column, error) {
	i, ok := t.byName[name]
	if !ok {
		return Column{}, &ColumnNotFoundError{Column: name, Available: t.ColumnNames()}
	}
	return t.columns[i], nil
}

// ColumnAt returns the column at position i in table order.
func (t *Table) ColumnAt(i int) Column { return t.columns[i] }
