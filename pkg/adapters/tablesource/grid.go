package tablesource

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tablint-io/tablint/pkg/apperrors"
	"github.com/tablint-io/tablint/pkg/table"
)

// DefaultNullLiterals are the cell spellings treated as missing values when
// GridOptions does not override them.
var DefaultNullLiterals = []string{"", "na", "n/a", "null", "nan", "none"}

// GridOptions controls how text-grid sources (CSV files, Excel sheets)
// interpret their cells.
type GridOptions struct {
	// Delimiter is the field separator for delimited text; zero means
	// comma. The excel driver ignores it.
	Delimiter rune

	// NoHeader treats the first row as data and names the columns
	// column_1, column_2, ...
	NoHeader bool

	// NullLiterals replaces DefaultNullLiterals when non-nil. Cells are
	// compared case-insensitively after trimming.
	NullLiterals []string

	// DetectTypes promotes a column to TypeNumber when every non-null cell
	// parses as a number, converting its cells to number values. Columns
	// with no non-null cells are left as text.
	DetectTypes bool
}

func (o GridOptions) nullLiterals() []string {
	if o.NullLiterals != nil {
		return o.NullLiterals
	}
	return DefaultNullLiterals
}

func isNullLiteral(cell string, literals []string) bool {
	normalized := strings.ToLower(strings.TrimSpace(cell))
	for _, lit := range literals {
		if normalized == lit {
			return true
		}
	}
	return false
}

// cellAt reads row[i], padding rows shorter than the header with empty cells.
func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// gridTable builds a table from a header row and string records. Cells keep
// their original spelling; trimming happens only inside the numeric test and
// null-literal comparison. Fields beyond the header width are dropped.
func gridTable(records [][]string, opts GridOptions) (*table.Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("input has no rows: %w", apperrors.ErrNoColumns)
	}

	var header []string
	var rows [][]string
	if opts.NoHeader {
		header = make([]string, len(records[0]))
		for i := range header {
			header[i] = fmt.Sprintf("column_%d", i+1)
		}
		rows = records
	} else {
		header = records[0]
		rows = records[1:]
	}

	literals := opts.nullLiterals()
	columns := make([]table.Column, len(header))
	for c, name := range header {
		ctype := table.TypeText
		if opts.DetectTypes && columnIsNumeric(rows, c, literals) {
			ctype = table.TypeNumber
		}

		b := table.NewColumnBuilder(strings.TrimSpace(name), ctype)
		for _, row := range rows {
			cell := cellAt(row, c)
			switch {
			case isNullLiteral(cell, literals):
				b.AppendNull()
			case ctype == table.TypeNumber:
				f, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
				if err != nil {
					// columnIsNumeric vouched for every cell.
					return nil, fmt.Errorf("cell %q in column %q: %w", cell, name, err)
				}
				b.Append(table.Number(f))
			default:
				b.Append(table.Text(cell))
			}
		}
		columns[c] = b.Column()
	}

	return table.New(columns...)
}

// columnIsNumeric reports whether column c has at least one non-null cell
// and every non-null cell parses as a number.
func columnIsNumeric(rows [][]string, c int, literals []string) bool {
	seen := false
	for _, row := range rows {
		cell := cellAt(row, c)
		if isNullLiteral(cell, literals) {
			continue
		}
		seen = true
		if _, err := strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
			return false
		}
	}
	return seen
}
