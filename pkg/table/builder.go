package table

// ColumnBuilder accumulates cells for one column. Sources append values row
// by row and finalize with Column; the builder must not be reused after
// finalizing.
type ColumnBuilder struct {
	name  string
	ctype ColumnType
	cells []Value
}

// NewColumnBuilder starts a column with the given name and declared type.
func NewColumnBuilder(name string, ctype ColumnType) *ColumnBuilder {
	return &ColumnBuilder{name: name, ctype: ctype}
}

// Append adds one cell.
func (b *ColumnBuilder) Append(v Value) {
	b.cells = append(b.cells, v)
}

// AppendNull adds one missing cell.
func (b *ColumnBuilder) AppendNull() {
	b.cells = append(b.cells, Null())
}

// Len returns the number of cells appended so far.
func (b *ColumnBuilder) Len() int { return len(b.cells) }

// Name returns the column name the builder was started with.
func (b *ColumnBuilder) Name() string { return b.name }

// SetType replaces the declared type. Sources that detect types only after
// scanning all rows use this before finalizing.
func (b *ColumnBuilder) SetType(t ColumnType) { b.ctype = t }

// Column finalizes the builder into a read-only column.
func (b *ColumnBuilder) Column() Column {
	return NewColumn(b.name, b.ctype, b.cells)
}
