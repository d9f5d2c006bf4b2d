package tablesource

import (
	"fmt"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"

	"github.com/tablint-io/tablint/pkg/table"
)

// FromArrowRecord converts one Arrow record batch into a table. Null slots
// become missing cells; declared column types follow the schema's field
// types.
func FromArrowRecord(rec arrow.Record) (*table.Table, error) {
	schema := rec.Schema()
	columns := make([]table.Column, rec.NumCols())
	for c := 0; c < int(rec.NumCols()); c++ {
		field := schema.Field(c)
		b := table.NewColumnBuilder(field.Name, columnTypeFromArrow(field.Type))
		appendArrowArray(b, rec.Column(c))
		columns[c] = b.Column()
	}

	tbl, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("build table from arrow record: %w", err)
	}
	return tbl, nil
}

// FromArrowTable converts a (possibly chunked) Arrow table.
func FromArrowTable(at arrow.Table) (*table.Table, error) {
	schema := at.Schema()
	columns := make([]table.Column, at.NumCols())
	for c := 0; c < int(at.NumCols()); c++ {
		field := schema.Field(c)
		b := table.NewColumnBuilder(field.Name, columnTypeFromArrow(field.Type))
		for _, chunk := range at.Column(c).Data().Chunks() {
			appendArrowArray(b, chunk)
		}
		columns[c] = b.Column()
	}

	tbl, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("build table from arrow table: %w", err)
	}
	return tbl, nil
}

// columnTypeFromArrow maps an Arrow field type to a declared column type.
func columnTypeFromArrow(dt arrow.DataType) table.ColumnType {
	switch dt.ID() {
	case arrow.INT8, arrow.INT16, arrow.INT32, arrow.INT64,
		arrow.UINT8, arrow.UINT16, arrow.UINT32, arrow.UINT64:
		return table.TypeInteger
	case arrow.FLOAT16, arrow.FLOAT32, arrow.FLOAT64, arrow.DECIMAL128, arrow.DECIMAL256:
		return table.TypeNumber
	case arrow.STRING, arrow.LARGE_STRING, arrow.STRING_VIEW:
		return table.TypeText
	case arrow.BOOL:
		return table.TypeBool
	case arrow.TIMESTAMP, arrow.DATE32, arrow.DATE64, arrow.TIME32, arrow.TIME64:
		return table.TypeTimestamp
	default:
		return table.TypeMixed
	}
}

func appendArrowArray(b *table.ColumnBuilder, arr arrow.Array) {
	for i := 0; i < arr.Len(); i++ {
		b.Append(arrowCell(arr, i))
	}
}

// arrowCell converts one array slot into a cell. Types without a scalar
// mapping carry their Arrow string rendering.
func arrowCell(arr arrow.Array, i int) table.Value {
	if arr.IsNull(i) {
		return table.Null()
	}

	switch a := arr.(type) {
	case *array.Float64:
		return table.Number(a.Value(i))
	case *array.Float32:
		return table.Number(float64(a.Value(i)))
	case *array.Int64:
		return table.Number(float64(a.Value(i)))
	case *array.Int32:
		return table.Number(float64(a.Value(i)))
	case *array.Int16:
		return table.Number(float64(a.Value(i)))
	case *array.Int8:
		return table.Number(float64(a.Value(i)))
	case *array.Uint64:
		return table.Number(float64(a.Value(i)))
	case *array.Uint32:
		return table.Number(float64(a.Value(i)))
	case *array.Uint16:
		return table.Number(float64(a.Value(i)))
	case *array.Uint8:
		return table.Number(float64(a.Value(i)))
	case *array.Decimal128:
		dt := a.DataType().(*arrow.Decimal128Type)
		return table.Number(a.Value(i).ToFloat64(dt.Scale))
	case *array.String:
		return table.Text(a.Value(i))
	case *array.LargeString:
		return table.Text(a.Value(i))
	case *array.Boolean:
		return table.Bool(a.Value(i))
	case *array.Timestamp:
		dt := a.DataType().(*arrow.TimestampType)
		return table.Timestamp(a.Value(i).ToTime(dt.Unit))
	case *array.Date32:
		return table.Timestamp(a.Value(i).ToTime())
	case *array.Date64:
		return table.Timestamp(a.Value(i).ToTime())
	default:
		return table.Other(arr.ValueStr(i))
	}
}
