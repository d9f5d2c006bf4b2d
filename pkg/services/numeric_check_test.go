package services

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/apperrors"
	"github.com/tablint-io/tablint/pkg/models"
	"github.com/tablint-io/tablint/pkg/table"
)

func newTable(t *testing.T, cols ...table.Column) *table.Table {
	t.Helper()
	tbl, err := table.New(cols...)
	require.NoError(t, err)
	return tbl
}

func textCol(name string, cells ...table.Value) table.Column {
	return table.NewColumn(name, table.TypeText, cells)
}

// assertReportInvariants checks the relations every report must satisfy
// regardless of input.
func assertReportInvariants(t *testing.T, rep *models.ColumnReport) {
	t.Helper()
	assert.Equal(t, len(rep.NonNumeric), rep.NonNumericCount,
		"non_numeric_count must equal the number of recorded issues")
	assert.Equal(t, rep.NonNumericCount == 0, rep.IsNumeric,
		"is_numeric must mean exactly zero issues")
	assert.Equal(t, len(rep.NullIndices), rep.NullCount)
	nulls := make(map[int]bool, len(rep.NullIndices))
	for _, i := range rep.NullIndices {
		nulls[i] = true
	}
	for _, issue := range rep.NonNumeric {
		assert.False(t, nulls[issue.Index],
			"null cell at row %d must not be reported as non-numeric", issue.Index)
	}
}

func TestCheckService_CheckColumn_AllNumericText(t *testing.T) {
	svc := NewCheckService(zap.NewNop())
	tbl := newTable(t, textCol("qty", table.Text("1"), table.Text("2"), table.Text("3")))

	rep, err := svc.CheckColumn(tbl, "qty")
	require.NoError(t, err)

	assert.True(t, rep.IsNumeric)
	assert.Empty(t, rep.NonNumeric)
	assert.Equal(t, 3, rep.TotalCount)
	assert.Equal(t, 0, rep.NullCount)
	assert.Equal(t, table.TypeText, rep.DeclaredType)
	assertReportInvariants(t, rep)
}

func TestCheckService_CheckColumn_MixedValues(t *testing.T) {
	svc := NewCheckService(zap.NewNop())
	tbl := newTable(t, textCol("amount",
		table.Text("1"),
		table.Text("abc"),
		table.Null(),
		table.Text("3.5"),
	))

	rep, err := svc.CheckColumn(tbl, "amount")
	require.NoError(t, err)

	assert.False(t, rep.IsNumeric)
	require.Len(t, rep.NonNumeric, 1)
	assert.Equal(t, 1, rep.NonNumeric[0].Index)
	assert.Equal(t, "abc", rep.NonNumeric[0].Value)
	assert.Equal(t, "string", rep.NonNumeric[0].Type)
	assert.Equal(t, 4, rep.TotalCount)
	assert.Equal(t, 1, rep.NullCount)
	assert.Equal(t, []int{2}, rep.NullIndices)
	assertReportInvariants(t, rep)
}

func TestCheckService_CheckColumn_DeclaredNumericShortCircuit(t *testing.T) {
	svc := NewCheckService(zap.NewNop())

	t.Run("nulls still located", func(t *testing.T) {
		tbl := newTable(t, table.NewColumn("price", table.TypeNumber, []table.Value{
			table.Number(1),
			table.Number(math.NaN()),
			table.Number(3),
		}))

		rep, err := svc.CheckColumn(tbl, "price")
		require.NoError(t, err)

		assert.True(t, rep.IsNumeric)
		assert.Empty(t, rep.NonNumeric)
		assert.Equal(t, 1, rep.NullCount)
		assert.Equal(t, []int{1}, rep.NullIndices)
		assertReportInvariants(t, rep)
	})

	t.Run("cells are not inspected", func(t *testing.T) {
		// A numeric declared type is trusted even when a stray cell would
		// fail the parse test.
		tbl := newTable(t, table.NewColumn("price", table.TypeInteger, []table.Value{
			table.Number(1),
			table.Text("oops"),
		}))

		rep, err := svc.CheckColumn(tbl, "price")
		require.NoError(t, err)
		assert.True(t, rep.IsNumeric)
		assert.Empty(t, rep.NonNumeric)
	})
}

func TestCheckService_CheckColumn_TrimsBeforeParsing(t *testing.T) {
	svc := NewCheckService(zap.NewNop())
	tbl := newTable(t, textCol("qty",
		table.Text(" 42 "),
		table.Text("\t3.5\n"),
		table.Text(" not a number "),
	))

	rep, err := svc.CheckColumn(tbl, "qty")
	require.NoError(t, err)

	assert.False(t, rep.IsNumeric)
	require.Len(t, rep.NonNumeric, 1)
	assert.Equal(t, 2, rep.NonNumeric[0].Index)
	// The issue keeps the original untrimmed form.
	assert.Equal(t, " not a number ", rep.NonNumeric[0].Value)
	assertReportInvariants(t, rep)
}

func TestCheckService_CheckColumn_NonTextKinds(t *testing.T) {
	svc := NewCheckService(zap.NewNop())
	tbl := newTable(t, table.NewColumn("flags", table.TypeMixed, []table.Value{
		table.Bool(true),
		table.Timestamp(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		table.Number(7),
	}))

	rep, err := svc.CheckColumn(tbl, "flags")
	require.NoError(t, err)

	assert.False(t, rep.IsNumeric)
	require.Len(t, rep.NonNumeric, 2)
	assert.Equal(t, "bool", rep.NonNumeric[0].Type)
	assert.Equal(t, "true", rep.NonNumeric[0].Value)
	assert.Equal(t, "time.Time", rep.NonNumeric[1].Type)
	assertReportInvariants(t, rep)
}

func TestCheckService_CheckColumn_NotFound(t *testing.T) {
	svc := NewCheckService(zap.NewNop())
	tbl := newTable(t, textCol("code", table.Text("a")), textCol("qty", table.Text("1")))

	_, err := svc.CheckColumn(tbl, "price")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrColumnNotFound)

	var notFound *table.ColumnNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "price", notFound.Column)
	assert.Equal(t, []string{"code", "qty"}, notFound.Available)
}

func TestCheckService_CheckColumns(t *testing.T) {
	svc := NewCheckService(zap.NewNop())
	tbl := newTable(t,
		textCol("qty", table.Text("1"), table.Text("2")),
		textCol("note", table.Text("ok"), table.Text("3")),
		textCol("price", table.Text("9.5"), table.Null()),
	)

	t.Run("explicit columns in request order", func(t *testing.T) {
		run, err := svc.CheckColumns(tbl, []string{"price", "qty"})
		require.NoError(t, err)

		assert.Equal(t, []string{"price", "qty"}, run.Columns)
		require.Len(t, run.Results, 2)
		assert.True(t, run.Result("price").IsNumeric)
		assert.True(t, run.Result("qty").IsNumeric)
		assert.Nil(t, run.Result("note"))
	})

	t.Run("nil means every column", func(t *testing.T) {
		run, err := svc.CheckColumns(tbl, nil)
		require.NoError(t, err)

		assert.Equal(t, []string{"qty", "note", "price"}, run.Columns)
		assert.Equal(t, []string{"qty", "price"}, run.NumericColumns())
		assert.Equal(t, []string{"note"}, run.NonNumericColumns())
	})

	t.Run("missing column aborts before any result", func(t *testing.T) {
		run, err := svc.CheckColumns(tbl, []string{"qty", "missing"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperrors.ErrColumnNotFound)
		assert.Nil(t, run)
	})
}
