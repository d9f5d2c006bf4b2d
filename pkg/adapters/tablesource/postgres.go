package tablesource

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/logging"
	"github.com/tablint-io/tablint/pkg/retry"
	"github.com/tablint-io/tablint/pkg/sqlguard"
	"github.com/tablint-io/tablint/pkg/table"
)

// PostgresSource runs one SELECT against a PostgreSQL database and
// materializes the result set as a table. Declared column types come from the
// result's type OIDs.
type PostgresSource struct {
	dsn      string
	query    string
	rowLimit int
	logger   *zap.Logger
}

// NewPostgresSource creates a PostgreSQL query source. rowLimit > 0 bounds
// the result by wrapping the query; 0 means unbounded.
func NewPostgresSource(dsn, query string, rowLimit int, logger *zap.Logger) *PostgresSource {
	return &PostgresSource{
		dsn:      dsn,
		query:    query,
		rowLimit: rowLimit,
		logger:   logger.Named("postgres-source"),
	}
}

var _ Source = (*PostgresSource)(nil)

// Load connects, runs the query, and closes the connection before returning.
// Transient connection failures are retried with backoff.
func (s *PostgresSource) Load(ctx context.Context) (*table.Table, error) {
	query, err := sqlguard.Normalize(s.query)
	if err != nil {
		return nil, fmt.Errorf("validate query: %w", err)
	}

	conn, err := retry.DoWithResult(ctx, nil, func() (*pgx.Conn, error) {
		return pgx.Connect(ctx, s.dsn)
	})
	if err != nil {
		s.logger.Error("Connection failed",
			zap.String("dsn", logging.SanitizeConnectionString(s.dsn)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("connect to postgres: %w", err)
	}
	defer conn.Close(ctx)

	queryToRun := query
	if s.rowLimit > 0 {
		queryToRun = fmt.Sprintf("SELECT * FROM (%s) AS _limited LIMIT %d", query, s.rowLimit)
	}

	rows, err := conn.Query(ctx, queryToRun)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	fieldDescs := rows.FieldDescriptions()
	builders := make([]*table.ColumnBuilder, len(fieldDescs))
	for i, fd := range fieldDescs {
		builders[i] = table.NewColumnBuilder(string(fd.Name), columnTypeFromOID(fd.DataTypeOID))
	}

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read row values: %w", err)
		}
		for i, v := range values {
			builders[i].Append(pgValue(v))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	columns := make([]table.Column, len(builders))
	for i, b := range builders {
		columns[i] = b.Column()
	}
	tbl, err := table.New(columns...)
	if err != nil {
		return nil, fmt.Errorf("build table from query result: %w", err)
	}

	s.logger.Info("Query result loaded",
		zap.String("query", logging.SanitizeQuery(s.query)),
		zap.Int("columns", tbl.NumCols()),
		zap.Int("rows", tbl.NumRows()))
	return tbl, nil
}

// columnTypeFromOID maps PostgreSQL type OIDs to declared column types.
// Unknown OIDs map to TypeMixed so their cells still get inspected.
func columnTypeFromOID(oid uint32) table.ColumnType {
	switch oid {
	case 21, 23, 20, 26: // int2, int4, int8, oid
		return table.TypeInteger
	case 700, 701, 1700, 790: // float4, float8, numeric, money
		return table.TypeNumber
	case 16: // bool
		return table.TypeBool
	case 1082, 1083, 1114, 1184, 1266: // date, time, timestamp, timestamptz, timetz
		return table.TypeTimestamp
	case 18, 25, 1042, 1043, 2950: // char, text, bpchar, varchar, uuid
		return table.TypeText
	default:
		return table.TypeMixed
	}
}

// pgValue converts a driver value from pgx's Values() into a cell.
func pgValue(v any) table.Value {
	switch v := v.(type) {
	case nil:
		return table.Null()
	case float64:
		return table.Number(v)
	case float32:
		return table.Number(float64(v))
	case int64:
		return table.Number(float64(v))
	case int32:
		return table.Number(float64(v))
	case int16:
		return table.Number(float64(v))
	case uint32: // oid columns
		return table.Number(float64(v))
	case bool:
		return table.Bool(v)
	case string:
		return table.Text(v)
	case time.Time:
		return table.Timestamp(v)
	case [16]byte: // uuid
		return table.Text(uuid.UUID(v).String())
	case pgtype.Numeric:
		if f, err := v.Float64Value(); err == nil && f.Valid {
			return table.Number(f.Float64)
		}
		return table.Other(v)
	default:
		return table.Other(v)
	}
}
