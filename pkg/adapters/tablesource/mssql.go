package tablesource

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	mssql "github.com/microsoft/go-mssqldb"
	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/logging"
	"github.com/tablint-io/tablint/pkg/retry"
	"github.com/tablint-io/tablint/pkg/sqlguard"
	"github.com/tablint-io/tablint/pkg/table"
)

// MSSQLSource runs one SELECT against a SQL Server database and materializes
// the result set as a table. Declared column types come from the driver's
// reported database type names.
type MSSQLSource struct {
	dsn      string
	query    string
	rowLimit int
	logger   *zap.Logger
}

// NewMSSQLSource creates a SQL Server query source. rowLimit > 0 bounds the
// result by wrapping the query with a TOP clause; 0 means unbounded.
func NewMSSQLSource(dsn, query string, rowLimit int, logger *zap.Logger) *MSSQLSource {
	return &MSSQLSource{
		dsn:      dsn,
		query:    query,
		rowLimit: rowLimit,
		logger:   logger.Named("mssql-source"),
	}
}

var _ Source = (*MSSQLSource)(nil)

// Load connects, runs the query, and closes the connection before returning.
// Transient connection failures are retried with backoff.
func (s *MSSQLSource) Load(ctx context.Context) (*table.Table, error) {
	query, err := sqlguard.Normalize(s.query)
	if err != nil {
		return nil, fmt.Errorf("validate query: %w", err)
	}

	db, err := sql.Open("sqlserver", s.dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlserver connection: %w", err)
	}
	defer db.Close()

	if err := retry.Do(ctx, nil, func() error { return db.PingContext(ctx) }); err != nil {
		s.logger.Error("Connection failed",
			zap.String("dsn", logging.SanitizeConnectionString(s.dsn)),
			zap.String("error", logging.SanitizeError(err)))
		return nil, fmt.Errorf("connect to sqlserver: %w", err)
	}

	queryToRun := query
	if s.rowLimit > 0 {
		queryToRun = fmt.Sprintf("SELECT TOP (%d) * FROM (%s) AS _limited", s.rowLimit, query)
	}

	rows, err := db.QueryContext(ctx, queryToRun)
	if err != nil {
		return nil, fmt.Errorf("execute query: %w", err)
	}
	defer rows.Close()

	columnNames, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("get columns: %w", err)
	}
	columnTypes, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("get column types: %w", err)
	}

	typeNames := make([]string, len(columnNames))
	builders := make([]*table.ColumnBuilder, len(columnNames))
	for i, name := range columnNames {
		typeNames[i] = strings.ToUpper(columnTypes[i].DatabaseTypeName())
		builders[i] = table.NewColumnBuilder(name, columnTypeFromSQLServer(typeNames[i]))
	}

	for rows.Next() {
		values := make([]any, len(columnNames))
		valuePtrs := make([]any, len(columnNames))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		for i, v := range values {
			builders[i].Append(sqlServerValue(v, typeNames[i]))
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

// columnTypeFromSQLServer maps SQL Server type names (already uppercased) to
// declared column types. Unknown names map to TypeMixed so their cells still
// get inspected.
func columnTypeFromSQLServer(typeName string) table.ColumnType {
	switch typeName {
	case "TINYINT", "SMALLINT", "INT", "BIGINT":
		return table.TypeInteger
	case "DECIMAL", "NUMERIC", "MONEY", "SMALLMONEY", "FLOAT", "REAL":
		return table.TypeNumber
	case "CHAR", "NCHAR", "VARCHAR", "NVARCHAR", "TEXT", "NTEXT", "UNIQUEIDENTIFIER":
		return table.TypeText
	case "DATE", "TIME", "DATETIME", "DATETIME2", "SMALLDATETIME", "DATETIMEOFFSET":
		return table.TypeTimestamp
	case "BIT":
		return table.TypeBool
	default:
		return table.TypeMixed
	}
}

// isSQLServerStringType reports whether the type name carries text, meaning a
// scanned []byte should become a string cell.
func isSQLServerStringType(typeName string) bool {
	switch typeName {
	case "CHAR", "NCHAR", "VARCHAR", "NVARCHAR", "TEXT", "NTEXT":
		return true
	}
	return false
}

// sqlServerValue converts a scanned driver value into a cell. The driver
// hands DECIMAL, NUMERIC and MONEY over as []byte decimal strings, and
// UNIQUEIDENTIFIER as raw GUID bytes.
func sqlServerValue(v any, typeName string) table.Value {
	switch v := v.(type) {
	case nil:
		return table.Null()
	case int64:
		return table.Number(float64(v))
	case float64:
		return table.Number(v)
	case bool:
		return table.Bool(v)
	case string:
		return table.Text(v)
	case time.Time:
		return table.Timestamp(v)
	case []byte:
		switch {
		case isSQLServerStringType(typeName):
			return table.Text(string(v))
		case typeName == "DECIMAL" || typeName == "NUMERIC" || typeName == "MONEY" || typeName == "SMALLMONEY":
			if f, err := strconv.ParseFloat(string(v), 64); err == nil {
				return table.Number(f)
			}
			return table.Text(string(v))
		case typeName == "UNIQUEIDENTIFIER":
			var id mssql.UniqueIdentifier
			if err := id.Scan(v); err == nil {
				return table.Text(id.String())
			}
			return table.Other(v)
		default:
			return table.Other(v)
		}
	default:
		return table.Other(v)
	}
}
