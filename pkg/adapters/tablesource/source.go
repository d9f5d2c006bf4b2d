package tablesource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/apperrors"
	"github.com/tablint-io/tablint/pkg/table"
)

// Driver names accepted by New.
const (
	DriverCSV      = "csv"
	DriverExcel    = "excel"
	DriverPostgres = "postgres"
	DriverMSSQL    = "mssql"
)

// Drivers returns the supported driver names.
func Drivers() []string {
	return []string{DriverCSV, DriverExcel, DriverPostgres, DriverMSSQL}
}

// Source materializes a table from an external representation. Implementations
// own any connection they open and release it before Load returns.
type Source interface {
	// Load reads the source and builds its table.
	Load(ctx context.Context) (*table.Table, error)
}

// Config selects and parameterizes a source for New. Only the fields for the
// chosen driver need to be set.
type Config struct {
	Driver string

	// Path is the input file for the csv and excel drivers.
	Path string

	// Sheet is the worksheet name for the excel driver; empty means the
	// workbook's first sheet.
	Sheet string

	// DSN and Query drive the postgres and mssql drivers.
	DSN   string
	Query string

	// RowLimit bounds database query results when > 0.
	RowLimit int

	// Grid controls cell interpretation for the csv and excel drivers.
	Grid GridOptions
}

// New builds the source cfg describes.
func New(cfg Config, logger *zap.Logger) (Source, error) {
	switch cfg.Driver {
	case DriverCSV:
		return NewCSVSource(cfg.Path, cfg.Grid, logger), nil
	case DriverExcel:
		return NewExcelSource(cfg.Path, cfg.Sheet, cfg.Grid, logger), nil
	case DriverPostgres:
		return NewPostgresSource(cfg.DSN, cfg.Query, cfg.RowLimit, logger), nil
	case DriverMSSQL:
		return NewMSSQLSource(cfg.DSN, cfg.Query, cfg.RowLimit, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownDriver, cfg.Driver)
	}
}
