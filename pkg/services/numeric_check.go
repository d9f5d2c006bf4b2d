package services

import (
	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/models"
	"github.com/tablint-io/tablint/pkg/table"
)

// CheckService decides whether table columns hold numeric data. A column
// passes when every non-null cell either is a number or parses as one; the
// report pinpoints each offending cell and locates missing values.
//
// The service never mutates the table, keeps no state between calls, and
// produces reports only; rendering them is the reports package's concern.
type CheckService interface {
	// CheckColumn checks a single column. Looking up a column the table
	// does not have fails with *table.ColumnNotFoundError; data anomalies
	// (missing or non-numeric cells) are report content, never errors.
	CheckColumn(tbl *table.Table, column string) (*models.ColumnReport, error)

	// CheckColumns checks the named columns in request order. A nil or
	// empty list means every column in table order. All names are resolved
	// up front, so one missing column aborts the run before any column is
	// scanned.
	CheckColumns(tbl *table.Table, columns []string) (*models.RunReport, error)
}

type checkService struct {
	logger *zap.Logger
}

var _ CheckService = (*checkService)(nil)

// NewCheckService creates a new numeric check service.
func NewCheckService(logger *zap.Logger) CheckService {
	return &checkService{
		logger: logger.Named("numeric-check"),
	}
}

func (s *checkService) CheckColumn(tbl *table.Table, column string) (*models.ColumnReport, error) {
	col, err := tbl.Column(column)
	if err != nil {
		s.logger.Warn("Column lookup failed",
			zap.String("column", column),
			zap.Strings("available", tbl.ColumnNames()))
		return nil, err
	}

	report := &models.ColumnReport{
		Column:       col.Name(),
		DeclaredType: col.Type(),
		TotalCount:   col.Len(),
	}

	if col.Type().Numeric() {
		// The declared type already guarantees numeric cells, so per-cell
		// parsing is skipped; missing values still need locating.
		for i := 0; i < col.Len(); i++ {
			if col.Cell(i).IsNull() {
				report.NullIndices = append(report.NullIndices, i)
			}
		}
		report.NullCount = len(report.NullIndices)
		report.IsNumeric = true

		s.logger.Debug("Column is numeric by declared type",
			zap.String("column", col.Name()),
			zap.String("declared_type", string(col.Type())),
			zap.Int("null_count", report.NullCount))
		return report, nil
	}

	for i := 0; i < col.Len(); i++ {
		cell := col.Cell(i)
		if cell.IsNull() {
			report.NullIndices = append(report.NullIndices, i)
			continue
		}
		if !cell.NumericLike() {
			report.NonNumeric = append(report.NonNumeric, models.CellIssue{
				Index: i,
				Value: cell.String(),
				Type:  cell.TypeName(),
			})
			s.logger.Debug("Non-numeric cell",
				zap.String("column", col.Name()),
				zap.Int("index", i),
				zap.String("type", cell.TypeName()))
		}
	}
	report.NullCount = len(report.NullIndices)
	report.NonNumericCount = len(report.NonNumeric)
	report.IsNumeric = report.NonNumericCount == 0

	s.logger.Info("Column checked",
		zap.String("column", col.Name()),
		zap.Bool("is_numeric", report.IsNumeric),
		zap.Int("total_count", report.TotalCount),
		zap.Int("non_numeric_count", report.NonNumericCount),
		zap.Int("null_count", report.NullCount))
	return report, nil
}

func (s *checkService) CheckColumns(tbl *table.Table, columns []string) (*models.RunReport, error) {
	if len(columns) == 0 {
		columns = tbl.ColumnNames()
	}

	// Resolve every requested name before scanning anything so a missing
	// column aborts the run without partial results.
	for _, name := range columns {
		if !tbl.HasColumn(name) {
			s.logger.Warn("Aborting run, column not found",
				zap.String("column", name),
				zap.Strings("available", tbl.ColumnNames()))
			return nil, &table.ColumnNotFoundError{Column: name, Available: tbl.ColumnNames()}
		}
	}

	run := models.NewRunReport(columns)
	for _, name := range columns {
		report, err := s.CheckColumn(tbl, name)
		if err != nil {
			return nil, err
		}
		run.Results[name] = report
	}

	s.logger.Info("Run complete",
		zap.String("run_id", run.RunID.String()),
		zap.Int("columns_checked", len(columns)),
		zap.Int("non_numeric_columns", len(run.NonNumericColumns())))
	return run, nil
}
