package tablesource

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/table"
)

// CSVSource reads a delimited text file into a table. All columns are typed
// text unless GridOptions.DetectTypes is set.
type CSVSource struct {
	path   string
	opts   GridOptions
	logger *zap.Logger
}

// NewCSVSource creates a CSV file source.
func NewCSVSource(path string, opts GridOptions, logger *zap.Logger) *CSVSource {
	return &CSVSource{
		path:   path,
		opts:   opts,
		logger: logger.Named("csv-source"),
	}
}

var _ Source = (*CSVSource)(nil)

// Load reads the whole file. Rows shorter than the header are padded with
// missing cells; extra fields on longer rows are dropped.
func (s *CSVSource) Load(ctx context.Context) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	if s.opts.Delimiter != 0 {
		r.Comma = s.opts.Delimiter
	}
	// Ragged input is tolerated; cells keep their original spelling, so
	// leading space survives into the table.
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	tbl, err := gridTable(records, s.opts)
	if err != nil {
		return nil, fmt.Errorf("build table from %s: %w", s.path, err)
	}

	s.logger.Info("CSV file loaded",
		zap.String("path", s.path),
		zap.Int("columns", tbl.NumCols()),
		zap.Int("rows", tbl.NumRows()))
	return tbl, nil
}
