package reports

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/tablint-io/tablint/pkg/models"
)

// WriteJSON writes a run report as indented JSON, for piping into other
// tools.
func WriteJSON(w io.Writer, run *models.RunReport) error {
	out, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal run report: %w", err)
	}
	out = append(out, '\n')
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("write run report: %w", err)
	}
	return nil
}
