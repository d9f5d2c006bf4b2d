package reports

import (
	"fmt"
	"io"
	"strings"

	"github.com/tablint-io/tablint/pkg/models"
)

const (
	detailRuleWidth  = 70
	summaryRuleWidth = 60

	indexFieldWidth = 10
	valueFieldWidth = 30
	typeFieldWidth  = 20
)

// ConsoleRenderer writes human-readable check reports. Rendering is purely a
// presentation concern; it never recomputes or alters report data.
type ConsoleRenderer struct {
	w       io.Writer
	verbose bool
}

// NewConsoleRenderer creates a renderer writing to w. In verbose mode every
// column gets a full analysis block before the run summary; otherwise only
// the summary is written.
func NewConsoleRenderer(w io.Writer, verbose bool) *ConsoleRenderer {
	return &ConsoleRenderer{w: w, verbose: verbose}
}

// RenderColumn writes the analysis block for a single column report.
func (r *ConsoleRenderer) RenderColumn(rep *models.ColumnReport) error {
	var b strings.Builder
	writeColumnBlock(&b, rep)
	_, err := io.WriteString(r.w, b.String())
	return err
}

// RenderRun writes a whole run: a banner and per-column blocks when verbose,
// then the summary partitioning columns into numeric and non-numeric.
func (r *ConsoleRenderer) RenderRun(run *models.RunReport) error {
	var b strings.Builder

	if r.verbose {
		rule := strings.Repeat("=", summaryRuleWidth)
		fmt.Fprintf(&b, "%s\n", rule)
		fmt.Fprintf(&b, "NUMERIC COLUMN VALIDATION\n")
		fmt.Fprintf(&b, "%s\n\n", rule)

		for _, name := range run.Columns {
			if rep := run.Result(name); rep != nil {
				fmt.Fprintf(&b, "\n--- Column: %s ---\n", name)
				writeColumnBlock(&b, rep)
			}
		}
		fmt.Fprintln(&b)
	}
	writeSummary(&b, run)

	_, err := io.WriteString(r.w, b.String())
	return err
}

// writeColumnBlock writes the status lines for one column, followed by the
// null and non-numeric detail blocks where they apply. A column whose
// declared type is already numeric gets the short form: counts only, no
// detail blocks.
func writeColumnBlock(b *strings.Builder, rep *models.ColumnReport) {
	if rep.DeclaredType.Numeric() {
		fmt.Fprintf(b, "✓ Column '%s' is numeric\n", rep.Column)
		fmt.Fprintf(b, "  - Declared type: %s\n", rep.DeclaredType)
		fmt.Fprintf(b, "  - Total values: %d\n", rep.TotalCount)
		fmt.Fprintf(b, "  - Null values: %d\n", rep.NullCount)
		return
	}

	if rep.IsNumeric {
		fmt.Fprintf(b, "✓ Column '%s' contains only numeric values\n", rep.Column)
		fmt.Fprintf(b, "  - Declared type: %s (convertible to numeric)\n", rep.DeclaredType)
		fmt.Fprintf(b, "  - Total values: %d\n", rep.TotalCount)
		fmt.Fprintf(b, "  - Null values: %d\n", rep.NullCount)
		writeNullDetail(b, rep)
		return
	}

	fmt.Fprintf(b, "✗ Column '%s' is NOT fully numeric\n", rep.Column)
	fmt.Fprintf(b, "  - Declared type: %s\n", rep.DeclaredType)
	fmt.Fprintf(b, "  - Total values: %d\n", rep.TotalCount)
	fmt.Fprintf(b, "  - Null values: %d\n", rep.NullCount)
	fmt.Fprintf(b, "  - Non-numeric values found: %d\n", rep.NonNumericCount)
	writeNullDetail(b, rep)
	writeIssueDetail(b, rep)
}

func writeNullDetail(b *strings.Builder, rep *models.ColumnReport) {
	if rep.NullCount == 0 {
		return
	}
	rule := strings.Repeat("=", detailRuleWidth)

	fmt.Fprintf(b, "\n%s\n", rule)
	fmt.Fprintf(b, "NULL VALUE DETAIL:\n")
	fmt.Fprintf(b, "%s\n", rule)
	fmt.Fprintf(b, "Indices with null values: %v\n", rep.NullIndices)
	fmt.Fprintf(b, "%s\n", rule)
}

func writeIssueDetail(b *strings.Builder, rep *models.ColumnReport) {
	rule := strings.Repeat("=", detailRuleWidth)

	fmt.Fprintf(b, "\n%s\n", rule)
	fmt.Fprintf(b, "NON-NUMERIC VALUE DETAIL:\n")
	fmt.Fprintf(b, "%s\n", rule)
	fmt.Fprintf(b, "%-*s %-*s %-*s\n",
		indexFieldWidth, "Index",
		valueFieldWidth, "Value",
		typeFieldWidth, "Type")
	fmt.Fprintf(b, "%s\n", strings.Repeat("-", detailRuleWidth))
	for _, issue := range rep.NonNumeric {
		fmt.Fprintf(b, "%-*d %-*s %-*s\n",
			indexFieldWidth, issue.Index,
			valueFieldWidth, truncate(issue.Value, valueFieldWidth),
			typeFieldWidth, issue.Type)
	}
	fmt.Fprintf(b, "%s\n", rule)
}

func writeSummary(b *strings.Builder, run *models.RunReport) {
	rule := strings.Repeat("=", summaryRuleWidth)

	fmt.Fprintf(b, "%s\n", rule)
	fmt.Fprintf(b, "SUMMARY\n")
	fmt.Fprintf(b, "%s\n", rule)

	numeric := run.NumericColumns()
	fmt.Fprintf(b, "\n✓ Numeric columns (%d):\n", len(numeric))
	for _, name := range numeric {
		fmt.Fprintf(b, "  - %s\n", name)
	}

	nonNumeric := run.NonNumericColumns()
	if len(nonNumeric) > 0 {
		fmt.Fprintf(b, "\n✗ Non-numeric columns (%d):\n", len(nonNumeric))
		for _, name := range nonNumeric {
			fmt.Fprintf(b, "  - %s (%d non-numeric values)\n", name, run.Result(name).NonNumericCount)
		}
	}
}

// truncate shortens a display value to max characters, ending in "..." when
// anything was cut. Counted in runes so multibyte values keep the column
// aligned.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
