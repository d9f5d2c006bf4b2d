package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tablint-io/tablint/pkg/adapters/tablesource"
	"github.com/tablint-io/tablint/pkg/config"
	"github.com/tablint-io/tablint/pkg/reports"
	"github.com/tablint-io/tablint/pkg/services"
)

// ErrIssuesFound marks a completed run in which at least one checked column
// holds non-numeric values. main turns it into exit code 1; the findings are
// already in the report, so no extra message is printed.
var ErrIssuesFound = errors.New("non-numeric values found")

var (
	checkInput        string
	checkDriver       string
	checkSheet        string
	checkQuery        string
	checkDSN          string
	checkColumns      []string
	checkOutput       string
	checkVerbose      bool
	checkPlanFile     string
	checkRowLimit     int
	checkDelimiter    string
	checkNoHeader     bool
	checkDetectTypes  bool
	checkNullLiterals []string
)

var checkCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Check that columns hold numeric values",
	Long: `Check loads a table and verifies that the requested columns hold
numeric values, reporting every offending cell and every missing value.

The table can come from a CSV file, an Excel workbook, or a PostgreSQL or
SQL Server query. Without --columns, every column in the table is checked.
Settings resolve in order: config file, plan file, flags.

Exit codes:
  0  all checked columns are numeric
  1  at least one checked column holds non-numeric values
  2  the check could not be run

Examples:
  tablint check data/orders.csv
  tablint check --columns quantity,unit_price data/orders.csv
  tablint check --driver excel --sheet Prices data/catalog.xlsx
  tablint check --driver postgres --query "SELECT * FROM orders" --limit 1000
  tablint check --plan checks/orders.yaml
  tablint check --output json data/orders.csv`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkInput, "input", "", "input file (same as the positional argument)")
	checkCmd.Flags().StringVar(&checkDriver, "driver", "", "source driver: "+strings.Join(tablesource.Drivers(), ", ")+" (inferred from the file extension when empty)")
	checkCmd.Flags().StringVar(&checkSheet, "sheet", "", "worksheet name for the excel driver (default: first sheet)")
	checkCmd.Flags().StringVar(&checkQuery, "query", "", "SQL query for the postgres and mssql drivers")
	checkCmd.Flags().StringVar(&checkDSN, "dsn", "", "connection string (overrides TABLINT_POSTGRES_DSN / TABLINT_MSSQL_DSN)")
	checkCmd.Flags().StringSliceVar(&checkColumns, "columns", nil, "columns to check (default: all)")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "report format: text or json")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "print the per-column analysis blocks")
	checkCmd.Flags().StringVar(&checkPlanFile, "plan", "", "plan file describing the run")
	checkCmd.Flags().IntVar(&checkRowLimit, "limit", 0, "cap database query results at this many rows (0 = no cap)")
	checkCmd.Flags().StringVar(&checkDelimiter, "delimiter", "", `field separator for the csv driver (default: comma; "\t" for tab)`)
	checkCmd.Flags().BoolVar(&checkNoHeader, "no-header", false, "treat the first row as data and name columns column_1, column_2, ...")
	checkCmd.Flags().BoolVar(&checkDetectTypes, "detect-types", false, "promote text columns whose every value parses as a number")
	checkCmd.Flags().StringSliceVar(&checkNullLiterals, "null-literals", nil, "cell spellings treated as missing values (replaces the built-in set)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	run, err := resolveCheckRun(cmd, args)
	if err != nil {
		return err
	}

	src, err := tablesource.New(run.source, logger)
	if err != nil {
		return err
	}

	tbl, err := src.Load(cmd.Context())
	if err != nil {
		return err
	}

	svc := services.NewCheckService(logger)
	report, err := svc.CheckColumns(tbl, run.columns)
	if err != nil {
		return err
	}

	switch run.output {
	case "json":
		err = reports.WriteJSON(os.Stdout, report)
	default:
		err = reports.NewConsoleRenderer(os.Stdout, run.verbose).RenderRun(report)
	}
	if err != nil {
		return err
	}

	if len(report.NonNumericColumns()) > 0 {
		cmd.SilenceErrors = true
		return ErrIssuesFound
	}
	return nil
}

// checkRun is the fully resolved input of one check invocation.
type checkRun struct {
	source  tablesource.Config
	columns []string
	output  string
	verbose bool
}

// resolveCheckRun layers config defaults, the plan file, explicit flags, and
// the positional argument into one checkRun, then fills in the driver and
// DSN.
func resolveCheckRun(cmd *cobra.Command, args []string) (*checkRun, error) {
	run := &checkRun{
		source: tablesource.Config{
			RowLimit: cfg.Check.RowLimit,
			Grid: tablesource.GridOptions{
				DetectTypes:  cfg.Check.DetectTypes,
				NullLiterals: cfg.Check.NullLiterals,
			},
		},
		output:  cfg.Check.Output,
		verbose: cfg.Check.Verbose,
	}

	if checkPlanFile != "" {
		plan, err := config.LoadPlan(checkPlanFile)
		if err != nil {
			return nil, err
		}
		applyPlan(run, plan)
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		run.source.Path = checkInput
	}
	if flags.Changed("driver") {
		run.source.Driver = checkDriver
	}
	if flags.Changed("sheet") {
		run.source.Sheet = checkSheet
	}
	if flags.Changed("query") {
		run.source.Query = checkQuery
	}
	if flags.Changed("limit") {
		run.source.RowLimit = checkRowLimit
	}
	if flags.Changed("no-header") {
		run.source.Grid.NoHeader = checkNoHeader
	}
	if flags.Changed("detect-types") {
		run.source.Grid.DetectTypes = checkDetectTypes
	}
	if flags.Changed("null-literals") {
		run.source.Grid.NullLiterals = checkNullLiterals
	}
	if flags.Changed("delimiter") {
		r, err := config.ParseDelimiter(checkDelimiter)
		if err != nil {
			return nil, err
		}
		run.source.Grid.Delimiter = r
	}
	if flags.Changed("columns") {
		run.columns = checkColumns
	}
	if flags.Changed("output") {
		run.output = checkOutput
	}
	if flags.Changed("verbose") {
		run.verbose = checkVerbose
	}

	if len(args) > 0 {
		run.source.Path = args[0]
	}

	if run.source.Driver == "" {
		run.source.Driver = inferDriver(run.source.Path)
	}
	if run.source.Driver == "" {
		return nil, fmt.Errorf("no driver given and none could be inferred; pass --driver or a file with a known extension")
	}

	// Tab-separated files keep the csv driver but need a tab separator.
	if run.source.Grid.Delimiter == 0 && strings.EqualFold(filepath.Ext(run.source.Path), ".tsv") {
		run.source.Grid.Delimiter = '\t'
	}

	switch run.output {
	case "text", "json":
	default:
		return nil, fmt.Errorf("unknown output format %q (expected text or json)", run.output)
	}

	switch run.source.Driver {
	case tablesource.DriverCSV, tablesource.DriverExcel:
		if run.source.Path == "" {
			return nil, fmt.Errorf("driver %q needs an input file", run.source.Driver)
		}
	case tablesource.DriverPostgres, tablesource.DriverMSSQL:
		if run.source.Query == "" {
			return nil, fmt.Errorf("driver %q needs --query", run.source.Driver)
		}
		dsn := checkDSN
		if dsn == "" {
			dsn = cfg.DSN(run.source.Driver)
		}
		if dsn == "" {
			return nil, fmt.Errorf("no DSN for driver %q; pass --dsn or set TABLINT_POSTGRES_DSN / TABLINT_MSSQL_DSN", run.source.Driver)
		}
		run.source.DSN = config.ResolveDSNHost(dsn)
	}

	return run, nil
}

// applyPlan overlays the plan file onto run. Zero-valued plan fields leave
// the current value in place.
func applyPlan(run *checkRun, plan *config.Plan) {
	in := plan.Input
	run.source.Driver = in.Driver
	if in.Path != "" {
		run.source.Path = in.Path
	}
	if in.Sheet != "" {
		run.source.Sheet = in.Sheet
	}
	if in.Query != "" {
		run.source.Query = in.Query
	}
	if in.RowLimit > 0 {
		run.source.RowLimit = in.RowLimit
	}
	if in.Delimiter != "" {
		// Validated by LoadPlan.
		run.source.Grid.Delimiter, _ = config.ParseDelimiter(in.Delimiter)
	}
	if in.NoHeader {
		run.source.Grid.NoHeader = true
	}
	if in.DetectTypes {
		run.source.Grid.DetectTypes = true
	}
	if len(in.NullLiterals) > 0 {
		run.source.Grid.NullLiterals = in.NullLiterals
	}

	if len(plan.Columns) > 0 {
		run.columns = plan.Columns
	}
	if plan.Output.Format != "" {
		run.output = plan.Output.Format
	}
	if plan.Output.Verbose {
		run.verbose = true
	}
}

// inferDriver guesses the source driver from a file extension.
func inferDriver(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv":
		return tablesource.DriverCSV
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return tablesource.DriverExcel
	}
	return ""
}
