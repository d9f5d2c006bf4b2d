package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tablint-io/tablint/pkg/config"
	"github.com/tablint-io/tablint/pkg/logging"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "tablint",
	Short: "Numeric sanity checks for tabular data",
	Long: `tablint loads a table and verifies that its columns hold numeric
values, reporting every offending cell and every missing value.

Sources:
  csv       - delimited text files
  excel     - xlsx workbooks
  postgres  - PostgreSQL query results
  mssql     - SQL Server query results

Reports go to stdout; diagnostic logs go to stderr.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func Execute() error {
	err := rootCmd.Execute()
	if logger != nil {
		_ = logger.Sync()
	}
	return err
}

// setup loads configuration and builds the logger before any subcommand
// runs. Log flags override the config file.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile, Version)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if logFormat != "" {
		cfg.Log.Format = logFormat
	}

	logger, err = logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	logger.Debug("Starting tablint",
		zap.String("version", cfg.Version),
		zap.String("log_level", cfg.Log.Level))
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./"+config.DefaultPath+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error (default from config)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format: console or json (default from config)")
}
