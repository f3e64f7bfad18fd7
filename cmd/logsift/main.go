package main

import (
	"context"
	"os"

	"github.com/go-errors/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"logsift/pkg/config"
	"logsift/pkg/logging"
	"logsift/pkg/session"
	"logsift/pkg/store"
	"logsift/pkg/tracing"
)

var (
	cfgPath   string
	dbPath    string
	logLevel  string
	logFormat string

	cfg *config.Config

	flushTracing = func() {}
)

func main() {
	// Load .env file if present (does not override existing env vars)
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:   "logsift",
		Short: "Structured log investigation",
		Long: `logsift extracts structured records from raw application logs,
reconstructs per-user journeys and failure transitions, and can ask an
LLM to explain what went wrong.`,
		SilenceUsage:      true,
		PersistentPreRunE: setup,
	}

	root.PersistentFlags().StringVar(&cfgPath, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&dbPath, "db", "", "path to DuckDB archive (overrides config)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides config)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format, json or console (overrides config)")

	root.AddCommand(ingestCmd())
	root.AddCommand(journeyCmd())
	root.AddCommand(traceCmd())
	root.AddCommand(statsCmd())
	root.AddCommand(patternsCmd())
	root.AddCommand(actorsCmd())
	root.AddCommand(templatesCmd())
	root.AddCommand(analyzeCmd())

	err := root.Execute()
	flushTracing()

	if err != nil {
		os.Exit(1)
	}
}

// setup loads configuration, applies flag overrides, and initializes
// logging and LLM call tracing before any subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgPath)
	if err != nil {
		return err
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}

	logging.SetGlobal(logging.New(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	}))
	flushTracing = tracing.InitLangfuse()
	return nil
}

// openStore opens and initializes the DuckDB archive.
func openStore(ctx context.Context) (*store.DuckDBStore, error) {
	s, err := store.NewDuckDBStore(cfg.DBPath)
	if err != nil {
		return nil, errors.Errorf("store: %w", err)
	}
	if err := s.Init(ctx); err != nil {
		_ = s.Close()
		return nil, errors.Errorf("store init: %w", err)
	}
	return s, nil
}

// loadSession rehydrates the archived batch into a fresh session.
func loadSession(ctx context.Context) (*session.Session, error) {
	s, err := openStore(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	records, _, err := s.LoadBatch(ctx)
	if err != nil {
		return nil, errors.Errorf("load batch: %w", err)
	}
	if len(records) == 0 {
		return nil, errors.New("no archived batch; run 'logsift ingest <logfile>' first")
	}
	return session.FromRecords(records), nil
}
