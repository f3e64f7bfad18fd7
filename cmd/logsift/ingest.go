package main

import (
	"fmt"
	"os"

	"github.com/go-errors/errors"
	"github.com/spf13/cobra"

	"logsift/pkg/aggregate"
	"logsift/pkg/ingestor"
	"logsift/pkg/logging"
)

func ingestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ingest <logfile>",
		Short: "Parse a log file into structured records and archive the batch",
		Long: `Read a log file (or stdin with "-"), extract one structured record per
non-blank line, and archive the batch in DuckDB. The archive holds one
batch at a time; ingesting replaces the previous batch.`,
		Args: cobra.ExactArgs(1),
		RunE: runIngest,
	}
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logging.Component("ingest")

	log.Info().Str("file", args[0]).Msg("reading logs")
	sess, err := ingestor.IngestFile(ctx, args[0], cfg.MaxLogBytes)
	if err != nil {
		return errors.Errorf("ingest: %w", err)
	}

	s, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	if err := s.ReplaceBatch(ctx, sess.ID().String(), sess.Records()); err != nil {
		return errors.Errorf("archive batch: %w", err)
	}

	stats := aggregate.Statistics(sess)
	fmt.Fprintf(os.Stderr, "Ingested %d records (%d errors, %d API calls, %d actors)\n",
		stats.TotalLogs, stats.Errors, stats.APICalls, stats.UniqueActors)
	fmt.Fprintf(os.Stderr, "Database: %s\n", cfg.DBPath)
	return nil
}
