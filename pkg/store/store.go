package store

import (
	"context"

	"logsift/pkg/extract"
)

// Store archives the extracted records of the most recent batch so later
// CLI invocations can query it without re-parsing the log file. Exactly
// one batch is kept: archiving a new one replaces the old wholesale,
// matching the session lifecycle.
type Store interface {
	// Init creates tables if they don't exist.
	Init(ctx context.Context) error
	// ReplaceBatch drops any previously archived batch and stores the
	// given records under the batch ID.
	ReplaceBatch(ctx context.Context, batchID string, records []*extract.Record) error
	// LoadBatch returns the archived records in line order, along with
	// the batch ID. An empty archive yields no records and an empty ID.
	LoadBatch(ctx context.Context) (records []*extract.Record, batchID string, err error)
	// Close releases resources.
	Close() error
}
