package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/duckdb/duckdb-go/v2"

	"logsift/pkg/extract"
)

// DuckDBStore implements Store using DuckDB.
type DuckDBStore struct {
	db *sql.DB
}

var _ Store = (*DuckDBStore)(nil)

// NewDuckDBStore creates a new DuckDB-backed store.
// Pass dsn="" for in-memory, or a file path for persistent storage.
func NewDuckDBStore(dsn string) (*DuckDBStore, error) {
	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}
	return &DuckDBStore{db: db}, nil
}

// Init creates the records table if it does not exist.
func (s *DuckDBStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS records (
			batch_id VARCHAR,
			line_number INTEGER,
			raw VARCHAR,
			ts VARCHAR,
			level VARCHAR,
			method VARCHAR,
			endpoint VARCHAR,
			status_code INTEGER,
			identifiers VARCHAR,
			has_error BOOLEAN,
			exception_type VARCHAR
		)
	`)
	if err != nil {
		return fmt.Errorf("create records table: %w", err)
	}
	return nil
}

// ReplaceBatch drops the previous batch and archives the given records in
// a single transaction.
func (s *DuckDBStore) ReplaceBatch(ctx context.Context, batchID string, records []*extract.Record) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clear previous batch: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (batch_id, line_number, raw, ts, level, method, endpoint,
		                      status_code, identifiers, has_error, exception_type)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		ids, err := marshalIdentifiers(r.Identifiers)
		if err != nil {
			return fmt.Errorf("marshal identifiers: %w", err)
		}
		var method, endpoint string
		if r.API != nil {
			method = r.API.Method
			endpoint = r.API.Endpoint
		}
		_, err = stmt.ExecContext(ctx,
			batchID, r.LineNumber, r.Raw, r.Timestamp, r.Level,
			method, endpoint, r.StatusCode, ids, r.HasError, r.ExceptionType,
		)
		if err != nil {
			return fmt.Errorf("exec: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// LoadBatch returns the archived records in line order.
func (s *DuckDBStore) LoadBatch(ctx context.Context) ([]*extract.Record, string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT batch_id, line_number, raw, ts, level, method, endpoint,
		        status_code, identifiers, has_error, exception_type
		 FROM records ORDER BY line_number`,
	)
	if err != nil {
		return nil, "", fmt.Errorf("query records: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []*extract.Record
	var batchID string
	for rows.Next() {
		var r extract.Record
		var method, endpoint, ids string
		if err := rows.Scan(&batchID, &r.LineNumber, &r.Raw, &r.Timestamp, &r.Level,
			&method, &endpoint, &r.StatusCode, &ids, &r.HasError, &r.ExceptionType); err != nil {
			return nil, "", fmt.Errorf("scan record: %w", err)
		}
		if method != "" {
			r.API = &extract.APICall{Method: method, Endpoint: endpoint}
		}
		identifiers, err := unmarshalIdentifiers(ids)
		if err != nil {
			return nil, "", fmt.Errorf("unmarshal identifiers: %w", err)
		}
		r.Identifiers = identifiers
		records = append(records, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, "", fmt.Errorf("rows err: %w", err)
	}
	return records, batchID, nil
}

// Close closes the underlying database connection.
func (s *DuckDBStore) Close() error {
	return s.db.Close()
}

func marshalIdentifiers(ids map[extract.IdentifierKind]string) (string, error) {
	if len(ids) == 0 {
		return "{}", nil
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalIdentifiers(data string) (map[extract.IdentifierKind]string, error) {
	ids := make(map[extract.IdentifierKind]string)
	if data == "" {
		return ids, nil
	}
	if err := json.Unmarshal([]byte(data), &ids); err != nil {
		return nil, err
	}
	return ids, nil
}
