package store

import (
	"context"
	"testing"

	"logsift/pkg/extract"
)

func setupStore(t *testing.T) *DuckDBStore {
	t.Helper()
	s, err := NewDuckDBStore("")
	if err != nil {
		t.Fatalf("NewDuckDBStore: %v", err)
	}
	if err := s.Init(context.Background()); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func sampleRecords(t *testing.T) []*extract.Record {
	t.Helper()
	lines := []string{
		"2024-01-01 10:00:00 INFO GET /api/login user_id=alice status=200",
		"plain unstructured line",
		"2024-01-01 10:00:02 ERROR POST /api/payment user_id=alice status=500 PaymentException",
	}
	records := make([]*extract.Record, len(lines))
	for i, line := range lines {
		records[i] = extract.Extract(line, i+1)
	}
	return records
}

func TestReplaceAndLoadBatch(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if err := s.ReplaceBatch(ctx, "batch-1", sampleRecords(t)); err != nil {
		t.Fatalf("ReplaceBatch: %v", err)
	}

	loaded, batchID, err := s.LoadBatch(ctx)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if batchID != "batch-1" {
		t.Errorf("batchID = %q, want batch-1", batchID)
	}
	if len(loaded) != 3 {
		t.Fatalf("loaded %d records, want 3", len(loaded))
	}

	first := loaded[0]
	if first.LineNumber != 1 || first.Level != "INFO" || first.StatusCode != 200 {
		t.Errorf("first record round-trip mismatch: %+v", first)
	}
	if first.API == nil || first.API.Method != "GET" || first.API.Endpoint != "/api/login" {
		t.Errorf("first record API = %+v", first.API)
	}
	if got := first.Identifiers[extract.KindUserID]; got != "alice" {
		t.Errorf("first record user_id = %q, want alice", got)
	}

	plain := loaded[1]
	if plain.API != nil || plain.HasStatusCode() || len(plain.Identifiers) != 0 {
		t.Errorf("minimal record grew fields on round-trip: %+v", plain)
	}

	failing := loaded[2]
	if !failing.HasError || failing.ExceptionType != "PaymentException" {
		t.Errorf("failing record round-trip mismatch: %+v", failing)
	}
}

func TestReplaceBatchDropsPreviousBatch(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	if err := s.ReplaceBatch(ctx, "batch-1", sampleRecords(t)); err != nil {
		t.Fatalf("ReplaceBatch 1: %v", err)
	}
	replacement := []*extract.Record{extract.Extract("INFO the only line", 1)}
	if err := s.ReplaceBatch(ctx, "batch-2", replacement); err != nil {
		t.Fatalf("ReplaceBatch 2: %v", err)
	}

	loaded, batchID, err := s.LoadBatch(ctx)
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if batchID != "batch-2" || len(loaded) != 1 {
		t.Errorf("got batch %q with %d records, want batch-2 with 1", batchID, len(loaded))
	}
}

func TestLoadBatchEmptyArchive(t *testing.T) {
	s := setupStore(t)

	loaded, batchID, err := s.LoadBatch(context.Background())
	if err != nil {
		t.Fatalf("LoadBatch: %v", err)
	}
	if len(loaded) != 0 || batchID != "" {
		t.Errorf("empty archive returned %d records, batch %q", len(loaded), batchID)
	}
}
