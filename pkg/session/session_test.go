package session

import (
	"testing"

	"logsift/pkg/extract"
)

func buildSession(t *testing.T, lines []string) *Session {
	t.Helper()
	s := New()
	for i, line := range lines {
		s.Append(extract.Extract(line, i+1))
	}
	return s
}

func TestAppendOrderAndViews(t *testing.T) {
	s := buildSession(t, []string{
		"2024-01-01 10:00:00 INFO GET /api/login user_id=alice",
		"2024-01-01 10:00:01 ERROR POST /api/payment user_id=alice status=500",
		"2024-01-01 10:00:02 INFO heartbeat",
	})

	if s.Len() != 3 {
		t.Fatalf("Len = %d, want 3", s.Len())
	}
	for i, r := range s.Records() {
		if r.LineNumber != i+1 {
			t.Errorf("record %d has LineNumber %d", i, r.LineNumber)
		}
	}
	if len(s.Failing()) != 1 || s.Failing()[0].LineNumber != 2 {
		t.Errorf("Failing view = %d records, want exactly line 2", len(s.Failing()))
	}
	if len(s.APICalls()) != 2 {
		t.Errorf("APICalls view = %d records, want 2", len(s.APICalls()))
	}
}

func TestIdentifierIndex(t *testing.T) {
	s := buildSession(t, []string{
		"login user_id=alice",
		"checkout user_id=bob",
		"retry user_id=alice",
	})

	alice := s.ByIdentifier("alice")
	if len(alice) != 2 {
		t.Fatalf("ByIdentifier(alice) = %d records, want 2", len(alice))
	}
	if alice[0].LineNumber != 1 || alice[1].LineNumber != 3 {
		t.Errorf("index lost line order: lines %d, %d", alice[0].LineNumber, alice[1].LineNumber)
	}
	if got := s.ByIdentifier("nobody"); got != nil {
		t.Errorf("ByIdentifier(nobody) = %v, want nil", got)
	}
}

func TestActorsFirstSeenOrderAndDedup(t *testing.T) {
	s := buildSession(t, []string{
		"login user_id=alice from 10.0.0.5",
		"login user_id=bob",
		"retry user_id=alice",
	})

	got := s.Actors()
	want := []string{"alice", "10.0.0.5", "bob"}
	if len(got) != len(want) {
		t.Fatalf("Actors = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Actors[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFromRecordsPreservesOrder(t *testing.T) {
	records := []*extract.Record{
		extract.Extract("first user_id=alice", 1),
		extract.Extract("second user_id=bob", 2),
	}
	s := FromRecords(records)

	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.Records()[0].Raw != "first user_id=alice" {
		t.Errorf("order not preserved: %q", s.Records()[0].Raw)
	}
	if len(s.Actors()) != 2 {
		t.Errorf("Actors = %v, want alice and bob", s.Actors())
	}
}

func TestNewSessionsGetDistinctIDs(t *testing.T) {
	if New().ID() == New().ID() {
		t.Error("two sessions share a batch ID")
	}
}
