package relevance

import (
	"testing"

	"logsift/pkg/extract"
)

func records(t *testing.T, lines ...string) []*extract.Record {
	t.Helper()
	out := make([]*extract.Record, len(lines))
	for i, line := range lines {
		out[i] = extract.Extract(line, i+1)
	}
	return out
}

func TestScore(t *testing.T) {
	errRecord := extract.Extract("2024-01-01 10:00:00 ERROR POST /api/payment user_id=alice", 1)
	plainRecord := extract.Extract("2024-01-01 10:00:01 INFO heartbeat", 2)

	tests := []struct {
		name   string
		record *extract.Record
		query  string
		want   int
	}{
		// error keyword (+10), user keyword (+5), api keyword (+5), error base (+3)
		{"all signals", errRecord, "track user errors in the api", 23},
		{"error query only", errRecord, "find all errors", 13},
		{"no query signals, error base", errRecord, "what happened", 3},
		{"plain record, plain query", plainRecord, "find all errors", 0},
		{"api query without api field", plainRecord, "api problems", 0},
	}
	for _, tt := range tests {
		if got := Score(tt.record, tt.query); got != tt.want {
			t.Errorf("%s: Score = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestSelectPrefersErrorForErrorQuery(t *testing.T) {
	rs := records(t,
		"2024-01-01 10:00:00 INFO all fine",
		"2024-01-01 10:00:01 ERROR something broke",
	)

	got, err := Select(rs, "find all errors", 1)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 1 || got[0].LineNumber != 2 {
		t.Errorf("Select returned %+v, want only the error record", got)
	}
}

func TestSelectBoundedAndNonIncreasing(t *testing.T) {
	rs := records(t,
		"INFO one",
		"ERROR two",
		"INFO three",
		"ERROR four",
		"INFO five",
	)

	got, err := Select(rs, "errors please", 3)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	query := "errors please"
	for i := 1; i < len(got); i++ {
		if Score(got[i-1], query) < Score(got[i], query) {
			t.Errorf("scores increase at position %d", i)
		}
	}
	// The two error records outrank everything; the first INFO record
	// fills the remaining slot by original order.
	if got[0].LineNumber != 2 || got[1].LineNumber != 4 || got[2].LineNumber != 1 {
		t.Errorf("order = %d, %d, %d; want 2, 4, 1",
			got[0].LineNumber, got[1].LineNumber, got[2].LineNumber)
	}
}

func TestSelectTiesKeepLineOrder(t *testing.T) {
	rs := records(t, "INFO a", "INFO b", "INFO c")

	got, err := Select(rs, "anything", 3)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	for i, r := range got {
		if r.LineNumber != i+1 {
			t.Errorf("tie order broken at %d: line %d", i, r.LineNumber)
		}
	}
}

func TestSelectFewerRecordsThanBudget(t *testing.T) {
	rs := records(t, "ERROR only one")
	got, err := Select(rs, "errors", 50)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestSelectNegativeBudgetIsError(t *testing.T) {
	if _, err := Select(nil, "q", -1); err == nil {
		t.Error("expected error for negative max count")
	}
}

func TestSelectDoesNotMutateInput(t *testing.T) {
	rs := records(t, "INFO one", "ERROR two")
	if _, err := Select(rs, "errors", 2); err != nil {
		t.Fatalf("Select: %v", err)
	}
	if rs[0].LineNumber != 1 || rs[1].LineNumber != 2 {
		t.Error("input slice was reordered")
	}
}
