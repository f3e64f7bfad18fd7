// Package session holds the record store for one ingested batch.
package session

import (
	"github.com/google/uuid"

	"logsift/pkg/extract"
)

// Session is the ordered record store for a single ingestion, plus the
// identifier index built alongside it. A Session is created empty, fully
// populated in one pass, and replaced wholesale on the next ingestion;
// it is not safe for concurrent population.
type Session struct {
	id       uuid.UUID
	records  []*extract.Record
	failing  []*extract.Record
	apiCalls []*extract.Record

	// byValue indexes records by identifier value, regardless of kind.
	// It is a lookup accelerator only; journey semantics are defined over
	// the ordered record sequence.
	byValue map[string][]*extract.Record
	// valueOrder keeps identifier values in first-seen order.
	valueOrder []string
}

// New creates an empty session with a fresh batch ID.
func New() *Session {
	return &Session{
		id:      uuid.New(),
		byValue: make(map[string][]*extract.Record),
	}
}

// FromRecords builds a session from already-extracted records, preserving
// their order. Used when rehydrating an archived batch.
func FromRecords(records []*extract.Record) *Session {
	s := New()
	for _, r := range records {
		s.Append(r)
	}
	return s
}

// ID returns the batch ID assigned at creation.
func (s *Session) ID() uuid.UUID { return s.id }

// Append adds a record to the store and updates the derived views and the
// identifier index. Records must be appended in original line order.
func (s *Session) Append(r *extract.Record) {
	s.records = append(s.records, r)
	if r.HasError {
		s.failing = append(s.failing, r)
	}
	if r.API != nil {
		s.apiCalls = append(s.apiCalls, r)
	}
	for _, kind := range extract.IdentifierKinds {
		value, ok := r.Identifiers[kind]
		if !ok || value == "" {
			continue
		}
		bucket, seen := s.byValue[value]
		if !seen {
			s.valueOrder = append(s.valueOrder, value)
		}
		s.byValue[value] = append(bucket, r)
	}
}

// Records returns all records in original line order. The returned slice
// is shared; callers must not mutate it.
func (s *Session) Records() []*extract.Record { return s.records }

// Failing returns the subsequence of records with error markers.
func (s *Session) Failing() []*extract.Record { return s.failing }

// APICalls returns the subsequence of records carrying an API call.
func (s *Session) APICalls() []*extract.Record { return s.apiCalls }

// ByIdentifier returns the records carrying the exact identifier value,
// in line order. Unknown values yield nil.
func (s *Session) ByIdentifier(value string) []*extract.Record {
	return s.byValue[value]
}

// Actors returns every distinct identifier value seen in the batch, in
// first-seen order, counted once regardless of kind.
func (s *Session) Actors() []string {
	out := make([]string, len(s.valueOrder))
	copy(out, s.valueOrder)
	return out
}

// Len returns the number of records in the store.
func (s *Session) Len() int { return len(s.records) }
