// Package journey reconstructs per-actor activity histories and locates
// success-to-failure transitions.
package journey

import (
	"sort"
	"strings"

	"logsift/pkg/extract"
	"logsift/pkg/session"
)

// Reconstruct returns every record whose identifier values contain the
// actor query as a case-insensitive substring, in chronological order.
// A record is included once even when several of its identifiers match.
//
// Substring matching can pull in records from an unrelated actor whose
// identifier happens to contain the query; that is accepted behavior of
// the fuzzy lookup, not corrected here.
//
// Records without a timestamp sort before all timestamped ones, and the
// sort is stable so equal timestamps keep original line order.
func Reconstruct(sess *session.Session, actorQuery string) []*extract.Record {
	query := strings.ToLower(actorQuery)

	var matched []*extract.Record
	for _, r := range sess.Records() {
		for _, value := range r.Identifiers {
			if strings.Contains(strings.ToLower(value), query) {
				matched = append(matched, r)
				break
			}
		}
	}

	// Lexical comparison of the timestamp strings: the extractor's fixed
	// "YYYY-MM-DD HH:MM:SS" shape makes lexical order chronological, and
	// the empty string places timestamp-less records first.
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp < matched[j].Timestamp
	})
	return matched
}

// ErrorSequence is the success/failure partition of one actor journey.
type ErrorSequence struct {
	// TotalRequests is the journey length.
	TotalRequests int
	// Successful and Failed partition the journey in chronological order.
	Successful []*extract.Record
	Failed     []*extract.Record
	// FirstError is the earliest failure record, nil when the journey
	// never failed.
	FirstError *extract.Record
	// LastSuccessfulAPI is the API call of the most recent success record
	// that carries one, anywhere in the journey. It is not restricted to
	// the success immediately preceding the first failure.
	LastSuccessfulAPI *extract.APICall
	// ErrorAPIs lists the API calls of failure records in journey order,
	// duplicates preserved.
	ErrorAPIs []*extract.APICall
}

// Analyze partitions the actor's journey into successes and failures.
// A record is a failure when it has error markers or a status code of 400
// or above. An empty journey yields a zeroed ErrorSequence, never an error.
func Analyze(sess *session.Session, actorQuery string) ErrorSequence {
	records := Reconstruct(sess, actorQuery)

	seq := ErrorSequence{TotalRequests: len(records)}
	for _, r := range records {
		if r.IsFailure() {
			seq.Failed = append(seq.Failed, r)
			if seq.FirstError == nil {
				seq.FirstError = r
			}
			if r.API != nil {
				seq.ErrorAPIs = append(seq.ErrorAPIs, r.API)
			}
			continue
		}
		seq.Successful = append(seq.Successful, r)
		if r.API != nil {
			seq.LastSuccessfulAPI = r.API
		}
	}
	return seq
}
