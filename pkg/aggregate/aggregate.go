// Package aggregate computes batch-wide statistics and failure patterns.
//
// All functions here are pure reads over a session: calling them twice on
// an unmodified session yields identical results.
package aggregate

import (
	"sort"

	"logsift/pkg/extract"
	"logsift/pkg/session"
)

// Stats summarizes one ingested batch.
type Stats struct {
	TotalLogs int
	Errors    int
	// Warnings counts records at level WARN exactly. WARNING is a distinct
	// token and is intentionally not folded in.
	Warnings     int
	APICalls     int
	UniqueActors int
	// StatusCodes is the histogram of status codes over records that
	// carry one.
	StatusCodes map[int]int
}

// Statistics computes batch statistics over the whole record store.
func Statistics(sess *session.Session) Stats {
	stats := Stats{
		TotalLogs:    sess.Len(),
		APICalls:     len(sess.APICalls()),
		UniqueActors: len(sess.Actors()),
		StatusCodes:  make(map[int]int),
	}
	for _, r := range sess.Records() {
		if r.HasError {
			stats.Errors++
		}
		if r.Level == extract.LevelWarn {
			stats.Warnings++
		}
		if r.HasStatusCode() {
			stats.StatusCodes[r.StatusCode]++
		}
	}
	return stats
}

// PatternSummary aggregates the failure subview of a batch.
type PatternSummary struct {
	// MostCommonExceptions counts failure records per exception type.
	MostCommonExceptions map[string]int
	// MostFailedAPIs counts failure records per "METHOD /path".
	MostFailedAPIs map[string]int
	// ErrorByStatusCode counts failure records per status code.
	ErrorByStatusCode map[int]int
	// AffectedActors holds every identifier value appearing on any failure
	// record, duplicates collapsed, sorted for deterministic output.
	AffectedActors []string
}

// Patterns aggregates cross-cutting failure patterns over the batch.
func Patterns(sess *session.Session) PatternSummary {
	summary := PatternSummary{
		MostCommonExceptions: make(map[string]int),
		MostFailedAPIs:       make(map[string]int),
		ErrorByStatusCode:    make(map[int]int),
	}

	affected := make(map[string]bool)
	for _, r := range sess.Failing() {
		if r.ExceptionType != "" {
			summary.MostCommonExceptions[r.ExceptionType]++
		}
		if r.API != nil {
			summary.MostFailedAPIs[r.API.String()]++
		}
		if r.HasStatusCode() {
			summary.ErrorByStatusCode[r.StatusCode]++
		}
		for _, value := range r.Identifiers {
			if value != "" {
				affected[value] = true
			}
		}
	}

	summary.AffectedActors = make([]string, 0, len(affected))
	for value := range affected {
		summary.AffectedActors = append(summary.AffectedActors, value)
	}
	sort.Strings(summary.AffectedActors)
	return summary
}

// EndpointStats summarizes one API endpoint across a batch.
type EndpointStats struct {
	TotalCalls int
	Successful int
	Failed     int
	// Exceptions lists exception types seen on failed calls, in order,
	// duplicates preserved.
	Exceptions []string
}

// APISummary aggregates per-endpoint call outcomes over records carrying
// an API call, keyed "METHOD /path". A call with a status code below 400
// is successful; otherwise it is failed when it has error markers or a
// status code of 400 or above. Calls with neither signal count only
// toward the total.
func APISummary(sess *session.Session) map[string]EndpointStats {
	summary := make(map[string]EndpointStats)
	for _, r := range sess.APICalls() {
		key := r.API.String()
		st := summary[key]
		st.TotalCalls++
		switch {
		case r.HasStatusCode() && r.StatusCode < 400:
			st.Successful++
		case r.IsFailure():
			st.Failed++
			if r.ExceptionType != "" {
				st.Exceptions = append(st.Exceptions, r.ExceptionType)
			}
		}
		summary[key] = st
	}
	return summary
}
