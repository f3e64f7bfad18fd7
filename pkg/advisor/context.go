package advisor

import (
	"fmt"
	"sort"
	"strings"

	"logsift/pkg/aggregate"
	"logsift/pkg/config"
	"logsift/pkg/journey"
	"logsift/pkg/relevance"
	"logsift/pkg/session"
)

// rawPreview caps how much of a raw line goes into a journey section.
const rawPreview = 150

// BuildContext renders the batch into a prompt context for the LLM:
// overall statistics, the detected actor's journey and transition summary
// (when the question names one), the per-endpoint summary, failure
// patterns, and a relevance-ranked excerpt sized by the analysis depth.
// It is a pure read over the session.
func BuildContext(sess *session.Session, question, depth string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "USER QUERY: %s\n\n", question)
	writeStatistics(&b, aggregate.Statistics(sess))

	if actor, ok := DetectActor(sess, question); ok {
		writeJourney(&b, sess, actor)
	}

	writeAPISummary(&b, aggregate.APISummary(sess))
	writePatterns(&b, aggregate.Patterns(sess))
	writeRelevantRecords(&b, sess, question, config.MaxLogsForDepth(depth))

	b.WriteString("\n\nBased on this log data, please provide a detailed analysis addressing the user's query.")
	return b.String()
}

func writeStatistics(b *strings.Builder, stats aggregate.Stats) {
	fmt.Fprintf(b, `OVERALL STATISTICS:
- Total Logs: %d
- Errors Found: %d
- Warnings: %d
- API Calls: %d
- Unique Users: %d
- Status Code Distribution: %s

`, stats.TotalLogs, stats.Errors, stats.Warnings, stats.APICalls, stats.UniqueActors,
		formatIntHistogram(stats.StatusCodes))
}

func writeJourney(b *strings.Builder, sess *session.Session, actor string) {
	fmt.Fprintf(b, "\nUSER JOURNEY ANALYSIS FOR: %s\n", actor)

	seq := journey.Analyze(sess, actor)
	firstError := "None"
	if seq.FirstError != nil {
		firstError = fmt.Sprintf("line %d", seq.FirstError.LineNumber)
	}
	lastAPI := "None"
	if seq.LastSuccessfulAPI != nil {
		lastAPI = seq.LastSuccessfulAPI.String()
	}
	fmt.Fprintf(b, `
Journey Summary:
- Total Requests: %d
- Successful: %d
- Failed: %d
- First Error At: %s
- Last Successful API: %s

Detailed Journey:
`, seq.TotalRequests, len(seq.Successful), len(seq.Failed), firstError, lastAPI)

	for _, r := range journey.Reconstruct(sess, actor) {
		fmt.Fprintf(b, "Line %d: [%s] %s\n", r.LineNumber, r.Level, truncate(r.Raw, rawPreview))
	}
	b.WriteString("\n")
}

func writeAPISummary(b *strings.Builder, summary map[string]aggregate.EndpointStats) {
	b.WriteString("\nAPI ENDPOINT SUMMARY:\n")
	for _, endpoint := range sortedKeys(summary) {
		st := summary[endpoint]
		fmt.Fprintf(b, "- %s: %d calls, %d success, %d failed\n",
			endpoint, st.TotalCalls, st.Successful, st.Failed)
	}
}

func writePatterns(b *strings.Builder, patterns aggregate.PatternSummary) {
	b.WriteString("\nERROR PATTERNS:\n")
	fmt.Fprintf(b, "Most Common Exceptions: %s\n", formatCounts(patterns.MostCommonExceptions))
	fmt.Fprintf(b, "Most Failed APIs: %s\n", formatCounts(patterns.MostFailedAPIs))
	fmt.Fprintf(b, "Affected Users: %d users\n\n", len(patterns.AffectedActors))
}

func writeRelevantRecords(b *strings.Builder, sess *session.Session, question string, maxLogs int) {
	selected, err := relevance.Select(sess.Records(), question, maxLogs)
	if err != nil {
		// Depth presets are always non-negative; keep the context usable.
		return
	}

	b.WriteString("RELEVANT LOG ENTRIES:\n")
	for _, r := range selected {
		fmt.Fprintf(b, "\nLine %d [%s]", r.LineNumber, r.Level)
		if r.HasTimestamp() {
			fmt.Fprintf(b, " %s", r.Timestamp)
		}
		if r.API != nil {
			fmt.Fprintf(b, " %s", r.API.String())
		}
		if r.HasStatusCode() {
			fmt.Fprintf(b, " [%d]", r.StatusCode)
		}
		fmt.Fprintf(b, "\n%s\n", r.Raw)
	}
}

func formatIntHistogram(hist map[int]int) string {
	if len(hist) == 0 {
		return "{}"
	}
	codes := make([]int, 0, len(hist))
	for code := range hist {
		codes = append(codes, code)
	}
	sort.Ints(codes)

	var b strings.Builder
	b.WriteString("{")
	for i, code := range codes {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%d: %d", code, hist[code])
	}
	b.WriteString("}")
	return b.String()
}

func formatCounts(counts map[string]int) string {
	if len(counts) == 0 {
		return "{}"
	}
	var b strings.Builder
	b.WriteString("{")
	for i, key := range sortedKeys(counts) {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %d", key, counts[key])
	}
	b.WriteString("}")
	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Excerpt renders only the statistics, patterns and record excerpt, used
// when no question-specific context is needed.
func Excerpt(sess *session.Session, maxLogs int) string {
	var b strings.Builder
	b.WriteString("LOG ANALYSIS CONTEXT:\n\n")
	writeStatistics(&b, aggregate.Statistics(sess))
	writePatterns(&b, aggregate.Patterns(sess))

	records := sess.Records()
	if len(records) > maxLogs {
		records = records[len(records)-maxLogs:]
	}
	fmt.Fprintf(&b, "RECENT LOGS (last %d entries):\n", len(records))
	for _, r := range records {
		fmt.Fprintf(&b, "\n[%s] %s", r.Level, truncate(r.Raw, 200))
	}
	return b.String()
}
