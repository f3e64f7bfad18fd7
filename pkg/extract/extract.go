// Package extract turns raw log lines into structured records.
//
// Extraction is a set of independent pattern probes evaluated per line.
// A probe that does not match leaves its field absent; extraction itself
// never fails, so a line with zero matches still yields a minimal record.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// timestampRE matches the lexical "YYYY-MM-DD HH:MM:SS" form with
	// either a space or "T" separator. No calendar validation.
	timestampRE = regexp.MustCompile(`\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}`)

	levelRE = regexp.MustCompile(`(?i)\b(DEBUG|INFO|WARN|WARNING|ERROR|FATAL|CRITICAL)\b`)

	// apiRE is case-sensitive: verbs in logs are conventionally upper-case,
	// and lower-case "get /x" is more likely prose than an HTTP call.
	apiRE = regexp.MustCompile(`(GET|POST|PUT|DELETE|PATCH)\s+(/[^\s]*)`)

	errorVocabRE = regexp.MustCompile(`(?i)(exception|error|traceback)`)

	exceptionRE = regexp.MustCompile(`(\w+Exception|\w+Error)`)
)

// statusProbes find a 3-digit status code in a status-bearing context.
// A bare 3-digit number is not enough: ports, sizes and durations collide.
var statusProbes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bstatus[_\- ]?(?:code)?\s*[=:]?\s*(\d{3})\b`),
	regexp.MustCompile(`HTTP/\d\.\d"?\s+(\d{3})\b`),
	regexp.MustCompile(`(?i)\b(?:returned|responded(?:\s+with)?|response(?:\s+code)?)\s*[=:]?\s*(\d{3})\b`),
}

// identifierProbes is the closed table of actor-identifying patterns.
// Probes with a capture group store the captured value; span probes
// (email, IP address) store the entire matched text.
var identifierProbes = []struct {
	kind IdentifierKind
	re   *regexp.Regexp
	span bool
}{
	{KindUserID, regexp.MustCompile(`(?i)user[_-]?id[=:\s]+([^\s,]+)`), false},
	{KindUsername, regexp.MustCompile(`(?i)username[=:\s]+([^\s,]+)`), false},
	{KindEmail, regexp.MustCompile(`(?i)\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), true},
	{KindTraceID, regexp.MustCompile(`(?i)trace[_-]?id[=:\s]+([a-zA-Z0-9-]+)`), false},
	{KindRequestID, regexp.MustCompile(`(?i)request[_-]?id[=:\s]+([a-zA-Z0-9-]+)`), false},
	{KindSessionID, regexp.MustCompile(`(?i)session[_-]?id[=:\s]+([a-zA-Z0-9-]+)`), false},
	{KindIPAddress, regexp.MustCompile(`\b(?:\d{1,3}\.){3}\d{1,3}\b`), true},
}

// Extract produces exactly one Record for a non-blank line. It is
// deterministic and never fails; unmatched fields stay absent and the
// level defaults to INFO.
func Extract(line string, lineNumber int) *Record {
	level, levelFound := extractLevel(line)
	return &Record{
		LineNumber:    lineNumber,
		Raw:           line,
		Timestamp:     timestampRE.FindString(line),
		Level:         level,
		API:           extractAPI(line),
		StatusCode:    extractStatusCode(line),
		Identifiers:   extractIdentifiers(line),
		HasError:      hasError(line, level, levelFound),
		ExceptionType: extractException(line),
	}
}

func extractLevel(line string) (level string, found bool) {
	m := levelRE.FindStringSubmatch(line)
	if m == nil {
		return LevelInfo, false
	}
	return strings.ToUpper(m[1]), true
}

func extractAPI(line string) *APICall {
	m := apiRE.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return &APICall{Method: m[1], Endpoint: m[2]}
}

func extractStatusCode(line string) int {
	for _, re := range statusProbes {
		m := re.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		code, err := strconv.Atoi(m[1])
		if err != nil || code < 100 || code > 599 {
			continue
		}
		return code
	}
	return 0
}

func extractIdentifiers(line string) map[IdentifierKind]string {
	ids := make(map[IdentifierKind]string)
	for _, p := range identifierProbes {
		if p.span {
			if v := p.re.FindString(line); v != "" {
				ids[p.kind] = v
			}
			continue
		}
		if m := p.re.FindStringSubmatch(line); m != nil {
			ids[p.kind] = m[1]
		}
	}
	return ids
}

// hasError reports error markers on the line. The INFO default does not
// count as an error level: only an explicit ERROR/FATAL/CRITICAL token does.
func hasError(line, level string, levelFound bool) bool {
	if errorVocabRE.MatchString(line) {
		return true
	}
	if !levelFound {
		return false
	}
	return level == LevelError || level == LevelFatal || level == LevelCritical
}

func extractException(line string) string {
	return exceptionRE.FindString(line)
}
