package extract

// Log levels recognized by the extractor. Lines without an explicit level
// token default to LevelInfo.
const (
	LevelDebug    = "DEBUG"
	LevelInfo     = "INFO"
	LevelWarn     = "WARN"
	LevelWarning  = "WARNING"
	LevelError    = "ERROR"
	LevelFatal    = "FATAL"
	LevelCritical = "CRITICAL"
)

// IdentifierKind names one of the recognized actor-identifying fields.
type IdentifierKind string

// The closed set of identifier kinds a line can carry.
const (
	KindUserID    IdentifierKind = "user_id"
	KindUsername  IdentifierKind = "username"
	KindEmail     IdentifierKind = "email"
	KindTraceID   IdentifierKind = "trace_id"
	KindRequestID IdentifierKind = "request_id"
	KindSessionID IdentifierKind = "session_id"
	KindIPAddress IdentifierKind = "ip_address"
)

// IdentifierKinds lists all recognized kinds in probe order.
var IdentifierKinds = []IdentifierKind{
	KindUserID, KindUsername, KindEmail, KindTraceID,
	KindRequestID, KindSessionID, KindIPAddress,
}

// APICall is an HTTP call found on a log line.
type APICall struct {
	Method   string
	Endpoint string
}

// String renders the call as "METHOD /path".
func (a APICall) String() string {
	return a.Method + " " + a.Endpoint
}

// Record is the structured, best-effort extraction of a single log line.
// A Record is immutable once produced.
//
// Optional fields use explicit absence markers: Timestamp and ExceptionType
// are empty strings when not found, API is nil, StatusCode is 0 (valid codes
// are always in 100..599). Level is never absent.
type Record struct {
	// LineNumber is the 1-based position among non-blank lines of the batch.
	LineNumber int
	// Raw is the original line text, never normalized.
	Raw string
	// Timestamp is the lexical "YYYY-MM-DD HH:MM:SS" (or "T"-separated)
	// substring, empty when none was found.
	Timestamp string
	// Level is one of the recognized level tokens, LevelInfo by default.
	Level string
	// API is the first HTTP call found on the line, nil when none.
	API *APICall
	// StatusCode is the context-keyed HTTP status code, 0 when none.
	StatusCode int
	// Identifiers maps each identifier kind found on the line to its first
	// extracted value. Kinds not found are absent from the map.
	Identifiers map[IdentifierKind]string
	// HasError is true when the line carries error vocabulary or an
	// explicit ERROR/FATAL/CRITICAL level token.
	HasError bool
	// ExceptionType is the detected exception class name, empty when none.
	ExceptionType string
}

// HasTimestamp reports whether a timestamp was found on the line.
func (r *Record) HasTimestamp() bool { return r.Timestamp != "" }

// HasStatusCode reports whether a status code was found on the line.
func (r *Record) HasStatusCode() bool { return r.StatusCode != 0 }

// HasIdentifiers reports whether the line carries at least one identifier.
func (r *Record) HasIdentifiers() bool { return len(r.Identifiers) > 0 }

// IsFailure reports whether the record counts as a failed request: it
// carries error markers or a status code of 400 or above.
func (r *Record) IsFailure() bool {
	return r.HasError || r.StatusCode >= 400
}
