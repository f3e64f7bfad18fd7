package advisor

import (
	"testing"

	"logsift/pkg/ingestor"
	"logsift/pkg/session"
)

func TestDetectActorKnownValue(t *testing.T) {
	sess := ingestor.ParseText("INFO login user_id=john123\nINFO login username=alice")

	tests := []struct {
		question string
		want     string
	}{
		{"why did JOHN123 see an error?", "john123"},
		{"what happened to alice yesterday?", "alice"},
	}
	for _, tt := range tests {
		got, ok := DetectActor(sess, tt.question)
		if !ok || got != tt.want {
			t.Errorf("DetectActor(%q) = %q, %v, want %q", tt.question, got, ok, tt.want)
		}
	}
}

func TestDetectActorPhraseCandidate(t *testing.T) {
	sess := ingestor.ParseText("INFO checkout user_id=john123-prod")

	// "john123" is not a stored value but the phrase candidate resolves
	// to the known value containing it.
	got, ok := DetectActor(sess, "show the journey for john123 please")
	if !ok || got != "john123-prod" {
		t.Errorf("DetectActor phrase = %q, %v, want %q", got, ok, "john123-prod")
	}
}

func TestDetectActorNoMatch(t *testing.T) {
	sess := ingestor.ParseText("INFO login user_id=john123")

	if got, ok := DetectActor(sess, "summarize the batch"); ok {
		t.Errorf("DetectActor on unrelated question = %q, want no match", got)
	}
	if got, ok := DetectActor(session.New(), "what happened to john123?"); ok {
		t.Errorf("DetectActor on empty session = %q, want no match", got)
	}
}

func TestDetectActorPhraseWithoutKnownValue(t *testing.T) {
	sess := ingestor.ParseText("INFO login user_id=alice")

	// Phrase candidates that resolve to nothing stored are discarded.
	if got, ok := DetectActor(sess, "show logs for bob"); ok {
		t.Errorf("DetectActor unknown candidate = %q, want no match", got)
	}
}
