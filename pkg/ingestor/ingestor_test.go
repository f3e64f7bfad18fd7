package ingestor

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTempLog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write temp log: %v", err)
	}
	return path
}

func TestParseText(t *testing.T) {
	sess := ParseText("2024-01-01 10:00:00 INFO starting\n\n   \n2024-01-01 10:00:01 ERROR broke\n")

	if sess.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (blank lines skipped)", sess.Len())
	}
	// Blank lines do not consume line numbers.
	if sess.Records()[0].LineNumber != 1 || sess.Records()[1].LineNumber != 2 {
		t.Errorf("line numbers = %d, %d; want contiguous 1, 2",
			sess.Records()[0].LineNumber, sess.Records()[1].LineNumber)
	}
	if !sess.Records()[1].HasError {
		t.Error("second record should carry error markers")
	}
}

func TestParseTextEmptyInput(t *testing.T) {
	if got := ParseText("").Len(); got != 0 {
		t.Errorf("Len = %d, want 0 for empty input", got)
	}
	if got := ParseText("\n\n  \n").Len(); got != 0 {
		t.Errorf("Len = %d, want 0 for blank-only input", got)
	}
}

func TestParseTextNeverDropsNonBlankLines(t *testing.T) {
	sess := ParseText("complete gibberish\nmore gibberish")
	if sess.Len() != 2 {
		t.Fatalf("Len = %d, want 2", sess.Len())
	}
	for _, r := range sess.Records() {
		if r.Level != "INFO" {
			t.Errorf("unparseable line got level %q, want INFO default", r.Level)
		}
	}
}

func TestFileIngestorSkipsBlankLines(t *testing.T) {
	path := writeTempLog(t, "first\n\nsecond\n   \nthird\n")

	ch, err := (&FileIngestor{Path: path}).Ingest(context.Background())
	if err != nil {
		t.Fatalf("Ingest: %v", err)
	}

	var got []*LogLine
	for rr := range ch {
		if rr.Err != nil {
			t.Fatalf("read: %v", rr.Err)
		}
		got = append(got, rr.Value)
	}

	want := []string{"first", "second", "third"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i, ll := range got {
		if ll.LineNumber != i+1 {
			t.Errorf("line %d: LineNumber = %d, want %d", i, ll.LineNumber, i+1)
		}
		if ll.Content != want[i] {
			t.Errorf("line %d: Content = %q, want %q", i, ll.Content, want[i])
		}
	}
}

func TestFileIngestorNotFound(t *testing.T) {
	_, err := (&FileIngestor{Path: "/nonexistent/path/to/file.log"}).Ingest(context.Background())
	if err == nil {
		t.Fatal("expected error for nonexistent file, got nil")
	}
}

func TestFileIngestorMaxBytes(t *testing.T) {
	path := writeTempLog(t, "0123456789 this log is bigger than the limit\n")

	_, err := (&FileIngestor{Path: path, MaxBytes: 10}).Ingest(context.Background())
	if err == nil {
		t.Fatal("expected size-limit error, got nil")
	}
}

func TestIngestFile(t *testing.T) {
	path := writeTempLog(t, "2024-01-01 10:00:00 INFO GET /api/login user_id=alice\n\n2024-01-01 10:00:01 ERROR POST /api/payment user_id=alice status=500\n")

	sess, err := IngestFile(context.Background(), path, 0)
	if err != nil {
		t.Fatalf("IngestFile: %v", err)
	}
	if sess.Len() != 2 {
		t.Fatalf("Len = %d, want 2", sess.Len())
	}
	if len(sess.ByIdentifier("alice")) != 2 {
		t.Errorf("index did not pick up both alice records")
	}
	if len(sess.Failing()) != 1 {
		t.Errorf("Failing = %d, want 1", len(sess.Failing()))
	}
}
