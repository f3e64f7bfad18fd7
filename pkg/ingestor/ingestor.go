// Package ingestor reads raw log text and produces populated sessions.
package ingestor

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/go-errors/errors"

	"logsift/pkg/extract"
	"logsift/pkg/session"
)

// LogLine is a single non-blank raw line. LineNumber counts only non-blank
// lines: blank lines are skipped and do not consume a number.
type LogLine struct {
	LineNumber int
	Content    string
}

// Result wraps either a successfully read value or a read error,
// similar to Result<T, E> in Rust.
type Result[T any] struct {
	Value T
	Err   error
}

// ParseText splits a text blob on newlines, skips blank lines, and extracts
// one record per remaining line into a fresh session. It never fails:
// unparseable lines become minimal records.
func ParseText(content string) *session.Session {
	sess := session.New()
	lineNum := 0
	for _, line := range strings.Split(content, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lineNum++
		sess.Append(extract.Extract(line, lineNum))
	}
	return sess
}

// Ingestor streams log lines from a source.
type Ingestor interface {
	Ingest(ctx context.Context) (<-chan Result[*LogLine], error)
}

var _ Ingestor = (*FileIngestor)(nil)

// FileIngestor reads log lines from a file path or stdin.
// MaxBytes, when positive, rejects files larger than the limit up front.
type FileIngestor struct {
	Path     string
	MaxBytes int64
}

// Ingest reads non-blank log lines from the file (or stdin if Path is "-").
// Cancel the context to stop reading early; the goroutine will exit promptly.
func (f *FileIngestor) Ingest(ctx context.Context) (<-chan Result[*LogLine], error) {
	var file *os.File
	if f.Path == "-" {
		file = os.Stdin
	} else {
		var err error
		file, err = os.Open(f.Path)
		if err != nil {
			return nil, errors.Errorf("open log file: %w", err)
		}
		if f.MaxBytes > 0 {
			info, err := file.Stat()
			if err != nil {
				_ = file.Close()
				return nil, errors.Errorf("stat log file: %w", err)
			}
			if info.Size() > f.MaxBytes {
				_ = file.Close()
				return nil, errors.Errorf("log file %s is %d bytes, limit is %d", f.Path, info.Size(), f.MaxBytes)
			}
		}
	}

	ownFile := f.Path != "-"
	ch := make(chan Result[*LogLine], 100)
	go func() {
		defer close(ch)

		var fileErr error
		defer func() {
			if ownFile {
				if cerr := file.Close(); cerr != nil {
					fileErr = errors.Join(fileErr, errors.Errorf("close log file: %w", cerr))
				}
			}
			if fileErr != nil {
				select {
				case ch <- Result[*LogLine]{Err: fileErr}:
				case <-ctx.Done():
				}
			}
		}()

		scanner := bufio.NewScanner(file)
		// Long lines are common in stack traces and JSON payloads.
		scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		lineNum := 0
		for scanner.Scan() {
			line := scanner.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			lineNum++
			select {
			case ch <- Result[*LogLine]{Value: &LogLine{LineNumber: lineNum, Content: line}}:
			case <-ctx.Done():
				return
			}
		}
		if err := scanner.Err(); err != nil {
			fileErr = errors.Errorf("read log file: %w", err)
		}
	}()

	return ch, nil
}

// IngestFile reads a whole log file through a FileIngestor and extracts it
// into a fresh session.
func IngestFile(ctx context.Context, path string, maxBytes int64) (*session.Session, error) {
	ch, err := (&FileIngestor{Path: path, MaxBytes: maxBytes}).Ingest(ctx)
	if err != nil {
		return nil, err
	}

	sess := session.New()
	for rr := range ch {
		if rr.Err != nil {
			return nil, errors.Errorf("read log: %w", rr.Err)
		}
		sess.Append(extract.Extract(rr.Value.Content, rr.Value.LineNumber))
	}
	return sess, nil
}
