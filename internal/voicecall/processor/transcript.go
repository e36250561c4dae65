package processor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"triage-server/internal/observability"
)

// RoleAI labels utterances produced by the model.
const RoleAI = "AI"

const transcriptTimeLayout = "2006-01-02_15-04-05"

var (
	ErrMalformedTranscript = errors.New("malformed transcript")

	unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]`)
)

// Entry is one utterance in a call transcript.
type Entry struct {
	Role      string    `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Recorder writes call transcripts to a directory, one file per call.
type Recorder struct {
	dir    string
	logger *observability.Logger
}

func NewRecorder(dir string, logger *observability.Logger) *Recorder {
	return &Recorder{dir: dir, logger: logger}
}

// TranscriptFileName names the file for a call that ended at endedAt.
func TranscriptFileName(endedAt time.Time, streamSid string) string {
	name := "transcript_" + endedAt.Format(transcriptTimeLayout)
	if sid := unsafeFileChars.ReplaceAllString(streamSid, ""); sid != "" {
		name += "_" + sid
	}
	return name + ".txt"
}

// Record writes entries to a new file and returns its path. An existing file
// with the same name is never overwritten.
func (r *Recorder) Record(ctx context.Context, entries []Entry, streamSid string, endedAt time.Time) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create transcript directory: %w", err)
	}

	base := TranscriptFileName(endedAt, streamSid)
	path := filepath.Join(r.dir, base)
	var f *os.File
	var err error
	for i := 2; ; i++ {
		f, err = os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if !errors.Is(err, os.ErrExist) {
			break
		}
		path = filepath.Join(r.dir, fmt.Sprintf("%s_%d.txt", strings.TrimSuffix(base, ".txt"), i))
	}
	if err != nil {
		return "", fmt.Errorf("failed to create transcript file: %w", err)
	}

	if err := WriteTranscript(f, entries); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write transcript: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close transcript file: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "transcript_path", Value: path},
		observability.Field{Key: "entries", Value: len(entries)},
	)
	r.logger.Info(ctx, "Transcript saved")
	return path, nil
}

// WriteTranscript writes one "role: text" line per entry. Line breaks inside
// text are folded to spaces so every entry stays on one line.
func WriteTranscript(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		text := strings.Join(strings.Fields(e.Text), " ")
		if _, err := fmt.Fprintf(bw, "%s: %s\n", e.Role, text); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ParseTranscript reads the format written by WriteTranscript. Blank lines
// are skipped.
func ParseTranscript(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		role, text, found := strings.Cut(raw, ": ")
		if !found {
			// "AI:" with empty text has no trailing space after trimming.
			role, text, found = strings.Cut(raw, ":")
		}
		if !found || role == "" {
			return nil, fmt.Errorf("%w: line %d has no role", ErrMalformedTranscript, line)
		}
		entries = append(entries, Entry{Role: role, Text: strings.TrimSpace(text)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transcript: %w", err)
	}
	return entries, nil
}
