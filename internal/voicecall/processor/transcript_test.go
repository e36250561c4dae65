package processor

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranscriptFileName(t *testing.T) {
	ended := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)

	assert.Equal(t, "transcript_2024-03-09_14-05-07_MZ1.txt", TranscriptFileName(ended, "MZ1"))
	assert.Equal(t, "transcript_2024-03-09_14-05-07.txt", TranscriptFileName(ended, ""))
	assert.Equal(t, "transcript_2024-03-09_14-05-07_MZx.txt", TranscriptFileName(ended, "MZ/.x"))
}

func TestRecorder_Record(t *testing.T) {
	dir := t.TempDir()
	r := NewRecorder(dir, testLogger())
	ended := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	entries := []Entry{{Role: RoleAI, Text: "fire reported"}}

	first, err := r.Record(context.Background(), entries, "MZ1", ended)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transcript_2024-03-09_14-05-07_MZ1.txt"), first)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "AI: fire reported\n", string(data))

	// Same second and stream: a new file, the first is untouched.
	second, err := r.Record(context.Background(), []Entry{{Role: RoleAI, Text: "other"}}, "MZ1", ended)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "transcript_2024-03-09_14-05-07_MZ1_2.txt"), second)

	data, err = os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "AI: fire reported\n", string(data))
}

func TestRecorder_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "transcripts")
	r := NewRecorder(dir, testLogger())

	path, err := r.Record(context.Background(), nil, "", time.Now())
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestTranscriptRoundTrip(t *testing.T) {
	entries := []Entry{
		{Role: RoleAI, Text: "What is your emergency?"},
		{Role: RoleAI, Text: "Smoke on the\nsecond floor"},
		{Role: RoleAI, Text: ""},
		{Role: "Caller", Text: "time: 10pm"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteTranscript(&buf, entries))

	assert.Equal(t,
		"AI: What is your emergency?\nAI: Smoke on the second floor\nAI: \nCaller: time: 10pm\n",
		buf.String())

	parsed, err := ParseTranscript(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(entries))
	assert.Equal(t, "Smoke on the second floor", parsed[1].Text)
	assert.Equal(t, "", parsed[2].Text)
	assert.Equal(t, "Caller", parsed[3].Role)
	assert.Equal(t, "time: 10pm", parsed[3].Text)
}

func TestParseTranscript_Malformed(t *testing.T) {
	_, err := ParseTranscript(strings.NewReader("AI: fine\nno role here\n"))
	assert.True(t, errors.Is(err, ErrMalformedTranscript))
}
