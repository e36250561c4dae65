package openai

import (
	"context"
	"strings"
	"testing"

	"github.com/openai/openai-go/option"
	"go.uber.org/zap"

	"triage-server/internal/observability"
	"triage-server/internal/testutil"
)

func newTestClient(t *testing.T, cassette string) *Client {
	t.Helper()
	r := testutil.NewVCRRecorder(t, cassette)
	c, err := NewClient("test-key", "gpt-4o-mini", observability.FromZap(zap.NewNop()),
		option.WithHTTPClient(testutil.VCRHTTPClient(r)),
		option.WithMaxRetries(0),
	)
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

func TestClient_Classify(t *testing.T) {
	c := newTestClient(t, "openai_classify")

	got, err := c.Classify(context.Background(), "AI: There is a fire at 12 Oak Street.")
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if !strings.Contains(got, `"ticket_type": "fire"`) {
		t.Errorf("Classify() = %q, want ticket JSON", got)
	}
}

func TestClient_Classify_APIError(t *testing.T) {
	c := newTestClient(t, "openai_classify_unauthorized")

	_, err := c.Classify(context.Background(), "anything")
	if err == nil {
		t.Fatal("Classify() expected error for 401 response")
	}
	if !strings.Contains(err.Error(), "openai classify") {
		t.Errorf("error = %v, want wrapped openai classify error", err)
	}
}

func TestNewClient_RequiresKey(t *testing.T) {
	if _, err := NewClient("", "gpt-4o-mini", observability.FromZap(zap.NewNop())); err == nil {
		t.Fatal("NewClient() expected error for empty key")
	}
}
