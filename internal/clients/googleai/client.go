package googleai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"triage-server/internal/classification"
	"triage-server/internal/observability"
)

var _ classification.Service = (*Client)(nil)

// Models names the model used for each kind of request.
type Models struct {
	Live           string
	Classification string
	Tweet          string
}

// Client talks to the Gemini API. It serves live call sessions, single-shot
// ticket classification and the tweet classification requests.
type Client struct {
	client *genai.Client
	models Models
	logger *observability.Logger
}

// NewClient creates a Gemini client authenticated with apiKey.
func NewClient(ctx context.Context, apiKey string, models Models, logger *observability.Logger) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}

	return &Client{
		client: client,
		models: models,
		logger: logger,
	}, nil
}

// responseText joins the text parts of the first candidate.
func responseText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var text string
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}
