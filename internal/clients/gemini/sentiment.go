// Package gemini wraps the generative-ai-go SDK for streamed text answers.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"

	"triage-server/internal/observability"
	"triage-server/internal/telemetry"
)

// SentimentClient streams short classification answers from a text model.
type SentimentClient struct {
	client    *genai.Client
	modelName string
	logger    *observability.Logger
}

func NewSentimentClient(ctx context.Context, apiKey, modelName string, logger *observability.Logger, opts ...option.ClientOption) (*SentimentClient, error) {
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &SentimentClient{
		client:    client,
		modelName: modelName,
		logger:    logger,
	}, nil
}

func (s *SentimentClient) Close() error {
	return s.client.Close()
}

// Sentiment streams the answer to prompt and returns it trimmed.
func (s *SentimentClient) Sentiment(ctx context.Context, prompt string) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "gemini.Sentiment")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", s.modelName))

	model := s.client.GenerativeModel(s.modelName)
	model.SetTemperature(1)
	model.SetTopP(0.95)

	iter := model.GenerateContentStream(ctx, genai.Text(prompt))
	var sb strings.Builder
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "stream failed")
			return "", fmt.Errorf("gemini sentiment: %w", err)
		}
		sb.WriteString(candidateText(resp))
	}

	answer := strings.TrimSpace(sb.String())
	ctx = observability.WithFields(ctx, observability.Field{Key: "sentiment", Value: answer})
	s.logger.Debug(ctx, "Sentiment streamed")
	return answer, nil
}

func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	return sb.String()
}
