package openai

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"triage-server/internal/observability"
	"triage-server/internal/telemetry"
)

const classifyTemperature = 0.5

var ErrEmptyCompletion = errors.New("openai returned no choices")

// Client is a single-shot classifier backed by the chat completions API.
type Client struct {
	client openai.Client
	model  string
	logger *observability.Logger
}

// NewClient creates an OpenAI classifier. Extra request options, such as a
// custom HTTP client, are applied after the API key.
func NewClient(apiKey, model string, logger *observability.Logger, opts ...option.RequestOption) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}
	options := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Client{
		client: openai.NewClient(options...),
		model:  model,
		logger: logger,
	}, nil
}

// Classify sends prompt as a single user message and returns the reply text.
func (c *Client) Classify(ctx context.Context, prompt string) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "openai.Classify")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", c.model))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage("Reply with a single JSON object and nothing else."),
			openai.UserMessage(prompt),
		},
		Model:       c.model,
		Temperature: openai.Float(classifyTemperature),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "chat completion failed")
		return "", fmt.Errorf("openai classify: %w", err)
	}
	if len(resp.Choices) == 0 {
		span.SetStatus(codes.Error, "no choices")
		return "", ErrEmptyCompletion
	}

	span.SetAttributes(attribute.Int64("llm.total_tokens", resp.Usage.TotalTokens))
	c.logger.Debug(ctx, fmt.Sprintf("OpenAI classification used %d tokens", resp.Usage.TotalTokens))
	return resp.Choices[0].Message.Content, nil
}
