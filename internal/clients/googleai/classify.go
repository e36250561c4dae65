package googleai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"triage-server/internal/telemetry"
)

const classifyTemperature = 0.5

// Classify sends a single prompt in JSON response mode and returns the raw
// model text.
func (c *Client) Classify(ctx context.Context, prompt string) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "googleai.Classify")
	defer span.End()
	span.SetAttributes(attribute.String("llm.model", c.models.Classification))

	resp, err := c.client.Models.GenerateContent(ctx, c.models.Classification, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](classifyTemperature),
		ResponseMIMEType: "application/json",
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", fmt.Errorf("gemini classify: %w", err)
	}

	if resp.UsageMetadata != nil {
		span.SetAttributes(attribute.Int("llm.total_tokens", int(resp.UsageMetadata.TotalTokenCount)))
	}
	return responseText(resp), nil
}
