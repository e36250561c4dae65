package googleai

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"google.golang.org/genai"

	"triage-server/internal/telemetry"
)

// TweetRequest is one tweet classification call.
type TweetRequest struct {
	SystemInstruction string
	// ExampleUser and ExampleModel form a single few-shot exchange.
	ExampleUser  string
	ExampleModel string
	Text         string
	// MediaPath and MediaMIME name an uploaded image or video; both are
	// empty for text-only tweets.
	MediaPath string
	MediaMIME string
}

// ClassifyTweet uploads the tweet media when present and asks the tweet model
// for the classification object in JSON mode.
func (c *Client) ClassifyTweet(ctx context.Context, req TweetRequest) (string, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "googleai.ClassifyTweet")
	defer span.End()
	span.SetAttributes(
		attribute.String("llm.model", c.models.Tweet),
		attribute.Bool("tweet.has_media", req.MediaPath != ""),
	)

	var media *genai.Part
	if req.MediaPath != "" {
		file, err := c.client.Files.UploadFromPath(ctx, req.MediaPath, &genai.UploadFileConfig{MIMEType: req.MediaMIME})
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "media upload failed")
			return "", fmt.Errorf("gemini media upload: %w", err)
		}
		media = &genai.Part{FileData: &genai.FileData{FileURI: file.URI, MIMEType: file.MIMEType}}
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.models.Tweet, tweetContents(req, media), &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](1),
		TopP:             genai.Ptr[float32](0.95),
		ResponseMIMEType: "application/json",
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: req.SystemInstruction}},
		},
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "generate content failed")
		return "", fmt.Errorf("gemini tweet classify: %w", err)
	}
	return responseText(resp), nil
}

// tweetContents builds the few-shot conversation followed by the tweet.
func tweetContents(req TweetRequest, media *genai.Part) []*genai.Content {
	var contents []*genai.Content
	if req.ExampleUser != "" && req.ExampleModel != "" {
		contents = append(contents,
			&genai.Content{Role: "user", Parts: []*genai.Part{{Text: req.ExampleUser}}},
			&genai.Content{Role: "model", Parts: []*genai.Part{{Text: req.ExampleModel}}},
		)
	}

	parts := make([]*genai.Part, 0, 2)
	if media != nil {
		parts = append(parts, media)
	}
	parts = append(parts, &genai.Part{Text: req.Text})
	return append(contents, &genai.Content{Role: "user", Parts: parts})
}
