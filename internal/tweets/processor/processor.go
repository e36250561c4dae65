package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"triage-server/internal/clients/googleai"
	"triage-server/internal/llmjson"
	"triage-server/internal/observability"
	"triage-server/internal/prompts"
	"triage-server/internal/store"
	"triage-server/internal/tweets/media"
)

// TweetClassifier produces the classification object for a tweet
type TweetClassifier interface {
	ClassifyTweet(ctx context.Context, req googleai.TweetRequest) (string, error)
}

// SentimentClassifier answers the sentiment prompt
type SentimentClassifier interface {
	Sentiment(ctx context.Context, prompt string) (string, error)
}

// TweetStore defines the document store operations required by TweetProcessor
type TweetStore interface {
	CreateTweet(ctx context.Context, record *store.TweetRecord) error
}

// MediaResolver looks up uploaded media by name
type MediaResolver interface {
	Resolve(name string) (media.File, error)
}

var ErrEmptyTweet = errors.New("tweet text is empty")

const (
	// SentimentKey is merged into every classification.
	SentimentKey = "Sentiment_Type"
	notAvailable = "NA"
)

// Classification is the model's classification object. Keys are kept as the
// model produced them.
type Classification map[string]any

// Result is a processed tweet
type Result struct {
	ID             string         `json:"id"`
	Classification Classification `json:"result"`
	// Degraded is set when Classification is the fallback object.
	Degraded bool `json:"degraded"`
}

type TweetProcessor struct {
	classifier TweetClassifier
	sentiments SentimentClassifier
	store      TweetStore
	media      MediaResolver
	catalog    *prompts.Catalog
	logger     *observability.Logger
}

func New(classifier TweetClassifier, sentiments SentimentClassifier, store TweetStore, media MediaResolver,
	catalog *prompts.Catalog, logger *observability.Logger) TweetProcessor {
	return TweetProcessor{
		classifier: classifier,
		sentiments: sentiments,
		store:      store,
		media:      media,
		catalog:    catalog,
		logger:     logger,
	}
}

// ProcessTweet classifies a tweet and its optional media. Model failures do
// not fail the call: they produce the fallback classification with the error
// recorded in it. Only bad input is returned as an error.
func (p TweetProcessor) ProcessTweet(ctx context.Context, text, mediaName string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyTweet
	}

	req := googleai.TweetRequest{
		SystemInstruction: p.catalog.TweetSystem,
		ExampleUser:       p.catalog.TweetExample.User,
		ExampleModel:      p.catalog.TweetExample.Model,
		Text:              text,
	}
	if mediaName != "" {
		file, err := p.media.Resolve(mediaName)
		if err != nil {
			return Result{}, err
		}
		req.MediaPath = file.Path
		req.MediaMIME = file.MIME
		ctx = observability.WithFields(ctx, observability.Field{Key: "media_file", Value: file.Name})
	}

	result := Result{ID: uuid.NewString()}
	ctx = observability.WithFields(ctx, observability.Field{Key: "tweet_id", Value: result.ID})

	classification, err := p.classify(ctx, req)
	if err != nil {
		p.logger.Error(ctx, "Failed to classify tweet", err)
		classification = Fallback(err)
		result.Degraded = true
	} else {
		classification[SentimentKey] = p.sentiment(ctx, text)
	}
	result.Classification = classification

	record := &store.TweetRecord{
		ID:        result.ID,
		TweetText: text,
		MediaFile: mediaName,
		Result:    classification,
		CreatedAt: time.Now().UTC(),
	}
	if err := p.store.CreateTweet(ctx, record); err != nil {
		p.logger.Error(ctx, "Failed to store tweet classification", err)
	}

	p.logger.Info(ctx, "Tweet processed")
	return result, nil
}

func (p TweetProcessor) classify(ctx context.Context, req googleai.TweetRequest) (Classification, error) {
	raw, err := p.classifier.ClassifyTweet(ctx, req)
	if err != nil {
		return nil, err
	}
	var classification Classification
	if err := llmjson.Decode(raw, &classification); err != nil {
		return nil, err
	}
	return classification, nil
}

// sentiment returns one of the catalogue's classes, the model's own answer
// when it names none of them, or NA when the call fails.
func (p TweetProcessor) sentiment(ctx context.Context, text string) string {
	prompt, err := p.catalog.SentimentPrompt(text)
	if err != nil {
		p.logger.Error(ctx, "Failed to build sentiment prompt", err)
		return notAvailable
	}
	answer, err := p.sentiments.Sentiment(ctx, prompt)
	if err != nil {
		p.logger.Error(ctx, "Failed to classify tweet sentiment", err)
		return notAvailable
	}

	cleaned := strings.Trim(strings.TrimSpace(answer), `'".`)
	for _, class := range p.catalog.SentimentClasses {
		if strings.EqualFold(cleaned, class) {
			return class
		}
	}
	if cleaned == "" {
		return notAvailable
	}
	return cleaned
}

// Fallback is the classification returned when the model call or its output
// fails. err is recorded in the "error" field.
func Fallback(err error) Classification {
	return Classification{
		"error":               err.Error(),
		"Disaster_Category":   notAvailable,
		"Relevancy":           false,
		"Priority":            -1,
		"media_description":   notAvailable,
		"summary":             "Error processing tweet",
		SentimentKey:          notAvailable,
		"responders_required": []string{},
	}
}
