package processor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"triage-server/internal/clients/googleai"
	"triage-server/internal/observability"
	"triage-server/internal/prompts"
	"triage-server/internal/store"
	"triage-server/internal/tweets/media"
)

type testDeps struct {
	classifier *MockTweetClassifier
	sentiments *MockSentimentClassifier
	store      *MockTweetStore
	media      *MockMediaResolver
}

func newTestProcessor(t *testing.T) (TweetProcessor, testDeps) {
	t.Helper()
	ctrl := gomock.NewController(t)
	catalog, err := prompts.Load("")
	require.NoError(t, err)

	deps := testDeps{
		classifier: NewMockTweetClassifier(ctrl),
		sentiments: NewMockSentimentClassifier(ctrl),
		store:      NewMockTweetStore(ctrl),
		media:      NewMockMediaResolver(ctrl),
	}
	p := New(deps.classifier, deps.sentiments, deps.store, deps.media, catalog, observability.FromZap(zap.NewNop()))
	return p, deps
}

func TestProcessTweet_MergesSentiment(t *testing.T) {
	p, deps := newTestProcessor(t)

	deps.classifier.EXPECT().ClassifyTweet(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req googleai.TweetRequest) (string, error) {
			assert.Equal(t, "Trapped on the roof, water rising", req.Text)
			assert.NotEmpty(t, req.SystemInstruction)
			assert.Equal(t, "Save us", req.ExampleUser)
			assert.Empty(t, req.MediaPath)
			return `{"Disaster_Category": "Flood", "Relevancy": True, "Priority": 1, "media_description": "NA", "summary": "Person trapped by flood", "responders_required": ["police", "ambulance"]}`, nil
		})
	deps.sentiments.EXPECT().Sentiment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, prompt string) (string, error) {
			assert.Contains(t, prompt, "'Distress Call'")
			assert.Contains(t, prompt, "Text: Trapped on the roof, water rising")
			return " distress call.\n", nil
		})

	var stored *store.TweetRecord
	deps.store.EXPECT().CreateTweet(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record *store.TweetRecord) error {
			stored = record
			return nil
		})

	result, err := p.ProcessTweet(context.Background(), "  Trapped on the roof, water rising ", "")
	require.NoError(t, err)

	want := Classification{
		"Disaster_Category":   "Flood",
		"Relevancy":           true,
		"Priority":            float64(1),
		"media_description":   "NA",
		"summary":             "Person trapped by flood",
		"responders_required": []any{"police", "ambulance"},
		"Sentiment_Type":      "Distress Call",
	}
	assert.Equal(t, want, result.Classification)
	assert.False(t, result.Degraded)
	assert.NotEmpty(t, result.ID)

	require.NotNil(t, stored)
	assert.Equal(t, result.ID, stored.ID)
	assert.Equal(t, "Trapped on the roof, water rising", stored.TweetText)
}

func TestProcessTweet_FallbackOnUnparsableResponse(t *testing.T) {
	p, deps := newTestProcessor(t)

	deps.classifier.EXPECT().ClassifyTweet(gomock.Any(), gomock.Any()).Return("not json", nil)
	deps.store.EXPECT().CreateTweet(gomock.Any(), gomock.Any()).Return(nil)

	result, err := p.ProcessTweet(context.Background(), "smoke everywhere", "")
	require.NoError(t, err)

	assert.True(t, result.Degraded)
	assert.Equal(t, -1, result.Classification["Priority"])
	assert.Equal(t, false, result.Classification["Relevancy"])
	assert.Equal(t, "NA", result.Classification["Disaster_Category"])
	assert.Equal(t, "NA", result.Classification[SentimentKey])
	assert.Contains(t, result.Classification["error"], "malformed model output")
}

func TestProcessTweet_FallbackOnModelError(t *testing.T) {
	p, deps := newTestProcessor(t)

	deps.classifier.EXPECT().ClassifyTweet(gomock.Any(), gomock.Any()).Return("", errors.New("gemini: quota exceeded"))
	// Storage failures are logged only.
	deps.store.EXPECT().CreateTweet(gomock.Any(), gomock.Any()).Return(errors.New("firestore unavailable"))

	result, err := p.ProcessTweet(context.Background(), "smoke everywhere", "")
	require.NoError(t, err)
	assert.Equal(t, "gemini: quota exceeded", result.Classification["error"])
}

func TestProcessTweet_WithMedia(t *testing.T) {
	p, deps := newTestProcessor(t)

	deps.media.EXPECT().Resolve("fire.mp4").
		Return(media.File{Name: "fire.mp4", Path: "/uploads/fire.mp4", MIME: "video/mp4", Kind: media.KindVideo}, nil)
	deps.classifier.EXPECT().ClassifyTweet(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req googleai.TweetRequest) (string, error) {
			assert.Equal(t, "/uploads/fire.mp4", req.MediaPath)
			assert.Equal(t, "video/mp4", req.MediaMIME)
			return `{"Disaster_Category": "Fire", "Relevancy": false, "Priority": -1}`, nil
		})
	deps.sentiments.EXPECT().Sentiment(gomock.Any(), gomock.Any()).Return("", errors.New("stream reset"))
	deps.store.EXPECT().CreateTweet(gomock.Any(), gomock.Any()).Return(nil)

	result, err := p.ProcessTweet(context.Background(), "look at this", "fire.mp4")
	require.NoError(t, err)
	assert.Equal(t, "NA", result.Classification[SentimentKey])
	assert.Equal(t, "Fire", result.Classification["Disaster_Category"])
}

func TestProcessTweet_InputErrors(t *testing.T) {
	p, deps := newTestProcessor(t)

	_, err := p.ProcessTweet(context.Background(), "   ", "")
	assert.ErrorIs(t, err, ErrEmptyTweet)

	deps.media.EXPECT().Resolve("gone.png").Return(media.File{}, media.ErrMediaNotFound)
	_, err = p.ProcessTweet(context.Background(), "hello", "gone.png")
	assert.ErrorIs(t, err, media.ErrMediaNotFound)
}

func TestProcessTweet_UnknownSentimentKept(t *testing.T) {
	p, deps := newTestProcessor(t)

	deps.classifier.EXPECT().ClassifyTweet(gomock.Any(), gomock.Any()).Return(`{"Priority": 4}`, nil)
	deps.sentiments.EXPECT().Sentiment(gomock.Any(), gomock.Any()).Return("Weather Update", nil)
	deps.store.EXPECT().CreateTweet(gomock.Any(), gomock.Any()).Return(nil)

	result, err := p.ProcessTweet(context.Background(), "cloudy", "")
	require.NoError(t, err)
	assert.Equal(t, "Weather Update", result.Classification[SentimentKey])
}
