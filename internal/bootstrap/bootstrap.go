package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"triage-server/internal/classification"
	firestoreClient "triage-server/internal/clients/firestore"
	"triage-server/internal/clients/gemini"
	"triage-server/internal/clients/googleai"
	openaiClient "triage-server/internal/clients/openai"
	"triage-server/internal/config"
	"triage-server/internal/observability"
	"triage-server/internal/prompts"
	"triage-server/internal/store"
	"triage-server/internal/telemetry"
	ticketHandler "triage-server/internal/tickets/handler"
	ticketProcessor "triage-server/internal/tickets/processor"
	tweetHandler "triage-server/internal/tweets/handler"
	"triage-server/internal/tweets/media"
	tweetProcessor "triage-server/internal/tweets/processor"
	voiceCallHandler "triage-server/internal/voicecall/handler"
	voiceCallProcessor "triage-server/internal/voicecall/processor"
)

// Dependencies holds all initialized application dependencies
type Dependencies struct {
	// Core
	Store   store.DocumentStore
	Logger  *observability.Logger
	Prompts *prompts.Catalog

	// Clients
	GoogleAI  *googleai.Client
	Sentiment *gemini.SentimentClient

	// Processors
	TicketProcessor ticketProcessor.TicketProcessor

	// Handlers
	VoiceCallHandler voiceCallHandler.Handler
	TicketHandler    ticketHandler.Handler
	TweetHandler     tweetHandler.Handler

	// Background workers
	MediaLibrary *media.Library

	shutdownTracer func(context.Context) error
}

// Initialize sets up all application dependencies
func Initialize(ctx context.Context, cfg *config.Config, logger *observability.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Logger: logger,
	}

	if cfg.Telemetry.TracingEnabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		deps.shutdownTracer = shutdown
	}

	var err error
	deps.Prompts, err = prompts.Load(cfg.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load prompts: %w", err)
	}

	// Initialize document store
	deps.Store, err = OpenStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}

	// Initialize model clients
	deps.GoogleAI, err = googleai.NewClient(ctx, cfg.Models.GoogleAIAPIKey, googleai.Models{
		Live:           cfg.Models.LiveModel,
		Classification: cfg.Models.ClassificationModel,
		Tweet:          cfg.Models.TweetModel,
	}, logger)
	if err != nil {
		deps.Cleanup(ctx)
		return nil, err
	}

	deps.Sentiment, err = gemini.NewSentimentClient(ctx, cfg.Models.GoogleAIAPIKey, cfg.Models.SentimentModel, logger)
	if err != nil {
		deps.Cleanup(ctx)
		return nil, err
	}

	classifier, err := NewClassifier(cfg.Models, deps.GoogleAI, logger)
	if err != nil {
		deps.Cleanup(ctx)
		return nil, err
	}

	// Initialize ticket processor and handler
	deps.TicketProcessor = ticketProcessor.New(deps.Store, classifier, deps.Prompts, logger)
	deps.TicketHandler = ticketHandler.New(deps.TicketProcessor, logger)

	// Initialize voice call processor and handler
	callProc := voiceCallProcessor.New(
		deps.GoogleAI,
		voiceCallProcessor.NewRecorder(cfg.Call.TranscriptDir, logger),
		deps.TicketProcessor,
		voiceCallProcessor.Config{
			SystemInstruction: deps.Prompts.CallSystem,
			Modality:          classification.Modality(cfg.Models.LiveModality),
			DrainTimeout:      cfg.Call.DrainTimeout,
			PostCallTimeout:   cfg.Call.PostCallTimeout,
		},
		logger,
	)
	deps.VoiceCallHandler = voiceCallHandler.New(callProc, cfg.Server.PublicHost, cfg.Call.Greeting, logger)

	// Initialize tweet media library, processor and handler
	deps.MediaLibrary, err = media.NewLibrary(cfg.Uploads.Dir, cfg.Uploads.MaxBytes, logger)
	if err != nil {
		deps.Cleanup(ctx)
		return nil, err
	}
	tweetProc := tweetProcessor.New(deps.GoogleAI, deps.Sentiment, deps.Store, deps.MediaLibrary, deps.Prompts, logger)
	deps.TweetHandler, err = tweetHandler.New(tweetProc, deps.MediaLibrary, logger)
	if err != nil {
		deps.Cleanup(ctx)
		return nil, fmt.Errorf("failed to parse tweet templates: %w", err)
	}

	return deps, nil
}

// OpenStore connects the configured document store backend. SQL backends are
// migrated before use.
func OpenStore(ctx context.Context, cfg config.StoreConfig, logger *observability.Logger) (store.DocumentStore, error) {
	switch cfg.Backend {
	case config.StoreFirestore:
		client, err := firestoreClient.NewClient(ctx, firestoreClient.Config{
			CredentialsFile:   cfg.FirebaseCredentialsFile,
			CredentialsJSON:   cfg.FirebaseCredentialsJSON,
			TicketsCollection: cfg.TicketsCollection,
			TweetsCollection:  cfg.TweetsCollection,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to firestore: %w", err)
		}
		return client, nil

	case config.StorePostgres, config.StoreSQLite:
		var (
			s   store.Store
			err error
		)
		if cfg.Backend == config.StorePostgres {
			s, err = store.NewPostgres(cfg.Database.ConnectionString(), logger)
		} else {
			s, err = store.NewSQLite(cfg.SQLitePath, logger)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := s.Migrate(ctx); err != nil {
			s.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		return &s, nil

	default:
		return nil, fmt.Errorf("document store %q: %w", cfg.Backend, config.ErrInvalidValue)
	}
}

// NewClassifier picks the single-shot classifier for ticket derivation.
func NewClassifier(cfg config.ModelsConfig, googleAI *googleai.Client, logger *observability.Logger) (classification.Classifier, error) {
	switch cfg.ClassifierProvider {
	case config.ProviderOpenAI:
		client, err := openaiClient.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case config.ProviderGemini:
		return googleAI, nil
	default:
		return nil, fmt.Errorf("classifier provider %q: %w", cfg.ClassifierProvider, config.ErrInvalidValue)
	}
}

// StartWorkers runs background work that lives as long as ctx.
func (d *Dependencies) StartWorkers(ctx context.Context) error {
	if d.MediaLibrary == nil {
		return nil
	}
	return d.MediaLibrary.Watch(ctx)
}

// Cleanup closes all resources that need cleanup
func (d *Dependencies) Cleanup(ctx context.Context) {
	var errs []error
	if d.Sentiment != nil {
		errs = append(errs, d.Sentiment.Close())
	}
	if d.Store != nil {
		errs = append(errs, d.Store.Close())
	}
	if d.shutdownTracer != nil {
		errs = append(errs, d.shutdownTracer(ctx))
	}
	if err := errors.Join(errs...); err != nil {
		d.Logger.Error(ctx, "failed to release dependencies", err)
	}
}
