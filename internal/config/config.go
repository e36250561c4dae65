package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	ErrEmptyEnvironmentVariable = errors.New("empty environment variable")
	ErrInvalidValue             = errors.New("invalid configuration value")
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreSQLite    = "sqlite"
)

// Config holds all application configuration
type Config struct {
	Server     ServerConfig
	Models     ModelsConfig
	Store      StoreConfig
	Call       CallConfig
	Uploads    UploadsConfig
	Telemetry  TelemetryConfig
	PromptFile string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port      int
	WebAppURI string
	// PublicHost overrides the request host when building the media stream
	// address, e.g. behind a tunnel that rewrites Host.
	PublicHost string
}

// ModelsConfig holds hosted model credentials and model names
type ModelsConfig struct {
	GoogleAIAPIKey      string
	OpenAIAPIKey        string
	ClassifierProvider  string
	LiveModel           string
	LiveModality        string
	ClassificationModel string
	TweetModel          string
	SentimentModel      string
	OpenAIModel         string
}

// StoreConfig selects and configures the document store
type StoreConfig struct {
	Backend string

	FirebaseCredentialsFile string
	FirebaseCredentialsJSON string
	TicketsCollection       string
	TweetsCollection        string

	Database DatabaseConfig
	// SQLitePath is used when Backend is sqlite.
	SQLitePath string
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Username string
	Password string
	Name     string
}

// CallConfig holds call relay and transcript settings
type CallConfig struct {
	TranscriptDir   string
	DrainTimeout    time.Duration
	PostCallTimeout time.Duration
	Greeting        string
}

// UploadsConfig holds tweet media upload settings
type UploadsConfig struct {
	Dir      string
	MaxBytes int64
}

// TelemetryConfig toggles trace export
type TelemetryConfig struct {
	TracingEnabled bool
	ServiceName    string
}

// Load reads and validates all required environment variables
func Load() (*Config, error) {
	// Load env.local in non-production environments
	if os.Getenv("GO_ENV") != "production" {
		if err := godotenv.Load("env.local"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env.local: %w", err)
		}
	}

	cfg := &Config{}
	var err error

	// Server configuration
	serverPort := getEnvWithDefault("SERVER_PORT", "5050")
	cfg.Server.Port, err = strconv.Atoi(serverPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse SERVER_PORT: %w", err)
	}
	cfg.Server.WebAppURI = getEnvWithDefault("WEBAPP_URI", "http://localhost:3000")
	cfg.Server.PublicHost = os.Getenv("PUBLIC_HOST")

	// Model configuration
	if cfg.Models.GoogleAIAPIKey, err = requireEnv("GOOGLE_AI_API_KEY"); err != nil {
		return nil, err
	}
	cfg.Models.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.Models.ClassifierProvider = strings.ToLower(getEnvWithDefault("CLASSIFIER_PROVIDER", ProviderGemini))
	switch cfg.Models.ClassifierProvider {
	case ProviderGemini:
	case ProviderOpenAI:
		if cfg.Models.OpenAIAPIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for CLASSIFIER_PROVIDER=openai: %w", ErrEmptyEnvironmentVariable)
		}
	default:
		return nil, fmt.Errorf("CLASSIFIER_PROVIDER %q: %w", cfg.Models.ClassifierProvider, ErrInvalidValue)
	}
	cfg.Models.LiveModel = getEnvWithDefault("LIVE_MODEL", "gemini-2.0-flash-live-001")
	cfg.Models.LiveModality = strings.ToUpper(getEnvWithDefault("LIVE_RESPONSE_MODALITY", "TEXT"))
	if cfg.Models.LiveModality != "TEXT" && cfg.Models.LiveModality != "AUDIO" {
		return nil, fmt.Errorf("LIVE_RESPONSE_MODALITY %q: %w", cfg.Models.LiveModality, ErrInvalidValue)
	}
	cfg.Models.ClassificationModel = getEnvWithDefault("CLASSIFICATION_MODEL", "gemini-2.0-flash")
	cfg.Models.TweetModel = getEnvWithDefault("TWEET_MODEL", "gemini-2.0-flash")
	cfg.Models.SentimentModel = getEnvWithDefault("SENTIMENT_MODEL", "gemini-2.0-flash")
	cfg.Models.OpenAIModel = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")

	// Document store configuration
	cfg.Store.Backend = strings.ToLower(getEnvWithDefault("DOCUMENT_STORE", StoreFirestore))
	cfg.Store.TicketsCollection = getEnvWithDefault("FIRESTORE_TICKETS_COLLECTION", "tickets")
	cfg.Store.TweetsCollection = getEnvWithDefault("FIRESTORE_TWEETS_COLLECTION", "tweets")
	switch cfg.Store.Backend {
	case StoreFirestore:
		cfg.Store.FirebaseCredentialsFile = os.Getenv("FIREBASE_CREDENTIALS_FILE")
		cfg.Store.FirebaseCredentialsJSON = os.Getenv("FIREBASE_CREDENTIALS_JSON")
	case StorePostgres:
		if cfg.Store.Database.Host, err = requireEnv("DB_HOST"); err != nil {
			return nil, err
		}
		if cfg.Store.Database.Username, err = requireEnv("DB_USERNAME"); err != nil {
			return nil, err
		}
		if cfg.Store.Database.Password, err = requireEnv("DB_PASSWORD"); err != nil {
			return nil, err
		}
		if cfg.Store.Database.Name, err = requireEnv("DB_NAME"); err != nil {
			return nil, err
		}
	case StoreSQLite:
		cfg.Store.SQLitePath = getEnvWithDefault("SQLITE_PATH", "triage.db")
	default:
		return nil, fmt.Errorf("DOCUMENT_STORE %q: %w", cfg.Store.Backend, ErrInvalidValue)
	}

	// Call relay configuration
	cfg.Call.TranscriptDir = getEnvWithDefault("TRANSCRIPT_DIR", "transcripts")
	cfg.Call.DrainTimeout, err = time.ParseDuration(getEnvWithDefault("DRAIN_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse DRAIN_TIMEOUT: %w", err)
	}
	cfg.Call.PostCallTimeout, err = time.ParseDuration(getEnvWithDefault("POST_CALL_TIMEOUT", "1m"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse POST_CALL_TIMEOUT: %w", err)
	}
	cfg.Call.Greeting = os.Getenv("CALL_GREETING")

	// Upload configuration
	cfg.Uploads.Dir = getEnvWithDefault("UPLOAD_DIR", "static/uploads")
	cfg.Uploads.MaxBytes, err = strconv.ParseInt(getEnvWithDefault("MAX_UPLOAD_BYTES", "16777216"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("failed to parse MAX_UPLOAD_BYTES: %w", err)
	}

	// Telemetry configuration
	cfg.Telemetry.TracingEnabled, err = strconv.ParseBool(getEnvWithDefault("TRACING_ENABLED", "false"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse TRACING_ENABLED: %w", err)
	}
	cfg.Telemetry.ServiceName = getEnvWithDefault("SERVICE_NAME", "triage-server")

	cfg.PromptFile = os.Getenv("PROMPTS_FILE")

	return cfg, nil
}

// ConnectionString returns a PostgreSQL connection string
func (c *DatabaseConfig) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		c.Username, c.Password, c.Host, c.Name)
}

// requireEnv retrieves an environment variable or returns an error if empty
func requireEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("%s is not set: %w", key, ErrEmptyEnvironmentVariable)
	}
	return value, nil
}

// getEnvWithDefault retrieves an environment variable or returns a default value
func getEnvWithDefault(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
