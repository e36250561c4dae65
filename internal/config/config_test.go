package config

import (
	"errors"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("GO_ENV", "production")
	t.Setenv("GOOGLE_AI_API_KEY", "test-key")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 5050 {
		t.Errorf("Port = %d, want 5050", cfg.Server.Port)
	}
	if cfg.Models.ClassifierProvider != ProviderGemini {
		t.Errorf("ClassifierProvider = %q, want %q", cfg.Models.ClassifierProvider, ProviderGemini)
	}
	if cfg.Models.LiveModality != "TEXT" {
		t.Errorf("LiveModality = %q, want TEXT", cfg.Models.LiveModality)
	}
	if cfg.Store.Backend != StoreFirestore {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, StoreFirestore)
	}
	if cfg.Store.TicketsCollection != "tickets" {
		t.Errorf("TicketsCollection = %q, want tickets", cfg.Store.TicketsCollection)
	}
	if cfg.Call.DrainTimeout != 15*time.Second {
		t.Errorf("DrainTimeout = %v, want 15s", cfg.Call.DrainTimeout)
	}
	if cfg.Call.PostCallTimeout != time.Minute {
		t.Errorf("PostCallTimeout = %v, want 1m", cfg.Call.PostCallTimeout)
	}
	if cfg.Uploads.MaxBytes != 16*1024*1024 {
		t.Errorf("MaxBytes = %d, want 16MiB", cfg.Uploads.MaxBytes)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name:    "missing google key",
			env:     map[string]string{"GOOGLE_AI_API_KEY": ""},
			wantErr: ErrEmptyEnvironmentVariable,
		},
		{
			name:    "openai provider without key",
			env:     map[string]string{"CLASSIFIER_PROVIDER": "openai"},
			wantErr: ErrEmptyEnvironmentVariable,
		},
		{
			name:    "unknown provider",
			env:     map[string]string{"CLASSIFIER_PROVIDER": "llama"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "unknown store",
			env:     map[string]string{"DOCUMENT_STORE": "mongo"},
			wantErr: ErrInvalidValue,
		},
		{
			name:    "postgres without host",
			env:     map[string]string{"DOCUMENT_STORE": "postgres"},
			wantErr: ErrEmptyEnvironmentVariable,
		},
		{
			name:    "bad modality",
			env:     map[string]string{"LIVE_RESPONSE_MODALITY": "video"},
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Load() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoad_InvalidDrainTimeout(t *testing.T) {
	setRequired(t)
	t.Setenv("DRAIN_TIMEOUT", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable DRAIN_TIMEOUT")
	}
}

func TestLoad_PostCallTimeout(t *testing.T) {
	t.Run("override", func(t *testing.T) {
		setRequired(t)
		t.Setenv("POST_CALL_TIMEOUT", "90s")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Call.PostCallTimeout != 90*time.Second {
			t.Errorf("PostCallTimeout = %v, want 90s", cfg.Call.PostCallTimeout)
		}
	})

	t.Run("unparseable", func(t *testing.T) {
		setRequired(t)
		t.Setenv("POST_CALL_TIMEOUT", "later")

		if _, err := Load(); err == nil {
			t.Fatal("expected error for unparseable POST_CALL_TIMEOUT")
		}
	})
}

func TestDatabaseConfig_ConnectionString(t *testing.T) {
	c := DatabaseConfig{Host: "db:5432", Username: "u", Password: "p", Name: "triage"}
	if got, want := c.ConnectionString(), "postgres://u:p@db:5432/triage"; got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}
