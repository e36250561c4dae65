package processor

import (
	"context"
	"time"

	"triage-server/internal/classification"
	"triage-server/internal/observability"
	"triage-server/internal/store"
	"triage-server/internal/voicecall/twilio"
)

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

// TelephonyStream is the caller side of a call.
type TelephonyStream interface {
	ReadEvent() (twilio.MediaEvent, error)
	SendMedia(streamSid, payload string) error
	Close() error
}

// Converser opens model sessions.
type Converser interface {
	StreamConverse(ctx context.Context, cfg classification.SessionConfig) (classification.Session, error)
}

// TicketDeriver turns a finished call transcript into a stored ticket.
type TicketDeriver interface {
	DeriveTicket(ctx context.Context, call CallRecord) (*store.Ticket, error)
}

// CallRecord is what a finished call hands to ticket derivation.
type CallRecord struct {
	CallID         string
	StreamSid      string
	Entries        []Entry
	TranscriptPath string
}

type Config struct {
	SystemInstruction string
	Modality          classification.Modality
	// DrainTimeout bounds how long model output is awaited after the caller
	// hangs up.
	DrainTimeout time.Duration
	// PostCallTimeout bounds transcript recording and ticket derivation.
	PostCallTimeout time.Duration
}

// CallProcessor relays media stream calls to the live model and records the
// outcome.
type CallProcessor struct {
	converser Converser
	recorder  *Recorder
	deriver   TicketDeriver
	cfg       Config
	logger    *observability.Logger
}

// New creates a CallProcessor. deriver may be nil, in which case calls are
// only transcribed.
func New(converser Converser, recorder *Recorder, deriver TicketDeriver, cfg Config, logger *observability.Logger) *CallProcessor {
	if cfg.DrainTimeout <= 0 {
		cfg.DrainTimeout = 15 * time.Second
	}
	if cfg.PostCallTimeout <= 0 {
		cfg.PostCallTimeout = time.Minute
	}
	if cfg.Modality == "" {
		cfg.Modality = classification.ModalityText
	}
	return &CallProcessor{
		converser: converser,
		recorder:  recorder,
		deriver:   deriver,
		cfg:       cfg,
		logger:    logger,
	}
}
