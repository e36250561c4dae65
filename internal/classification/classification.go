// Package classification defines the model capability used by the call relay
// and by ticket derivation. Implementations live under internal/clients.
package classification

import (
	"context"
	"errors"
)

// ErrSessionClosed is returned by Send after the session has ended.
var ErrSessionClosed = errors.New("model session closed")

// Modality selects what the live model answers with.
type Modality string

const (
	ModalityText  Modality = "TEXT"
	ModalityAudio Modality = "AUDIO"
)

// Fragment is one piece of a streamed model response. Audio is 8kHz mu-law,
// ready to be relayed to telephony. Err is set on the last fragment when the
// session failed.
type Fragment struct {
	Text         string
	Audio        []byte
	TurnComplete bool
	Err          error
}

type SessionConfig struct {
	SystemInstruction string
	Modality          Modality
}

// Session is an open streaming conversation with the model.
type Session interface {
	// Send forwards a chunk of 8kHz mu-law caller audio. When endOfTurn is
	// set the model is told the caller finished speaking; chunk may be nil.
	Send(ctx context.Context, chunk []byte, endOfTurn bool) error
	// Fragments yields model output in arrival order and is closed when the
	// session ends.
	Fragments() <-chan Fragment
	Close() error
}

// Classifier answers a single prompt with a single text response.
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

// Converser opens streaming sessions.
type Converser interface {
	StreamConverse(ctx context.Context, cfg SessionConfig) (Session, error)
}

// Service is the full capability.
type Service interface {
	Classifier
	Converser
}
