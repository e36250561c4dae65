package googleai

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	"github.com/gorilla/websocket"
	"google.golang.org/genai"

	"triage-server/internal/classification"
	"triage-server/internal/observability"
	"triage-server/internal/voice/audio"
)

const inputAudioMIME = "audio/pcm;rate=16000"

// StreamConverse opens a Live API session for one call.
func (c *Client) StreamConverse(ctx context.Context, cfg classification.SessionConfig) (classification.Session, error) {
	modality := cfg.Modality
	if modality == "" {
		modality = classification.ModalityText
	}

	connectCfg := &genai.LiveConnectConfig{
		ResponseModalities: []genai.Modality{genai.Modality(modality)},
	}
	if cfg.SystemInstruction != "" {
		connectCfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: cfg.SystemInstruction}},
		}
	}
	if modality == classification.ModalityAudio {
		// Audio answers carry no text parts; the output transcription fills the transcript.
		connectCfg.OutputAudioTranscription = &genai.AudioTranscriptionConfig{}
	}

	session, err := c.client.Live.Connect(ctx, c.models.Live, connectCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to gemini live API: %w", err)
	}
	c.logger.Info(ctx, "Connected to Google AI Live API")

	s := newLiveSession(ctx, session, c.logger)
	go s.receive()
	return s, nil
}

// liveConn is the subset of *genai.Session the relay session uses.
type liveConn interface {
	SendRealtimeInput(input genai.LiveRealtimeInput) error
	Receive() (*genai.LiveServerMessage, error)
	Close() error
}

type liveSession struct {
	conn   liveConn
	logger *observability.Logger
	ctx    context.Context

	fragments chan classification.Fragment
	done      chan struct{}
	closeOnce sync.Once
	// genai sessions are not safe for concurrent writes.
	sendMu sync.Mutex
}

func newLiveSession(ctx context.Context, conn liveConn, logger *observability.Logger) *liveSession {
	return &liveSession{
		conn:      conn,
		logger:    logger,
		ctx:       ctx,
		fragments: make(chan classification.Fragment, 64),
		done:      make(chan struct{}),
	}
}

func (s *liveSession) Send(ctx context.Context, chunk []byte, endOfTurn bool) error {
	select {
	case <-s.done:
		return classification.ErrSessionClosed
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if len(chunk) > 0 {
		err := s.conn.SendRealtimeInput(genai.LiveRealtimeInput{
			Audio: &genai.Blob{
				Data:     audio.MuLawToPCM16k(chunk),
				MIMEType: inputAudioMIME,
			},
		})
		if err != nil {
			return fmt.Errorf("failed to send audio: %w", err)
		}
	}
	if endOfTurn {
		if err := s.conn.SendRealtimeInput(genai.LiveRealtimeInput{AudioStreamEnd: true}); err != nil {
			return fmt.Errorf("failed to send end of turn: %w", err)
		}
	}
	return nil
}

func (s *liveSession) Fragments() <-chan classification.Fragment {
	return s.fragments
}

func (s *liveSession) Close() error {
	var err error
	s.closeOnce.Do(func() {
		close(s.done)
		err = s.conn.Close()
	})
	return err
}

func (s *liveSession) receive() {
	defer close(s.fragments)

	for {
		msg, err := s.conn.Receive()
		if err != nil {
			if s.closed() || isClosedConnErr(err) {
				s.logger.Info(s.ctx, "Google AI session closed, stopping receive loop")
				return
			}
			s.logger.Error(s.ctx, "Unexpected error receiving message", err)
			s.emit(classification.Fragment{Err: err})
			return
		}

		for _, f := range translate(msg) {
			if !s.emit(f) {
				return
			}
		}
	}
}

func (s *liveSession) emit(f classification.Fragment) bool {
	select {
	case s.fragments <- f:
		return true
	case <-s.done:
		return false
	}
}

func (s *liveSession) closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

func isClosedConnErr(err error) bool {
	return errors.Is(err, net.ErrClosed) ||
		websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway)
}

// translate turns one server message into fragments: one per text or audio
// part, then a turn marker when the model finished its turn.
func translate(msg *genai.LiveServerMessage) []classification.Fragment {
	if msg == nil || msg.ServerContent == nil {
		return nil
	}
	sc := msg.ServerContent

	var out []classification.Fragment
	if sc.ModelTurn != nil {
		for _, part := range sc.ModelTurn.Parts {
			if part == nil {
				continue
			}
			if part.Text != "" {
				out = append(out, classification.Fragment{Text: part.Text})
			}
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				mulaw, err := audio.PCMToMuLaw8k(part.InlineData.Data, audio.ModelOutputRate)
				if err == nil {
					out = append(out, classification.Fragment{Audio: mulaw})
				}
			}
		}
	}
	if sc.OutputTranscription != nil && sc.OutputTranscription.Text != "" {
		out = append(out, classification.Fragment{Text: sc.OutputTranscription.Text})
	}
	if sc.TurnComplete {
		out = append(out, classification.Fragment{TurnComplete: true})
	}
	return out
}
