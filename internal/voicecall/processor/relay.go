package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"triage-server/internal/classification"
	"triage-server/internal/observability"
	"triage-server/internal/telemetry"
	"triage-server/internal/voice/audio"
	"triage-server/internal/voicecall/twilio"
)

var (
	errTelephonyClosed   = errors.New("telephony stream closed")
	errModelSessionEnded = errors.New("model session ended")
)

// CallResult summarises a finished call.
type CallResult struct {
	CallID         string
	StreamSid      string
	StopSeen       bool
	Entries        []Entry
	TranscriptPath string
	TicketID       string
}

// HandleCall relays one call until either side goes away. Caller audio flows
// to the model; model output is appended to the transcript and sent back to
// the caller. When the caller sent a stop event the transcript is recorded
// exactly once and handed to ticket derivation.
func (p *CallProcessor) HandleCall(ctx context.Context, stream TelephonyStream) (*CallResult, error) {
	call := newCallSession(uuid.NewString(), p.logger)
	ctx = observability.WithCallFields(ctx, call.id, "")
	ctx, span := telemetry.Tracer().Start(ctx, "voicecall.HandleCall")
	defer span.End()
	span.SetAttributes(attribute.String("call.id", call.id))

	session, err := p.converser.StreamConverse(ctx, classification.SessionConfig{
		SystemInstruction: p.cfg.SystemInstruction,
		Modality:          p.cfg.Modality,
	})
	if err != nil {
		p.logger.Error(ctx, "Failed to open model session", err)
		_ = stream.Close()
		call.transition(ctx, StateClosed)
		span.RecordError(err)
		return nil, fmt.Errorf("failed to open model session: %w", err)
	}
	call.transition(ctx, StateStreaming)

	g, gctx := errgroup.WithContext(ctx)
	draining := make(chan struct{})

	g.Go(func() error { return p.forwardCaller(gctx, call, stream, session, draining) })
	g.Go(func() error { return p.forwardModel(gctx, call, stream, session, draining) })

	// A blocked read on either side only returns once its connection closes.
	joined := make(chan struct{})
	go func() {
		select {
		case <-gctx.Done():
			_ = stream.Close()
			_ = session.Close()
		case <-joined:
		}
	}()

	relayErr := g.Wait()
	close(joined)
	_ = stream.Close()
	_ = session.Close()
	call.transition(ctx, StateClosed)

	ctx = observability.WithCallFields(ctx, call.id, call.StreamSid())
	if relayErr != nil && !isExpectedEnd(relayErr) {
		p.logger.Error(ctx, "Call relay ended with error", relayErr)
		span.RecordError(relayErr)
	} else {
		p.logger.Info(ctx, "Call relay ended")
	}

	result := &CallResult{
		CallID:    call.id,
		StreamSid: call.StreamSid(),
		StopSeen:  call.StopSeen(),
		Entries:   call.Entries(),
	}
	span.SetAttributes(
		attribute.Bool("call.stop_seen", result.StopSeen),
		attribute.Int("call.entries", len(result.Entries)),
	)

	if !result.StopSeen {
		return result, nil
	}
	p.finishCall(ctx, result)
	return result, nil
}

// finishCall records the transcript and derives the ticket. It runs after the
// relay, so it must survive the request context going away.
func (p *CallProcessor) finishCall(ctx context.Context, result *CallResult) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), p.cfg.PostCallTimeout)
	defer cancel()

	path, err := p.recorder.Record(ctx, result.Entries, result.StreamSid, time.Now())
	if err != nil {
		p.logger.Error(ctx, "Failed to save transcript", err)
	}
	result.TranscriptPath = path

	if p.deriver == nil {
		return
	}
	ticket, err := p.deriver.DeriveTicket(ctx, CallRecord{
		CallID:         result.CallID,
		StreamSid:      result.StreamSid,
		Entries:        result.Entries,
		TranscriptPath: path,
	})
	if err != nil {
		p.logger.Error(ctx, "Failed to derive ticket", err)
		return
	}
	result.TicketID = ticket.TicketID
}

// forwardCaller reads telephony frames and feeds caller audio to the model.
// It returns nil after a stop event.
func (p *CallProcessor) forwardCaller(ctx context.Context, call *callSession, stream TelephonyStream,
	session classification.Session, draining chan<- struct{}) error {
	chunks := 0
	for {
		event, err := stream.ReadEvent()
		if err != nil {
			if errors.Is(err, twilio.ErrMalformedFrame) {
				p.logger.InfoWithError(ctx, "Skipping malformed frame", err)
				continue
			}
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !twilio.IsNormalClose(err) {
				p.logger.InfoWithError(ctx, "Telephony read failed", err)
			}
			return fmt.Errorf("%w: %v", errTelephonyClosed, err)
		}

		switch event.Event {
		case twilio.EventStart:
			call.setStreamSid(event.StartStreamSid())
			ctx = observability.WithFields(ctx, observability.Field{Key: "stream_sid", Value: call.StreamSid()})
			p.logger.Info(ctx, "Media stream started")

		case twilio.EventMedia:
			chunk, err := audio.DecodePayload(event.Media.Payload)
			if err != nil {
				p.logger.InfoWithError(ctx, "Skipping media frame with bad payload", err)
				continue
			}
			if err := session.Send(ctx, chunk, false); err != nil {
				return fmt.Errorf("failed to forward audio: %w", err)
			}
			chunks++

		case twilio.EventStop:
			ctx = observability.WithFields(ctx, observability.Field{Key: "chunks", Value: chunks})
			p.logger.Info(ctx, "Media stream stopped")
			call.markStopped()
			call.transition(ctx, StateDraining)
			close(draining)
			if err := session.Send(ctx, nil, true); err != nil {
				return fmt.Errorf("failed to signal end of turn: %w", err)
			}
			return nil

		default:
			p.logger.Debug(ctx, fmt.Sprintf("Ignoring media stream event: %s", event.Event))
		}
	}
}

// forwardModel appends model text to the transcript and relays output to the
// caller. Once draining it stops at the model's next turn end or after
// DrainTimeout.
func (p *CallProcessor) forwardModel(ctx context.Context, call *callSession, stream TelephonyStream,
	session classification.Session, draining <-chan struct{}) error {
	fragments := session.Fragments()
	drainSignal := draining
	isDraining := false
	var drainTimeout <-chan time.Time
	// The caller may have hung up while a fragment was already waiting.
	hungUp := func() bool {
		if isDraining {
			return true
		}
		select {
		case <-drainSignal:
			return true
		default:
			return false
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-draining:
			draining = nil
			isDraining = true
			timer := time.NewTimer(p.cfg.DrainTimeout)
			defer timer.Stop()
			drainTimeout = timer.C

		case <-drainTimeout:
			p.logger.Warn(ctx, "Drain timeout reached before model finished its turn")
			return nil

		case f, ok := <-fragments:
			if !ok {
				if hungUp() {
					return nil
				}
				return errModelSessionEnded
			}
			if f.Err != nil {
				return fmt.Errorf("model session failed: %w", f.Err)
			}

			if f.Text != "" {
				call.appendEntry(Entry{Role: RoleAI, Text: f.Text, Timestamp: time.Now()})
				if err := p.sendToCaller(ctx, stream, call.StreamSid(), f.Text, hungUp()); err != nil {
					return err
				}
			}
			if len(f.Audio) > 0 {
				if err := p.sendToCaller(ctx, stream, call.StreamSid(), audio.EncodePayload(f.Audio), hungUp()); err != nil {
					return err
				}
			}
			if f.TurnComplete && hungUp() {
				return nil
			}
		}
	}
}

// sendToCaller writes a media frame. After the caller hung up the socket is
// usually gone, so failures there only stop the relay before draining.
func (p *CallProcessor) sendToCaller(ctx context.Context, stream TelephonyStream, streamSid, payload string, draining bool) error {
	err := stream.SendMedia(streamSid, payload)
	if err == nil {
		return nil
	}
	if draining {
		p.logger.Debug(ctx, "Dropping model output after hang up")
		return nil
	}
	return fmt.Errorf("%w: %v", errTelephonyClosed, err)
}

func isExpectedEnd(err error) bool {
	return errors.Is(err, errTelephonyClosed) ||
		errors.Is(err, errModelSessionEnded) ||
		errors.Is(err, context.Canceled)
}
