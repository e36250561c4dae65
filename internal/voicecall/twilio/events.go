// Package twilio speaks the Twilio Media Streams websocket protocol.
package twilio

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Event names sent by Twilio on a media stream.
const (
	EventConnected = "connected"
	EventStart     = "start"
	EventMedia     = "media"
	EventStop      = "stop"
	EventMark      = "mark"
)

// ErrMalformedFrame is returned for frames that are not valid event JSON.
var ErrMalformedFrame = errors.New("malformed media stream frame")

// MediaEvent is one inbound frame. Only the payload matching Event is set.
type MediaEvent struct {
	Event          string        `json:"event"`
	SequenceNumber string        `json:"sequenceNumber,omitempty"`
	StreamSid      string        `json:"streamSid,omitempty"`
	Start          *StartPayload `json:"start,omitempty"`
	Media          *MediaPayload `json:"media,omitempty"`
	Stop           *StopPayload  `json:"stop,omitempty"`
}

type StartPayload struct {
	StreamSid   string      `json:"streamSid"`
	AccountSid  string      `json:"accountSid"`
	CallSid     string      `json:"callSid"`
	Tracks      []string    `json:"tracks"`
	MediaFormat MediaFormat `json:"mediaFormat"`
}

type MediaFormat struct {
	Encoding   string `json:"encoding"`
	SampleRate int    `json:"sampleRate"`
	Channels   int    `json:"channels"`
}

type MediaPayload struct {
	Track     string `json:"track,omitempty"`
	Chunk     string `json:"chunk,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Payload   string `json:"payload"`
}

type StopPayload struct {
	AccountSid string `json:"accountSid"`
	CallSid    string `json:"callSid"`
}

// OutboundMedia is the frame sent back to Twilio.
type OutboundMedia struct {
	Event     string          `json:"event"`
	StreamSid string          `json:"streamSid"`
	Media     OutboundPayload `json:"media"`
}

type OutboundPayload struct {
	Payload string `json:"payload"`
}

// ParseEvent decodes a frame. Frames without an event name are malformed.
func ParseEvent(data []byte) (MediaEvent, error) {
	var event MediaEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return MediaEvent{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	if event.Event == "" {
		return MediaEvent{}, fmt.Errorf("%w: missing event", ErrMalformedFrame)
	}
	if event.Event == EventMedia && event.Media == nil {
		return MediaEvent{}, fmt.Errorf("%w: media event without payload", ErrMalformedFrame)
	}
	return event, nil
}

// StartStreamSid returns the stream id announced by a start event.
func (e MediaEvent) StartStreamSid() string {
	if e.Start != nil && e.Start.StreamSid != "" {
		return e.Start.StreamSid
	}
	return e.StreamSid
}

// NewOutboundMedia builds a media frame for streamSid.
func NewOutboundMedia(streamSid, payload string) OutboundMedia {
	return OutboundMedia{
		Event:     EventMedia,
		StreamSid: streamSid,
		Media:     OutboundPayload{Payload: payload},
	}
}
