package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/twilio/twilio-go/twiml"

	"triage-server/internal/observability"
)

const mediaStreamPath = "/media-stream"

// ErrInvalidStreamHost is returned when no usable host is known for the
// media stream address.
var ErrInvalidStreamHost = errors.New("invalid media stream host")

// fallbackTwiML is returned when the directive cannot be built, so the
// caller hears something instead of dead air.
const fallbackTwiML = `<?xml version="1.0" encoding="UTF-8"?><Response><Say>We are unable to take your call right now. Please try again.</Say><Hangup/></Response>`

// HandleIncomingCall answers the call webhook with a directive that connects
// the call to the media stream endpoint.
func (h *Handler) HandleIncomingCall(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Request.FormValue("CallSid") == "" {
		h.logger.Warn(ctx, "Call notification has no CallSid")
	}

	streamURL, err := h.MediaStreamURL(c.Request)
	if err != nil {
		h.logger.Error(ctx, "Malformed call notification, answering with fallback directive", err)
		c.Data(http.StatusOK, "text/xml", []byte(fallbackTwiML))
		return
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "stream_url", Value: streamURL})

	elements := make([]twiml.Element, 0, 2)
	if h.greeting != "" {
		elements = append(elements, &twiml.VoiceSay{Message: h.greeting})
	}
	elements = append(elements, &twiml.VoiceConnect{
		InnerElements: []twiml.Element{
			&twiml.VoiceStream{Name: "media-stream", Url: streamURL},
		},
	})

	result, err := twiml.Voice(elements)
	if err != nil {
		h.logger.Error(ctx, "Failed to render call directive", err)
		c.Data(http.StatusOK, "text/xml", []byte(fallbackTwiML))
		return
	}

	h.logger.Info(ctx, "Incoming call connected to media stream")
	c.Data(http.StatusOK, "text/xml", []byte(result))
}

// MediaStreamURL is the websocket address the telephony provider should
// stream the call to. The configured public host wins over the request host.
func (h *Handler) MediaStreamURL(r *http.Request) (string, error) {
	host := h.publicHost
	if host == "" {
		host = r.Host
	}
	host = strings.TrimSpace(host)
	if host == "" {
		return "", fmt.Errorf("empty host: %w", ErrInvalidStreamHost)
	}

	u, err := url.Parse("wss://" + host + mediaStreamPath)
	if err != nil || u.Host != host || u.Hostname() == "" || u.User != nil {
		return "", fmt.Errorf("host %q: %w", host, ErrInvalidStreamHost)
	}
	return u.String(), nil
}
