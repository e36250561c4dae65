package handler

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"

	"triage-server/internal/observability"
	"triage-server/internal/voicecall/processor"
)

// CallRelay runs one call over an open media stream.
type CallRelay interface {
	HandleCall(ctx context.Context, stream processor.TelephonyStream) (*processor.CallResult, error)
}

type Handler struct {
	relay      CallRelay
	publicHost string
	greeting   string
	logger     *observability.Logger
}

// New creates the call handler. publicHost, when set, replaces the request
// host in the media stream address. greeting is spoken before the stream
// opens; empty means none.
func New(relay CallRelay, publicHost, greeting string, logger *observability.Logger) Handler {
	return Handler{
		relay:      relay,
		publicHost: publicHost,
		greeting:   greeting,
		logger:     logger,
	}
}

// upgrader is a shared WebSocket upgrader
var upgrader = websocket.Upgrader{
	// Media streams are opened by the telephony provider, not a browser.
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}
