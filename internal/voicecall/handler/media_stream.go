package handler

import (
	"github.com/gin-gonic/gin"

	"triage-server/internal/observability"
	"triage-server/internal/voicecall/twilio"
)

// HandleMediaStream upgrades to a websocket and relays the call until either
// side hangs up. Call failures never reach the caller; they are logged.
func (h *Handler) HandleMediaStream(c *gin.Context) {
	ctx := c.Request.Context()

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error(ctx, "WebSocket upgrade failed", err)
		return
	}
	stream := twilio.NewStream(conn)
	defer stream.Close()

	h.logger.Info(ctx, "Media stream connection established")

	result, err := h.relay.HandleCall(ctx, stream)
	if err != nil {
		h.logger.Error(ctx, "Call failed", err)
		return
	}

	ctx = observability.WithCallFields(ctx, result.CallID, result.StreamSid)
	ctx = observability.WithFields(ctx,
		observability.Field{Key: "entries", Value: len(result.Entries)},
		observability.Field{Key: "ticket_id", Value: result.TicketID},
		observability.Field{Key: "transcript_path", Value: result.TranscriptPath},
	)
	h.logger.Info(ctx, "Call finished")
}
