package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"triage-server/internal/apierrors"
	"triage-server/internal/observability"
	"triage-server/internal/store"
)

// TicketReader is the read side of ticket derivation
type TicketReader interface {
	GetTicket(ctx context.Context, ticketID string) (*store.Ticket, error)
	ListTickets(ctx context.Context, limit int) ([]store.Ticket, error)
}

type Handler struct {
	processor TicketReader
	logger    *observability.Logger
}

func New(processor TicketReader, logger *observability.Logger) Handler {
	return Handler{
		processor: processor,
		logger:    logger,
	}
}

// HandleGetTicket handles GET /api/tickets/:ticket_id
func (h *Handler) HandleGetTicket(c *gin.Context) {
	ctx := observability.WithFields(c.Request.Context(),
		observability.Field{Key: "ticket_id", Value: c.Param("ticket_id")})

	ticket, err := h.processor.GetTicket(ctx, c.Param("ticket_id"))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}

// HandleListTickets handles GET /api/tickets?limit=N
func (h *Handler) HandleListTickets(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 25
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			apierrors.RespondWithError(c, apierrors.BadRequest(apierrors.CodeInvalidInput, "limit must be a number"))
			return
		}
		limit = parsed
	}

	tickets, err := h.processor.ListTickets(ctx, limit)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}
