package processor

//go:generate go run go.uber.org/mock/mockgen@latest -source=processor.go -destination=mocks_test.go -package=processor

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"triage-server/internal/llmjson"
	"triage-server/internal/observability"
	"triage-server/internal/prompts"
	"triage-server/internal/store"
	callProcessor "triage-server/internal/voicecall/processor"
)

// TicketStore defines the document store operations required by TicketProcessor
type TicketStore interface {
	CreateTicket(ctx context.Context, ticket *store.Ticket) error
	GetTicket(ctx context.Context, ticketID string) (*store.Ticket, error)
	ListTickets(ctx context.Context, limit int) ([]store.Ticket, error)
}

// Classifier answers a single prompt with the model's raw text
type Classifier interface {
	Classify(ctx context.Context, prompt string) (string, error)
}

var (
	ErrEmptyTranscript = errors.New("transcript has no utterances")
	ErrTicketNotFound  = errors.New("ticket not found")
)

const ticketIDPrefix = "TICKET"

type TicketProcessor struct {
	store      TicketStore
	classifier Classifier
	catalog    *prompts.Catalog
	now        func() time.Time
	logger     *observability.Logger
}

func New(store TicketStore, classifier Classifier, catalog *prompts.Catalog, logger *observability.Logger) TicketProcessor {
	return TicketProcessor{
		store:      store,
		classifier: classifier,
		catalog:    catalog,
		now:        time.Now,
		logger:     logger,
	}
}

// DeriveTicket classifies a finished call transcript and stores the result.
// A transcript the model cannot classify is still stored, with status
// unclassified and the transcript as its summary.
func (p TicketProcessor) DeriveTicket(ctx context.Context, call callProcessor.CallRecord) (*store.Ticket, error) {
	ctx = observability.WithCallFields(ctx, call.CallID, call.StreamSid)

	lines := transcriptLines(call.Entries)
	if len(lines) == 0 {
		p.logger.Info(ctx, "Skipping ticket for empty transcript")
		return nil, ErrEmptyTranscript
	}

	ticket := &store.Ticket{
		TicketID:  NewTicketID(),
		Datetime:  p.now().UTC().Format(time.RFC3339),
		Status:    store.TicketStatusPending,
		CallID:    call.CallID,
		StreamSid: call.StreamSid,
	}
	ctx = observability.WithFields(ctx, observability.Field{Key: "ticket_id", Value: ticket.TicketID})

	if err := p.classify(ctx, lines, ticket); err != nil {
		p.logger.Error(ctx, "Failed to classify transcript, storing unclassified ticket", err)
		ticket.Status = store.TicketStatusUnclassified
		ticket.Summary = renderLines(lines)
	}

	if err := p.store.CreateTicket(ctx, ticket); err != nil {
		p.logger.Error(ctx, "Failed to store ticket", err)
		return nil, fmt.Errorf("failed to store ticket: %w", err)
	}

	ctx = observability.WithFields(ctx,
		observability.Field{Key: "status", Value: string(ticket.Status)},
		observability.Field{Key: "priority", Value: ticket.Priority},
	)
	p.logger.Info(ctx, "Ticket created")
	return ticket, nil
}

func (p TicketProcessor) classify(ctx context.Context, lines []prompts.TranscriptLine, ticket *store.Ticket) error {
	prompt, err := p.catalog.TicketPrompt(lines)
	if err != nil {
		return err
	}
	raw, err := p.classifier.Classify(ctx, prompt)
	if err != nil {
		return fmt.Errorf("failed to classify transcript: %w", err)
	}

	var fields map[string]any
	if err := llmjson.Decode(raw, &fields); err != nil {
		return err
	}
	applyFields(ticket, fields)
	return nil
}

func (p TicketProcessor) GetTicket(ctx context.Context, ticketID string) (*store.Ticket, error) {
	ticket, err := p.store.GetTicket(ctx, ticketID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrTicketNotFound
		}
		p.logger.Error(ctx, "failed to get ticket", err)
		return nil, err
	}
	return ticket, nil
}

func (p TicketProcessor) ListTickets(ctx context.Context, limit int) ([]store.Ticket, error) {
	if limit <= 0 || limit > 100 {
		limit = 25
	}
	tickets, err := p.store.ListTickets(ctx, limit)
	if err != nil {
		p.logger.Error(ctx, "failed to list tickets", err)
		return nil, err
	}
	return tickets, nil
}

// NewTicketID returns "TICKET" followed by 32 hex characters.
func NewTicketID() string {
	return ticketIDPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

func transcriptLines(entries []callProcessor.Entry) []prompts.TranscriptLine {
	lines := make([]prompts.TranscriptLine, 0, len(entries))
	for _, e := range entries {
		text := strings.Join(strings.Fields(e.Text), " ")
		if text == "" {
			continue
		}
		lines = append(lines, prompts.TranscriptLine{Role: e.Role, Text: text})
	}
	return lines
}

func renderLines(lines []prompts.TranscriptLine) string {
	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l.Role)
		b.WriteString(": ")
		b.WriteString(l.Text)
	}
	return b.String()
}
