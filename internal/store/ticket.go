package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type documentRow struct {
	ID       string `db:"id"`
	Document string `db:"document"`
}

const sqlCreateTicket = `
INSERT INTO tickets (ticket_id, status, datetime, document)
VALUES (?, ?, ?, ?)`

// CreateTicket inserts a new ticket. Existing ids are never overwritten.
func (s *Store) CreateTicket(ctx context.Context, ticket *Ticket) error {
	doc, err := json.Marshal(ticket)
	if err != nil {
		return fmt.Errorf("failed to encode ticket: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(sqlCreateTicket),
		ticket.TicketID, string(ticket.Status), ticket.Datetime, string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("ticket %s: %w", ticket.TicketID, ErrAlreadyExists)
		}
		s.logger.Error(ctx, "failed to create ticket", err)
		return fmt.Errorf("failed to create ticket: %w", err)
	}
	return nil
}

const sqlGetTicketByID = `
SELECT ticket_id AS id, document FROM tickets WHERE ticket_id = ?`

// GetTicket returns the ticket with the given id
func (s *Store) GetTicket(ctx context.Context, ticketID string) (*Ticket, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(sqlGetTicketByID), ticketID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get ticket by ID", err)
		return nil, fmt.Errorf("failed to get ticket by ID: %w", err)
	}

	var ticket Ticket
	if err := json.Unmarshal([]byte(row.Document), &ticket); err != nil {
		return nil, fmt.Errorf("failed to decode ticket %s: %w", ticketID, err)
	}
	return &ticket, nil
}

const sqlListTickets = `
SELECT ticket_id AS id, document FROM tickets ORDER BY datetime DESC LIMIT ?`

// ListTickets returns the most recent tickets first
func (s *Store) ListTickets(ctx context.Context, limit int) ([]Ticket, error) {
	var rows []documentRow
	if err := s.db.SelectContext(ctx, &rows, s.db.Rebind(sqlListTickets), limit); err != nil {
		s.logger.Error(ctx, "failed to list tickets", err)
		return nil, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]Ticket, 0, len(rows))
	for _, row := range rows {
		var ticket Ticket
		if err := json.Unmarshal([]byte(row.Document), &ticket); err != nil {
			return nil, fmt.Errorf("failed to decode ticket %s: %w", row.ID, err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}
