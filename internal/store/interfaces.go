package store

import (
	"context"
)

// DocumentStore is the persistence both the SQL store and the hosted
// document database provide. Writes are create-only.
type DocumentStore interface {
	Close() error

	// Ticket operations
	CreateTicket(ctx context.Context, ticket *Ticket) error
	GetTicket(ctx context.Context, ticketID string) (*Ticket, error)
	ListTickets(ctx context.Context, limit int) ([]Ticket, error)

	// Tweet operations
	CreateTweet(ctx context.Context, record *TweetRecord) error
	GetTweet(ctx context.Context, id string) (*TweetRecord, error)
}

var _ DocumentStore = (*Store)(nil)
