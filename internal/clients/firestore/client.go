package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"triage-server/internal/observability"
	"triage-server/internal/store"
)

var _ store.DocumentStore = (*Client)(nil)

// Config selects credentials and collection names.
type Config struct {
	CredentialsFile   string
	CredentialsJSON   string
	TicketsCollection string
	TweetsCollection  string
}

// Client stores tickets and tweet classifications as Firestore documents.
type Client struct {
	client  *firestore.Client
	tickets string
	tweets  string
	logger  *observability.Logger
}

// NewClient initialises a Firebase app and its Firestore client. Inline JSON
// credentials win over a credentials file; with neither, application default
// credentials are used.
func NewClient(ctx context.Context, cfg Config, logger *observability.Logger) (*Client, error) {
	var opts []option.ClientOption
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialise firebase app: %w", err)
	}
	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return newWithClient(client, cfg, logger), nil
}

func newWithClient(client *firestore.Client, cfg Config, logger *observability.Logger) *Client {
	c := &Client{
		client:  client,
		tickets: cfg.TicketsCollection,
		tweets:  cfg.TweetsCollection,
		logger:  logger,
	}
	if c.tickets == "" {
		c.tickets = "tickets"
	}
	if c.tweets == "" {
		c.tweets = "tweets"
	}
	return c
}

// Close releases the underlying connection
func (c *Client) Close() error {
	return c.client.Close()
}

// CreateTicket writes the ticket under its id. Create fails rather than
// overwrite an existing document.
func (c *Client) CreateTicket(ctx context.Context, ticket *store.Ticket) error {
	_, err := c.client.Collection(c.tickets).Doc(ticket.TicketID).Create(ctx, ticket)
	if err != nil {
		err = mapError(err)
		c.logger.Error(ctx, "failed to create ticket in firestore", err)
		return fmt.Errorf("firestore create ticket %s: %w", ticket.TicketID, err)
	}
	return nil
}

// GetTicket reads a ticket document
func (c *Client) GetTicket(ctx context.Context, ticketID string) (*store.Ticket, error) {
	snap, err := c.client.Collection(c.tickets).Doc(ticketID).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore get ticket %s: %w", ticketID, mapError(err))
	}
	var ticket store.Ticket
	if err := snap.DataTo(&ticket); err != nil {
		return nil, fmt.Errorf("firestore decode ticket %s: %w", ticketID, err)
	}
	return &ticket, nil
}

// ListTickets returns the most recent tickets first
func (c *Client) ListTickets(ctx context.Context, limit int) ([]store.Ticket, error) {
	iter := c.client.Collection(c.tickets).OrderBy("datetime", firestore.Desc).Limit(limit).Documents(ctx)
	defer iter.Stop()

	var tickets []store.Ticket
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("firestore list tickets: %w", mapError(err))
		}
		var ticket store.Ticket
		if err := snap.DataTo(&ticket); err != nil {
			return nil, fmt.Errorf("firestore decode ticket %s: %w", snap.Ref.ID, err)
		}
		tickets = append(tickets, ticket)
	}
	return tickets, nil
}

// CreateTweet writes a tweet classification record under its id
func (c *Client) CreateTweet(ctx context.Context, record *store.TweetRecord) error {
	_, err := c.client.Collection(c.tweets).Doc(record.ID).Create(ctx, record)
	if err != nil {
		err = mapError(err)
		c.logger.Error(ctx, "failed to create tweet record in firestore", err)
		return fmt.Errorf("firestore create tweet %s: %w", record.ID, err)
	}
	return nil
}

// GetTweet reads a tweet classification record
func (c *Client) GetTweet(ctx context.Context, id string) (*store.TweetRecord, error) {
	snap, err := c.client.Collection(c.tweets).Doc(id).Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("firestore get tweet %s: %w", id, mapError(err))
	}
	var record store.TweetRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("firestore decode tweet %s: %w", id, err)
	}
	return &record, nil
}

// mapError translates gRPC status codes into store sentinel errors.
func mapError(err error) error {
	switch status.Code(err) {
	case codes.NotFound:
		return store.ErrNotFound
	case codes.AlreadyExists:
		return store.ErrAlreadyExists
	default:
		return err
	}
}
