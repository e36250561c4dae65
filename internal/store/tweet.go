package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const sqlCreateTweet = `
INSERT INTO tweets (id, created_at, document)
VALUES (?, ?, ?)`

// CreateTweet inserts a tweet classification record
func (s *Store) CreateTweet(ctx context.Context, record *TweetRecord) error {
	doc, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode tweet record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, s.db.Rebind(sqlCreateTweet),
		record.ID, record.CreatedAt.UTC().Format(time.RFC3339Nano), string(doc))
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("tweet %s: %w", record.ID, ErrAlreadyExists)
		}
		s.logger.Error(ctx, "failed to create tweet record", err)
		return fmt.Errorf("failed to create tweet record: %w", err)
	}
	return nil
}

const sqlGetTweetByID = `
SELECT id, document FROM tweets WHERE id = ?`

// GetTweet returns the tweet record with the given id
func (s *Store) GetTweet(ctx context.Context, id string) (*TweetRecord, error) {
	var row documentRow
	err := s.db.GetContext(ctx, &row, s.db.Rebind(sqlGetTweetByID), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		s.logger.Error(ctx, "failed to get tweet by ID", err)
		return nil, fmt.Errorf("failed to get tweet by ID: %w", err)
	}

	var record TweetRecord
	if err := json.Unmarshal([]byte(row.Document), &record); err != nil {
		return nil, fmt.Errorf("failed to decode tweet %s: %w", id, err)
	}
	return &record, nil
}
