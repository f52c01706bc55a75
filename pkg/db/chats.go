package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mediar-ai/insights/types"
)

// AppendChat appends one message to the conversation log. A non-empty
// channel marks the row as a delivery record for that channel.
func (s *Store) AppendChat(ctx context.Context, userID string, text string, channel string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO chats (id, user_id, text, channel, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, text, channel, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to append chat: %w", err)
	}
	return nil
}

// LastChannelMessageSince returns the most recent delivery record for
// (user, channel) with created_at at or after since, or nil when none exists.
func (s *Store) LastChannelMessageSince(ctx context.Context, userID string, channel string, since time.Time) (*types.ChatMessage, error) {
	var message types.ChatMessage
	err := s.db.GetContext(ctx, &message, `
		SELECT id, user_id, text, channel, created_at
		FROM chats
		WHERE user_id = ? AND channel = ? AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT 1
	`, userID, channel, since.UTC())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query last channel message: %w", err)
	}
	return &message, nil
}
