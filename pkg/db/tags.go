package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mediar-ai/insights/types"
)

// TagsAfter returns tags for a user created strictly after the given bound.
// The bound is exclusive, unlike the attention and sleep readers.
func (s *Store) TagsAfter(ctx context.Context, userID string, after time.Time) ([]types.Tag, error) {
	var tags []types.Tag
	err := s.db.SelectContext(ctx, &tags, `
		SELECT id, user_id, text, created_at
		FROM tags
		WHERE user_id = ? AND created_at > ?
		ORDER BY created_at DESC
	`, userID, after.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query tags: %w", err)
	}
	return tags, nil
}

// InsertTag appends one user-authored tag.
func (s *Store) InsertTag(ctx context.Context, userID string, text string, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO tags (id, user_id, text, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), userID, text, createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}
