package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// InsightExistsSince reports whether an insight already exists for the user
// with created_at at or after since.
func (s *Store) InsightExistsSince(ctx context.Context, userID string, since time.Time) (bool, error) {
	var count int
	err := s.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM insights
		WHERE user_id = ? AND created_at >= ?
	`, userID, since.UTC())
	if err != nil {
		return false, fmt.Errorf("failed to query insights: %w", err)
	}
	return count > 0, nil
}

// CreateInsight conditionally inserts the insight for (user, local day).
// The UNIQUE(user_id, day_bucket) constraint turns a concurrent duplicate
// into a rejected insert; the caller sees created=false instead of a second
// row.
func (s *Store) CreateInsight(ctx context.Context, userID string, text string, dayBucket string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `
		INSERT INTO insights (id, user_id, text, day_bucket, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day_bucket) DO NOTHING
	`, uuid.New().String(), userID, text, dayBucket, time.Now().UTC())
	if err != nil {
		return false, fmt.Errorf("failed to create insight: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
