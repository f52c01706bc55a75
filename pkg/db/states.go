package db

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mediar-ai/insights/types"
)

// LatestFocusStates returns attention samples for a user with created_at at
// or after since, newest first, capped at limit rows to bound memory.
func (s *Store) LatestFocusStates(ctx context.Context, userID string, since time.Time, limit int) ([]types.AttentionSample, error) {
	var samples []types.AttentionSample
	err := s.db.SelectContext(ctx, &samples, `
		SELECT id, user_id, probability,
		       COALESCE(json_extract(metadata, '$.label'), '') AS label,
		       created_at
		FROM states
		WHERE user_id = ?
		  AND probability IS NOT NULL
		  AND json_extract(metadata, '$.label') = ?
		  AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?
	`, userID, types.FocusLabel, since.UTC(), limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query focus states: %w", err)
	}
	return samples, nil
}

// ouraPayload is the persisted shape of one sleep summary. The sleep array
// mirrors the upstream ring export; only average_hrv is lifted out, the rest
// rides along in the raw payload.
type ouraPayload struct {
	Day   string `json:"day"`
	Sleep []struct {
		AverageHRV float64 `json:"average_hrv"`
	} `json:"sleep"`
}

// SleepSummariesSince returns sleep summaries for a user keyed by calendar
// day at or after day (YYYY-MM-DD), newest day first. Malformed payloads are
// skipped rather than failing the read.
func (s *Store) SleepSummariesSince(ctx context.Context, userID string, day string) ([]types.SleepSummary, error) {
	var rows []struct {
		UserID    string          `db:"user_id"`
		Oura      json.RawMessage `db:"oura"`
		CreatedAt time.Time       `db:"created_at"`
	}
	err := s.db.SelectContext(ctx, &rows, `
		SELECT user_id, oura, created_at
		FROM states
		WHERE user_id = ?
		  AND oura IS NOT NULL
		  AND json_extract(oura, '$.day') >= ?
		ORDER BY json_extract(oura, '$.day') DESC
		LIMIT 100
	`, userID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to query sleep summaries: %w", err)
	}

	summaries := make([]types.SleepSummary, 0, len(rows))
	for _, row := range rows {
		var payload ouraPayload
		if err := json.Unmarshal(row.Oura, &payload); err != nil || payload.Day == "" {
			s.logger.Debug("Skipping malformed sleep summary", "user_id", userID, "error", err)
			continue
		}
		summary := types.SleepSummary{
			UserID:    row.UserID,
			Day:       payload.Day,
			Raw:       row.Oura,
			CreatedAt: row.CreatedAt,
		}
		if len(payload.Sleep) > 0 {
			summary.AverageHRV = payload.Sleep[0].AverageHRV
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// InsertAttentionSample appends one attention sample. Used by the ingestion
// surface and tests; the pipeline itself only reads.
func (s *Store) InsertAttentionSample(ctx context.Context, userID string, probability float64, label string, createdAt time.Time) error {
	metadata, err := json.Marshal(map[string]string{"label": label})
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO states (id, user_id, probability, metadata, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, uuid.New().String(), userID, probability, string(metadata), createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert attention sample: %w", err)
	}
	return nil
}

// InsertSleepSummary appends one raw sleep summary payload.
func (s *Store) InsertSleepSummary(ctx context.Context, userID string, payload json.RawMessage, createdAt time.Time) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO states (id, user_id, oura, created_at)
		VALUES (?, ?, ?, ?)
	`, uuid.New().String(), userID, string(payload), createdAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to insert sleep summary: %w", err)
	}
	return nil
}
