package db

import (
	"context"
	"encoding/json"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediar-ai/insights/types"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "store.db"), log.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLatestFocusStates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	since := time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertAttentionSample(ctx, "user-1", 0.9, types.FocusLabel, since.Add(2*time.Hour)))
	require.NoError(t, store.InsertAttentionSample(ctx, "user-1", 0.8, types.FocusLabel, since.Add(1*time.Hour)))
	// Exactly on the bound: included.
	require.NoError(t, store.InsertAttentionSample(ctx, "user-1", 0.7, types.FocusLabel, since))
	// Before the bound, wrong label, wrong user: all excluded.
	require.NoError(t, store.InsertAttentionSample(ctx, "user-1", 0.6, types.FocusLabel, since.Add(-time.Minute)))
	require.NoError(t, store.InsertAttentionSample(ctx, "user-1", 0.9, "calm", since.Add(3*time.Hour)))
	require.NoError(t, store.InsertAttentionSample(ctx, "user-2", 0.9, types.FocusLabel, since.Add(3*time.Hour)))

	t.Run("filters by user, label and inclusive bound", func(t *testing.T) {
		samples, err := store.LatestFocusStates(ctx, "user-1", since, 100)
		require.NoError(t, err)
		require.Len(t, samples, 3)
		// Newest first.
		assert.Equal(t, 0.9, samples[0].Probability)
		assert.Equal(t, 0.7, samples[2].Probability)
		assert.Equal(t, types.FocusLabel, samples[0].Label)
	})

	t.Run("caps the result at the row limit", func(t *testing.T) {
		samples, err := store.LatestFocusStates(ctx, "user-1", since, 2)
		require.NoError(t, err)
		assert.Len(t, samples, 2)
	})
}

func TestSleepSummariesSince(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	createdAt := time.Date(2026, 8, 27, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertSleepSummary(ctx, "user-1",
		json.RawMessage(`{"day":"2026-08-26","sleep":[{"average_hrv":55}]}`), createdAt))
	require.NoError(t, store.InsertSleepSummary(ctx, "user-1",
		json.RawMessage(`{"day":"2026-08-27","sleep":[{"average_hrv":61},{"average_hrv":40}]}`), createdAt.Add(24*time.Hour)))
	// Before the day bound.
	require.NoError(t, store.InsertSleepSummary(ctx, "user-1",
		json.RawMessage(`{"day":"2026-08-20","sleep":[{"average_hrv":48}]}`), createdAt.Add(-7*24*time.Hour)))
	// Malformed payloads are skipped, not fatal.
	require.NoError(t, store.InsertSleepSummary(ctx, "user-1", json.RawMessage(`{"sleep":[]}`), createdAt))
	require.NoError(t, store.InsertSleepSummary(ctx, "user-1", json.RawMessage(`not json`), createdAt))

	summaries, err := store.SleepSummariesSince(ctx, "user-1", "2026-08-25")
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	// Newest day first, first night's HRV lifted out.
	assert.Equal(t, "2026-08-27", summaries[0].Day)
	assert.Equal(t, 61.0, summaries[0].AverageHRV)
	assert.Equal(t, "2026-08-26", summaries[1].Day)
	assert.Equal(t, 55.0, summaries[1].AverageHRV)
	assert.Contains(t, string(summaries[0].Raw), "average_hrv")
}

func TestTagsAfter(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	bound := time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC)

	require.NoError(t, store.InsertTag(ctx, "user-1", "meditation 20min", bound.Add(time.Hour)))
	// Exactly on the bound: excluded, the bound is strict.
	require.NoError(t, store.InsertTag(ctx, "user-1", "coffee at noon", bound))
	require.NoError(t, store.InsertTag(ctx, "user-2", "long run", bound.Add(time.Hour)))

	tags, err := store.TagsAfter(ctx, "user-1", bound)
	require.NoError(t, err)
	require.Len(t, tags, 1)
	assert.Equal(t, "meditation 20min", tags[0].Text)
}

func TestInsights(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("exists is false before any insert", func(t *testing.T) {
		exists, err := store.InsightExistsSince(ctx, "user-1", time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("create then exists", func(t *testing.T) {
		created, err := store.CreateInsight(ctx, "user-1", "go to bed earlier", "2026-08-28")
		require.NoError(t, err)
		assert.True(t, created)

		exists, err := store.InsightExistsSince(ctx, "user-1", time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = store.InsightExistsSince(ctx, "user-2", time.Now().UTC().Add(-time.Hour))
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("duplicate day bucket is rejected silently", func(t *testing.T) {
		created, err := store.CreateInsight(ctx, "user-1", "a second insight", "2026-08-28")
		require.NoError(t, err)
		assert.False(t, created)
	})

	t.Run("next day inserts again", func(t *testing.T) {
		created, err := store.CreateInsight(ctx, "user-1", "a fresh insight", "2026-08-29")
		require.NoError(t, err)
		assert.True(t, created)
	})
}

func TestChatLog(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	since := time.Now().UTC().Add(-time.Hour)

	t.Run("no delivery record yields nil without error", func(t *testing.T) {
		message, err := store.LastChannelMessageSince(ctx, "user-1", types.ChannelWhatsApp, since)
		require.NoError(t, err)
		assert.Nil(t, message)
	})

	t.Run("returns the newest record for the channel", func(t *testing.T) {
		require.NoError(t, store.AppendChat(ctx, "user-1", "plain log entry", ""))
		require.NoError(t, store.AppendChat(ctx, "user-1", "first delivery", types.ChannelWhatsApp))
		require.NoError(t, store.AppendChat(ctx, "user-1", "second delivery", types.ChannelWhatsApp))
		require.NoError(t, store.AppendChat(ctx, "user-1", "telegram delivery", types.ChannelTelegram))

		message, err := store.LastChannelMessageSince(ctx, "user-1", types.ChannelWhatsApp, since)
		require.NoError(t, err)
		require.NotNil(t, message)
		assert.Equal(t, "second delivery", message.Text)
		assert.Equal(t, types.ChannelWhatsApp, message.Channel)
	})
}
