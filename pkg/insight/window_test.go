package insight

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)

	t.Run("resolves boundaries in the user's zone", func(t *testing.T) {
		window, err := ResolveWindow("America/Los_Angeles", now)
		require.NoError(t, err)

		loc, _ := time.LoadLocation("America/Los_Angeles")
		// 18:00 UTC is 11:00 PDT, so today is still the 28th locally.
		assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, loc), window.TodayStart)
		assert.Equal(t, time.Date(2026, 8, 25, 1, 0, 0, 0, loc), window.LookbackStart)
		assert.Equal(t, "2026-08-28", window.DayBucket)
		assert.Equal(t, "2026-08-25", window.LookbackDay)
	})

	t.Run("local day can differ from the UTC day", func(t *testing.T) {
		late := time.Date(2026, 8, 28, 3, 0, 0, 0, time.UTC) // 27th, 20:00 PDT
		window, err := ResolveWindow("America/Los_Angeles", late)
		require.NoError(t, err)
		assert.Equal(t, "2026-08-27", window.DayBucket)
	})

	t.Run("lookback is anchored to 01:00 local", func(t *testing.T) {
		window, err := ResolveWindow("Europe/Paris", now)
		require.NoError(t, err)
		assert.Equal(t, 1, window.LookbackStart.Hour())
		assert.Equal(t, "Europe/Paris", window.Location.String())
	})

	t.Run("unknown timezone fails before any I/O", func(t *testing.T) {
		_, err := ResolveWindow("Not/AZone", now)
		assert.Error(t, err)
	})
}
