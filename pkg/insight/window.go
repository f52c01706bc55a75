package insight

import (
	"fmt"
	"time"
)

const (
	lookbackDays = 3
	lookbackHour = 1
)

// Window holds the two time boundaries of one run. TodayStart is the start
// of the user's current calendar day and gates generation; LookbackStart is
// three days back anchored to 01:00 local so the read window covers the full
// prior night. The two are deliberately distinct.
type Window struct {
	TodayStart    time.Time
	LookbackStart time.Time
	DayBucket     string
	LookbackDay   string
	Location      *time.Location
}

// ResolveWindow computes the boundaries for a user's IANA timezone. An
// unknown timezone fails the run before any I/O.
func ResolveWindow(timezone string, now time.Time) (Window, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return Window{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}

	local := now.In(loc)
	todayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)

	back := local.AddDate(0, 0, -lookbackDays)
	lookbackStart := time.Date(back.Year(), back.Month(), back.Day(), lookbackHour, 0, 0, 0, loc)

	return Window{
		TodayStart:    todayStart,
		LookbackStart: lookbackStart,
		DayBucket:     local.Format("2006-01-02"),
		LookbackDay:   lookbackStart.Format("2006-01-02"),
		Location:      loc,
	}, nil
}
