package types

import (
	"encoding/json"
	"time"
)

const (
	// ChannelTelegram labels chat-log rows delivered through the Telegram bot.
	ChannelTelegram = "telegram"
	// ChannelWhatsApp labels chat-log rows delivered through the WhatsApp gateway.
	ChannelWhatsApp = "whatsapp"

	// FocusLabel marks attention-stream rows in the states table.
	FocusLabel = "focus"

	// TelegramAPIBase is the base url for the telegram bot api.
	TelegramAPIBase = "https://api.telegram.org"
)

// AttentionSample is one timestamped confidence score from the
// focus-tracking stream.
type AttentionSample struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	Probability float64   `db:"probability" json:"probability"`
	Label       string    `db:"label" json:"label,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AttentionBucket is the averaged summary of up to one window of
// consecutive eligible samples. Never persisted.
type AttentionBucket struct {
	CreatedAt   time.Time `json:"created_at"`
	Probability float64   `json:"probability"`
}

// SleepSummary is a once-per-day recovery record keyed by a calendar day
// string. Raw carries the full payload for prompt serialization.
type SleepSummary struct {
	UserID     string          `db:"user_id" json:"-"`
	Day        string          `db:"day" json:"day"`
	AverageHRV float64         `json:"average_hrv,omitempty"`
	Raw        json.RawMessage `db:"oura" json:"data,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}

// Tag is a free-text, user-authored annotation.
type Tag struct {
	ID        string    `db:"id" json:"-"`
	UserID    string    `db:"user_id" json:"-"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ChatMessage is one row of the channel-agnostic conversation log. Rows with
// a non-empty Channel double as delivery records.
type ChatMessage struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	Channel   string    `db:"channel"`
	CreatedAt time.Time `db:"created_at"`
}

// Insight is the single generated-text artifact produced per user per local
// day. DayBucket is the user-local calendar date used by the uniqueness
// constraint.
type Insight struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	Text      string    `db:"text"`
	DayBucket string    `db:"day_bucket"`
	CreatedAt time.Time `db:"created_at"`
}
