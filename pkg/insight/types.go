package insight

import (
	"context"
	"time"

	"github.com/mediar-ai/insights/types"
)

// Request is the invocation payload for one pipeline run. UserID, Timezone
// and TelegramChatID are required; the rest is optional.
type Request struct {
	UserID         string `json:"userId"`
	Timezone       string `json:"timezone"`
	FullName       string `json:"fullName"`
	TelegramChatID string `json:"telegramChatId"`
	Phone          string `json:"phone"`
	Goal           string `json:"goal"`
}

// Outcome is the terminal state of a pipeline run. Every run ends in one of
// these; none of them propagates as a hard error to the caller.
type Outcome string

const (
	OutcomeSuccess          Outcome = "success"
	OutcomeNoData           Outcome = "no_data"
	OutcomeAlreadySent      Outcome = "already_sent"
	OutcomeNothingGenerated Outcome = "nothing_generated"
	OutcomeConfigError      Outcome = "config_error"
	OutcomeError            Outcome = "error"
)

// Result reports how a run ended. Message is the human-readable
// acknowledgment returned to the caller; Insight carries the generated text
// on success.
type Result struct {
	Outcome Outcome
	Message string
	Insight string
}

// Store is the record-store surface the pipeline depends on.
type Store interface {
	InsightExistsSince(ctx context.Context, userID string, since time.Time) (bool, error)
	LatestFocusStates(ctx context.Context, userID string, since time.Time, limit int) ([]types.AttentionSample, error)
	SleepSummariesSince(ctx context.Context, userID string, day string) ([]types.SleepSummary, error)
	TagsAfter(ctx context.Context, userID string, after time.Time) ([]types.Tag, error)
	AppendChat(ctx context.Context, userID string, text string, channel string) error
	LastChannelMessageSince(ctx context.Context, userID string, channel string, since time.Time) (*types.ChatMessage, error)
	CreateInsight(ctx context.Context, userID string, text string, dayBucket string) (bool, error)
}

// Generator produces the insight text from a prompt.
type Generator interface {
	GenerateInsight(ctx context.Context, prompt string) (string, error)
}

// ChatBot is the rich-text chat transport (Telegram).
type ChatBot interface {
	SendMessage(ctx context.Context, chatID string, text string, markdown bool) error
}

// Gateway is the plain-text messaging gateway transport (WhatsApp).
type Gateway interface {
	SendText(ctx context.Context, phone string, text string) error
}
