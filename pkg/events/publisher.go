package events

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/nats-io/nats.go"

	"github.com/mediar-ai/insights/pkg/helpers"
)

const (
	SubjectInsightGenerated = "insights.generated"
	SubjectInsightSkipped   = "insights.skipped"
)

// RunEvent is published after every pipeline run for operator-facing
// consumers. Delivery is best effort and never affects the run outcome.
type RunEvent struct {
	UserID    string    `json:"user_id"`
	Outcome   string    `json:"outcome"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher publishes pipeline events to NATS. A nil connection disables
// publishing.
type Publisher struct {
	nc     *nats.Conn
	logger *log.Logger
}

func NewPublisher(nc *nats.Conn, logger *log.Logger) *Publisher {
	return &Publisher{nc: nc, logger: logger}
}

func (p *Publisher) Publish(subject string, event RunEvent) {
	if p == nil || p.nc == nil {
		return
	}
	event.Timestamp = time.Now().UTC()
	if err := helpers.NatsPublish(p.nc, subject, event); err != nil {
		p.logger.Error("Failed to publish event", "subject", subject, "error", err)
		return
	}
	p.logger.Debug("Published event", "subject", subject, "outcome", event.Outcome)
}
