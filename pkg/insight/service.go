package insight

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mediar-ai/insights/pkg/events"
	"github.com/mediar-ai/insights/types"
)

const (
	// maxAttentionRows caps the attention-stream read to bound memory.
	maxAttentionRows = 10000
	// welcomeWindow is how long a gateway delivery suppresses the welcome
	// template.
	welcomeWindow = 24 * time.Hour
)

// WelcomeTemplate is sent once per rolling day before the first WhatsApp
// insight.
const WelcomeTemplate = "👋 Hey! Your health matter a lot to me 🥦💪🧠. How can I become a better health assistant for you?"

// Service runs the whole pipeline for one user per invocation: resolve
// window, gate, read, downsample, classify, generate, persist, deliver.
// All collaborators are injected; the service holds no process-wide state.
type Service struct {
	logger    *log.Logger
	store     Store
	generator Generator
	chatbot   ChatBot
	gateway   Gateway
	publisher *events.Publisher
	now       func() time.Time
}

func NewService(logger *log.Logger, store Store, generator Generator, chatbot ChatBot, gateway Gateway, publisher *events.Publisher) *Service {
	return &Service{
		logger:    logger,
		store:     store,
		generator: generator,
		chatbot:   chatbot,
		gateway:   gateway,
		publisher: publisher,
		now:       time.Now,
	}
}

// Run executes one pipeline invocation. It never returns a hard error; every
// terminal state maps to an Outcome and the real taxonomy lives in the logs.
func (s *Service) Run(ctx context.Context, req Request) (result Result) {
	logger := s.logger.With("user_id", req.UserID)

	defer func() {
		if r := recover(); r != nil {
			logger.Error("Panic in insight pipeline", "panic", r)
			result = Result{Outcome: OutcomeError, Message: "Error"}
		}
		s.publishResult(req.UserID, result)
	}()

	if req.UserID == "" || req.Timezone == "" || req.TelegramChatID == "" {
		logger.Info("Missing userId, timezone, or telegramChatId")
		return Result{Outcome: OutcomeConfigError, Message: "Missing userId, timezone, or telegramChatId"}
	}

	window, err := ResolveWindow(req.Timezone, s.now())
	if err != nil {
		logger.Error("Failed to resolve time window", "timezone", req.Timezone, "error", err)
		return Result{Outcome: OutcomeConfigError, Message: "Invalid timezone"}
	}

	// Generation gate: nothing else runs when today's insight exists, no
	// reads and no completion spend.
	exists, err := s.store.InsightExistsSince(ctx, req.UserID, window.TodayStart)
	if err != nil {
		logger.Error("Error checking for existing insight", "error", err)
	}
	if exists {
		logger.Info("Insight already sent today")
		return Result{Outcome: OutcomeAlreadySent, Message: "Insight already sent today"}
	}

	samples, sleeps, tags := s.readSources(ctx, logger, req.UserID, window)
	buckets := Downsample(samples)
	logger.Info("Sources read",
		"samples", len(samples), "buckets", len(buckets),
		"sleep_summaries", len(sleeps), "tags", len(tags))

	if len(buckets) == 0 && len(sleeps) == 0 && len(tags) == 0 {
		logger.Info("No tags, attention or sleep data")
		return Result{Outcome: OutcomeNoData, Message: "No tags, attention or sleep data"}
	}

	strategy := Classify(len(buckets), len(sleeps))
	logger.Info("Selected generation strategy", "strategy", strategy.String())

	prompt, err := buildPrompt(strategy, buckets, sleeps, tags, req, window.Location)
	if err != nil {
		logger.Error("Failed to build prompt", "strategy", strategy.String(), "error", err)
		return Result{Outcome: OutcomeError, Message: "Error"}
	}

	text, err := s.generator.GenerateInsight(ctx, prompt)
	if err != nil || text == "" {
		logger.Error("No insights generated", "error", err)
		return Result{Outcome: OutcomeNothingGenerated, Message: "No insights generated"}
	}
	logger.Info("Generated insight", "length", len(text))

	s.dispatch(ctx, logger, req, window, text)

	created, err := s.store.CreateInsight(ctx, req.UserID, text, window.DayBucket)
	if err != nil {
		logger.Error("Error persisting insight", "error", err)
	} else if !created {
		// A concurrent run won the conditional insert.
		logger.Info("Insight row already created for today")
		return Result{Outcome: OutcomeAlreadySent, Message: "Insight already sent today", Insight: text}
	}

	return Result{Outcome: OutcomeSuccess, Message: "Success", Insight: text}
}

// readSources queries the three readers concurrently. A store fault in any
// reader downgrades to an empty result; the pipeline degrades rather than
// aborting.
func (s *Service) readSources(ctx context.Context, logger *log.Logger, userID string, window Window) ([]types.AttentionSample, []types.SleepSummary, []types.Tag) {
	var (
		samples []types.AttentionSample
		sleeps  []types.SleepSummary
		tags    []types.Tag
		wg      sync.WaitGroup
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		var err error
		samples, err = s.store.LatestFocusStates(ctx, userID, window.LookbackStart, maxAttentionRows)
		if err != nil {
			logger.Error("Error reading attention stream", "error", err)
			samples = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		// Sleep summaries key on calendar day, not instant.
		sleeps, err = s.store.SleepSummariesSince(ctx, userID, window.LookbackDay)
		if err != nil {
			logger.Error("Error reading sleep summaries", "error", err)
			sleeps = nil
		}
	}()
	go func() {
		defer wg.Done()
		var err error
		// Tags use a strict "after" bound, unlike the other readers.
		tags, err = s.store.TagsAfter(ctx, userID, window.LookbackStart)
		if err != nil {
			logger.Error("Error reading tags", "error", err)
			tags = nil
		}
	}()
	wg.Wait()

	return samples, sleeps, tags
}

// dispatch persists the text into the conversation log and attempts each
// configured channel independently. A channel failure never blocks the other
// channel or the insight row.
func (s *Service) dispatch(ctx context.Context, logger *log.Logger, req Request, window Window, text string) {
	if err := s.store.AppendChat(ctx, req.UserID, text, ""); err != nil {
		logger.Error("Error appending insight to chat log", "error", err)
	}

	if req.Phone != "" && s.gateway != nil {
		s.deliverGateway(ctx, logger, req, window, text)
	}

	if s.chatbot != nil {
		if err := s.chatbot.SendMessage(ctx, req.TelegramChatID, text, true); err != nil {
			logger.Error("Error sending telegram message", "chat_id", req.TelegramChatID, "error", err)
		} else {
			logger.Info("Insight sent to telegram", "chat_id", req.TelegramChatID)
			if err := s.store.AppendChat(ctx, req.UserID, text, types.ChannelTelegram); err != nil {
				logger.Error("Error recording telegram delivery", "error", err)
			}
		}
	}
}

// deliverGateway applies the 24-hour welcome gate, then sends the insight.
func (s *Service) deliverGateway(ctx context.Context, logger *log.Logger, req Request, window Window, text string) {
	last, err := s.store.LastChannelMessageSince(ctx, req.UserID, types.ChannelWhatsApp, window.TodayStart)
	if err != nil {
		logger.Error("Error fetching last whatsapp message", "error", err)
		return
	}

	if last == nil || s.now().Sub(last.CreatedAt) > welcomeWindow {
		if err := s.gateway.SendText(ctx, req.Phone, WelcomeTemplate); err != nil {
			logger.Error("Error sending whatsapp welcome message", "error", err)
		}
	}

	if err := s.gateway.SendText(ctx, req.Phone, text); err != nil {
		logger.Error("Error sending whatsapp message", "error", err)
		return
	}
	logger.Info("Insight sent to whatsapp")

	if err := s.store.AppendChat(ctx, req.UserID, text, types.ChannelWhatsApp); err != nil {
		logger.Error("Error recording whatsapp delivery", "error", err)
	}
}

func (s *Service) publishResult(userID string, result Result) {
	subject := events.SubjectInsightSkipped
	if result.Outcome == OutcomeSuccess {
		subject = events.SubjectInsightGenerated
	}
	s.publisher.Publish(subject, events.RunEvent{
		UserID:  userID,
		Outcome: string(result.Outcome),
		Message: result.Message,
	})
}
