package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/cors"

	"github.com/mediar-ai/insights/pkg/ai"
	"github.com/mediar-ai/insights/pkg/bootstrap"
	"github.com/mediar-ai/insights/pkg/config"
	"github.com/mediar-ai/insights/pkg/db"
	"github.com/mediar-ai/insights/pkg/events"
	"github.com/mediar-ai/insights/pkg/gateway"
	"github.com/mediar-ai/insights/pkg/insight"
	"github.com/mediar-ai/insights/pkg/logging"
	"github.com/mediar-ai/insights/pkg/telegram"
)

// invocationBudget caps one pipeline run end to end.
const invocationBudget = 300 * time.Second

func main() {
	baseLogger := log.NewWithOptions(os.Stdout, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		TimeFormat:      time.Kitchen,
	})
	loggers := logging.NewFactory(baseLogger)
	logger := loggers.ForServer("server")

	envs, _ := config.LoadConfig(true)
	logger.Info("Using database path", "path", envs.DBPath)

	store, err := db.NewStore(envs.DBPath, loggers.ForDatabase("store"))
	if err != nil {
		logger.Error("Unable to create or initialize database", "error", err)
		panic(errors.Wrap(err, "Unable to create or initialize database"))
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("Error closing store", "error", err)
		}
	}()
	logger.Info("SQLite database initialized")

	var nc *nats.Conn
	if envs.NatsEmbedded == "true" {
		natsServer, err := bootstrap.StartEmbeddedNATSServer(loggers.ForNATS("nats-server"))
		if err != nil {
			panic(errors.Wrap(err, "Unable to start nats server"))
		}
		defer natsServer.Shutdown()

		nc, err = bootstrap.NewNatsClient()
		if err != nil {
			panic(errors.Wrap(err, "Unable to create nats client"))
		}
		logger.Info("NATS client started")
	}
	publisher := events.NewPublisher(nc, loggers.ForNATS("events"))

	aiService := ai.NewOpenAIService(
		loggers.ForAI("completions"),
		envs.CompletionsAPIKey,
		envs.CompletionsAPIURL,
		envs.CompletionsModel,
	)

	telegramClient := telegram.NewAPIClient(envs.TelegramBotToken, loggers.ForTelegram("bot-api"))

	var waGateway insight.Gateway
	if envs.WhatsAppStorePath != "" {
		wa, err := gateway.NewWhatsApp(loggers.ForWhatsApp("gateway"), envs.WhatsAppStorePath)
		if err != nil {
			// WhatsApp is optional; a missing pairing must not block telegram
			// delivery.
			logger.Warn("WhatsApp gateway unavailable", "error", err)
		} else {
			defer wa.Close()
			waGateway = wa
		}
	}

	pipeline := insight.NewService(
		loggers.ForService("insight-pipeline"),
		store,
		aiService,
		telegramClient,
		waGateway,
		publisher,
	)

	router := bootstrapRouter(logger, pipeline)

	go func() {
		logger.Info("Starting HTTP server", "address", "http://localhost:"+envs.ServerPort)
		err := http.ListenAndServe(":"+envs.ServerPort, router)
		if err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			panic(errors.Wrap(err, "Unable to start server"))
		}
	}()

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, os.Interrupt, syscall.SIGTERM)

	<-signalChan
	logger.Info("Server shutting down...")
}

func bootstrapRouter(logger *log.Logger, pipeline *insight.Service) *chi.Mux {
	router := chi.NewRouter()
	router.Use(cors.New(cors.Options{
		AllowCredentials: true,
		AllowedOrigins:   []string{"*"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "Accept"},
		Debug:            false,
	}).Handler)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Every terminal outcome acknowledges with 200; callers treat any
	// non-200 as worth alerting on, and this surface is best effort.
	router.Post("/api/single-insights", func(w http.ResponseWriter, r *http.Request) {
		var req insight.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Error("Failed to decode request", "error", err)
			respond(w, "Invalid request body")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), invocationBudget)
		defer cancel()

		result := pipeline.Run(ctx, req)
		logger.Info("Pipeline run finished",
			"user_id", req.UserID, "outcome", result.Outcome, "message", result.Message)
		respond(w, result.Message)
	})

	return router
}

func respond(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
