package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort        string
	DBPath            string
	CompletionsAPIURL string
	CompletionsAPIKey string
	CompletionsModel  string
	TelegramBotToken  string
	WhatsAppStorePath string
	NatsEmbedded      string
}

func getEnv(key, defaultValue string, printEnv bool) string {
	logger := log.Default()
	value := os.Getenv(key)
	if printEnv {
		logger.Info("Env", "key", key, "value", value)
	}
	if value == "" {
		return defaultValue
	}
	return value
}

func LoadConfig(printEnv bool) (*Config, error) {
	_ = godotenv.Load()

	conf := &Config{
		ServerPort:        getEnv("SERVER_PORT", "3000", printEnv),
		DBPath:            getEnv("DB_PATH", "./output/sqlite/store.db", printEnv),
		CompletionsAPIURL: getEnv("COMPLETIONS_API_URL", "https://api.openai.com/v1", printEnv),
		CompletionsAPIKey: getEnv("COMPLETIONS_API_KEY", "", printEnv),
		CompletionsModel:  getEnv("COMPLETIONS_MODEL", "gpt-4.1-mini", printEnv),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", "", printEnv),
		WhatsAppStorePath: getEnv("WHATSAPP_STORE_PATH", "", printEnv),
		NatsEmbedded:      getEnv("NATS_EMBEDDED", "true", printEnv),
	}

	return conf, nil
}
