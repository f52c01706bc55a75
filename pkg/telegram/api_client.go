package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mediar-ai/insights/types"
)

// APIClient talks to the Telegram Bot API directly over HTTP.
type APIClient struct {
	Token  string
	Client *http.Client
	Logger interface {
		Info(msg interface{}, keyvals ...interface{})
		Error(msg interface{}, keyvals ...interface{})
		Debug(msg interface{}, keyvals ...interface{})
	}
}

func NewAPIClient(token string, logger interface {
	Info(msg interface{}, keyvals ...interface{})
	Error(msg interface{}, keyvals ...interface{})
	Debug(msg interface{}, keyvals ...interface{})
}) *APIClient {
	return &APIClient{
		Token:  token,
		Client: &http.Client{Timeout: 30 * time.Second},
		Logger: logger,
	}
}

// GetMe verifies the bot token against the API.
func (c *APIClient) GetMe(ctx context.Context) (map[string]interface{}, error) {
	url := fmt.Sprintf("%s/bot%s/getMe", types.TelegramAPIBase, c.Token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GetMe request: %w", err)
	}

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send GetMe request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GetMe failed with status code: %d", resp.StatusCode)
	}

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode GetMe response: %w", err)
	}

	return result, nil
}

// SendMessage sends text to a chat. When markdown is set the message is
// rendered with Telegram's Markdown parse mode.
func (c *APIClient) SendMessage(ctx context.Context, chatID string, message string, markdown bool) error {
	url := fmt.Sprintf("%s/bot%s/sendMessage", types.TelegramAPIBase, c.Token)

	requestBody := map[string]interface{}{
		"chat_id": chatID,
		"text":    message,
	}
	if markdown {
		requestBody["parse_mode"] = "Markdown"
	}

	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return fmt.Errorf("failed to marshal SendMessage request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return fmt.Errorf("failed to create SendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.Client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send SendMessage request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("SendMessage failed with status code: %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	c.Logger.Debug("Telegram message sent", "chat_id", chatID)
	return nil
}
