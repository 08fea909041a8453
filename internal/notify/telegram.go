package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNoRecipient reports that the customer has no usable phone number.
var ErrNoRecipient = errors.New("notify: recipient phone is missing")

// Transport delivers a rendered message to a recipient identified by a
// canonical phone number.
type Transport interface {
	SendMessage(ctx context.Context, recipientID, text string) error
}

// TelegramClientDeps bundles the dependencies required by the Telegram
// transport.
type TelegramClientDeps struct {
	BotToken   string
	APIBaseURL string
	HTTPClient *http.Client
	Timeout    time.Duration
}

// TelegramClient sends messages through the Telegram bot API. The chat id is
// the customer's canonical phone number.
type TelegramClient struct {
	botToken string
	baseURL  string
	client   *http.Client
}

// NewTelegramClient constructs a Telegram transport.
func NewTelegramClient(deps TelegramClientDeps) (*TelegramClient, error) {
	if strings.TrimSpace(deps.BotToken) == "" {
		return nil, errors.New("telegram: bot token is required")
	}
	baseURL := strings.TrimRight(deps.APIBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.telegram.org"
	}
	client := deps.HTTPClient
	if client == nil {
		timeout := deps.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		client = &http.Client{Timeout: timeout}
	}
	return &TelegramClient{botToken: deps.BotToken, baseURL: baseURL, client: client}, nil
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// SendMessage implements Transport.
func (c *TelegramClient) SendMessage(ctx context.Context, recipientID, text string) error {
	if recipientID == "" {
		return ErrNoRecipient
	}

	body, err := json.Marshal(sendMessageRequest{
		ChatID:    recipientID,
		Text:      text,
		ParseMode: "HTML",
	})
	if err != nil {
		return fmt.Errorf("telegram: marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: send message: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	var payload sendMessageResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&payload); err != nil {
		return fmt.Errorf("telegram: decode response (http %d): %w", resp.StatusCode, err)
	}
	if !payload.OK {
		return fmt.Errorf("telegram: api rejected message (http %d): %s", resp.StatusCode, payload.Description)
	}
	return nil
}
