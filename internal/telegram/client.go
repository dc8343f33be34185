// Package telegram is the outbound delivery collaborator: it pushes
// formatted report strings to chats through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"
)

const defaultBaseURL = "https://api.telegram.org"

// Client sends messages on behalf of one bot token. Outbound calls go
// through a circuit breaker so a dead Bot API does not pile up hanging
// reminder deliveries.
type Client struct {
	http    *http.Client
	token   string
	baseURL string
	circuit *gobreaker.CircuitBreaker
	log     zerolog.Logger
}

func NewClient(httpClient *http.Client, token string, log zerolog.Logger) *Client {
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "telegram",
		MaxRequests: 5,
		Interval:    1 * time.Minute,
		Timeout:     2 * time.Minute,
	})

	return &Client{
		http:    httpClient,
		token:   token,
		baseURL: defaultBaseURL,
		circuit: cb,
		log:     log.With().Str("component", "telegram").Logger(),
	}
}

// SendMessage delivers an HTML-formatted text to a chat.
func (c *Client) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload := map[string]any{
		"chat_id":    chatID,
		"text":       text,
		"parse_mode": "HTML",
	}
	return c.call(ctx, "sendMessage", payload)
}

// SetWebhook points the Bot API at the given public webhook URL.
func (c *Client) SetWebhook(ctx context.Context, url string) error {
	return c.call(ctx, "setWebhook", map[string]any{"url": url})
}

func (c *Client) call(ctx context.Context, method string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", method, err)
	}

	url := fmt.Sprintf("%s/bot%s/%s", c.baseURL, c.token, method)

	_, err = c.circuit.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		var result struct {
			OK          bool   `json:"ok"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode %s response: %w", method, err)
		}
		if !result.OK {
			return nil, fmt.Errorf("%s rejected: %s", method, result.Description)
		}
		return nil, nil
	})
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Msg("bot api call failed")
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	return nil
}
