package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(srv.Client(), "test-token", zerolog.Nop())
	c.baseURL = srv.URL
	return c
}

func TestSendMessage(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	err := c.SendMessage(context.Background(), 42, "<b>прогноз</b>")
	require.NoError(t, err)

	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, float64(42), gotPayload["chat_id"])
	assert.Equal(t, "<b>прогноз</b>", gotPayload["text"])
	assert.Equal(t, "HTML", gotPayload["parse_mode"])
}

func TestSendMessageRejected(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "description": "chat not found"})
	})

	err := c.SendMessage(context.Background(), 42, "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestSetWebhook(t *testing.T) {
	var gotPayload map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	})

	require.NoError(t, c.SetWebhook(context.Background(), "https://bot.example.com/webhook/test-token"))
	assert.Equal(t, "https://bot.example.com/webhook/test-token", gotPayload["url"])
}
