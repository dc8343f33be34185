// Package yandex fetches and parses the provider's rendered HTML pages.
package yandex

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/velikanov/weatherbot/internal/locale"
	"github.com/velikanov/weatherbot/internal/weather"
)

const (
	baseRU = "https://yandex.ru/pogoda"
	baseEN = "https://yandex.com/pogoda"
)

// Client fetches weather pages for resolved city slugs. One GET per call,
// no retries; a slow upstream response just delays the one request that
// triggered it.
type Client struct {
	http *http.Client
	log  zerolog.Logger
}

func NewClient(httpClient *http.Client, log zerolog.Logger) *Client {
	return &Client{
		http: httpClient,
		log:  log.With().Str("component", "yandex").Logger(),
	}
}

// FetchCurrent returns the markup of the city's main weather page.
func (c *Client) FetchCurrent(ctx context.Context, slug string, lang locale.Lang) (string, error) {
	return c.get(ctx, pageURL(slug, lang, false))
}

// FetchDetails returns the markup of the extended forecast page used for
// today/tomorrow/week/daily reports.
func (c *Client) FetchDetails(ctx context.Context, slug string, lang locale.Lang) (string, error) {
	return c.get(ctx, pageURL(slug, lang, true))
}

func pageURL(slug string, lang locale.Lang, details bool) string {
	base := baseEN
	if lang == locale.RU {
		base = baseRU
	}
	u := base + "/" + slug
	if details {
		u += "/details"
	}
	return u
}

func (c *Client) get(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", weather.ErrFetch, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("url", url).Msg("provider request failed")
		return "", fmt.Errorf("%w: %v", weather.ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Warn().Int("status", resp.StatusCode).Str("url", url).Msg("provider returned non-2xx")
		return "", fmt.Errorf("%w: status %d", weather.ErrFetch, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", weather.ErrFetch, err)
	}
	return string(body), nil
}
