// Package translate maps team names to the display locale.
package translate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
)

// Translator is the external translation capability. It may fail.
type Translator interface {
	Translate(ctx context.Context, text, targetLocale string) (string, error)
}

// ErrDisabled is returned by NoneTranslator.
var ErrDisabled = errors.New("translate: translator disabled")

// NoneTranslator always fails, so every name passes through unchanged.
type NoneTranslator struct{}

func (NoneTranslator) Translate(context.Context, string, string) (string, error) {
	return "", ErrDisabled
}

// GoogleTranslator calls the public translate endpoint (client=gtx).
type GoogleTranslator struct {
	endpoint string
	fetcher  fetch.Fetcher
}

func NewGoogleTranslator(endpoint string, f fetch.Fetcher) *GoogleTranslator {
	return &GoogleTranslator{endpoint: endpoint, fetcher: f}
}

func (g *GoogleTranslator) Translate(ctx context.Context, text, targetLocale string) (string, error) {
	u, err := url.Parse(g.endpoint)
	if err != nil {
		return "", fmt.Errorf("translate endpoint: %w", err)
	}
	q := u.Query()
	q.Set("client", "gtx")
	q.Set("sl", "auto")
	q.Set("tl", targetLocale)
	q.Set("dt", "t")
	q.Set("q", text)
	u.RawQuery = q.Encode()

	body, err := g.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return "", fmt.Errorf("translate %q: %w", text, err)
	}
	out, err := parseGTX(body)
	if err != nil {
		return "", fmt.Errorf("translate %q: %w", text, err)
	}
	return out, nil
}

// parseGTX reads [[["translated","source",...],...],...] and joins the
// translated segments.
func parseGTX(body []byte) (string, error) {
	var root []json.RawMessage
	if err := json.Unmarshal(body, &root); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(root) == 0 {
		return "", errors.New("empty response")
	}
	var segments [][]any
	if err := json.Unmarshal(root[0], &segments); err != nil {
		return "", fmt.Errorf("decode segments: %w", err)
	}

	var b strings.Builder
	for _, seg := range segments {
		if len(seg) == 0 {
			continue
		}
		if s, ok := seg[0].(string); ok {
			b.WriteString(s)
		}
	}
	out := strings.TrimSpace(b.String())
	if out == "" {
		return "", errors.New("no translated text")
	}
	return out, nil
}
