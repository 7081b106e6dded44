// Package fetch downloads scoreboard and odds pages.
package fetch

import (
	"context"
	"time"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
)

const (
	defaultUserAgent = "Mozilla/5.0"
	defaultTimeout   = 10 * time.Second
)

// Fetcher returns the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// New picks the headless-browser fetcher when fetch.render_js is set and
// the plain HTTP fetcher otherwise.
func New(cfg config.FetchConfig, timeout time.Duration) Fetcher {
	if cfg.RenderJS {
		return NewBrowserFetcher(cfg.UserAgent, timeout)
	}
	return NewHTTPFetcher(cfg.UserAgent, cfg.Headers, timeout, cfg.RequestsPerSecond)
}
