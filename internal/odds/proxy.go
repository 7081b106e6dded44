package odds

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

const StatusSuccess = "success"

func init() {
	Register("proxy", func(cfg *config.Config, _ fetch.Fetcher) Source {
		// The proxy serves JSON, so it never goes through the browser fetcher.
		return NewProxySource(cfg.Odds.ProxyURL,
			fetch.NewHTTPFetcher(cfg.Fetch.UserAgent, nil, cfg.HTTP.Timeout, 0))
	})
}

// Envelope is the odds proxy response body. The HTTP server re-serves
// odds in the same shape on /odds-proxy.
type Envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message,omitempty"`
	Data    []models.OddsLine `json:"data"`
}

type proxyLine struct {
	Match    string          `json:"match"`
	Time     string          `json:"time"`
	HomeOdds json.RawMessage `json:"home_odds"`
	AwayOdds json.RawMessage `json:"away_odds"`
}

type proxyEnvelope struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    []proxyLine `json:"data"`
}

// ProxySource reads lines from the JSON odds proxy.
type ProxySource struct {
	url     string
	fetcher fetch.Fetcher
}

func NewProxySource(proxyURL string, f fetch.Fetcher) *ProxySource {
	return &ProxySource{url: proxyURL, fetcher: f}
}

func (s *ProxySource) Name() string { return "proxy" }

func (s *ProxySource) ListOdds(ctx context.Context, sport enums.Sport) ([]models.OddsLine, error) {
	u, err := url.Parse(s.url)
	if err != nil {
		return []models.OddsLine{}, fetchErr("proxy url %q: %v", s.url, err)
	}
	q := u.Query()
	q.Set("sport", sport.String())
	u.RawQuery = q.Encode()

	body, err := s.fetcher.Fetch(ctx, u.String())
	if err != nil {
		return []models.OddsLine{}, fetchErr("%s: %v", u, err)
	}
	return DecodeEnvelope(body)
}

// DecodeEnvelope parses a proxy body. Prices may be JSON strings or numbers.
func DecodeEnvelope(body []byte) ([]models.OddsLine, error) {
	var env proxyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return []models.OddsLine{}, fetchErr("decode proxy body: %v", err)
	}
	if env.Status != StatusSuccess {
		return []models.OddsLine{}, fetchErr("proxy status %q: %s", env.Status, env.Message)
	}

	out := make([]models.OddsLine, 0, len(env.Data))
	for _, l := range env.Data {
		out = append(out, models.OddsLine{
			MatchLabel: strings.TrimSpace(l.Match),
			Time:       strings.TrimSpace(l.Time),
			HomePrice:  NormalizePrice(rawText(l.HomeOdds)),
			AwayPrice:  NormalizePrice(rawText(l.AwayOdds)),
		})
	}
	return out, nil
}

func rawText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
