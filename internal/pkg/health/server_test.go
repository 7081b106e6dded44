package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

type stubOdds struct {
	sport enums.Sport
	lines []models.OddsLine
	err   error
}

func (s *stubOdds) ListOdds(_ context.Context, sport enums.Sport) ([]models.OddsLine, error) {
	s.sport = sport
	return s.lines, s.err
}

func get(t *testing.T, h http.Handler, path string) (*http.Response, string) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	resp := rec.Result()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

type envelope struct {
	Status  string            `json:"status"`
	Message string            `json:"message"`
	Data    []models.OddsLine `json:"data"`
}

func TestRouter_HealthRoutes(t *testing.T) {
	h := NewRouter(Options{Service: "oddsbot"})

	_, body := get(t, h, "/ping")
	assert.Equal(t, "pong\n", body)
	_, body = get(t, h, "/health")
	assert.Equal(t, "ok\n", body)
	_, body = get(t, h, "/")
	assert.Contains(t, body, "oddsbot is running")

	resp, _ := get(t, h, "/metrics")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "optional routes are off by default")
}

func TestRouter_OddsProxy(t *testing.T) {
	src := &stubOdds{lines: []models.OddsLine{{MatchLabel: "Lakers vs Warriors", HomePrice: "1.80", AwayPrice: "2.00"}}}
	h := NewRouter(Options{Odds: src, DefaultSport: enums.Soccer})

	resp, body := get(t, h, "/odds-proxy?sport=nba")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, "success", env.Status)
	assert.Equal(t, enums.NBA, src.sport)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "Lakers vs Warriors", env.Data[0].MatchLabel)

	_, _ = get(t, h, "/odds-proxy")
	assert.Equal(t, enums.Soccer, src.sport)

	resp, _ = get(t, h, "/odds-proxy?sport=curling")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRouter_OddsProxyError(t *testing.T) {
	h := NewRouter(Options{Odds: &stubOdds{err: errors.New("blocked")}, DefaultSport: enums.NBA})

	resp, body := get(t, h, "/odds-proxy")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var env envelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "blocked", env.Message)
	assert.NotNil(t, env.Data)
	assert.Contains(t, body, `"data":[]`)
}

func TestRouter_TestPushAndWebhook(t *testing.T) {
	var hooked bool
	h := NewRouter(Options{
		TestPush: func(context.Context) string { return "✅ 測試推播完成（1/1）" },
		Webhook:  http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hooked = true }),
	})

	_, body := get(t, h, "/test")
	assert.Equal(t, "✅ 測試推播完成（1/1）\n", body)

	resp, _ := get(t, h, "/webhook")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/webhook", nil))
	assert.True(t, hooked)
}

func TestRouter_CORS(t *testing.T) {
	h := NewRouter(Options{CORSOrigins: []string{"https://dash.example"}})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://dash.example")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://dash.example", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestRun_RequiresTimeoutAndPort(t *testing.T) {
	assert.Error(t, Run(context.Background(), Options{Port: 3000}))
	assert.Error(t, Run(context.Background(), Options{ReadHeaderTimeout: 1}))
}
