// Package odds reads bookmaker lines and attaches them to fixtures.
package odds

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/Vodeneev/oddsbot/internal/pkg/config"
	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/fetch"
	"github.com/Vodeneev/oddsbot/internal/pkg/models"
)

// MaxLines caps the number of lines read from one page.
const MaxLines = 5

// ErrFetch marks a fetch or decode failure; it always comes with an empty slice.
var ErrFetch = errors.New("odds: fetch failed")

// Source produces the current lines for a sport. Odds are optional
// annotations: a failing source yields no lines, never a failed report.
type Source interface {
	ListOdds(ctx context.Context, sport enums.Sport) ([]models.OddsLine, error)
	Name() string
}

type Factory func(cfg *config.Config, f fetch.Fetcher) Source

var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{}
)

func Register(name string, f Factory) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		panic("odds: empty name in Register")
	}
	if f == nil {
		panic("odds: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("odds: duplicate registration for " + n)
	}
	registry[n] = f
}

func FactoryByName(name string) (Factory, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := registry[n]
	return f, ok
}

func AvailableNames() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	out := make([]string, 0, len(registry))
	for k := range registry {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New builds the source named by odds.source.
func New(cfg *config.Config, f fetch.Fetcher) (Source, error) {
	factory, ok := FactoryByName(cfg.Odds.Source)
	if !ok {
		return nil, fmt.Errorf("unknown odds source %q (available: %v)", cfg.Odds.Source, AvailableNames())
	}
	return factory(cfg, f), nil
}

func fetchErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFetch, fmt.Sprintf(format, args...))
}

func init() {
	Register("none", func(*config.Config, fetch.Fetcher) Source { return NoneSource{} })
}

// NoneSource disables odds.
type NoneSource struct{}

func (NoneSource) Name() string { return "none" }

func (NoneSource) ListOdds(context.Context, enums.Sport) ([]models.OddsLine, error) {
	return []models.OddsLine{}, nil
}
