// Package fixtures lists today's games for a sport.
package fixtures

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

// MaxFixtures caps how many games one report shows.
const MaxFixtures = 5

// ErrFetch marks a fetch or parse failure. Sources return it together with
// an empty slice; callers log it and render without fixtures.
var ErrFetch = errors.New("fixtures: fetch failed")

// Source produces the current game list for a sport.
type Source interface {
	ListFixtures(ctx context.Context, sport enums.Sport) ([]models.Fixture, error)
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
		panic("fixtures: empty name in Register")
	}
	if f == nil {
		panic("fixtures: nil factory in Register for " + n)
	}

	registryMu.Lock()
	defer registryMu.Unlock()
	if _, exists := registry[n]; exists {
		panic("fixtures: duplicate registration for " + n)
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

// New builds the source named by fixtures.source.
func New(cfg *config.Config, f fetch.Fetcher) (Source, error) {
	factory, ok := FactoryByName(cfg.Fixtures.Source)
	if !ok {
		return nil, fmt.Errorf("unknown fixture source %q (available: %v)", cfg.Fixtures.Source, AvailableNames())
	}
	return factory(cfg, f), nil
}

func fetchErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrFetch, fmt.Sprintf(format, args...))
}
