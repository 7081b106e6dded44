package health

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/Vodeneev/oddsbot/internal/pkg/enums"
	"github.com/Vodeneev/oddsbot/internal/pkg/health/handlers"
)

const shutdownTimeout = 5 * time.Second

// Options configures the HTTP surface. Nil handlers leave their route out.
type Options struct {
	Service           string
	Port              int
	ReadHeaderTimeout time.Duration
	CORSOrigins       []string

	Metrics      http.Handler
	Webhook      http.Handler
	TestPush     func(ctx context.Context) string
	Odds         handlers.OddsLister
	DefaultSport enums.Sport
}

// NewRouter builds the routes wrapped in CORS.
func NewRouter(opts Options) http.Handler {
	router := mux.NewRouter()

	// Health endpoints
	router.HandleFunc("/", handlers.HandleRoot(opts.Service)).Methods(http.MethodGet, http.MethodHead)
	router.HandleFunc("/ping", handlers.HandlePing).Methods(http.MethodGet)
	router.HandleFunc("/health", handlers.HandleHealth).Methods(http.MethodGet)

	if opts.Metrics != nil {
		router.Handle("/metrics", opts.Metrics).Methods(http.MethodGet)
	}
	if opts.Webhook != nil {
		router.Handle("/webhook", opts.Webhook).Methods(http.MethodPost)
	}
	if opts.TestPush != nil {
		router.HandleFunc("/test", handlers.HandleTestPush(opts.TestPush)).Methods(http.MethodGet)
	}
	if opts.Odds != nil {
		router.HandleFunc("/odds-proxy", handlers.HandleOddsProxy(opts.Odds, opts.DefaultSport)).Methods(http.MethodGet)
	}

	origins := opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	})
	return c.Handler(router)
}

// Run serves until ctx is done, then shuts down gracefully.
func Run(ctx context.Context, opts Options) error {
	if opts.ReadHeaderTimeout <= 0 {
		return errors.New("read_header_timeout must be specified in config")
	}
	addr, err := AddrFor(opts.Port)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(opts),
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Health server listening", "service", opts.Service, "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("health server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("health server shutdown: %w", err)
	}
	slog.Info("Health server stopped", "service", opts.Service)
	return nil
}

func AddrFor(port int) (string, error) {
	if port <= 0 {
		return "", errors.New("port must be greater than 0")
	}
	return fmt.Sprintf(":%d", port), nil
}
