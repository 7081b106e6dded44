// Package runner runs the long-lived parts of the service side by side.
package runner

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Component is one long-lived part of the service (HTTP server, poller,
// scheduler). Run blocks until ctx is done or the component fails.
type Component interface {
	Name() string
	Run(ctx context.Context) error
}

// Func adapts a function to Component.
type Func struct {
	ComponentName string
	Fn            func(ctx context.Context) error
}

func (f Func) Name() string { return f.ComponentName }

func (f Func) Run(ctx context.Context) error { return f.Fn(ctx) }

// RunOptions configures how components are run
type RunOptions struct {
	// LogStart logs when each component starts
	LogStart bool
	// OnError is called when a component returns an error. If nil, errors are logged.
	OnError func(c Component, err error)
}

// Run starts all components in parallel and waits for them. The first
// failure cancels the others and is returned.
func Run(ctx context.Context, components []Component, opts RunOptions) error {
	if len(components) == 0 {
		return nil
	}

	// Default error handler logs errors
	onError := opts.OnError
	if onError == nil {
		onError = func(c Component, err error) {
			slog.Error("Component failed", "component", c.Name(), "error", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range components {
		c := c
		g.Go(func() error {
			if opts.LogStart {
				slog.Info("Starting component", "component", c.Name())
			}
			err := c.Run(gctx)
			if err != nil && ctx.Err() == nil {
				// Error occurred but context is still valid
				onError(c, err)
				return fmt.Errorf("%s: %w", c.Name(), err)
			}
			slog.Info("Component stopped", "component", c.Name())
			return nil
		})
	}
	return g.Wait()
}
