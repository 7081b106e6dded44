package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func blocking(name string, stopped *atomic.Int32) Component {
	return Func{ComponentName: name, Fn: func(ctx context.Context) error {
		<-ctx.Done()
		stopped.Add(1)
		return nil
	}}
}

func TestRun_StopsAllOnCancel(t *testing.T) {
	var stopped atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, []Component{blocking("http", &stopped), blocking("cron", &stopped)}, RunOptions{LogStart: true})
	}()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
		assert.Equal(t, int32(2), stopped.Load())
	case <-time.After(time.Second):
		t.Fatal("components did not stop")
	}
}

func TestRun_FailureCancelsOthers(t *testing.T) {
	var stopped atomic.Int32
	var reported string
	failing := Func{ComponentName: "poller", Fn: func(context.Context) error { return errors.New("unauthorized") }}

	err := Run(context.Background(), []Component{failing, blocking("http", &stopped)}, RunOptions{
		OnError: func(c Component, err error) { reported = c.Name() },
	})

	assert.ErrorContains(t, err, "poller: unauthorized")
	assert.Equal(t, "poller", reported)
	assert.Equal(t, int32(1), stopped.Load())
}

func TestRun_Empty(t *testing.T) {
	assert.NoError(t, Run(context.Background(), nil, RunOptions{}))
}
