package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/SergeyBogomolovv/order-orchestrator/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type starterFunc func(ctx context.Context) error

func (f starterFunc) Start(ctx context.Context) error { return f(ctx) }

func newTestApp(t *testing.T) *application {
	t.Helper()
	cfg := config.Config{
		Http: config.Http{Host: "127.0.0.1", Port: "0"},
		Cors: config.CORS{AllowedOrigins: []string{"http://localhost"}},
	}
	return New(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func TestApplication_StartersOutliveStart(t *testing.T) {
	a := newTestApp(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var starterCtx context.Context
	a.SetStarters(starterFunc(func(ctx context.Context) error {
		starterCtx = ctx
		return nil
	}))

	require.NoError(t, a.Start(ctx))
	t.Cleanup(func() { assert.NoError(t, a.Stop()) })

	require.NotNil(t, starterCtx)
	assert.NoError(t, starterCtx.Err())

	cancel()
	<-starterCtx.Done()
	assert.ErrorIs(t, starterCtx.Err(), context.Canceled)
}

func TestApplication_StarterFailure(t *testing.T) {
	a := newTestApp(t)
	boom := errors.New("warm-up failed")
	a.SetStarters(
		starterFunc(func(context.Context) error { return nil }),
		starterFunc(func(context.Context) error { return boom }),
	)

	err := a.Start(context.Background())
	assert.ErrorIs(t, err, boom)
}
