package server

import (
	"context"
	"net/http"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-management-api/internal/config"
)

func TestNew(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{HTTPPort: "8081"}}

	s := New(cfg, zaptest.NewLogger(t), http.NotFoundHandler())

	require.NotNil(t, s.Gin)
	assert.Equal(t, ":8081", s.Gin.Addr)
	assert.Equal(t, 2*time.Second, s.Gin.ReadHeaderTimeout)
	assert.Equal(t, 120*time.Second, s.Gin.IdleTimeout)
}

func TestStartAndShutdown(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{HTTPPort: "0"}}
	s := New(cfg, zaptest.NewLogger(t), http.NotFoundHandler())

	done := make(chan error, 1)
	go func() { done <- s.Start() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestWithSignal(t *testing.T) {
	parent, cancelParent := context.WithCancel(context.Background())
	ctx, stop := WithSignal(parent)
	defer stop()

	cancelParent()

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled with parent")
	}
}

func TestWithSignal_SIGTERM(t *testing.T) {
	ctx, stop := WithSignal(context.Background())
	defer stop()

	require.NoError(t, syscall.Kill(os.Getpid(), syscall.SIGTERM))

	select {
	case <-ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("context not canceled on SIGTERM")
	}
}

func TestWithSignal_StopCancels(t *testing.T) {
	ctx, stop := WithSignal(context.Background())
	stop()

	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
