package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// ShutdownSignals trigger a graceful shutdown of the API server
var ShutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM}

// WithSignal derives a context that is done once one of ShutdownSignals arrives.
// The returned stop func unregisters the handler and cancels the context.
func WithSignal(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, ShutdownSignals...)
}
