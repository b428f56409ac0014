package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"go.uber.org/zap"

	"user-management-api/internal/config"
)

// Server struct holds all server dependencies
type Server struct {
	Config *config.Config
	Logger *zap.Logger
	Gin    *http.Server
}

// New creates a new server instance serving router
func New(cfg *config.Config, l *zap.Logger, router http.Handler) *Server {
	s := &Server{
		Config: cfg,
		Logger: l,
	}
	s.Gin = SetupGinServer(router, s.httpAddress(), l)
	return s
}

// Start listens on the HTTP port and blocks until the server stops.
// A server closed by Shutdown is not an error.
func (s *Server) Start() error {
	lc := net.ListenConfig{}
	lis, err := lc.Listen(context.Background(), "tcp", s.httpAddress())
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.Logger.Info("HTTP server running", zap.String("address", lis.Addr().String()))
	s.Logger.Info("Swagger UI available at", zap.String("url", "http://"+lis.Addr().String()+"/swagger/index.html"))

	if err := s.Gin.Serve(lis); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.Gin.Shutdown(ctx)
}

// httpAddress returns the HTTP server address
func (s *Server) httpAddress() string {
	return ":" + s.Config.App.HTTPPort
}
