package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"asset-service/internal/config"
	internalhttp "asset-service/internal/http"
	"asset-service/internal/repository/postgres"
)

// Service represents the asset management application
type Service struct {
	config *config.Config
	db     *postgres.DB
	server *internalhttp.Server
}

// NewService creates and initializes a new Service instance
// This is a convenience wrapper around InitializeService
func NewService() (*Service, error) {
	return InitializeService()
}

// Start runs the HTTP server until the process receives SIGINT or SIGTERM,
// then shuts down gracefully within the configured timeout.
func (s *Service) Start() error {
	errCh := make(chan error, 1)

	go func() {
		log.Println("Starting asset service on port " + s.config.Server.Port)
		if err := s.server.Start(":" + s.config.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		s.db.Close()
		return err
	case <-quit:
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.config.Server.ShutdownTimeout)
	defer cancel()

	err := s.Shutdown(ctx)
	s.db.Close()
	return err
}

// Shutdown gracefully shuts down the service
func (s *Service) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
