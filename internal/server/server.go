package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mawaqit-dev/mawaqit/internal/cache"
	"github.com/rs/zerolog"
)

// Server wraps the HTTP server with its configuration and logger.
type Server struct {
	cfg    *Config
	logger zerolog.Logger
	http   *http.Server
}

// New builds a Server from configuration. The schedule cache is best
// effort: if it cannot be created the server runs without one.
func New(cfg *Config, logger zerolog.Logger) *Server {
	var c *cache.Cache
	if cfg.CacheDir != "" {
		var err error
		c, err = cache.New(cfg.CacheDir)
		if err != nil {
			logger.Warn().Err(err).Str("dir", cfg.CacheDir).Msg("schedule cache disabled")
			c = nil
		}
	}

	handlers := NewHandlers(cfg, c, logger)

	return &Server{
		cfg:    cfg,
		logger: logger,
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      SetupRoutes(handlers, logger),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second, // year calendars take a moment
			IdleTimeout:  120 * time.Second,
		},
	}
}

// Run starts the server and blocks until SIGINT/SIGTERM, then shuts down
// gracefully with a 10 second drain window.
func (s *Server) Run() error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("env", s.cfg.Env).Msg("server listening")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info().Str("signal", sig.String()).Msg("shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}

	s.logger.Info().Msg("server stopped")
	return nil
}
