// Package server runs the HTTP listener and coordinates graceful shutdown
// of the process and its backing resources.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// CloseFunc releases a backing resource during shutdown.
type CloseFunc func(ctx context.Context) error

type closer struct {
	name string
	fn   CloseFunc
}

// Server owns the HTTP listener and the shutdown sequence. Resources
// registered with OnShutdown are closed in reverse registration order
// once the listener has drained.
type Server struct {
	http            *http.Server
	shutdownTimeout time.Duration
	logger          *slog.Logger
	closers         []closer
}

// New builds a Server listening on the given port.
func New(handler http.Handler, port int, readTimeout, writeTimeout, shutdownTimeout time.Duration, logger *slog.Logger) *Server {
	return &Server{
		http: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      handler,
			ReadTimeout:  readTimeout,
			WriteTimeout: writeTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		logger:          logger,
	}
}

// OnShutdown registers a resource to close after the listener drains.
// Registration must happen before Run.
func (s *Server) OnShutdown(name string, fn CloseFunc) {
	s.closers = append(s.closers, closer{name: name, fn: fn})
}

// Run serves until SIGINT or SIGTERM arrives, then drains in-flight
// requests and closes registered resources. It blocks until shutdown
// completes or the listener fails.
func (s *Server) Run() error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.http.Addr)
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("listen: %w", err)
	case sig := <-signals:
		s.logger.Info("shutdown signal received", "signal", sig.String())
	}

	return s.shutdown()
}

func (s *Server) shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	s.http.SetKeepAlivesEnabled(false)
	s.logger.Info("draining connections", "timeout", s.shutdownTimeout)

	errs := make([]error, 0, len(s.closers)+1)
	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error("listener shutdown", "error", err)
		errs = append(errs, err)
	}

	// Close resources in reverse order so dependents go before dependencies.
	for i := len(s.closers) - 1; i >= 0; i-- {
		c := s.closers[i]
		if err := c.fn(ctx); err != nil {
			s.logger.Error("resource close", "name", c.name, "error", err)
			errs = append(errs, fmt.Errorf("close %s: %w", c.name, err))
			continue
		}
		s.logger.Info("resource closed", "name", c.name)
	}

	if err := errors.Join(errs...); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

// Addr reports the configured listen address.
func (s *Server) Addr() string {
	return s.http.Addr
}
