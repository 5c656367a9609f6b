package httpapi

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/xvierd/prodvana-cli/internal/ports"
)

const shutdownTimeout = 10 * time.Second

// Server serves the API until its context ends.
type Server struct {
	srv    *http.Server
	logger *log.Logger

	mu      sync.Mutex
	running bool
}

// Ensure Server implements ports.Server.
var _ ports.Server = (*Server)(nil)

// NewServer creates an API server listening on addr.
func NewServer(app ports.AppProvider, addr, version string, logger *log.Logger) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(app, version, logger),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// Start listens and serves, shutting down gracefully when ctx ends.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Start on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.setRunning(true)
	defer s.setRunning(false)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", ln.Addr().String())
		errCh <- s.srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		return s.Stop()
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

// Stop gracefully shuts down the server.
func (s *Server) Stop() error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return s.srv.Shutdown(shutdownCtx)
}

// IsRunning returns true if the server is active.
func (s *Server) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Server) setRunning(v bool) {
	s.mu.Lock()
	s.running = v
	s.mu.Unlock()
}
