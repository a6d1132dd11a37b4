package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/railrakshak/backend/internal/announce"
	"github.com/railrakshak/backend/internal/server/handlers/health"
	"github.com/railrakshak/backend/internal/version"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	config    *Config
	server    *http.Server
	announcer *announce.Announcer
	ready     chan struct{}
	addr      net.Addr
}

type Option func(*Server)

// WithAnnouncer replaces the default stdout announcer.
func WithAnnouncer(a *announce.Announcer) Option {
	return func(s *Server) {
		s.announcer = a
	}
}

func New(config *Config, opts ...Option) (*Server, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	healthH := health.New(version.AppName, nil)

	s := &Server{
		config:    config,
		announcer: announce.New(version.AppName),
		ready:     make(chan struct{}),
		server: &http.Server{
			Handler:           SetupRoutes(healthH),
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Start binds the listener, announces the LAN address once and serves until
// ctx is cancelled.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("server start", "version", version.Short())
	defer slog.Info("server stop")

	listener, err := net.Listen("tcp", s.config.HTTP.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.HTTP.Addr(), err)
	}
	s.addr = listener.Addr()
	slog.Info("server start http", "addr", s.addr.String())

	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server start error", "error", err)
			return err
		}
		slog.Info("http server stopped")
		return nil
	})

	s.announcer.Announce(egCtx, s.Port())
	close(s.ready)

	eg.Go(func() error {
		<-egCtx.Done()
		slog.Info("server shutdown signal")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.Stop(shutdownCtx)
	})

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server shutdown error", "error", err)
		return err
	}
	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to stop http server: %w", err)
	}
	return nil
}

// Ready is closed once the listener is bound and the banner is printed.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

// Addr is the bound address; nil before Ready.
func (s *Server) Addr() net.Addr {
	return s.addr
}

func (s *Server) Port() int {
	if tcp, ok := s.addr.(*net.TCPAddr); ok {
		return tcp.Port
	}
	return s.config.HTTP.Port
}
