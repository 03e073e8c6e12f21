package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/hogwarts/school/internal/bootstrap"
	"github.com/hogwarts/school/internal/config"
	"github.com/hogwarts/school/internal/pkg/helpers"
)

const (
	defaultIOTimeout = 10 * time.Second
	idleTimeout      = 2 * time.Minute
	shutdownTimeout  = 10 * time.Second
)

// Server holds the state for the HTTP server.
type Server struct {
	config *config.Config
	router *gin.Engine
	store  *bootstrap.Store
	logger zerolog.Logger
	http   *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer(ctx context.Context, configPath string) (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	store, err := bootstrap.SetupStore(ctx, cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup store: %w", err)
	}

	deps := bootstrap.BuildDependencies(cfg, store, lgr)

	return &Server{
		config: cfg,
		router: bootstrap.SetupRouter(cfg, deps),
		store:  store,
		logger: lgr,
	}, nil
}

// Handler exposes the configured router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves HTTP until SIGINT/SIGTERM or a listener failure, then shuts down.
func (s *Server) Run() error {
	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  helpers.ParseDuration(s.config.Server.ReadTimeout, defaultIOTimeout),
		WriteTimeout: helpers.ParseDuration(s.config.Server.WriteTimeout, defaultIOTimeout),
		IdleTimeout:  idleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	listenErr := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Str("driver", s.store.Driver).Msg("HTTP server listening")
		listenErr <- s.http.ListenAndServe()
	}()

	var runErr error
	select {
	case err := <-listenErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = fmt.Errorf("error starting server: %w", err)
		}
	case <-ctx.Done():
		s.logger.Info().Msg("Shutdown signal received")
	}

	return errors.Join(runErr, s.Shutdown(context.Background()))
}

// Shutdown stops accepting requests, drains in-flight ones and closes the store.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if s.http != nil {
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			errs = append(errs, err)
		}
	}

	if s.store != nil && s.store.Close != nil {
		if err := s.store.Close(); err != nil {
			s.logger.Error().Err(err).Str("driver", s.store.Driver).Msg("Store close error")
			errs = append(errs, err)
		}
	}

	s.logger.Info().Msg("Server stopped")
	return errors.Join(errs...)
}
