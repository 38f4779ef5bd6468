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

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appServices "github.com/yigit/devcamper/internal/app/services"
	"github.com/yigit/devcamper/internal/bootstrap"
	"github.com/yigit/devcamper/internal/config"
	"github.com/yigit/devcamper/internal/db"
	"github.com/yigit/devcamper/internal/pkg/tracing"
)

// Server holds the state for the HTTP server.
type Server struct {
	config   *config.Config
	router   *gin.Engine
	mongo    *db.MongoDB
	services *appServices.Services
	tracing  tracing.ShutdownFunc
	logger   zerolog.Logger
	http     *http.Server
}

// NewServer creates and initializes a new server instance by calling bootstrap functions.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load config or setup logger: %w", err)
	}

	shutdownTracing, err := bootstrap.SetupTracing(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup tracing: %w", err)
	}

	repos, mongoDB, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	deps, err := bootstrap.BuildDependencies(cfg, repos, lgr)
	if err != nil {
		if mongoDB != nil {
			_ = mongoDB.Close(context.Background())
		}
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("failed to setup dependencies: %w", err)
	}

	return &Server{
		config:   cfg,
		router:   bootstrap.SetupRouter(cfg, deps, lgr),
		mongo:    mongoDB,
		services: deps.Services,
		tracing:  shutdownTracing,
		logger:   lgr,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown.
func (s *Server) Run() error {
	s.logger.Info().Str("port", s.config.Server.Port).Str("mode", s.config.Server.Mode).Msg("Starting server...")

	s.http = &http.Server{
		Addr:         ":" + s.config.Server.Port,
		Handler:      s.router,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("addr", s.http.Addr).Msg("HTTP server listening")
		serverErrors <- s.http.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error starting server: %w", err)
		}
	case sig := <-osSignals:
		s.logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown...")
	}

	return s.Shutdown(context.Background())
}

// Shutdown gracefully stops the server, waits for pending average cost
// recalculations and closes resources.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.Server.ShutdownTimeout)
	defer cancel()

	shutdownError := false

	if s.http != nil {
		s.logger.Info().Msg("Shutting down HTTP server...")
		if err := s.http.Shutdown(ctx); err != nil {
			s.logger.Error().Err(err).Msg("HTTP server shutdown error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("HTTP server gracefully stopped.")
		}
	}

	if s.services != nil {
		drained := make(chan struct{})
		go func() {
			s.services.AverageCost.Close()
			close(drained)
		}()
		select {
		case <-drained:
		case <-ctx.Done():
			s.logger.Warn().Msg("Pending average cost recalculations abandoned")
			shutdownError = true
		}
	}

	if s.mongo != nil {
		s.logger.Info().Msg("Closing database connection...")
		if err := s.mongo.Close(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Database disconnect error")
			shutdownError = true
		} else {
			s.logger.Info().Msg("Database connection closed.")
		}
	}

	if s.tracing != nil {
		if err := s.tracing(ctx); err != nil {
			s.logger.Error().Err(err).Msg("Tracer shutdown error")
			shutdownError = true
		}
	}

	s.logger.Info().Msg("Server shutdown process complete.")
	if shutdownError {
		return errors.New("server shutdown completed with errors")
	}
	return nil
}
