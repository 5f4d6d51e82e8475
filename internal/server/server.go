// Package server exposes the simulators over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/fiscalite/taxsim/internal/calculation"
	"github.com/fiscalite/taxsim/internal/config"
	"github.com/fiscalite/taxsim/internal/report"
	"github.com/fiscalite/taxsim/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Version is reported by the health endpoint.
var Version = "dev"

// Dependencies are the collaborators of a Server. Only Engine is required.
type Dependencies struct {
	Engine        *calculation.CalculationEngine
	Repository    store.SimulationRepository
	Reports       *report.Service
	HealthCheck   func(ctx context.Context) bool
	ReportLimiter *RateLimiter
	Logger        zerolog.Logger
}

// Server holds the handlers and their dependencies.
type Server struct {
	engine      *calculation.CalculationEngine
	repo        store.SimulationRepository
	reports     *report.Service
	healthCheck func(ctx context.Context) bool
	limiter     *RateLimiter
	logger      zerolog.Logger
}

// New creates a server.
func New(deps Dependencies) *Server {
	return &Server{
		engine:      deps.Engine,
		repo:        deps.Repository,
		reports:     deps.Reports,
		healthCheck: deps.HealthCheck,
		limiter:     deps.ReportLimiter,
		logger:      deps.Logger,
	}
}

// Handler configures and returns the Gin engine with all routes.
func (s *Server) Handler(environment string) *gin.Engine {
	switch environment {
	case "production":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	r.GET("/health", s.health)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/rate-tables", s.listRateTables)
		v1.GET("/rate-tables/:year", s.getRateTable)

		v1.POST("/simulations/:kind", s.simulate)
		v1.GET("/simulations", s.listSimulations)
		v1.GET("/simulations/:id", s.getSimulation)

		reports := []gin.HandlerFunc{}
		if s.limiter != nil {
			reports = append(reports, s.limiter.Middleware())
		}
		reports = append(reports, s.createReport)
		v1.POST("/reports", reports...)
	}
	return r
}

// requestLogger logs one line per request.
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		event := s.logger.Info()
		if status >= http.StatusInternalServerError {
			event = s.logger.Error()
		} else if status >= http.StatusBadRequest {
			event = s.logger.Warn()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("client_ip", c.ClientIP()).
			Msg("request")
	}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(cfg.Environment),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info().Str("address", cfg.Addr).Str("environment", cfg.Environment).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	if s.limiter != nil {
		go s.cleanupLimiter(ctx)
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

func (s *Server) cleanupLimiter(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.limiter.Cleanup()
		}
	}
}
