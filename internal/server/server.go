// Package server exposes the refinement service over HTTP, mirroring the
// /refine API surface the frontend expects.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/Ag-Linings/requirement-specifications/internal/model"
	"github.com/Ag-Linings/requirement-specifications/internal/pipeline"
	"github.com/Ag-Linings/requirement-specifications/internal/store"
)

// Refiner is the single operation the extraction core exposes.
type Refiner interface {
	Refine(ctx context.Context, text, apiKeyOverride string) (model.ExtractionResult, error)
}

// Server wires the refiner and the optional persistence collaborator into an
// echo HTTP server.
type Server struct {
	echo    *echo.Echo
	refiner Refiner
	store   store.Store // nil disables persistence
	logger  *zap.Logger
	cfg     model.ServerConfig
}

// New creates the HTTP server. st may be nil when persistence is disabled.
func New(refiner Refiner, st store.Store, logger *zap.Logger, cfg model.ServerConfig) (*Server, error) {
	if refiner == nil {
		return nil, fmt.Errorf("refiner is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	// Permissive CORS for frontend interaction; restrict via a proxy in
	// production deployments.
	e.Use(middleware.CORS())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)
			return err
		}
	})

	s := &Server{
		echo:    e,
		refiner: refiner,
		store:   st,
		logger:  logger,
		cfg:     cfg,
	}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/", s.handleRoot)
	s.echo.POST("/refine", s.handleRefine)
	s.echo.GET("/requirements", s.handleListRequirements)
}

// RefineRequest is the request body for POST /refine.
type RefineRequest struct {
	Input  string `json:"input"`
	APIKey string `json:"api_key,omitempty"`
	UserID string `json:"user_id,omitempty"`
}

// RefineResponse is the response body for POST /refine.
type RefineResponse struct {
	Requirements []model.Requirement `json:"requirements"`
	Summary      string              `json:"summary,omitempty"`
}

// RootResponse is the response body for GET /.
type RootResponse struct {
	Message string `json:"message"`
}

func (s *Server) handleRoot(c echo.Context) error {
	return c.JSON(http.StatusOK, RootResponse{Message: "Requirements Manager API is running"})
}

func (s *Server) handleRefine(c echo.Context) error {
	var req RefineRequest
	if err := c.Bind(&req); err != nil {
		s.logger.Warn("invalid refine request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	result, err := s.refiner.Refine(c.Request().Context(), req.Input, req.APIKey)
	if err != nil {
		if errors.Is(err, pipeline.ErrInvalidInput) {
			return echo.NewHTTPError(http.StatusBadRequest, "Input text cannot be empty")
		}
		// Only cancellation reaches here; the chain absorbs strategy failures.
		s.logger.Error("refinement aborted", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error processing requirements")
	}

	if s.store != nil {
		saved, err := s.store.Save(c.Request().Context(), result, req.UserID)
		if err != nil {
			// Extraction succeeded; only storage failed. Distinct error class,
			// and the computed result is not discarded from logs.
			s.logger.Error("failed to persist result",
				zap.Error(err),
				zap.Int("requirements", len(result.Requirements)),
			)
			return echo.NewHTTPError(http.StatusInternalServerError, "Extraction succeeded but storing the result failed")
		}
		result = saved
	}

	return c.JSON(http.StatusOK, RefineResponse{
		Requirements: result.Requirements,
		Summary:      result.Summary,
	})
}

func (s *Server) handleListRequirements(c echo.Context) error {
	if s.store == nil {
		return echo.NewHTTPError(http.StatusNotFound, "persistence is not configured")
	}

	reqs, err := s.store.ListByUser(c.Request().Context(), c.QueryParam("user"))
	if err != nil {
		s.logger.Error("failed to list requirements", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error loading requirements")
	}
	if reqs == nil {
		reqs = []model.Requirement{}
	}
	return c.JSON(http.StatusOK, reqs)
}

// Start runs the server until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.echo.Start(addr)
	}()

	s.logger.Info("http server listening", zap.String("addr", addr))

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}

// Handler exposes the underlying handler for tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}
