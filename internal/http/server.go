// Package http provides the HTTP API for assistantd.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/assistantd/internal/logging"
)

// Server provides HTTP endpoints for assistantd.
type Server struct {
	echo    *echo.Echo
	logger  *logging.Logger
	config  *Config
	metrics *HTTPMetrics
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server.
// metrics may be nil, in which case instruments come from the global meter provider.
func NewServer(logger *logging.Logger, cfg *Config, metrics *HTTPMetrics) (*Server, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "localhost",
			Port: 9090,
		}
	}
	if metrics == nil {
		metrics = NewHTTPMetrics(nil, logger)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.RequestID())
	e.Use(requestLogger(logger))
	e.Use(metrics.MetricsMiddleware())
	// Innermost so panics become 500s before logging and metrics see them.
	e.Use(middleware.Recover())

	s := &Server{
		echo:    e,
		logger:  logger.Named("http"),
		config:  cfg,
		metrics: metrics,
	}
	s.registerRoutes()

	return s, nil
}

// requestLogger stores the request id and a request-scoped logger in the
// request context and logs each request once it completes, including requests
// whose handler panicked.
func requestLogger(logger *logging.Logger) echo.MiddlewareFunc {
	scoped := logger.Named("http")
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			ctx := logging.WithRequestID(req.Context(), c.Response().Header().Get(echo.HeaderXRequestID))
			ctx = logging.WithLogger(ctx, scoped)
			c.SetRequest(req.WithContext(ctx))

			panicked := true
			defer func() {
				status := c.Response().Status
				if panicked {
					status = http.StatusInternalServerError
				}
				logger.Info(ctx, "http request",
					zap.String("method", req.Method),
					zap.String("uri", req.RequestURI),
					zap.Int("status", status),
					zap.Duration("duration", time.Since(start)),
					zap.Bool("panicked", panicked),
				)
			}()

			err := next(c)
			if err != nil {
				// Let echo render the error so the logged status is final.
				c.Error(err)
			}
			panicked = false
			return nil
		}
	}
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)

	v1 := s.echo.Group("/api/v1")
	v1.GET("/guides", s.handleListGuides)
	v1.GET("/guides/active", s.handleActiveGuides)
	v1.GET("/guides/:id", s.handleGetGuide)
	v1.GET("/assistant", s.handleAssistant)
}

// Echo exposes the underlying router so callers can mount extra handlers
// such as /metrics.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info(context.Background(), "starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info(ctx, "shutting down http server")
	return s.echo.Shutdown(ctx)
}
