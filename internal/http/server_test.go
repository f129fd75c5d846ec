package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/fyrsmithlabs/assistantd/internal/logging"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid config", func(t *testing.T) {
		cfg := &Config{
			Host: "localhost",
			Port: 9090,
		}

		server, err := NewServer(logging.Nop(), cfg, nil)
		require.NoError(t, err)
		assert.NotNil(t, server.echo)
		assert.Same(t, server.echo, server.Echo())
		assert.Equal(t, cfg, server.config)
	})

	t.Run("uses defaults when config is nil", func(t *testing.T) {
		server, err := NewServer(logging.Nop(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "localhost", server.config.Host)
		assert.Equal(t, 9090, server.config.Port)
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(nil, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})
}

func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t)

	rec := serve(server, http.MethodGet, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
}

func TestServerLifecycle(t *testing.T) {
	server, err := NewServer(logging.Nop(), &Config{Host: "localhost", Port: 0}, nil)
	require.NoError(t, err)

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.Start()
	}()

	time.Sleep(100 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	assert.NoError(t, server.Shutdown(ctx))

	select {
	case err := <-errChan:
		assert.True(t, err == nil || err == http.ErrServerClosed)
	case <-time.After(6 * time.Second):
		t.Fatal("server did not shut down in time")
	}
}

func TestMiddleware(t *testing.T) {
	t.Run("adds request ID to response", func(t *testing.T) {
		server := setupTestServer(t)
		rec := serve(server, http.MethodGet, "/health")
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("logs requests with request id", func(t *testing.T) {
		tl := logging.NewTestLogger()
		server, err := NewServer(tl.Logger, nil, nil)
		require.NoError(t, err)

		rec := serve(server, http.MethodGet, "/api/v1/guides/999")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		tl.AssertLogged(t, zapcore.InfoLevel, "http request")
		tl.AssertField(t, "http request", "status", int64(http.StatusNotFound))
		tl.AssertField(t, "http request", "request.id", rec.Header().Get(echo.HeaderXRequestID))
		tl.AssertLogged(t, zapcore.DebugLevel, "unknown guide requested")
	})

	t.Run("handlers log through the request scoped logger", func(t *testing.T) {
		tl := logging.NewTestLogger()
		server, err := NewServer(tl.Logger, nil, nil)
		require.NoError(t, err)

		rec := serve(server, http.MethodGet, "/api/v1/guides/2")
		assert.Equal(t, http.StatusNotFound, rec.Code)

		entries := tl.FilterMessage("unknown guide requested").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "http", entries[0].LoggerName)
		assert.Equal(t, rec.Header().Get(echo.HeaderXRequestID), entries[0].ContextMap()["request.id"])
		assert.Equal(t, int64(2), entries[0].ContextMap()["guide_id"])
	})

	t.Run("logs panicking requests as 500", func(t *testing.T) {
		tl := logging.NewTestLogger()
		server, err := NewServer(tl.Logger, nil, nil)
		require.NoError(t, err)
		server.echo.GET("/panic", func(c echo.Context) error {
			panic("test panic")
		})

		rec := serve(server, http.MethodGet, "/panic")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)

		tl.AssertField(t, "http request", "status", int64(http.StatusInternalServerError))
		tl.AssertField(t, "http request", "uri", "/panic")
	})

	t.Run("recovers from panic", func(t *testing.T) {
		server := setupTestServer(t)
		server.echo.GET("/panic", func(c echo.Context) error {
			panic("test panic")
		})

		var rec *httptest.ResponseRecorder
		assert.NotPanics(t, func() {
			rec = serve(server, http.MethodGet, "/panic")
		})
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

// setupTestServer creates a test server with default configuration.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	server, err := NewServer(logging.Nop(), &Config{Host: "localhost", Port: 9090}, nil)
	require.NoError(t, err)
	return server
}

func serve(server *Server, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	server.echo.ServeHTTP(rec, req)
	return rec
}
