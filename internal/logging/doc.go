// Package logging provides structured logging with OpenTelemetry integration.
//
// # Overview
//
// Logging package wraps Zap with:
//   - Custom Trace level (-2, below Debug)
//   - Stdout output (JSON or console) and optional OpenTelemetry output
//   - Automatic context field injection (trace_id, span_id, request.id)
//
// # Usage
//
//	cfg := logging.NewDefaultConfig()
//	logger, err := logging.NewLogger(cfg, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer logger.Sync()
//
//	ctx = logging.WithRequestID(ctx, "req_123")
//	logger.Info(ctx, "guides served", zap.Int("count", 3))
//
// # Testing
//
// NewTestLogger records every entry in memory:
//
//	tl := logging.NewTestLogger()
//	handler := NewHandler(tl.Logger)
//	tl.AssertLogged(t, zapcore.InfoLevel, "guides served")
package logging
