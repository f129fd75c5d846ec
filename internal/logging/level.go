package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"
)

// TraceLevel sits one step below zap's Debug level. Trace() writes at it and
// `logging.level: trace` enables it.
const TraceLevel = zapcore.DebugLevel - 1

// ParseLevel maps a configured level name to a zap level. Names are
// case-insensitive. On failure it returns InfoLevel with the error.
func ParseLevel(name string) (zapcore.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "trace" {
		return TraceLevel, nil
	}
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return zapcore.InfoLevel, fmt.Errorf("want trace, debug, info, warn, error or fatal: %w", err)
	}
	return lvl, nil
}
