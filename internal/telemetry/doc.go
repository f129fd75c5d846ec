// Package telemetry wires OpenTelemetry metrics for assistantd.
//
// When disabled, Meter falls back to the global (no-op) provider so
// instrumented code never needs to check whether telemetry is on.
package telemetry
