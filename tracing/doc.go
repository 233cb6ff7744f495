// Package tracing is a thin wrapper around OpenTelemetry so that the rest of
// the code base can start and end spans without depending on the upstream
// API. Applications that do not need tracing simply never call Init; spans
// are then no-ops.
package tracing
