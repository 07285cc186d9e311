// Package observability groups the logging, metrics and tracing
// infrastructure shared by the server and the CLI.
//
// Subpackages:
//   - logging: slog construction and request-scoped loggers
//   - metrics: Prometheus collectors and Record* helpers
//   - tracing: OpenTelemetry tracer and HTTP middleware
package observability
