// Package tracing provides the OpenTelemetry tracer used across the
// application and an HTTP middleware that opens a server span per request.
//
// No exporter is configured here; whichever TracerProvider is installed
// globally (otel.SetTracerProvider) receives the spans.
package tracing
