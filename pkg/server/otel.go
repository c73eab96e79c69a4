package server

import (
	"context"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// defaultTracerName is used when the server config leaves TracerName empty.
const defaultTracerName = "rhtml"

// tracing wraps the span lifecycle around one page dispatch. The tracer
// comes from the global provider; configure it in main() before starting
// the server.
type tracing struct {
	tracer trace.Tracer
}

func newTracing(name string) *tracing {
	if name == "" {
		name = defaultTracerName
	}
	return &tracing{tracer: otel.Tracer(name)}
}

// start opens a server span for a request path. The pattern attribute is
// added later, once matching has run.
func (t *tracing) start(ctx context.Context, r *http.Request, path string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "rhtml "+path,
		trace.WithSpanKind(trace.SpanKindServer),
		trace.WithAttributes(
			attribute.String("http.method", r.Method),
			attribute.String("rhtml.path", path),
		),
	)
}

// finish records the match outcome and closes the span.
func (t *tracing) finish(span trace.Span, pattern string, status int) {
	span.SetAttributes(
		attribute.String("rhtml.pattern", pattern),
		attribute.Int("http.status_code", status),
	)
	if status >= http.StatusInternalServerError {
		span.SetStatus(codes.Error, http.StatusText(status))
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
