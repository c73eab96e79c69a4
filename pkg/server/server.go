// Package server serves loaded templates over HTTP. It dispatches each
// request through the route collection of the current snapshot, so a
// template rebuild swaps routes atomically under live traffic.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jeetkhinde/RHTML/internal/dev"
	"github.com/jeetkhinde/RHTML/pkg/loader"
	"github.com/jeetkhinde/RHTML/pkg/routepath"
	"github.com/jeetkhinde/RHTML/pkg/router"
)

// unmatchedLabel is the metrics pattern label for requests no route
// matched. Using a fixed label keeps unmatched paths from minting a
// metric series each.
const unmatchedLabel = "unmatched"

// PageHandler renders a matched route. The match carries the extracted
// parameters; the snapshot resolves templates and layouts. Implementations
// own the response body and may set any status.
type PageHandler func(w http.ResponseWriter, r *http.Request, m *router.RouteMatch, snap *loader.Snapshot)

// Config configures the page server.
type Config struct {
	// Store provides the current snapshot on every request.
	Store *loader.Store

	// CaseInsensitive makes static segments match ignoring case.
	CaseInsensitive bool

	// Dev enables the livereload websocket endpoint and client script
	// injection.
	Dev bool

	// Reload is the livereload hub, required when Dev is set.
	Reload *dev.ReloadServer

	// PageHandler renders matched routes. Nil falls back to serving the
	// raw template content.
	PageHandler PageHandler

	// Metrics records request counts and durations. Nil disables
	// recording.
	Metrics *Metrics

	// TracerName names the OpenTelemetry tracer (default: "rhtml").
	TracerName string

	// Logger receives request logs. Defaults to slog.Default().
	Logger *slog.Logger
}

// Server is the HTTP front of a template snapshot store.
type Server struct {
	cfg     Config
	logger  *slog.Logger
	tracing *tracing
	mux     *chi.Mux
}

// New builds the server and its route table. Infrastructure endpoints
// (health, metrics, livereload) are registered on the mux; every other
// path falls through to snapshot dispatch.
func New(cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		logger:  cfg.Logger,
		tracing: newTracing(cfg.TracerName),
	}

	mux := chi.NewRouter()
	mux.Use(chimw.RealIP)
	mux.Use(chimw.Recoverer)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	mux.Handle("/metrics", promhttp.Handler())

	if cfg.Dev && cfg.Reload != nil {
		mux.Get(dev.ReloadPath, cfg.Reload.HandleWebSocket)
	}

	mux.NotFound(s.dispatch)

	s.mux = mux
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// dispatch resolves a request path against the current snapshot.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	path := routepath.Canonicalize(r.URL.Path)

	ctx, span := s.tracing.start(r.Context(), r, path)
	r = r.WithContext(ctx)

	snap := s.cfg.Store.Current()
	ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

	pattern := unmatchedLabel
	if m := snap.Router().Match(path, s.cfg.CaseInsensitive); m != nil {
		pattern = m.Route.Pattern
		s.renderPage(ww, r, m, snap)
	} else {
		s.renderNotFound(ww, r, path, snap)
	}

	status := ww.Status()
	if status == 0 {
		status = http.StatusOK
	}
	duration := time.Since(start)

	s.cfg.Metrics.ObserveRequest(pattern, strconv.Itoa(status), duration)
	s.tracing.finish(span, pattern, status)
	s.logger.Debug("request",
		"method", r.Method,
		"path", path,
		"pattern", pattern,
		"status", status,
		"duration", duration,
	)
}

// renderPage hands the match to the configured handler, or serves the raw
// template content.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, m *router.RouteMatch, snap *loader.Snapshot) {
	if s.cfg.PageHandler != nil {
		s.cfg.PageHandler(w, r, m, snap)
		return
	}
	s.serveTemplate(w, m.Route, snap, http.StatusOK)
}

// renderNotFound serves the nearest error page for the requested path, or
// a plain 404 when the project has none.
func (s *Server) renderNotFound(w http.ResponseWriter, r *http.Request, path string, snap *loader.Snapshot) {
	if ep := snap.Router().ErrorPageFor(path); ep != nil {
		s.serveTemplate(w, ep, snap, http.StatusNotFound)
		return
	}
	http.NotFound(w, r)
}

// serveTemplate writes the template source as HTML. In dev mode the
// livereload client script rides along.
func (s *Server) serveTemplate(w http.ResponseWriter, rt *router.Route, snap *loader.Snapshot, status int) {
	tpl, ok := snap.Template(rt.SourcePath)
	if !ok {
		s.logger.Error("route without template", "pattern", rt.Pattern, "source", rt.SourcePath)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	body := tpl.Content
	if s.cfg.Dev && s.cfg.Reload != nil {
		body = injectClientScript(body)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write([]byte(body))
}

// injectClientScript places the livereload script before </body>, or
// appends it when the template has no body tag.
func injectClientScript(body string) string {
	if idx := strings.LastIndex(strings.ToLower(body), "</body>"); idx >= 0 {
		return body[:idx] + dev.ClientScript + body[idx:]
	}
	return body + dev.ClientScript
}
