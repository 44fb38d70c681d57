// Package httpd exposes the local web remote: a status page and a
// command endpoint that translates query parameters into command lines.
// There is no authentication; the endpoint is meant for the exam-room
// LAN only.
package httpd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"

	"github.com/kalam1991git/vision-test/internal/state"
)

// Submitter accepts command lines; satisfied by app.Board.
type Submitter interface {
	Submit(line string)
}

// StatusSource provides the current viewing context for the status page.
type StatusSource interface {
	Snapshot() state.Snapshot
}

// Server is the HTTP remote-control surface.
type Server struct {
	addr     string
	sink     Submitter
	status   StatusSource
	shutdown time.Duration
}

// NewServer builds the server listening on addr.
func NewServer(addr string, sink Submitter, status StatusSource) *Server {
	return &Server{addr: addr, sink: sink, status: status, shutdown: 3 * time.Second}
}

// Run serves until ctx is canceled. A listen failure is returned so the
// caller can disable the transport; the rest of the system keeps going.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	log.Info().Str("addr", s.addr).Msg("web remote listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("httpd: %w", err)
		}
		return nil
	}
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{AllowedOrigins: []string{"*"}}))

	r.Get("/", s.handleStatus)
	r.Get("/command", s.handleCommand)
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, _ *http.Request) {
	snap := s.status.Snapshot()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, statusPage,
		snap.Test, snap.DistanceMm/10, snap.Brightness, snap.Contrast, snap.Language)
}

// commandParams maps accepted query parameters to command verbs, in the
// order they are applied when several appear in one request.
var commandParams = []struct {
	param string
	verb  string
}{
	{"test", "test"},
	{"distance", "distance"},
	{"language", "language"},
	{"brightness", "brightness"},
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	for _, cp := range commandParams {
		if v := q.Get(cp.param); v != "" {
			s.sink.Submit(fmt.Sprintf("%s %s", cp.verb, v))
		}
	}
	if q.Has("exit") {
		s.sink.Submit("exit")
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "OK")
}

const statusPage = `<!DOCTYPE html>
<html><head><title>Vision Test</title></head>
<body>
<h1>Vision Test Display</h1>
<ul>
<li>Test: %s</li>
<li>Distance: %.0f cm</li>
<li>Brightness: %d</li>
<li>Contrast: %d</li>
<li>Language: %s</li>
</ul>
<p>Send commands via <code>/command?test=snellen&amp;distance=300&amp;brightness=up</code></p>
</body></html>
`
