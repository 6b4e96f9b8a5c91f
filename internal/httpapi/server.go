// Package httpapi exposes the consumer's state over HTTP: health, the
// last processed outcome, the running temperature summary and Prometheus
// metrics.
package httpapi

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/josephvalenti53/buzzline-03-valenti/internal/stats"
	"github.com/josephvalenti53/buzzline-03-valenti/internal/stream"
)

// State is what the server reads from the consumer loop.
type State interface {
	Latest() (stream.Outcome, bool)
	Summary() stats.Snapshot
	Counts() map[string]int64
	Uptime() time.Duration
}

type Server struct {
	log   *slog.Logger
	state State
	srv   *http.Server
}

func New(bind string, state State, metricsHandler http.Handler, log *slog.Logger) *Server {
	s := &Server{
		log:   log.With(slog.String("component", "http")),
		state: state,
	}
	r := mux.NewRouter()
	r.HandleFunc("/health", s.handleHealth).Methods("GET")
	r.HandleFunc("/latest", s.handleLatest).Methods("GET")
	r.HandleFunc("/stats", s.handleStats).Methods("GET")
	r.HandleFunc("/counts", s.handleCounts).Methods("GET")
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler).Methods("GET")
	}

	logged := handlers.LoggingHandler(os.Stdout, r)
	s.srv = &http.Server{
		Addr:         bind,
		Handler:      logged,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Start blocks serving until Stop or a listener error.
func (s *Server) Start() error {
	s.log.Info("http_start", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"uptime_s": int(s.state.Uptime().Seconds()),
	})
}

func (s *Server) handleLatest(w http.ResponseWriter, _ *http.Request) {
	out, ok := s.state.Latest()
	if !ok {
		s.writeError(w, http.StatusNotFound, "no readings processed yet")
		return
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Summary())
}

func (s *Server) handleCounts(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, s.state.Counts())
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("write_response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]any{"error": msg})
}
