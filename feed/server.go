// Package feed exposes the controller inputs over HTTP so an external pose
// estimator (or a test rig) can drive the game.
//
// Endpoints:
//   - POST /v1/pose             → publish one keypoint snapshot
//   - POST /v1/input/{symbol}   → advance, squat, recalibrate or an ingredient name
//   - GET  /v1/status           → metrics registry snapshot
//   - GET  /health              → liveness
package feed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/panic-burger/core"
	"github.com/lixenwraith/panic-burger/input"
	"github.com/lixenwraith/panic-burger/status"
)

// maxPoseBytes bounds a pose request body
const maxPoseBytes = 64 << 10

// Sink receives decoded inputs; satisfied by *engine.Controller
type Sink interface {
	input.Sink
	PublishPose(p core.Pose)
}

// Server bundles router and collaborators
type Server struct {
	r    *chi.Mux
	sink Sink
	reg  *status.Registry
	log  zerolog.Logger
	srv  *http.Server
}

// New constructs a Server, installs middleware, and registers routes
// reg may be nil, /v1/status then reports an empty object
func New(sink Sink, reg *status.Registry, logger zerolog.Logger) *Server {
	s := &Server{
		r:    chi.NewRouter(),
		sink: sink,
		reg:  reg,
		log:  logger.With().Str("component", "feed").Logger(),
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(chimw.Timeout(5 * time.Second))
	s.r.Use(jsonContentType)
	s.r.Use(s.requestLog)

	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok":true}`))
	})

	s.r.Route("/v1", func(r chi.Router) {
		r.Post("/pose", s.handlePose)
		r.Post("/input/{symbol}", s.handleInput)
		r.Get("/status", s.handleStatus)
	})

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found")
	})

	return s
}

// Router exposes the internal router (useful for tests)
func (s *Server) Router() chi.Router { return s.r }

// Start serves HTTP on addr until Shutdown; a clean shutdown returns nil
func (s *Server) Start(addr string) error {
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}
	s.log.Info().Str("addr", addr).Msg("feed listening")
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops a server started with Start
func (s *Server) Shutdown(ctx context.Context) error {
	if s.srv == nil {
		return nil
	}
	return s.srv.Shutdown(ctx)
}

// jsonContentType sets a default JSON Content-Type header on all responses
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// requestLog writes one debug line per request
func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Debug().
			Str("req_id", chimw.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

type ackRes struct {
	OK     bool   `json:"ok"`
	Symbol string `json:"symbol,omitempty"`
	Points int    `json:"points,omitempty"`
}

// handlePose decodes a core.Pose and publishes it; last writer wins
func (s *Server) handlePose(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPoseBytes)
	var pose core.Pose
	if err := json.NewDecoder(r.Body).Decode(&pose); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	s.sink.PublishPose(pose)
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(ackRes{OK: true, Points: len(pose.Keypoints)})
}

// handleInput maps a symbol to a game intent and forwards it
func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")
	entry, ok := input.ActionEntry(symbol)
	if !ok || !entry.Intent.Game() {
		writeError(w, http.StatusBadRequest, "unknown_symbol")
		return
	}
	input.Dispatch(input.Intent{Type: entry.Intent, Ingredient: entry.Ingredient}, s.sink)
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(ackRes{OK: true, Symbol: symbol})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	out := map[string]any{}
	if s.reg != nil {
		out = s.reg.Snapshot()
	}
	_ = json.NewEncoder(w).Encode(out)
}
