// Package http exposes the core's command set over a small JSON/HTTP
// control surface. It is a transport adapter only: all semantics live in
// the core, and every route maps one-to-one onto a core command.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/acqlab/daqstream/pkg/diag"
	"github.com/acqlab/daqstream/pkg/domain"
)

// Core defines the command surface the adapter exposes.
type Core interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context)
	Reset(ctx context.Context) error
	SetClockFrequency(ctx context.Context, hz uint32) error
	SetMaxRecoveries(n uint32)
	Diagnostics() domain.Snapshot
	Events() []domain.Event
	Metrics() *diag.Metrics
}

// Server wires the core commands onto routes.
type Server struct {
	core Core
}

// NewHandler creates the control router, including a Prometheus /metrics
// endpoint backed by the core's live counters.
func NewHandler(core Core) (http.Handler, error) {
	server := &Server{core: core}

	registry := prometheus.NewRegistry()
	if err := core.Metrics().Register(registry); err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Post("/session/start", server.start)
	r.Post("/session/stop", server.stop)
	r.Post("/device/reset", server.reset)
	r.Put("/clock", server.setClock)
	r.Put("/watchdog/max-recoveries", server.setMaxRecoveries)
	r.Get("/diagnostics", server.diagnostics)
	r.Get("/events", server.events)
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return r, nil
}

func (s *Server) start(w http.ResponseWriter, r *http.Request) {
	err := s.core.Start(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "started"})
	case errors.Is(err, domain.ErrClockNotReady):
		// Rejected precondition: nothing was mutated, the host may
		// retry once the clock is ready.
		writeJSON(w, http.StatusConflict, map[string]string{
			"error":  "clock_not_ready",
			"detail": err.Error(),
		})
	case errors.Is(err, domain.ErrSetupFailed):
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "setup_failed",
			"detail": err.Error(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "internal",
			"detail": err.Error(),
		})
	}
}

func (s *Server) stop(w http.ResponseWriter, r *http.Request) {
	s.core.Stop(r.Context())
	writeJSON(w, http.StatusOK, map[string]string{"status": "stopped"})
}

func (s *Server) reset(w http.ResponseWriter, r *http.Request) {
	err := s.core.Reset(r.Context())
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, map[string]string{"status": "rebooting"})
	case errors.Is(err, domain.ErrRebootUnsupported):
		writeJSON(w, http.StatusNotImplemented, map[string]string{
			"error":  "reboot_unsupported",
			"detail": err.Error(),
		})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "internal",
			"detail": err.Error(),
		})
	}
}

func (s *Server) setClock(w http.ResponseWriter, r *http.Request) {
	var req struct {
		FrequencyHz uint32 `json:"frequency_hz"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "bad_request",
			"detail": err.Error(),
		})
		return
	}
	if err := s.core.SetClockFrequency(r.Context(), req.FrequencyHz); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error":  "clock_set_failed",
			"detail": err.Error(),
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "ok",
		"frequency_hz": req.FrequencyHz,
	})
}

func (s *Server) setMaxRecoveries(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Max uint32 `json:"max"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{
			"error":  "bad_request",
			"detail": err.Error(),
		})
		return
	}
	s.core.SetMaxRecoveries(req.Max)
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"max":    req.Max,
	})
}

func (s *Server) diagnostics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.core.Diagnostics())
}

func (s *Server) events(w http.ResponseWriter, r *http.Request) {
	events := s.core.Events()
	if events == nil {
		events = []domain.Event{}
	}
	writeJSON(w, http.StatusOK, events)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
