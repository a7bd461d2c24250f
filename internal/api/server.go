// Package api exposes the HTTP interface for the intel service.
package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/nayeemjb/intelgrid/internal/archive"
	"github.com/nayeemjb/intelgrid/internal/engine"
	"github.com/nayeemjb/intelgrid/internal/history"
	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/metrics"
	"github.com/nayeemjb/intelgrid/internal/oplog"
	"github.com/nayeemjb/intelgrid/internal/registry"
)

// Server wires HTTP handlers to the engine, registry and stores.
type Server struct {
	router    chi.Router
	snapshots intel.SnapshotStore
	ops       *oplog.Log
	engine    *engine.Engine
	archiver  *archive.Scheduler
	outlets   *registry.Registry
	history   *history.Store
	clock     intel.Clock
	reportDir string
	logger    *zap.Logger
}

// NewServer constructs a Server with middleware and routes. history may be
// nil when the history store is disabled.
func NewServer(
	snapshots intel.SnapshotStore,
	ops *oplog.Log,
	eng *engine.Engine,
	archiver *archive.Scheduler,
	outlets *registry.Registry,
	hist *history.Store,
	clock intel.Clock,
	reportDir string,
	logger *zap.Logger,
) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		snapshots: snapshots,
		ops:       ops,
		engine:    eng,
		archiver:  archiver,
		outlets:   outlets,
		history:   hist,
		clock:     clock,
		reportDir: reportDir,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))
	r.Use(recoverMiddleware(logger))
	r.Use(timeoutMiddleware(60 * time.Second))

	r.Get("/healthz", s.healthz)
	r.Get("/readyz", s.readyz)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/intel", s.getIntel)
		r.Get("/history", s.getHistory)
		r.Post("/sync/interval", s.setSyncInterval)
		r.Post("/sync/force", s.forceSync)
		r.Post("/archive/interval", s.setArchiveInterval)
		r.Post("/reports", s.generateReport)
		r.Route("/outlets", func(r chi.Router) {
			r.Get("/", s.listOutlets)
			r.Post("/", s.addOutlet)
			r.Delete("/{name}", s.removeOutlet)
		})
	})

	s.router = r
	return s
}

// Handler returns the router for use with http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) readyz(w http.ResponseWriter, _ *http.Request) {
	// The service serves the last snapshot even while subsystems warm up.
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
