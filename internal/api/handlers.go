package api

import (
	"encoding/json"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/nayeemjb/intelgrid/internal/intel"
	"github.com/nayeemjb/intelgrid/internal/report"
)

type intelResponse struct {
	News []intel.Item `json:"news"`
	Logs []string     `json:"logs"`
}

// getIntel filters the current snapshot by the selected sources and sectors.
// International items bypass the sector filter, matching the UI's grid.
func (s *Server) getIntel(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sources := toSet(query["sources"])
	sectors := toSet(query["sectors"])

	filtered := make([]intel.Item, 0)
	for _, item := range s.snapshots.Current() {
		if !sources[item.Source] {
			continue
		}
		if sectors[item.Sector] || item.Type == intel.OutletInternational {
			filtered = append(filtered, item)
		}
	}
	writeJSON(w, http.StatusOK, intelResponse{News: filtered, Logs: s.ops.Lines()})
}

type intervalRequest struct {
	Minutes int `json:"minutes"`
}

func (s *Server) setSyncInterval(w http.ResponseWriter, r *http.Request) {
	var req intervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.engine.SetInterval(req.Minutes)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) forceSync(w http.ResponseWriter, _ *http.Request) {
	s.engine.ForceSync()
	writeJSON(w, http.StatusOK, map[string]string{"status": "syncing"})
}

func (s *Server) setArchiveInterval(w http.ResponseWriter, r *http.Request) {
	var req intervalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.archiver.SetInterval(req.Minutes)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) listOutlets(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.outlets.List())
}

func (s *Server) addOutlet(w http.ResponseWriter, r *http.Request) {
	var outlet intel.Outlet
	if err := json.NewDecoder(r.Body).Decode(&outlet); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	if err := s.outlets.Add(outlet); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) removeOutlet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing outlet name")
		return
	}
	s.outlets.Remove(name)
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

type reportRequest struct {
	Sources []string `json:"sources"`
	Sectors []string `json:"sectors"`
}

// generateReport writes an on-demand dossier from the current snapshot and
// returns the file path.
func (s *Server) generateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}
	s.ops.Append("dossier: compiling structured report...")
	path := filepath.Join(s.reportDir, report.DossierFilename(s.clock.Now()))
	if err := report.WriteDossier(path, s.snapshots.Current(), req.Sources, req.Sectors); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "path": path})
}

type historyResponse struct {
	Cycles  []historyCycle  `json:"cycles"`
	Exports []historyExport `json:"exports"`
}

type historyCycle struct {
	StartedAt  string `json:"started_at"`
	FinishedAt string `json:"finished_at"`
	Items      int    `json:"items"`
}

type historyExport struct {
	ExportedAt string `json:"exported_at"`
	Path       string `json:"path"`
	Items      int    `json:"items"`
}

func (s *Server) getHistory(w http.ResponseWriter, r *http.Request) {
	if s.history == nil {
		writeError(w, http.StatusNotFound, "history store disabled")
		return
	}
	cycles, err := s.history.RecentCycles(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	exports, err := s.history.RecentExports(r.Context(), 20)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := historyResponse{Cycles: []historyCycle{}, Exports: []historyExport{}}
	for _, c := range cycles {
		resp.Cycles = append(resp.Cycles, historyCycle{
			StartedAt:  c.StartedAt.Format("2006-01-02 15:04:05"),
			FinishedAt: c.FinishedAt.Format("2006-01-02 15:04:05"),
			Items:      c.Items,
		})
	}
	for _, e := range exports {
		resp.Exports = append(resp.Exports, historyExport{
			ExportedAt: e.ExportedAt.Format("2006-01-02 15:04:05"),
			Path:       e.Path,
			Items:      e.Items,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
