package web

import (
	"net/http"
	"strconv"

	"github.com/JonMunkholm/salesclean/internal/store"
	"github.com/JonMunkholm/salesclean/internal/web/templates"
)

// handleIndex renders the upload page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	status := s.limiter.Status()
	data := templates.IndexData{
		Version:        s.version,
		MaxFileSizeMB:  s.cfg.Clean.MaxFileSize >> 20,
		Active:         status.Active,
		MaxConcurrent:  status.MaxConcurrent,
		ArchiveEnabled: s.archive != nil,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := templates.Index(data).Render(r.Context(), w); err != nil {
		respondError(w, r, err, http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}

// handleStatus reports cleaning slot usage.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.limiter.Status())
}

// handleRuns lists recently archived runs. Accepts an optional limit.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.archive == nil {
		respondError(w, r, store.ErrNotConfigured, http.StatusServiceUnavailable)
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}

	runs, err := s.archive.RecentRuns(r.Context(), limit)
	if err != nil {
		respondError(w, r, err, statusFor(err))
		return
	}
	if runs == nil {
		runs = []store.Run{}
	}
	writeJSON(w, runs)
}
