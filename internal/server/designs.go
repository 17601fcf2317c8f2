package server

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/dreamhouse/pkg/buildinfo"
	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/plan"
	"github.com/matzehuels/dreamhouse/pkg/store"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type generateRequest struct {
	Prompt string `json:"prompt"`
	Name   string `json:"name"`
}

type generateResponse struct {
	OK     bool        `json:"ok"`
	Layout plan.Layout `json:"layout"`
	Parsed plan.Counts `json:"parsed"`
}

type saveRequest struct {
	Name   string      `json:"name"`
	Prompt string      `json:"prompt"`
	Layout plan.Layout `json:"layout"`
}

type saveResponse struct {
	OK bool   `json:"ok"`
	ID string `json:"id"`
}

type listResponse struct {
	OK      bool            `json:"ok"`
	Designs []store.Summary `json:"designs"`
}

type getResponse struct {
	OK     bool         `json:"ok"`
	Design store.Design `json:"design"`
}

type okResponse struct {
	OK bool `json:"ok"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := s.runner.Generate(r.Context(), s.parser, req.Prompt, req.Name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, generateResponse{OK: true, Layout: res.Layout, Parsed: res.Parsed})
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	var req saveRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	id, err := s.designs.Save(r.Context(), store.Design{Name: req.Name, Prompt: req.Prompt, Layout: req.Layout})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.logger.Info("saved design", "id", id, "rooms", len(req.Layout.Rooms))
	s.writeJSON(w, http.StatusOK, saveResponse{OK: true, ID: id})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	designs, err := s.designs.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, listResponse{OK: true, Designs: designs})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	d, err := s.designs.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, getResponse{OK: true, Design: d})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	if err := s.designs.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, okResponse{OK: true})
}

func (s *Server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if s.designs == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "no design store configured"))
		return false
	}
	return true
}
