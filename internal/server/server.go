// Package server exposes the synthesis pipeline and draft store over HTTP.
package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/sells-group/prospect-intel/internal/model"
	"github.com/sells-group/prospect-intel/internal/store"
	"github.com/sells-group/prospect-intel/internal/synth"
)

// Server routes draft synthesis and persistence requests.
type Server struct {
	store     store.Store
	synthOpts synth.Options
}

// New creates a Server on top of a draft store.
func New(st store.Store, opts synth.Options) *Server {
	return &Server{store: st, synthOpts: opts}
}

// Routes builds the HTTP handler with middleware and all API routes.
func (s *Server) Routes(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/drafts", func(r chi.Router) {
		r.Post("/synthesize", s.handleSynthesize)
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Get("/{id}", s.handleGet)
		r.Delete("/{id}", s.handleDelete)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleSynthesize runs the pipeline without persisting anything. The
// response carries the draft, its validation errors, and any contacts
// extracted from the narrative.
func (s *Server) handleSynthesize(w http.ResponseWriter, r *http.Request) {
	var input model.DraftInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := synth.Synthesize(input, s.synthOpts)
	respondJSON(w, http.StatusOK, map[string]any{
		"draft":    draft,
		"errors":   synth.ValidateDraft(&draft),
		"contacts": synth.Contacts(input, s.synthOpts),
	})
}

type createRequest struct {
	UserID string           `json:"user_id"`
	Input  model.DraftInput `json:"input"`
}

// handleCreate synthesizes a draft, validates it, and persists it. Validation
// failures return 422 with the field-indexed error map and nothing is saved.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	draft := synth.Synthesize(req.Input, s.synthOpts)
	if errs := synth.ValidateDraft(&draft); len(errs) > 0 {
		respondJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": errs})
		return
	}

	saved, err := s.store.SaveDraft(r.Context(), req.UserID, draft)
	if err != nil {
		zap.L().Error("save draft failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "save draft")
		return
	}
	respondJSON(w, http.StatusCreated, saved)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.DraftFilter{
		UserID:       q.Get("user_id"),
		ResearchType: model.ResearchType(q.Get("research_type")),
		Priority:     model.PriorityLevel(q.Get("priority")),
		Subject:      q.Get("subject"),
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		filter.Limit = limit
	}
	if offset, err := strconv.Atoi(q.Get("offset")); err == nil {
		filter.Offset = offset
	}

	drafts, err := s.store.ListDrafts(r.Context(), filter)
	if err != nil {
		zap.L().Error("list drafts failed", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "list drafts")
		return
	}
	if drafts == nil {
		drafts = []model.StoredDraft{}
	}
	respondJSON(w, http.StatusOK, drafts)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	sd, err := s.store.GetDraft(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrDraftNotFound) {
			respondError(w, http.StatusNotFound, "draft not found")
			return
		}
		zap.L().Error("get draft failed", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "get draft")
		return
	}
	respondJSON(w, http.StatusOK, sd)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := s.store.DeleteDraft(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrDraftNotFound) {
			respondError(w, http.StatusNotFound, "draft not found")
			return
		}
		zap.L().Error("delete draft failed", zap.String("id", id), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "delete draft")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Error("encode response failed", zap.Error(err))
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
