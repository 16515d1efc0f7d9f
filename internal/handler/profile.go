package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/service"
)

type ProfileHandler struct {
	sessionService *service.SessionService
}

func NewProfileHandler(sessionService *service.SessionService) *ProfileHandler {
	return &ProfileHandler{sessionService: sessionService}
}

func (h *ProfileHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.Get)
	r.Patch("/", h.Update)
	r.Post("/postings", h.AddPosting)
	r.Delete("/postings/{postingID}", h.DeletePosting)

	return r
}

// GET /v1/profile
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	user := h.sessionService.Current()
	if user == nil {
		writeError(w, apperrors.NoSession())
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// PATCH /v1/profile
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params model.UpdateAccountParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.sessionService.UpdateUser(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// POST /v1/profile/postings
func (h *ProfileHandler) AddPosting(w http.ResponseWriter, r *http.Request) {
	var params model.CreateVolunteerPostingParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	posting, err := h.sessionService.AddPosting(r.Context(), params)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, posting)
}

// DELETE /v1/profile/postings/{postingID}
func (h *ProfileHandler) DeletePosting(w http.ResponseWriter, r *http.Request) {
	postingID := chi.URLParam(r, "postingID")

	if err := h.sessionService.DeletePosting(r.Context(), postingID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
