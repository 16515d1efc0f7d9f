package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/service"
)

type OrganizationHandler struct {
	orgService     *service.OrganizationService
	sessionService *service.SessionService
}

func NewOrganizationHandler(orgService *service.OrganizationService, sessionService *service.SessionService) *OrganizationHandler {
	return &OrganizationHandler{
		orgService:     orgService,
		sessionService: sessionService,
	}
}

func (h *OrganizationHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.ListMine)
	r.Post("/", h.Create)
	r.Patch("/{orgID}", h.Update)
	r.Delete("/{orgID}", h.Delete)
	r.Post("/{orgID}/postings", h.AddPosting)
	r.Patch("/{orgID}/postings/{postingID}", h.UpdatePosting)
	r.Delete("/{orgID}/postings/{postingID}", h.DeletePosting)

	return r
}

// GET /v1/organizations
func (h *OrganizationHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	user := h.sessionService.Current()
	if user == nil {
		writeError(w, apperrors.NoSession())
		return
	}

	writeJSON(w, http.StatusOK, h.orgService.GetUserOrganizations(user.Email))
}

type createOrganizationRequest struct {
	Name        string `json:"name"`
	Logo        string `json:"logo,omitempty"`
	Description string `json:"description"`
}

// POST /v1/organizations
//
// The owner is always the session user; the request cannot create an
// organization on someone else's behalf.
func (h *OrganizationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := h.sessionService.Current()
	if user == nil {
		writeError(w, apperrors.NoSession())
		return
	}

	var req createOrganizationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	org, err := h.orgService.CreateOrganization(r.Context(), model.CreateOrganizationParams{
		Name:        req.Name,
		Logo:        req.Logo,
		Description: req.Description,
		OwnerID:     user.Email,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, org)
}

// PATCH /v1/organizations/{orgID}
func (h *OrganizationHandler) Update(w http.ResponseWriter, r *http.Request) {
	var params model.UpdateOrganizationParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	if err := h.orgService.UpdateOrganization(r.Context(), chi.URLParam(r, "orgID"), params); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /v1/organizations/{orgID}
func (h *OrganizationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.orgService.DeleteOrganization(r.Context(), chi.URLParam(r, "orgID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// POST /v1/organizations/{orgID}/postings
func (h *OrganizationHandler) AddPosting(w http.ResponseWriter, r *http.Request) {
	var params model.CreatePostingParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	posting, err := h.orgService.AddPosting(r.Context(), chi.URLParam(r, "orgID"), params)
	if err != nil {
		writeError(w, err)
		return
	}
	if posting == nil {
		writeError(w, apperrors.NotFound("Organization"))
		return
	}

	writeJSON(w, http.StatusCreated, posting)
}

// PATCH /v1/organizations/{orgID}/postings/{postingID}
func (h *OrganizationHandler) UpdatePosting(w http.ResponseWriter, r *http.Request) {
	var params model.UpdatePostingParams
	if err := decodeJSON(r, &params); err != nil {
		writeError(w, err)
		return
	}

	orgID := chi.URLParam(r, "orgID")
	postingID := chi.URLParam(r, "postingID")
	if err := h.orgService.UpdatePosting(r.Context(), orgID, postingID, params); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DELETE /v1/organizations/{orgID}/postings/{postingID}
func (h *OrganizationHandler) DeletePosting(w http.ResponseWriter, r *http.Request) {
	orgID := chi.URLParam(r, "orgID")
	postingID := chi.URLParam(r, "postingID")
	if err := h.orgService.DeletePosting(r.Context(), orgID, postingID); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
