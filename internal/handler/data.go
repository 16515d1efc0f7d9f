package handler

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/voltra-app/voltra-go/internal/service"
)

// DataHandler exposes the full app reset.
type DataHandler struct {
	sessionService *service.SessionService
	orgService     *service.OrganizationService
}

func NewDataHandler(sessionService *service.SessionService, orgService *service.OrganizationService) *DataHandler {
	return &DataHandler{
		sessionService: sessionService,
		orgService:     orgService,
	}
}

// DELETE /v1/data
func (h *DataHandler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.sessionService.ClearAllData(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear account data")
		writeError(w, err)
		return
	}
	if err := h.orgService.ClearAllData(ctx); err != nil {
		log.Error().Err(err).Msg("failed to clear organization data")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}
