package handler

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/httputil"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	httputil.WriteJSON(w, status, data)
}

func writeError(w http.ResponseWriter, err error) {
	httputil.WriteError(w, err)
}

// decodeJSON reads a request body into dst, mapping malformed JSON to a
// coded validation error.
func decodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.InvalidInput("body", "malformed JSON").WithCause(err)
	}
	return nil
}
