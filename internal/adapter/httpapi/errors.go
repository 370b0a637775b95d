package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/simaogato/assetboard-backend/internal/domain"
)

// mapError translates a usecase error into an HTTP status.
// Validation errors carry their message to the client; anything else
// is logged and replaced by the generic message.
func mapError(err error, generic string) (int, map[string]string) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest, map[string]string{"error": verr.Error(), "field": verr.Field}
	}

	if errors.Is(err, domain.ErrRowNotFound) {
		return http.StatusNotFound, map[string]string{"error": "not found"}
	}

	log.Printf("%s: %v", generic, err)
	return http.StatusInternalServerError, map[string]string{"error": generic}
}

func writeError(w http.ResponseWriter, err error, generic string) {
	status, body := mapError(err, generic)
	writeJSON(w, status, body)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
