package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/md-rashed-zaman/fuelstation/libs/docstore"
	"github.com/md-rashed-zaman/fuelstation/libs/httpx"
	"github.com/md-rashed-zaman/fuelstation/services/station-service/internal/validation"
)

type messageResponse struct {
	Message string `json:"message"`
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			httpx.Error(w, http.StatusRequestEntityTooLarge, "Request body too large")
			return false
		}
		httpx.Error(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func validationFailed(w http.ResponseWriter, v validation.Violations) {
	httpx.ErrorWithDetails(w, http.StatusBadRequest, "Validation error", v)
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	httpx.Error(w, http.StatusNotFound, "Route not found")
}

func methodNotAllowed(w http.ResponseWriter, _ *http.Request) {
	httpx.Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

func isNotFound(err error) bool {
	return errors.Is(err, docstore.ErrNotFound)
}
