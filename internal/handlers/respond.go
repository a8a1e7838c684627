// File: internal/handlers/respond.go
package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/middleware"
)

// Helper function for writing JSON responses
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Helper function for writing JSON errors
func writeError(w http.ResponseWriter, message string, status int) {
	writeJSON(w, status, map[string]string{"error": message})
}

type listBody struct {
	Data interface{} `json:"data"`
}

func writeList(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, listBody{Data: data})
}

// writeBackendError maps Backend errors onto status codes.
func writeBackendError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, "Not found", http.StatusNotFound)
	case errors.Is(err, ErrUnknownModel):
		writeError(w, "Unknown model", http.StatusNotFound)
	case errors.Is(err, ErrModelMismatch):
		writeError(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		writeError(w, "Internal server error", http.StatusInternalServerError)
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	return dec.Decode(v)
}

func userFrom(w http.ResponseWriter, r *http.Request) (string, bool) {
	user := middleware.UserID(r.Context())
	if user == "" {
		writeError(w, "Unauthorized", http.StatusUnauthorized)
		return "", false
	}
	return user, true
}
