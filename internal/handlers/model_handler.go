// File: internal/handlers/model_handler.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

type ModelHandler struct {
	Backend *Backend
}

func NewModelHandler(b *Backend) *ModelHandler {
	return &ModelHandler{Backend: b}
}

// ListModels serves GET /models?type=.
func (h *ModelHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	ct, err := domain.ParseContentType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeList(w, h.Backend.Models(user, ct))
}

// SetFavorite serves POST /models/{uid}/favorite.
func (h *ModelHandler) SetFavorite(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	var body struct {
		Favorite bool `json:"favorite"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	uid := mux.Vars(r)["uid"]
	if err := h.Backend.SetFavorite(user, uid, body.Favorite); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"model_uid": uid, "favorite": body.Favorite})
}
