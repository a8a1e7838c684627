// File: internal/handlers/project_handler.go
package handlers

import (
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

type ProjectHandler struct {
	Backend *Backend
}

func NewProjectHandler(b *Backend) *ProjectHandler {
	return &ProjectHandler{Backend: b}
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	writeList(w, h.Backend.Projects(user))
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	var p domain.Project
	if err := decodeJSON(r, &p); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		writeError(w, "Project name is required", http.StatusUnprocessableEntity)
		return
	}
	writeJSON(w, http.StatusCreated, h.Backend.CreateProject(user, p))
}

func (h *ProjectHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	list, err := h.Backend.ProjectConversations(user, mux.Vars(r)["uuid"])
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeList(w, list)
}

func (h *ProjectHandler) ListFiles(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	files, err := h.Backend.ProjectFiles(user, mux.Vars(r)["uuid"])
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeList(w, files)
}
