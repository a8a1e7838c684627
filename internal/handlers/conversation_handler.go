// File: internal/handlers/conversation_handler.go
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/gorilla/mux"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/ratelimit"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/ai"
)

const (
	maxUploadSize = 32 << 20
	// modeCooldown is how long a disabled combine or compare mode stays off.
	modeCooldown = 15 * time.Minute
)

// Logger is what the handlers log through.
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// ConversationOptions switch server side restrictions on.
type ConversationOptions struct {
	DisableCombine bool
	DisableCompare bool
}

type ConversationHandler struct {
	Backend *Backend
	Titles  ai.TitleProvider
	Limiter *ratelimit.MemoryRateLimiter
	Options ConversationOptions
	Clock   clock.Clock
	Logger  Logger
}

func NewConversationHandler(b *Backend, titles ai.TitleProvider, limiter *ratelimit.MemoryRateLimiter, opts ConversationOptions, clk clock.Clock, logger Logger) *ConversationHandler {
	if clk == nil {
		clk = clock.New()
	}
	return &ConversationHandler{Backend: b, Titles: titles, Limiter: limiter, Options: opts, Clock: clk, Logger: logger}
}

type firstPromptRequest struct {
	Models    []string           `json:"models"`
	Type      domain.ContentType `json:"type"`
	Prompt    string             `json:"prompt"`
	Combine   bool               `json:"combine"`
	Compare   bool               `json:"compare"`
	WebSearch bool               `json:"web_search"`
	ProjectID string             `json:"project_id"`
	FileUUIDs []string           `json:"file_uuids"`
	// raw uploads from multipart requests
	Files []domain.ProjectFile `json:"-"`
}

type controlResponse struct {
	StatusCode   string    `json:"status_code"`
	Message      string    `json:"message"`
	ComebackTime time.Time `json:"comeback_time"`
}

// CreateFirstPrompt serves POST /create/first-prompt. Refusals are 200
// responses carrying a status_code sentinel.
func (h *ConversationHandler) CreateFirstPrompt(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}

	var req firstPromptRequest
	var err error
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		req, err = parseMultipartPrompt(r)
	} else {
		err = decodeJSON(r, &req)
	}
	if err != nil {
		writeError(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}

	req.Prompt = strings.TrimSpace(req.Prompt)
	switch {
	case req.Prompt == "":
		writeError(w, "Prompt is required", http.StatusUnprocessableEntity)
		return
	case !req.Type.Valid():
		writeError(w, "Unknown content type", http.StatusUnprocessableEntity)
		return
	case len(req.Models) == 0:
		writeError(w, "At least one model is required", http.StatusUnprocessableEntity)
		return
	}

	now := h.Clock.Now()
	if req.Combine && h.Options.DisableCombine {
		writeJSON(w, http.StatusOK, controlResponse{StatusCode: "combine_false", Message: "Combine is temporarily unavailable.", ComebackTime: now.Add(modeCooldown)})
		return
	}
	if req.Compare && h.Options.DisableCompare {
		writeJSON(w, http.StatusOK, controlResponse{StatusCode: "compare_false", Message: "Compare is temporarily unavailable.", ComebackTime: now.Add(modeCooldown)})
		return
	}
	if allowed, info := h.Limiter.Allow(user); !allowed {
		h.Logger.Warn("prompt limit reached", "user", user, "reset", info.ResetTime)
		writeJSON(w, http.StatusOK, controlResponse{
			StatusCode:   "limit_reached",
			Message:      fmt.Sprintf("You have used all %d prompts of this period.", h.Limiter.Limit()),
			ComebackTime: info.ResetTime,
		})
		return
	}

	conv, err := h.Backend.CreateConversation(user, req.Type, req.Models, req.ProjectID, req.Files)
	if err != nil {
		writeBackendError(w, err)
		return
	}
	h.Logger.Info("conversation created", "user", user, "session", conv.Session, "models", len(req.Models), "files", len(req.Files)+len(req.FileUUIDs))
	writeJSON(w, http.StatusOK, map[string]string{"session": conv.Session, "prompt_id": conv.PromptID})
}

// parseMultipartPrompt reads indexed form fields such as models[0] and
// input_content[uploaded_files][0][file].
func parseMultipartPrompt(r *http.Request) (firstPromptRequest, error) {
	var req firstPromptRequest
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return req, err
	}
	form := r.MultipartForm

	req.Models = indexed(form.Value, "models[%d]")
	req.FileUUIDs = indexed(form.Value, "file_uuids[%d]")
	req.Type = domain.ContentType(r.FormValue("type"))
	req.Prompt = r.FormValue("prompt")
	req.Combine, _ = strconv.ParseBool(r.FormValue("combine"))
	req.Compare, _ = strconv.ParseBool(r.FormValue("compare"))
	req.WebSearch, _ = strconv.ParseBool(r.FormValue("web_search"))
	req.ProjectID = r.FormValue("project_id")

	for i := 0; ; i++ {
		prefix := fmt.Sprintf("input_content[uploaded_files][%d]", i)
		headers := form.File[prefix+"[file]"]
		if len(headers) == 0 {
			break
		}
		name := r.FormValue(prefix + "[file_name]")
		if name == "" {
			name = headers[0].Filename
		}
		size, err := strconv.ParseInt(r.FormValue(prefix+"[file_size]"), 10, 64)
		if err != nil {
			size = headers[0].Size
		}
		req.Files = append(req.Files, domain.ProjectFile{
			Name:     name,
			MimeType: r.FormValue(prefix + "[file_type]"),
			Size:     size,
		})
	}
	return req, nil
}

func indexed(values map[string][]string, pattern string) []string {
	var out []string
	for i := 0; ; i++ {
		v, ok := values[fmt.Sprintf(pattern, i)]
		if !ok || len(v) == 0 {
			return out
		}
		out = append(out, v[0])
	}
}

// GenerateTitle serves POST /generate/title.
func (h *ConversationHandler) GenerateTitle(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	var body struct {
		Conversation string `json:"conversation"`
		Prompt       string `json:"prompt"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Conversation == "" {
		writeError(w, "conversation and prompt are required", http.StatusBadRequest)
		return
	}
	if _, err := h.Backend.Conversation(user, body.Conversation); err != nil {
		writeBackendError(w, err)
		return
	}

	title, err := h.Titles.GenerateTitle(r.Context(), body.Prompt)
	if err != nil {
		h.Logger.Error("title generation failed", "session", body.Conversation, "error", err)
		writeError(w, "Could not generate a title", http.StatusBadGateway)
		return
	}
	if err := h.Backend.Rename(user, body.Conversation, title); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"title": title})
}

// ListHistory serves GET /history?type=.
func (h *ConversationHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	ct, err := domain.ParseContentType(r.URL.Query().Get("type"))
	if err != nil {
		writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeList(w, h.Backend.History(user, ct))
}

// RenameConversation serves PATCH /conversations/{session}.
func (h *ConversationHandler) RenameConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	var body struct {
		Title string `json:"title"`
	}
	if err := decodeJSON(r, &body); err != nil || strings.TrimSpace(body.Title) == "" {
		writeError(w, "Title is required", http.StatusBadRequest)
		return
	}
	if err := h.Backend.Rename(user, mux.Vars(r)["session"], strings.TrimSpace(body.Title)); err != nil {
		writeBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteConversation serves DELETE /conversations/{session}.
func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	if err := h.Backend.Delete(user, mux.Vars(r)["session"]); err != nil {
		writeBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// MoveConversation serves POST /conversations/{session}/move.
func (h *ConversationHandler) MoveConversation(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	var body struct {
		ProjectID string `json:"project_id"`
	}
	if err := decodeJSON(r, &body); err != nil {
		writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.Backend.Move(user, mux.Vars(r)["session"], body.ProjectID); err != nil {
		writeBackendError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListConversationModels serves GET /conversations/{session}/models.
func (h *ConversationHandler) ListConversationModels(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	models, err := h.Backend.ConversationModels(user, mux.Vars(r)["session"])
	if err != nil {
		writeBackendError(w, err)
		return
	}
	writeList(w, models)
}

// UpdateActiveStatus serves POST /conversation-model-instance/update-active-status.
func (h *ConversationHandler) UpdateActiveStatus(w http.ResponseWriter, r *http.Request) {
	user, ok := userFrom(w, r)
	if !ok {
		return
	}
	var body struct {
		Conversation string `json:"conversation"`
		ModelUID     string `json:"model_uid"`
		Active       bool   `json:"active"`
	}
	if err := decodeJSON(r, &body); err != nil || body.Conversation == "" || body.ModelUID == "" {
		writeError(w, "conversation and model_uid are required", http.StatusBadRequest)
		return
	}
	if err := h.Backend.SetModelActive(user, body.Conversation, body.ModelUID, body.Active); err != nil {
		writeBackendError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"model_uid": body.ModelUID, "active": body.Active})
}
