// File: internal/handlers/router.go
package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/middleware"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/ratelimit"
)

// RouterConfig carries everything NewRouter mounts.
type RouterConfig struct {
	JWTSecret      []byte
	RequestLimiter *ratelimit.MemoryRateLimiter
	Models         *ModelHandler
	Projects       *ProjectHandler
	Conversations  *ConversationHandler
	Logger         Logger
}

// NewRouter mounts the platform API. Everything but /health requires a
// bearer token.
func NewRouter(cfg RouterConfig) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RecoverPanic(cfg.Logger))
	r.Use(middleware.LoggingMiddleware(cfg.Logger))
	if cfg.RequestLimiter != nil {
		r.Use(middleware.RateLimitMiddleware(cfg.RequestLimiter, cfg.Logger))
	}

	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.NewJWTMiddleware(cfg.JWTSecret, cfg.Logger))

	api.HandleFunc("/models", cfg.Models.ListModels).Methods(http.MethodGet)
	api.HandleFunc("/models/{uid}/favorite", cfg.Models.SetFavorite).Methods(http.MethodPost)

	c := cfg.Conversations
	api.HandleFunc("/create/first-prompt", c.CreateFirstPrompt).Methods(http.MethodPost)
	api.HandleFunc("/generate/title", c.GenerateTitle).Methods(http.MethodPost)
	api.HandleFunc("/history", c.ListHistory).Methods(http.MethodGet)
	api.HandleFunc("/conversations/{session}", c.RenameConversation).Methods(http.MethodPatch)
	api.HandleFunc("/conversations/{session}", c.DeleteConversation).Methods(http.MethodDelete)
	api.HandleFunc("/conversations/{session}/move", c.MoveConversation).Methods(http.MethodPost)
	api.HandleFunc("/conversations/{session}/models", c.ListConversationModels).Methods(http.MethodGet)
	api.HandleFunc("/conversation-model-instance/update-active-status", c.UpdateActiveStatus).Methods(http.MethodPost)

	p := cfg.Projects
	api.HandleFunc("/projects", p.ListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", p.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{uuid}/conversations", p.ListConversations).Methods(http.MethodGet)
	api.HandleFunc("/projects/{uuid}/files", p.ListFiles).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})
	return r
}
