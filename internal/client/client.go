// File: internal/client/client.go
package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/auth"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Logger is the subset of the application logger the client needs.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type Config struct {
	BaseURL string
	Token   string
	Timeout time.Duration
	Retry   *RetryConfig
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return &APIError{Type: ErrTypeConfig, Operation: "config", Message: "base URL is required"}
	}
	if c.Timeout <= 0 {
		return &APIError{Type: ErrTypeConfig, Operation: "config", Message: "timeout must be positive"}
	}
	return nil
}

func DefaultConfig() *Config {
	return &Config{
		Timeout: 60 * time.Second,
		Retry:   DefaultRetryConfig(),
	}
}

// Client talks to the platform REST API.
type Client struct {
	config *Config
	http   *resty.Client
	logger Logger
	now    func() time.Time
}

func New(config *Config, logger Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if config.Retry == nil {
		config.Retry = DefaultRetryConfig()
	}
	if logger == nil {
		logger = nopLogger{}
	}

	hc := resty.New().
		SetBaseURL(strings.TrimRight(config.BaseURL, "/")).
		SetTimeout(config.Timeout).
		SetHeader("Accept", "application/json")
	if config.Token != "" {
		hc.SetAuthToken(config.Token)
	}

	return &Client{config: config, http: hc, logger: logger, now: time.Now}, nil
}

// CreateFirstPrompt creates a conversation with its first prompt. Requests
// carrying raw attachments are sent as multipart form data, all others as
// JSON. A sentinel status is returned as a control result, not an error.
func (c *Client) CreateFirstPrompt(ctx context.Context, req FirstPromptRequest) (*FirstPromptResult, error) {
	const op = "create_first_prompt"
	var out firstPromptResponse
	err := c.do(ctx, op, http.MethodPost, "/create/first-prompt", func(r *resty.Request) {
		if domain.HasRawAttachments(req.Attachments) {
			applyMultipart(r, req)
			return
		}
		r.SetBody(jsonBody(req))
	}, &out)
	if err != nil {
		return nil, err
	}

	result := &FirstPromptResult{
		Status:   out.StatusCode,
		Message:  out.Message,
		Session:  string(out.Session),
		PromptID: string(out.PromptID),
	}
	if out.ComebackTime != nil {
		result.ComebackTime = *out.ComebackTime
	}

	if _, known := result.Status.Mode(); !known {
		if result.Status != StatusNone {
			c.logger.Warn("ignoring unknown status code", "status_code", result.Status)
			result.Status = StatusNone
		}
		if result.Session == "" {
			return nil, &APIError{Type: ErrTypeDecode, Operation: op, Message: "response carries neither a session nor a status code"}
		}
	}
	return result, nil
}

// GenerateTitle asks the backend for a title of a new conversation.
func (c *Client) GenerateTitle(ctx context.Context, conversation, prompt string) (string, error) {
	var out titleResponse
	err := c.do(ctx, "generate_title", http.MethodPost, "/generate/title", func(r *resty.Request) {
		r.SetBody(map[string]string{"conversation": conversation, "prompt": prompt})
	}, &out)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(out.Title) == "" {
		return "", &APIError{Type: ErrTypeDecode, Operation: "generate_title", Message: "empty title"}
	}
	return out.Title, nil
}

func (c *Client) ListModels(ctx context.Context, ct domain.ContentType) ([]domain.Model, error) {
	var out listResponse[domain.Model]
	err := c.get(ctx, "list_models", "/models", func(r *resty.Request) {
		r.SetQueryParam("type", string(ct))
	}, &out)
	return out.Data, err
}

func (c *Client) SetFavorite(ctx context.Context, uid string, favorite bool) error {
	return c.do(ctx, "set_favorite", http.MethodPost, "/models/{uid}/favorite", func(r *resty.Request) {
		r.SetPathParam("uid", uid).SetBody(map[string]bool{"favorite": favorite})
	}, nil)
}

func (c *Client) ListHistory(ctx context.Context, ct domain.ContentType) ([]domain.Conversation, error) {
	var out listResponse[domain.Conversation]
	err := c.get(ctx, "list_history", "/history", func(r *resty.Request) {
		r.SetQueryParam("type", string(ct))
	}, &out)
	return out.Data, err
}

func (c *Client) RenameConversation(ctx context.Context, session, title string) error {
	return c.do(ctx, "rename_conversation", http.MethodPatch, "/conversations/{session}", func(r *resty.Request) {
		r.SetPathParam("session", session).SetBody(map[string]string{"title": title})
	}, nil)
}

func (c *Client) DeleteConversation(ctx context.Context, session string) error {
	return c.do(ctx, "delete_conversation", http.MethodDelete, "/conversations/{session}", func(r *resty.Request) {
		r.SetPathParam("session", session)
	}, nil)
}

// MoveConversation assigns session to projectID; an empty projectID moves
// it back to the global history.
func (c *Client) MoveConversation(ctx context.Context, session, projectID string) error {
	return c.do(ctx, "move_conversation", http.MethodPost, "/conversations/{session}/move", func(r *resty.Request) {
		r.SetPathParam("session", session).SetBody(map[string]string{"project_id": projectID})
	}, nil)
}

func (c *Client) ListConversationModels(ctx context.Context, session string) ([]ConversationModel, error) {
	var out listResponse[ConversationModel]
	err := c.get(ctx, "list_conversation_models", "/conversations/{session}/models", func(r *resty.Request) {
		r.SetPathParam("session", session)
	}, &out)
	return out.Data, err
}

func (c *Client) UpdateModelActiveStatus(ctx context.Context, conversation, uid string, active bool) error {
	body := map[string]interface{}{"conversation": conversation, "model_uid": uid, "active": active}
	return c.do(ctx, "update_active_status", http.MethodPost, "/conversation-model-instance/update-active-status", func(r *resty.Request) {
		r.SetBody(body)
	}, nil)
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	var out listResponse[domain.Project]
	err := c.get(ctx, "list_projects", "/projects", nil, &out)
	return out.Data, err
}

func (c *Client) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	var out domain.Project
	err := c.do(ctx, "create_project", http.MethodPost, "/projects", func(r *resty.Request) {
		r.SetBody(p)
	}, &out)
	return out, err
}

func (c *Client) ListProjectConversations(ctx context.Context, projectID string) ([]domain.Conversation, error) {
	var out listResponse[domain.Conversation]
	err := c.get(ctx, "list_project_conversations", "/projects/{uuid}/conversations", func(r *resty.Request) {
		r.SetPathParam("uuid", projectID)
	}, &out)
	return out.Data, err
}

func (c *Client) ListProjectFiles(ctx context.Context, projectID string) ([]domain.ProjectFile, error) {
	var out listResponse[domain.ProjectFile]
	err := c.get(ctx, "list_project_files", "/projects/{uuid}/files", func(r *resty.Request) {
		r.SetPathParam("uuid", projectID)
	}, &out)
	return out.Data, err
}

// get is do with retries; only used for idempotent reads.
func (c *Client) get(ctx context.Context, op, path string, prepare func(*resty.Request), out interface{}) error {
	return RetryWithBackoff(ctx, c.config.Retry, func(ctx context.Context) error {
		return c.do(ctx, op, http.MethodGet, path, prepare, out)
	})
}

func (c *Client) do(ctx context.Context, op, method, path string, prepare func(*resty.Request), out interface{}) error {
	if c.config.Token != "" && auth.Expired(c.config.Token, c.now()) {
		return &APIError{Type: ErrTypeAuth, Operation: op, Message: "session expired, sign in again"}
	}

	req := c.http.R().SetContext(ctx)
	if prepare != nil {
		prepare(req)
	}

	start := c.now()
	resp, err := req.Execute(method, path)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return &APIError{Type: ErrTypeNetwork, Operation: op, Message: "request failed", Cause: err}
	}
	c.logger.Debug("api call", "operation", op, "method", method, "path", path,
		"status", resp.StatusCode(), "duration", c.now().Sub(start).String())

	if resp.IsError() {
		return c.statusError(op, resp)
	}
	if out == nil || len(resp.Body()) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &APIError{Type: ErrTypeDecode, Operation: op, Code: resp.StatusCode(), Message: "invalid response body", Cause: err}
	}
	return nil
}

func (c *Client) statusError(op string, resp *resty.Response) error {
	var body errorResponse
	msg := strings.TrimSpace(resp.String())
	if err := json.Unmarshal(resp.Body(), &body); err == nil && body.text() != "" {
		msg = body.text()
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode())
	}

	errType := ErrTypeHTTP
	switch resp.StatusCode() {
	case http.StatusUnauthorized, http.StatusForbidden:
		errType = ErrTypeAuth
	case http.StatusTooManyRequests:
		errType = ErrTypeRateLimit
	}
	return &APIError{Type: errType, Operation: op, Code: resp.StatusCode(), Message: msg}
}

// IsNotFound reports whether err is an HTTP 404 from the API.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == http.StatusNotFound
}

func (c *Client) String() string {
	return fmt.Sprintf("client(%s)", c.config.BaseURL)
}
