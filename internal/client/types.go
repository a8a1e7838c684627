// File: internal/client/types.go
package client

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// ControlStatus is the sentinel a first-prompt call may answer with
// instead of conversation data.
type ControlStatus string

const (
	StatusNone         ControlStatus = ""
	StatusCombineFalse ControlStatus = "combine_false"
	StatusCompareFalse ControlStatus = "compare_false"
	StatusLimitReached ControlStatus = "limit_reached"
)

// Mode maps a sentinel to the mode it restricts.
func (s ControlStatus) Mode() (domain.Mode, bool) {
	switch s {
	case StatusCombineFalse:
		return domain.ModeCombine, true
	case StatusCompareFalse:
		return domain.ModeCompare, true
	case StatusLimitReached:
		return domain.ModeChat, true
	}
	return "", false
}

// FlexID accepts identifiers the backend sends either as strings or numbers.
type FlexID string

func (id *FlexID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*id = FlexID(n.String())
	return nil
}

// FirstPromptRequest creates a conversation together with its first prompt.
type FirstPromptRequest struct {
	Models      []string
	Type        domain.ContentType
	Prompt      string
	Combine     bool
	Compare     bool
	WebSearch   bool
	ProjectID   string
	Attachments []domain.Attachment
}

// FirstPromptResult is either a created conversation or a control response.
type FirstPromptResult struct {
	Status       ControlStatus
	Message      string
	ComebackTime time.Time
	Session      string
	PromptID     string
}

// Control reports whether the backend answered with a sentinel.
func (r *FirstPromptResult) Control() bool { return r.Status != StatusNone }

// ConversationModel is a model instance inside a conversation.
type ConversationModel struct {
	UID    string `json:"model_uid"`
	Active bool   `json:"active"`
}

type uploadedFile struct {
	UUID     string `json:"uuid,omitempty"`
	FileName string `json:"file_name"`
	FileSize int64  `json:"file_size,omitempty"`
	FileType string `json:"file_type,omitempty"`
}

type inputContent struct {
	UploadedFiles []uploadedFile `json:"uploaded_files,omitempty"`
}

type firstPromptBody struct {
	Models       []string           `json:"models"`
	Type         domain.ContentType `json:"type"`
	Prompt       string             `json:"prompt"`
	Combine      bool               `json:"combine"`
	Compare      bool               `json:"compare"`
	WebSearch    bool               `json:"web_search"`
	ProjectID    string             `json:"project_id,omitempty"`
	FileUUIDs    []string           `json:"file_uuids,omitempty"`
	InputContent *inputContent      `json:"input_content,omitempty"`
}

type firstPromptResponse struct {
	StatusCode   ControlStatus `json:"status_code"`
	Message      string        `json:"message"`
	ComebackTime *time.Time    `json:"comeback_time"`
	Session      FlexID        `json:"session"`
	PromptID     FlexID        `json:"prompt_id"`
}

type titleResponse struct {
	Title string `json:"title"`
}

type listResponse[T any] struct {
	Data []T `json:"data"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (e errorResponse) text() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Error
}
