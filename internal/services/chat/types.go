// File: internal/services/chat/types.go
package chat

import (
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Logger defines the logging interface used across chat services
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	Debug(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
}

// Outcome is how a submission ended when it did not fail.
type Outcome int

const (
	OutcomeCreated Outcome = iota
	OutcomeBlocked
	OutcomeCombineDisabled
	OutcomeCompareDisabled
	OutcomeLimitReached
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeBlocked:
		return "blocked"
	case OutcomeCombineDisabled:
		return "combine_disabled"
	case OutcomeCompareDisabled:
		return "compare_disabled"
	case OutcomeLimitReached:
		return "limit_reached"
	default:
		return "unknown"
	}
}

type NoticeKind string

const (
	NoticeInfo    NoticeKind = "info"
	NoticeWarning NoticeKind = "warning"
	NoticeError   NoticeKind = "error"
)

// ActionRetry asks the front end to offer resubmitting the prompt.
const ActionRetry = "retry"

// Notice is a user facing notification.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
	Action  string
}

// Request is a first prompt as typed by the user.
type Request struct {
	Prompt      string
	Type        domain.ContentType
	ProjectID   string
	Attachments []domain.Attachment
}

// Result describes a submission that reached a decision.
type Result struct {
	Outcome      Outcome
	Conversation domain.Conversation
	Restriction  *domain.Restriction
}
