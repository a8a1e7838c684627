// File: internal/services/chat/interface.go
package chat

import (
	"context"
	"time"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/client"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// CreationAPI creates conversations on the platform.
type CreationAPI interface {
	CreateFirstPrompt(ctx context.Context, req client.FirstPromptRequest) (*client.FirstPromptResult, error)
}

// TitleAPI generates conversation titles.
type TitleAPI interface {
	GenerateTitle(ctx context.Context, conversation, prompt string) (string, error)
}

// API combines what the creation flow needs from the platform.
type API interface {
	CreationAPI
	TitleAPI
}

// UI is the front end the flow reports to.
type UI interface {
	Notify(n Notice)
	Navigate(route string)
	SetDocumentTitle(title string)
}

// Scheduler arranges for a restriction to be cleared when it expires.
type Scheduler interface {
	Schedule(mode domain.Mode, comebackTime time.Time)
}
