// File: internal/domain/conversation.go
package domain

import (
	"fmt"
	"time"
)

// PlaceholderTitle is shown until the generated title arrives.
const PlaceholderTitle = "New Conversation"

// TitleState tracks the asynchronous title of a freshly created conversation.
type TitleState string

const (
	TitleUntitled  TitleState = "untitled"
	TitleStreaming TitleState = "streaming"
	TitleTitled    TitleState = "titled"
)

// GenerationType tells the conversation page whether to stream a fresh
// response or load an existing thread.
type GenerationType string

const (
	GenerationNew  GenerationType = "new"
	GenerationLoad GenerationType = "load"
)

// Conversation is a history entry. It is owned either by the global
// history or by exactly one project.
type Conversation struct {
	Session    string      `json:"session" gorm:"primaryKey;size:64"`
	PromptID   string      `json:"prompt_id,omitempty" gorm:"size:64"`
	Title      string      `json:"title"`
	Type       ContentType `json:"type" gorm:"size:16;index"`
	ProjectID  string      `json:"project_id,omitempty" gorm:"size:64;index"`
	TitleState TitleState  `json:"-" gorm:"size:16"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// Route is the path of the page that renders the conversation.
func (c Conversation) Route() string {
	if c.ProjectID != "" {
		return fmt.Sprintf("/project/%s/%s/res/%s", c.ProjectID, c.Type, c.Session)
	}
	return fmt.Sprintf("/%s/res/%s", c.Type, c.Session)
}

// DisplayTitle falls back to the placeholder while no title is known.
func (c Conversation) DisplayTitle() string {
	if c.Title == "" {
		return PlaceholderTitle
	}
	return c.Title
}
