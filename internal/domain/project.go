// File: internal/domain/project.go
package domain

import "time"

// ProjectFile is a file uploaded to a project's knowledge.
type ProjectFile struct {
	UUID      string    `json:"uuid" yaml:"uuid"`
	Name      string    `json:"name" yaml:"name"`
	MimeType  string    `json:"mime_type,omitempty" yaml:"mime_type,omitempty"`
	Size      int64     `json:"size,omitempty" yaml:"size,omitempty"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
}

// Project groups conversations and files under shared instructions.
type Project struct {
	UUID         string         `json:"uuid" yaml:"uuid"`
	Name         string         `json:"name" yaml:"name"`
	Description  string         `json:"description,omitempty" yaml:"description,omitempty"`
	Color        string         `json:"color,omitempty" yaml:"color,omitempty"`
	Instructions string         `json:"instructions,omitempty" yaml:"instructions,omitempty"`
	Files        []ProjectFile  `json:"files,omitempty" yaml:"files,omitempty"`
	Histories    []Conversation `json:"histories,omitempty" yaml:"histories,omitempty"`
}

// HasConversation reports whether the project owns the session.
func (p Project) HasConversation(session string) bool {
	for _, h := range p.Histories {
		if h.Session == session {
			return true
		}
	}
	return false
}
