// File: internal/store/content.go
package store

import (
	"sync"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Content stashes first-turn attachment metadata so the conversation page
// can render it before the full conversation loads.
type Content struct {
	mu    sync.RWMutex
	input map[string][]domain.Attachment
}

func NewContent() *Content {
	return &Content{input: make(map[string][]domain.Attachment)}
}

// SetInputContent stores attachment metadata for session. Raw bytes are
// dropped; only names and references are kept.
func (c *Content) SetInputContent(session string, attachments []domain.Attachment) {
	meta := make([]domain.Attachment, 0, len(attachments))
	for _, a := range attachments {
		a.Data = nil
		meta = append(meta, a)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input[session] = meta
}

func (c *Content) InputContent(session string) []domain.Attachment {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.Attachment(nil), c.input[session]...)
}

func (c *Content) Clear(session string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.input, session)
}
