// File: internal/store/history.go
package store

import (
	"sync"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// History is the flat list of conversations not owned by a project,
// newest first.
type History struct {
	mu      sync.RWMutex
	entries []domain.Conversation
}

func NewHistory() *History { return &History{} }

func (h *History) SetHistory(list []domain.Conversation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append([]domain.Conversation(nil), list...)
}

// Add prepends an entry, replacing any entry with the same session.
func (h *History) Add(c domain.Conversation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c.Session)
	h.entries = append([]domain.Conversation{c}, h.entries...)
}

func (h *History) Get(session string) (domain.Conversation, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, e := range h.entries {
		if e.Session == session {
			return e, true
		}
	}
	return domain.Conversation{}, false
}

// Rename updates the title of session and reports whether it exists.
func (h *History) Rename(session, title string) bool {
	return h.update(session, func(c *domain.Conversation) { c.Title = title })
}

// SetTitleState records the title state machine position for session.
func (h *History) SetTitleState(session string, state domain.TitleState) bool {
	return h.update(session, func(c *domain.Conversation) { c.TitleState = state })
}

// Remove deletes session and returns the removed entry.
func (h *History) Remove(session string) (domain.Conversation, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.removeLocked(session)
}

func (h *History) List() []domain.Conversation {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]domain.Conversation(nil), h.entries...)
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.entries)
}

func (h *History) update(session string, fn func(*domain.Conversation)) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for i := range h.entries {
		if h.entries[i].Session == session {
			fn(&h.entries[i])
			return true
		}
	}
	return false
}

func (h *History) removeLocked(session string) (domain.Conversation, bool) {
	for i, e := range h.entries {
		if e.Session == session {
			h.entries = append(h.entries[:i:i], h.entries[i+1:]...)
			return e, true
		}
	}
	return domain.Conversation{}, false
}
