// File: internal/store/conversation.go
package store

import (
	"sync"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Conversation holds the active conversation of the session.
type Conversation struct {
	mu             sync.RWMutex
	conversationID string
	promptID       string
	generationType domain.GenerationType
	preloading     bool
}

func NewConversation() *Conversation {
	return &Conversation{generationType: domain.GenerationLoad}
}

func (c *Conversation) SetConversationID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conversationID = id
}

func (c *Conversation) ConversationID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.conversationID
}

func (c *Conversation) SetPromptID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.promptID = id
}

func (c *Conversation) PromptID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.promptID
}

func (c *Conversation) SetGenerationType(t domain.GenerationType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generationType = t
}

func (c *Conversation) GenerationType() domain.GenerationType {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generationType
}

// SetPreloading marks a submission in flight.
func (c *Conversation) SetPreloading(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.preloading = v
}

func (c *Conversation) Preloading() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.preloading
}

// Reset forgets the active conversation.
func (c *Conversation) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.conversationID = ""
	c.promptID = ""
	c.generationType = domain.GenerationLoad
	c.preloading = false
}
