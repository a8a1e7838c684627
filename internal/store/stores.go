// File: internal/store/stores.go
package store

import (
	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Stores bundles the client state. Each store guards itself; the helpers
// below span the History and Projects stores without a shared lock.
type Stores struct {
	Registry     *Registry
	Selection    *Selection
	Restrictions *Restrictions
	Conversation *Conversation
	Content      *Content
	Modes        *Modes
	History      *History
	Projects     *Projects
}

func New(clk clock.Clock) *Stores {
	if clk == nil {
		clk = clock.New()
	}
	return &Stores{
		Registry:     NewRegistry(),
		Selection:    NewSelection(clk),
		Restrictions: NewRestrictions(clk),
		Conversation: NewConversation(),
		Content:      NewContent(),
		Modes:        NewModes(),
		History:      NewHistory(),
		Projects:     NewProjects(),
	}
}

// Locate finds a conversation in the project that owns it or, failing
// that, in the global history.
func (s *Stores) Locate(session string) (domain.Conversation, bool) {
	if owner, ok := s.Projects.OwnerOf(session); ok {
		p, _ := s.Projects.Get(owner)
		for _, c := range p.Histories {
			if c.Session == session {
				return c, true
			}
		}
	}
	return s.History.Get(session)
}

func (s *Stores) RenameConversation(session, title string) bool {
	if owner, ok := s.Projects.OwnerOf(session); ok {
		return s.Projects.RenameHistory(owner, session, title)
	}
	return s.History.Rename(session, title)
}

func (s *Stores) SetTitleState(session string, state domain.TitleState) bool {
	if owner, ok := s.Projects.OwnerOf(session); ok {
		return s.Projects.SetHistoryTitleState(owner, session, state)
	}
	return s.History.SetTitleState(session, state)
}

// RemoveConversation detaches a conversation from whichever list owns it.
func (s *Stores) RemoveConversation(session string) (domain.Conversation, bool) {
	if owner, ok := s.Projects.OwnerOf(session); ok {
		return s.Projects.RemoveHistory(owner, session)
	}
	return s.History.Remove(session)
}

// InsertConversation places c in its project when ProjectID is set and in
// the global history otherwise.
func (s *Stores) InsertConversation(c domain.Conversation) error {
	if c.ProjectID != "" {
		return s.Projects.AddHistory(c.ProjectID, c)
	}
	s.History.Add(c)
	return nil
}
