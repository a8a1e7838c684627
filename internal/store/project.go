// File: internal/store/project.go
package store

import (
	"errors"
	"sync"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

var ErrProjectNotFound = errors.New("project not found")

// Projects holds project entities with their conversations and files.
// Every project keeps its own copy of its histories; no entry is shared.
type Projects struct {
	mu       sync.RWMutex
	projects []domain.Project
}

func NewProjects() *Projects { return &Projects{} }

func (s *Projects) SetProjects(list []domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects = make([]domain.Project, 0, len(list))
	for _, p := range list {
		s.projects = append(s.projects, owned(p))
	}
}

// Add inserts a project at the front, replacing one with the same uuid.
func (s *Projects) Add(p domain.Project) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := s.indexLocked(p.UUID); i >= 0 {
		s.projects = append(s.projects[:i:i], s.projects[i+1:]...)
	}
	s.projects = append([]domain.Project{owned(p)}, s.projects...)
}

func (s *Projects) Get(uuid string) (domain.Project, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexLocked(uuid); i >= 0 {
		return cloneProject(s.projects[i]), true
	}
	return domain.Project{}, false
}

func (s *Projects) List() []domain.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Project, 0, len(s.projects))
	for _, p := range s.projects {
		out = append(out, cloneProject(p))
	}
	return out
}

// Update replaces the descriptive fields of a project, keeping its files
// and histories.
func (s *Projects) Update(p domain.Project) error {
	return s.mutate(p.UUID, func(cur *domain.Project) {
		cur.Name = p.Name
		cur.Description = p.Description
		cur.Color = p.Color
		cur.Instructions = p.Instructions
	})
}

func (s *Projects) Remove(uuid string) (domain.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(uuid)
	if i < 0 {
		return domain.Project{}, false
	}
	p := s.projects[i]
	s.projects = append(s.projects[:i:i], s.projects[i+1:]...)
	return p, true
}

// SetHistories replaces the conversation list of a project.
func (s *Projects) SetHistories(uuid string, list []domain.Conversation) error {
	return s.mutate(uuid, func(p *domain.Project) {
		p.Histories = make([]domain.Conversation, 0, len(list))
		for _, c := range list {
			c.ProjectID = uuid
			p.Histories = append(p.Histories, c)
		}
	})
}

// AddHistory prepends a conversation to the project.
func (s *Projects) AddHistory(uuid string, c domain.Conversation) error {
	c.ProjectID = uuid
	return s.mutate(uuid, func(p *domain.Project) {
		p.Histories = removeConversation(p.Histories, c.Session)
		p.Histories = append([]domain.Conversation{c}, p.Histories...)
	})
}

// RemoveHistory deletes a conversation from the project and returns it.
func (s *Projects) RemoveHistory(uuid, session string) (domain.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(uuid)
	if i < 0 {
		return domain.Conversation{}, false
	}
	for _, c := range s.projects[i].Histories {
		if c.Session == session {
			s.projects[i].Histories = removeConversation(s.projects[i].Histories, session)
			return c, true
		}
	}
	return domain.Conversation{}, false
}

// RenameHistory updates the title of a project conversation.
func (s *Projects) RenameHistory(uuid, session, title string) bool {
	return s.updateHistory(uuid, session, func(c *domain.Conversation) { c.Title = title })
}

func (s *Projects) SetHistoryTitleState(uuid, session string, state domain.TitleState) bool {
	return s.updateHistory(uuid, session, func(c *domain.Conversation) { c.TitleState = state })
}

// OwnerOf returns the uuid of the project owning session.
func (s *Projects) OwnerOf(session string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.projects {
		if p.HasConversation(session) {
			return p.UUID, true
		}
	}
	return "", false
}

func (s *Projects) SetFiles(uuid string, files []domain.ProjectFile) error {
	return s.mutate(uuid, func(p *domain.Project) {
		p.Files = append([]domain.ProjectFile(nil), files...)
	})
}

func (s *Projects) AddFile(uuid string, f domain.ProjectFile) error {
	return s.mutate(uuid, func(p *domain.Project) {
		p.Files = append(p.Files, f)
	})
}

func (s *Projects) RemoveFile(uuid, fileUUID string) error {
	return s.mutate(uuid, func(p *domain.Project) {
		for i, f := range p.Files {
			if f.UUID == fileUUID {
				p.Files = append(p.Files[:i:i], p.Files[i+1:]...)
				return
			}
		}
	})
}

func (s *Projects) updateHistory(uuid, session string, fn func(*domain.Conversation)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(uuid)
	if i < 0 {
		return false
	}
	for j := range s.projects[i].Histories {
		if s.projects[i].Histories[j].Session == session {
			fn(&s.projects[i].Histories[j])
			return true
		}
	}
	return false
}

func (s *Projects) mutate(uuid string, fn func(*domain.Project)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(uuid)
	if i < 0 {
		return ErrProjectNotFound
	}
	fn(&s.projects[i])
	return nil
}

func (s *Projects) indexLocked(uuid string) int {
	for i, p := range s.projects {
		if p.UUID == uuid {
			return i
		}
	}
	return -1
}

func removeConversation(list []domain.Conversation, session string) []domain.Conversation {
	out := list[:0:0]
	for _, c := range list {
		if c.Session != session {
			out = append(out, c)
		}
	}
	return out
}

// owned copies p and points every history entry at it.
func owned(p domain.Project) domain.Project {
	p = cloneProject(p)
	for i := range p.Histories {
		p.Histories[i].ProjectID = p.UUID
	}
	return p
}

func cloneProject(p domain.Project) domain.Project {
	p.Files = append([]domain.ProjectFile(nil), p.Files...)
	p.Histories = append([]domain.Conversation(nil), p.Histories...)
	return p
}
