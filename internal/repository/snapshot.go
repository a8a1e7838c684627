// File: internal/repository/snapshot.go
package repository

import (
	"time"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// Snapshot is the persisted part of the client stores. Model catalogs,
// pending selections and attachment bytes are not persisted.
type Snapshot struct {
	History      []domain.Conversation
	Projects     []domain.Project
	Restrictions []domain.Restriction
	Selected     map[domain.ContentType][]string
	Inactive     []string
	LastUpdate   time.Time

	ConversationID string
	PromptID       string

	Combined  bool
	Compare   bool
	WebSearch bool
}

// Capture copies the persistable state out of stores.
func Capture(s *store.Stores) *Snapshot {
	snap := &Snapshot{
		History:        s.History.List(),
		Projects:       s.Projects.List(),
		Restrictions:   s.Restrictions.All(),
		Selected:       make(map[domain.ContentType][]string),
		Inactive:       s.Selection.InactiveModels(),
		LastUpdate:     s.Selection.LastUpdate(),
		ConversationID: s.Conversation.ConversationID(),
		PromptID:       s.Conversation.PromptID(),
		Combined:       s.Modes.Combined(),
		Compare:        s.Modes.Compare(),
		WebSearch:      s.Modes.WebSearch(),
	}
	for _, ct := range domain.ContentTypes {
		if uids := s.Selection.SelectedModels(ct); len(uids) > 0 {
			snap.Selected[ct] = uids
		}
	}
	return snap
}

// Restore hydrates stores. Titles still in flight when the snapshot was
// taken come back as titled; expired restrictions are dropped by the
// store's own reads.
func (snap *Snapshot) Restore(s *store.Stores) {
	s.History.SetHistory(settled(snap.History))
	s.Projects.SetProjects(snap.Projects)
	for _, p := range snap.Projects {
		_ = s.Projects.SetHistories(p.UUID, settled(p.Histories))
	}

	for _, r := range snap.Restrictions {
		s.Restrictions.SetRestriction(r.Mode, r.Message, r.ComebackTime)
	}

	for ct, uids := range snap.Selected {
		s.Selection.SetSelectedModels(ct, uids)
	}
	s.Selection.SetInactiveModels(snap.Inactive)
	s.Selection.SetLastUpdate(snap.LastUpdate)

	s.Conversation.SetConversationID(snap.ConversationID)
	s.Conversation.SetPromptID(snap.PromptID)

	s.Modes.SetCombined(snap.Combined)
	s.Modes.SetCompare(snap.Compare)
	s.Modes.SetWebSearch(snap.WebSearch)
}

func settled(list []domain.Conversation) []domain.Conversation {
	out := make([]domain.Conversation, 0, len(list))
	for _, c := range list {
		c.TitleState = domain.TitleTitled
		out = append(out, c)
	}
	return out
}
