package services

import (
	"context"
	"strings"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// HistoryAPI is the conversation history part of the platform API.
type HistoryAPI interface {
	ListHistory(ctx context.Context, ct domain.ContentType) ([]domain.Conversation, error)
	RenameConversation(ctx context.Context, session, title string) error
	DeleteConversation(ctx context.Context, session string) error
}

type HistoryService struct {
	api    HistoryAPI
	stores *store.Stores
	logger Logger
}

func NewHistoryService(api HistoryAPI, stores *store.Stores, logger Logger) *HistoryService {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &HistoryService{api: api, stores: stores, logger: logger}
}

// Load replaces the history entries of ct with the server's list. Entries
// of other content types are kept; entries owned by a project are skipped.
func (s *HistoryService) Load(ctx context.Context, ct domain.ContentType) error {
	list, err := s.api.ListHistory(ctx, ct)
	if err != nil {
		s.logger.Error("failed to load history", "type", ct, "error", err)
		return err
	}

	merged := make([]domain.Conversation, 0, len(list)+s.stores.History.Len())
	for _, c := range list {
		if c.ProjectID != "" {
			continue
		}
		if c.Type == "" {
			c.Type = ct
		}
		c.TitleState = domain.TitleTitled
		merged = append(merged, c)
	}
	for _, c := range s.stores.History.List() {
		if c.Type != ct {
			merged = append(merged, c)
		}
	}
	s.stores.History.SetHistory(merged)
	return nil
}

func (s *HistoryService) Rename(ctx context.Context, session, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return ErrEmptyTitle
	}
	if _, ok := s.stores.Locate(session); !ok {
		return ErrConversationNotFound
	}
	if err := s.api.RenameConversation(ctx, session, title); err != nil {
		return err
	}
	s.stores.RenameConversation(session, title)
	s.stores.SetTitleState(session, domain.TitleTitled)
	return nil
}

// Delete removes the conversation remotely and from whichever list owns
// it. Deleting the active conversation resets the conversation store.
func (s *HistoryService) Delete(ctx context.Context, session string) error {
	if _, ok := s.stores.Locate(session); !ok {
		return ErrConversationNotFound
	}
	if err := s.api.DeleteConversation(ctx, session); err != nil {
		return err
	}
	s.stores.RemoveConversation(session)
	s.stores.Content.Clear(session)
	if s.stores.Conversation.ConversationID() == session {
		s.stores.Conversation.Reset()
	}
	s.logger.Info("conversation deleted", "session", session)
	return nil
}
