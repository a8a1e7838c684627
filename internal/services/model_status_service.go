package services

import (
	"context"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/client"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// ModelStatusAPI toggles model instances inside a conversation.
type ModelStatusAPI interface {
	ListConversationModels(ctx context.Context, session string) ([]client.ConversationModel, error)
	UpdateModelActiveStatus(ctx context.Context, conversation, uid string, active bool) error
}

type ModelStatusService struct {
	api       ModelStatusAPI
	selection *store.Selection
	logger    Logger
}

func NewModelStatusService(api ModelStatusAPI, selection *store.Selection, logger Logger) *ModelStatusService {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &ModelStatusService{api: api, selection: selection, logger: logger}
}

// Load seeds the inactive list from the conversation. It is best effort:
// failures are logged and the current list is kept.
func (s *ModelStatusService) Load(ctx context.Context, session string) {
	models, err := s.api.ListConversationModels(ctx, session)
	if err != nil {
		s.logger.Warn("failed to load conversation models", "session", session, "error", err)
		return
	}
	inactive := make([]string, 0, len(models))
	for _, m := range models {
		if !m.Active {
			inactive = append(inactive, m.UID)
		}
	}
	s.selection.SetInactiveModels(inactive)
}

// Toggle flips uid locally and reports it to the platform, reverting the
// local change when the call fails. It returns the active state after the
// call.
func (s *ModelStatusService) Toggle(ctx context.Context, session, uid string) (bool, error) {
	active := s.selection.ToggleModelActive(uid)
	if err := s.api.UpdateModelActiveStatus(ctx, session, uid, active); err != nil {
		s.selection.ToggleModelActive(uid)
		s.logger.Error("failed to update model status", "session", session, "model", uid, "error", err)
		return !active, err
	}
	return active, nil
}
