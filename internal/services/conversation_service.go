package services

import (
	"context"

	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/chat"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

type ConversationService struct {
	config   *chat.Config
	creation *chat.CreationService
	logger   Logger
}

func NewConversationService(
	config *chat.Config,
	api chat.API,
	stores *store.Stores,
	scheduler chat.Scheduler,
	ui chat.UI,
	clk clock.Clock,
	logger Logger,
) (*ConversationService, error) {
	// Validate dependencies
	if api == nil {
		return nil, chat.NewValidationError("constructor", "platform API is required")
	}
	if stores == nil {
		return nil, chat.NewValidationError("constructor", "stores are required")
	}
	if ui == nil {
		return nil, chat.NewValidationError("constructor", "UI is required")
	}

	if config == nil {
		config = chat.DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, &chat.ChatError{Type: chat.ErrTypeConfig, Operation: "config", Message: err.Error()}
	}
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}

	return &ConversationService{
		config:   config,
		creation: chat.NewCreationService(config, api, stores, scheduler, ui, clk, logger),
		logger:   logger,
	}, nil
}

// Submit creates a conversation from its first prompt.
func (s *ConversationService) Submit(ctx context.Context, req chat.Request) (*chat.Result, error) {
	return s.creation.Submit(ctx, req)
}

// Wait blocks until background title requests are done.
func (s *ConversationService) Wait() { s.creation.Wait() }

func (s *ConversationService) Close() { s.creation.Close() }
