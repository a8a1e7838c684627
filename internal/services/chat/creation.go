// File: internal/services/chat/creation.go
package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/client"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// CreationService turns a first prompt into a conversation.
type CreationService struct {
	config    *Config
	api       API
	stores    *store.Stores
	scheduler Scheduler
	ui        UI
	titles    *TitleTracker
	clock     clock.Clock
	logger    Logger
}

func NewCreationService(
	config *Config,
	api API,
	stores *store.Stores,
	scheduler Scheduler,
	ui UI,
	clk clock.Clock,
	logger Logger,
) *CreationService {
	return &CreationService{
		config:    config,
		api:       api,
		stores:    stores,
		scheduler: scheduler,
		ui:        ui,
		titles:    NewTitleTracker(config, api, stores, ui, clk, logger),
		clock:     clk,
		logger:    logger,
	}
}

// Submit runs the creation flow. Restrictions and sentinel responses end
// the flow with a non-created Outcome and a nil error; only validation and
// transport failures are errors.
func (s *CreationService) Submit(ctx context.Context, req Request) (*Result, error) {
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		return nil, NewValidationError("submit", "prompt cannot be empty")
	}
	if !req.Type.Valid() {
		return nil, NewValidationError("submit", fmt.Sprintf("unknown content type %q", req.Type))
	}
	models := s.stores.Selection.SelectedModels(req.Type)
	if len(models) == 0 {
		return nil, NewValidationError("submit", "no models selected for "+string(req.Type))
	}

	if res, blocked := s.precheck(); blocked {
		return res, nil
	}

	combine := s.stores.Modes.Combined()
	compare := s.stores.Modes.Compare()

	s.stores.Conversation.SetPreloading(true)
	resp, err := s.api.CreateFirstPrompt(ctx, client.FirstPromptRequest{
		Models:      models,
		Type:        req.Type,
		Prompt:      prompt,
		Combine:     combine,
		Compare:     compare,
		WebSearch:   s.stores.Modes.WebSearch(),
		ProjectID:   req.ProjectID,
		Attachments: req.Attachments,
	})
	if err != nil {
		s.stores.Conversation.SetPreloading(false)
		s.logger.Error("first prompt failed", "type", req.Type, "error", err)
		s.ui.Notify(Notice{
			Kind:    NoticeError,
			Title:   "Could not start the conversation",
			Message: "Something went wrong. Check your connection and try again.",
			Action:  ActionRetry,
		})
		return nil, NewTransportError("submit", err)
	}

	if resp.Control() {
		s.stores.Conversation.SetPreloading(false)
		return s.handleControl(resp), nil
	}

	return s.created(req, prompt, resp), nil
}

// precheck refuses to contact the backend while a relevant mode is
// restricted. Restricted combine or compare is switched off.
func (s *CreationService) precheck() (*Result, bool) {
	if r, ok := s.stores.Restrictions.Get(domain.ModeChat); ok {
		s.notifyRestriction(r)
		return &Result{Outcome: OutcomeBlocked, Restriction: &r}, true
	}
	if s.stores.Modes.Combined() {
		if r, ok := s.stores.Restrictions.Get(domain.ModeCombine); ok {
			s.stores.Modes.SetCombined(false)
			s.notifyRestriction(r)
			return &Result{Outcome: OutcomeBlocked, Restriction: &r}, true
		}
	}
	if s.stores.Modes.Compare() {
		if r, ok := s.stores.Restrictions.Get(domain.ModeCompare); ok {
			s.stores.Modes.SetCompare(false)
			s.notifyRestriction(r)
			return &Result{Outcome: OutcomeBlocked, Restriction: &r}, true
		}
	}
	return nil, false
}

func (s *CreationService) handleControl(resp *client.FirstPromptResult) *Result {
	mode, _ := resp.Status.Mode()
	r := domain.Restriction{Mode: mode, Message: resp.Message, ComebackTime: resp.ComebackTime}

	// Without a comeback time there is nothing to wait for, so only the
	// mode is switched off.
	if !resp.ComebackTime.IsZero() {
		s.stores.Restrictions.SetRestriction(mode, resp.Message, resp.ComebackTime)
		if s.scheduler != nil {
			s.scheduler.Schedule(mode, resp.ComebackTime)
		}
	}

	res := &Result{Restriction: &r}
	switch mode {
	case domain.ModeCombine:
		s.stores.Modes.SetCombined(false)
		res.Outcome = OutcomeCombineDisabled
	case domain.ModeCompare:
		s.stores.Modes.SetCompare(false)
		res.Outcome = OutcomeCompareDisabled
	default:
		res.Outcome = OutcomeLimitReached
	}

	s.logger.Info("first prompt refused", "status", resp.Status, "comeback_time", resp.ComebackTime)
	s.notifyRestriction(r)
	return res
}

func (s *CreationService) created(req Request, prompt string, resp *client.FirstPromptResult) *Result {
	now := s.clock.Now()
	conv := domain.Conversation{
		Session:    resp.Session,
		PromptID:   resp.PromptID,
		Title:      domain.PlaceholderTitle,
		Type:       req.Type,
		ProjectID:  req.ProjectID,
		TitleState: domain.TitleUntitled,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	s.stores.Conversation.SetConversationID(resp.Session)
	s.stores.Conversation.SetPromptID(resp.PromptID)
	s.stores.Conversation.SetGenerationType(domain.GenerationNew)
	s.stores.Content.SetInputContent(resp.Session, req.Attachments)

	if err := s.stores.InsertConversation(conv); err != nil {
		// The project is not loaded locally; keep the entry visible anyway.
		s.logger.Warn("project missing for new conversation", "project_id", req.ProjectID, "session", resp.Session)
		conv.ProjectID = ""
		s.stores.History.Add(conv)
	}

	s.logger.Info("conversation created", "session", resp.Session, "type", req.Type, "project_id", req.ProjectID)
	s.ui.Navigate(conv.Route())
	s.titles.Request(resp.Session, prompt)

	return &Result{Outcome: OutcomeCreated, Conversation: conv}
}

func (s *CreationService) notifyRestriction(r domain.Restriction) {
	msg := r.Message
	if msg == "" {
		msg = defaultRestrictionMessage(r.Mode)
	}
	if !r.ComebackTime.IsZero() {
		msg = fmt.Sprintf("%s Try again after %s.", msg, r.ComebackTime.Local().Format(time.Kitchen))
	}
	s.ui.Notify(Notice{Kind: NoticeWarning, Title: restrictionTitle(r.Mode), Message: msg})
}

// Wait blocks until background title requests are done.
func (s *CreationService) Wait() { s.titles.Wait() }

// Close stops pending title timers.
func (s *CreationService) Close() { s.titles.Stop() }

func restrictionTitle(mode domain.Mode) string {
	switch mode {
	case domain.ModeCombine:
		return "Combine unavailable"
	case domain.ModeCompare:
		return "Compare unavailable"
	default:
		return "Limit reached"
	}
}

func defaultRestrictionMessage(mode domain.Mode) string {
	switch mode {
	case domain.ModeCombine:
		return "Combine is not available right now."
	case domain.ModeCompare:
		return "Compare is not available right now."
	default:
		return "You have reached your prompt limit."
	}
}
