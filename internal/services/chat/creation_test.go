package chat_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/client"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/services/chat"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

type fakeAPI struct {
	mu       sync.Mutex
	requests []client.FirstPromptRequest
	result   *client.FirstPromptResult
	err      error
	title    string
	titleErr error
}

func (f *fakeAPI) CreateFirstPrompt(ctx context.Context, req client.FirstPromptRequest) (*client.FirstPromptResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeAPI) GenerateTitle(ctx context.Context, conversation, prompt string) (string, error) {
	if f.titleErr != nil {
		return "", f.titleErr
	}
	return f.title, nil
}

func (f *fakeAPI) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.requests)
}

type fakeUI struct {
	mu       sync.Mutex
	notices  []chat.Notice
	routes   []string
	docTitle string
}

func (u *fakeUI) Notify(n chat.Notice) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.notices = append(u.notices, n)
}

func (u *fakeUI) Navigate(route string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes = append(u.routes, route)
}

func (u *fakeUI) SetDocumentTitle(title string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.docTitle = title
}

func (u *fakeUI) title() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.docTitle
}

type fakeScheduler struct {
	scheduled map[domain.Mode]time.Time
}

func (s *fakeScheduler) Schedule(mode domain.Mode, at time.Time) {
	s.scheduled[mode] = at
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}

type fixture struct {
	svc       *chat.CreationService
	api       *fakeAPI
	ui        *fakeUI
	stores    *store.Stores
	clock     *clock.Mock
	scheduler *fakeScheduler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := clock.NewMock()
	clk.Set(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))

	stores := store.New(clk)
	stores.Selection.SetSelectedModels(domain.ContentChat, []string{"gpt-4o", "claude-3"})

	f := &fixture{
		api:       &fakeAPI{result: &client.FirstPromptResult{Session: "s-1", PromptID: "p-1"}, title: "Rust lifetimes"},
		ui:        &fakeUI{},
		stores:    stores,
		clock:     clk,
		scheduler: &fakeScheduler{scheduled: map[domain.Mode]time.Time{}},
	}
	cfg := &chat.Config{TitleTimeout: time.Second, TitleSettleDelay: 2 * time.Second}
	f.svc = chat.NewCreationService(cfg, f.api, stores, f.scheduler, f.ui, clk, nopLogger{})
	t.Cleanup(f.svc.Close)
	return f
}

func TestSubmit_CombineRestrictedNeverCallsBackend(t *testing.T) {
	f := newFixture(t)
	f.stores.Modes.SetCombined(true)
	f.stores.Restrictions.SetRestriction(domain.ModeCombine, "Combine is busy.", f.clock.Now().Add(time.Hour))

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
	require.NoError(t, err)

	assert.Equal(t, chat.OutcomeBlocked, res.Outcome)
	assert.Zero(t, f.api.calls())
	assert.False(t, f.stores.Modes.Combined())
	require.Len(t, f.ui.notices, 1)
	assert.Equal(t, chat.NoticeWarning, f.ui.notices[0].Kind)
	assert.Contains(t, f.ui.notices[0].Message, "Combine is busy.")
	assert.Zero(t, f.stores.History.Len())
}

func TestSubmit_ChatRestrictionBlocks(t *testing.T) {
	f := newFixture(t)
	f.stores.Restrictions.SetRestriction(domain.ModeChat, "", f.clock.Now().Add(time.Minute))

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeBlocked, res.Outcome)
	assert.Zero(t, f.api.calls())
}

func TestSubmit_ExpiredRestrictionDoesNotBlock(t *testing.T) {
	f := newFixture(t)
	f.stores.Modes.SetCompare(true)
	f.stores.Restrictions.SetRestriction(domain.ModeCompare, "", f.clock.Now().Add(time.Second))
	f.clock.Add(time.Second)

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeCreated, res.Outcome)
	require.Equal(t, 1, f.api.calls())
	assert.True(t, f.api.requests[0].Compare)
}

func TestSubmit_SuccessTitleOverwritesPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.stores.Modes.SetWebSearch(true)
	attachments := []domain.Attachment{{UUID: "f-1", Name: "notes.pdf", Data: []byte("x")}}

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "  what are lifetimes  ", Type: domain.ContentChat, Attachments: attachments})
	require.NoError(t, err)
	require.Equal(t, chat.OutcomeCreated, res.Outcome)

	req := f.api.requests[0]
	assert.Equal(t, []string{"gpt-4o", "claude-3"}, req.Models)
	assert.Equal(t, "what are lifetimes", req.Prompt)
	assert.True(t, req.WebSearch)

	assert.Equal(t, "s-1", f.stores.Conversation.ConversationID())
	assert.Equal(t, "p-1", f.stores.Conversation.PromptID())
	assert.Equal(t, domain.GenerationNew, f.stores.Conversation.GenerationType())
	assert.Equal(t, []string{"/chat/res/s-1"}, f.ui.routes)
	require.Len(t, f.stores.Content.InputContent("s-1"), 1)
	assert.Nil(t, f.stores.Content.InputContent("s-1")[0].Data)

	f.svc.Wait()
	entry, ok := f.stores.History.Get("s-1")
	require.True(t, ok)
	assert.Equal(t, "Rust lifetimes", entry.Title)
	assert.Equal(t, domain.TitleStreaming, entry.TitleState)
	assert.Equal(t, "Rust lifetimes", f.ui.title())

	f.clock.Add(2 * time.Second)
	assert.Eventually(t, func() bool {
		e, _ := f.stores.History.Get("s-1")
		return e.TitleState == domain.TitleTitled
	}, time.Second, 5*time.Millisecond)
}

func TestSubmit_ProjectConversationGoesToProject(t *testing.T) {
	f := newFixture(t)
	f.stores.Projects.Add(domain.Project{UUID: "p-9", Name: "Thesis"})

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "outline", Type: domain.ContentChat, ProjectID: "p-9"})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Equal(t, "/project/p-9/chat/res/s-1", res.Conversation.Route())
	assert.Zero(t, f.stores.History.Len())
	p, _ := f.stores.Projects.Get("p-9")
	require.Len(t, p.Histories, 1)
	assert.Equal(t, "Rust lifetimes", p.Histories[0].Title)
}

func TestSubmit_UnknownProjectFallsBackToHistory(t *testing.T) {
	f := newFixture(t)

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "outline", Type: domain.ContentChat, ProjectID: "p-404"})
	require.NoError(t, err)
	f.svc.Wait()

	assert.Empty(t, res.Conversation.ProjectID)
	assert.Equal(t, "/chat/res/s-1", res.Conversation.Route())
	entry, ok := f.stores.History.Get("s-1")
	require.True(t, ok)
	assert.Empty(t, entry.ProjectID)
	_, owned := f.stores.Projects.OwnerOf("s-1")
	assert.False(t, owned)
}

func TestSubmit_TitleFailureKeepsPlaceholder(t *testing.T) {
	f := newFixture(t)
	f.api.titleErr = errors.New("boom")

	_, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
	require.NoError(t, err)
	f.svc.Wait()

	entry, _ := f.stores.History.Get("s-1")
	assert.Equal(t, domain.PlaceholderTitle, entry.Title)
	assert.Equal(t, domain.TitleUntitled, entry.TitleState)
	assert.Empty(t, f.ui.title())
}

func TestSubmit_Sentinels(t *testing.T) {
	tests := []struct {
		status  client.ControlStatus
		outcome chat.Outcome
		mode    domain.Mode
	}{
		{client.StatusCombineFalse, chat.OutcomeCombineDisabled, domain.ModeCombine},
		{client.StatusCompareFalse, chat.OutcomeCompareDisabled, domain.ModeCompare},
		{client.StatusLimitReached, chat.OutcomeLimitReached, domain.ModeChat},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			f := newFixture(t)
			f.stores.Modes.SetCombined(true)
			f.stores.Modes.SetCompare(true)
			comeback := f.clock.Now().Add(10 * time.Minute)
			f.api.result = &client.FirstPromptResult{Status: tt.status, Message: "wait", ComebackTime: comeback}

			res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
			require.NoError(t, err)

			assert.Equal(t, tt.outcome, res.Outcome)
			assert.True(t, f.stores.Restrictions.IsRestricted(tt.mode))
			assert.Equal(t, comeback, f.scheduler.scheduled[tt.mode])
			assert.False(t, f.stores.Conversation.Preloading())
			assert.Zero(t, f.stores.History.Len())
			assert.Empty(t, f.ui.routes)

			switch tt.mode {
			case domain.ModeCombine:
				assert.False(t, f.stores.Modes.Combined())
				assert.True(t, f.stores.Modes.Compare())
			case domain.ModeCompare:
				assert.False(t, f.stores.Modes.Compare())
				assert.True(t, f.stores.Modes.Combined())
			}
		})
	}
}

func TestSubmit_SentinelWithoutComebackOnlyDisablesMode(t *testing.T) {
	f := newFixture(t)
	f.stores.Modes.SetCombined(true)
	f.api.result = &client.FirstPromptResult{Status: client.StatusCombineFalse}

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
	require.NoError(t, err)
	assert.Equal(t, chat.OutcomeCombineDisabled, res.Outcome)
	assert.False(t, f.stores.Modes.Combined())
	assert.Empty(t, f.stores.Restrictions.All())
	assert.Empty(t, f.scheduler.scheduled)
}

func TestSubmit_TransportFailureLeavesStoresUntouched(t *testing.T) {
	f := newFixture(t)
	f.api.err = &client.APIError{Type: client.ErrTypeNetwork, Operation: "create_first_prompt", Message: "request failed"}

	res, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "hi", Type: domain.ContentChat})
	assert.Nil(t, res)
	require.Error(t, err)
	assert.True(t, chat.IsType(err, chat.ErrTypeTransport))
	assert.True(t, client.IsType(err, client.ErrTypeNetwork))

	assert.False(t, f.stores.Conversation.Preloading())
	assert.Empty(t, f.stores.Conversation.ConversationID())
	assert.Zero(t, f.stores.History.Len())
	require.Len(t, f.ui.notices, 1)
	assert.Equal(t, chat.ActionRetry, f.ui.notices[0].Action)
}

func TestSubmit_Validation(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Submit(context.Background(), chat.Request{Prompt: "   ", Type: domain.ContentChat})
	assert.True(t, chat.IsType(err, chat.ErrTypeValidation))

	_, err = f.svc.Submit(context.Background(), chat.Request{Prompt: "draw", Type: domain.ContentImage})
	assert.True(t, chat.IsType(err, chat.ErrTypeValidation))

	_, err = f.svc.Submit(context.Background(), chat.Request{Prompt: "x", Type: "poetry"})
	assert.True(t, chat.IsType(err, chat.ErrTypeValidation))

	assert.Zero(t, f.api.calls())
}
