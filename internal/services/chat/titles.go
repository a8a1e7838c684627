// File: internal/services/chat/titles.go
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// TitleTracker fetches the title of a new conversation in the background
// and walks it through Untitled, Streaming and Titled.
type TitleTracker struct {
	config *Config
	api    TitleAPI
	stores *store.Stores
	ui     UI
	clock  clock.Clock
	logger Logger

	inflight sync.WaitGroup
	mu       sync.Mutex
	settle   map[string]*clock.Timer
	stopped  bool
}

func NewTitleTracker(config *Config, api TitleAPI, stores *store.Stores, ui UI, clk clock.Clock, logger Logger) *TitleTracker {
	return &TitleTracker{
		config: config,
		api:    api,
		stores: stores,
		ui:     ui,
		clock:  clk,
		logger: logger,
		settle: make(map[string]*clock.Timer),
	}
}

// Request starts title generation for session. It never blocks and
// failures only get logged; the placeholder stays in that case.
func (t *TitleTracker) Request(session, prompt string) {
	t.inflight.Add(1)
	go func() {
		defer t.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), t.config.TitleTimeout)
		defer cancel()

		title, err := t.api.GenerateTitle(ctx, session, prompt)
		if err != nil {
			t.logger.Warn("title generation failed", "session", session, "error", err)
			return
		}
		title = strings.TrimSpace(title)
		if title == "" {
			return
		}
		t.apply(session, title)
	}()
}

func (t *TitleTracker) apply(session, title string) {
	if !t.stores.RenameConversation(session, title) {
		t.logger.Debug("conversation gone before its title arrived", "session", session)
		return
	}
	t.stores.SetTitleState(session, domain.TitleStreaming)
	if t.stores.Conversation.ConversationID() == session {
		t.ui.SetDocumentTitle(title)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		t.stores.SetTitleState(session, domain.TitleTitled)
		return
	}
	if old, ok := t.settle[session]; ok {
		old.Stop()
	}
	var timer *clock.Timer
	timer = t.clock.AfterFunc(t.config.TitleSettleDelay, func() {
		t.mu.Lock()
		if t.settle[session] == timer {
			delete(t.settle, session)
		}
		t.mu.Unlock()
		t.stores.SetTitleState(session, domain.TitleTitled)
	})
	t.settle[session] = timer
}

// Wait blocks until every pending title request has finished.
func (t *TitleTracker) Wait() {
	t.inflight.Wait()
}

// Stop cancels the settle timers and marks their conversations titled.
func (t *TitleTracker) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	for session, timer := range t.settle {
		timer.Stop()
		t.stores.SetTitleState(session, domain.TitleTitled)
		delete(t.settle, session)
	}
}
