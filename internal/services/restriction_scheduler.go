package services

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// RestrictionScheduler clears restrictions when their comeback time
// arrives instead of waiting for the next read.
type RestrictionScheduler struct {
	store  *store.Restrictions
	clock  clock.Clock
	logger Logger

	mu      sync.Mutex
	timers  map[domain.Mode]*clock.Timer
	stopped bool
}

func NewRestrictionScheduler(s *store.Restrictions, clk clock.Clock, logger Logger) *RestrictionScheduler {
	if clk == nil {
		clk = clock.New()
	}
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &RestrictionScheduler{
		store:  s,
		clock:  clk,
		logger: logger,
		timers: make(map[domain.Mode]*clock.Timer),
	}
}

// Schedule replaces any pending timer for mode. A comeback time in the
// past reconciles immediately.
func (s *RestrictionScheduler) Schedule(mode domain.Mode, comebackTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if t, ok := s.timers[mode]; ok {
		t.Stop()
		delete(s.timers, mode)
	}

	d := comebackTime.Sub(s.clock.Now())
	if d <= 0 {
		s.reconcile()
		return
	}

	var timer *clock.Timer
	timer = s.clock.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.timers[mode] == timer {
			delete(s.timers, mode)
		}
		s.reconcile()
	})
	s.timers[mode] = timer
	s.logger.Debug("restriction scheduled", "mode", mode, "in", d.String())
}

// ScheduleAll arms timers for every restriction currently in the store,
// used after hydrating a snapshot.
func (s *RestrictionScheduler) ScheduleAll() {
	s.mu.Lock()
	s.reconcile()
	s.mu.Unlock()
	for _, r := range s.store.All() {
		s.Schedule(r.Mode, r.ComebackTime)
	}
}

// Pending reports how many timers are armed.
func (s *RestrictionScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Stop cancels every timer. Later Schedule calls are ignored.
func (s *RestrictionScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for mode, t := range s.timers {
		t.Stop()
		delete(s.timers, mode)
	}
}

func (s *RestrictionScheduler) reconcile() {
	if cleared := s.store.Reconcile(); len(cleared) > 0 {
		s.logger.Info("restrictions lifted", "modes", cleared)
	}
}
