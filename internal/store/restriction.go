// File: internal/store/restriction.go
package store

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Restrictions tracks per-mode limits reported by the backend.
//
// Reads never report a restriction whose comeback time has passed, even if
// nobody cleared it yet. Expired entries are only removed by Reconcile or
// ClearRestriction, so queries stay free of side effects.
type Restrictions struct {
	mu      sync.RWMutex
	clock   clock.Clock
	entries map[domain.Mode]domain.Restriction
}

func NewRestrictions(clk clock.Clock) *Restrictions {
	if clk == nil {
		clk = clock.New()
	}
	return &Restrictions{
		clock:   clk,
		entries: make(map[domain.Mode]domain.Restriction),
	}
}

// SetRestriction moves mode into the restricted state. A later call for the
// same mode overwrites the earlier one.
func (s *Restrictions) SetRestriction(mode domain.Mode, message string, comebackTime time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[mode] = domain.Restriction{Mode: mode, Message: message, ComebackTime: comebackTime}
}

// ClearRestriction lifts the restriction on mode. Clearing an unrestricted
// mode is a no-op.
func (s *Restrictions) ClearRestriction(mode domain.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, mode)
}

// IsRestricted reports whether mode is restricted right now.
func (s *Restrictions) IsRestricted(mode domain.Mode) bool {
	_, ok := s.Get(mode)
	return ok
}

// Get returns the live restriction for mode, if any.
func (s *Restrictions) Get(mode domain.Mode) (domain.Restriction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.entries[mode]
	if !ok || domain.IsExpired(r, s.clock.Now()) {
		return domain.Restriction{}, false
	}
	return r, true
}

// Reconcile removes every expired restriction and returns the modes it
// cleared.
func (s *Restrictions) Reconcile() []domain.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.clock.Now()
	var cleared []domain.Mode
	for mode, r := range s.entries {
		if domain.IsExpired(r, now) {
			delete(s.entries, mode)
			cleared = append(cleared, mode)
		}
	}
	sort.Slice(cleared, func(i, j int) bool { return cleared[i] < cleared[j] })
	return cleared
}

// All returns the live restrictions ordered by mode.
func (s *Restrictions) All() []domain.Restriction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	now := s.clock.Now()
	out := make([]domain.Restriction, 0, len(s.entries))
	for _, r := range s.entries {
		if !domain.IsExpired(r, now) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Mode < out[j].Mode })
	return out
}

// Now exposes the store clock so schedulers share the same time source.
func (s *Restrictions) Now() time.Time {
	return s.clock.Now()
}
