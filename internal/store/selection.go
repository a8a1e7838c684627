// File: internal/store/selection.go
package store

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Selection keeps confirmed model selections per content type, the pending
// selection being edited, and the models deactivated inside the current
// conversation. It performs no validation.
type Selection struct {
	mu         sync.RWMutex
	clock      clock.Clock
	confirmed  map[domain.ContentType][]string
	temp       []string
	inactive   []string
	lastUpdate time.Time
}

func NewSelection(clk clock.Clock) *Selection {
	if clk == nil {
		clk = clock.New()
	}
	return &Selection{
		clock:     clk,
		confirmed: make(map[domain.ContentType][]string),
	}
}

// SetTempSelectedModels replaces the pending selection.
func (s *Selection) SetTempSelectedModels(uids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp = append([]string(nil), uids...)
}

func (s *Selection) TempSelectedModels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.temp...)
}

// DiscardTemp drops the pending selection without touching confirmed lists.
func (s *Selection) DiscardTemp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.temp = nil
}

// SaveSelectedModels commits the pending selection for ct.
func (s *Selection) SaveSelectedModels(ct domain.ContentType) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed[ct] = append([]string(nil), s.temp...)
	s.lastUpdate = s.clock.Now()
}

// SetSelectedModels writes a confirmed list directly, used when hydrating
// from a snapshot. It does not bump LastUpdate.
func (s *Selection) SetSelectedModels(ct domain.ContentType, uids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmed[ct] = append([]string(nil), uids...)
}

func (s *Selection) SelectedModels(ct domain.ContentType) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.confirmed[ct]...)
}

// LastUpdate is the time of the last save.
func (s *Selection) LastUpdate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastUpdate
}

// SetLastUpdate restores the save time from a snapshot.
func (s *Selection) SetLastUpdate(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastUpdate = t
}

func (s *Selection) SetInactiveModels(uids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inactive = append([]string(nil), uids...)
}

func (s *Selection) InactiveModels() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.inactive...)
}

// ToggleModelActive flips uid's membership in the inactive set and returns
// whether the model is active afterwards.
func (s *Selection) ToggleModelActive(uid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, u := range s.inactive {
		if u == uid {
			s.inactive = append(s.inactive[:i:i], s.inactive[i+1:]...)
			return true
		}
	}
	s.inactive = append(s.inactive, uid)
	return false
}

func (s *Selection) IsActive(uid string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.inactive {
		if u == uid {
			return false
		}
	}
	return true
}
