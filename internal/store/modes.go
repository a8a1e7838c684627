// File: internal/store/modes.go
package store

import "sync"

// Modes holds the submission toggles of the prompt box.
type Modes struct {
	mu        sync.RWMutex
	combined  bool
	compare   bool
	webSearch bool
}

func NewModes() *Modes { return &Modes{} }

func (m *Modes) SetCombined(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.combined = v
}

func (m *Modes) Combined() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.combined
}

func (m *Modes) SetCompare(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.compare = v
}

func (m *Modes) Compare() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.compare
}

func (m *Modes) SetWebSearch(v bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.webSearch = v
}

func (m *Modes) WebSearch() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.webSearch
}
