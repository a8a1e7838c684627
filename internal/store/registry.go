// File: internal/store/registry.go
package store

import (
	"sync"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
)

// Registry holds the models available per content type together with their
// loading state. It never talks to the network.
type Registry struct {
	mu      sync.RWMutex
	models  map[domain.ContentType][]domain.Model
	loaded  map[domain.ContentType]bool
	loading map[domain.ContentType]bool
	errs    map[domain.ContentType]error
}

func NewRegistry() *Registry {
	return &Registry{
		models:  make(map[domain.ContentType][]domain.Model),
		loaded:  make(map[domain.ContentType]bool),
		loading: make(map[domain.ContentType]bool),
		errs:    make(map[domain.ContentType]error),
	}
}

// SetModels replaces the list for a content type, marks it loaded and
// clears its error. An empty list still counts as loaded.
func (r *Registry) SetModels(ct domain.ContentType, list []domain.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[ct] = append([]domain.Model(nil), list...)
	r.loaded[ct] = true
	delete(r.errs, ct)
}

// Models returns a copy of the models for a content type.
func (r *Registry) Models(ct domain.ContentType) []domain.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Model(nil), r.models[ct]...)
}

// Populated reports whether the content type was already loaded.
func (r *Registry) Populated(ct domain.ContentType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loaded[ct]
}

func (r *Registry) SetLoading(ct domain.ContentType, loading bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loading[ct] = loading
}

func (r *Registry) Loading(ct domain.ContentType) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.loading[ct]
}

func (r *Registry) SetError(ct domain.ContentType, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err == nil {
		delete(r.errs, ct)
		return
	}
	r.errs[ct] = err
}

func (r *Registry) Err(ct domain.ContentType) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.errs[ct]
}

// Find looks a model up by uid across all content types.
func (r *Registry) Find(uid string) (domain.Model, domain.ContentType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for ct, list := range r.models {
		for _, m := range list {
			if m.UID == uid {
				return m, ct, true
			}
		}
	}
	return domain.Model{}, "", false
}

// SetFavorite mirrors a favorite toggle. Only the matching entries change.
func (r *Registry) SetFavorite(uid string, favorite bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := false
	for _, list := range r.models {
		for i := range list {
			if list[i].UID == uid {
				list[i].Favorite = favorite
				found = true
			}
		}
	}
	return found
}
