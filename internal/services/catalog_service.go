package services

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/domain"
	"github.com/LadyTech-03/alle-ai-pre-tertiary-sub003/internal/store"
)

// CatalogAPI is the model catalog part of the platform API.
type CatalogAPI interface {
	ListModels(ctx context.Context, ct domain.ContentType) ([]domain.Model, error)
	SetFavorite(ctx context.Context, uid string, favorite bool) error
}

// CatalogService fills the model registry, once per content type.
type CatalogService struct {
	api      CatalogAPI
	registry *store.Registry
	logger   Logger
}

func NewCatalogService(api CatalogAPI, registry *store.Registry, logger Logger) *CatalogService {
	if logger == nil {
		logger = &NoOpLogger{}
	}
	return &CatalogService{api: api, registry: registry, logger: logger}
}

// Load fetches the catalog for ct unless it is already populated.
func (s *CatalogService) Load(ctx context.Context, ct domain.ContentType) error {
	if s.registry.Populated(ct) {
		return nil
	}
	return s.Reload(ctx, ct)
}

// Reload fetches the catalog for ct unconditionally.
func (s *CatalogService) Reload(ctx context.Context, ct domain.ContentType) error {
	s.registry.SetLoading(ct, true)
	defer s.registry.SetLoading(ct, false)

	models, err := s.api.ListModels(ctx, ct)
	if err != nil {
		s.registry.SetError(ct, err)
		s.logger.Error("failed to load models", "type", ct, "error", err)
		return err
	}
	s.registry.SetError(ct, nil)
	s.registry.SetModels(ct, models)
	s.logger.Debug("models loaded", "type", ct, "count", len(models))
	return nil
}

// LoadAll loads every content type concurrently.
func (s *CatalogService) LoadAll(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, ct := range domain.ContentTypes {
		ct := ct
		g.Go(func() error { return s.Load(ctx, ct) })
	}
	return g.Wait()
}

// ToggleFavorite flips the favorite flag remotely, then mirrors it locally.
func (s *CatalogService) ToggleFavorite(ctx context.Context, uid string) (bool, error) {
	m, _, ok := s.registry.Find(uid)
	if !ok {
		return false, ErrUnknownModel
	}
	next := !m.Favorite
	if err := s.api.SetFavorite(ctx, uid, next); err != nil {
		return m.Favorite, err
	}
	s.registry.SetFavorite(uid, next)
	return next, nil
}
