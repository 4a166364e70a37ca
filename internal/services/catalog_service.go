package services

import (
	"context"

	"github.com/net2mulu/signature-gym/internal/cache"
	"github.com/net2mulu/signature-gym/internal/domain/catalog"
	"github.com/net2mulu/signature-gym/internal/pkg/errors"
)

// CatalogService implements catalog.Service over the static offering data
type CatalogService struct {
	gymCache    *cache.ViewCache[catalog.GymOfferings]
	studioCache *cache.ViewCache[catalog.StudioOfferings]
}

// NewCatalogService creates a catalog service; nil caches disable caching
func NewCatalogService(gymCache *cache.ViewCache[catalog.GymOfferings], studioCache *cache.ViewCache[catalog.StudioOfferings]) catalog.Service {
	return &CatalogService{gymCache: gymCache, studioCache: studioCache}
}

// Gym returns the gym floor offerings
func (s *CatalogService) Gym(ctx context.Context) (*catalog.GymOfferings, error) {
	return s.gymCache.GetOrLoad(ctx, "gym", func(context.Context) (*catalog.GymOfferings, error) {
		g := catalog.Gym()
		return &g, nil
	})
}

// Studio returns the studio offerings
func (s *CatalogService) Studio(ctx context.Context) (*catalog.StudioOfferings, error) {
	return s.studioCache.GetOrLoad(ctx, "studio", func(context.Context) (*catalog.StudioOfferings, error) {
		st := catalog.Studio()
		return &st, nil
	})
}

// StudioType returns one studio discipline
func (s *CatalogService) StudioType(ctx context.Context, id string) (*catalog.StudioType, error) {
	st, ok := catalog.FindStudioType(id)
	if !ok {
		return nil, errors.NotFound("Studio type")
	}
	return &st, nil
}
