package service

import (
	"context"
	"fmt"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/repository"
)

type catalogService struct {
	catalogRepo repository.CatalogRepository
}

func NewCatalogService(catalogRepo repository.CatalogRepository) CatalogService {
	return &catalogService{catalogRepo: catalogRepo}
}

func (s *catalogService) CreateItem(ctx context.Context, item *domain.ServiceCatalogItem) error {
	if item.Code == "" {
		return fmt.Errorf("catalog item requires a code")
	}
	if item.PriceCents < 0 {
		return fmt.Errorf("catalog price must not be negative")
	}
	return s.catalogRepo.Create(ctx, item)
}

// UpdateItem edits price or availability. Existing jobs are unaffected: they
// carry their own priced snapshot.
func (s *catalogService) UpdateItem(ctx context.Context, item *domain.ServiceCatalogItem) error {
	if item.PriceCents < 0 {
		return fmt.Errorf("catalog price must not be negative")
	}
	return s.catalogRepo.Update(ctx, item)
}

func (s *catalogService) ListItems(ctx context.Context, includeInactive bool) ([]domain.ServiceCatalogItem, error) {
	return s.catalogRepo.List(ctx, includeInactive)
}
