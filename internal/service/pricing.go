package service

import (
	"context"
	"fmt"
	"sort"

	"tunehub-backend/internal/domain"
	"tunehub-backend/internal/repository"
)

type pricingService struct {
	catalogRepo repository.CatalogRepository
}

func NewPricingService(catalogRepo repository.CatalogRepository) PricingService {
	return &pricingService{catalogRepo: catalogRepo}
}

// Price is a pure read of the catalog: it owns no state and the snapshot it
// returns is stored verbatim on the job, insulated from later catalog edits.
func (s *pricingService) Price(ctx context.Context, codes []string) ([]domain.PricedItem, error) {
	if len(codes) == 0 {
		return nil, fmt.Errorf("%w: no service codes given", domain.ErrUnknownServiceCode)
	}

	// A service is billed once regardless of duplicate selection.
	seen := make(map[string]bool, len(codes))
	unique := make([]string, 0, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		unique = append(unique, code)
	}
	sort.Strings(unique)

	items, err := s.catalogRepo.ListActiveByCodes(ctx, unique)
	if err != nil {
		return nil, err
	}

	byCode := make(map[string]domain.ServiceCatalogItem, len(items))
	for _, item := range items {
		byCode[item.Code] = item
	}

	priced := make([]domain.PricedItem, 0, len(unique))
	for _, code := range unique {
		item, ok := byCode[code]
		if !ok {
			return nil, fmt.Errorf("%w: %s", domain.ErrUnknownServiceCode, code)
		}
		priced = append(priced, domain.PricedItem{
			Code:       item.Code,
			Name:       item.Name,
			PriceCents: item.PriceCents,
		})
	}
	return priced, nil
}
