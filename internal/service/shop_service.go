package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
)

// ShopService serves shop locations
type ShopService struct {
	repos  *repository.Repositories
	logger *zap.Logger
}

// NewShopService creates a new shop service
func NewShopService(repos *repository.Repositories, logger *zap.Logger) *ShopService {
	return &ShopService{
		repos:  repos,
		logger: logger,
	}
}

func (s *ShopService) ListShops(ctx context.Context) ([]*domain.ShopLocation, error) {
	return s.repos.Shop.ListActive(ctx)
}

func (s *ShopService) GetShop(ctx context.Context, code string) (*domain.ShopLocation, error) {
	return s.repos.Shop.GetByCode(ctx, code)
}

// ShopNames maps shop code to display name for active shops. Deactivated shops are
// simply absent, so their offers keep the code without a name.
func (s *ShopService) ShopNames(ctx context.Context) map[string]string {
	names := make(map[string]string)
	shops, err := s.repos.Shop.ListActive(ctx)
	if err != nil {
		s.logger.Warn("Failed to load shop names", zap.Error(err))
		return names
	}
	for _, sh := range shops {
		names[sh.ShopCode] = sh.Name
	}
	return names
}

// applyShopNames fills ShopName on every offer whose shop is known
func applyShopNames(products []*domain.AggregatedProduct, names map[string]string) {
	for _, p := range products {
		for i := range p.Offers {
			if name, ok := names[p.Offers[i].ShopCode]; ok {
				n := name
				p.Offers[i].ShopName = &n
			}
		}
	}
}
