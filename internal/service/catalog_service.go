package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/catalog"
	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// CatalogService answers catalog listings, product lookups and best-sellers
type CatalogService struct {
	cfg        config.CatalogConfig
	repos      *repository.Repositories
	exclusions *ExclusionService
	shops      *ShopService
	resolver   *catalog.SlugResolver
	logger     *zap.Logger
	now        func() time.Time
}

// NewCatalogService creates a new catalog service
func NewCatalogService(cfg config.CatalogConfig, repos *repository.Repositories, logger *zap.Logger) *CatalogService {
	return &CatalogService{
		cfg:        cfg,
		repos:      repos,
		exclusions: NewExclusionService(repos, logger),
		shops:      NewShopService(repos, logger),
		resolver:   catalog.NewSlugResolver(repos.CatalogItem, logger),
		logger:     logger,
		now:        time.Now,
	}
}

// ListResult is one page of a catalog listing. Exactly one of Items and Products
// is set, depending on whether rows were grouped by name.
type ListResult struct {
	Items    []*domain.CatalogItem
	Products []*domain.AggregatedProduct
	Total    int
	Page     int
	Limit    int
}

// Grouped reports whether the page holds aggregated products
func (r *ListResult) Grouped() bool {
	return r.Products != nil
}

// ProductDetail is one catalog row plus its aggregate across every shop carrying the same name
type ProductDetail struct {
	Product    *domain.CatalogItem       `json:"product"`
	Aggregated *domain.AggregatedProduct `json:"aggregated"`
	ResolvedBy domain.SlugTier           `json:"resolved_by,omitempty"`
}

// ListCatalog lists active, non-excluded rows. Grouped listings aggregate every
// matching row (up to GroupedFetchLimit) before paginating the groups.
func (s *CatalogService) ListCatalog(ctx context.Context, q ListQuery) (*ListResult, error) {
	filter := q.filter()
	filter.Excluded = s.exclusions.GetExclusionSet(ctx)

	if !q.GroupByName {
		filter.Limit = q.Limit
		filter.Offset = q.Offset()
		items, total, err := s.repos.CatalogItem.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return &ListResult{Items: items, Total: total, Page: q.Page, Limit: q.Limit}, nil
	}

	filter.Limit = s.cfg.GroupedFetchLimit
	items, total, err := s.repos.CatalogItem.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if total > len(items) {
		s.logger.Warn("Grouped listing truncated",
			zap.Int("matching_rows", total),
			zap.Int("fetched_rows", len(items)))
	}

	groups := catalog.GroupByName(items)
	catalog.SortAggregated(groups, q.Sort, q.Order)
	applyShopNames(groups, s.shops.ShopNames(ctx))

	return &ListResult{
		Products: catalog.Page(groups, q.Offset(), q.Limit),
		Total:    len(groups),
		Page:     q.Page,
		Limit:    q.Limit,
	}, nil
}

// GetProductByID returns a catalog row and its cross-shop aggregate. Excluded
// products are reported as not found.
func (s *CatalogService) GetProductByID(ctx context.Context, id string, shopCode *string) (*ProductDetail, error) {
	excluded := s.exclusions.GetExclusionSet(ctx)

	item, err := s.repos.CatalogItem.GetByID(ctx, id, shopCode)
	if err != nil {
		return nil, err
	}
	if excluded.Excludes(item) {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return s.detail(ctx, item, excluded)
}

// GetProductBySlug resolves a slug through the exact, prefix and fuzzy tiers
func (s *CatalogService) GetProductBySlug(ctx context.Context, slug string) (*ProductDetail, error) {
	excluded := s.exclusions.GetExclusionSet(ctx)

	item, tier, err := s.resolver.Resolve(ctx, slug, excluded)
	if err != nil {
		return nil, err
	}
	detail, err := s.detail(ctx, item, excluded)
	if err != nil {
		return nil, err
	}
	detail.ResolvedBy = tier
	return detail, nil
}

func (s *CatalogService) detail(ctx context.Context, item *domain.CatalogItem, excluded domain.ExclusionSet) (*ProductDetail, error) {
	rows, err := s.repos.CatalogItem.ListByName(ctx, item.Name, excluded)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		rows = []*domain.CatalogItem{item}
	}

	groups := catalog.GroupByName(rows)
	applyShopNames(groups, s.shops.ShopNames(ctx))
	return &ProductDetail{Product: item, Aggregated: groups[0]}, nil
}

// PopularProducts returns up to limit best-sellers of the recent purchase window.
// Any failure degrades to an empty list.
func (s *CatalogService) PopularProducts(ctx context.Context, limit int) []domain.PopularProduct {
	since := s.now().AddDate(0, 0, -s.cfg.PopularWindowDays)
	candidates, err := s.repos.Purchase.TopSold(ctx, since, catalog.OverfetchLimit(limit, s.cfg.PopularOverfetch))
	if err != nil {
		s.logger.Warn("Failed to load purchase history for popular products", zap.Error(err))
		return []domain.PopularProduct{}
	}

	excluded := s.exclusions.GetExclusionSet(ctx)
	popular := catalog.RankPopular(ctx, candidates, s.repos.CatalogItem, excluded, limit, s.logger)
	if len(popular) < limit {
		s.logger.Debug("Fewer popular products than requested",
			zap.Int("requested", limit),
			zap.Int("returned", len(popular)),
			zap.Int("candidates", len(candidates)))
	}
	return popular
}
