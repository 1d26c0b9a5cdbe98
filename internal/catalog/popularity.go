package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// CatalogMatcher finds the live catalog row for a product name seen in purchase history
type CatalogMatcher interface {
	FindByNameLike(ctx context.Context, name string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
}

// OverfetchLimit is how many purchase candidates to read for limit results
func OverfetchLimit(limit, multiplier int) int {
	if multiplier < 1 {
		multiplier = 1
	}
	return limit * multiplier
}

// RankPopular turns best-seller candidates (already ordered by units sold, then
// purchase count) into catalog products. Candidates without a live catalog match
// or hidden by an exclusion are dropped, duplicates of an already ranked row are
// skipped, and the result stops at limit. There is no backfill when fewer survive.
func RankPopular(
	ctx context.Context,
	candidates []domain.PurchaseStat,
	matcher CatalogMatcher,
	excluded domain.ExclusionSet,
	limit int,
	logger *zap.Logger,
) []domain.PopularProduct {
	if logger == nil {
		logger = zap.NewNop()
	}
	out := make([]domain.PopularProduct, 0, limit)
	seen := make(map[string]bool)

	for _, c := range candidates {
		if len(out) >= limit {
			break
		}
		item, ok := matchCandidate(ctx, matcher, c, excluded, logger)
		if !ok {
			continue
		}
		if excluded.Excludes(item) {
			continue
		}
		key := item.ShopCode + "/" + item.ID
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, domain.PopularProduct{
			Item:          item,
			TotalSold:     c.TotalQuantity,
			PurchaseCount: c.PurchaseCount,
		})
	}
	return out
}

func matchCandidate(ctx context.Context, matcher CatalogMatcher, c domain.PurchaseStat, excluded domain.ExclusionSet, logger *zap.Logger) (*domain.CatalogItem, bool) {
	item, err := matcher.FindByNameLike(ctx, c.ProductName, excluded)
	if err != nil {
		if !errors.IsNotFound(err) {
			logger.Warn("Popular product catalog match failed", zap.Error(err), zap.String("product_name", c.ProductName))
		}
		return nil, false
	}
	return item, true
}
