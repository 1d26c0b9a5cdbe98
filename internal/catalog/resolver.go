package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

const (
	// fuzzyMinLength - slugs this short or shorter skip the fuzzy tier
	fuzzyMinLength = 5
	// fuzzyTrim - characters cut from the end before the fuzzy prefix match
	fuzzyTrim = 2
	// fuzzyFloor - the fuzzy prefix never gets shorter than this
	fuzzyFloor = 4
)

// SlugLookup runs one query per resolution tier. Each method returns
// *errors.ErrNotFound when no active, non-excluded row matches.
type SlugLookup interface {
	// FindBySlugExact matches slug = given
	FindBySlugExact(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
	// FindBySlugPrefix matches slug LIKE given || '_%'
	FindBySlugPrefix(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
	// FindBySlugFuzzy matches slug ILIKE prefix || '%'
	FindBySlugFuzzy(ctx context.Context, prefix string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
}

// SlugResolver resolves product URLs. Indexed URLs minted by older slug
// generations depend on the tier order and thresholds.
type SlugResolver struct {
	lookup SlugLookup
	logger *zap.Logger
}

// NewSlugResolver creates a slug resolver over the given lookup
func NewSlugResolver(lookup SlugLookup, logger *zap.Logger) *SlugResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SlugResolver{lookup: lookup, logger: logger}
}

type slugTier struct {
	name domain.SlugTier
	find func(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error)
}

func (r *SlugResolver) tiers() []slugTier {
	return []slugTier{
		{domain.SlugTierExact, r.lookup.FindBySlugExact},
		{domain.SlugTierPrefix, r.lookup.FindBySlugPrefix},
		{domain.SlugTierFuzzy, r.findFuzzy},
	}
}

func (r *SlugResolver) findFuzzy(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	prefix, ok := FuzzyPrefix(slug)
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
	}
	return r.lookup.FindBySlugFuzzy(ctx, prefix, excluded)
}

// Resolve tries exact, prefix and fuzzy matching in that order and returns the
// first hit together with the tier that produced it.
func (r *SlugResolver) Resolve(ctx context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, domain.SlugTier, error) {
	if slug == "" {
		return nil, "", &errors.ErrValidation{Message: "slug is required"}
	}

	for _, tier := range r.tiers() {
		item, err := tier.find(ctx, slug, excluded)
		if err == nil {
			if tier.name != domain.SlugTierExact {
				r.logger.Debug("Slug resolved by fallback tier",
					zap.String("slug", slug),
					zap.String("tier", string(tier.name)),
					zap.String("product_id", item.ID))
			}
			return item, tier.name, nil
		}
		if !errors.IsNotFound(err) {
			r.logger.Error("Slug lookup failed", zap.Error(err), zap.String("slug", slug), zap.String("tier", string(tier.name)))
			return nil, "", err
		}
	}
	return nil, "", &errors.ErrNotFound{Resource: "product", ID: slug}
}

// FuzzyPrefix returns the prefix used by the fuzzy tier. Slugs of five
// characters or fewer are not fuzzy-matched.
func FuzzyPrefix(slug string) (string, bool) {
	if len(slug) <= fuzzyMinLength {
		return "", false
	}
	n := len(slug) - fuzzyTrim
	if n < fuzzyFloor {
		n = fuzzyFloor
	}
	return slug[:n], true
}
