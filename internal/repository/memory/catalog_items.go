package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type catalogItemRepository struct {
	s *Store
}

func matchesFilter(it *domain.CatalogItem, f domain.CatalogFilter) bool {
	if !it.IsActive {
		return false
	}
	if f.CategoryID != nil && (it.CategoryID == nil || *it.CategoryID != *f.CategoryID) {
		return false
	}
	if f.ShopCode != nil && it.ShopCode != *f.ShopCode {
		return false
	}
	if len(f.SearchVariants) > 0 {
		found := false
		for _, v := range f.SearchVariants {
			if likeMatch("%"+repository.EscapeLike(v)+"%", it.Name, true) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if f.MinPrice != nil && it.RetailPrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && it.RetailPrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.InStock && it.Quantity <= 0 {
		return false
	}
	return !f.Excluded.Excludes(it)
}

// unitsSold mirrors the popularity sort: all recorded units per product name
func (s *Store) unitsSold() map[string]int {
	sold := make(map[string]int)
	for _, p := range s.purchases {
		for _, l := range p.lines {
			sold[l.ProductName] += l.Quantity
		}
	}
	return sold
}

func (r *catalogItemRepository) List(_ context.Context, f domain.CatalogFilter) ([]*domain.CatalogItem, int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := make([]*domain.CatalogItem, 0)
	for _, it := range r.s.sortedItems() {
		if matchesFilter(it, f) {
			matched = append(matched, it)
		}
	}

	desc := f.Order == domain.SortDesc
	var sold map[string]int
	if f.Sort == domain.SortByPopularity {
		sold = r.s.unitsSold()
	}
	// matched is already in name, shop, id order, which is the tie-break
	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		var cmp int
		switch f.Sort {
		case domain.SortByPrice:
			cmp = a.RetailPrice.Cmp(b.RetailPrice)
		case domain.SortByCreatedAt:
			cmp = compareTime(a.CreatedAt, b.CreatedAt)
		case domain.SortByPopularity:
			cmp = sold[a.Name] - sold[b.Name]
		default:
			cmp = strings.Compare(a.Name, b.Name)
		}
		if desc {
			return cmp > 0
		}
		return cmp < 0
	})

	total := len(matched)
	start := f.Offset
	if start < 0 || start > total {
		start = total
	}
	end := total
	if f.Limit > 0 && start+f.Limit < end {
		end = start + f.Limit
	}

	page := make([]*domain.CatalogItem, 0, end-start)
	for _, it := range matched[start:end] {
		page = append(page, copyItem(it))
	}
	return page, total, nil
}

func compareTime(a, b time.Time) int {
	switch {
	case a.Before(b):
		return -1
	case a.After(b):
		return 1
	default:
		return 0
	}
}

func (r *catalogItemRepository) ListByName(_ context.Context, name string, excluded domain.ExclusionSet) ([]*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.CatalogItem, 0)
	for _, it := range r.s.sortedItems() {
		if it.IsActive && it.Name == name && !excluded.Excludes(it) {
			out = append(out, copyItem(it))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ShopCode < out[j].ShopCode })
	return out, nil
}

func (r *catalogItemRepository) GetByID(_ context.Context, id string, shopCode *string) (*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.CatalogItem
	for _, it := range r.s.items {
		if it.ID != id || !it.IsActive || (shopCode != nil && it.ShopCode != *shopCode) {
			continue
		}
		if found == nil || it.ShopCode < found.ShopCode {
			found = it
		}
	}
	if found == nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return copyItem(found), nil
}

// findFirst returns the first active, non-excluded row accepted by match, in the given order
func (r *catalogItemRepository) findFirst(key string, excluded domain.ExclusionSet, less func(a, b *domain.CatalogItem) bool, match func(*domain.CatalogItem) bool) (*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	candidates := r.s.sortedItems()
	if less != nil {
		sort.SliceStable(candidates, func(i, j int) bool { return less(candidates[i], candidates[j]) })
	}
	for _, it := range candidates {
		if it.IsActive && match(it) && !excluded.Excludes(it) {
			return copyItem(it), nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: key}
}

func bySlug(a, b *domain.CatalogItem) bool {
	as, bs := deref(a.Slug), deref(b.Slug)
	if as != bs {
		return as < bs
	}
	return a.ShopCode < b.ShopCode
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func (r *catalogItemRepository) FindBySlugExact(_ context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findFirst(slug, excluded, bySlug, func(it *domain.CatalogItem) bool {
		return it.Slug != nil && *it.Slug == slug
	})
}

func (r *catalogItemRepository) FindBySlugPrefix(_ context.Context, slug string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findFirst(slug, excluded, bySlug, func(it *domain.CatalogItem) bool {
		return it.Slug != nil && likeMatch(repository.EscapeLike(slug)+"_%", *it.Slug, false)
	})
}

func (r *catalogItemRepository) FindBySlugFuzzy(_ context.Context, prefix string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	return r.findFirst(prefix, excluded, bySlug, func(it *domain.CatalogItem) bool {
		return it.Slug != nil && likeMatch(repository.EscapeLike(prefix)+"%", *it.Slug, true)
	})
}

func (r *catalogItemRepository) FindByNameLike(_ context.Context, name string, excluded domain.ExclusionSet) (*domain.CatalogItem, error) {
	inStockFirst := func(a, b *domain.CatalogItem) bool {
		return a.Quantity > 0 && b.Quantity <= 0
	}
	return r.findFirst(name, excluded, inStockFirst, func(it *domain.CatalogItem) bool {
		return likeMatch("%"+repository.EscapeLike(name)+"%", it.Name, true)
	})
}

func (r *catalogItemRepository) ListMissingSlugs(_ context.Context, afterShop, afterID string, limit int) ([]*domain.CatalogItem, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.CatalogItem, 0)
	for _, it := range r.s.items {
		if it.Slug != nil && *it.Slug != "" {
			continue
		}
		if it.ShopCode < afterShop || (it.ShopCode == afterShop && it.ID <= afterID) {
			continue
		}
		out = append(out, copyItem(it))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ShopCode != out[j].ShopCode {
			return out[i].ShopCode < out[j].ShopCode
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *catalogItemRepository) UpdateSlug(_ context.Context, id, shopCode, slug string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	it, ok := r.s.items[itemKey{id, shopCode}]
	if !ok {
		return &errors.ErrNotFound{Resource: "product", ID: id}
	}
	for k, other := range r.s.items {
		if k.shop == shopCode && k.id != id && other.Slug != nil && *other.Slug == slug {
			return &errors.ErrConflict{Message: "slug " + slug + " already used in shop " + shopCode}
		}
	}
	s := slug
	it.Slug = &s
	it.UpdatedAt = time.Now()
	return nil
}
