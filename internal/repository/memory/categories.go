package memory

import (
	"context"
	"sort"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type categoryRepository struct {
	s *Store
}

func sortCategories(cs []*domain.CatalogCategory) {
	sort.SliceStable(cs, func(i, j int) bool {
		a, b := cs[i], cs[j]
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ShopCode < b.ShopCode
	})
}

func (r *categoryRepository) ListChildren(_ context.Context, shopCode, parentID *string) ([]*domain.CatalogCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.CatalogCategory, 0)
	for _, c := range r.s.categories {
		if !c.IsActive || (shopCode != nil && c.ShopCode != *shopCode) {
			continue
		}
		if parentID == nil && c.ParentID != nil {
			continue
		}
		if parentID != nil && (c.ParentID == nil || *c.ParentID != *parentID) {
			continue
		}
		cp := *c
		out = append(out, &cp)
	}
	sortCategories(out)
	return out, nil
}

func (s *Store) countProducts(categoryID, shopCode string, excluded domain.ExclusionSet) int {
	n := 0
	for _, it := range s.items {
		if it.IsActive && it.ShopCode == shopCode && it.CategoryID != nil && *it.CategoryID == categoryID && !excluded.Excludes(it) {
			n++
		}
	}
	return n
}

func (r *categoryRepository) CountProducts(_ context.Context, categoryID, shopCode string, excluded domain.ExclusionSet) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.countProducts(categoryID, shopCode, excluded), nil
}

func (r *categoryRepository) HasChildren(_ context.Context, categoryID, shopCode string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.categories {
		if c.IsActive && c.ShopCode == shopCode && c.ParentID != nil && *c.ParentID == categoryID {
			return true, nil
		}
	}
	return false, nil
}

// Tree walks from the roots the way the recursive query does: only rows reachable
// through active, non-excluded parents are returned.
func (r *categoryRepository) Tree(_ context.Context, shopCode *string, excluded domain.ExclusionSet) ([]*domain.CategoryNode, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	children := make(map[itemKey][]*domain.CatalogCategory)
	var frontier []*domain.CatalogCategory
	for _, c := range r.s.categories {
		if !c.IsActive || excluded.ExcludesCategory(c.ID) || (shopCode != nil && c.ShopCode != *shopCode) {
			continue
		}
		if c.ParentID == nil {
			frontier = append(frontier, c)
			continue
		}
		k := itemKey{*c.ParentID, c.ShopCode}
		children[k] = append(children[k], c)
	}

	productsOnly := domain.ExclusionSet{ProductIDs: excluded.ProductIDs}
	nodes := make([]*domain.CategoryNode, 0)
	for len(frontier) > 0 {
		var next []*domain.CatalogCategory
		for _, c := range frontier {
			nodes = append(nodes, &domain.CategoryNode{
				CatalogCategory: *c,
				ProductCount:    r.s.countProducts(c.ID, c.ShopCode, productsOnly),
			})
			next = append(next, children[itemKey{c.ID, c.ShopCode}]...)
		}
		frontier = next
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		a, b := nodes[i], nodes[j]
		if a.Level != b.Level {
			return a.Level < b.Level
		}
		if a.SortOrder != b.SortOrder {
			return a.SortOrder < b.SortOrder
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ShopCode < b.ShopCode
	})
	return nodes, nil
}

func (r *categoryRepository) Descendants(_ context.Context, ids []string) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	children := make(map[itemKey][]*domain.CatalogCategory)
	for _, c := range r.s.categories {
		if c.ParentID != nil {
			k := itemKey{*c.ParentID, c.ShopCode}
			children[k] = append(children[k], c)
		}
	}

	var frontier []*domain.CatalogCategory
	for _, c := range r.s.categories {
		for _, id := range ids {
			if c.ParentID != nil && *c.ParentID == id {
				frontier = append(frontier, c)
				break
			}
		}
	}

	visited := make(map[itemKey]bool)
	found := make(map[string]bool)
	for len(frontier) > 0 {
		var next []*domain.CatalogCategory
		for _, c := range frontier {
			k := itemKey{c.ID, c.ShopCode}
			if visited[k] {
				continue
			}
			visited[k] = true
			found[c.ID] = true
			next = append(next, children[k]...)
		}
		frontier = next
	}

	out := make([]string, 0, len(found))
	for id := range found {
		out = append(out, id)
	}
	sort.Strings(out)
	return out, nil
}

func (r *categoryRepository) GetByID(_ context.Context, id string, shopCode *string) (*domain.CatalogCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var found *domain.CatalogCategory
	for _, c := range r.s.categories {
		if c.ID != id || !c.IsActive || (shopCode != nil && c.ShopCode != *shopCode) {
			continue
		}
		if found == nil || c.ShopCode < found.ShopCode {
			found = c
		}
	}
	if found == nil {
		return nil, &errors.ErrNotFound{Resource: "category", ID: id}
	}
	cp := *found
	return &cp, nil
}

func (r *categoryRepository) GetByFullPath(_ context.Context, shopCode, fullPath string) (*domain.CatalogCategory, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, c := range r.s.categories {
		if c.IsActive && c.ShopCode == shopCode && c.FullPath == fullPath {
			cp := *c
			return &cp, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "category", ID: fullPath}
}
