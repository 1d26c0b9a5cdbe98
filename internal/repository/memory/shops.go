package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type shopRepository struct {
	s *Store
}

func (r *shopRepository) ListActive(_ context.Context) ([]*domain.ShopLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*domain.ShopLocation, 0)
	for _, sh := range r.s.shops {
		if sh.IsActive {
			cp := *sh
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (r *shopRepository) GetByCode(_ context.Context, code string) (*domain.ShopLocation, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	sh, ok := r.s.shops[code]
	if !ok || !sh.IsActive {
		return nil, &errors.ErrNotFound{Resource: "shop", ID: code}
	}
	cp := *sh
	return &cp, nil
}

type purchaseRepository struct {
	s *Store
}

func (r *purchaseRepository) TopSold(_ context.Context, since time.Time, limit int) ([]domain.PurchaseStat, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	type groupKey struct {
		name     string
		category string
		hasCat   bool
	}
	stats := make(map[groupKey]*domain.PurchaseStat)
	seen := make(map[groupKey]map[int]bool)
	var order []groupKey

	for pi, p := range r.s.purchases {
		if p.purchasedAt.Before(since) {
			continue
		}
		for _, l := range p.lines {
			k := groupKey{name: l.ProductName}
			if l.CategoryID != nil {
				k.category, k.hasCat = *l.CategoryID, true
			}
			st, ok := stats[k]
			if !ok {
				st = &domain.PurchaseStat{ProductName: l.ProductName, CategoryID: l.CategoryID}
				stats[k] = st
				seen[k] = make(map[int]bool)
				order = append(order, k)
			}
			st.TotalQuantity += l.Quantity
			if !seen[k][pi] {
				seen[k][pi] = true
				st.PurchaseCount++
			}
		}
	}

	out := make([]domain.PurchaseStat, 0, len(order))
	for _, k := range order {
		out = append(out, *stats[k])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].TotalQuantity != out[j].TotalQuantity {
			return out[i].TotalQuantity > out[j].TotalQuantity
		}
		if out[i].PurchaseCount != out[j].PurchaseCount {
			return out[i].PurchaseCount > out[j].PurchaseCount
		}
		return out[i].ProductName < out[j].ProductName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
