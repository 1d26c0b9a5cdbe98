package catalog

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

type fakeMatcher struct {
	items []*domain.CatalogItem
	fail  map[string]bool
}

func (m *fakeMatcher) FindByNameLike(_ context.Context, name string, _ domain.ExclusionSet) (*domain.CatalogItem, error) {
	if m.fail[name] {
		return nil, fmt.Errorf("query failed")
	}
	for _, it := range m.items {
		if strings.Contains(strings.ToLower(it.Name), strings.ToLower(name)) {
			return it, nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: name}
}

func stat(name string, qty, purchases int) domain.PurchaseStat {
	return domain.PurchaseStat{ProductName: name, TotalQuantity: qty, PurchaseCount: purchases}
}

func TestRankPopular(t *testing.T) {
	hidden := "cat-hidden"
	matcher := &fakeMatcher{
		items: []*domain.CatalogItem{
			item("p1", "s1", "OXVA Xlim", 1000, 2),
			item("p2", "s1", "HUSKY Ice", 500, 1),
			{ID: "p3", ShopCode: "s1", Name: "Hidden thing", CategoryID: &hidden},
			item("p4", "s1", "Blocked", 100, 1),
			item("p5", "s1", "Vaporesso", 900, 1),
		},
		fail: map[string]bool{"broken": true},
	}
	excluded := domain.ExclusionSet{ProductIDs: []string{"p4"}, CategoryIDs: []string{hidden}}

	candidates := []domain.PurchaseStat{
		stat("oxva xlim", 40, 12),
		stat("discontinued", 30, 9),
		stat("Hidden thing", 25, 5),
		stat("OXVA", 20, 4),
		stat("broken", 18, 3),
		stat("Blocked", 15, 3),
		stat("husky", 10, 2),
		stat("Vaporesso", 5, 1),
	}

	got := RankPopular(context.Background(), candidates, matcher, excluded, 2, nil)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].Item.ID)
	assert.Equal(t, 40, got[0].TotalSold)
	assert.Equal(t, 12, got[0].PurchaseCount)
	assert.Equal(t, "p2", got[1].Item.ID)
}

func TestRankPopularNoBackfill(t *testing.T) {
	matcher := &fakeMatcher{items: []*domain.CatalogItem{item("p1", "s1", "Only", 10, 1)}}
	candidates := []domain.PurchaseStat{stat("Only", 3, 1), stat("gone", 2, 1)}

	got := RankPopular(context.Background(), candidates, matcher, domain.ExclusionSet{}, 10, nil)
	require.Len(t, got, 1)
	assert.Equal(t, "p1", got[0].Item.ID)
}

func TestRankPopularEmpty(t *testing.T) {
	got := RankPopular(context.Background(), nil, &fakeMatcher{}, domain.ExclusionSet{}, 10, nil)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestOverfetchLimit(t *testing.T) {
	assert.Equal(t, 100, OverfetchLimit(10, 10))
	assert.Equal(t, 10, OverfetchLimit(10, 0))
}
