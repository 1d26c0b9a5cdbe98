package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

func strPtr(s string) *string { return &s }

func TestLikeMatch(t *testing.T) {
	tests := []struct {
		pattern string
		s       string
		fold    bool
		want    bool
	}{
		{"abc_%", "abc_shop1", false, true},
		{"abc_%", "abc", false, false},
		{"abc_%", "abcd", false, true},
		{"%oxva%", "POD Система OXVA", true, true},
		{"%oxva%", "POD Система OXVA", false, false},
		{"%систем%", "POD Система OXVA", true, true},
		{"liq%", "LIQUID", true, true},
		{"a%b%c", "aXXbYYc", false, true},
		{"a%b%c", "aXXcYYb", false, false},
		{"%", "", false, true},
		{`%100\%%`, "скидка 100% OXVA", true, true},
		{`%100\%%`, "OXVA 1000", true, false},
		{`a\_b`, "a_b", false, true},
		{`a\_b`, "axb", false, false},
		{`%c:\\x%`, `path c:\x`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.s, func(t *testing.T) {
			assert.Equal(t, tt.want, likeMatch(tt.pattern, tt.s, tt.fold))
		})
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	repos := NewRepositories(seededStore())
	ctx := context.Background()

	for _, text := range []string{"%", "_", `\`} {
		items, total, err := repos.CatalogItem.List(ctx, domain.CatalogFilter{SearchVariants: []string{text}})
		require.NoError(t, err)
		assert.Zero(t, total, text)
		assert.Empty(t, items, text)

		_, err = repos.CatalogItem.FindByNameLike(ctx, text, domain.ExclusionSet{})
		assert.True(t, errors.IsNotFound(err), text)
	}
}

func seededStore() *Store {
	s := NewStore()
	s.AddItems(
		&domain.CatalogItem{ID: "1", ShopCode: "shop1", Name: "POD Система OXVA", Slug: strPtr("pod_sistema_oxva_shop1"), RetailPrice: decimal.NewFromInt(1000), Quantity: 3, IsActive: true, CategoryID: strPtr("c1")},
		&domain.CatalogItem{ID: "9", ShopCode: "shop2", Name: "POD Система OXVA", Slug: strPtr("pod_sistema_oxva_shop2"), RetailPrice: decimal.NewFromInt(1200), Quantity: 0, IsActive: true, CategoryID: strPtr("c1")},
		&domain.CatalogItem{ID: "2", ShopCode: "shop1", Name: "Жидкость HUSKY", RetailPrice: decimal.NewFromInt(450), Quantity: 5, IsActive: true, CategoryID: strPtr("c2")},
		&domain.CatalogItem{ID: "3", ShopCode: "shop1", Name: "Old thing", RetailPrice: decimal.NewFromInt(10), Quantity: 1, IsActive: false},
	)
	return s
}

func TestCatalogListFilters(t *testing.T) {
	repos := NewRepositories(seededStore())
	ctx := context.Background()

	items, total, err := repos.CatalogItem.List(ctx, domain.CatalogFilter{SearchVariants: []string{"oxva"}})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Len(t, items, 2)

	items, total, err = repos.CatalogItem.List(ctx, domain.CatalogFilter{InStock: true, Sort: domain.SortByPrice, Order: domain.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	assert.Equal(t, "1", items[0].ID)
	assert.Equal(t, "2", items[1].ID)

	items, total, err = repos.CatalogItem.List(ctx, domain.CatalogFilter{
		Limit:    1,
		Offset:   1,
		Excluded: domain.ExclusionSet{CategoryIDs: []string{"c2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, items, 1)
	assert.Equal(t, "shop2", items[0].ShopCode)
}

func TestSlugTiers(t *testing.T) {
	repos := NewRepositories(seededStore())
	ctx := context.Background()

	it, err := repos.CatalogItem.FindBySlugPrefix(ctx, "pod_sistema_oxva", domain.ExclusionSet{})
	require.NoError(t, err)
	assert.Equal(t, "shop1", it.ShopCode)

	it, err = repos.CatalogItem.FindBySlugPrefix(ctx, "pod_sistema_oxva", domain.ExclusionSet{ProductIDs: []string{"1"}})
	require.NoError(t, err)
	assert.Equal(t, "shop2", it.ShopCode)

	it, err = repos.CatalogItem.FindBySlugFuzzy(ctx, "POD_SISTEMA", domain.ExclusionSet{})
	require.NoError(t, err)
	assert.Equal(t, "1", it.ID)

	_, err = repos.CatalogItem.FindBySlugExact(ctx, "pod_sistema_oxva", domain.ExclusionSet{})
	assert.True(t, errors.IsNotFound(err))
}

func TestTopSold(t *testing.T) {
	s := seededStore()
	now := time.Now()
	s.AddPurchase(now.Add(-24*time.Hour), PurchaseLine{ProductName: "OXVA", Quantity: 2}, PurchaseLine{ProductName: "HUSKY", Quantity: 1})
	s.AddPurchase(now.Add(-48*time.Hour), PurchaseLine{ProductName: "HUSKY", Quantity: 1}, PurchaseLine{ProductName: "HUSKY", Quantity: 1})
	s.AddPurchase(now.Add(-60*24*time.Hour), PurchaseLine{ProductName: "Ancient", Quantity: 100})

	stats, err := NewRepositories(s).Purchase.TopSold(context.Background(), now.Add(-30*24*time.Hour), 10)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "HUSKY", stats[0].ProductName)
	assert.Equal(t, 3, stats[0].TotalQuantity)
	assert.Equal(t, 2, stats[0].PurchaseCount)
	assert.Equal(t, "OXVA", stats[1].ProductName)
}

func TestExclusionLifecycle(t *testing.T) {
	repos := NewRepositories(NewStore())
	ctx := context.Background()

	e := &domain.CatalogExclusion{ExclusionType: domain.ExclusionTypeProduct, ItemID: "1"}
	require.NoError(t, repos.Exclusion.Create(ctx, e))

	err := repos.Exclusion.Create(ctx, &domain.CatalogExclusion{ExclusionType: domain.ExclusionTypeProduct, ItemID: "1"})
	assert.True(t, errors.IsConflict(err))

	require.NoError(t, repos.Exclusion.Deactivate(ctx, e.ID))
	assert.True(t, errors.IsNotFound(repos.Exclusion.Deactivate(ctx, e.ID)))

	all, err := repos.Exclusion.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
	active, err := repos.Exclusion.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	// a soft-deleted pair can be excluded again
	assert.NoError(t, repos.Exclusion.Create(ctx, &domain.CatalogExclusion{ExclusionType: domain.ExclusionTypeProduct, ItemID: "1"}))
}

func TestCartUpsertAddsQuantity(t *testing.T) {
	repos := NewRepositories(NewStore())
	ctx := context.Background()

	first := &domain.CartItem{UserID: "u1", ProductID: "1", ShopCode: "shop1", Quantity: 1}
	require.NoError(t, repos.Cart.Upsert(ctx, first))
	second := &domain.CartItem{UserID: "u1", ProductID: "1", ShopCode: "shop1", Quantity: 2}
	require.NoError(t, repos.Cart.Upsert(ctx, second))

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)

	items, err := repos.Cart.ListByUser(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = repos.Cart.UpdateQuantity(ctx, "someone-else", first.ID, 5)
	assert.True(t, errors.IsNotFound(err))
}

func TestCartUpsertRejectsMergeOverCap(t *testing.T) {
	repos := NewRepositories(NewStore())
	ctx := context.Background()

	first := &domain.CartItem{UserID: "u1", ProductID: "h1", ShopCode: "shop1", Quantity: 998}
	require.NoError(t, repos.Cart.Upsert(ctx, first))

	err := repos.Cart.Upsert(ctx, &domain.CartItem{UserID: "u1", ProductID: "h1", ShopCode: "shop1", Quantity: 2})
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)

	items, err := repos.Cart.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, 998, items[0].Quantity)

	full := &domain.CartItem{UserID: "u1", ProductID: "h1", ShopCode: "shop1", Quantity: 1}
	require.NoError(t, repos.Cart.Upsert(ctx, full))
	assert.Equal(t, 999, full.Quantity)
}

func TestCategoryDescendants(t *testing.T) {
	s := NewStore()
	s.AddCategories(
		&domain.CatalogCategory{ID: "a", ShopCode: "s1", IsActive: true},
		&domain.CatalogCategory{ID: "b", ShopCode: "s1", ParentID: strPtr("a"), IsActive: true},
		&domain.CatalogCategory{ID: "c", ShopCode: "s1", ParentID: strPtr("b"), IsActive: false},
		&domain.CatalogCategory{ID: "d", ShopCode: "s1", ParentID: strPtr("c"), IsActive: true},
		&domain.CatalogCategory{ID: "x", ShopCode: "s2", ParentID: strPtr("a"), IsActive: true},
		&domain.CatalogCategory{ID: "y", ShopCode: "s1", IsActive: true},
		// a cycle must not loop forever
		&domain.CatalogCategory{ID: "p", ShopCode: "s1", ParentID: strPtr("q"), IsActive: true},
		&domain.CatalogCategory{ID: "q", ShopCode: "s1", ParentID: strPtr("p"), IsActive: true},
	)
	repos := NewRepositories(s)
	ctx := context.Background()

	ids, err := repos.Category.Descendants(ctx, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "c", "d", "x"}, ids)

	ids, err = repos.Category.Descendants(ctx, []string{"p"})
	require.NoError(t, err)
	assert.Equal(t, []string{"p", "q"}, ids)

	ids, err = repos.Category.Descendants(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
