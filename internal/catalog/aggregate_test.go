package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
)

func item(id, shop, name string, price int64, qty int) *domain.CatalogItem {
	return &domain.CatalogItem{
		ID:          id,
		ShopCode:    shop,
		Name:        name,
		RetailPrice: decimal.NewFromInt(price),
		Quantity:    qty,
		IsActive:    true,
	}
}

func TestGroupByNameAcrossShops(t *testing.T) {
	items := []*domain.CatalogItem{
		item("a1", "shop1", "POD OXVA Xlim", 1000, 3),
		item("b7", "shop2", "POD OXVA Xlim", 1200, 0),
	}

	groups := GroupByName(items)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, "POD OXVA Xlim", g.Name)
	assert.Len(t, g.Offers, 2)
	require.NotNil(t, g.MinPrice)
	assert.True(t, g.MinPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, g.MaxPrice.Equal(decimal.NewFromInt(1200)))
	assert.Equal(t, 3, g.TotalQuantity)
	assert.Equal(t, 1, g.AvailableShopsCount)
}

func TestGroupByNameKeepsFirstSeenOrder(t *testing.T) {
	items := []*domain.CatalogItem{
		item("1", "s1", "B", 10, 1),
		item("2", "s1", "A", 10, 1),
		item("3", "s2", "B", 20, 1),
		nil,
	}

	groups := GroupByName(items)
	require.Len(t, groups, 2)
	assert.Equal(t, "B", groups[0].Name)
	assert.Equal(t, "A", groups[1].Name)
	assert.Equal(t, "1", groups[0].Offers[0].ItemID)
	assert.Equal(t, "3", groups[0].Offers[1].ItemID)
}

func TestSummarizeWithoutPositivePrice(t *testing.T) {
	p := &domain.AggregatedProduct{
		Offers: []domain.ShopOffer{
			{ShopCode: "s1", Price: decimal.Zero, Quantity: 0},
			{ShopCode: "s2", Price: decimal.Zero, Quantity: 2},
		},
	}

	Summarize(p)

	assert.Nil(t, p.MinPrice)
	assert.True(t, p.MaxPrice.IsZero())
	assert.Equal(t, 2, p.TotalQuantity)
	assert.Equal(t, 1, p.AvailableShopsCount)
}

func TestSummarizeIgnoresZeroForMin(t *testing.T) {
	p := &domain.AggregatedProduct{
		Offers: []domain.ShopOffer{
			{Price: decimal.Zero},
			{Price: decimal.NewFromInt(450)},
			{Price: decimal.NewFromInt(300)},
		},
	}

	Summarize(p)

	require.NotNil(t, p.MinPrice)
	assert.Equal(t, "300", p.MinPrice.String())
	assert.Equal(t, "450", p.MaxPrice.String())
}

func TestSortAggregated(t *testing.T) {
	build := func() []*domain.AggregatedProduct {
		return GroupByName([]*domain.CatalogItem{
			item("1", "s", "banana", 300, 1),
			item("2", "s", "Apple", 500, 1),
			item("3", "s", "cherry", 0, 1),
		})
	}

	byName := build()
	SortAggregated(byName, domain.SortByName, domain.SortAsc)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(byName))

	byPriceDesc := build()
	SortAggregated(byPriceDesc, domain.SortByPrice, domain.SortDesc)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, names(byPriceDesc))

	byPriceAsc := build()
	SortAggregated(byPriceAsc, domain.SortByPrice, domain.SortAsc)
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, names(byPriceAsc))

	untouched := build()
	SortAggregated(untouched, domain.SortByCreatedAt, domain.SortAsc)
	assert.Equal(t, []string{"banana", "Apple", "cherry"}, names(untouched))
}

func TestPage(t *testing.T) {
	groups := GroupByName([]*domain.CatalogItem{
		item("1", "s", "a", 1, 1),
		item("2", "s", "b", 1, 1),
		item("3", "s", "c", 1, 1),
	})

	assert.Equal(t, []string{"a", "b"}, names(Page(groups, 0, 2)))
	assert.Equal(t, []string{"c"}, names(Page(groups, 2, 2)))
	assert.Empty(t, Page(groups, 5, 2))
	assert.Empty(t, Page(groups, -2, 2))
	assert.Len(t, Page(groups, 0, 0), 3)
}

func names(products []*domain.AggregatedProduct) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}
