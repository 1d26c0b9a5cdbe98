// Package catalog holds the in-memory catalog logic: cross-shop aggregation,
// category tree shaping, slug resolution policy and best-seller ranking.
// Nothing here talks to the database directly.
package catalog

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
)

// GroupByName merges catalog rows into one product per name. The same physical
// product has a different id in every shop, so the name is the grouping key.
// The first row seen for a name seeds slug, category, characteristics and
// modifications; every row contributes one offer. Group order is first-seen order.
func GroupByName(items []*domain.CatalogItem) []*domain.AggregatedProduct {
	groups := make(map[string]*domain.AggregatedProduct)
	var order []string

	for _, item := range items {
		if item == nil {
			continue
		}
		p, ok := groups[item.Name]
		if !ok {
			p = &domain.AggregatedProduct{
				Name:            item.Name,
				Slug:            item.Slug,
				CategoryID:      item.CategoryID,
				Characteristics: item.Characteristics,
				Modifications:   item.Modifications,
				Offers:          []domain.ShopOffer{},
			}
			groups[item.Name] = p
			order = append(order, item.Name)
		}
		p.Offers = append(p.Offers, domain.ShopOffer{
			ItemID:   item.ID,
			ShopCode: item.ShopCode,
			Price:    item.RetailPrice,
			Quantity: item.Quantity,
		})
	}

	out := make([]*domain.AggregatedProduct, 0, len(order))
	for _, name := range order {
		p := groups[name]
		Summarize(p)
		out = append(out, p)
	}
	return out
}

// Summarize recomputes the derived fields of an aggregated product from its offers.
// MinPrice only considers positive prices and stays nil when there are none.
func Summarize(p *domain.AggregatedProduct) {
	p.TotalQuantity = 0
	p.AvailableShopsCount = 0
	p.MinPrice = nil
	p.MaxPrice = decimal.Zero

	for i, offer := range p.Offers {
		p.TotalQuantity += offer.Quantity
		if offer.Quantity > 0 {
			p.AvailableShopsCount++
		}
		if i == 0 || offer.Price.GreaterThan(p.MaxPrice) {
			p.MaxPrice = offer.Price
		}
		if offer.Price.IsPositive() && (p.MinPrice == nil || offer.Price.LessThan(*p.MinPrice)) {
			price := offer.Price
			p.MinPrice = &price
		}
	}
}

// SortAggregated orders grouped products in place. Name and price are the only
// fields available after grouping; any other field keeps first-seen order, which
// already follows the SQL ordering of the underlying rows.
func SortAggregated(products []*domain.AggregatedProduct, field domain.SortField, order domain.SortOrder) {
	desc := order == domain.SortDesc
	switch field {
	case domain.SortByName:
		sort.SliceStable(products, func(i, j int) bool {
			a, b := strings.ToLower(products[i].Name), strings.ToLower(products[j].Name)
			if desc {
				return a > b
			}
			return a < b
		})
	case domain.SortByPrice:
		sort.SliceStable(products, func(i, j int) bool {
			a, b := sortPrice(products[i]), sortPrice(products[j])
			if desc {
				return a.GreaterThan(b)
			}
			return a.LessThan(b)
		})
	}
}

// sortPrice is the min price, falling back to the max price for unpriced groups
func sortPrice(p *domain.AggregatedProduct) decimal.Decimal {
	if p.MinPrice != nil {
		return *p.MinPrice
	}
	return p.MaxPrice
}

// Page slices a grouped result for offset pagination
func Page(products []*domain.AggregatedProduct, offset, limit int) []*domain.AggregatedProduct {
	if offset < 0 || offset >= len(products) {
		return []*domain.AggregatedProduct{}
	}
	end := len(products)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return products[offset:end]
}
