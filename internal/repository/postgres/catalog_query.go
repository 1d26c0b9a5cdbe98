package postgres

import (
	"fmt"
	"strings"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
)

const catalogItemColumns = `ci.id, ci.shop_code, ci.category_id, ci.name, ci.slug, ci.quantity, ci.retail_price,
		ci.characteristics, ci.modifications, ci.is_active, ci.created_at, ci.updated_at`

// popularityExpr is units sold per product name over all recorded purchases
const popularityExpr = `(SELECT COALESCE(SUM(pi.quantity), 0) FROM purchase_items pi WHERE pi.product_name = ci.name)`

// whereBuilder accumulates AND-ed conditions with positional parameters
type whereBuilder struct {
	conds []string
	args  []interface{}
}

func newWhereBuilder() *whereBuilder {
	return &whereBuilder{conds: []string{"ci.is_active = true"}}
}

// arg binds v and returns its placeholder
func (b *whereBuilder) arg(v interface{}) string {
	b.args = append(b.args, v)
	return fmt.Sprintf("$%d", len(b.args))
}

func (b *whereBuilder) add(cond string) {
	b.conds = append(b.conds, cond)
}

func (b *whereBuilder) sql() string {
	return "WHERE " + strings.Join(b.conds, " AND ")
}

// exclude ANDs the exclusion set into the conditions; empty lists add nothing
func (b *whereBuilder) exclude(set domain.ExclusionSet) {
	if len(set.ProductIDs) > 0 {
		b.add("ci.id <> ALL(" + b.arg(idArray(set.ProductIDs)) + ")")
	}
	if len(set.CategoryIDs) > 0 {
		b.add("(ci.category_id IS NULL OR ci.category_id <> ALL(" + b.arg(idArray(set.CategoryIDs)) + "))")
	}
}

// search matches the name against every variant: a single ILIKE, or an OR of them
func (b *whereBuilder) search(variants []string) {
	if len(variants) == 0 {
		return
	}
	parts := make([]string, 0, len(variants))
	for _, v := range variants {
		parts = append(parts, "ci.name ILIKE "+b.arg("%"+repository.EscapeLike(v)+"%"))
	}
	if len(parts) == 1 {
		b.add(parts[0])
		return
	}
	b.add("(" + strings.Join(parts, " OR ") + ")")
}

func catalogWhere(f domain.CatalogFilter) *whereBuilder {
	b := newWhereBuilder()
	if f.CategoryID != nil {
		b.add("ci.category_id = " + b.arg(*f.CategoryID))
	}
	if f.ShopCode != nil {
		b.add("ci.shop_code = " + b.arg(*f.ShopCode))
	}
	b.search(f.SearchVariants)
	if f.MinPrice != nil {
		b.add("ci.retail_price >= " + b.arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		b.add("ci.retail_price <= " + b.arg(*f.MaxPrice))
	}
	if f.InStock {
		b.add("ci.quantity > 0")
	}
	b.exclude(f.Excluded)
	return b
}

// catalogOrderBy maps a validated sort field to its ORDER BY clause. Ties break on
// name, shop and id so pagination is stable.
func catalogOrderBy(field domain.SortField, order domain.SortOrder) string {
	dir := "ASC"
	if order == domain.SortDesc {
		dir = "DESC"
	}
	var expr string
	switch field {
	case domain.SortByPrice:
		expr = "ci.retail_price"
	case domain.SortByCreatedAt:
		expr = "ci.created_at"
	case domain.SortByPopularity:
		expr = popularityExpr
	default:
		expr = "ci.name"
	}
	return fmt.Sprintf("ORDER BY %s %s, ci.name ASC, ci.shop_code ASC, ci.id ASC", expr, dir)
}

// buildCatalogListQuery returns the page query for f. Limit 0 fetches every match.
func buildCatalogListQuery(f domain.CatalogFilter) (string, []interface{}) {
	b := catalogWhere(f)
	query := "SELECT " + catalogItemColumns + "\n\t\tFROM catalog_items ci\n\t\t" + b.sql() + "\n\t\t" + catalogOrderBy(f.Sort, f.Order)
	if f.Limit > 0 {
		query += " LIMIT " + b.arg(f.Limit)
	}
	if f.Offset > 0 {
		query += " OFFSET " + b.arg(f.Offset)
	}
	return query, b.args
}

// buildCatalogCountQuery counts every row matching f, ignoring pagination
func buildCatalogCountQuery(f domain.CatalogFilter) (string, []interface{}) {
	b := catalogWhere(f)
	return "SELECT COUNT(*) FROM catalog_items ci " + b.sql(), b.args
}

// buildSingleItemQuery selects the first active, non-excluded row satisfying cond.
// cond refers to its own parameter as $1.
func buildSingleItemQuery(cond string, value interface{}, excluded domain.ExclusionSet, orderBy string) (string, []interface{}) {
	b := newWhereBuilder()
	b.add(strings.ReplaceAll(cond, "$1", b.arg(value)))
	b.exclude(excluded)
	return "SELECT " + catalogItemColumns + "\n\t\tFROM catalog_items ci\n\t\t" + b.sql() + "\n\t\tORDER BY " + orderBy + " LIMIT 1", b.args
}
