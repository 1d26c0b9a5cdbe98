package service

import (
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/internal/search"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// ListQuery is a parsed catalog listing request
type ListQuery struct {
	CategoryID  *string
	ShopCode    *string
	Search      string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStock     bool
	Sort        domain.SortField
	Order       domain.SortOrder
	Page        int
	Limit       int
	GroupByName bool
}

// Offset is the row (or group) offset of the requested page
func (q ListQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// filter builds the repository filter without pagination or exclusions
func (q ListQuery) filter() domain.CatalogFilter {
	return domain.CatalogFilter{
		CategoryID:     q.CategoryID,
		ShopCode:       q.ShopCode,
		SearchVariants: search.GetSearchVariants(q.Search),
		MinPrice:       q.MinPrice,
		MaxPrice:       q.MaxPrice,
		InStock:        q.InStock,
		Sort:           q.Sort,
		Order:          q.Order,
	}
}

// ParseListQuery validates catalog query parameters. Every invalid parameter is
// reported in the returned *errors.ErrValidation; limits above the maximum page
// size are capped rather than rejected.
func ParseListQuery(values url.Values, cfg config.CatalogConfig) (ListQuery, error) {
	q := ListQuery{
		Sort:  domain.SortByName,
		Order: domain.SortAsc,
		Page:  1,
		Limit: cfg.DefaultPageSize,
	}
	fields := map[string]string{}

	if v := strings.TrimSpace(values.Get("category")); v != "" {
		q.CategoryID = &v
	}
	if v := strings.TrimSpace(values.Get("shop")); v != "" {
		q.ShopCode = &v
	}
	q.Search = strings.TrimSpace(values.Get("search"))
	if q.Search == "" {
		q.Search = strings.TrimSpace(values.Get("q"))
	}

	q.MinPrice = parsePrice(values.Get("minPrice"), "minPrice", fields)
	q.MaxPrice = parsePrice(values.Get("maxPrice"), "maxPrice", fields)
	if q.MinPrice != nil && q.MaxPrice != nil && q.MinPrice.GreaterThan(*q.MaxPrice) {
		fields["minPrice"] = "must not exceed maxPrice"
	}

	q.InStock = parseBool(values.Get("inStock"), "inStock", fields)
	q.GroupByName = parseBool(values.Get("group_by_name"), "group_by_name", fields)

	if v := values.Get("sort"); v != "" {
		q.Sort = domain.SortField(v)
		if !q.Sort.IsValid() {
			fields["sort"] = "must be one of: name, price, created_at, popularity"
		}
	}
	if v := values.Get("order"); v != "" {
		q.Order = domain.SortOrder(strings.ToLower(v))
		if !q.Order.IsValid() {
			fields["order"] = "must be asc or desc"
		}
	}

	if v := values.Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fields["page"] = "must be a positive integer"
		} else {
			q.Page = n
		}
	}
	if v := values.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			fields["limit"] = "must be a positive integer"
		} else {
			q.Limit = n
		}
	}
	if q.Limit > cfg.MaxPageSize {
		q.Limit = cfg.MaxPageSize
	}
	// the row offset (page-1)*limit must fit in an int
	if q.Limit > 0 && q.Page-1 > math.MaxInt32/q.Limit {
		fields["page"] = "is too large"
	}

	if len(fields) > 0 {
		return q, &errors.ErrValidation{Message: "invalid query parameters", Fields: fields}
	}
	return q, nil
}

func parsePrice(raw, name string, fields map[string]string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.IsNegative() {
		fields[name] = "must be a non-negative number"
		return nil
	}
	return &d
}

func parseBool(raw, name string, fields map[string]string) bool {
	if raw == "" {
		return false
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		fields[name] = "must be true or false"
		return false
	}
	return b
}
