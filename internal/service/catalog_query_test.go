package service

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/internal/domain"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

func TestParseListQueryDefaults(t *testing.T) {
	q, err := ParseListQuery(url.Values{}, testCatalogConfig)
	require.NoError(t, err)
	assert.Equal(t, domain.SortByName, q.Sort)
	assert.Equal(t, domain.SortAsc, q.Order)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, 20, q.Limit)
	assert.Equal(t, 0, q.Offset())
	assert.False(t, q.GroupByName)
	assert.Nil(t, q.MinPrice)
}

func TestParseListQueryFull(t *testing.T) {
	values, _ := url.ParseQuery("category=pods&shop=shop1&search=%20oxva%20&minPrice=100&maxPrice=999.50&inStock=true&sort=popularity&order=DESC&page=3&limit=10&group_by_name=1")
	q, err := ParseListQuery(values, testCatalogConfig)
	require.NoError(t, err)

	assert.Equal(t, "pods", *q.CategoryID)
	assert.Equal(t, "shop1", *q.ShopCode)
	assert.Equal(t, "oxva", q.Search)
	assert.Equal(t, "100", q.MinPrice.String())
	assert.Equal(t, "999.5", q.MaxPrice.String())
	assert.True(t, q.InStock)
	assert.Equal(t, domain.SortByPopularity, q.Sort)
	assert.Equal(t, domain.SortDesc, q.Order)
	assert.Equal(t, 20, q.Offset())
	assert.True(t, q.GroupByName)
	assert.Equal(t, []string{"oxva", "щчмф"}, q.filter().SearchVariants)
}

func TestParseListQueryCapsLimit(t *testing.T) {
	q, err := ParseListQuery(url.Values{"limit": {"500"}}, testCatalogConfig)
	require.NoError(t, err)
	assert.Equal(t, 50, q.Limit)
}

func TestParseListQueryErrors(t *testing.T) {
	values, _ := url.ParseQuery("sort=rating&order=up&page=0&limit=x&minPrice=-1&inStock=maybe")
	_, err := ParseListQuery(values, testCatalogConfig)

	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"sort", "order", "page", "limit", "minPrice", "inStock"} {
		assert.Contains(t, verr.Fields, field)
	}
}

func TestParseListQueryPriceRange(t *testing.T) {
	_, err := ParseListQuery(url.Values{"minPrice": {"500"}, "maxPrice": {"100"}}, testCatalogConfig)
	var verr *errors.ErrValidation
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "minPrice")
}

func TestParseListQueryRejectsOverflowingPage(t *testing.T) {
	for _, page := range []string{"9223372036854775807", "1000000000"} {
		_, err := ParseListQuery(url.Values{"page": {page}, "limit": {"20"}}, testCatalogConfig)

		var verr *errors.ErrValidation
		require.ErrorAs(t, err, &verr, page)
		assert.Contains(t, verr.Fields, "page", page)
	}

	q, err := ParseListQuery(url.Values{"page": {"1000"}}, testCatalogConfig)
	require.NoError(t, err)
	assert.Equal(t, 19980, q.Offset())
}
