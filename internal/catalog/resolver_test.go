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

// fakeSlugLookup matches against a fixed list of slugs and records the calls it got
type fakeSlugLookup struct {
	slugs []string
	calls []string
	err   error
}

func (f *fakeSlugLookup) result(slug string) (*domain.CatalogItem, error) {
	s := slug
	return &domain.CatalogItem{ID: "id-" + slug, Slug: &s}, nil
}

func (f *fakeSlugLookup) FindBySlugExact(_ context.Context, slug string, _ domain.ExclusionSet) (*domain.CatalogItem, error) {
	f.calls = append(f.calls, "exact:"+slug)
	if f.err != nil {
		return nil, f.err
	}
	for _, s := range f.slugs {
		if s == slug {
			return f.result(s)
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
}

func (f *fakeSlugLookup) FindBySlugPrefix(_ context.Context, slug string, _ domain.ExclusionSet) (*domain.CatalogItem, error) {
	f.calls = append(f.calls, "prefix:"+slug)
	for _, s := range f.slugs {
		if len(s) > len(slug) && strings.HasPrefix(s, slug) {
			return f.result(s)
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: slug}
}

func (f *fakeSlugLookup) FindBySlugFuzzy(_ context.Context, prefix string, _ domain.ExclusionSet) (*domain.CatalogItem, error) {
	f.calls = append(f.calls, "fuzzy:"+prefix)
	for _, s := range f.slugs {
		if strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix)) {
			return f.result(s)
		}
	}
	return nil, &errors.ErrNotFound{Resource: "product", ID: prefix}
}

func TestResolveTiers(t *testing.T) {
	stored := []string{"pod_oxva_xlim_shop1", "liquid_husky_shop2"}

	tests := []struct {
		name     string
		slug     string
		wantID   string
		wantTier domain.SlugTier
	}{
		{"exact", "pod_oxva_xlim_shop1", "id-pod_oxva_xlim_shop1", domain.SlugTierExact},
		{"prefix of shop-suffixed slug", "pod_oxva_xlim", "id-pod_oxva_xlim_shop1", domain.SlugTierPrefix},
		{"fuzzy after trimming two chars", "liquid_husky_shXX", "id-liquid_husky_shop2", domain.SlugTierFuzzy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewSlugResolver(&fakeSlugLookup{slugs: stored}, nil)
			got, tier, err := r.Resolve(context.Background(), tt.slug, domain.ExclusionSet{})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, got.ID)
			assert.Equal(t, tt.wantTier, tier)
		})
	}
}

func TestResolveStopsAtFirstHit(t *testing.T) {
	lookup := &fakeSlugLookup{slugs: []string{"abc_shop1"}}
	r := NewSlugResolver(lookup, nil)

	_, _, err := r.Resolve(context.Background(), "abc_shop1", domain.ExclusionSet{})
	require.NoError(t, err)
	assert.Equal(t, []string{"exact:abc_shop1"}, lookup.calls)
}

func TestResolveShortSlugSkipsFuzzy(t *testing.T) {
	lookup := &fakeSlugLookup{slugs: []string{"abcd_shop1"}}
	r := NewSlugResolver(lookup, nil)

	_, _, err := r.Resolve(context.Background(), "abcXY", domain.ExclusionSet{})
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, []string{"exact:abcXY", "prefix:abcXY"}, lookup.calls)
}

func TestResolvePropagatesLookupErrors(t *testing.T) {
	lookup := &fakeSlugLookup{err: fmt.Errorf("connection reset")}
	r := NewSlugResolver(lookup, nil)

	_, _, err := r.Resolve(context.Background(), "anything", domain.ExclusionSet{})
	require.Error(t, err)
	assert.False(t, errors.IsNotFound(err))
}

func TestResolveEmptySlug(t *testing.T) {
	r := NewSlugResolver(&fakeSlugLookup{}, nil)
	_, _, err := r.Resolve(context.Background(), "", domain.ExclusionSet{})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)
}

func TestFuzzyPrefix(t *testing.T) {
	tests := []struct {
		slug   string
		prefix string
		ok     bool
	}{
		{"abcde", "", false},
		{"abcdef", "abcd", true},
		{"abcdefgh", "abcdef", true},
		{"abc", "", false},
	}
	for _, tt := range tests {
		prefix, ok := FuzzyPrefix(tt.slug)
		assert.Equal(t, tt.ok, ok, tt.slug)
		assert.Equal(t, tt.prefix, prefix, tt.slug)
	}
}
