package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository/memory"
)

func TestRunSlugBackfill(t *testing.T) {
	store := memory.NewStore()
	store.AddItems(
		product("1", "SHOP1", "Картридж JustFog Minifit S", "", "", 300, 1),
		product("2", "SHOP1", "Картридж JustFog Minifit S", "", "", 300, 1),
		product("3", "shop2", "Испаритель", "isparitel_shop2", "", 200, 1),
	)
	repos := memory.NewRepositories(store)
	ctx := context.Background()

	res, ok, err := RunSlugBackfill(ctx, repos, testLogger)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, BackfillResult{Scanned: 2, Updated: 2}, res)

	one, err := repos.CatalogItem.GetByID(ctx, "1", nil)
	require.NoError(t, err)
	two, err := repos.CatalogItem.GetByID(ctx, "2", nil)
	require.NoError(t, err)

	slugs := []string{*one.Slug, *two.Slug}
	assert.Contains(t, slugs, "kartridzh_justfog_minifit_s_shop1")
	assert.Contains(t, slugs, "kartridzh_justfog_minifit_s_2_shop1")

	missing, err := repos.CatalogItem.ListMissingSlugs(ctx, "", "", 10)
	require.NoError(t, err)
	assert.Empty(t, missing)

	res, ok, err = RunSlugBackfill(ctx, repos, testLogger)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, BackfillResult{}, res)
}

// brokenSlugWrites fails every slug write for the listed row ids
type brokenSlugWrites struct {
	repository.CatalogItemRepository
	ids map[string]bool
}

func (r *brokenSlugWrites) UpdateSlug(ctx context.Context, id, shopCode, slug string) error {
	if r.ids[id] {
		return stderrors.New("write rejected")
	}
	return r.CatalogItemRepository.UpdateSlug(ctx, id, shopCode, slug)
}

func TestRunSlugBackfillMovesPastFailingBatch(t *testing.T) {
	store := memory.NewStore()
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("p%d", i)
		store.AddItems(product(id, "shop1", "Товар "+id, "", "", 100, 1))
	}
	repos := memory.NewRepositories(store)
	repos.CatalogItem = &brokenSlugWrites{
		CatalogItemRepository: repos.CatalogItem,
		ids:                   map[string]bool{"p0": true, "p1": true},
	}
	ctx := context.Background()

	// the first batch of two fails entirely; later rows must still be reached
	res, err := runSlugBackfill(ctx, repos, testLogger, 2)
	require.NoError(t, err)
	assert.Equal(t, BackfillResult{Scanned: 5, Updated: 3, Failed: 2}, res)

	missing, err := repos.CatalogItem.ListMissingSlugs(ctx, "", "", 10)
	require.NoError(t, err)
	require.Len(t, missing, 2)
	assert.Equal(t, "p0", missing[0].ID)
	assert.Equal(t, "p1", missing[1].ID)
}

func TestListMissingSlugsCursor(t *testing.T) {
	store := memory.NewStore()
	store.AddItems(
		product("b", "shop1", "B", "", "", 1, 1),
		product("a", "shop2", "A", "", "", 1, 1),
		product("a", "shop1", "A", "", "", 1, 1),
		product("c", "shop1", "C", "c_shop1", "", 1, 1),
	)
	repos := memory.NewRepositories(store)
	ctx := context.Background()

	page, err := repos.CatalogItem.ListMissingSlugs(ctx, "", "", 2)
	require.NoError(t, err)
	require.Len(t, page, 2)
	assert.Equal(t, "shop1/a", page[0].ShopCode+"/"+page[0].ID)
	assert.Equal(t, "shop1/b", page[1].ShopCode+"/"+page[1].ID)

	page, err = repos.CatalogItem.ListMissingSlugs(ctx, "shop1", "b", 2)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "shop2/a", page[0].ShopCode+"/"+page[0].ID)
}

func TestRunSlugBackfillSingleFlight(t *testing.T) {
	slugBackfillMu.Lock()
	defer slugBackfillMu.Unlock()

	_, ok, err := RunSlugBackfill(context.Background(), testRepos(), testLogger)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, TriggerSlugBackfill(testRepos(), testLogger))
}
