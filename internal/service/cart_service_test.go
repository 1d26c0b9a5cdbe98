package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

func TestCartFlow(t *testing.T) {
	svc := NewCartService(testRepos(), testLogger)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "a1", ShopCode: "shop1", Quantity: 2})
	require.NoError(t, err)
	line, err := svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "a1", ShopCode: "shop1"})
	require.NoError(t, err)
	assert.Equal(t, 3, line.Quantity)
	_, err = svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "h1", ShopCode: "shop1", Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 4, cart.ItemsCount)
	assert.Equal(t, "3450", cart.Total.String())

	updated, err := svc.UpdateItem(ctx, "u1", line.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Quantity)

	require.NoError(t, svc.RemoveItem(ctx, "u1", line.ID))
	assert.True(t, errors.IsNotFound(svc.RemoveItem(ctx, "u1", line.ID)))

	require.NoError(t, svc.Clear(ctx, "u1"))
	cart, err = svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
	assert.True(t, cart.Total.IsZero())
}

func TestCartRejectsUnknownProductAndBadQuantity(t *testing.T) {
	svc := NewCartService(testRepos(), testLogger)
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "a1", ShopCode: "shop2", Quantity: 1})
	assert.True(t, errors.IsNotFound(err))

	_, err = svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "a1", ShopCode: "shop1", Quantity: -1})
	var verr *errors.ErrValidation
	assert.ErrorAs(t, err, &verr)

	_, err = svc.UpdateItem(ctx, "u1", uuid.New(), 0)
	assert.ErrorAs(t, err, &verr)
}

func TestCartAddNeverPushesLineOverCap(t *testing.T) {
	svc := NewCartService(testRepos(), testLogger)
	ctx := context.Background()

	line, err := svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "h1", ShopCode: "shop1", Quantity: 999})
	require.NoError(t, err)
	assert.Equal(t, 999, line.Quantity)

	for i := 0; i < 2; i++ {
		_, err = svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "h1", ShopCode: "shop1", Quantity: 999})
		var verr *errors.ErrValidation
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "quantity")
	}
	_, err = svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "h1", ShopCode: "shop1"})
	assert.Error(t, err)

	cart, err := svc.GetCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 999, cart.ItemsCount)
}

func TestCartIsScopedToUser(t *testing.T) {
	svc := NewCartService(testRepos(), testLogger)
	ctx := context.Background()

	line, err := svc.AddItem(ctx, "u1", AddCartItemInput{ProductID: "a1", ShopCode: "shop1", Quantity: 1})
	require.NoError(t, err)

	_, err = svc.UpdateItem(ctx, "u2", line.ID, 5)
	assert.True(t, errors.IsNotFound(err))

	cart, err := svc.GetCart(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)
}

func TestFavorites(t *testing.T) {
	svc := NewFavoriteService(testRepos(), testLogger)
	ctx := context.Background()

	first, err := svc.Add(ctx, "u1", "a1")
	require.NoError(t, err)
	again, err := svc.Add(ctx, "u1", "a1")
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	_, err = svc.Add(ctx, "u1", "nope")
	assert.True(t, errors.IsNotFound(err))

	list, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Product)
	assert.Equal(t, "POD Система OXVA", list[0].Product.Name)

	require.NoError(t, svc.Remove(ctx, "u1", "a1"))
	assert.True(t, errors.IsNotFound(svc.Remove(ctx, "u1", "a1")))
}
