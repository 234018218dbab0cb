package services

import (
	"testing"

	"carx-store/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	seatCover = models.Product{ID: "1", Name: "Car Seat Cover", Price: 79.99, Category: "Interior"}
	ledStrip  = models.Product{ID: "2", Name: "LED Strip", Price: 15.5, Category: "Lighting"}
)

func TestAddToCartIncrementsExistingLine(t *testing.T) {
	cart := AddToCart(nil, seatCover, AddOptions{})
	cart = AddToCart(cart, ledStrip, AddOptions{Quantity: 2, Color: "red"})
	cart = AddToCart(cart, seatCover, AddOptions{})

	require.Len(t, cart, 2)
	assert.Equal(t, 2, cart[0].Quantity)
	assert.Equal(t, 2, cart[1].Quantity)
	assert.Equal(t, "red", cart[1].Color)
}

func TestAddToCartDoesNotMutateInput(t *testing.T) {
	cart := []models.CartItem{{Product: seatCover, Quantity: 1}}
	updated := AddToCart(cart, seatCover, AddOptions{Quantity: 3})

	assert.Equal(t, 1, cart[0].Quantity)
	assert.Equal(t, 4, updated[0].Quantity)
}

func TestDecrementQuantityStopsAtOne(t *testing.T) {
	cart := []models.CartItem{{Product: seatCover, Quantity: 2}}
	cart = DecrementQuantity(cart, "1")
	assert.Equal(t, 1, cart[0].Quantity)
	cart = DecrementQuantity(cart, "1")
	assert.Equal(t, 1, cart[0].Quantity)
}

func TestSetQuantity(t *testing.T) {
	cart := []models.CartItem{{Product: seatCover, Quantity: 1}, {Product: ledStrip, Quantity: 1}}

	cart = SetQuantity(cart, "2", 5)
	assert.Equal(t, 5, cart[1].Quantity)

	cart = SetQuantity(cart, "1", 0)
	require.Len(t, cart, 1)
	assert.Equal(t, "2", cart[0].ID)
}

func TestRemoveFromCart(t *testing.T) {
	cart := []models.CartItem{{Product: seatCover, Quantity: 1}}
	assert.Len(t, RemoveFromCart(cart, "missing"), 1)

	emptied := RemoveFromCart(cart, "1")
	assert.Empty(t, emptied)
	assert.NotNil(t, emptied)
}

func TestTotalAvoidsFloatDrift(t *testing.T) {
	cart := []models.CartItem{
		{Product: models.Product{ID: "a", Price: 0.1}, Quantity: 3},
		{Product: models.Product{ID: "b", Price: 0.2}, Quantity: 1},
	}
	assert.Equal(t, 0.5, Total(cart))
	assert.Equal(t, 4, ItemCount(cart))
	assert.Equal(t, int64(7999), MinorUnits(79.99))
}

func TestWishlistDeduplicates(t *testing.T) {
	list, added := AddToWishlist(nil, seatCover)
	assert.True(t, added)
	list, added = AddToWishlist(list, seatCover)
	assert.False(t, added)
	assert.Len(t, list, 1)

	list = RemoveFromWishlist(list, "1")
	assert.Empty(t, list)
}
