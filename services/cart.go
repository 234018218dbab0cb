// Package services holds the storefront rules: cart and wishlist reducers,
// checkout and order placement, and the admin dashboard aggregation. Every
// function returns a new slice and leaves its input untouched, so the result
// can be written back to the store as a whole.
package services

import (
	"carx-store/models"
)

// AddOptions are the optional fitment details of a cart line
type AddOptions struct {
	Quantity int
	Color    string
	CarModel string
}

// AddToCart increments the line for product when present, otherwise appends it.
// A non-positive quantity counts as one.
func AddToCart(cart []models.CartItem, product models.Product, opts AddOptions) []models.CartItem {
	qty := opts.Quantity
	if qty < 1 {
		qty = 1
	}

	updated := make([]models.CartItem, 0, len(cart)+1)
	found := false
	for _, item := range cart {
		if item.ID == product.ID {
			item.Quantity += qty
			found = true
		}
		updated = append(updated, item)
	}
	if !found {
		updated = append(updated, models.CartItem{
			Product:  product,
			Quantity: qty,
			Color:    opts.Color,
			CarModel: opts.CarModel,
		})
	}
	return updated
}

// DecrementQuantity lowers the line's quantity by one but never below one
func DecrementQuantity(cart []models.CartItem, productID string) []models.CartItem {
	updated := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID == productID && item.Quantity > 1 {
			item.Quantity--
		}
		updated = append(updated, item)
	}
	return updated
}

// SetQuantity sets the line's quantity; zero or less removes the line
func SetQuantity(cart []models.CartItem, productID string, quantity int) []models.CartItem {
	if quantity <= 0 {
		return RemoveFromCart(cart, productID)
	}
	updated := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID == productID {
			item.Quantity = quantity
		}
		updated = append(updated, item)
	}
	return updated
}

// RemoveFromCart drops the line for productID. Missing ids are ignored.
func RemoveFromCart(cart []models.CartItem, productID string) []models.CartItem {
	updated := make([]models.CartItem, 0, len(cart))
	for _, item := range cart {
		if item.ID != productID {
			updated = append(updated, item)
		}
	}
	return updated
}

// FindCartItem returns the line for productID
func FindCartItem(cart []models.CartItem, productID string) (models.CartItem, bool) {
	for _, item := range cart {
		if item.ID == productID {
			return item, true
		}
	}
	return models.CartItem{}, false
}

// ItemCount is the total number of units in the cart
func ItemCount(cart []models.CartItem) int {
	n := 0
	for _, item := range cart {
		n += item.Quantity
	}
	return n
}
