package services

import "carx-store/models"

// AddToWishlist appends product unless it is already wishlisted
func AddToWishlist(wishlist []models.Product, product models.Product) ([]models.Product, bool) {
	for _, p := range wishlist {
		if p.ID == product.ID {
			return append([]models.Product{}, wishlist...), false
		}
	}
	updated := make([]models.Product, 0, len(wishlist)+1)
	updated = append(updated, wishlist...)
	return append(updated, product), true
}

// RemoveFromWishlist drops productID from the wishlist
func RemoveFromWishlist(wishlist []models.Product, productID string) []models.Product {
	updated := make([]models.Product, 0, len(wishlist))
	for _, p := range wishlist {
		if p.ID != productID {
			updated = append(updated, p)
		}
	}
	return updated
}
