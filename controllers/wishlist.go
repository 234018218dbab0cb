package controllers

import (
	"net/http"

	"carx-store/models"
	"carx-store/services"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/mux"
)

// WishlistController handles wishlist requests
type WishlistController struct {
	Store store.Store
}

// NewWishlistController creates a new WishlistController
func NewWishlistController(s store.Store) *WishlistController {
	return &WishlistController{Store: s}
}

func nonNilWishlist(list []models.Product) []models.Product {
	if list == nil {
		return []models.Product{}
	}
	return list
}

// GetWishlist returns the saved products
func (wc *WishlistController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, wc.Store)
	if !ok {
		return
	}
	utils.JSONResponse(w, http.StatusOK, nonNilWishlist(user.Wishlist))
}

// AddToWishlist saves a product snapshot. Saving it twice is a no-op.
func (wc *WishlistController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID string `json:"productId"`
	}
	if err := decodeJSON(r, &input); err != nil || input.ProductID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, wc.Store)
	if !ok {
		return
	}
	product, err := wc.Store.GetProduct(ctx, input.ProductID)
	if err != nil {
		storeError(w, err, "Product not found")
		return
	}

	wishlist, added := services.AddToWishlist(user.Wishlist, *product)
	if !added {
		utils.JSONResponse(w, http.StatusOK, nonNilWishlist(user.Wishlist))
		return
	}
	updated, err := wc.Store.PatchUser(ctx, user.ID, models.UserPatch{Wishlist: &wishlist})
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	utils.JSONResponse(w, http.StatusCreated, nonNilWishlist(updated.Wishlist))
}

// RemoveFromWishlist drops a saved product
func (wc *WishlistController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, wc.Store)
	if !ok {
		return
	}
	wishlist := services.RemoveFromWishlist(user.Wishlist, mux.Vars(r)["productId"])
	updated, err := wc.Store.PatchUser(ctx, user.ID, models.UserPatch{Wishlist: &wishlist})
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, nonNilWishlist(updated.Wishlist))
}
