package controllers

import (
	"net/http"

	"carx-store/models"
	"carx-store/services"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/mux"
)

// CartController handles cart-related requests
type CartController struct {
	Store store.Store
}

// NewCartController creates a new CartController
func NewCartController(s store.Store) *CartController {
	return &CartController{Store: s}
}

type cartResponse struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func newCartResponse(cart []models.CartItem) cartResponse {
	if cart == nil {
		cart = []models.CartItem{}
	}
	return cartResponse{Items: cart, Total: services.Total(cart), Count: services.ItemCount(cart)}
}

// saveCart writes the whole cart back and responds with it
func (cc *CartController) saveCart(w http.ResponseWriter, r *http.Request, user *models.User, cart []models.CartItem) {
	ctx, cancel := requestContext(r)
	defer cancel()
	updated, err := cc.Store.PatchUser(ctx, user.ID, models.UserPatch{Cart: &cart})
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, newCartResponse(updated.Cart))
}

// GetCart retrieves the user's cart
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, cc.Store)
	if !ok {
		return
	}
	utils.JSONResponse(w, http.StatusOK, newCartResponse(user.Cart))
}

// AddToCart adds a product to the user's cart or increments its quantity
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	var input struct {
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
		Color     string `json:"color"`
		CarModel  string `json:"carModel"`
	}
	if err := decodeJSON(r, &input); err != nil || input.ProductID == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, cc.Store)
	if !ok {
		return
	}
	product, err := cc.Store.GetProduct(ctx, input.ProductID)
	if err != nil {
		storeError(w, err, "Product not found")
		return
	}

	cart := services.AddToCart(user.Cart, *product, services.AddOptions{
		Quantity: input.Quantity,
		Color:    input.Color,
		CarModel: input.CarModel,
	})
	cc.saveCart(w, r, user, cart)
}

// UpdateQuantity sets a line's quantity; zero or less removes it
func (cc *CartController) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Quantity *int `json:"quantity"`
	}
	if err := decodeJSON(r, &input); err != nil || input.Quantity == nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, cc.Store)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productId"]
	if _, found := services.FindCartItem(user.Cart, productID); !found {
		utils.ErrorResponse(w, http.StatusNotFound, "Item not in cart")
		return
	}
	cc.saveCart(w, r, user, services.SetQuantity(user.Cart, productID, *input.Quantity))
}

// DecrementQuantity lowers a line's quantity by one, never below one
func (cc *CartController) DecrementQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, cc.Store)
	if !ok {
		return
	}
	productID := mux.Vars(r)["productId"]
	if _, found := services.FindCartItem(user.Cart, productID); !found {
		utils.ErrorResponse(w, http.StatusNotFound, "Item not in cart")
		return
	}
	cc.saveCart(w, r, user, services.DecrementQuantity(user.Cart, productID))
}

// RemoveFromCart removes a product from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, cc.Store)
	if !ok {
		return
	}
	cc.saveCart(w, r, user, services.RemoveFromCart(user.Cart, mux.Vars(r)["productId"]))
}

// ClearCart empties the user's cart
func (cc *CartController) ClearCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, cc.Store)
	if !ok {
		return
	}
	cc.saveCart(w, r, user, []models.CartItem{})
}
