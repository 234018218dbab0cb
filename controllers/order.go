package controllers

import (
	"errors"
	"net/http"
	"time"

	"carx-store/models"
	"carx-store/services"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/mux"
)

// OrderController handles checkout and order-related requests
type OrderController struct {
	Store        store.Store
	EmailService *utils.EmailService
	Payment      services.PaymentConfig
}

// NewOrderController creates a new OrderController
func NewOrderController(s store.Store, emailService *utils.EmailService, payment services.PaymentConfig) *OrderController {
	return &OrderController{
		Store:        s,
		EmailService: emailService,
		Payment:      payment,
	}
}

// checkoutError maps the validation errors of services.Checkout and services.NewOrder
func checkoutError(w http.ResponseWriter, err error) {
	var missing *services.MissingFieldsError
	switch {
	case errors.Is(err, services.ErrEmptyCart):
		utils.ErrorResponse(w, http.StatusBadRequest, "Your cart is empty!")
	case errors.As(err, &missing):
		utils.ErrorResponse(w, http.StatusBadRequest, missing.Error())
	default:
		utils.ErrorResponse(w, http.StatusBadRequest, err.Error())
	}
}

// Checkout validates the shipping details and returns the payment parameters
func (oc *OrderController) Checkout(w http.ResponseWriter, r *http.Request) {
	var shipping models.ShippingDetails
	if err := decodeJSON(r, &shipping); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, oc.Store)
	if !ok {
		return
	}

	summary, err := services.Checkout(user, shipping, oc.Payment)
	if err != nil {
		checkoutError(w, err)
		return
	}
	utils.JSONResponse(w, http.StatusOK, summary)
}

// CreateOrder places an order from the user's cart, or from a single product
// when productId is given (buy now). Only cart orders clear the cart.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Shipping  models.ShippingDetails `json:"shipping"`
		PaymentID string                 `json:"paymentId"`
		ProductID string                 `json:"productId"`
		Quantity  int                    `json:"quantity"`
		Color     string                 `json:"color"`
		CarModel  string                 `json:"carModel"`
	}
	if err := decodeJSON(r, &input); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, oc.Store)
	if !ok {
		return
	}

	buyNow := input.ProductID != ""
	items := user.Cart
	if buyNow {
		product, err := oc.Store.GetProduct(ctx, input.ProductID)
		if err != nil {
			storeError(w, err, "Product not found")
			return
		}
		items = services.AddToCart(nil, *product, services.AddOptions{
			Quantity: input.Quantity,
			Color:    input.Color,
			CarModel: input.CarModel,
		})
	}

	order, err := services.NewOrder(items, input.Shipping, input.PaymentID, time.Now())
	if err != nil {
		checkoutError(w, err)
		return
	}

	orders := append(append([]models.Order{}, user.Orders...), order)
	patch := models.UserPatch{Orders: &orders}
	if !buyNow {
		emptyCart := []models.CartItem{}
		patch.Cart = &emptyCart
	}
	if _, err := oc.Store.PatchUser(ctx, user.ID, patch); err != nil {
		storeError(w, err, "User not found")
		return
	}

	email := user.Email
	sendAsync("order confirmation", func() error {
		return oc.EmailService.SendOrderConfirmationEmail(email, order)
	})

	utils.JSONResponse(w, http.StatusCreated, order)
}

// GetOrders lists the user's orders, newest first
func (oc *OrderController) GetOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, oc.Store)
	if !ok {
		return
	}
	utils.JSONResponse(w, http.StatusOK, services.NewestFirst(user.Orders))
}

// GetOrder returns one of the user's orders
func (oc *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, ok := currentUser(ctx, w, r, oc.Store)
	if !ok {
		return
	}
	order, found := services.FindOrder(user.Orders, mux.Vars(r)["id"])
	if !found {
		utils.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, order)
}
