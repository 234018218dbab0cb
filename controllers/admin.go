package controllers

import (
	"errors"
	"net/http"
	"strings"

	"carx-store/middleware"
	"carx-store/models"
	"carx-store/services"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/mux"
)

// AdminController serves the admin panel: users, orders and the dashboard
type AdminController struct {
	Store        store.Store
	EmailService *utils.EmailService
}

// NewAdminController creates a new AdminController
func NewAdminController(s store.Store, emailService *utils.EmailService) *AdminController {
	return &AdminController{Store: s, EmailService: emailService}
}

// RequireActive re-reads the admin behind the token so a blocked or demoted
// account loses access before its token expires.
func (ac *AdminController) RequireActive(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := requestContext(r)
		defer cancel()
		user, ok := currentUser(ctx, w, r, ac.Store)
		if !ok {
			return
		}
		if !user.IsAdmin() {
			utils.ErrorResponse(w, http.StatusForbidden, "Forbidden: Admins only")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListUsers returns every user without passwords
func (ac *AdminController) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	users, err := ac.Store.ListUsers(ctx)
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	public := make([]models.User, len(users))
	for i, u := range users {
		public[i] = u.Public()
	}
	utils.JSONResponse(w, http.StatusOK, public)
}

// GetUser returns a single user
func (ac *AdminController) GetUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := ac.Store.GetUser(ctx, mux.Vars(r)["id"])
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, user.Public())
}

// PatchUser changes a user's name, role or blocked flag. Admins cannot demote
// or block themselves.
func (ac *AdminController) PatchUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name    *string `json:"name"`
		Role    *string `json:"role"`
		Blocked *bool   `json:"blocked"`
	}
	if err := decodeJSON(r, &input); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	id := mux.Vars(r)["id"]
	claims, _ := middleware.ClaimsFromContext(r.Context())
	self := claims != nil && claims.UserID == id

	patch := models.UserPatch{Blocked: input.Blocked}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			utils.ErrorResponse(w, http.StatusBadRequest, "Name cannot be empty")
			return
		}
		patch.Name = &name
	}
	if input.Role != nil {
		if *input.Role != models.RoleUser && *input.Role != models.RoleAdmin {
			utils.ErrorResponse(w, http.StatusBadRequest, "Role must be user or admin")
			return
		}
		if self && *input.Role != models.RoleAdmin {
			utils.ErrorResponse(w, http.StatusBadRequest, "You cannot remove your own admin role")
			return
		}
		patch.Role = input.Role
	}
	if self && input.Blocked != nil && *input.Blocked {
		utils.ErrorResponse(w, http.StatusBadRequest, "You cannot block yourself")
		return
	}
	if patch.Name == nil && patch.Role == nil && patch.Blocked == nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := ac.Store.PatchUser(ctx, id, patch)
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, user.Public())
}

// DeleteUser removes a user together with their cart, wishlist and orders
func (ac *AdminController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok && claims.UserID == id {
		utils.ErrorResponse(w, http.StatusBadRequest, "You cannot delete your own account")
		return
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := ac.Store.DeleteUser(ctx, id); err != nil {
		storeError(w, err, "User not found")
		return
	}
	utils.MessageResponse(w, http.StatusOK, "User deleted successfully")
}

// ListOrders returns every customer's orders, newest first. Query parameters:
// status and search.
func (ac *AdminController) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	users, err := ac.Store.ListUsers(ctx)
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	query := r.URL.Query()
	orders := services.FilterOrders(services.CustomerOrders(users), query.Get("status"), query.Get("search"))
	utils.JSONResponse(w, http.StatusOK, orders)
}

// OrderStats summarises all orders by status
func (ac *AdminController) OrderStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	users, err := ac.Store.ListUsers(ctx)
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	var orders []models.Order
	for _, u := range users {
		orders = append(orders, u.Orders...)
	}
	utils.JSONResponse(w, http.StatusOK, services.ComputeOrderStats(orders))
}

// UpdateOrderStatus moves a customer's order to a new status and mails them
func (ac *AdminController) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Status string `json:"status"`
	}
	if err := decodeJSON(r, &input); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return
	}

	vars := mux.Vars(r)
	ctx, cancel := requestContext(r)
	defer cancel()
	user, err := ac.Store.GetUser(ctx, vars["userId"])
	if err != nil {
		storeError(w, err, "User not found")
		return
	}

	orders, err := services.SetOrderStatus(user.Orders, vars["orderId"], input.Status)
	switch {
	case errors.Is(err, services.ErrInvalidStatus):
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid order status")
		return
	case errors.Is(err, services.ErrOrderNotFound):
		utils.ErrorResponse(w, http.StatusNotFound, "Order not found")
		return
	}

	if _, err := ac.Store.PatchUser(ctx, user.ID, models.UserPatch{Orders: &orders}); err != nil {
		storeError(w, err, "User not found")
		return
	}

	order, _ := services.FindOrder(orders, vars["orderId"])
	email := user.Email
	sendAsync("order status email", func() error {
		return ac.EmailService.SendOrderStatusEmail(email, order)
	})
	utils.JSONResponse(w, http.StatusOK, order)
}

// Dashboard returns the admin analytics
func (ac *AdminController) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	users, err := ac.Store.ListUsers(ctx)
	if err != nil {
		storeError(w, err, "User not found")
		return
	}
	products, err := ac.Store.ListProducts(ctx)
	if err != nil {
		storeError(w, err, "Product not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, services.BuildDashboard(users, products))
}
