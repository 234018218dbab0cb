package routes

import (
	"net/http"

	"carx-store/controllers"
	"carx-store/middleware"

	"github.com/gorilla/mux"
)

// Controllers groups the handlers the router serves
type Controllers struct {
	User     *controllers.UserController
	Product  *controllers.ProductController
	Cart     *controllers.CartController
	Wishlist *controllers.WishlistController
	Order    *controllers.OrderController
	Admin    *controllers.AdminController
}

func protected(h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(h)
}

// adminOnly guards a single route with the same chain as the /admin subrouter
func adminOnly(admin *controllers.AdminController, h http.HandlerFunc) http.Handler {
	return middleware.AuthMiddleware(middleware.AdminMiddleware(admin.RequireActive(h)))
}

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(router *mux.Router, c Controllers) {
	// Public routes
	router.HandleFunc("/register", c.User.Register).Methods("POST")
	router.HandleFunc("/login", c.User.Login).Methods("POST")
	router.Handle("/profile", protected(c.User.GetProfile)).Methods("GET")

	// Product routes
	router.HandleFunc("/products", c.Product.GetProducts).Methods("GET")
	router.HandleFunc("/products/{id}", c.Product.GetProductByID).Methods("GET")
	router.Handle("/products", adminOnly(c.Admin, c.Product.CreateProduct)).Methods("POST")
	router.Handle("/products/{id}", adminOnly(c.Admin, c.Product.UpdateProduct)).Methods("PUT")
	router.Handle("/products/{id}", adminOnly(c.Admin, c.Product.DeleteProduct)).Methods("DELETE")

	// Cart routes
	router.Handle("/cart", protected(c.Cart.GetCart)).Methods("GET")
	router.Handle("/cart", protected(c.Cart.AddToCart)).Methods("POST")
	router.Handle("/cart", protected(c.Cart.ClearCart)).Methods("DELETE")
	router.Handle("/cart/{productId}", protected(c.Cart.UpdateQuantity)).Methods("PATCH")
	router.Handle("/cart/{productId}/decrement", protected(c.Cart.DecrementQuantity)).Methods("POST")
	router.Handle("/cart/{productId}", protected(c.Cart.RemoveFromCart)).Methods("DELETE")

	// Wishlist routes
	router.Handle("/wishlist", protected(c.Wishlist.GetWishlist)).Methods("GET")
	router.Handle("/wishlist", protected(c.Wishlist.AddToWishlist)).Methods("POST")
	router.Handle("/wishlist/{productId}", protected(c.Wishlist.RemoveFromWishlist)).Methods("DELETE")

	// Checkout and order routes
	router.Handle("/checkout", protected(c.Order.Checkout)).Methods("POST")
	router.Handle("/orders", protected(c.Order.CreateOrder)).Methods("POST")
	router.Handle("/orders", protected(c.Order.GetOrders)).Methods("GET")
	router.Handle("/orders/{id}", protected(c.Order.GetOrder)).Methods("GET")

	// Admin routes
	admin := router.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AuthMiddleware)
	admin.Use(middleware.AdminMiddleware)
	admin.Use(c.Admin.RequireActive)
	admin.HandleFunc("/users", c.Admin.ListUsers).Methods("GET")
	admin.HandleFunc("/users/{id}", c.Admin.GetUser).Methods("GET")
	admin.HandleFunc("/users/{id}", c.Admin.PatchUser).Methods("PATCH")
	admin.HandleFunc("/users/{id}", c.Admin.DeleteUser).Methods("DELETE")
	admin.HandleFunc("/orders", c.Admin.ListOrders).Methods("GET")
	admin.HandleFunc("/orders/stats", c.Admin.OrderStats).Methods("GET")
	admin.HandleFunc("/orders/{userId}/{orderId}", c.Admin.UpdateOrderStatus).Methods("PATCH")
	admin.HandleFunc("/dashboard", c.Admin.Dashboard).Methods("GET")
}
