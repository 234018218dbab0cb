package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"carx-store/models"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/mux"
)

// ProductController handles product-related requests
type ProductController struct {
	Store store.Store
}

// NewProductController creates a new ProductController
func NewProductController(s store.Store) *ProductController {
	return &ProductController{Store: s}
}

// GetProducts lists the catalog. Query parameters: search (name substring),
// category, premium=true and limit.
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	limit := 0
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			utils.ErrorResponse(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	ctx, cancel := requestContext(r)
	defer cancel()
	products, err := pc.Store.ListProducts(ctx)
	if err != nil {
		storeError(w, err, "Product not found")
		return
	}

	search := strings.ToLower(strings.TrimSpace(query.Get("search")))
	category := strings.TrimSpace(query.Get("category"))
	premiumOnly := query.Get("premium") == "true"

	filtered := []models.Product{}
	for _, p := range products {
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && !strings.EqualFold(category, "all") && !strings.EqualFold(category, p.Category) {
			continue
		}
		if premiumOnly && !p.IsPremium {
			continue
		}
		filtered = append(filtered, p)
		if limit > 0 && len(filtered) == limit {
			break
		}
	}
	utils.JSONResponse(w, http.StatusOK, filtered)
}

// GetProductByID retrieves a single product
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	product, err := pc.Store.GetProduct(ctx, mux.Vars(r)["id"])
	if err != nil {
		storeError(w, err, "Product not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, product)
}

// decodeProduct reads and validates a product body
func decodeProduct(w http.ResponseWriter, r *http.Request) (models.Product, bool) {
	var product models.Product
	if err := decodeJSON(r, &product); err != nil {
		utils.ErrorResponse(w, http.StatusBadRequest, "Invalid input")
		return product, false
	}
	product.Name = strings.TrimSpace(product.Name)
	product.Category = strings.TrimSpace(product.Category)
	if product.Name == "" || product.Category == "" {
		utils.ErrorResponse(w, http.StatusBadRequest, "Name, price and category are required")
		return product, false
	}
	if product.Price <= 0 {
		utils.ErrorResponse(w, http.StatusBadRequest, "Price must be greater than zero")
		return product, false
	}
	product.Category = models.NormalizeCategory(product.Category)
	return product, true
}

// CreateProduct adds a new product (admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = ""

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := pc.Store.CreateProduct(ctx, &product); err != nil {
		storeError(w, err, "Product not found")
		return
	}
	utils.JSONResponse(w, http.StatusCreated, product)
}

// UpdateProduct replaces an existing product (admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := decodeProduct(w, r)
	if !ok {
		return
	}
	product.ID = mux.Vars(r)["id"]

	ctx, cancel := requestContext(r)
	defer cancel()
	if err := pc.Store.ReplaceProduct(ctx, &product); err != nil {
		storeError(w, err, "Product not found")
		return
	}
	utils.JSONResponse(w, http.StatusOK, product)
}

// DeleteProduct removes a product (admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := requestContext(r)
	defer cancel()
	if err := pc.Store.DeleteProduct(ctx, mux.Vars(r)["id"]); err != nil {
		storeError(w, err, "Product not found")
		return
	}
	utils.MessageResponse(w, http.StatusOK, "Product deleted successfully")
}
