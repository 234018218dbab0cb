package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"carx-store/controllers"
	"carx-store/models"
	"carx-store/services"
	"carx-store/store"
	"carx-store/utils"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	mu       sync.Mutex
	subjects []string
}

func (m *recordingMailer) SendEmail(toEmail, subject, htmlContent string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subjects = append(m.subjects, toEmail+": "+subject)
	return nil
}

func (m *recordingMailer) sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.subjects...)
}

type testServer struct {
	t      *testing.T
	store  *store.JSONStore
	router *mux.Router
	mailer *recordingMailer
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	utils.JwtKey = []byte("routes-test-secret")
	s, err := store.NewJSONStore("")
	require.NoError(t, err)

	mailer := &recordingMailer{}
	emails := utils.NewEmailService(mailer, "CarX")
	router := mux.NewRouter()
	RegisterRoutes(router, Controllers{
		User:     controllers.NewUserController(s, emails),
		Product:  controllers.NewProductController(s),
		Cart:     controllers.NewCartController(s),
		Wishlist: controllers.NewWishlistController(s),
		Order: controllers.NewOrderController(s, emails, services.PaymentConfig{
			KeyID: "rzp_test_key", Currency: "INR", ShopName: "CarX",
		}),
		Admin: controllers.NewAdminController(s, emails),
	})
	return &testServer{t: t, store: s, router: router, mailer: mailer}
}

func (ts *testServer) do(method, path, token string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	return decode[map[string]string](t, rec)["error"]
}

type authBody struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func (ts *testServer) register(name, email string) authBody {
	ts.t.Helper()
	rec := ts.do("POST", "/register", "", map[string]string{
		"name": name, "email": email, "password": "secret1", "confirmPassword": "secret1",
	})
	require.Equal(ts.t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[authBody](ts.t, rec)
}

func (ts *testServer) admin() authBody {
	ts.t.Helper()
	hash, err := utils.HashPassword("admin-pass")
	require.NoError(ts.t, err)
	require.NoError(ts.t, store.EnsureAdmin(context.Background(), ts.store, "Admin", "admin@carx.example", hash))
	rec := ts.do("POST", "/login", "", map[string]string{"email": "admin@carx.example", "password": "admin-pass"})
	require.Equal(ts.t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[authBody](ts.t, rec)
}

func (ts *testServer) product(name string, price float64, category string, premium bool) models.Product {
	ts.t.Helper()
	p := models.Product{Name: name, Price: price, Category: category, IsPremium: premium}
	require.NoError(ts.t, ts.store.CreateProduct(context.Background(), &p))
	return p
}

var shipping = models.ShippingDetails{
	FullName:   "Asha Menon",
	Address:    "12 MG Road",
	City:       "Kochi",
	PostalCode: "682001",
	Phone:      "9876543210",
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)
	reg := ts.register("Asha", "Asha@Example.com")
	assert.NotEmpty(t, reg.Token)
	assert.Equal(t, "asha@example.com", reg.User.Email)
	assert.Equal(t, models.RoleUser, reg.User.Role)
	assert.Empty(t, reg.User.Password)

	rec := ts.do("POST", "/register", "", map[string]string{
		"name": "Asha", "email": "ASHA@example.com", "password": "x", "confirmPassword": "x",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = ts.do("POST", "/register", "", map[string]string{
		"name": "Ben", "email": "ben@example.com", "password": "one", "confirmPassword": "two",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Passwords do not match", errorMessage(t, rec))

	rec = ts.do("POST", "/login", "", map[string]string{"email": "asha@example.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid email or password", errorMessage(t, rec))

	rec = ts.do("POST", "/login", "", map[string]string{"email": "nobody@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do("POST", "/login", "", map[string]string{"email": "asha@example.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do("GET", "/profile", decode[authBody](t, rec).Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	profile := decode[map[string]any](t, rec)
	assert.Equal(t, "Asha", profile["name"])
	assert.Equal(t, float64(0), profile["cartCount"])
	assert.NotContains(t, profile, "password")

	assert.Eventually(t, func() bool {
		return assert.ObjectsAreEqual([]string{"asha@example.com: Welcome to CarX"}, ts.mailer.sent())
	}, time.Second, 10*time.Millisecond)
}

func TestProducts(t *testing.T) {
	ts := newTestServer(t)
	ts.product("LED Strip", 15.5, "Lighting", false)
	ts.product("Leather Seat Cover", 79.99, "Interior", true)
	ts.product("Ambient Light Kit", 45, "Lighting", true)
	ts.product("Carbon Spoiler", 300, "Exterior", true)

	rec := ts.do("GET", "/products", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 4)

	rec = ts.do("GET", "/products?search=light", "", nil)
	assert.Len(t, decode[[]models.Product](t, rec), 1)

	rec = ts.do("GET", "/products?category=lighting", "", nil)
	assert.Len(t, decode[[]models.Product](t, rec), 2)

	rec = ts.do("GET", "/products?premium=true&limit=2", "", nil)
	premium := decode[[]models.Product](t, rec)
	require.Len(t, premium, 2)
	assert.True(t, premium[0].IsPremium)

	rec = ts.do("GET", "/products?limit=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do("GET", "/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductAdmin(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register("Asha", "asha@example.com")
	admin := ts.admin()
	body := map[string]any{"name": "Roof Box", "price": 199.5, "category": "Cargo", "image": "https://img/roof.png"}

	assert.Equal(t, http.StatusUnauthorized, ts.do("POST", "/products", "", body).Code)
	assert.Equal(t, http.StatusForbidden, ts.do("POST", "/products", user.Token, body).Code)

	rec := ts.do("POST", "/products", admin.Token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[models.Product](t, rec)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, models.CategoryOther, created.Category)

	rec = ts.do("POST", "/products", admin.Token, map[string]any{"name": "Free", "price": 0, "category": "Interior"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do("PUT", "/products/"+created.ID, admin.Token, map[string]any{"name": "Roof Box XL", "price": 249, "category": "Exterior"})
	require.Equal(t, http.StatusOK, rec.Code)
	updated := decode[models.Product](t, ts.do("GET", "/products/"+created.ID, "", nil))
	assert.Equal(t, "Roof Box XL", updated.Name)
	assert.Equal(t, "Exterior", updated.Category)

	assert.Equal(t, http.StatusNotFound, ts.do("PUT", "/products/nope", admin.Token, body).Code)
	assert.Equal(t, http.StatusOK, ts.do("DELETE", "/products/"+created.ID, admin.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do("DELETE", "/products/"+created.ID, admin.Token, nil).Code)
}

type cartBody struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

func TestCartFlow(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("Asha", "asha@example.com").Token
	cover := ts.product("Seat Cover", 79.99, "Interior", false)
	strip := ts.product("LED Strip", 15.5, "Lighting", false)

	ts.do("POST", "/cart", token, map[string]any{"productId": cover.ID})
	ts.do("POST", "/cart", token, map[string]any{"productId": strip.ID, "quantity": 2, "color": "blue"})
	rec := ts.do("POST", "/cart", token, map[string]any{"productId": cover.ID})
	require.Equal(t, http.StatusOK, rec.Code)
	cart := decode[cartBody](t, rec)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, 2, cart.Items[0].Quantity)
	assert.Equal(t, "blue", cart.Items[1].Color)
	assert.Equal(t, 190.98, cart.Total)
	assert.Equal(t, 4, cart.Count)

	assert.Equal(t, http.StatusNotFound, ts.do("POST", "/cart", token, map[string]any{"productId": "nope"}).Code)

	rec = ts.do("PATCH", "/cart/"+strip.ID, token, map[string]any{"quantity": 5})
	assert.Equal(t, 5, decode[cartBody](t, rec).Items[1].Quantity)

	ts.do("POST", "/cart/"+cover.ID+"/decrement", token, nil)
	rec = ts.do("POST", "/cart/"+cover.ID+"/decrement", token, nil)
	assert.Equal(t, 1, decode[cartBody](t, rec).Items[0].Quantity)

	rec = ts.do("DELETE", "/cart/"+strip.ID, token, nil)
	assert.Len(t, decode[cartBody](t, rec).Items, 1)
	rec = ts.do("DELETE", "/cart/"+strip.ID, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do("DELETE", "/cart", token, nil)
	assert.Empty(t, decode[cartBody](t, rec).Items)

	rec = ts.do("GET", "/cart", token, nil)
	assert.Equal(t, 0, decode[cartBody](t, rec).Count)
	assert.Equal(t, http.StatusUnauthorized, ts.do("GET", "/cart", "", nil).Code)
}

func TestWishlist(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("Asha", "asha@example.com").Token
	cover := ts.product("Seat Cover", 79.99, "Interior", false)

	rec := ts.do("POST", "/wishlist", token, map[string]any{"productId": cover.ID})
	assert.Equal(t, http.StatusCreated, rec.Code)
	rec = ts.do("POST", "/wishlist", token, map[string]any{"productId": cover.ID})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 1)

	rec = ts.do("DELETE", "/wishlist/"+cover.ID, token, nil)
	assert.Empty(t, decode[[]models.Product](t, rec))
	assert.Empty(t, decode[[]models.Product](t, ts.do("GET", "/wishlist", token, nil)))
}

func TestCheckoutAndOrders(t *testing.T) {
	ts := newTestServer(t)
	token := ts.register("Asha", "asha@example.com").Token
	cover := ts.product("Seat Cover", 79.99, "Interior", false)
	strip := ts.product("LED Strip", 15.5, "Lighting", false)

	rec := ts.do("POST", "/checkout", token, shipping)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Your cart is empty!", errorMessage(t, rec))

	ts.do("POST", "/cart", token, map[string]any{"productId": cover.ID, "quantity": 2})

	rec = ts.do("POST", "/checkout", token, models.ShippingDetails{FullName: "Asha"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, errorMessage(t, rec), "postalCode")

	rec = ts.do("POST", "/checkout", token, shipping)
	require.Equal(t, http.StatusOK, rec.Code)
	summary := decode[models.CheckoutSummary](t, rec)
	assert.Equal(t, 159.98, summary.TotalAmount)
	assert.Equal(t, int64(15998), summary.Payment.Amount)
	assert.Equal(t, "rzp_test_key", summary.Payment.Key)

	rec = ts.do("POST", "/orders", token, map[string]any{"shipping": shipping, "paymentId": "pay_001"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	fromCart := decode[models.Order](t, rec)
	assert.Equal(t, models.OrderConfirmed, fromCart.Status)
	assert.Equal(t, 159.98, fromCart.TotalAmount)
	assert.Empty(t, decode[cartBody](t, ts.do("GET", "/cart", token, nil)).Items)

	ts.do("POST", "/cart", token, map[string]any{"productId": cover.ID})
	rec = ts.do("POST", "/orders", token, map[string]any{"shipping": shipping, "productId": strip.ID, "quantity": 3})
	require.Equal(t, http.StatusCreated, rec.Code)
	buyNow := decode[models.Order](t, rec)
	assert.Equal(t, models.OrderPending, buyNow.Status)
	assert.Equal(t, 46.5, buyNow.TotalAmount)
	assert.Len(t, decode[cartBody](t, ts.do("GET", "/cart", token, nil)).Items, 1)

	orders := decode[[]models.Order](t, ts.do("GET", "/orders", token, nil))
	require.Len(t, orders, 2)
	assert.False(t, orders[0].Date.Before(orders[1].Date))

	rec = ts.do("GET", "/orders/"+fromCart.ID, token, nil)
	assert.Equal(t, fromCart.ID, decode[models.Order](t, rec).ID)
	assert.Equal(t, http.StatusNotFound, ts.do("GET", "/orders/nope", token, nil).Code)

	assert.Eventually(t, func() bool {
		count := 0
		for _, s := range ts.mailer.sent() {
			if s == "asha@example.com: Order Confirmation" {
				count++
			}
		}
		return count == 2
	}, time.Second, 10*time.Millisecond)
}

func TestBlockedUserIsLockedOut(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register("Asha", "asha@example.com")
	admin := ts.admin()

	rec := ts.do("PATCH", "/admin/users/"+user.User.ID, admin.Token, map[string]any{"blocked": true})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decode[models.User](t, rec).Blocked)

	assert.Equal(t, http.StatusForbidden, ts.do("GET", "/cart", user.Token, nil).Code)
	assert.Equal(t, http.StatusForbidden, ts.do("GET", "/profile", user.Token, nil).Code)
	rec = ts.do("POST", "/login", "", map[string]string{"email": "asha@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdminUsers(t *testing.T) {
	ts := newTestServer(t)
	user := ts.register("Asha", "asha@example.com")
	admin := ts.admin()

	assert.Equal(t, http.StatusForbidden, ts.do("GET", "/admin/users", user.Token, nil).Code)

	rec := ts.do("GET", "/admin/users", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	users := decode[[]models.User](t, rec)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.Password)
	}

	rec = ts.do("PATCH", "/admin/users/"+user.User.ID, admin.Token, map[string]any{"role": "superuser"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do("PATCH", "/admin/users/"+admin.User.ID, admin.Token, map[string]any{"role": "user"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec = ts.do("DELETE", "/admin/users/"+admin.User.ID, admin.Token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do("PATCH", "/admin/users/"+user.User.ID, admin.Token, map[string]any{"role": "admin", "name": "Asha M"})
	require.Equal(t, http.StatusOK, rec.Code)
	promoted := decode[models.User](t, rec)
	assert.Equal(t, models.RoleAdmin, promoted.Role)
	assert.Equal(t, "Asha M", promoted.Name)

	rec = ts.do("GET", "/admin/users/"+user.User.ID, admin.Token, nil)
	assert.Equal(t, "Asha M", decode[models.User](t, rec).Name)

	assert.Equal(t, http.StatusOK, ts.do("DELETE", "/admin/users/"+user.User.ID, admin.Token, nil).Code)
	assert.Equal(t, http.StatusNotFound, ts.do("GET", "/admin/users/"+user.User.ID, admin.Token, nil).Code)
}

func TestAdminDemotedTokenLosesAccess(t *testing.T) {
	ts := newTestServer(t)
	admin := ts.admin()
	other := ts.register("Ben", "ben@example.com")
	ts.do("PATCH", "/admin/users/"+other.User.ID, admin.Token, map[string]any{"role": "admin"})

	rec := ts.do("POST", "/login", "", map[string]string{"email": "ben@example.com", "password": "secret1"})
	benToken := decode[authBody](t, rec).Token
	require.Equal(t, http.StatusOK, ts.do("GET", "/admin/dashboard", benToken, nil).Code)

	ts.do("PATCH", "/admin/users/"+other.User.ID, admin.Token, map[string]any{"role": "user"})
	assert.Equal(t, http.StatusForbidden, ts.do("GET", "/admin/dashboard", benToken, nil).Code)
}

func TestAdminOrdersAndDashboard(t *testing.T) {
	ts := newTestServer(t)
	asha := ts.register("Asha", "asha@example.com")
	ben := ts.register("Ben", "ben@example.com")
	admin := ts.admin()
	cover := ts.product("Seat Cover", 80, "Interior", false)
	ts.product("Roof Rack", 120, "Roof", false)

	ts.do("POST", "/orders", asha.Token, map[string]any{"shipping": shipping, "productId": cover.ID, "paymentId": "pay_1"})
	rec := ts.do("POST", "/orders", ben.Token, map[string]any{"shipping": shipping, "productId": cover.ID, "quantity": 2})
	benOrder := decode[models.Order](t, rec)
	ts.do("POST", "/cart", ben.Token, map[string]any{"productId": cover.ID, "quantity": 3})

	rec = ts.do("GET", "/admin/orders", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	all := decode[[]models.CustomerOrder](t, rec)
	require.Len(t, all, 2)
	assert.Equal(t, "Ben", all[0].CustomerName)

	rec = ts.do("GET", "/admin/orders?status=Pending&search=BEN", admin.Token, nil)
	assert.Len(t, decode[[]models.CustomerOrder](t, rec), 1)

	path := "/admin/orders/" + ben.User.ID + "/" + benOrder.ID
	assert.Equal(t, http.StatusBadRequest, ts.do("PATCH", path, admin.Token, map[string]string{"status": "Lost"}).Code)
	assert.Equal(t, http.StatusNotFound, ts.do("PATCH", "/admin/orders/"+ben.User.ID+"/nope", admin.Token, map[string]string{"status": "Shipped"}).Code)

	rec = ts.do("PATCH", path, admin.Token, map[string]string{"status": models.OrderCancelled})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.OrderCancelled, decode[models.Order](t, rec).Status)

	rec = ts.do("GET", "/admin/orders/stats", admin.Token, nil)
	stats := decode[models.OrderStats](t, rec)
	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.ByStatus[models.OrderCancelled])
	assert.Equal(t, 80.0, stats.TotalRevenue)

	rec = ts.do("GET", "/admin/dashboard", admin.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dash := decode[models.Dashboard](t, rec)
	assert.Equal(t, 3, dash.TotalUsers)
	assert.Equal(t, 2, dash.TotalProducts)
	assert.Equal(t, 2, dash.TotalOrders)
	assert.Equal(t, 240.0, dash.TotalRevenue)
	assert.Contains(t, dash.ProductsByCategory, models.CategoryCount{Category: models.CategoryOther, Count: 1})
	require.Len(t, dash.TopProductsInCarts, 1)
	assert.Equal(t, 3, dash.TopProductsInCarts[0].Quantity)
	assert.Equal(t, 240.0, dash.RevenueByProduct[0].Revenue)

	assert.Eventually(t, func() bool {
		for _, s := range ts.mailer.sent() {
			if s == "ben@example.com: Your order is Cancelled" {
				return true
			}
		}
		return false
	}, time.Second, 10*time.Millisecond)
}

type routeCase struct {
	method, path string
	body         any
}

func userRoutes(productID string) []routeCase {
	return []routeCase{
		{"GET", "/profile", nil},
		{"GET", "/cart", nil},
		{"POST", "/cart", map[string]any{"productId": productID}},
		{"DELETE", "/cart", nil},
		{"PATCH", "/cart/" + productID, map[string]any{"quantity": 2}},
		{"POST", "/cart/" + productID + "/decrement", nil},
		{"DELETE", "/cart/" + productID, nil},
		{"GET", "/wishlist", nil},
		{"POST", "/wishlist", map[string]any{"productId": productID}},
		{"DELETE", "/wishlist/" + productID, nil},
		{"POST", "/checkout", shipping},
		{"POST", "/orders", map[string]any{"shipping": shipping, "productId": productID}},
		{"GET", "/orders", nil},
		{"GET", "/orders/some-order", nil},
	}
}

func adminRoutes(productID, userID string) []routeCase {
	product := map[string]any{"name": "Mud Flaps", "price": 20, "category": "Exterior"}
	return []routeCase{
		{"POST", "/products", product},
		{"PUT", "/products/" + productID, product},
		{"DELETE", "/products/" + productID, nil},
		{"GET", "/admin/users", nil},
		{"GET", "/admin/users/" + userID, nil},
		{"PATCH", "/admin/users/" + userID, map[string]any{"name": "Renamed"}},
		{"DELETE", "/admin/users/" + userID, nil},
		{"GET", "/admin/orders", nil},
		{"GET", "/admin/orders/stats", nil},
		{"PATCH", "/admin/orders/" + userID + "/some-order", map[string]string{"status": "Shipped"}},
		{"GET", "/admin/dashboard", nil},
	}
}

// secondAdmin registers Ben, promotes him in the store and logs him in
func (ts *testServer) secondAdmin() authBody {
	ts.t.Helper()
	ben := ts.register("Ben", "ben@example.com")
	role := models.RoleAdmin
	_, err := ts.store.PatchUser(context.Background(), ben.User.ID, models.UserPatch{Role: &role})
	require.NoError(ts.t, err)
	rec := ts.do("POST", "/login", "", map[string]string{"email": "ben@example.com", "password": "secret1"})
	require.Equal(ts.t, http.StatusOK, rec.Code)
	return decode[authBody](ts.t, rec)
}

func TestBlockedAccountIsLockedOutEverywhere(t *testing.T) {
	ts := newTestServer(t)
	ts.admin()
	asha := ts.register("Asha", "asha@example.com")
	ben := ts.secondAdmin()
	cover := ts.product("Seat Cover", 79.99, "Interior", false)

	blocked := true
	for _, id := range []string{asha.User.ID, ben.User.ID} {
		_, err := ts.store.PatchUser(context.Background(), id, models.UserPatch{Blocked: &blocked})
		require.NoError(t, err)
	}

	for _, rc := range userRoutes(cover.ID) {
		rec := ts.do(rc.method, rc.path, asha.Token, rc.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "blocked user %s %s", rc.method, rc.path)
	}
	for _, rc := range append(userRoutes(cover.ID), adminRoutes(cover.ID, asha.User.ID)...) {
		rec := ts.do(rc.method, rc.path, ben.Token, rc.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "blocked admin %s %s", rc.method, rc.path)
	}

	products, err := ts.store.ListProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Seat Cover", products[0].Name)
}

func TestDemotedAdminLosesEveryAdminRoute(t *testing.T) {
	ts := newTestServer(t)
	ts.admin()
	asha := ts.register("Asha", "asha@example.com")
	ben := ts.secondAdmin()
	cover := ts.product("Seat Cover", 79.99, "Interior", false)

	require.Equal(t, http.StatusCreated, ts.do("POST", "/products", ben.Token,
		map[string]any{"name": "Mud Flaps", "price": 20, "category": "Exterior"}).Code)

	role := models.RoleUser
	_, err := ts.store.PatchUser(context.Background(), ben.User.ID, models.UserPatch{Role: &role})
	require.NoError(t, err)

	for _, rc := range adminRoutes(cover.ID, asha.User.ID) {
		rec := ts.do(rc.method, rc.path, ben.Token, rc.body)
		assert.Equal(t, http.StatusForbidden, rec.Code, "demoted admin %s %s", rc.method, rc.path)
	}
	assert.Equal(t, http.StatusOK, ts.do("GET", "/cart", ben.Token, nil).Code)
}
