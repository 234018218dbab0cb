// Package client is a thin HTTP client for the store API. It sends JSON bodies
// with an optional bearer token and does not retry.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"carx-store/models"
)

// APIError is returned for any non-2xx response
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

// Client talks to a running server
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithToken sets the bearer token up front
func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken sets the bearer token sent with every request
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token
func (c *Client) Token() string {
	return c.token
}

// Do sends body as JSON and decodes the response into out when out is non-nil
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var payload struct {
		Error string `json:"error"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}

// AuthResponse is returned by login and registration
type AuthResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

// Login authenticates and stores the returned token on the client
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var out AuthResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.Do(ctx, http.MethodPost, "/login", body, &out); err != nil {
		return nil, err
	}
	c.SetToken(out.Token)
	return &out, nil
}

// ProductQuery filters the catalog listing
type ProductQuery struct {
	Search   string
	Category string
	Premium  bool
	Limit    int
}

func (q ProductQuery) encode() string {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Category != "" {
		v.Set("category", q.Category)
	}
	if q.Premium {
		v.Set("premium", "true")
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if len(v) == 0 {
		return ""
	}
	return "?" + v.Encode()
}

// Products lists the catalog
func (c *Client) Products(ctx context.Context, q ProductQuery) ([]models.Product, error) {
	var out []models.Product
	err := c.Do(ctx, http.MethodGet, "/products"+q.encode(), nil, &out)
	return out, err
}

// CreateProduct adds a product (admin)
func (c *Client) CreateProduct(ctx context.Context, p models.Product) (*models.Product, error) {
	var out models.Product
	if err := c.Do(ctx, http.MethodPost, "/products", p, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Users lists every user (admin)
func (c *Client) Users(ctx context.Context) ([]models.User, error) {
	var out []models.User
	err := c.Do(ctx, http.MethodGet, "/admin/users", nil, &out)
	return out, err
}

// UserUpdate is the admin patch body; nil fields are left out
type UserUpdate struct {
	Name    *string `json:"name,omitempty"`
	Role    *string `json:"role,omitempty"`
	Blocked *bool   `json:"blocked,omitempty"`
}

// PatchUser updates a user's name, role or blocked flag (admin)
func (c *Client) PatchUser(ctx context.Context, id string, update UserUpdate) (*models.User, error) {
	var out models.User
	if err := c.Do(ctx, http.MethodPatch, "/admin/users/"+url.PathEscape(id), update, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Dashboard fetches the admin analytics
func (c *Client) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.Do(ctx, http.MethodGet, "/admin/dashboard", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cart is the cart payload
type Cart struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// AddToCart adds quantity of productID to the cart
func (c *Client) AddToCart(ctx context.Context, productID string, quantity int) (*Cart, error) {
	var out Cart
	body := map[string]any{"productId": productID, "quantity": quantity}
	if err := c.Do(ctx, http.MethodPost, "/cart", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cart returns the current user's cart
func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var out Cart
	if err := c.Do(ctx, http.MethodGet, "/cart", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
