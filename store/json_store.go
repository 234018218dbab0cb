package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"carx-store/models"

	"github.com/google/uuid"
)

// jsonData is the on-disk layout of the JSON database
type jsonData struct {
	Users    []models.User    `json:"users"`
	Products []models.Product `json:"products"`
}

// JSONStore keeps every record in memory and rewrites the whole file after each
// mutation. An empty path keeps the data in memory only.
type JSONStore struct {
	mu       sync.RWMutex
	data     jsonData
	filePath string
}

// NewJSONStore loads path (creating it when missing) and returns the store
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{filePath: path}
	if err := s.load(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return s, nil
}

func (s *JSONStore) load() error {
	s.data = jsonData{Users: []models.User{}, Products: []models.Product{}}
	if s.filePath == "" {
		return nil
	}
	raw, err := os.ReadFile(s.filePath)
	if os.IsNotExist(err) {
		return s.save()
	}
	if err != nil {
		return err
	}
	if len(raw) == 0 {
		return nil
	}
	return json.Unmarshal(raw, &s.data)
}

func (s *JSONStore) save() error {
	if s.filePath == "" {
		return nil
	}
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(s.filePath, raw)
}

// writeFileAtomic writes to a temp file in the same directory and renames it
// over path, so readers never see a half-written database.
func writeFileAtomic(path string, raw []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

func (s *JSONStore) userIndex(id string) int {
	for i, u := range s.data.Users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *JSONStore) productIndex(id string) int {
	for i, p := range s.data.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ListUsers returns every user
func (s *JSONStore) ListUsers(ctx context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]models.User, len(s.data.Users))
	for i, u := range s.data.Users {
		users[i] = cloneUser(u)
	}
	return users, nil
}

// GetUser returns the user with the given id
func (s *JSONStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.userIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	u := cloneUser(s.data.Users[i])
	return &u, nil
}

// GetUserByEmail returns the user registered with email
func (s *JSONStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.data.Users {
		if u.Email == email {
			c := cloneUser(u)
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// CreateUser assigns an id and stores the user
func (s *JSONStore) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.data.Users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	s.data.Users = append(s.data.Users, cloneUser(*user))
	return s.save()
}

// PatchUser applies patch to the stored user
func (s *JSONStore) PatchUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	if patch.Email != nil {
		for _, u := range s.data.Users {
			if u.ID != id && u.Email == *patch.Email {
				return nil, ErrDuplicate
			}
		}
	}
	u := cloneUser(s.data.Users[i])
	patch.Apply(&u)
	s.data.Users[i] = u
	if err := s.save(); err != nil {
		return nil, err
	}
	out := cloneUser(u)
	return &out, nil
}

// DeleteUser removes the user
func (s *JSONStore) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.data.Users = append(s.data.Users[:i], s.data.Users[i+1:]...)
	return s.save()
}

// ListProducts returns the whole catalog
func (s *JSONStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	products := make([]models.Product, len(s.data.Products))
	copy(products, s.data.Products)
	return products, nil
}

// GetProduct returns the product with the given id
func (s *JSONStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.productIndex(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := s.data.Products[i]
	return &p, nil
}

// CreateProduct assigns an id when missing and stores the product
func (s *JSONStore) CreateProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if product.ID == "" {
		product.ID = uuid.NewString()
	} else if s.productIndex(product.ID) >= 0 {
		return ErrDuplicate
	}
	s.data.Products = append(s.data.Products, *product)
	return s.save()
}

// ReplaceProduct overwrites the stored product with the same id
func (s *JSONStore) ReplaceProduct(ctx context.Context, product *models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.productIndex(product.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.data.Products[i] = *product
	return s.save()
}

// DeleteProduct removes the product
func (s *JSONStore) DeleteProduct(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.productIndex(id)
	if i < 0 {
		return ErrNotFound
	}
	s.data.Products = append(s.data.Products[:i], s.data.Products[i+1:]...)
	return s.save()
}

// Close flushes the data file
func (s *JSONStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

// cloneUser copies u so callers never share slices with the store
func cloneUser(u models.User) models.User {
	u.Cart = append([]models.CartItem{}, u.Cart...)
	u.Wishlist = append([]models.Product{}, u.Wishlist...)
	orders := make([]models.Order, len(u.Orders))
	for i, o := range u.Orders {
		o.Items = append([]models.CartItem{}, o.Items...)
		orders[i] = o
	}
	u.Orders = orders
	return u
}
