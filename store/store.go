// Package store persists users and products. Every backend stores a user's
// cart, wishlist and orders inline on the user record.
package store

import (
	"context"
	"errors"

	"carx-store/models"
)

var (
	// ErrNotFound is returned when a record does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique field (user email) is already taken
	ErrDuplicate = errors.New("already exists")
)

// Store is the persistence contract shared by the JSON, Mongo and Postgres backends
type Store interface {
	ListUsers(ctx context.Context) ([]models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// PatchUser applies patch and returns the updated user
	PatchUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error

	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	ReplaceProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	Close(ctx context.Context) error
}

var (
	_ Store = (*JSONStore)(nil)
	_ Store = (*MongoStore)(nil)
	_ Store = (*PostgresStore)(nil)
)
