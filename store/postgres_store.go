package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carx-store/models"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// PostgresStore keeps each record as a JSONB document keyed by id, with the
// user email lifted into its own unique column.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore opens dsn, pings it and creates the tables
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	s := &PostgresStore{db: db}
	if err := s.Init(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// Init creates the users and products tables
func (s *PostgresStore) Init(ctx context.Context) error {
	if err := s.createUsersTable(ctx); err != nil {
		return fmt.Errorf("create users table: %w", err)
	}
	if err := s.createProductsTable(ctx); err != nil {
		return fmt.Errorf("create products table: %w", err)
	}
	return nil
}

func (s *PostgresStore) createUsersTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	)`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

func (s *PostgresStore) createProductsTable(ctx context.Context) error {
	query := `CREATE TABLE IF NOT EXISTS products (
		id TEXT PRIMARY KEY,
		doc JSONB NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()
	)`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return err
	}
	// tables created before the column existed
	_, err := s.db.ExecContext(ctx,
		"ALTER TABLE products ADD COLUMN IF NOT EXISTS created_at TIMESTAMPTZ NOT NULL DEFAULT clock_timestamp()")
	return err
}

func uniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user := new(models.User)
	if err := json.Unmarshal(raw, user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}

func scanProduct(row rowScanner) (*models.Product, error) {
	var raw []byte
	if err := row.Scan(&raw); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	product := new(models.Product)
	if err := json.Unmarshal(raw, product); err != nil {
		return nil, fmt.Errorf("decode product: %w", err)
	}
	return product, nil
}

// ListUsers returns every user in sign-up order
func (s *PostgresStore) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM users ORDER BY created_at")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

// GetUser returns the user with the given id
func (s *PostgresStore) GetUser(ctx context.Context, id string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, "SELECT doc FROM users WHERE id = $1", id))
}

// GetUserByEmail returns the user registered with email
func (s *PostgresStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(s.db.QueryRowContext(ctx, "SELECT doc FROM users WHERE email = $1", email))
}

// CreateUser inserts the user document
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	doc, err := json.Marshal(user)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		"INSERT INTO users (id, email, doc, created_at) VALUES ($1, $2, $3, $4)",
		user.ID, user.Email, doc, user.CreatedAt)
	if uniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// PatchUser locks the row, applies patch and writes the document back
func (s *PostgresStore) PatchUser(ctx context.Context, id string, patch models.UserPatch) (*models.User, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := scanUser(tx.QueryRowContext(ctx, "SELECT doc FROM users WHERE id = $1 FOR UPDATE", id))
	if err != nil {
		return nil, err
	}
	patch.Apply(user)

	doc, err := json.Marshal(user)
	if err != nil {
		return nil, err
	}
	_, err = tx.ExecContext(ctx, "UPDATE users SET email = $2, doc = $3 WHERE id = $1", id, user.Email, doc)
	if uniqueViolation(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes the user
func (s *PostgresStore) DeleteUser(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "DELETE FROM users WHERE id = $1", id)
}

// ListProducts returns the whole catalog in insertion order
func (s *PostgresStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT doc FROM products ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}
	return products, rows.Err()
}

// GetProduct returns the product with the given id
func (s *PostgresStore) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return scanProduct(s.db.QueryRowContext(ctx, "SELECT doc FROM products WHERE id = $1", id))
}

// CreateProduct inserts the product document
func (s *PostgresStore) CreateProduct(ctx context.Context, product *models.Product) error {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}
	doc, err := json.Marshal(product)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, "INSERT INTO products (id, doc) VALUES ($1, $2)", product.ID, doc)
	if uniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

// ReplaceProduct overwrites the product document
func (s *PostgresStore) ReplaceProduct(ctx context.Context, product *models.Product) error {
	doc, err := json.Marshal(product)
	if err != nil {
		return err
	}
	result, err := s.db.ExecContext(ctx, "UPDATE products SET doc = $2 WHERE id = $1", product.ID, doc)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

// DeleteProduct removes the product
func (s *PostgresStore) DeleteProduct(ctx context.Context, id string) error {
	return s.deleteByID(ctx, "DELETE FROM products WHERE id = $1", id)
}

func (s *PostgresStore) deleteByID(ctx context.Context, query, id string) error {
	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return requireAffected(result)
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Close closes the connection pool
func (s *PostgresStore) Close(ctx context.Context) error {
	return s.db.Close()
}
