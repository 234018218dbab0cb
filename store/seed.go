package store

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"carx-store/models"

	"gopkg.in/yaml.v3"
)

// csvColumns is the expected header of a catalog CSV file
var csvColumns = []string{"name", "description", "price", "image", "category", "isPremium"}

// LoadProductsCSV reads a catalog CSV. The first row is the header.
func LoadProductsCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("could not read CSV: %w", err)
	}

	products := []models.Product{}
	for i, row := range records {
		if i == 0 {
			continue
		}
		if len(row) != len(csvColumns) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i+1, len(row), len(csvColumns))
		}

		price, err := strconv.ParseFloat(strings.TrimSpace(row[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid price %q", i+1, row[2])
		}
		premium := false
		if raw := strings.TrimSpace(row[5]); raw != "" {
			premium, err = strconv.ParseBool(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid isPremium %q", i+1, row[5])
			}
		}

		products = append(products, models.Product{
			Name:        strings.TrimSpace(row[0]),
			Description: strings.TrimSpace(row[1]),
			Price:       price,
			Image:       strings.TrimSpace(row[3]),
			Category:    models.NormalizeCategory(strings.TrimSpace(row[4])),
			IsPremium:   premium,
		})
	}
	return products, nil
}

// LoadProductsYAML reads a catalog YAML document with a top-level products list
func LoadProductsYAML(r io.Reader) ([]models.Product, error) {
	var doc struct {
		Products []models.Product `yaml:"products"`
	}
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("could not read YAML: %w", err)
	}
	for i := range doc.Products {
		doc.Products[i].Category = models.NormalizeCategory(doc.Products[i].Category)
	}
	return doc.Products, nil
}

// LoadProductsFile picks the CSV or YAML loader from the file extension
func LoadProductsFile(path string) ([]models.Product, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open catalog file: %w", err)
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return LoadProductsCSV(file)
	case ".yaml", ".yml":
		return LoadProductsYAML(file)
	default:
		return nil, fmt.Errorf("unsupported catalog format %q", filepath.Ext(path))
	}
}

// SeedProducts inserts products when the catalog is empty and returns how many were added
func SeedProducts(ctx context.Context, s Store, products []models.Product) (int, error) {
	existing, err := s.ListProducts(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	added := 0
	for i := range products {
		if err := s.CreateProduct(ctx, &products[i]); err != nil {
			log.Printf("failed to seed product %q: %v", products[i].Name, err)
			continue
		}
		added++
	}
	return added, nil
}

// EnsureAdmin creates an admin account for email unless one is already registered.
// passwordHash must already be hashed.
func EnsureAdmin(ctx context.Context, s Store, name, email, passwordHash string) error {
	_, err := s.GetUserByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, ErrNotFound) {
		return err
	}
	return s.CreateUser(ctx, &models.User{
		Name:     name,
		Email:    email,
		Password: passwordHash,
		Role:     models.RoleAdmin,
		Cart:     []models.CartItem{},
		Wishlist: []models.Product{},
		Orders:   []models.Order{},
	})
}
