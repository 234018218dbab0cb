package services

import (
	"errors"
	"fmt"
	"strings"

	"carx-store/models"
)

// ErrEmptyCart is returned when checking out or ordering with nothing in the cart
var ErrEmptyCart = errors.New("your cart is empty")

// MissingFieldsError lists the shipping fields left blank
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return fmt.Sprintf("missing shipping fields: %s", strings.Join(e.Fields, ", "))
}

// PaymentConfig describes the merchant account the checkout widget opens with
type PaymentConfig struct {
	KeyID    string
	Currency string
	ShopName string
}

// NormalizeShipping trims surrounding whitespace from every field
func NormalizeShipping(s models.ShippingDetails) models.ShippingDetails {
	return models.ShippingDetails{
		FullName:   strings.TrimSpace(s.FullName),
		Address:    strings.TrimSpace(s.Address),
		City:       strings.TrimSpace(s.City),
		State:      strings.TrimSpace(s.State),
		PostalCode: strings.TrimSpace(s.PostalCode),
		Country:    strings.TrimSpace(s.Country),
		Phone:      strings.TrimSpace(s.Phone),
	}
}

// ValidateShipping requires name, address, city, postal code and phone
func ValidateShipping(s models.ShippingDetails) error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"fullName", s.FullName},
		{"address", s.Address},
		{"city", s.City},
		{"postalCode", s.PostalCode},
		{"phone", s.Phone},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// Checkout validates the shipping details against the user's cart and returns
// the amount and widget parameters for payment.
func Checkout(user *models.User, shipping models.ShippingDetails, cfg PaymentConfig) (models.CheckoutSummary, error) {
	shipping = NormalizeShipping(shipping)
	if len(user.Cart) == 0 {
		return models.CheckoutSummary{}, ErrEmptyCart
	}
	if err := ValidateShipping(shipping); err != nil {
		return models.CheckoutSummary{}, err
	}

	total := Total(user.Cart)
	return models.CheckoutSummary{
		Shipping:    shipping,
		Items:       append([]models.CartItem{}, user.Cart...),
		TotalAmount: total,
		Payment: models.PaymentRequest{
			Key:         cfg.KeyID,
			Amount:      MinorUnits(total),
			Currency:    cfg.Currency,
			Name:        cfg.ShopName,
			Description: fmt.Sprintf("%d item(s) from %s", ItemCount(user.Cart), cfg.ShopName),
			Email:       user.Email,
			Contact:     shipping.Phone,
		},
	}, nil
}
