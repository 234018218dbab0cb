package services

import (
	"errors"
	"sort"
	"strings"
	"time"

	"carx-store/models"

	"github.com/google/uuid"
)

var (
	// ErrOrderNotFound is returned when an order id is not among the user's orders
	ErrOrderNotFound = errors.New("order not found")
	// ErrInvalidStatus is returned for statuses outside models.OrderStatuses
	ErrInvalidStatus = errors.New("invalid order status")
)

// NewOrder snapshots items into an order. An order with a payment id is
// Confirmed, otherwise it waits as Pending.
func NewOrder(items []models.CartItem, shipping models.ShippingDetails, paymentID string, now time.Time) (models.Order, error) {
	if len(items) == 0 {
		return models.Order{}, ErrEmptyCart
	}
	shipping = NormalizeShipping(shipping)
	if err := ValidateShipping(shipping); err != nil {
		return models.Order{}, err
	}

	status := models.OrderPending
	if strings.TrimSpace(paymentID) != "" {
		status = models.OrderConfirmed
	}
	return models.Order{
		ID:          uuid.NewString(),
		Items:       append([]models.CartItem{}, items...),
		Shipping:    shipping,
		TotalAmount: Total(items),
		PaymentID:   strings.TrimSpace(paymentID),
		Date:        now.UTC(),
		Status:      status,
	}, nil
}

// NewestFirst returns a copy of orders sorted by date, newest first
func NewestFirst(orders []models.Order) []models.Order {
	sorted := append([]models.Order{}, orders...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	return sorted
}

// FindOrder returns the order with the given id
func FindOrder(orders []models.Order, id string) (models.Order, bool) {
	for _, o := range orders {
		if o.ID == id {
			return o, true
		}
	}
	return models.Order{}, false
}

// SetOrderStatus returns orders with the status of id replaced
func SetOrderStatus(orders []models.Order, id, status string) ([]models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, ErrInvalidStatus
	}
	updated := make([]models.Order, len(orders))
	found := false
	for i, o := range orders {
		if o.ID == id {
			o.Status = status
			found = true
		}
		updated[i] = o
	}
	if !found {
		return nil, ErrOrderNotFound
	}
	return updated, nil
}

// CustomerOrders flattens every user's orders, newest first
func CustomerOrders(users []models.User) []models.CustomerOrder {
	all := []models.CustomerOrder{}
	for _, u := range users {
		for _, o := range u.Orders {
			all = append(all, models.CustomerOrder{
				Order:         o,
				UserID:        u.ID,
				CustomerName:  u.Name,
				CustomerEmail: u.Email,
			})
		}
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.After(all[j].Date)
	})
	return all
}

// FilterOrders keeps orders matching status (empty or "all" matches any) and a
// case-insensitive search over customer name, email and order id.
func FilterOrders(orders []models.CustomerOrder, status, search string) []models.CustomerOrder {
	search = strings.ToLower(strings.TrimSpace(search))
	filtered := []models.CustomerOrder{}
	for _, o := range orders {
		if status != "" && status != "all" && o.Status != status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(o.CustomerName), search) &&
			!strings.Contains(strings.ToLower(o.CustomerEmail), search) &&
			!strings.Contains(strings.ToLower(o.ID), search) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}

// ComputeOrderStats counts orders per status and sums revenue of orders that
// were not cancelled. Orders without a status count as Confirmed.
func ComputeOrderStats(orders []models.Order) models.OrderStats {
	stats := models.OrderStats{ByStatus: map[string]int{}}
	for _, s := range models.OrderStatuses {
		stats.ByStatus[s] = 0
	}
	amounts := []float64{}
	for _, o := range orders {
		status := o.Status
		if status == "" {
			status = models.OrderConfirmed
		}
		stats.Total++
		stats.ByStatus[status]++
		if status != models.OrderCancelled {
			amounts = append(amounts, o.TotalAmount)
		}
	}
	stats.TotalRevenue = sumAmounts(amounts...)
	return stats
}
