package models

import (
	"time"
)

// Order statuses
const (
	OrderPending   = "Pending"
	OrderConfirmed = "Confirmed"
	OrderShipped   = "Shipped"
	OrderDelivered = "Delivered"
	OrderCancelled = "Cancelled"
)

// OrderStatuses lists every valid status in lifecycle order
var OrderStatuses = []string{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled}

// ValidOrderStatus reports whether s is a known order status
func ValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if status == s {
			return true
		}
	}
	return false
}

// ShippingDetails is the delivery address captured at checkout
type ShippingDetails struct {
	FullName   string `bson:"full_name" json:"fullName"`
	Address    string `bson:"address" json:"address"`
	City       string `bson:"city" json:"city"`
	State      string `bson:"state,omitempty" json:"state,omitempty"`
	PostalCode string `bson:"postal_code" json:"postalCode"`
	Country    string `bson:"country,omitempty" json:"country,omitempty"`
	Phone      string `bson:"phone" json:"phone"`
}

// Order represents a placed order; items are a snapshot of the cart at checkout
type Order struct {
	ID          string          `bson:"id" json:"id"`
	Items       []CartItem      `bson:"items" json:"items"`
	Shipping    ShippingDetails `bson:"shipping" json:"shipping"`
	TotalAmount float64         `bson:"total_amount" json:"totalAmount"`
	PaymentID   string          `bson:"payment_id" json:"paymentId"`
	Date        time.Time       `bson:"date" json:"date"`
	Status      string          `bson:"status" json:"status"`
}

// CustomerOrder is an order together with the customer who placed it
type CustomerOrder struct {
	Order
	UserID        string `json:"userId"`
	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail"`
}
