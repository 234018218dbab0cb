package models

import (
	"time"
)

// Roles a user can hold
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents a shop customer or administrator. Cart, wishlist and orders
// live on the user record and are always written back as whole arrays.
type User struct {
	ID        string     `bson:"_id" json:"id"`
	Name      string     `bson:"name" json:"name"`
	Email     string     `bson:"email" json:"email"`
	Password  string     `bson:"password" json:"password,omitempty"`
	Role      string     `bson:"role" json:"role"`
	Blocked   bool       `bson:"blocked" json:"blocked"`
	Cart      []CartItem `bson:"cart" json:"cart"`
	Wishlist  []Product  `bson:"wishlist" json:"wishlist"`
	Orders    []Order    `bson:"orders" json:"orders"`
	CreatedAt time.Time  `bson:"created_at" json:"createdAt"`
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Public returns a copy of the user that is safe to send to clients
func (u User) Public() User {
	u.Password = ""
	return u
}

// UserPatch is a partial update of a user. Nil fields are left untouched;
// non-nil slices replace the stored array entirely.
type UserPatch struct {
	Name     *string
	Email    *string
	Role     *string
	Blocked  *bool
	Cart     *[]CartItem
	Wishlist *[]Product
	Orders   *[]Order
}

// Apply writes the patch onto u
func (p UserPatch) Apply(u *User) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Blocked != nil {
		u.Blocked = *p.Blocked
	}
	if p.Cart != nil {
		u.Cart = *p.Cart
	}
	if p.Wishlist != nil {
		u.Wishlist = *p.Wishlist
	}
	if p.Orders != nil {
		u.Orders = *p.Orders
	}
}

// IsEmpty reports whether the patch changes nothing
func (p UserPatch) IsEmpty() bool {
	return p.Name == nil && p.Email == nil && p.Role == nil && p.Blocked == nil &&
		p.Cart == nil && p.Wishlist == nil && p.Orders == nil
}
