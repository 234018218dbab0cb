package services

import (
	"sort"

	"carx-store/models"

	"github.com/shopspring/decimal"
)

// TopN is the number of entries kept in the top-product rankings
const TopN = 10

// BuildDashboard aggregates users and products into the admin dashboard
func BuildDashboard(users []models.User, products []models.Product) models.Dashboard {
	var orders []models.Order
	var amounts []float64
	for _, u := range users {
		for _, o := range u.Orders {
			orders = append(orders, o)
			amounts = append(amounts, o.TotalAmount)
		}
	}

	return models.Dashboard{
		TotalUsers:         len(users),
		TotalProducts:      len(products),
		TotalOrders:        len(orders),
		TotalRevenue:       sumAmounts(amounts...),
		RolesData:          RolesBreakdown(users),
		ProductsByCategory: ProductsByCategory(products),
		TopProductsInCarts: TopProductsInCarts(users, TopN),
		RevenueByProduct:   RevenueByProduct(users, TopN),
		UsersOverTime:      UsersOverTime(users),
		OrderStatus:        ComputeOrderStats(orders),
	}
}

// RolesBreakdown counts users per role; a blank role counts as user
func RolesBreakdown(users []models.User) []models.NameValue {
	counts := map[string]int{}
	for _, u := range users {
		role := u.Role
		if role == "" {
			role = models.RoleUser
		}
		counts[role]++
	}
	out := make([]models.NameValue, 0, len(counts))
	for name, value := range counts {
		out = append(out, models.NameValue{Name: name, Value: value})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ProductsByCategory counts products per known category, lumping the rest into Other
func ProductsByCategory(products []models.Product) []models.CategoryCount {
	counts := map[string]int{}
	for _, p := range products {
		counts[models.NormalizeCategory(p.Category)]++
	}

	out := []models.CategoryCount{}
	for _, c := range append(append([]string{}, models.Categories...), models.CategoryOther) {
		if n, ok := counts[c]; ok {
			out = append(out, models.CategoryCount{Category: c, Count: n})
		}
	}
	return out
}

func cartKey(item models.CartItem) string {
	if item.ID != "" {
		return item.ID
	}
	return item.Name
}

// TopProductsInCarts sums quantities per product across all carts and keeps the n largest
func TopProductsInCarts(users []models.User, n int) []models.ProductQuantity {
	byKey := map[string]*models.ProductQuantity{}
	var order []string
	for _, u := range users {
		for _, item := range u.Cart {
			key := cartKey(item)
			entry, ok := byKey[key]
			if !ok {
				entry = &models.ProductQuantity{ID: item.ID, Name: item.Name}
				byKey[key] = entry
				order = append(order, key)
			}
			entry.Quantity += item.Quantity
		}
	}

	out := make([]models.ProductQuantity, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Quantity > out[j].Quantity })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// RevenueByProduct sums price × quantity per product across all carts and keeps the n largest
func RevenueByProduct(users []models.User, n int) []models.ProductRevenue {
	type acc struct {
		id, name string
		revenue  decimal.Decimal
	}
	byKey := map[string]*acc{}
	var order []string
	for _, u := range users {
		for _, item := range u.Cart {
			key := cartKey(item)
			entry, ok := byKey[key]
			if !ok {
				entry = &acc{id: item.ID, name: item.Name, revenue: decimal.Zero}
				byKey[key] = entry
				order = append(order, key)
			}
			entry.revenue = entry.revenue.Add(LineTotal(item))
		}
	}

	out := make([]models.ProductRevenue, 0, len(order))
	for _, key := range order {
		e := byKey[key]
		out = append(out, models.ProductRevenue{ID: e.id, Name: e.name, Revenue: e.revenue.Round(2).InexactFloat64()})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Revenue > out[j].Revenue })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// UsersOverTime counts sign-ups per UTC day, oldest first. Users without a
// creation time are counted under "unknown".
func UsersOverTime(users []models.User) []models.DateCount {
	counts := map[string]int{}
	for _, u := range users {
		date := "unknown"
		if !u.CreatedAt.IsZero() {
			date = u.CreatedAt.UTC().Format("2006-01-02")
		}
		counts[date]++
	}
	out := make([]models.DateCount, 0, len(counts))
	for date, count := range counts {
		out = append(out, models.DateCount{Date: date, Count: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
