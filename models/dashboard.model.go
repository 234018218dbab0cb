package models

// NameValue is a labelled count
type NameValue struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// CategoryCount is the number of products in a category
type CategoryCount struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
}

// ProductQuantity is the total quantity of a product across all carts
type ProductQuantity struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ProductRevenue is the cart value of a product across all carts
type ProductRevenue struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// DateCount is the number of sign-ups on a day
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// OrderStats summarises orders by status
type OrderStats struct {
	Total        int            `json:"total"`
	ByStatus     map[string]int `json:"byStatus"`
	TotalRevenue float64        `json:"totalRevenue"`
}

// Dashboard is the admin analytics payload
type Dashboard struct {
	TotalUsers         int               `json:"totalUsers"`
	TotalProducts      int               `json:"totalProducts"`
	TotalOrders        int               `json:"totalOrders"`
	TotalRevenue       float64           `json:"totalRevenue"`
	RolesData          []NameValue       `json:"rolesData"`
	ProductsByCategory []CategoryCount   `json:"productsByCategory"`
	TopProductsInCarts []ProductQuantity `json:"topProductsInCarts"`
	RevenueByProduct   []ProductRevenue  `json:"revenueByProduct"`
	UsersOverTime      []DateCount       `json:"usersOverTime"`
	OrderStatus        OrderStats        `json:"orderStatus"`
}
