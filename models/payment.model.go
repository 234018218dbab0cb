package models

// PaymentRequest holds the parameters the checkout widget is opened with
type PaymentRequest struct {
	Key         string `json:"key"`
	Amount      int64  `json:"amount"` // minor units, e.g. paise
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
}

// CheckoutSummary is returned once shipping details are accepted
type CheckoutSummary struct {
	Shipping    ShippingDetails `json:"shipping"`
	Items       []CartItem      `json:"items"`
	TotalAmount float64         `json:"totalAmount"`
	Payment     PaymentRequest  `json:"payment"`
}
