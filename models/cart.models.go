package models

// CartItem is a product snapshot with a quantity and optional fitment options
type CartItem struct {
	Product  `bson:",inline" yaml:",inline"`
	Quantity int    `bson:"quantity" json:"quantity"`
	Color    string `bson:"color,omitempty" json:"color,omitempty"`
	CarModel string `bson:"car_model,omitempty" json:"carModel,omitempty"`
}
