package models

// Categories shown in the storefront. Anything else is filed under Other.
var Categories = []string{
	"Interior",
	"Lighting",
	"Exterior",
	"Electronics",
	"Accessories",
	"Comfort",
	"Safety",
}

// CategoryOther collects products whose category is not in Categories
const CategoryOther = "Other"

// Product represents a catalog entry
type Product struct {
	ID          string  `bson:"_id" json:"id" yaml:"id"`
	Name        string  `bson:"name" json:"name" yaml:"name"`
	Description string  `bson:"description" json:"description" yaml:"description"`
	Price       float64 `bson:"price" json:"price" yaml:"price"`
	Image       string  `bson:"image" json:"image" yaml:"image"`
	Category    string  `bson:"category" json:"category" yaml:"category"`
	IsPremium   bool    `bson:"is_premium" json:"isPremium" yaml:"isPremium"`
}

// NormalizeCategory maps unknown categories to CategoryOther
func NormalizeCategory(category string) string {
	for _, c := range Categories {
		if c == category {
			return c
		}
	}
	return CategoryOther
}
