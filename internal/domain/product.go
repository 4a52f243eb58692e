package domain

import (
	"math"
	"time"
)

type Product struct {
	ID          string    `bson:"_id,omitempty" json:"id"`
	Name        string    `bson:"name" json:"name"`
	Images      []string  `bson:"images" json:"images"`
	Price       float64   `bson:"price" json:"price"`
	Discount    float64   `bson:"discount" json:"discount"`
	Stock       int       `bson:"stock" json:"stock"`
	CategoryIDs []string  `bson:"category_ids" json:"category_ids"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
}

type Category struct {
	ID    string `bson:"_id,omitempty" json:"id"`
	Name  string `bson:"name" json:"name"`
	Image string `bson:"image" json:"image"`
}

// PriceWithDiscount returns the effective unit price after applying a
// percentage discount. The discount amount is rounded up, so the result
// stays an integer for integer list prices. A missing or out-of-range
// discount counts as zero; the result never goes below zero.
func PriceWithDiscount(price, discount float64) float64 {
	if price < 0 {
		return 0
	}
	if math.IsNaN(discount) || discount <= 0 || discount > 100 {
		return price
	}
	discountAmount := math.Ceil(price * discount / 100)
	effective := price - discountAmount
	if effective < 0 {
		return 0
	}
	return effective
}

// EffectivePrice is the product's unit price after its own discount.
func (p Product) EffectivePrice() float64 {
	return PriceWithDiscount(p.Price, p.Discount)
}
