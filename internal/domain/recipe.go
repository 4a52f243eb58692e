package domain

import "time"

type Recipe struct {
	ID          string       `bson:"_id,omitempty" json:"id"`
	Name        string       `bson:"name" json:"name"`
	Description string       `bson:"description" json:"description"`
	Image       string       `bson:"image,omitempty" json:"image,omitempty"`
	Servings    int          `bson:"servings" json:"servings"`
	Ingredients []Ingredient `bson:"ingredients" json:"ingredients"`
	CreatedAt   time.Time    `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time    `bson:"updated_at" json:"updated_at"`
}

type Ingredient struct {
	ProductID string `bson:"product_id" json:"product_id"`
	Quantity  int    `bson:"quantity" json:"quantity"`
}

// RecipeView is a recipe with ingredient product details expanded.
type RecipeView struct {
	Recipe      Recipe           `json:"recipe"`
	Ingredients []IngredientView `json:"ingredients"`
}

type IngredientView struct {
	Product  *Product `json:"product,omitempty"`
	Quantity int      `json:"quantity"`
}
