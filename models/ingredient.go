package models

import (
	"time"
)

type Ingredient struct {
	ID          uint      `json:"id" gorm:"primary_key"`
	Name        string    `json:"name" gorm:"type:varchar(255);unique;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	IsAllergen  bool      `json:"is_allergen" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RecipeIngredient is a row of the ingredient_recipe pivot. Quantity, unit
// and notes belong to the pairing, not to either side.
type RecipeIngredient struct {
	ID           uint       `json:"-" gorm:"primary_key"`
	RecipeID     uint       `json:"recipe_id" gorm:"not null;unique_index:idx_ingredient_recipe"`
	IngredientID uint       `json:"ingredient_id" gorm:"not null;unique_index:idx_ingredient_recipe;index"`
	Ingredient   Ingredient `json:"ingredient" gorm:"foreignkey:IngredientID;association_autoupdate:false;association_autocreate:false"`
	Quantity     string     `json:"quantity" gorm:"type:varchar(100);not null"`
	Unit         *string    `json:"unit" gorm:"type:varchar(20)"`
	Notes        *string    `json:"notes" gorm:"type:text"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (RecipeIngredient) TableName() string {
	return "ingredient_recipe"
}
