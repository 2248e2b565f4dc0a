package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

type Recipe struct {
	ID          uint    `json:"id" gorm:"primary_key"`
	Title       string  `json:"title" gorm:"type:varchar(255);not null"`
	Description string  `json:"description" gorm:"type:text;not null"`
	PrepTime    int     `json:"prep_time" gorm:"not null"`
	CookTime    int     `json:"cook_time" gorm:"not null"`
	Servings    int     `json:"servings" gorm:"not null"`
	Difficulty  string  `json:"difficulty" gorm:"type:varchar(10);not null;index:idx_recipe_published_difficulty"`
	Image       *string `json:"image"`
	ImageURL    *string `json:"image_url" gorm:"-"`

	UserID     uint      `json:"user_id" gorm:"not null;index"`
	User       *User     `json:"user,omitempty" gorm:"association_autoupdate:false;association_autocreate:false"`
	CategoryID uint      `json:"category_id" gorm:"not null;index"`
	Category   *Category `json:"category,omitempty" gorm:"association_autoupdate:false;association_autocreate:false"`
	CuisineID  *uint     `json:"cuisine_id" gorm:"index"`
	Cuisine    *Cuisine  `json:"cuisine,omitempty" gorm:"association_autoupdate:false;association_autocreate:false"`

	IsPublished bool `json:"is_published" gorm:"not null;default:false;index:idx_recipe_published_difficulty"`
	ViewsCount  int  `json:"views_count" gorm:"not null;default:0"`

	Ingredients  []RecipeIngredient `json:"ingredients,omitempty" gorm:"foreignkey:RecipeID;association_autoupdate:false;association_autocreate:false"`
	Instructions []Instruction      `json:"instructions,omitempty" gorm:"foreignkey:RecipeID;association_autoupdate:false;association_autocreate:false"`
	Tags         []Tag              `json:"tags,omitempty" gorm:"many2many:recipe_tag;association_autoupdate:false;association_autocreate:false"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-" sql:"index"`
}

// Published restricts a query to recipes visible in public listings.
func Published(db *gorm.DB) *gorm.DB {
	return db.Where("recipes.is_published = ?", true)
}

// Popular orders by views, most viewed first.
func Popular(db *gorm.DB) *gorm.DB {
	return db.Order("recipes.views_count DESC").Order("recipes.id DESC")
}

// Latest orders by creation time, newest first.
func Latest(db *gorm.DB) *gorm.DB {
	return db.Order("recipes.created_at DESC").Order("recipes.id DESC")
}

// Quick orders by total preparation and cooking time.
func Quick(db *gorm.DB) *gorm.DB {
	return db.Order("(recipes.prep_time + recipes.cook_time) ASC").Order("recipes.id ASC")
}

type Instruction struct {
	ID          uint      `json:"id" gorm:"primary_key"`
	RecipeID    uint      `json:"recipe_id" gorm:"not null;unique_index:idx_instruction_step"`
	StepNumber  int       `json:"step_number" gorm:"not null;unique_index:idx_instruction_step"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// All is the list passed to AutoMigrate, in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&RevokedToken{},
		&Category{},
		&Cuisine{},
		&Ingredient{},
		&Tag{},
		&Recipe{},
		&RecipeIngredient{},
		&Instruction{},
	}
}
