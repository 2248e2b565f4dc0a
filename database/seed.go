package database

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

var seedCuisines = []string{"Indian", "Italian", "Chinese", "Mexican", "Thai"}

var seedCategories = []string{"Breakfast", "Lunch", "Dinner", "Dessert", "Snack", "Beverage"}

var seedIngredients = []struct {
	name, description string
	allergen          bool
}{
	// Main proteins
	{"Chicken Breast", "Lean meat from chicken", false},
	{"Lamb", "Meat from young sheep", false},
	{"Beef", "Red meat from cattle", false},
	{"Fish", "Fresh water or sea fish", true},
	{"Tofu", "Soybean curd", true},
	{"Paneer", "Fresh cottage cheese", true},

	// Vegetables
	{"Tomato", "Fresh red tomatoes", false},
	{"Onion", "Red or white onions", false},
	{"Potato", "Starchy root vegetable", false},
	{"Capsicum", "Bell peppers of various colors", false},
	{"Carrot", "Orange root vegetable", false},
	{"Cauliflower", "White cruciferous vegetable", false},
	{"Green Peas", "Fresh or frozen peas", false},

	// Indian spices
	{"Turmeric Powder", "Yellow spice powder", false},
	{"Cumin Seeds", "Whole or ground cumin", false},
	{"Coriander Powder", "Ground coriander seeds", false},
	{"Garam Masala", "Mixed Indian spices", false},
	{"Red Chili Powder", "Ground red chilies", false},

	// Asian
	{"Soy Sauce", "Fermented soybean sauce", true},
	{"Ginger", "Fresh ginger root", false},
	{"Garlic", "Fresh garlic cloves", false},
	{"Sesame Oil", "Flavored oil from sesame", true},

	// Italian
	{"Olive Oil", "Extra virgin olive oil", false},
	{"Basil", "Fresh basil leaves", false},
	{"Oregano", "Dried oregano herbs", false},
	{"Pasta", "Various pasta shapes", true},

	// Dairy and eggs
	{"Cheese", "Various types of cheese", true},
	{"Butter", "Unsalted butter", true},
	{"Milk", "Full-fat milk", true},
	{"Cream", "Heavy cream", true},
	{"Eggs", "Fresh chicken eggs", true},
	{"Yogurt", "Plain yogurt", true},

	// Baking
	{"All-Purpose Flour", "Refined wheat flour", true},
	{"Sugar", "White granulated sugar", false},
	{"Baking Powder", "Leavening agent", false},
	{"Vanilla Extract", "Flavoring essence", false},

	// Seasonings
	{"Salt", "Regular table salt", false},
	{"Black Pepper", "Ground black pepper", false},
	{"White Pepper", "Ground white pepper", false},

	// Fresh herbs
	{"Coriander Leaves", "Fresh cilantro", false},
	{"Mint Leaves", "Fresh mint", false},
	{"Parsley", "Fresh parsley", false},
	{"Thyme", "Fresh thyme", false},

	// Rice and grains
	{"Basmati Rice", "Long grain aromatic rice", false},
	{"Brown Rice", "Whole grain rice", false},
	{"Quinoa", "Protein-rich grain", false},
}

// SeedCounts reports how many rows each seeder inserted.
type SeedCounts struct {
	Cuisines    int
	Categories  int
	Ingredients int
}

// Seed inserts the reference cuisines, categories and ingredients. Rows that
// already exist by name are left alone, so running it twice is harmless.
func Seed(db *gorm.DB) (SeedCounts, error) {
	var counts SeedCounts

	tx := db.Begin()
	if tx.Error != nil {
		return counts, tx.Error
	}

	for _, name := range seedCuisines {
		res := tx.Where(models.Cuisine{Name: name}).FirstOrCreate(&models.Cuisine{Name: name})
		if res.Error != nil {
			tx.Rollback()
			return counts, fmt.Errorf("seed cuisine %s: %w", name, res.Error)
		}
		counts.Cuisines += int(res.RowsAffected)
	}

	for _, name := range seedCategories {
		res := tx.Where(models.Category{Name: name}).FirstOrCreate(&models.Category{Name: name})
		if res.Error != nil {
			tx.Rollback()
			return counts, fmt.Errorf("seed category %s: %w", name, res.Error)
		}
		counts.Categories += int(res.RowsAffected)
	}

	for _, in := range seedIngredients {
		description := in.description
		ingredient := models.Ingredient{Name: in.name, Description: &description, IsAllergen: in.allergen}
		res := tx.Where(models.Ingredient{Name: in.name}).FirstOrCreate(&ingredient)
		if res.Error != nil {
			tx.Rollback()
			return counts, fmt.Errorf("seed ingredient %s: %w", in.name, res.Error)
		}
		counts.Ingredients += int(res.RowsAffected)
	}

	return counts, tx.Commit().Error
}

// CreateAdmin creates an admin account, or promotes the existing account
// with that email.
func CreateAdmin(db *gorm.DB, name, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var user models.User
	err = db.Where("email = ?", email).First(&user).Error
	switch {
	case err == nil:
		if err := db.Model(&user).Updates(map[string]interface{}{"role": models.RoleAdmin}).Error; err != nil {
			return nil, fmt.Errorf("promote %s: %w", email, err)
		}
		user.Role = models.RoleAdmin
		return &user, nil
	case !gorm.IsRecordNotFoundError(err):
		return nil, err
	}

	user = models.User{Name: name, Email: email, Password: string(hash), Role: models.RoleAdmin}
	if err := db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("create admin %s: %w", email, err)
	}
	return &user, nil
}
