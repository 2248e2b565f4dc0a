package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kunxl-4568/VirtualKitchen/database"
	"github.com/Kunxl-4568/VirtualKitchen/database/dbtest"
	"github.com/Kunxl-4568/VirtualKitchen/models"
)

func TestMigrateCreatesTables(t *testing.T) {
	db := dbtest.New(t)

	for _, table := range []string{"users", "categories", "cuisines", "ingredients", "tags", "recipes", "ingredient_recipe", "instructions", "recipe_tag", "revoked_tokens"} {
		assert.True(t, db.HasTable(table), table)
	}
}

func TestInstructionStepIsUniquePerRecipe(t *testing.T) {
	db := dbtest.New(t)

	require.NoError(t, db.Create(&models.Instruction{RecipeID: 1, StepNumber: 1, Description: "Chop"}).Error)
	require.NoError(t, db.Create(&models.Instruction{RecipeID: 2, StepNumber: 1, Description: "Boil"}).Error)
	assert.Error(t, db.Create(&models.Instruction{RecipeID: 1, StepNumber: 1, Description: "Fry"}).Error)
}

func TestSeedIsIdempotent(t *testing.T) {
	db := dbtest.New(t)

	counts, err := database.Seed(db)
	require.NoError(t, err)
	assert.Equal(t, 5, counts.Cuisines)
	assert.Equal(t, 6, counts.Categories)
	assert.Equal(t, 46, counts.Ingredients)

	counts, err = database.Seed(db)
	require.NoError(t, err)
	assert.Equal(t, database.SeedCounts{}, counts)

	var thai models.Cuisine
	require.NoError(t, db.Where("name = ?", "Thai").First(&thai).Error)
	assert.Equal(t, "thai", thai.Slug)

	var fish models.Ingredient
	require.NoError(t, db.Where("name = ?", "Fish").First(&fish).Error)
	assert.True(t, fish.IsAllergen)
}

func TestCreateAdmin(t *testing.T) {
	db := dbtest.New(t)

	admin, err := database.CreateAdmin(db, "Chef", "chef@kitchen.test", "s3cret!pass")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte("s3cret!pass")))

	require.NoError(t, db.Create(&models.User{Name: "Cook", Email: "cook@kitchen.test", Password: "x", Role: models.RoleUser}).Error)
	promoted, err := database.CreateAdmin(db, "Cook", "cook@kitchen.test", "ignored")
	require.NoError(t, err)
	assert.True(t, promoted.IsAdmin())

	var stored models.User
	require.NoError(t, db.Where("email = ?", "cook@kitchen.test").First(&stored).Error)
	assert.Equal(t, models.RoleAdmin, stored.Role)
}
