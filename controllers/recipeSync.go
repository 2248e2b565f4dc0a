package controllers

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

// syncIngredients makes the recipe's pivot rows match lines exactly: rows for
// ingredients still listed are updated in place, the rest are removed and
// new ingredients are attached.
func syncIngredients(tx *gorm.DB, recipeID uint, lines []ingredientLine) error {
	lines = dedupeLines(lines)
	wanted := make(map[uint]ingredientLine, len(lines))
	for _, line := range lines {
		wanted[uint(line.ID)] = line
	}

	var current []models.RecipeIngredient
	if err := tx.Where("recipe_id = ?", recipeID).Find(&current).Error; err != nil {
		return fmt.Errorf("load recipe ingredients: %w", err)
	}

	kept := make(map[uint]bool, len(current))
	for i := range current {
		row := &current[i]
		line, ok := wanted[row.IngredientID]
		if !ok {
			if err := tx.Delete(row).Error; err != nil {
				return fmt.Errorf("detach ingredient %d: %w", row.IngredientID, err)
			}
			continue
		}
		kept[row.IngredientID] = true
		err := tx.Model(row).Updates(map[string]interface{}{
			"quantity": strings.TrimSpace(string(line.Quantity)),
			"unit":     optionalString(line.Unit),
			"notes":    optionalString(line.Notes),
		}).Error
		if err != nil {
			return fmt.Errorf("update ingredient %d: %w", row.IngredientID, err)
		}
	}

	for _, line := range lines {
		if kept[uint(line.ID)] {
			continue
		}
		row := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: uint(line.ID),
			Quantity:     strings.TrimSpace(string(line.Quantity)),
			Unit:         optionalString(line.Unit),
			Notes:        optionalString(line.Notes),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("attach ingredient %d: %w", row.IngredientID, err)
		}
	}
	return nil
}

// replaceInstructions drops every step of the recipe and writes steps
// numbered from 1 in the given order.
func replaceInstructions(tx *gorm.DB, recipeID uint, steps []string) error {
	if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.Instruction{}).Error; err != nil {
		return fmt.Errorf("clear instructions: %w", err)
	}
	for i, step := range steps {
		ins := models.Instruction{RecipeID: recipeID, StepNumber: i + 1, Description: strings.TrimSpace(step)}
		if err := tx.Create(&ins).Error; err != nil {
			return fmt.Errorf("create step %d: %w", i+1, err)
		}
	}
	return nil
}

func syncTags(tx *gorm.DB, recipe *models.Recipe, ids []FlexInt) error {
	assoc := tx.Model(recipe).Association("Tags")
	if len(ids) == 0 {
		return assoc.Clear().Error
	}
	raw := make([]uint, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, uint(id))
	}
	var tags []models.Tag
	if err := tx.Where("id IN (?)", raw).Find(&tags).Error; err != nil {
		return fmt.Errorf("load tags: %w", err)
	}
	return assoc.Replace(tags).Error
}

// loadRecipe reads a recipe with everything the detail view shows.
func loadRecipe(db *gorm.DB, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := db.
		Preload("User").
		Preload("Category").
		Preload("Cuisine").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB {
			return db.Order("ingredient_recipe.id ASC")
		}).
		Preload("Ingredients.Ingredient").
		Preload("Instructions", func(db *gorm.DB) *gorm.DB {
			return db.Order("instructions.step_number ASC")
		}).
		Preload("Tags").
		First(&recipe, id).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}
