package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sahilm/fuzzy"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

type ingredientInput struct {
	Name        *string   `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string   `json:"description"`
	IsAllergen  *FlexBool `json:"is_allergen"`
}

type ingredientSource []models.Ingredient

func (s ingredientSource) String(i int) string { return s[i].Name }
func (s ingredientSource) Len() int            { return len(s) }

// rankIngredients keeps the ingredients whose name fuzzily matches term,
// best match first.
func rankIngredients(all []models.Ingredient, term string) []models.Ingredient {
	matches := fuzzy.FindFrom(term, ingredientSource(all))
	out := make([]models.Ingredient, 0, len(matches))
	for _, m := range matches {
		out = append(out, all[m.Index])
	}
	return out
}

func (h *Controller) GetIngredients(c *gin.Context) {
	var ingredients []models.Ingredient
	if err := h.DB.Order("name ASC").Find(&ingredients).Error; err != nil {
		h.serverError(c, "list ingredients", err)
		return
	}
	if term := strings.TrimSpace(c.Query("search")); term != "" {
		ingredients = rankIngredients(ingredients, term)
	}
	c.JSON(http.StatusOK, ingredients)
}

// GetIngredient returns the ingredient and the published recipes using it.
func (h *Controller) GetIngredient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var ingredient models.Ingredient
	if err := h.DB.First(&ingredient, id).Error; err != nil {
		h.lookupError(c, "Ingredient", err)
		return
	}

	var recipes []models.Recipe
	query := h.DB.Model(&models.Recipe{}).
		Scopes(models.Published).
		Where("recipes.id IN (SELECT recipe_id FROM ingredient_recipe WHERE ingredient_id = ?)", ingredient.ID).
		Preload("Cuisine").
		Preload("User")
	page, err := paginate(query, models.Latest, pageParam(c), perPage, &recipes)
	if err != nil {
		h.serverError(c, "list ingredient recipes", err)
		return
	}
	h.decorateRecipes(recipes)
	c.JSON(http.StatusOK, gin.H{"ingredient": ingredient, "recipes": page})
}

func (h *Controller) CreateIngredient(c *gin.Context) {
	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		respondValidation(c, FieldErrors{"name": {"The name field is required."}})
		return
	}

	ingredient := models.Ingredient{Name: strings.TrimSpace(*input.Name), Description: input.Description}
	if input.IsAllergen != nil {
		ingredient.IsAllergen = bool(*input.IsAllergen)
	}
	if !h.uniqueName(c, &models.Ingredient{}, ingredient.Name, 0) {
		return
	}

	if err := h.DB.Create(&ingredient).Error; err != nil {
		h.serverError(c, "create ingredient", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Ingredient created successfully", "ingredient": ingredient})
}

func (h *Controller) UpdateIngredient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var ingredient models.Ingredient
	if err := h.DB.First(&ingredient, id).Error; err != nil {
		h.lookupError(c, "Ingredient", err)
		return
	}

	var input ingredientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}

	cols := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !h.uniqueName(c, &models.Ingredient{}, name, ingredient.ID) {
			return
		}
		cols["name"] = name
	}
	if input.Description != nil {
		cols["description"] = *input.Description
	}
	if input.IsAllergen != nil {
		cols["is_allergen"] = bool(*input.IsAllergen)
	}
	if len(cols) > 0 {
		if err := h.DB.Model(&ingredient).Updates(cols).Error; err != nil {
			h.serverError(c, "update ingredient", err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Ingredient updated successfully", "ingredient": ingredient})
}

// DeleteIngredient refuses while any recipe still lists the ingredient.
func (h *Controller) DeleteIngredient(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var ingredient models.Ingredient
	if err := h.DB.First(&ingredient, id).Error; err != nil {
		h.lookupError(c, "Ingredient", err)
		return
	}

	var uses int
	if err := h.DB.Model(&models.RecipeIngredient{}).Where("ingredient_id = ?", ingredient.ID).Count(&uses).Error; err != nil {
		h.serverError(c, "count ingredient uses", err)
		return
	}
	if uses > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Cannot delete: Ingredient is used in recipes"})
		return
	}

	if err := h.DB.Delete(&ingredient).Error; err != nil {
		h.serverError(c, "delete ingredient", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// uniqueName answers 422 when another row of model already has name.
func (h *Controller) uniqueName(c *gin.Context, model interface{}, name string, exceptID uint) bool {
	var n int
	q := h.DB.Model(model).Where("LOWER(name) = ?", strings.ToLower(name))
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		h.serverError(c, "check unique name", err)
		return false
	}
	if n > 0 {
		respondValidation(c, FieldErrors{"name": {"The name has already been taken."}})
		return false
	}
	return true
}

// uniqueSlug rejects a name that differs from an existing one but slugs the
// same, such as "Soup!" after "Soup?".
func (h *Controller) uniqueSlug(c *gin.Context, model interface{}, name string, exceptID uint) bool {
	var n int
	q := h.DB.Model(model).Where("slug = ?", models.Slugify(name))
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	if err := q.Count(&n).Error; err != nil {
		h.serverError(c, "check unique slug", err)
		return false
	}
	if n > 0 {
		respondValidation(c, FieldErrors{"name": {"The name has already been taken."}})
		return false
	}
	return true
}
