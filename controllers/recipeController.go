package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/middleware"
	"github.com/Kunxl-4568/VirtualKitchen/models"
)

var recipeSorts = map[string]func(*gorm.DB) *gorm.DB{
	"latest":  models.Latest,
	"popular": models.Popular,
	"quick":   models.Quick,
}

// GetRecipes lists published recipes, ten per page.
func (h *Controller) GetRecipes(c *gin.Context) {
	query := h.DB.Model(&models.Recipe{}).
		Scopes(models.Published).
		Preload("User").
		Preload("Category").
		Preload("Cuisine").
		Preload("Tags")

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(recipes.title) LIKE ? OR LOWER(recipes.description) LIKE ?)", pattern, pattern)
	}
	if id, err := strconv.ParseUint(c.Query("cuisine"), 10, 64); err == nil {
		query = query.Where("recipes.cuisine_id = ?", id)
	}
	if id, err := strconv.ParseUint(c.Query("category"), 10, 64); err == nil {
		query = query.Where("recipes.category_id = ?", id)
	}
	if d := c.Query("difficulty"); d != "" {
		query = query.Where("recipes.difficulty = ?", d)
	}
	if ids := parseIDList(c.Query("ingredients")); len(ids) > 0 {
		query = query.Where(`recipes.id IN (
			SELECT recipe_id FROM ingredient_recipe
			WHERE ingredient_id IN (?)
			GROUP BY recipe_id
			HAVING COUNT(DISTINCT ingredient_id) = ?)`, ids, len(ids))
	}

	order, ok := recipeSorts[c.Query("sort")]
	if !ok {
		order = models.Latest
	}

	var recipes []models.Recipe
	page, err := paginate(query, order, pageParam(c), perPage, &recipes)
	if err != nil {
		h.serverError(c, "list recipes", err)
		return
	}
	h.decorateRecipes(recipes)
	c.JSON(http.StatusOK, gin.H{"recipes": page})
}

// parseIDList reads "1,2,3" and drops anything that is not a positive id.
func parseIDList(raw string) []uint {
	var ids []uint
	seen := map[uint]bool{}
	for _, part := range strings.Split(raw, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || id == 0 || seen[uint(id)] {
			continue
		}
		seen[uint(id)] = true
		ids = append(ids, uint(id))
	}
	return ids
}

// GetRecipe shows one recipe and counts the view.
func (h *Controller) GetRecipe(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}

	recipe, err := loadRecipe(h.DB, id)
	if err != nil {
		h.lookupError(c, "Recipe", err)
		return
	}

	err = h.DB.Model(&models.Recipe{}).Where("id = ?", recipe.ID).
		UpdateColumn("views_count", gorm.Expr("views_count + ?", 1)).Error
	if err != nil {
		h.serverError(c, "count recipe view", err)
		return
	}
	recipe.ViewsCount++
	h.Metrics.RecipeViewed()

	h.decorateRecipe(recipe)
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// CreateRecipe stores a recipe with its ingredients, steps and tags in one
// transaction. An uploaded image is removed again if the transaction fails.
func (h *Controller) CreateRecipe(c *gin.Context) {
	var input storeRecipeInput
	file, err := bindRequest(c, &input)
	if err != nil {
		bindError(c, err)
		return
	}

	fe, err := checkRefs(h.DB, recipeRefs{
		CategoryID:  input.CategoryID,
		CuisineID:   input.CuisineID,
		Ingredients: input.Ingredients,
		Tags:        input.Tags,
	})
	if err != nil {
		h.serverError(c, "check recipe references", err)
		return
	}
	if fe != nil {
		respondValidation(c, fe)
		return
	}

	user := middleware.CurrentUser(c)
	recipe := input.recipe(user.ID)

	if file != nil {
		key, ok := h.storeImage(c, "recipes", file)
		if !ok {
			return
		}
		recipe.Image = &key
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return err
		}
		if err := syncIngredients(tx, recipe.ID, input.Ingredients); err != nil {
			return err
		}
		if err := replaceInstructions(tx, recipe.ID, input.Instructions); err != nil {
			return err
		}
		if len(input.Tags) > 0 {
			return syncTags(tx, recipe, input.Tags)
		}
		return nil
	})
	h.Metrics.RecipeWrite("create", err)
	if err != nil {
		h.deleteFile(c.Request.Context(), recipe.Image)
		h.Log.Error("create recipe", zap.Error(err), zap.Uint("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create recipe"})
		return
	}

	created, err := loadRecipe(h.DB, recipe.ID)
	if err != nil {
		h.serverError(c, "reload recipe", err)
		return
	}
	h.decorateRecipe(created)
	h.Log.Info("recipe created", zap.Uint("recipe_id", created.ID), zap.Uint("user_id", user.ID))
	c.JSON(http.StatusCreated, gin.H{"message": "Recipe created successfully", "recipe": created})
}

// UpdateRecipe changes the fields present in the request. Ingredients,
// instructions and tags are replaced only when sent.
func (h *Controller) UpdateRecipe(c *gin.Context) {
	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return
	}

	var input updateRecipeInput
	file, err := bindRequest(c, &input)
	if err != nil {
		bindError(c, err)
		return
	}

	refs := recipeRefs{CategoryID: input.CategoryID, CuisineID: input.CuisineID}
	if input.Ingredients != nil {
		refs.Ingredients = *input.Ingredients
	}
	if input.Tags != nil {
		refs.Tags = *input.Tags
	}
	fe, err := checkRefs(h.DB, refs)
	if err != nil {
		h.serverError(c, "check recipe references", err)
		return
	}
	if fe != nil {
		respondValidation(c, fe)
		return
	}

	cols := input.changes()
	oldImage := recipe.Image
	var newImage *string
	if file != nil {
		key, ok := h.storeImage(c, "recipes", file)
		if !ok {
			return
		}
		newImage = &key
		cols["image"] = key
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if len(cols) > 0 {
			if err := tx.Model(recipe).Updates(cols).Error; err != nil {
				return err
			}
		}
		if input.Ingredients != nil {
			if err := syncIngredients(tx, recipe.ID, *input.Ingredients); err != nil {
				return err
			}
		}
		if input.Instructions != nil {
			if err := replaceInstructions(tx, recipe.ID, *input.Instructions); err != nil {
				return err
			}
		}
		if input.Tags != nil {
			return syncTags(tx, recipe, *input.Tags)
		}
		return nil
	})
	h.Metrics.RecipeWrite("update", err)
	if err != nil {
		h.deleteFile(c.Request.Context(), newImage)
		h.Log.Error("update recipe", zap.Error(err), zap.Uint("recipe_id", recipe.ID))
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update recipe"})
		return
	}
	if newImage != nil {
		h.deleteFile(c.Request.Context(), oldImage)
	}

	updated, err := loadRecipe(h.DB, recipe.ID)
	if err != nil {
		h.serverError(c, "reload recipe", err)
		return
	}
	h.decorateRecipe(updated)
	c.JSON(http.StatusOK, gin.H{"message": "Recipe updated successfully", "recipe": updated})
}

// DeleteRecipe soft deletes the recipe and removes its image.
func (h *Controller) DeleteRecipe(c *gin.Context) {
	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return
	}

	err := h.DB.Delete(recipe).Error
	h.Metrics.RecipeWrite("delete", err)
	if err != nil {
		h.serverError(c, "delete recipe", err)
		return
	}
	h.deleteFile(c.Request.Context(), recipe.Image)
	c.Status(http.StatusNoContent)
}

func (h *Controller) PublishRecipe(c *gin.Context) {
	h.setPublished(c, true)
}

func (h *Controller) UnpublishRecipe(c *gin.Context) {
	h.setPublished(c, false)
}

func (h *Controller) setPublished(c *gin.Context, published bool) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var recipe models.Recipe
	if err := h.DB.First(&recipe, id).Error; err != nil {
		h.lookupError(c, "Recipe", err)
		return
	}
	if err := h.DB.Model(&recipe).Update("is_published", published).Error; err != nil {
		h.serverError(c, "publish recipe", err)
		return
	}
	h.Metrics.RecipeWrite("publish", nil)
	h.decorateRecipe(&recipe)
	c.JSON(http.StatusOK, gin.H{"recipe": recipe})
}

// ownedRecipe loads the recipe named in the path and checks that the caller
// wrote it or is an admin.
func (h *Controller) ownedRecipe(c *gin.Context) (*models.Recipe, bool) {
	id, ok := paramID(c)
	if !ok {
		return nil, false
	}
	var recipe models.Recipe
	if err := h.DB.First(&recipe, id).Error; err != nil {
		h.lookupError(c, "Recipe", err)
		return nil, false
	}
	user := middleware.CurrentUser(c)
	if user == nil || (recipe.UserID != user.ID && !user.IsAdmin()) {
		c.JSON(http.StatusForbidden, gin.H{"message": "This action is unauthorized."})
		return nil, false
	}
	return &recipe, true
}
