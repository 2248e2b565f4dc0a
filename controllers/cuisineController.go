package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

type cuisineInput struct {
	Name        *string `json:"name" binding:"omitempty,notblank,max=255"`
	Description *string `json:"description"`
}

func (h *Controller) GetCuisines(c *gin.Context) {
	var cuisines []models.Cuisine
	if err := h.DB.Order("name ASC").Find(&cuisines).Error; err != nil {
		h.serverError(c, "list cuisines", err)
		return
	}
	for i := range cuisines {
		h.decorateCuisine(&cuisines[i])
	}
	c.JSON(http.StatusOK, cuisines)
}

// GetCuisine returns the cuisine and a page of its published recipes.
func (h *Controller) GetCuisine(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var cuisine models.Cuisine
	if err := h.DB.First(&cuisine, id).Error; err != nil {
		h.lookupError(c, "Cuisine", err)
		return
	}
	h.decorateCuisine(&cuisine)

	var recipes []models.Recipe
	query := h.DB.Model(&models.Recipe{}).
		Scopes(models.Published).
		Where("recipes.cuisine_id = ?", cuisine.ID).
		Preload("User").
		Preload("Category")
	page, err := paginate(query, models.Latest, pageParam(c), perPage, &recipes)
	if err != nil {
		h.serverError(c, "list cuisine recipes", err)
		return
	}
	h.decorateRecipes(recipes)
	c.JSON(http.StatusOK, gin.H{"cuisine": cuisine, "recipes": page})
}

func (h *Controller) CreateCuisine(c *gin.Context) {
	var input cuisineInput
	file, err := bindRequest(c, &input)
	if err != nil {
		bindError(c, err)
		return
	}
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		respondValidation(c, FieldErrors{"name": {"The name field is required."}})
		return
	}

	cuisine := models.Cuisine{Name: strings.TrimSpace(*input.Name)}
	if input.Description != nil {
		cuisine.Description = *input.Description
	}
	if !h.uniqueName(c, &models.Cuisine{}, cuisine.Name, 0) || !h.uniqueSlug(c, &models.Cuisine{}, cuisine.Name, 0) {
		return
	}

	if file != nil {
		key, ok := h.storeImage(c, "cuisines", file)
		if !ok {
			return
		}
		cuisine.Image = &key
	}

	if err := h.DB.Create(&cuisine).Error; err != nil {
		h.deleteFile(c.Request.Context(), cuisine.Image)
		h.serverError(c, "create cuisine", err)
		return
	}
	h.decorateCuisine(&cuisine)
	c.JSON(http.StatusCreated, gin.H{"message": "Cuisine created successfully", "cuisine": cuisine})
}

func (h *Controller) UpdateCuisine(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var cuisine models.Cuisine
	if err := h.DB.First(&cuisine, id).Error; err != nil {
		h.lookupError(c, "Cuisine", err)
		return
	}

	var input cuisineInput
	file, err := bindRequest(c, &input)
	if err != nil {
		bindError(c, err)
		return
	}

	cols := map[string]interface{}{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if !h.uniqueName(c, &models.Cuisine{}, name, cuisine.ID) || !h.uniqueSlug(c, &models.Cuisine{}, name, cuisine.ID) {
			return
		}
		cols["name"] = name
		cols["slug"] = models.Slugify(name)
	}
	if input.Description != nil {
		cols["description"] = *input.Description
	}

	oldImage := cuisine.Image
	var newImage *string
	if file != nil {
		key, ok := h.storeImage(c, "cuisines", file)
		if !ok {
			return
		}
		newImage = &key
		cols["image"] = key
	}

	if len(cols) > 0 {
		if err := h.DB.Model(&cuisine).Updates(cols).Error; err != nil {
			h.deleteFile(c.Request.Context(), newImage)
			h.serverError(c, "update cuisine", err)
			return
		}
	}
	if newImage != nil {
		h.deleteFile(c.Request.Context(), oldImage)
	}
	h.decorateCuisine(&cuisine)
	c.JSON(http.StatusOK, gin.H{"message": "Cuisine updated successfully", "cuisine": cuisine})
}

// DeleteCuisine refuses while recipes, trashed ones included, reference it.
func (h *Controller) DeleteCuisine(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var cuisine models.Cuisine
	if err := h.DB.First(&cuisine, id).Error; err != nil {
		h.lookupError(c, "Cuisine", err)
		return
	}

	var uses int
	if err := h.DB.Unscoped().Model(&models.Recipe{}).Where("cuisine_id = ?", cuisine.ID).Count(&uses).Error; err != nil {
		h.serverError(c, "count cuisine recipes", err)
		return
	}
	if uses > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Cannot delete: Cuisine has associated recipes"})
		return
	}

	if err := h.DB.Delete(&cuisine).Error; err != nil {
		h.serverError(c, "delete cuisine", err)
		return
	}
	h.deleteFile(c.Request.Context(), cuisine.Image)
	h.Log.Info("cuisine deleted", zap.Uint("cuisine_id", cuisine.ID))
	c.Status(http.StatusNoContent)
}
