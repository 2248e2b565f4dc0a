package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Kunxl-4568/VirtualKitchen/models"
)

type nameInput struct {
	Name string `json:"name" form:"name" binding:"required,notblank,max=255"`
}

func (h *Controller) GetCategories(c *gin.Context) {
	var categories []models.Category
	if err := h.DB.Order("name ASC").Find(&categories).Error; err != nil {
		h.serverError(c, "list categories", err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (h *Controller) CreateCategory(c *gin.Context) {
	var input nameInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	name := strings.TrimSpace(input.Name)
	if !h.uniqueName(c, &models.Category{}, name, 0) || !h.uniqueSlug(c, &models.Category{}, name, 0) {
		return
	}

	category := models.Category{Name: name}
	if err := h.DB.Create(&category).Error; err != nil {
		h.serverError(c, "create category", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category created", "data": category})
}

func (h *Controller) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		h.lookupError(c, "Category", err)
		return
	}

	var input nameInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	name := strings.TrimSpace(input.Name)
	if !h.uniqueName(c, &models.Category{}, name, category.ID) || !h.uniqueSlug(c, &models.Category{}, name, category.ID) {
		return
	}

	err := h.DB.Model(&category).Updates(map[string]interface{}{
		"name": name,
		"slug": models.Slugify(name),
	}).Error
	if err != nil {
		h.serverError(c, "update category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category updated", "data": category})
}

func (h *Controller) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	var category models.Category
	if err := h.DB.First(&category, id).Error; err != nil {
		h.lookupError(c, "Category", err)
		return
	}

	var uses int
	if err := h.DB.Unscoped().Model(&models.Recipe{}).Where("category_id = ?", category.ID).Count(&uses).Error; err != nil {
		h.serverError(c, "count category recipes", err)
		return
	}
	if uses > 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Cannot delete: Category has associated recipes"})
		return
	}

	if err := h.DB.Delete(&category).Error; err != nil {
		h.serverError(c, "delete category", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}

func (h *Controller) GetTags(c *gin.Context) {
	var tags []models.Tag
	if err := h.DB.Order("name ASC").Find(&tags).Error; err != nil {
		h.serverError(c, "list tags", err)
		return
	}
	c.JSON(http.StatusOK, tags)
}

func (h *Controller) CreateTag(c *gin.Context) {
	var input nameInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	name := strings.TrimSpace(input.Name)
	if !h.uniqueName(c, &models.Tag{}, name, 0) || !h.uniqueSlug(c, &models.Tag{}, name, 0) {
		return
	}

	tag := models.Tag{Name: name}
	if err := h.DB.Create(&tag).Error; err != nil {
		h.serverError(c, "create tag", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Tag created", "data": tag})
}
