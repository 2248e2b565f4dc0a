package controllers

import (
	"context"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"go.uber.org/zap"

	"github.com/Kunxl-4568/VirtualKitchen/metrics"
	"github.com/Kunxl-4568/VirtualKitchen/middleware"
	"github.com/Kunxl-4568/VirtualKitchen/models"
	"github.com/Kunxl-4568/VirtualKitchen/storage"
)

const perPage = 10

// Controller holds what the route handlers share.
type Controller struct {
	DB      *gorm.DB
	Storage storage.Store
	Tokens  *middleware.Tokens
	Metrics *metrics.Metrics
	Log     *zap.Logger
}

func New(db *gorm.DB, store storage.Store, tokens *middleware.Tokens, m *metrics.Metrics, log *zap.Logger) *Controller {
	return &Controller{DB: db, Storage: store, Tokens: tokens, Metrics: m, Log: log}
}

func (h *Controller) serverError(c *gin.Context, msg string, err error) {
	h.Log.Error(msg, zap.Error(err), zap.String("path", c.FullPath()))
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Server Error"})
}

// lookupError answers 404 for a missing record and 500 for anything else.
func (h *Controller) lookupError(c *gin.Context, what string, err error) {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": what + " not found"})
		return
	}
	h.serverError(c, "load "+what, err)
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
		return 0, false
	}
	return uint(id), true
}

func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// deleteFile removes a stored upload after the row that referenced it is gone.
// A failure only leaves an orphaned file, so it is logged and not returned.
func (h *Controller) deleteFile(ctx context.Context, key *string) {
	if key == nil || *key == "" {
		return
	}
	if err := h.Storage.Delete(ctx, *key); err != nil && !errors.Is(err, storage.ErrNotFound) {
		h.Log.Warn("delete stored file", zap.String("key", *key), zap.Error(err))
	}
}

func (h *Controller) decorateRecipes(recipes []models.Recipe) {
	for i := range recipes {
		h.decorateRecipe(&recipes[i])
	}
}

func (h *Controller) decorateRecipe(r *models.Recipe) {
	r.ImageURL = storage.URLFor(h.Storage, r.Image)
	if r.Cuisine != nil {
		h.decorateCuisine(r.Cuisine)
	}
}

func (h *Controller) decorateCuisine(cu *models.Cuisine) {
	cu.ImageURL = storage.URLFor(h.Storage, cu.Image)
}

// storeImage validates and saves an upload. It writes the error response
// itself and reports false when it did.
func (h *Controller) storeImage(c *gin.Context, dir string, file *multipart.FileHeader) (string, bool) {
	img, err := storage.ReadImage(file)
	if errors.Is(err, storage.ErrImageTooLarge) || errors.Is(err, storage.ErrImageType) {
		fe := FieldErrors{}
		fe.Add("image", imageMessage(err))
		respondValidation(c, fe)
		return "", false
	}
	if err != nil {
		h.serverError(c, "read upload", err)
		return "", false
	}
	key, err := storage.Save(c.Request.Context(), h.Storage, dir, img)
	if err != nil {
		h.serverError(c, "store upload", err)
		return "", false
	}
	return key, true
}

func imageMessage(err error) string {
	msg := err.Error()
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
