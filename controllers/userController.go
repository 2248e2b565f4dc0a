package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"golang.org/x/crypto/bcrypt"

	"github.com/Kunxl-4568/VirtualKitchen/middleware"
	"github.com/Kunxl-4568/VirtualKitchen/models"
)

type registerInput struct {
	Name                 string `json:"name" form:"name" binding:"required,notblank,max=55"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=8,password"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"required,eqfield=Password"`
}

type Credentials struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a plain user account and returns it with a fresh token.
func (h *Controller) Register(c *gin.Context) {
	var input registerInput
	if err := c.ShouldBind(&input); err != nil {
		bindError(c, err)
		return
	}
	input.Email = normalizeEmail(input.Email)

	var taken int
	if err := h.DB.Model(&models.User{}).Where("email = ?", input.Email).Count(&taken).Error; err != nil {
		h.serverError(c, "check email", err)
		return
	}
	if taken > 0 {
		fe := FieldErrors{}
		fe.Add("email", "The email has already been taken.")
		respondValidation(c, fe)
		return
	}

	hashed, err := HashPassword(input.Password)
	if err != nil {
		h.serverError(c, "hash password", err)
		return
	}

	user := models.User{
		Name:     strings.TrimSpace(input.Name),
		Email:    input.Email,
		Password: hashed,
		Role:     models.RoleUser,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		h.serverError(c, "create user", err)
		return
	}

	token, err := h.Tokens.Issue(&user)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}
	h.setTokenCookie(c, token)

	c.JSON(http.StatusCreated, gin.H{"user": user, "token": token})
}

func (h *Controller) Login(c *gin.Context) {
	var creds Credentials
	if err := c.ShouldBind(&creds); err != nil {
		bindError(c, err)
		return
	}

	var user models.User
	err := h.DB.Where("email = ?", normalizeEmail(creds.Email)).First(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		h.serverError(c, "load user", err)
		return
	}
	if err != nil || !CheckPasswordHash(creds.Password, user.Password) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"message": "Provided email or password is incorrect"})
		return
	}

	token, err := h.Tokens.Issue(&user)
	if err != nil {
		h.serverError(c, "issue token", err)
		return
	}
	h.setTokenCookie(c, token)

	c.JSON(http.StatusOK, gin.H{"user": user, "token": token})
}

// Logout revokes the token used for this request.
func (h *Controller) Logout(c *gin.Context) {
	if err := middleware.Revoke(h.DB, middleware.CurrentClaims(c)); err != nil {
		h.serverError(c, "revoke token", err)
		return
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", "", -1, "/", "", true, true)
	c.Status(http.StatusNoContent)
}

func (h *Controller) CurrentUser(c *gin.Context) {
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// ProfileRecipes lists every recipe the caller wrote, drafts included.
func (h *Controller) ProfileRecipes(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var recipes []models.Recipe
	err := h.DB.Where("recipes.user_id = ?", user.ID).
		Preload("Category").
		Preload("Cuisine").
		Scopes(models.Latest).
		Find(&recipes).Error
	if err != nil {
		h.serverError(c, "list profile recipes", err)
		return
	}
	h.decorateRecipes(recipes)
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Controller) setTokenCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("token", token, int(h.Tokens.TTL().Seconds()), "/", "", true, true)
}
