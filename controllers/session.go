package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Kunxl-4568/VirtualKitchen/middleware"
)

// VerifyAuth lets the frontend check a stored token without loading data.
func (h *Controller) VerifyAuth(c *gin.Context) {
	user := middleware.CurrentUser(c)
	claims := middleware.CurrentClaims(c)

	var expiresIn int64
	if claims != nil && claims.ExpiresAt != nil {
		expiresIn = int64(time.Until(claims.ExpiresAt.Time).Seconds())
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":    user.ID,
		"email":      user.Email,
		"role":       user.Role,
		"expires_in": expiresIn,
	})
}
