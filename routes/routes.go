package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Kunxl-4568/VirtualKitchen/controllers"
	"github.com/Kunxl-4568/VirtualKitchen/middleware"
	"github.com/Kunxl-4568/VirtualKitchen/models"
)

// Options carries what the router needs beyond the controller.
type Options struct {
	AllowedOrigins []string
	// StorageRoot is served under /storage when images live on local disk.
	StorageRoot string
	AuthLimiter *middleware.RateLimiter
}

// NewRouter builds the engine with the shared middleware and all routes.
func NewRouter(h *controllers.Controller, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Recovery(h.Log))
	router.Use(middleware.RequestLogger(h.Log))
	router.Use(middleware.Metrics(h.Metrics))
	router.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(h.Metrics.Handler()))
	if opts.StorageRoot != "" {
		router.Static("/storage", opts.StorageRoot)
	}

	SetupRoutes(router, h, opts.AuthLimiter)
	return router
}

func SetupRoutes(router *gin.Engine, h *controllers.Controller, limiter *middleware.RateLimiter) {
	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	if limiter != nil {
		auth.Use(limiter.Handler())
	}
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	api.GET("/recipes", h.GetRecipes)
	api.GET("/recipes/:id", h.GetRecipe)
	api.GET("/recipes/:id/pdf", h.RecipePDF)
	api.GET("/ingredients", h.GetIngredients)
	api.GET("/ingredients/:id", h.GetIngredient)
	api.GET("/cuisines", h.GetCuisines)
	api.GET("/cuisines/:id", h.GetCuisine)
	api.GET("/categories", h.GetCategories)
	api.GET("/tags", h.GetTags)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware(h.DB, h.Tokens, h.Log))
	{
		protected.POST("/auth/logout", h.Logout)
		protected.GET("/user", h.CurrentUser)
		protected.GET("/session", h.VerifyAuth)
		protected.GET("/profile/recipes", h.ProfileRecipes)

		protected.POST("/recipes", h.CreateRecipe)
		protected.PUT("/recipes/:id", h.UpdateRecipe)
		// Multipart updates arrive as POST with _method=PUT.
		protected.POST("/recipes/:id", h.UpdateRecipe)
		protected.DELETE("/recipes/:id", h.DeleteRecipe)

		admin := protected.Group("/")
		admin.Use(middleware.RoleMiddleware(models.RoleAdmin))
		{
			admin.PATCH("/recipes/:id/publish", h.PublishRecipe)
			admin.PATCH("/recipes/:id/unpublish", h.UnpublishRecipe)

			admin.POST("/ingredients", h.CreateIngredient)
			admin.PUT("/ingredients/:id", h.UpdateIngredient)
			admin.DELETE("/ingredients/:id", h.DeleteIngredient)

			admin.POST("/cuisines", h.CreateCuisine)
			admin.PUT("/cuisines/:id", h.UpdateCuisine)
			admin.POST("/cuisines/:id", h.UpdateCuisine)
			admin.DELETE("/cuisines/:id", h.DeleteCuisine)

			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.POST("/tags", h.CreateTag)

			admin.POST("/reports", h.GenerateReport)
		}
	}
}
