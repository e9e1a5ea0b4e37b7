package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/middleware"
)

// Handlers bundles the API handlers the router mounts.
type Handlers struct {
	Auth         *api.AuthHandler
	Profile      *api.ProfileHandler
	Recipes      *api.RecipeHandler
	Family       *api.FamilyHandler
	MealPlans    *api.MealPlanHandler
	Preparations *api.PreparationHandler
	Favorites    *api.FavoritesHandler
}

// SetupRouter configures the application routes.
func SetupRouter(h Handlers, validator middleware.TokenValidator, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// Public auth routes
	h.Auth.RegisterRoutes(v1)

	// Protected routes
	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(validator))
	{
		h.Auth.RegisterProtectedRoutes(protected)
		h.Profile.RegisterRoutes(protected)
		h.Recipes.RegisterRoutes(protected)
		h.Family.RegisterRoutes(protected)
		h.MealPlans.RegisterRoutes(protected)
		h.Preparations.RegisterRoutes(protected)
		h.Favorites.RegisterRoutes(protected)
	}

	return router
}
