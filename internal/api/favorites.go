package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

type FavoritesHandler struct {
	favorites *service.FavoritesService
}

func NewFavoritesHandler(favorites *service.FavoritesService) *FavoritesHandler {
	return &FavoritesHandler{favorites: favorites}
}

func (h *FavoritesHandler) RegisterRoutes(router *gin.RouterGroup) {
	favs := router.Group("/favorites")
	{
		favs.GET("", h.ListFavorites)
		favs.POST("", h.AddFavorite)
		favs.DELETE("", h.RemoveFavorite)
	}

	watched := router.Group("/watched")
	{
		watched.GET("", h.ListLastWatched)
		watched.POST("", h.MarkWatched)
	}
}

type favoriteRequest struct {
	RecipeID int64 `json:"recipe_id" binding:"required"`
}

func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	favorites, err := h.favorites.ListFavorites(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, favorites)
}

func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.favorites.AddFavorite(c.Request.Context(), userID, req.RecipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe added to favorites"})
}

func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.favorites.RemoveFavorite(c.Request.Context(), userID, req.RecipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from favorites"})
}

func (h *FavoritesHandler) ListLastWatched(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.favorites.ListLastWatched(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *FavoritesHandler) MarkWatched(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req favoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.favorites.MarkWatched(c.Request.Context(), userID, req.RecipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe marked as watched"})
}
