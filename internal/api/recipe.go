package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

// maxImageBytes caps uploaded recipe images.
const maxImageBytes = 5 << 20

type RecipeHandler struct {
	recipes  *service.RecipeService
	resolver service.RecipeResolver
	images   *service.ImageService
}

func NewRecipeHandler(recipes *service.RecipeService, resolver service.RecipeResolver, images *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipes:  recipes,
		resolver: resolver,
		images:   images,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.POST("", h.CreateRecipe)
		recipes.PUT("/:id/image", h.UploadImage)
	}
}

// ListRecipes returns the caller's own local recipes.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.recipes.ListRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe resolves any recipe ID, local or external.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	if _, ok := currentUserID(c); !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "id")
	if !ok {
		return
	}

	recipe, err := h.resolver.Resolve(c.Request.Context(), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.CreateRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipes.CreateRecipe(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// UploadImage stores a multipart image for a local recipe and records its
// public URL.
func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "id")
	if !ok {
		return
	}
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
		return
	}
	if len(data) > maxImageBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image exceeds size limit"})
		return
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/png"
	}

	url, err := h.images.UploadRecipeImage(c.Request.Context(), data, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipes.SetImage(c.Request.Context(), userID, recipeID, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
