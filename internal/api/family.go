package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

type FamilyHandler struct {
	family *service.FamilyService
}

func NewFamilyHandler(family *service.FamilyService) *FamilyHandler {
	return &FamilyHandler{family: family}
}

func (h *FamilyHandler) RegisterRoutes(router *gin.RouterGroup) {
	family := router.Group("/family")
	{
		family.GET("", h.ListFamilyRecipes)
		family.GET("/:recipeId", h.GetFamilyRecipe)
		family.POST("", h.CreateFamilyRecipe)
		family.PUT("/:recipeId", h.UpdateFamilyRecipe)
		family.DELETE("/:recipeId", h.DeleteFamilyRecipe)
	}
}

func familyRecipeIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("recipeId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid family recipe id"})
		return 0, false
	}
	return uint(id), true
}

func (h *FamilyHandler) ListFamilyRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	recipes, err := h.family.ListFamilyRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *FamilyHandler) GetFamilyRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := familyRecipeIDParam(c)
	if !ok {
		return
	}

	recipe, err := h.family.GetFamilyRecipe(c.Request.Context(), userID, recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *FamilyHandler) CreateFamilyRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input service.FamilyRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.family.CreateFamilyRecipe(c.Request.Context(), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *FamilyHandler) UpdateFamilyRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := familyRecipeIDParam(c)
	if !ok {
		return
	}

	var input service.FamilyRecipeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.family.UpdateFamilyRecipe(c.Request.Context(), userID, recipeID, input); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Family recipe updated"})
}

func (h *FamilyHandler) DeleteFamilyRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := familyRecipeIDParam(c)
	if !ok {
		return
	}

	if err := h.family.DeleteFamilyRecipe(c.Request.Context(), userID, recipeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Family recipe deleted"})
}
