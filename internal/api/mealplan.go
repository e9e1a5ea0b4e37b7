package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/plateful/backend/internal/service"
)

type MealPlanHandler struct {
	mealPlans *service.MealPlanService
}

func NewMealPlanHandler(mealPlans *service.MealPlanService) *MealPlanHandler {
	return &MealPlanHandler{mealPlans: mealPlans}
}

func (h *MealPlanHandler) RegisterRoutes(router *gin.RouterGroup) {
	plans := router.Group("/meal-plan")
	{
		plans.GET("", h.ListPlans)
		plans.POST("/create", h.CreatePlan)
		plans.POST("/add", h.AddRecipe)
		plans.PUT("/reorder", h.Reorder)
		plans.PUT("/order/:planId", h.BulkReorder)
		plans.PUT("/progress/:recipeId", h.SetProgress)
		plans.DELETE("/remove/:recipeId", h.RemoveRecipe)
		plans.DELETE("/clear", h.ClearPlans)
		plans.DELETE("/:planId", h.DeletePlan)
	}
}

func (h *MealPlanHandler) ListPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	plans, err := h.mealPlans.GetPlansWithRecipes(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans})
}

type createPlanRequest struct {
	Name string `json:"name"`
}

func (h *MealPlanHandler) CreatePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req createPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	plan, err := h.mealPlans.CreatePlan(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Meal plan created",
		"plan_id": plan.ID,
	})
}

type addRecipeRequest struct {
	RecipeID  int64  `json:"recipe_id" binding:"required"`
	PlanID    *uint  `json:"plan_id"`
	DayOfWeek string `json:"day_of_week"`
	MealType  string `json:"meal_type"`
}

// AddRecipe adds a recipe to a plan. Without a plan_id it returns the
// user's plan list for disambiguation instead of guessing.
func (h *MealPlanHandler) AddRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req addRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if req.PlanID == nil {
		plans, err := h.mealPlans.ListPlans(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "plan_id required; choose a plan",
			"plans":   plans,
		})
		return
	}

	err := h.mealPlans.AddRecipeToPlan(c.Request.Context(), userID, *req.PlanID, req.RecipeID, req.DayOfWeek, req.MealType)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Recipe added to meal plan"})
}

type reorderRequest struct {
	PlanID   uint  `json:"plan_id" binding:"required"`
	RecipeID int64 `json:"recipe_id" binding:"required"`
	NewOrder int   `json:"new_order"`
}

func (h *MealPlanHandler) Reorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.mealPlans.Reorder(c.Request.Context(), userID, req.PlanID, req.RecipeID, req.NewOrder)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Order updated"})
}

type bulkReorderRequest struct {
	Updates []service.EntryPlacement `json:"updates"`
}

func (h *MealPlanHandler) BulkReorder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c, "planId")
	if !ok {
		return
	}

	var req bulkReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.mealPlans.BulkReorder(c.Request.Context(), userID, planID, req.Updates)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal plan updated successfully"})
}

type setProgressRequest struct {
	PlanID   uint   `json:"plan_id" binding:"required"`
	Progress string `json:"progress" binding:"required"`
}

func (h *MealPlanHandler) SetProgress(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "recipeId")
	if !ok {
		return
	}

	var req setProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	err := h.mealPlans.SetProgress(c.Request.Context(), userID, req.PlanID, recipeID, req.Progress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Progress updated"})
}

func (h *MealPlanHandler) RemoveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "recipeId")
	if !ok {
		return
	}

	planID, err := strconv.ParseUint(c.Query("plan_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "plan_id query parameter is required"})
		return
	}

	err = h.mealPlans.RemoveRecipe(c.Request.Context(), userID, uint(planID), recipeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Recipe removed from meal plan"})
}

func (h *MealPlanHandler) ClearPlans(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.mealPlans.ClearPlans(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal plans cleared"})
}

func (h *MealPlanHandler) DeletePlan(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	planID, ok := planIDParam(c, "planId")
	if !ok {
		return
	}

	if err := h.mealPlans.DeletePlan(c.Request.Context(), userID, planID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Meal plan deleted"})
}
