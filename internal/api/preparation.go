package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/plateful/backend/internal/service"
)

type PreparationHandler struct {
	preparations *service.PreparationService
}

func NewPreparationHandler(preparations *service.PreparationService) *PreparationHandler {
	return &PreparationHandler{preparations: preparations}
}

func (h *PreparationHandler) RegisterRoutes(router *gin.RouterGroup) {
	prep := router.Group("/prepare-recipe")
	{
		prep.POST("/:recipeId", h.Start)
		prep.GET("/:recipeId", h.Get)
		prep.PUT("/:recipeId/preparation-step", h.UpdatePreparationStep)
		prep.PUT("/:recipeId/ingredient-step", h.UpdateIngredientStep)
		prep.PUT("/:recipeId/servings", h.ScaleServings)
		prep.DELETE("/progress", h.ClearAll)
	}
}

type startPreparationRequest struct {
	PlanID *uint `json:"plan_id"`
}

func (h *PreparationHandler) Start(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "recipeId")
	if !ok {
		return
	}

	var req startPreparationRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	row, err := h.preparations.StartPreparation(c.Request.Context(), userID, recipeID, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":     "Recipe added to preparation tracking",
		"preparation": row,
	})
}

// queryPlanID reads the optional plan_id query parameter.
func queryPlanID(c *gin.Context) (*uint, bool) {
	raw := c.Query("plan_id")
	if raw == "" {
		return nil, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid plan id"})
		return nil, false
	}
	planID := uint(id)
	return &planID, true
}

func (h *PreparationHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "recipeId")
	if !ok {
		return
	}
	planID, ok := queryPlanID(c)
	if !ok {
		return
	}

	view, err := h.preparations.GetPreparation(c.Request.Context(), userID, recipeID, planID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, view)
}

type updateStepRequest struct {
	Step   *int  `json:"step"`
	PlanID *uint `json:"plan_id"`
}

type stepUpdateFunc func(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint, step int) error

func (h *PreparationHandler) UpdatePreparationStep(c *gin.Context) {
	h.updateStep(c, h.preparations.UpdatePreparationStep)
}

func (h *PreparationHandler) UpdateIngredientStep(c *gin.Context) {
	h.updateStep(c, h.preparations.UpdateIngredientStep)
}

func (h *PreparationHandler) updateStep(c *gin.Context, update stepUpdateFunc) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "recipeId")
	if !ok {
		return
	}

	var req updateStepRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Step == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid step number"})
		return
	}

	if err := update(c.Request.Context(), userID, recipeID, req.PlanID, *req.Step); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Step updated successfully"})
}

type scaleServingsRequest struct {
	Servings int   `json:"servings"`
	PlanID   *uint `json:"plan_id"`
}

func (h *PreparationHandler) ScaleServings(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	recipeID, ok := recipeIDParam(c, "recipeId")
	if !ok {
		return
	}

	var req scaleServingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	factor, err := h.preparations.ScaleServings(c.Request.Context(), userID, recipeID, req.Servings, req.PlanID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Servings scaled successfully",
		"servings":     req.Servings,
		"scale_factor": factor,
	})
}

func (h *PreparationHandler) ClearAll(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.preparations.ClearAll(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Preparation data cleared"})
}
