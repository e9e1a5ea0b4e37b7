package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// CreateRecipeInput is the payload for creating a local recipe.
type CreateRecipeInput struct {
	Title          string   `json:"title"`
	Image          string   `json:"image"`
	ReadyInMinutes int      `json:"ready_in_minutes"`
	Vegetarian     bool     `json:"vegetarian"`
	Vegan          bool     `json:"vegan"`
	GlutenFree     bool     `json:"gluten_free"`
	Servings       int      `json:"servings"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
}

// RecipeService owns locally stored recipes. Local recipe IDs share the
// provider's ID space, so they are generated from the creation timestamp
// rather than an autoincrement sequence.
type RecipeService struct {
	db *gorm.DB
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe stores a new local recipe owned by the user.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, input CreateRecipeInput) (*models.Recipe, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidArgument)
	}
	servings := input.Servings
	if servings < 1 {
		servings = 1
	}

	recipe := models.Recipe{
		RecipeID:       time.Now().UnixMilli(),
		UserID:         userID,
		Title:          strings.TrimSpace(input.Title),
		Image:          input.Image,
		ReadyInMinutes: input.ReadyInMinutes,
		Vegetarian:     input.Vegetarian,
		Vegan:          input.Vegan,
		GlutenFree:     input.GlutenFree,
		Servings:       servings,
		Ingredients:    models.JSONBStringArray(input.Ingredients),
		Instructions:   models.JSONBStringArray(input.Instructions),
		Source:         models.RecipeSourceLocal,
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListRecipes returns the user's own local recipes.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND source = ?", userID, models.RecipeSourceLocal).
		Order("created_at DESC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// SetImage attaches an image URL to a local recipe the user owns.
func (s *RecipeService) SetImage(ctx context.Context, userID uuid.UUID, recipeID int64, imageURL string) error {
	res := s.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Where("recipe_id = ? AND user_id = ? AND source = ?", recipeID, userID, models.RecipeSourceLocal).
		Update("image", imageURL)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
	}
	return nil
}

// GetLocalRecipe returns a local recipe row by ID.
func (s *RecipeService) GetLocalRecipe(ctx context.Context, recipeID int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).First(&recipe, "recipe_id = ?", recipeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
		}
		return nil, err
	}
	return &recipe, nil
}
