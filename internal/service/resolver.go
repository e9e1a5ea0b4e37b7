package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/provider/spoonacular"
)

// NormalizedRecipe is the single canonical recipe shape, regardless of
// whether the data came from a local row or the external provider.
type NormalizedRecipe struct {
	RecipeID       int64    `json:"recipe_id"`
	Title          string   `json:"title"`
	Image          string   `json:"image"`
	ReadyInMinutes int      `json:"ready_in_minutes"`
	Servings       int      `json:"servings"`
	Vegetarian     bool     `json:"vegetarian"`
	Vegan          bool     `json:"vegan"`
	GlutenFree     bool     `json:"gluten_free"`
	Ingredients    []string `json:"ingredients"`
	Instructions   []string `json:"instructions"`
	Source         string   `json:"source"`
}

// ResolverService resolves recipe IDs, preferring local storage and
// falling back to the external provider. Resolution is a pure read: it
// never writes cache rows, so it is idempotent and safely retryable.
type ResolverService struct {
	db       *gorm.DB
	provider RecipeProvider
	logger   *zap.Logger
}

// NewResolverService creates a new ResolverService instance
func NewResolverService(db *gorm.DB, provider RecipeProvider, logger *zap.Logger) *ResolverService {
	return &ResolverService{
		db:       db,
		provider: provider,
		logger:   logger,
	}
}

// Resolve returns the normalized recipe for recipeID. It fails with
// ErrNotFound when neither source has the recipe and with
// ErrUpstreamUnavailable when the provider call errors and no local row
// exists.
func (s *ResolverService) Resolve(ctx context.Context, recipeID int64) (*NormalizedRecipe, error) {
	var local models.Recipe
	err := s.db.WithContext(ctx).First(&local, "recipe_id = ?", recipeID).Error
	if err == nil {
		return normalizeLocal(&local), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if s.provider == nil {
		return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
	}

	external, err := s.provider.GetRecipeInformation(ctx, recipeID)
	if err != nil {
		if errors.Is(err, spoonacular.ErrNotFound) {
			return nil, fmt.Errorf("%w: recipe %d", ErrNotFound, recipeID)
		}
		s.logger.Warn("recipe provider call failed",
			zap.Int64("recipe_id", recipeID),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	return normalizeExternal(external), nil
}

func normalizeLocal(r *models.Recipe) *NormalizedRecipe {
	return &NormalizedRecipe{
		RecipeID:       r.RecipeID,
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       normalizeServings(r.Servings),
		Vegetarian:     r.Vegetarian,
		Vegan:          r.Vegan,
		GlutenFree:     r.GlutenFree,
		Ingredients:    append([]string(nil), r.Ingredients...),
		Instructions:   append([]string(nil), r.Instructions...),
		Source:         models.RecipeSourceLocal,
	}
}

func normalizeExternal(r *spoonacular.Recipe) *NormalizedRecipe {
	return &NormalizedRecipe{
		RecipeID:       r.ID,
		Title:          r.Title,
		Image:          r.Image,
		ReadyInMinutes: r.ReadyInMinutes,
		Servings:       normalizeServings(r.Servings),
		Vegetarian:     r.Vegetarian,
		Vegan:          r.Vegan,
		GlutenFree:     r.GlutenFree,
		Ingredients:    normalizeIngredients(r.ExtendedIngredients),
		Instructions:   normalizeInstructions(r),
		Source:         models.RecipeSourceExternal,
	}
}

func normalizeServings(servings int) int {
	if servings < 1 {
		return 1
	}
	return servings
}

func normalizeIngredients(ingredients []spoonacular.Ingredient) []string {
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		text := strings.TrimSpace(ing.Original)
		if text == "" {
			text = strings.TrimSpace(ing.Name)
		}
		if text != "" {
			out = append(out, text)
		}
	}
	return out
}

// normalizeInstructions prefers the provider's analyzed step arrays and
// falls back to splitting the prose instructions field.
func normalizeInstructions(r *spoonacular.Recipe) []string {
	var out []string
	for _, set := range r.AnalyzedInstructions {
		for _, step := range set.Steps {
			if text := strings.TrimSpace(step.Step); text != "" {
				out = append(out, text)
			}
		}
	}
	if len(out) > 0 {
		return out
	}

	for _, line := range strings.Split(r.Instructions, "\n") {
		if text := strings.TrimSpace(line); text != "" {
			out = append(out, text)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}
