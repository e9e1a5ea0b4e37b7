package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
)

// PreparationView joins a progress row with resolved recipe metadata.
type PreparationView struct {
	Recipe                 *NormalizedRecipe `json:"recipe"`
	PlanID                 uint              `json:"plan_id,omitempty"`
	Servings               int               `json:"servings"`
	CurrentIngredientStep  int               `json:"current_ingredient_step"`
	CurrentPreparationStep int               `json:"current_preparation_step"`
}

// PreparationService owns per-(user, recipe, plan) preparation progress:
// step cursors and servings, including scaling math.
type PreparationService struct {
	db       *gorm.DB
	resolver RecipeResolver
	logger   *zap.Logger
}

// NewPreparationService creates a new PreparationService instance
func NewPreparationService(db *gorm.DB, resolver RecipeResolver, logger *zap.Logger) *PreparationService {
	return &PreparationService{
		db:       db,
		resolver: resolver,
		logger:   logger,
	}
}

// keyPlanID maps an optional plan reference to its storage encoding.
// A nil plan is the standalone key, stored as 0 and distinct from every
// concrete plan.
func keyPlanID(planID *uint) uint {
	if planID == nil {
		return 0
	}
	return *planID
}

// StartPreparation lazily creates the progress row for the exact
// (user, recipe, plan) key. Re-entry on an existing key preserves both
// cursors and any scaled servings.
func (s *PreparationService) StartPreparation(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint) (*models.RecipePreparation, error) {
	recipe, err := s.resolver.Resolve(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	row := models.RecipePreparation{
		UserID:   userID,
		RecipeID: recipeID,
		PlanID:   keyPlanID(planID),
		Servings: recipe.Servings,
	}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}, {Name: "plan_id"}},
			DoNothing: true,
		}).
		Create(&row).Error
	if err != nil {
		return nil, err
	}

	return s.progressRow(ctx, userID, recipeID, planID)
}

func (s *PreparationService) progressRow(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint) (*models.RecipePreparation, error) {
	var row models.RecipePreparation
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ? AND plan_id = ?", userID, recipeID, keyPlanID(planID)).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: no preparation for recipe %d", ErrNotFound, recipeID)
		}
		return nil, err
	}
	return &row, nil
}

// UpdateIngredientStep writes the ingredient cursor for the exact key.
func (s *PreparationService) UpdateIngredientStep(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint, step int) error {
	return s.updateCursor(ctx, userID, recipeID, planID, "current_ingredient_step", step)
}

// UpdatePreparationStep writes the instruction cursor for the exact key.
func (s *PreparationService) UpdatePreparationStep(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint, step int) error {
	return s.updateCursor(ctx, userID, recipeID, planID, "current_preparation_step", step)
}

func (s *PreparationService) updateCursor(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint, column string, step int) error {
	if step < 0 {
		return fmt.Errorf("%w: step must be non-negative, got %d", ErrInvalidArgument, step)
	}

	res := s.db.WithContext(ctx).
		Model(&models.RecipePreparation{}).
		Where("user_id = ? AND recipe_id = ? AND plan_id = ?", userID, recipeID, keyPlanID(planID)).
		Update(column, step)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: no preparation for recipe %d", ErrNotFound, recipeID)
	}
	return nil
}

// ScaleServings overwrites the stored servings and returns the scale
// factor relative to the previously stored value. Step cursors are
// untouched and the factor itself is not persisted.
func (s *PreparationService) ScaleServings(ctx context.Context, userID uuid.UUID, recipeID int64, newServings int, planID *uint) (float64, error) {
	if newServings <= 0 {
		return 0, fmt.Errorf("%w: servings must be positive, got %d", ErrInvalidArgument, newServings)
	}

	row, err := s.progressRow(ctx, userID, recipeID, planID)
	if err != nil {
		return 0, err
	}
	if row.Servings == 0 {
		return 0, fmt.Errorf("%w: stored servings is zero", ErrInvalidState)
	}

	factor := float64(newServings) / float64(row.Servings)

	err = s.db.WithContext(ctx).
		Model(&models.RecipePreparation{}).
		Where("id = ?", row.ID).
		Update("servings", newServings).Error
	if err != nil {
		return 0, err
	}
	return factor, nil
}

// GetPreparation returns the merged recipe + progress view for the exact
// key. A missing row is ErrNotFound, distinguishing "never started" from
// an unknown recipe.
func (s *PreparationService) GetPreparation(ctx context.Context, userID uuid.UUID, recipeID int64, planID *uint) (*PreparationView, error) {
	row, err := s.progressRow(ctx, userID, recipeID, planID)
	if err != nil {
		return nil, err
	}

	recipe, err := s.resolver.Resolve(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	return &PreparationView{
		Recipe:                 recipe,
		PlanID:                 row.PlanID,
		Servings:               row.Servings,
		CurrentIngredientStep:  row.CurrentIngredientStep,
		CurrentPreparationStep: row.CurrentPreparationStep,
	}, nil
}

// ClearAll deletes every preparation row of the user, across all plans
// and standalone keys.
func (s *PreparationService) ClearAll(ctx context.Context, userID uuid.UUID) error {
	return s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RecipePreparation{}).Error
}
