package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
)

// EntryPlacement is one row of a bulk day/meal-slot update.
type EntryPlacement struct {
	RecipeID  int64  `json:"recipe_id"`
	DayOfWeek string `json:"day_of_week"`
	MealType  string `json:"meal_type"`
}

// PlanRecipeView is a plan membership merged with resolved recipe
// metadata and any preparation progress for the same (user, recipe, plan).
type PlanRecipeView struct {
	RecipeID    int64                     `json:"recipe_id"`
	RecipeOrder int                       `json:"recipe_order"`
	DayOfWeek   string                    `json:"day_of_week,omitempty"`
	MealType    string                    `json:"meal_type,omitempty"`
	Progress    string                    `json:"progress"`
	Recipe      *NormalizedRecipe         `json:"recipe,omitempty"`
	Preparation *models.RecipePreparation `json:"preparation,omitempty"`
}

// PlanWithRecipes is a meal plan with its resolved memberships.
type PlanWithRecipes struct {
	models.MealPlan
	Recipes []PlanRecipeView `json:"recipes"`
}

// MealPlanService owns meal plans and their recipe memberships.
type MealPlanService struct {
	db       *gorm.DB
	resolver RecipeResolver
	logger   *zap.Logger
}

// NewMealPlanService creates a new MealPlanService instance
func NewMealPlanService(db *gorm.DB, resolver RecipeResolver, logger *zap.Logger) *MealPlanService {
	return &MealPlanService{
		db:       db,
		resolver: resolver,
		logger:   logger,
	}
}

// CreatePlan creates a named plan for the user.
func (s *MealPlanService) CreatePlan(ctx context.Context, userID uuid.UUID, name string) (*models.MealPlan, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: plan name is required", ErrInvalidArgument)
	}

	plan := models.MealPlan{
		UserID: userID,
		Name:   strings.TrimSpace(name),
	}
	if err := s.db.WithContext(ctx).Create(&plan).Error; err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListPlans returns the user's plans in creation order.
func (s *MealPlanService) ListPlans(ctx context.Context, userID uuid.UUID) ([]models.MealPlan, error) {
	var plans []models.MealPlan
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&plans).Error
	if err != nil {
		return nil, err
	}
	return plans, nil
}

// ownedPlan loads a plan and checks ownership. Mismatches are reported as
// ErrNotFound so plan existence is not leaked to other users.
func (s *MealPlanService) ownedPlan(ctx context.Context, userID uuid.UUID, planID uint) (*models.MealPlan, error) {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: plan %d", ErrNotFound, planID)
		}
		return nil, err
	}
	if plan.UserID != userID {
		return nil, fmt.Errorf("%w: plan %d", ErrNotFound, planID)
	}
	return &plan, nil
}

// AddRecipeToPlan validates that the plan exists and the recipe is
// resolvable, then upserts the membership. Re-adding an existing recipe
// updates its day/meal slot instead of erroring.
func (s *MealPlanService) AddRecipeToPlan(ctx context.Context, userID uuid.UUID, planID uint, recipeID int64, dayOfWeek, mealType string) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}
	if _, err := s.resolver.Resolve(ctx, recipeID); err != nil {
		return err
	}

	var nextOrder int
	err := s.db.WithContext(ctx).
		Model(&models.MealPlanRecipe{}).
		Where("plan_id = ?", planID).
		Select("COALESCE(MAX(recipe_order), 0) + 1").
		Scan(&nextOrder).Error
	if err != nil {
		return err
	}

	entry := models.MealPlanRecipe{
		PlanID:      planID,
		RecipeID:    recipeID,
		RecipeOrder: nextOrder,
		DayOfWeek:   dayOfWeek,
		MealType:    mealType,
		Progress:    models.ProgressNotStarted,
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "plan_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"day_of_week", "meal_type", "updated_at"}),
		}).
		Create(&entry).Error
}

// Reorder sets the entry's sort key. Sibling entries are not renumbered.
func (s *MealPlanService) Reorder(ctx context.Context, userID uuid.UUID, planID uint, recipeID int64, newOrder int) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&models.MealPlanRecipe{}).
		Where("plan_id = ? AND recipe_id = ?", planID, recipeID).
		Update("recipe_order", newOrder)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %d not in plan %d", ErrNotFound, recipeID, planID)
	}
	return nil
}

// BulkReorder applies day/meal-slot placements in one pass. Invalid or
// unknown rows are skipped; a single bad row never aborts the batch.
func (s *MealPlanService) BulkReorder(ctx context.Context, userID uuid.UUID, planID uint, updates []EntryPlacement) error {
	if len(updates) == 0 {
		return fmt.Errorf("%w: updates are required", ErrInvalidArgument)
	}
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}

	for _, u := range updates {
		if u.RecipeID == 0 || u.DayOfWeek == "" || u.MealType == "" {
			continue
		}
		res := s.db.WithContext(ctx).
			Model(&models.MealPlanRecipe{}).
			Where("plan_id = ? AND recipe_id = ?", planID, u.RecipeID).
			Updates(map[string]interface{}{
				"day_of_week": u.DayOfWeek,
				"meal_type":   u.MealType,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			s.logger.Warn("bulk reorder skipped unknown recipe",
				zap.Uint("plan_id", planID),
				zap.Int64("recipe_id", u.RecipeID))
		}
	}
	return nil
}

// RemoveRecipe deletes a membership row.
func (s *MealPlanService) RemoveRecipe(ctx context.Context, userID uuid.UUID, planID uint, recipeID int64) error {
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Where("plan_id = ? AND recipe_id = ?", planID, recipeID).
		Delete(&models.MealPlanRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %d not in plan %d", ErrNotFound, recipeID, planID)
	}
	return nil
}

// ClearPlans removes every membership row from all of the user's plans.
// The plans themselves survive.
func (s *MealPlanService) ClearPlans(ctx context.Context, userID uuid.UUID) error {
	planIDs := s.db.WithContext(ctx).Model(&models.MealPlan{}).
		Select("id").
		Where("user_id = ?", userID)
	return s.db.WithContext(ctx).
		Where("plan_id IN (?)", planIDs).
		Delete(&models.MealPlanRecipe{}).Error
}

// DeletePlan removes a plan and cascades its memberships. Unlike the
// other operations, an ownership mismatch here is reported as Forbidden.
func (s *MealPlanService) DeletePlan(ctx context.Context, userID uuid.UUID, planID uint) error {
	var plan models.MealPlan
	if err := s.db.WithContext(ctx).First(&plan, planID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: plan %d", ErrNotFound, planID)
		}
		return err
	}
	if plan.UserID != userID {
		return fmt.Errorf("%w: plan %d belongs to another user", ErrForbidden, planID)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("plan_id = ?", planID).Delete(&models.MealPlanRecipe{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MealPlan{}, planID).Error
	})
}

// SetProgress sets the membership's progress state. Any of the three
// states can be set directly; transitions are not enforced.
func (s *MealPlanService) SetProgress(ctx context.Context, userID uuid.UUID, planID uint, recipeID int64, progress string) error {
	if !models.ValidProgress(progress) {
		return fmt.Errorf("%w: invalid progress value %q", ErrInvalidArgument, progress)
	}
	if _, err := s.ownedPlan(ctx, userID, planID); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&models.MealPlanRecipe{}).
		Where("plan_id = ? AND recipe_id = ?", planID, recipeID).
		Update("progress", progress)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %d not in plan %d", ErrNotFound, recipeID, planID)
	}
	return nil
}

// GetPlansWithRecipes returns every plan of the user with resolved recipe
// summaries and any preparation progress merged in. A recipe that cannot
// be resolved keeps its membership row but carries no metadata.
func (s *MealPlanService) GetPlansWithRecipes(ctx context.Context, userID uuid.UUID) ([]PlanWithRecipes, error) {
	plans, err := s.ListPlans(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]PlanWithRecipes, 0, len(plans))
	for _, plan := range plans {
		view, err := s.planView(ctx, userID, plan)
		if err != nil {
			return nil, err
		}
		out = append(out, *view)
	}
	return out, nil
}

// GetPlanWithRecipes returns a single owned plan with resolved recipes.
func (s *MealPlanService) GetPlanWithRecipes(ctx context.Context, userID uuid.UUID, planID uint) (*PlanWithRecipes, error) {
	plan, err := s.ownedPlan(ctx, userID, planID)
	if err != nil {
		return nil, err
	}
	return s.planView(ctx, userID, *plan)
}

func (s *MealPlanService) planView(ctx context.Context, userID uuid.UUID, plan models.MealPlan) (*PlanWithRecipes, error) {
	var entries []models.MealPlanRecipe
	err := s.db.WithContext(ctx).
		Where("plan_id = ?", plan.ID).
		Order("recipe_order ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}

	var progress []models.RecipePreparation
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND plan_id = ?", userID, plan.ID).
		Find(&progress).Error
	if err != nil {
		return nil, err
	}
	progressByRecipe := make(map[int64]*models.RecipePreparation, len(progress))
	for i := range progress {
		progressByRecipe[progress[i].RecipeID] = &progress[i]
	}

	view := PlanWithRecipes{
		MealPlan: plan,
		Recipes:  make([]PlanRecipeView, 0, len(entries)),
	}
	for _, entry := range entries {
		rv := PlanRecipeView{
			RecipeID:    entry.RecipeID,
			RecipeOrder: entry.RecipeOrder,
			DayOfWeek:   entry.DayOfWeek,
			MealType:    entry.MealType,
			Progress:    entry.Progress,
			Preparation: progressByRecipe[entry.RecipeID],
		}
		recipe, err := s.resolver.Resolve(ctx, entry.RecipeID)
		if err != nil {
			s.logger.Warn("failed to resolve plan recipe",
				zap.Uint("plan_id", plan.ID),
				zap.Int64("recipe_id", entry.RecipeID),
				zap.Error(err))
		} else {
			rv.Recipe = recipe
		}
		view.Recipes = append(view.Recipes, rv)
	}
	return &view, nil
}
