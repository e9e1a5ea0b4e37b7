package models

import (
	"time"

	"github.com/google/uuid"
)

// RecipePreparation tracks a user's walk-through of a recipe's steps.
// PlanID 0 encodes a standalone preparation (not tied to any plan) so the
// composite unique index holds the at-most-one-row invariant on every
// supported database.
type RecipePreparation struct {
	ID                     uint      `gorm:"primarykey" json:"-"`
	UserID                 uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_recipe_plan" json:"user_id"`
	RecipeID               int64     `gorm:"not null;uniqueIndex:idx_user_recipe_plan" json:"recipe_id"`
	PlanID                 uint      `gorm:"not null;default:0;uniqueIndex:idx_user_recipe_plan" json:"plan_id"`
	Servings               int       `gorm:"not null" json:"servings"`
	CurrentIngredientStep  int       `gorm:"not null;default:0" json:"current_ingredient_step"`
	CurrentPreparationStep int       `gorm:"not null;default:0" json:"current_preparation_step"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

func (RecipePreparation) TableName() string {
	return "recipe_progress"
}
