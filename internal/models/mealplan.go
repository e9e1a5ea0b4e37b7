package models

import (
	"time"

	"github.com/google/uuid"
)

// Progress states for a recipe inside a meal plan. Transitions are not
// enforced; any state can be set directly.
const (
	ProgressNotStarted = "Not Started"
	ProgressInProgress = "In Progress"
	ProgressCompleted  = "Completed"
)

// ValidProgress reports whether p is one of the three progress states.
func ValidProgress(p string) bool {
	return p == ProgressNotStarted || p == ProgressInProgress || p == ProgressCompleted
}

type MealPlan struct {
	ID        uint      `gorm:"primarykey" json:"plan_id"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// MealPlanRecipe is a recipe membership inside a plan. recipe_order is a
// sort key only; values need not be contiguous.
type MealPlanRecipe struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	PlanID      uint      `gorm:"not null;uniqueIndex:idx_plan_recipe" json:"plan_id"`
	RecipeID    int64     `gorm:"not null;uniqueIndex:idx_plan_recipe" json:"recipe_id"`
	RecipeOrder int       `gorm:"not null;default:0" json:"recipe_order"`
	DayOfWeek   string    `gorm:"size:16" json:"day_of_week"`
	MealType    string    `gorm:"size:16" json:"meal_type"`
	Progress    string    `gorm:"size:16;not null;default:'Not Started'" json:"progress"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (MealPlanRecipe) TableName() string {
	return "meal_plan_recipes"
}
