package models

import (
	"time"

	"github.com/google/uuid"
)

// FamilyRecipe is a handed-down recipe with its own ID space, separate
// from the resolver's local/external recipes. Instructions stay as prose,
// the way they were written down.
type FamilyRecipe struct {
	ID           uint             `gorm:"primarykey" json:"family_recipe_id"`
	CreatedBy    uuid.UUID        `gorm:"type:varchar(36);not null;index" json:"created_by"`
	Title        string           `gorm:"size:255;not null" json:"title"`
	FamilyMember string           `gorm:"size:100" json:"family_member,omitempty"`
	Occasion     string           `gorm:"size:100" json:"occasion,omitempty"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions string           `gorm:"type:text;not null" json:"instructions"`
	Images       JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"images"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

func (FamilyRecipe) TableName() string {
	return "family_recipes"
}
