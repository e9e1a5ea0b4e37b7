package models

import (
	"time"

	"github.com/google/uuid"
)

type FavoriteRecipe struct {
	ID          uint      `gorm:"primarykey" json:"-"`
	UserID      uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_favorite" json:"user_id"`
	RecipeID    int64     `gorm:"not null;uniqueIndex:idx_user_favorite" json:"recipe_id"`
	FavoritedAt time.Time `gorm:"not null" json:"favorited_at"`
}

func (FavoriteRecipe) TableName() string {
	return "favorite_recipes"
}

// WatchedRecipe records a recipe view. At most three rows are retained
// per user; older rows are pruned on insert.
type WatchedRecipe struct {
	ID       uint      `gorm:"primarykey" json:"-"`
	UserID   uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_user_watched" json:"user_id"`
	RecipeID int64     `gorm:"not null;uniqueIndex:idx_user_watched" json:"recipe_id"`
	ViewedAt time.Time `gorm:"not null" json:"viewed_at"`
}

func (WatchedRecipe) TableName() string {
	return "last_watched_recipes"
}
