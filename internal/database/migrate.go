package database

import (
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// RunMigrations applies the schema for every entity the service owns.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.FamilyRecipe{},
		&models.MealPlan{},
		&models.MealPlanRecipe{},
		&models.RecipePreparation{},
		&models.FavoriteRecipe{},
		&models.WatchedRecipe{},
	)
}
