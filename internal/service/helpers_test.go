package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.FamilyRecipe{},
		&models.MealPlan{},
		&models.MealPlanRecipe{},
		&models.RecipePreparation{},
		&models.FavoriteRecipe{},
		&models.WatchedRecipe{},
	)
	require.NoError(t, err)
	return db
}

// fakeResolver serves canned recipes keyed by ID; unknown IDs resolve to
// ErrNotFound.
type fakeResolver struct {
	recipes map[int64]*service.NormalizedRecipe
}

func (f *fakeResolver) Resolve(_ context.Context, recipeID int64) (*service.NormalizedRecipe, error) {
	if r, ok := f.recipes[recipeID]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("%w: recipe %d", service.ErrNotFound, recipeID)
}

func newFakeResolver(ids ...int64) *fakeResolver {
	f := &fakeResolver{recipes: make(map[int64]*service.NormalizedRecipe)}
	for _, id := range ids {
		f.recipes[id] = &service.NormalizedRecipe{
			RecipeID:     id,
			Title:        fmt.Sprintf("Recipe %d", id),
			Servings:     4,
			Ingredients:  []string{"1 cup flour", "2 eggs"},
			Instructions: []string{"Mix", "Bake"},
			Source:       models.RecipeSourceExternal,
		}
	}
	return f
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func createTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	user := models.User{
		Username:     "testuser-" + uuid.New().String()[:8],
		Email:        uuid.New().String()[:8] + "@example.com",
		PasswordHash: "hashed",
	}
	require.NoError(t, db.Create(&user).Error)
	return user.ID
}
