package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/api"
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

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
			RecipeID: id,
			Title:    fmt.Sprintf("Recipe %d", id),
			Servings: 4,
			Source:   models.RecipeSourceExternal,
		}
	}
	return f
}

type testEnv struct {
	db       *gorm.DB
	router   *gin.Engine
	userID   uuid.UUID
	resolver *fakeResolver
}

// setupEnv builds a router with every protected handler mounted behind a
// stub that injects the test user, mirroring the auth middleware.
func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Recipe{},
		&models.FamilyRecipe{},
		&models.MealPlan{},
		&models.MealPlanRecipe{},
		&models.RecipePreparation{},
		&models.FavoriteRecipe{},
		&models.WatchedRecipe{},
	))

	user := models.User{Username: "tester", Email: "tester@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)

	resolver := newFakeResolver(10, 20, 42)
	logger := zap.NewNop()

	router := gin.New()
	group := router.Group("/api/v1")
	group.Use(func(c *gin.Context) {
		c.Set("user_id", user.ID)
		c.Next()
	})

	api.NewMealPlanHandler(service.NewMealPlanService(db, resolver, logger)).RegisterRoutes(group)
	api.NewPreparationHandler(service.NewPreparationService(db, resolver, logger)).RegisterRoutes(group)
	api.NewFavoritesHandler(service.NewFavoritesService(db, resolver, logger)).RegisterRoutes(group)
	api.NewRecipeHandler(service.NewRecipeService(db), resolver, nil).RegisterRoutes(group)
	api.NewFamilyHandler(service.NewFamilyService(db)).RegisterRoutes(group)
	api.NewProfileHandler(service.NewProfileService(db)).RegisterRoutes(group)

	return &testEnv{db: db, router: router, userID: user.ID, resolver: resolver}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
