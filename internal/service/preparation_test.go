package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/service"
)

func TestStartPreparationInitializesFromRecipe(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	resolver := newFakeResolver(42)
	svc := service.NewPreparationService(db, resolver, testLogger())

	row, err := svc.StartPreparation(context.Background(), userID, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, 4, row.Servings)
	assert.Equal(t, 0, row.CurrentIngredientStep)
	assert.Equal(t, 0, row.CurrentPreparationStep)
	assert.Equal(t, uint(0), row.PlanID)
}

func TestStartPreparationIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42), testLogger())
	ctx := context.Background()

	_, err := svc.StartPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	require.NoError(t, svc.UpdateIngredientStep(ctx, userID, 42, nil, 3))
	_, err = svc.ScaleServings(ctx, userID, 42, 8, nil)
	require.NoError(t, err)

	// Re-entry must not reset cursors or scaled servings.
	row, err := svc.StartPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, row.CurrentIngredientStep)
	assert.Equal(t, 8, row.Servings)
}

func TestPreparationKeysArePerPlan(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42), testLogger())
	ctx := context.Background()
	planID := uint(7)

	_, err := svc.StartPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	_, err = svc.StartPreparation(ctx, userID, 42, &planID)
	require.NoError(t, err)

	require.NoError(t, svc.UpdatePreparationStep(ctx, userID, 42, &planID, 5))

	standalone, err := svc.GetPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, standalone.CurrentPreparationStep)

	inPlan, err := svc.GetPreparation(ctx, userID, 42, &planID)
	require.NoError(t, err)
	assert.Equal(t, 5, inPlan.CurrentPreparationStep)
	assert.Equal(t, planID, inPlan.PlanID)
}

func TestUpdateStepValidation(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42), testLogger())
	ctx := context.Background()

	err := svc.UpdateIngredientStep(ctx, userID, 42, nil, -1)
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	// No row started yet.
	err = svc.UpdateIngredientStep(ctx, userID, 42, nil, 2)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestScaleServings(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42), testLogger())
	ctx := context.Background()

	_, err := svc.StartPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	require.NoError(t, svc.UpdatePreparationStep(ctx, userID, 42, nil, 2))

	factor, err := svc.ScaleServings(ctx, userID, 42, 8, nil)
	require.NoError(t, err)
	assert.InDelta(t, 2.0, factor, 1e-9)

	// Cursors survive scaling; a repeat scale to the same value is 1.0.
	view, err := svc.GetPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, view.Servings)
	assert.Equal(t, 2, view.CurrentPreparationStep)

	factor, err = svc.ScaleServings(ctx, userID, 42, 8, nil)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, factor, 1e-9)
}

func TestScaleServingsValidation(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42), testLogger())
	ctx := context.Background()

	_, err := svc.ScaleServings(ctx, userID, 42, 0, nil)
	assert.ErrorIs(t, err, service.ErrInvalidArgument)

	_, err = svc.ScaleServings(ctx, userID, 42, 4, nil)
	assert.ErrorIs(t, err, service.ErrNotFound)

	// A stored zero has no defined scale factor. The row can only exist
	// through outside writes, but the guard must still hold.
	row := models.RecipePreparation{UserID: userID, RecipeID: 42, Servings: 0}
	require.NoError(t, db.Create(&row).Error)
	_, err = svc.ScaleServings(ctx, userID, 42, 4, nil)
	assert.ErrorIs(t, err, service.ErrInvalidState)
}

func TestGetPreparationNotStarted(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42), testLogger())

	_, err := svc.GetPreparation(context.Background(), userID, 42, nil)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestClearAllRemovesEveryKey(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	otherID := createTestUser(t, db)
	svc := service.NewPreparationService(db, newFakeResolver(42, 100), testLogger())
	ctx := context.Background()
	planID := uint(3)

	_, err := svc.StartPreparation(ctx, userID, 42, nil)
	require.NoError(t, err)
	_, err = svc.StartPreparation(ctx, userID, 100, &planID)
	require.NoError(t, err)
	_, err = svc.StartPreparation(ctx, otherID, 42, nil)
	require.NoError(t, err)

	require.NoError(t, svc.ClearAll(ctx, userID))

	_, err = svc.GetPreparation(ctx, userID, 42, nil)
	assert.ErrorIs(t, err, service.ErrNotFound)
	_, err = svc.GetPreparation(ctx, userID, 100, &planID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	// Other users are untouched.
	_, err = svc.GetPreparation(ctx, otherID, 42, nil)
	require.NoError(t, err)
}
