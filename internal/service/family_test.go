package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/service"
)

func validFamilyInput() service.FamilyRecipeInput {
	return service.FamilyRecipeInput{
		Title:        "Grandma's Kubbeh",
		FamilyMember: "Grandma",
		Occasion:     "Passover",
		Ingredients:  []string{"bulgur", "ground beef"},
		Instructions: "Knead the bulgur, fill, and simmer in broth.",
		Images:       []string{"https://example.com/kubbeh.jpg"},
	}
}

func TestCreateFamilyRecipeValidation(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewFamilyService(db)
	ctx := context.Background()

	for _, input := range []service.FamilyRecipeInput{
		{Ingredients: []string{"x"}, Instructions: "y"},
		{Title: "t", Instructions: "y"},
		{Title: "t", Ingredients: []string{"x"}},
	} {
		_, err := svc.CreateFamilyRecipe(ctx, userID, input)
		assert.ErrorIs(t, err, service.ErrInvalidArgument)
	}

	recipe, err := svc.CreateFamilyRecipe(ctx, userID, validFamilyInput())
	require.NoError(t, err)
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, "Grandma", recipe.FamilyMember)
}

func TestFamilyRecipesArePrivate(t *testing.T) {
	db := setupTestDB(t)
	owner := createTestUser(t, db)
	intruder := createTestUser(t, db)
	svc := service.NewFamilyService(db)
	ctx := context.Background()

	recipe, err := svc.CreateFamilyRecipe(ctx, owner, validFamilyInput())
	require.NoError(t, err)

	_, err = svc.GetFamilyRecipe(ctx, intruder, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
	err = svc.UpdateFamilyRecipe(ctx, intruder, recipe.ID, validFamilyInput())
	assert.ErrorIs(t, err, service.ErrNotFound)
	err = svc.DeleteFamilyRecipe(ctx, intruder, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)

	recipes, err := svc.ListFamilyRecipes(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, recipes)
}

func TestUpdateFamilyRecipe(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewFamilyService(db)
	ctx := context.Background()

	recipe, err := svc.CreateFamilyRecipe(ctx, userID, validFamilyInput())
	require.NoError(t, err)

	update := validFamilyInput()
	update.Title = "Aunt Sara's Kubbeh"
	update.Occasion = "Shabbat"
	require.NoError(t, svc.UpdateFamilyRecipe(ctx, userID, recipe.ID, update))

	got, err := svc.GetFamilyRecipe(ctx, userID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, "Aunt Sara's Kubbeh", got.Title)
	assert.Equal(t, "Shabbat", got.Occasion)

	err = svc.UpdateFamilyRecipe(ctx, userID, 9999, update)
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestDeleteFamilyRecipe(t *testing.T) {
	db := setupTestDB(t)
	userID := createTestUser(t, db)
	svc := service.NewFamilyService(db)
	ctx := context.Background()

	recipe, err := svc.CreateFamilyRecipe(ctx, userID, validFamilyInput())
	require.NoError(t, err)

	require.NoError(t, svc.DeleteFamilyRecipe(ctx, userID, recipe.ID))
	err = svc.DeleteFamilyRecipe(ctx, userID, recipe.ID)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
