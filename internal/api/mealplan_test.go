package api_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/models"
)

func createPlan(t *testing.T, env *testEnv, name string) uint {
	t.Helper()
	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/create", map[string]string{"name": name})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeBody(t, w)
	return uint(body["plan_id"].(float64))
}

func TestCreatePlanEndpoint(t *testing.T) {
	env := setupEnv(t)

	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/create", map[string]string{"name": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	planID := createPlan(t, env, "Week 1")
	assert.NotZero(t, planID)
}

func TestAddRecipeWithoutPlanReturnsPlanList(t *testing.T) {
	env := setupEnv(t)
	createPlan(t, env, "Week 1")
	createPlan(t, env, "Week 2")

	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/add", map[string]interface{}{
		"recipe_id": 10,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	plans, ok := body["plans"].([]interface{})
	require.True(t, ok)
	assert.Len(t, plans, 2)
}

func TestAddRecipeEndpoint(t *testing.T) {
	env := setupEnv(t)
	planID := createPlan(t, env, "Week 1")

	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/add", map[string]interface{}{
		"recipe_id":   10,
		"plan_id":     planID,
		"day_of_week": "Monday",
		"meal_type":   "dinner",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// Unknown recipes map to 404.
	w = env.do(t, http.MethodPost, "/api/v1/meal-plan/add", map[string]interface{}{
		"recipe_id": 999,
		"plan_id":   planID,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetProgressEndpoint(t *testing.T) {
	env := setupEnv(t)
	planID := createPlan(t, env, "Week 1")
	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/add", map[string]interface{}{
		"recipe_id": 10,
		"plan_id":   planID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/meal-plan/progress/10", map[string]interface{}{
		"plan_id":  planID,
		"progress": "Almost Done",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPut, "/api/v1/meal-plan/progress/10", map[string]interface{}{
		"plan_id":  planID,
		"progress": models.ProgressCompleted,
	})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRemoveRecipeEndpoint(t *testing.T) {
	env := setupEnv(t)
	planID := createPlan(t, env, "Week 1")
	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/add", map[string]interface{}{
		"recipe_id": 10,
		"plan_id":   planID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// plan_id query parameter is mandatory.
	w = env.do(t, http.MethodDelete, "/api/v1/meal-plan/remove/10", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/meal-plan/remove/10?plan_id=%d", planID), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/meal-plan/remove/10?plan_id=%d", planID), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeletePlanForbiddenForOtherUser(t *testing.T) {
	env := setupEnv(t)

	// A plan owned by someone else entirely.
	other := models.MealPlan{UserID: uuid.New(), Name: "Not yours"}
	require.NoError(t, env.db.Create(&other).Error)

	w := env.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/meal-plan/%d", other.ID), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestClearAndListPlansEndpoint(t *testing.T) {
	env := setupEnv(t)
	planID := createPlan(t, env, "Week 1")
	w := env.do(t, http.MethodPost, "/api/v1/meal-plan/add", map[string]interface{}{
		"recipe_id": 10,
		"plan_id":   planID,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/meal-plan/clear", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/meal-plan", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	plans := body["plans"].([]interface{})
	require.Len(t, plans, 1, "plans survive a clear")
	recipes := plans[0].(map[string]interface{})["recipes"].([]interface{})
	assert.Empty(t, recipes)
}
