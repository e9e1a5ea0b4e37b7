package service

import (
	"context"

	"github.com/plateful/backend/internal/provider/spoonacular"
)

// RecipeProvider is the external recipe-information API surface the
// resolver depends on.
type RecipeProvider interface {
	GetRecipeInformation(ctx context.Context, id int64) (*spoonacular.Recipe, error)
}

// RecipeResolver resolves a recipe ID into the canonical recipe shape,
// preferring local rows and falling back to the external provider.
type RecipeResolver interface {
	Resolve(ctx context.Context, recipeID int64) (*NormalizedRecipe, error)
}
