// Package spoonacular is a thin client for the Spoonacular
// recipe-information API. It exposes the provider's wire shapes;
// normalization into the service's canonical recipe form happens in the
// resolver.
package spoonacular

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound indicates the provider has no recipe with the requested ID.
var ErrNotFound = errors.New("spoonacular: recipe not found")

// Ingredient is one entry of extendedIngredients.
type Ingredient struct {
	Name     string `json:"name"`
	Original string `json:"original"`
}

// InstructionStep is a single step of an analyzed instruction set.
type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// InstructionSet groups analyzed steps (one set per sub-recipe).
type InstructionSet struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// Recipe mirrors the provider's /information response.
type Recipe struct {
	ID                   int64            `json:"id"`
	Title                string           `json:"title"`
	Image                string           `json:"image"`
	ReadyInMinutes       int              `json:"readyInMinutes"`
	Servings             int              `json:"servings"`
	Vegetarian           bool             `json:"vegetarian"`
	Vegan                bool             `json:"vegan"`
	GlutenFree           bool             `json:"glutenFree"`
	Instructions         string           `json:"instructions"`
	ExtendedIngredients  []Ingredient     `json:"extendedIngredients"`
	AnalyzedInstructions []InstructionSet `json:"analyzedInstructions"`
}

// Client calls the Spoonacular API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewClient creates a provider client. baseURL is the recipes endpoint
// root, e.g. https://api.spoonacular.com/recipes.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// GetRecipeInformation fetches full recipe details by ID.
func (c *Client) GetRecipeInformation(ctx context.Context, id int64) (*Recipe, error) {
	endpoint := fmt.Sprintf("%s/%d/information", c.baseURL, id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	q := url.Values{}
	q.Set("apiKey", c.apiKey)
	q.Set("includeNutrition", "false")
	req.URL.RawQuery = q.Encode()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spoonacular request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("spoonacular returned status %d: %s", resp.StatusCode, string(body))
	}

	var recipe Recipe
	if err := json.NewDecoder(resp.Body).Decode(&recipe); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &recipe, nil
}
