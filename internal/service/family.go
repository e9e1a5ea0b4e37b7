package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// FamilyRecipeInput is the payload for creating or updating a family
// recipe.
type FamilyRecipeInput struct {
	Title        string   `json:"title"`
	FamilyMember string   `json:"family_member"`
	Occasion     string   `json:"occasion"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	Images       []string `json:"images"`
}

// FamilyService owns family recipes. They are private to their creator;
// ownership mismatches read as NotFound.
type FamilyService struct {
	db *gorm.DB
}

// NewFamilyService creates a new FamilyService instance
func NewFamilyService(db *gorm.DB) *FamilyService {
	return &FamilyService{db: db}
}

func validateFamilyInput(input FamilyRecipeInput) error {
	if strings.TrimSpace(input.Title) == "" || len(input.Ingredients) == 0 || strings.TrimSpace(input.Instructions) == "" {
		return fmt.Errorf("%w: title, ingredients and instructions are required", ErrInvalidArgument)
	}
	return nil
}

// CreateFamilyRecipe stores a new family recipe for the user.
func (s *FamilyService) CreateFamilyRecipe(ctx context.Context, userID uuid.UUID, input FamilyRecipeInput) (*models.FamilyRecipe, error) {
	if err := validateFamilyInput(input); err != nil {
		return nil, err
	}

	recipe := models.FamilyRecipe{
		CreatedBy:    userID,
		Title:        strings.TrimSpace(input.Title),
		FamilyMember: input.FamilyMember,
		Occasion:     input.Occasion,
		Ingredients:  models.JSONBStringArray(input.Ingredients),
		Instructions: input.Instructions,
		Images:       models.JSONBStringArray(input.Images),
	}
	if err := s.db.WithContext(ctx).Create(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListFamilyRecipes returns every family recipe the user created.
func (s *FamilyService) ListFamilyRecipes(ctx context.Context, userID uuid.UUID) ([]models.FamilyRecipe, error) {
	var recipes []models.FamilyRecipe
	err := s.db.WithContext(ctx).
		Where("created_by = ?", userID).
		Order("id ASC").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetFamilyRecipe returns one of the user's family recipes.
func (s *FamilyService) GetFamilyRecipe(ctx context.Context, userID uuid.UUID, recipeID uint) (*models.FamilyRecipe, error) {
	var recipe models.FamilyRecipe
	err := s.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", recipeID, userID).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: family recipe %d", ErrNotFound, recipeID)
		}
		return nil, err
	}
	return &recipe, nil
}

// UpdateFamilyRecipe overwrites every editable field of an owned recipe.
func (s *FamilyService) UpdateFamilyRecipe(ctx context.Context, userID uuid.UUID, recipeID uint, input FamilyRecipeInput) error {
	if err := validateFamilyInput(input); err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&models.FamilyRecipe{}).
		Where("id = ? AND created_by = ?", recipeID, userID).
		Updates(map[string]interface{}{
			"title":         strings.TrimSpace(input.Title),
			"family_member": input.FamilyMember,
			"occasion":      input.Occasion,
			"ingredients":   models.JSONBStringArray(input.Ingredients),
			"instructions":  input.Instructions,
			"images":        models.JSONBStringArray(input.Images),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: family recipe %d", ErrNotFound, recipeID)
	}
	return nil
}

// DeleteFamilyRecipe removes an owned family recipe.
func (s *FamilyService) DeleteFamilyRecipe(ctx context.Context, userID uuid.UUID, recipeID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND created_by = ?", recipeID, userID).
		Delete(&models.FamilyRecipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: family recipe %d", ErrNotFound, recipeID)
	}
	return nil
}
