package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
)

// watchedHistoryLimit bounds the last-watched list per user.
const watchedHistoryLimit = 3

// FavoriteView is a resolved favorite recipe with its timestamp.
type FavoriteView struct {
	*NormalizedRecipe
	IsFavorite  bool      `json:"is_favorite"`
	FavoritedAt time.Time `json:"favorited_at"`
}

// FavoritesService owns the favorites set and the bounded last-watched
// history.
type FavoritesService struct {
	db       *gorm.DB
	resolver RecipeResolver
	logger   *zap.Logger
}

// NewFavoritesService creates a new FavoritesService instance
func NewFavoritesService(db *gorm.DB, resolver RecipeResolver, logger *zap.Logger) *FavoritesService {
	return &FavoritesService{
		db:       db,
		resolver: resolver,
		logger:   logger,
	}
}

// AddFavorite upserts the (user, recipe) pair, refreshing favorited_at
// when the pair already exists.
func (s *FavoritesService) AddFavorite(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	fav := models.FavoriteRecipe{
		UserID:      userID,
		RecipeID:    recipeID,
		FavoritedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"favorited_at"}),
		}).
		Create(&fav).Error
}

// RemoveFavorite deletes the pair. Removing an absent favorite is a no-op.
func (s *FavoritesService) RemoveFavorite(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	return s.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.FavoriteRecipe{}).Error
}

// ListFavorites resolves every favorited recipe, newest first. A recipe
// that fails to resolve is logged and skipped rather than failing the
// whole list.
func (s *FavoritesService) ListFavorites(ctx context.Context, userID uuid.UUID) ([]FavoriteView, error) {
	var favorites []models.FavoriteRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("favorited_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, err
	}

	views := make([]FavoriteView, 0, len(favorites))
	for _, fav := range favorites {
		recipe, err := s.resolver.Resolve(ctx, fav.RecipeID)
		if err != nil {
			s.logger.Warn("skipping unresolvable favorite",
				zap.Int64("recipe_id", fav.RecipeID),
				zap.Error(err))
			continue
		}
		views = append(views, FavoriteView{
			NormalizedRecipe: recipe,
			IsFavorite:       true,
			FavoritedAt:      fav.FavoritedAt,
		})
	}
	return views, nil
}

// MarkWatched upserts the view timestamp and prunes everything outside
// the newest three rows in the same transaction, so a concurrent reader
// never sees more than the limit for longer than this unit.
func (s *FavoritesService) MarkWatched(ctx context.Context, userID uuid.UUID, recipeID int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		watched := models.WatchedRecipe{
			UserID:   userID,
			RecipeID: recipeID,
			ViewedAt: time.Now().UTC(),
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recipe_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"viewed_at"}),
		}).Create(&watched).Error
		if err != nil {
			return err
		}

		keep := tx.Model(&models.WatchedRecipe{}).
			Select("id").
			Where("user_id = ?", userID).
			Order("viewed_at DESC").
			Limit(watchedHistoryLimit)
		return tx.
			Where("user_id = ? AND id NOT IN (?)", userID, keep).
			Delete(&models.WatchedRecipe{}).Error
	})
}

// ListLastWatched returns up to three resolved recipes, most recent
// first. An empty history yields an empty list, not an error.
func (s *FavoritesService) ListLastWatched(ctx context.Context, userID uuid.UUID) ([]*NormalizedRecipe, error) {
	var watched []models.WatchedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("viewed_at DESC").
		Limit(watchedHistoryLimit).
		Find(&watched).Error
	if err != nil {
		return nil, err
	}

	recipes := make([]*NormalizedRecipe, 0, len(watched))
	for _, w := range watched {
		recipe, err := s.resolver.Resolve(ctx, w.RecipeID)
		if err != nil {
			s.logger.Warn("skipping unresolvable watched recipe",
				zap.Int64("recipe_id", w.RecipeID),
				zap.Error(err))
			continue
		}
		recipes = append(recipes, recipe)
	}
	return recipes, nil
}
