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

// ProfileView is the user's public-facing account data.
type ProfileView struct {
	Username   string `json:"username"`
	Email      string `json:"email"`
	FirstName  string `json:"firstname,omitempty"`
	LastName   string `json:"lastname,omitempty"`
	Country    string `json:"country,omitempty"`
	ProfilePic string `json:"profile_pic,omitempty"`
}

// ProfileUpdate is the editable subset of the profile. Username is fixed
// at registration.
type ProfileUpdate struct {
	Email      string `json:"email"`
	FirstName  string `json:"firstname"`
	LastName   string `json:"lastname"`
	Country    string `json:"country"`
	ProfilePic string `json:"profile_pic"`
}

// ProfileService reads and updates user account data.
type ProfileService struct {
	db *gorm.DB
}

// NewProfileService creates a new ProfileService instance
func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user's profile.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*ProfileView, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user not found", ErrNotFound)
		}
		return nil, err
	}

	return &ProfileView{
		Username:   user.Username,
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Country:    user.Country,
		ProfilePic: user.ProfilePic,
	}, nil
}

// UpdateProfile overwrites the editable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) error {
	if strings.TrimSpace(update.Email) == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidArgument)
	}

	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"email":       strings.TrimSpace(update.Email),
			"first_name":  update.FirstName,
			"last_name":   update.LastName,
			"country":     update.Country,
			"profile_pic": update.ProfilePic,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: user not found", ErrNotFound)
	}
	return nil
}
