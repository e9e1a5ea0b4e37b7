package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// TokenClaims carries the authenticated identity extracted from a token.
type TokenClaims struct {
	UserID    uuid.UUID
	SessionID string
}

// AuthService handles registration, login and session lifecycle. Tokens
// are JWTs whose session ID must also be live in Redis, so logout can
// revoke a token before it expires.
type AuthService struct {
	db         *gorm.DB
	sessions   *redis.Client
	jwtSecret  string
	sessionTTL time.Duration
}

// NewAuthService creates a new AuthService instance
func NewAuthService(db *gorm.DB, sessions *redis.Client, jwtSecret string, sessionTTL time.Duration) *AuthService {
	return &AuthService{
		db:         db,
		sessions:   sessions,
		jwtSecret:  jwtSecret,
		sessionTTL: sessionTTL,
	}
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Register creates a user and returns a logged-in token.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return "", fmt.Errorf("%w: username, email and password are required", ErrInvalidArgument)
	}

	var existing models.User
	err := s.db.WithContext(ctx).
		Where("email = ? OR username = ?", email, username).
		First(&existing).Error
	if err == nil {
		return "", fmt.Errorf("%w: user already exists", ErrInvalidArgument)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hashed),
	}
	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", err
	}

	return s.issueToken(ctx, user.ID)
}

// Login verifies credentials and returns a token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(ctx, user.ID)
}

// Logout revokes the token's session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	return s.sessions.Del(ctx, sessionKey(sessionID)).Err()
}

func (s *AuthService) issueToken(ctx context.Context, userID uuid.UUID) (string, error) {
	sessionID := uuid.New().String()
	err := s.sessions.Set(ctx, sessionKey(sessionID), userID.String(), s.sessionTTL).Err()
	if err != nil {
		return "", fmt.Errorf("failed to store session: %w", err)
	}

	claims := jwt.MapClaims{
		"user_id": userID.String(),
		"sid":     sessionID,
		"exp":     time.Now().Add(s.sessionTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses the token and checks that its session is still
// live in Redis.
func (s *AuthService) ValidateToken(ctx context.Context, tokenString string) (*TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, ErrInvalidToken
	}
	sessionID, ok := claims["sid"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	exists, err := s.sessions.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if exists == 0 {
		return nil, ErrInvalidToken
	}

	return &TokenClaims{
		UserID:    userID,
		SessionID: sessionID,
	}, nil
}
