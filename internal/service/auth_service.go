package service

import (
	"context"
	"crypto/md5"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"devconnector-be/internal/entities"
	"devconnector-be/internal/jwt"
	"devconnector-be/internal/models"
	"devconnector-be/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (string, error)
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	CurrentUser(ctx context.Context, userID string) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user account and returns a signed token so the
// user is logged in right away.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (string, error) {
	email := normalizeEmail(req.Email)

	// Duplicate registration is rejected before anything is written
	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return "", ErrUserExists
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.userRepo.Create(ctx, req.Name, email, gravatarURL(email), string(hash))
	if err != nil {
		// The unique email index closes the check-then-create window
		if errors.Is(err, repository.ErrDuplicate) {
			return "", ErrUserExists
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// Login verifies credentials and returns a signed token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return "", ErrInvalidPassword
	}

	token, err := s.jwtService.GenerateToken(user.ID.Hex())
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}

// CurrentUser resolves a token subject id to the stored user record
func (s *authService) CurrentUser(ctx context.Context, userID string) (*entities.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// gravatarURL derives the avatar URI from the normalized email
// (200px, PG-rated, identicon fallback)
func gravatarURL(email string) string {
	sum := md5.Sum([]byte(email))
	return fmt.Sprintf("https://www.gravatar.com/avatar/%x?s=200&r=pg&d=mm", sum)
}
