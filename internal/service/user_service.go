package service

import (
	"context"
	"fmt"
	"time"

	"app/internal/apperr"
	"app/internal/config"
	"app/internal/model"
	"app/internal/repository"
	"app/internal/util"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

const sessionTTL = 24 * time.Hour

// ErrInvalidCredentials is returned on unknown username or wrong
// password. The two cases are deliberately indistinguishable.
var ErrInvalidCredentials = fmt.Errorf("invalid username or password")

// ErrUsernameTaken is returned when signing up with an existing username.
var ErrUsernameTaken = fmt.Errorf("username already taken")

// UserService handles signup, login and session tokens.
type UserService interface {
	SignUp(ctx context.Context, username, password string) (*model.User, string, error)
	Login(ctx context.Context, username, password string) (*model.User, string, error)
	GetUser(ctx context.Context, userID string) (*model.User, error)
}

type userService struct {
	userRepo   repository.UserRepository
	jwtSecret  string
	userLogger zerolog.Logger
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, cfg *config.Config, logger zerolog.Logger) UserService {
	return &userService{
		userRepo:   userRepo,
		jwtSecret:  cfg.JWTSecret,
		userLogger: logger.With().Str("service", "UserService").Logger(),
	}
}

func (s *userService) SignUp(ctx context.Context, username, password string) (*model.User, string, error) {
	existing, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to check username %q: %w", username, err)
	}
	if existing != nil {
		return nil, "", ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := util.GenerateJWT(user.UserID, user.Username, s.jwtSecret, sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.userLogger.Info().Str("userId", user.UserID).Msg("User signed up")
	return user, token, nil
}

func (s *userService) Login(ctx context.Context, username, password string) (*model.User, string, error) {
	user, err := s.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.GenerateJWT(user.UserID, user.Username, s.jwtSecret, sessionTTL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue session token: %w", err)
	}

	s.userLogger.Info().Str("userId", user.UserID).Msg("User logged in")
	return user, token, nil
}

func (s *userService) GetUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user %s: %w", userID, err)
	}
	if user == nil {
		return nil, &apperr.NotFoundError{Resource: "user", ID: userID}
	}
	return user, nil
}
