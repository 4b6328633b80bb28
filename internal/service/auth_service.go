package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/arkan-dev/custodia-api/internal/dto"
	"github.com/arkan-dev/custodia-api/internal/models"
	"github.com/arkan-dev/custodia-api/internal/repository"
	"github.com/arkan-dev/custodia-api/internal/session"
)

// ErrInvalidCredentials indicates the username/password pair did not match.
var ErrInvalidCredentials = errors.New("invalid username or password")

// AuthService handles login and logout for operator accounts.
type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest, meta RequestMeta) (dto.LoginResponse, error)
	Logout(ctx context.Context, token string, meta RequestMeta) error
}

type authService struct {
	users     repository.UserRepository
	sessions  session.Store
	activity  ActivityRecorder
	validator *validator.Validate
	jwtSecret string
	ttl       time.Duration
	logger    zerolog.Logger
}

// NewAuthService constructs the authentication service. ttl bounds both the
// server-side session and the bearer token lifetime.
func NewAuthService(users repository.UserRepository, sessions session.Store, activity ActivityRecorder, validate *validator.Validate, jwtSecret string, ttl time.Duration, logger zerolog.Logger) AuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		activity:  activity,
		validator: validate,
		jwtSecret: jwtSecret,
		ttl:       ttl,
		logger:    logger.With().Str("component", "auth_service").Logger(),
	}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest, meta RequestMeta) (dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return dto.LoginResponse{}, err
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.LoginResponse{}, ErrInvalidCredentials
		}
		return dto.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return dto.LoginResponse{}, ErrInvalidCredentials
	}

	sess, err := s.sessions.Create(ctx, user.ID, user.Username)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to create session: %w", err)
	}

	expiresAt := time.Now().Add(s.ttl)
	bearer, err := s.signBearerToken(user, expiresAt)
	if err != nil {
		return dto.LoginResponse{}, fmt.Errorf("failed to sign bearer token: %w", err)
	}

	userID := user.ID
	s.activity.Record(ctx, ActivityEntry{
		UserID:      &userID,
		Type:        models.ActivityLogin,
		Description: fmt.Sprintf("User %s logged in", user.Username),
		Table:       tableUsers(),
		RecordID:    &userID,
		Meta:        meta,
	})

	return dto.LoginResponse{
		UserID:       user.ID,
		Username:     user.Username,
		SessionToken: sess.Token,
		BearerToken:  bearer,
		ExpiresAt:    expiresAt,
	}, nil
}

// Logout destroys the session behind the token. An unknown or expired token
// is not an error; there is simply nothing to log out.
func (s *authService) Logout(ctx context.Context, token string, meta RequestMeta) error {
	sess, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrSessionNotFound) {
			return nil
		}
		return err
	}

	if err := s.sessions.Destroy(ctx, token); err != nil {
		return err
	}

	userID := sess.UserID
	s.activity.Record(ctx, ActivityEntry{
		UserID:      &userID,
		Type:        models.ActivityLogout,
		Description: fmt.Sprintf("User %s logged out", sess.Username),
		Table:       tableUsers(),
		RecordID:    &userID,
		Meta:        meta,
	})

	return nil
}

func (s *authService) signBearerToken(user models.User, expiresAt time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":      fmt.Sprintf("%d", user.ID),
		"username": user.Username,
		"iat":      time.Now().Unix(),
		"exp":      expiresAt.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func tableUsers() *string {
	name := "users"
	return &name
}
