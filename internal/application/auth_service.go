package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/homechores/chorelog/internal/domain/entity"
	"github.com/homechores/chorelog/internal/domain/repository"
	"github.com/homechores/chorelog/pkg/helpers"
	"github.com/homechores/chorelog/pkg/validation"
)

// AuthService owns user identity records: registration, credential
// verification, and session token issuance.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	Name     string `json:"name"`
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Register persists a new user with the password replaced by a bcrypt hash.
// The plaintext is never stored or logged. Username and email collisions are
// reported naming the colliding field(s).
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))

	if msgs := validation.Struct(in); msgs != nil {
		return "", &ValidationError{Messages: msgs}
	}

	var taken []string
	if _, err := s.Users.GetByEmail(ctx, in.Email); err == nil {
		taken = append(taken, "email")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if _, err := s.Users.GetByUsername(ctx, in.Username); err == nil {
		taken = append(taken, "username")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return "", err
	}
	if len(taken) > 0 {
		return "", &DuplicateError{Fields: taken}
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return "", err
	}

	u := &entity.User{
		Name:     in.Name,
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// A concurrent registration can still hit the unique index.
		var dup *repository.DuplicateError
		if errors.As(err, &dup) {
			return "", &DuplicateError{Fields: []string{dup.Field}}
		}
		return "", err
	}

	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	}
	return u.ID, nil
}

// Login authenticates by email or username and returns a signed session
// token. Every failure collapses to ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, identifier, password string) (string, time.Time, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return "", time.Time{}, ErrInvalidCredentials
	}

	u, err := s.Users.GetByIdentifier(ctx, identifier)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		return "", time.Time{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.JWT.Generate(u.ID, u.Email, u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}
