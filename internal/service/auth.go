package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/daybook/daybook-go/internal/crypto"
	"github.com/daybook/daybook-go/internal/form"
	"github.com/daybook/daybook-go/internal/model"
	"github.com/daybook/daybook-go/internal/repository"
)

// ErrInvalidCredentials is returned for both unknown email and wrong
// password, so a caller can never tell which one failed.
var ErrInvalidCredentials = errors.New("invalid email or password")

// AuthService handles registration, login and principal resolution.
type AuthService struct {
	repo      *repository.UserRepository
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(repo *repository.UserRepository, secret string, expiry time.Duration) *AuthService {
	return &AuthService{
		repo:      repo,
		jwtSecret: secret,
		jwtExpiry: expiry,
	}
}

func (s *AuthService) registerFields() []form.Field {
	return []form.Field{
		{Name: "email", Validators: []form.Validator{form.Required(), form.Email(), s.uniqueEmail()}},
		{Name: "password", Validators: []form.Validator{form.Required(), form.MinLength(2), form.EqualTo("password2", "passwords must match")}},
		{Name: "password2", Validators: []form.Validator{form.Required()}},
	}
}

func loginFields() []form.Field {
	return []form.Field{
		{Name: "email", Validators: []form.Validator{form.Required(), form.Email()}},
		{Name: "password", Validators: []form.Validator{form.Required()}},
	}
}

// uniqueEmail queries the store live for an existing user with the submitted
// email. A probe failure is logged and waved through; the insert's unique
// constraint still catches the duplicate.
func (s *AuthService) uniqueEmail() form.Validator {
	return func(ctx context.Context, _ form.Values, value string) error {
		exists, err := s.repo.EmailExists(ctx, value)
		if err != nil {
			slog.Warn("email uniqueness probe failed", "error", err)
			return nil
		}
		if exists {
			return errors.New("user with that email already exists")
		}
		return nil
	}
}

// Register validates the submission, creates the user with a hashed password
// and returns a session token. Duplicate emails come back as a field-level
// validation error whether caught by the live probe or the insert itself.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	values := form.Values{
		"email":     req.Email,
		"password":  req.Password,
		"password2": req.Password2,
	}
	if errs := form.Run(ctx, values, s.registerFields()); len(errs) > 0 {
		return model.AuthResponse{}, validationFailed(errs)
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Email:    req.Email,
		AuthHash: hash,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, fieldError("email", "user with that email already exists")
		}
		return model.AuthResponse{}, err
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User: model.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// Login authenticates a user and returns a session token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	values := form.Values{
		"email":    req.Email,
		"password": req.Password,
	}
	if errs := form.Run(ctx, values, loginFields()); len(errs) > 0 {
		return model.AuthResponse{}, validationFailed(errs)
	}

	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.AuthHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := crypto.GenerateToken(user.ID, s.jwtSecret, s.jwtExpiry)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{
		Token: token,
		User: model.UserResponse{
			ID:        user.ID,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}

// GetUser resolves the session principal by ID. Callers treat a
// repository.ErrUserNotFound result as an anonymous session.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return model.UserResponse{}, err
	}

	return model.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
	}, nil
}
