package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"labpipe/internal/auth"
	"labpipe/internal/model"
	"labpipe/internal/repository"
)

var (
	ErrMissingFields      = errors.New("full_name, email and password are required")
	ErrInvalidRole        = errors.New("unknown staff role")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
)

// SignupInput carries the fields of a signup request.
type SignupInput struct {
	FullName  string
	Email     string
	Password  string
	StaffRole string
}

// UserService defines account and session use cases.
type UserService interface {
	// Signup creates an account and issues a session token.
	Signup(ctx context.Context, in SignupInput) (*model.User, string, error)

	// Login verifies credentials and issues a session token. Failures are
	// indistinguishable whether the email exists or the password is wrong.
	Login(ctx context.Context, email, password string) (*model.User, string, error)

	// Profile returns the account for the given user id.
	Profile(ctx context.Context, id string) (*model.User, error)
}

type userService struct {
	repo   repository.UserRepository
	tokens *auth.TokenIssuer
}

// NewUserService constructs a UserService.
func NewUserService(repo repository.UserRepository, tokens *auth.TokenIssuer) UserService {
	return &userService{repo: repo, tokens: tokens}
}

func (s *userService) Signup(ctx context.Context, in SignupInput) (*model.User, string, error) {
	if strings.TrimSpace(in.FullName) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return nil, "", ErrMissingFields
	}

	role := model.RoleIntern
	if in.StaffRole != "" {
		role = model.Role(in.StaffRole)
		if !model.ValidRole(role) {
			return nil, "", ErrInvalidRole
		}
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		FullName:     in.FullName,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", ErrDuplicateEmail
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(stored)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return stored, token, nil
}

func (s *userService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *userService) Profile(ctx context.Context, id string) (*model.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
