package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/kemetion/fantasy-cricket/internal/domain/user"
	"github.com/kemetion/fantasy-cricket/internal/platform/id"
)

const minPasswordLength = 8

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// TokenIssuer signs an access token for an authenticated principal.
type TokenIssuer interface {
	Issue(principal user.Principal) (string, error)
}

type AuthService struct {
	userRepo user.Repository
	ids      id.Generator
	tokens   TokenIssuer
	now      func() time.Time
}

func NewAuthService(userRepo user.Repository, ids id.Generator, tokens TokenIssuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		ids:      ids,
		tokens:   tokens,
		now:      time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (user.User, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Register")
	defer span.End()

	input.Username = strings.TrimSpace(input.Username)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))

	if input.Username == "" {
		return user.User{}, "", fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if input.Email == "" || !strings.Contains(input.Email, "@") {
		return user.User{}, "", fmt.Errorf("%w: valid email is required", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return user.User{}, "", fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, exists, err := s.userRepo.GetByEmail(ctx, input.Email); err != nil {
		return user.User{}, "", fmt.Errorf("get user by email: %w", err)
	} else if exists {
		return user.User{}, "", fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if _, exists, err := s.userRepo.GetByUsername(ctx, input.Username); err != nil {
		return user.User{}, "", fmt.Errorf("get user by username: %w", err)
	} else if exists {
		return user.User{}, "", fmt.Errorf("%w: username already taken", ErrConflict)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	userID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, "", fmt.Errorf("generate user id: %w", err)
	}

	record := user.User{
		ID:           userID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
		CreatedAt:    s.now().UTC(),
	}
	if err := s.userRepo.Create(ctx, record); err != nil {
		return user.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Principal{UserID: record.ID, Email: record.Email})
	if err != nil {
		return user.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return record, token, nil
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (user.User, string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Email == "" || input.Password == "" {
		return user.User{}, "", fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	record, exists, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return user.User{}, "", fmt.Errorf("get user by email: %w", err)
	}
	if !exists {
		return user.User{}, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(record.PasswordHash), []byte(input.Password)); err != nil {
		return user.User{}, "", fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.tokens.Issue(user.Principal{UserID: record.ID, Email: record.Email})
	if err != nil {
		return user.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	return record, token, nil
}

func (s *AuthService) Profile(ctx context.Context, userID string) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Profile")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return user.User{}, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}

	record, exists, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user not found", ErrNotFound)
	}

	return record, nil
}
