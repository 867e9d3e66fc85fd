package usecase

import (
	"context"
	"errors"
	"testing"
)

func newTestAuthService() (*AuthService, *stubUserRepo) {
	userRepo := newStubUserRepo()
	svc := NewAuthService(userRepo, &stubIDGenerator{}, stubTokenIssuer{})
	return svc, userRepo
}

func TestAuthServiceRegisterAndLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, token, err := svc.Register(ctx, RegisterInput{
		Username: "kohli_fan",
		Email:    "Fan@Example.com",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a token on register")
	}
	if registered.Email != "fan@example.com" {
		t.Fatalf("expected lowercased email, got %q", registered.Email)
	}
	if registered.PasswordHash == "super-secret" {
		t.Fatalf("password stored in plain text")
	}

	loggedIn, token, err := svc.Login(ctx, LoginInput{Email: "fan@example.com", Password: "super-secret"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if loggedIn.ID != registered.ID || token == "" {
		t.Fatalf("unexpected login result: id=%q token=%q", loggedIn.ID, token)
	}
}

func TestAuthServiceLoginWrongPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Username: "kohli_fan",
		Email:    "fan@example.com",
		Password: "super-secret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Login(ctx, LoginInput{Email: "fan@example.com", Password: "wrong-pass"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized", err)
	}
	if _, _, err := svc.Login(ctx, LoginInput{Email: "ghost@example.com", Password: "super-secret"}); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("err = %v, want ErrUnauthorized for unknown email", err)
	}
}

func TestAuthServiceRegisterDuplicates(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService()
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, RegisterInput{
		Username: "kohli_fan",
		Email:    "fan@example.com",
		Password: "super-secret",
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, _, err := svc.Register(ctx, RegisterInput{
		Username: "other_name",
		Email:    "fan@example.com",
		Password: "super-secret",
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict for duplicate email", err)
	}
	if _, _, err := svc.Register(ctx, RegisterInput{
		Username: "kohli_fan",
		Email:    "other@example.com",
		Password: "super-secret",
	}); !errors.Is(err, ErrConflict) {
		t.Fatalf("err = %v, want ErrConflict for duplicate username", err)
	}
}

func TestAuthServiceRegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService()
	ctx := context.Background()

	cases := []struct {
		name  string
		input RegisterInput
	}{
		{"missing username", RegisterInput{Email: "fan@example.com", Password: "super-secret"}},
		{"bad email", RegisterInput{Username: "fan", Email: "not-an-email", Password: "super-secret"}},
		{"short password", RegisterInput{Username: "fan", Email: "fan@example.com", Password: "short"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := svc.Register(ctx, tc.input); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestAuthServiceProfile(t *testing.T) {
	t.Parallel()

	svc, _ := newTestAuthService()
	ctx := context.Background()

	registered, _, err := svc.Register(ctx, RegisterInput{
		Username: "kohli_fan",
		Email:    "fan@example.com",
		Password: "super-secret",
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	profile, err := svc.Profile(ctx, registered.ID)
	if err != nil {
		t.Fatalf("profile: %v", err)
	}
	if profile.Username != "kohli_fan" {
		t.Fatalf("unexpected username: %q", profile.Username)
	}

	if _, err := svc.Profile(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
