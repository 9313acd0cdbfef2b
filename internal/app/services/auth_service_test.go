package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yigit/scholars/internal/app/models/dto"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/auth"
)

func newTestAuthService() (*AuthService, *fakeUserStore, *fakeTokenStore) {
	users := newFakeUserStore()
	tokens := newFakeTokenStore()
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:       "test-secret",
		AccessTokenExp:  time.Minute,
		RefreshTokenExp: time.Hour,
		TokenIssuer:     "scholars.test",
	})
	svc := NewAuthService(users, tokens, jwtService, testLogger)
	svc.hashCost = bcrypt.MinCost
	return svc, users, tokens
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "Ada@Example.com", Password: "analytic1", FirstName: "Ada", LastName: "Lovelace"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if reg.User.Email != "ada@example.com" || reg.Token.AccessToken == "" || reg.Token.RefreshToken == "" {
		t.Fatalf("unexpected register response %+v", reg)
	}

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "ada@example.com", Password: "analytic1", FirstName: "A", LastName: "L"}); !errors.Is(err, apperrors.ErrEmailAlreadyExists) {
		t.Fatalf("duplicate register error = %v", err)
	}

	login, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "analytic1"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if login.User.ID != reg.User.ID {
		t.Fatalf("login user = %d, want %d", login.User.ID, reg.User.ID)
	}
	if len(users.logins) != 1 {
		t.Fatal("last login should be recorded")
	}

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong-pass1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("wrong password error = %v", err)
	}
	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "analytic1"}); !errors.Is(err, apperrors.ErrInvalidCredentials) {
		t.Fatalf("unknown user error = %v", err)
	}
}

func TestAuthService_RegisterWeakPassword(t *testing.T) {
	svc, _, _ := newTestAuthService()

	_, err := svc.Register(context.Background(), &dto.RegisterRequest{Email: "a@example.com", Password: "onlyletters", FirstName: "A", LastName: "B"})
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestAuthService_LoginDisabledAccount(t *testing.T) {
	svc, users, _ := newTestAuthService()
	ctx := context.Background()

	if _, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "analytic1", FirstName: "A", LastName: "B"}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	users.users[1].IsActive = false

	if _, err := svc.Login(ctx, &dto.LoginRequest{Email: "a@example.com", Password: "analytic1"}); !errors.Is(err, apperrors.ErrAccountDisabled) {
		t.Fatalf("error = %v, want ErrAccountDisabled", err)
	}
}

func TestAuthService_RefreshRotatesToken(t *testing.T) {
	svc, _, _ := newTestAuthService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, &dto.RegisterRequest{Email: "a@example.com", Password: "analytic1", FirstName: "A", LastName: "B"})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	refreshed, err := svc.RefreshToken(ctx, reg.Token.RefreshToken)
	if err != nil {
		t.Fatalf("RefreshToken: %v", err)
	}
	if refreshed.Token.RefreshToken == reg.Token.RefreshToken {
		t.Fatal("refresh token should rotate")
	}

	if _, err := svc.RefreshToken(ctx, reg.Token.RefreshToken); !errors.Is(err, apperrors.ErrTokenRevoked) {
		t.Fatalf("reuse error = %v, want ErrTokenRevoked", err)
	}
	if _, err := svc.RefreshToken(ctx, "unknown"); !errors.Is(err, apperrors.ErrTokenNotFound) {
		t.Fatalf("unknown token error = %v, want ErrTokenNotFound", err)
	}
}
