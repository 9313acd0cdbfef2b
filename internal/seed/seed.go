package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	appModels "github.com/yigit/scholars/internal/app/models"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/auth"
)

// UserStore is the subset of the user repository the seed needs
type UserStore interface {
	EmailExists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *appModels.User) error
}

// Operator describes the operator account created on startup
type Operator struct {
	Email    string
	Password string
}

// EnsureOperator creates the operator account when it is configured and missing
func EnsureOperator(ctx context.Context, users UserStore, op Operator, lgr zerolog.Logger) error {
	email := strings.ToLower(strings.TrimSpace(op.Email))
	if email == "" {
		lgr.Debug().Msg("No operator account configured, skipping seed")
		return nil
	}
	if op.Password == "" {
		return fmt.Errorf("operator password is required for %s", email)
	}

	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return fmt.Errorf("error checking operator account: %w", err)
	}
	if exists {
		lgr.Info().Str("email", email).Msg("Operator account already exists, skipping creation")
		return nil
	}

	hashed, err := auth.HashPassword(op.Password)
	if err != nil {
		return fmt.Errorf("error hashing operator password: %w", err)
	}

	operator := &appModels.User{
		Email:     email,
		Password:  hashed,
		FirstName: "System",
		LastName:  "Operator",
		IsActive:  true,
	}
	if err := users.Create(ctx, operator); err != nil {
		// Another instance may have created it concurrently
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			return nil
		}
		return fmt.Errorf("error creating operator account: %w", err)
	}

	lgr.Info().Int64("userID", operator.ID).Str("email", email).Msg("Operator account created")
	return nil
}
