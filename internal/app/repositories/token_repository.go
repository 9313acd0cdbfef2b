package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/scholars/internal/db"
	"github.com/yigit/scholars/internal/pkg/apperrors"
	"github.com/yigit/scholars/internal/pkg/dberrors"
	"github.com/yigit/scholars/internal/pkg/logger"
)

// TokenRepository stores opaque refresh tokens
type TokenRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewTokenRepository creates a new TokenRepository
func NewTokenRepository(database *db.PostgresDB) *TokenRepository {
	return &TokenRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *TokenRepository) insert(ctx context.Context, q db.Querier, token string, userID int64, expiresAt time.Time) error {
	sql, args, err := r.sb.Insert("refresh_tokens").
		Columns("token", "user_id", "expiry_date", "is_revoked").
		Values(token, userID, expiresAt, false).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build create token query: %w", err)
	}

	if _, err := q.Exec(ctx, sql, args...); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "refresh_tokens_token_key") {
			logger.Warn().Int64("userID", userID).Msg("Attempted to store duplicate refresh token")
			return apperrors.ErrTokenInvalid
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error executing create token query")
		return fmt.Errorf("error creating token: %w", err)
	}
	return nil
}

// CreateToken stores a new refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	return r.insert(ctx, r.db.Pool, token, userID, expiresAt)
}

// GetUserIDByToken returns the owner of a live refresh token
func (r *TokenRepository) GetUserIDByToken(ctx context.Context, token string) (int64, error) {
	sql, args, err := r.sb.Select("user_id", "expiry_date", "is_revoked").
		From("refresh_tokens").
		Where(squirrel.Eq{"token": token}).
		Limit(1).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build get token query: %w", err)
	}

	var (
		userID    int64
		expiresAt time.Time
		revoked   bool
	)
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&userID, &expiresAt, &revoked); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrTokenNotFound
		}
		logger.Error().Err(err).Msg("Error scanning token row")
		return 0, fmt.Errorf("error retrieving token: %w", err)
	}

	switch {
	case revoked:
		return 0, apperrors.ErrTokenRevoked
	case expiresAt.Before(time.Now()):
		return 0, apperrors.ErrTokenExpired
	}
	return userID, nil
}

// Rotate revokes oldToken and stores newToken in one transaction.
// A token that was already revoked cannot be rotated twice.
func (r *TokenRepository) Rotate(ctx context.Context, oldToken, newToken string, userID int64, expiresAt time.Time) error {
	revokeSQL, revokeArgs, err := r.sb.Update("refresh_tokens").
		Set("is_revoked", true).
		Where(squirrel.Eq{"token": oldToken, "user_id": userID, "is_revoked": false}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build revoke token query: %w", err)
	}

	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		cmdTag, err := tx.Exec(ctx, revokeSQL, revokeArgs...)
		if err != nil {
			return fmt.Errorf("error revoking token: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrTokenRevoked
		}
		return r.insert(ctx, tx, newToken, userID, expiresAt)
	})
}
