// Package token implements the token-pair repository using PostgreSQL.
// Tokens are stored hashed; lookups are keyed on the hash columns, both of
// which carry unique indexes.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/openmargin/annotations-backend/internal/adapter/postgres"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Repo provides token-pair persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new token repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const tokenColumns = `id, user_id, authority, access_hash, access_expires_at,
       refresh_hash, refresh_expires_at, created_at`

const createSQL = `
INSERT INTO tokens (id, user_id, authority, access_hash, access_expires_at,
                    refresh_hash, refresh_expires_at, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

const getByAccessHashSQL = `
SELECT ` + tokenColumns + `
FROM tokens
WHERE access_hash = $1`

const getByRefreshHashSQL = `
SELECT ` + tokenColumns + `
FROM tokens
WHERE refresh_hash = $1`

// Create inserts a new token pair. A hash collision with an existing row
// results in domain.ErrAlreadyExists via the unique indexes.
func (r *Repo) Create(ctx context.Context, token *domain.Token) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, createSQL,
		token.ID, token.UserID, token.Authority,
		token.AccessHash, token.AccessExpiresAt,
		token.RefreshHash, token.RefreshExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "token", token.ID)
	}

	return nil
}

// GetByAccessHash returns the token pair holding the given access hash.
// Returns domain.ErrNotFound if no pair carries the hash.
func (r *Repo) GetByAccessHash(ctx context.Context, accessHash string) (*domain.Token, error) {
	return r.getByHash(ctx, getByAccessHashSQL, accessHash)
}

// GetByRefreshHash returns the token pair holding the given refresh hash.
// Returns domain.ErrNotFound if no pair carries the hash.
func (r *Repo) GetByRefreshHash(ctx context.Context, refreshHash string) (*domain.Token, error) {
	return r.getByHash(ctx, getByRefreshHashSQL, refreshHash)
}

func (r *Repo) getByHash(ctx context.Context, query, hash string) (*domain.Token, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var t domain.Token
	err := querier.QueryRow(ctx, query, hash).Scan(
		&t.ID, &t.UserID, &t.Authority,
		&t.AccessHash, &t.AccessExpiresAt,
		&t.RefreshHash, &t.RefreshExpiresAt,
		&t.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "token", uuid.Nil)
	}

	return &t, nil
}

// DeleteByID removes a token pair by primary key.
// Returns domain.ErrNotFound if the pair does not exist, which is how a
// refresh race loser observes that the pair was already rotated.
func (r *Repo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, `DELETE FROM tokens WHERE id = $1`, id)
	if err != nil {
		return postgres.MapError(err, "token", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("token %s: %w", id, domain.ErrNotFound)
	}

	return nil
}

// DeleteByUserAuthority removes every token pair the user holds under the
// given authority. Deleting zero rows is not an error.
func (r *Repo) DeleteByUserAuthority(ctx context.Context, userID uuid.UUID, authority string) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx,
		`DELETE FROM tokens WHERE user_id = $1 AND authority = $2`,
		userID, authority,
	)
	if err != nil {
		return postgres.MapError(err, "token", uuid.Nil)
	}

	return nil
}

// DeleteAllByUser removes every token pair belonging to the user across all
// authorities. Idempotent: deleting zero rows is not an error.
func (r *Repo) DeleteAllByUser(ctx context.Context, userID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	_, err := querier.Exec(ctx, `DELETE FROM tokens WHERE user_id = $1`, userID)
	if err != nil {
		return postgres.MapError(err, "token", uuid.Nil)
	}

	return nil
}

// DeleteExpired removes token pairs whose refresh half expired at or before
// now. A pair with only its access half expired is still refreshable and is
// kept. Returns the count of deleted pairs.
// May delete many records; does not use a transaction.
func (r *Repo) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx,
		`DELETE FROM tokens WHERE refresh_expires_at <= $1`,
		now,
	)
	if err != nil {
		return 0, postgres.MapError(err, "token", uuid.Nil)
	}

	return int(tag.RowsAffected()), nil
}
