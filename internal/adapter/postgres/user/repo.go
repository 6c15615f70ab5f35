// Package user implements the read-only user directory using PostgreSQL.
// Users, groups, and memberships are provisioned out of band; this repository
// only resolves them.
package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/openmargin/annotations-backend/internal/adapter/postgres"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Repo provides user directory lookups backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new user directory repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const getByIDSQL = `
SELECT id, login, authority, name, created_at
FROM users
WHERE id = $1`

const getByLoginSQL = `
SELECT id, login, authority, name, created_at
FROM users
WHERE login = $1 AND authority = $2`

const groupsOfUserSQL = `
SELECT group_id
FROM group_memberships
WHERE user_id = $1`

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByIDSQL, id).Scan(
		&u.ID, &u.Login, &u.Authority, &u.Name, &u.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}

	return &u, nil
}

// GetByLogin returns a user by its (login, authority) pair. Logins are only
// unique within one authority.
func (r *Repo) GetByLogin(ctx context.Context, login, authority string) (*domain.User, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var u domain.User
	err := querier.QueryRow(ctx, getByLoginSQL, login, authority).Scan(
		&u.ID, &u.Login, &u.Authority, &u.Name, &u.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "user", uuid.Nil)
	}

	return &u, nil
}

// GroupsOfUser returns the ids of all groups the user is a member of.
// A user with no memberships yields an empty slice, not an error.
func (r *Repo) GroupsOfUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, groupsOfUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("groups of user %s: %w", userID, err)
	}
	defer rows.Close()

	var groupIDs []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan group id: %w", err)
		}
		groupIDs = append(groupIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate group ids: %w", err)
	}

	if groupIDs == nil {
		groupIDs = []uuid.UUID{}
	}

	return groupIDs, nil
}
