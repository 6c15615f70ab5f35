package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openmargin/annotations-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeedUser creates a user under the given authority.
// Returns a filled domain.User.
func SeedUser(t *testing.T, pool *pgxpool.Pool, authority string) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	user := domain.User{
		ID:        uuid.New(),
		Login:     "acct:user-" + suffix,
		Authority: authority,
		Name:      "Test User " + suffix,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, login, authority, name, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Login, user.Authority, user.Name, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser insert user: %v", err)
	}

	return user
}

// SeedGroup creates a group. Returns a filled domain.Group.
func SeedGroup(t *testing.T, pool *pgxpool.Pool) domain.Group {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	group := domain.Group{
		ID:        uuid.New(),
		Name:      "Test Group " + suffix,
		CreatedAt: now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO groups (id, name, created_at)
		 VALUES ($1, $2, $3)`,
		group.ID, group.Name, group.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedGroup insert group: %v", err)
	}

	return group
}

// SeedMembership adds a user to a group.
func SeedMembership(t *testing.T, pool *pgxpool.Pool, userID, groupID uuid.UUID) {
	t.Helper()
	ctx := context.Background()

	_, err := pool.Exec(ctx,
		`INSERT INTO group_memberships (user_id, group_id) VALUES ($1, $2)`,
		userID, groupID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedMembership insert: %v", err)
	}
}

// SeedAnnotation creates a NORMAL annotation owned by the user in the group.
// Returns a filled domain.Annotation.
func SeedAnnotation(t *testing.T, pool *pgxpool.Pool, userID, groupID uuid.UUID, tags ...string) domain.Annotation {
	t.Helper()
	ctx := context.Background()

	if tags == nil {
		tags = []string{}
	}

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := domain.Annotation{
		ID:          uuid.New(),
		UserID:      userID,
		DocumentURI: "https://docs.example.org/doc-" + suffix + ".pdf",
		GroupID:     groupID,
		Metadata:    map[string]any{"quote": "quoted text " + suffix},
		Status:      domain.StatusNormal,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO annotations (id, user_id, document_uri, group_id, metadata, status, tags, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, a.UserID, a.DocumentURI, a.GroupID, a.Metadata, string(a.Status), a.Tags, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedAnnotation insert: %v", err)
	}

	return a
}

// SeedToken creates a token pair for the user. Hashes are synthetic unique
// strings, not real digests.
func SeedToken(t *testing.T, pool *pgxpool.Pool, userID uuid.UUID, authority string, accessTTL, refreshTTL time.Duration) domain.Token {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	now := time.Now().UTC().Truncate(time.Microsecond)
	token := domain.Token{
		ID:               uuid.New(),
		UserID:           userID,
		Authority:        authority,
		AccessHash:       "access-" + suffix,
		AccessExpiresAt:  now.Add(accessTTL),
		RefreshHash:      "refresh-" + suffix,
		RefreshExpiresAt: now.Add(refreshTTL),
		CreatedAt:        now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO tokens (id, user_id, authority, access_hash, access_expires_at, refresh_hash, refresh_expires_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		token.ID, token.UserID, token.Authority,
		token.AccessHash, token.AccessExpiresAt,
		token.RefreshHash, token.RefreshExpiresAt,
		token.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedToken insert: %v", err)
	}

	return token
}
