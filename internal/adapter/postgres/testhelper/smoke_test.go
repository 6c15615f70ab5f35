package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	user := SeedUser(t, pool, "margin.example.org")

	// Verify user exists in DB via SELECT.
	var login string
	err := pool.QueryRow(
		context.Background(),
		`SELECT login FROM users WHERE id = $1`,
		user.ID,
	).Scan(&login)
	if err != nil {
		t.Fatalf("expected user in DB, got error: %v", err)
	}

	if login != user.Login {
		t.Fatalf("expected login %q, got %q", user.Login, login)
	}
}
