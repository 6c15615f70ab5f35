package domain

import (
	"time"

	"github.com/google/uuid"
)

// Token is one access/refresh credential pair for one user.
// Only SHA-256 hashes of the opaque values are stored; the raw values exist
// exclusively in the issuance response.
type Token struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	Authority        string
	AccessHash       string
	AccessExpiresAt  time.Time
	RefreshHash      string
	RefreshExpiresAt time.Time
	CreatedAt        time.Time
}

// IsAccessExpired reports whether the access half is expired at now.
// Expiry is exclusive of the current instant: a token expiring exactly now
// is already invalid.
func (t *Token) IsAccessExpired(now time.Time) bool {
	return !now.Before(t.AccessExpiresAt)
}

// IsRefreshExpired reports whether the refresh half is expired at now,
// with the same exclusive-boundary rule as IsAccessExpired.
func (t *Token) IsRefreshExpired(now time.Time) bool {
	return !now.Before(t.RefreshExpiresAt)
}
