package auth

import (
	"time"

	"github.com/openmargin/annotations-backend/internal/domain"
)

// TokenPair is returned by IssueToken and Refresh operations.
// AccessToken and RefreshToken are the raw values, NOT hashes; they are
// never persisted and exist only in this response.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
	User             *domain.User
}
