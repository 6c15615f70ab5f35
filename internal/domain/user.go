package domain

import (
	"time"

	"github.com/google/uuid"
)

// User is a read-only mirror of a directory user. This core never creates,
// updates, or deletes users; the external directory owns them.
type User struct {
	ID        uuid.UUID
	Login     string
	Authority string
	Name      string
	CreatedAt time.Time
}

// Group is a read-only mirror of a directory group.
type Group struct {
	ID        uuid.UUID
	Name      string
	Authority string
	CreatedAt time.Time
}
