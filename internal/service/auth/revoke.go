package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Revoke invalidates all live token pairs for the user. Used on logout.
// Idempotent: revoking a user with no live pairs succeeds.
func (s *Service) Revoke(ctx context.Context, userID uuid.UUID) error {
	if err := s.tokens.DeleteAllByUser(ctx, userID); err != nil {
		return fmt.Errorf("auth.Revoke: %w", err)
	}

	s.log.InfoContext(ctx, "tokens revoked", slog.String("user_id", userID.String()))
	return nil
}
