package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Refresh rotates a token pair: both values and both expiries are replaced
// atomically, keeping the same owning user. Of two concurrent refresh calls
// holding the same refresh value, exactly one succeeds; the loser observes
// domain.ErrTokenNotFound because the value it held is stale.
func (s *Service) Refresh(ctx context.Context, input RefreshInput) (*TokenPair, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	token, err := s.tokens.GetByRefreshHash(ctx, auth.HashToken(input.RefreshToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Rotated-out or revoked value presented again.
			s.log.WarnContext(ctx, "refresh token reuse attempted")
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("auth.Refresh get token: %w", err)
	}

	if token.IsRefreshExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.dir.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.log.WarnContext(ctx, "refresh for deleted user",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("auth.Refresh get user: %w", err)
	}

	next, pair, err := s.newPair(user)
	if err != nil {
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tokens.DeleteByID(txCtx, token.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				// Lost the race against a concurrent refresh or revoke.
				return domain.ErrTokenNotFound
			}
			return fmt.Errorf("delete old pair: %w", err)
		}
		if err := s.tokens.Create(txCtx, next); err != nil {
			return fmt.Errorf("store new pair: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrTokenNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("auth.Refresh: %w", err)
	}

	s.log.InfoContext(ctx, "token pair refreshed",
		slog.String("user_id", user.ID.String()))

	return pair, nil
}
