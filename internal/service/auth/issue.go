package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openmargin/annotations-backend/internal/domain"
)

// IssueToken exchanges a verified identity assertion for a fresh token pair.
// Any live pair for the same (user, authority) is superseded in the same
// transaction: stale access tokens are rejected immediately, not merely when
// their own expiry passes.
//
// Returns domain.ErrUnknownClient if the requesting client is not registered
// and domain.ErrInvalidAssertion if the assertion cannot be verified or names
// a login the directory does not know.
func (s *Service) IssueToken(ctx context.Context, input IssueInput) (*TokenPair, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	ident, err := s.verifier.Verify(input.ClientID, input.Assertion)
	if err != nil {
		return nil, err
	}

	user, err := s.dir.GetByLogin(ctx, ident.Login, ident.Authority)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The directory owns provisioning; an assertion naming an
			// unknown login cannot be resolved to an identity.
			s.log.WarnContext(ctx, "assertion for unknown login",
				slog.String("authority", ident.Authority))
			return nil, domain.ErrInvalidAssertion
		}
		return nil, fmt.Errorf("auth.IssueToken get user: %w", err)
	}

	token, pair, err := s.newPair(user)
	if err != nil {
		return nil, fmt.Errorf("auth.IssueToken: %w", err)
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.tokens.DeleteByUserAuthority(txCtx, user.ID, user.Authority); err != nil {
			return fmt.Errorf("supersede pair: %w", err)
		}
		if err := s.tokens.Create(txCtx, token); err != nil {
			return fmt.Errorf("store pair: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("auth.IssueToken: %w", err)
	}

	s.log.InfoContext(ctx, "token pair issued",
		slog.String("user_id", user.ID.String()),
		slog.String("authority", user.Authority),
		slog.String("client_id", input.ClientID))

	return pair, nil
}
