package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// ValidateAccessToken resolves a presented bearer value into the identity of
// its owner, or fails with domain.ErrTokenNotFound (absent or superseded
// value) / domain.ErrTokenExpired (strict: a token expiring exactly now is
// already invalid).
func (s *Service) ValidateAccessToken(ctx context.Context, accessToken string) (*auth.Identity, error) {
	if accessToken == "" {
		return nil, domain.ErrTokenNotFound
	}

	token, err := s.tokens.GetByAccessHash(ctx, auth.HashToken(accessToken))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("auth.ValidateAccessToken get token: %w", err)
	}

	if token.IsAccessExpired(s.now()) {
		return nil, domain.ErrTokenExpired
	}

	user, err := s.dir.GetByID(ctx, token.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Owner removed from the directory; the token no longer
			// identifies anyone.
			s.log.WarnContext(ctx, "valid token for deleted user",
				slog.String("user_id", token.UserID.String()))
			return nil, domain.ErrTokenNotFound
		}
		return nil, fmt.Errorf("auth.ValidateAccessToken get user: %w", err)
	}

	groups, err := s.dir.GroupsOfUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth.ValidateAccessToken groups: %w", err)
	}

	return &auth.Identity{
		UserID:    user.ID,
		Login:     user.Login,
		Authority: user.Authority,
		GroupIDs:  groups,
	}, nil
}
