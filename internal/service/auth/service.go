package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/config"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// tokenRepo defines the token store interface needed by the auth service.
// Lookups are keyed by value hash; no scans.
type tokenRepo interface {
	Create(ctx context.Context, token *domain.Token) error
	GetByAccessHash(ctx context.Context, accessHash string) (*domain.Token, error)
	GetByRefreshHash(ctx context.Context, refreshHash string) (*domain.Token, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
	DeleteByUserAuthority(ctx context.Context, userID uuid.UUID, authority string) error
	DeleteAllByUser(ctx context.Context, userID uuid.UUID) error
}

// userDirectory defines the external directory interface needed by the auth
// service. The directory owns users and groups; this service only reads.
type userDirectory interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByLogin(ctx context.Context, login, authority string) (*domain.User, error)
	GroupsOfUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// assertionVerifier defines the identity assertion verification interface.
type assertionVerifier interface {
	Verify(clientID, assertion string) (*auth.AssertionIdentity, error)
}

// txManager defines the transaction manager interface needed by the auth
// service. Pair rotation must be atomic: no intermediate state where only
// one token of a pair is valid.
type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements token issuance, validation, refresh, and revocation.
type Service struct {
	log      *slog.Logger
	tokens   tokenRepo
	dir      userDirectory
	verifier assertionVerifier
	tx       txManager
	cfg      config.AuthConfig
	now      func() time.Time
}

// NewService creates a new auth service instance.
func NewService(
	logger *slog.Logger,
	tokens tokenRepo,
	dir userDirectory,
	verifier assertionVerifier,
	tx txManager,
	cfg config.AuthConfig,
) *Service {
	return &Service{
		log:      logger.With("service", "auth"),
		tokens:   tokens,
		dir:      dir,
		verifier: verifier,
		tx:       tx,
		cfg:      cfg,
		now:      time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// newPair builds a fresh token pair for the user, returning the record to
// persist together with the raw values that go back to the client.
func (s *Service) newPair(user *domain.User) (*domain.Token, *TokenPair, error) {
	rawAccess, accessHash, err := auth.NewTokenValue()
	if err != nil {
		return nil, nil, fmt.Errorf("generate access token: %w", err)
	}

	rawRefresh, refreshHash, err := auth.NewTokenValue()
	if err != nil {
		return nil, nil, fmt.Errorf("generate refresh token: %w", err)
	}

	now := s.now()
	token := &domain.Token{
		ID:               uuid.New(),
		UserID:           user.ID,
		Authority:        user.Authority,
		AccessHash:       accessHash,
		AccessExpiresAt:  now.Add(s.cfg.AccessTokenTTL),
		RefreshHash:      refreshHash,
		RefreshExpiresAt: now.Add(s.cfg.RefreshTokenTTL),
		CreatedAt:        now,
	}

	pair := &TokenPair{
		AccessToken:      rawAccess,
		RefreshToken:     rawRefresh,
		AccessExpiresAt:  token.AccessExpiresAt,
		RefreshExpiresAt: token.RefreshExpiresAt,
		User:             user,
	}

	return token, pair, nil
}
