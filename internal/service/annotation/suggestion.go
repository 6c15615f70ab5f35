package annotation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// AcceptSuggestionByID resolves a suggestion as accepted. The row transitions
// to DELETED with immutable acceptance provenance; any conversion of the
// accepted content into a regular annotation is layered above this engine.
func (s *Service) AcceptSuggestionByID(ctx context.Context, identity *auth.Identity, id uuid.UUID) error {
	return s.resolveSuggestion(ctx, identity, id, domain.ResolutionAccepted)
}

// RejectSuggestionByID resolves a suggestion as rejected, recording rejection
// provenance on the DELETED row.
func (s *Service) RejectSuggestionByID(ctx context.Context, identity *auth.Identity, id uuid.UUID) error {
	return s.resolveSuggestion(ctx, identity, id, domain.ResolutionRejected)
}

// resolveSuggestion applies the shared accept/reject preconditions:
// domain.ErrNotFound for an unknown id, domain.ErrValidation when the
// annotation is not a suggestion, domain.ErrConflict once already resolved or
// deleted (idempotent-failure, never idempotent-success), and
// domain.ErrForbidden when the capability predicate denies the actor.
func (s *Service) resolveSuggestion(ctx context.Context, identity *auth.Identity, id uuid.UUID, outcome domain.ResolutionOutcome) error {
	current, err := s.annotations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("annotation.resolveSuggestion get: %w", err)
	}

	if !current.IsSuggestion() {
		return domain.NewValidationError("annotation", "not a suggestion")
	}
	if current.IsDeleted() {
		return domain.ErrConflict
	}
	if !s.resolver(identity, current.GroupID) {
		return domain.ErrForbidden
	}

	now := s.now()
	res := &domain.Resolution{
		ActorID:    identity.UserID,
		Outcome:    outcome,
		ResolvedAt: now,
	}
	if err := s.annotations.MarkDeleted(ctx, id, now, res); err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("annotation.resolveSuggestion: %w", err)
	}

	s.log.InfoContext(ctx, "suggestion resolved",
		slog.String("annotation_id", id.String()),
		slog.String("outcome", outcome.String()),
		slog.String("actor_id", identity.UserID.String()))

	return nil
}
