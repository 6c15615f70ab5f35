package annotation

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Update applies a partial patch to an annotation owned by the identity.
// Fails with domain.ErrNotFound for an unknown id, domain.ErrForbidden for a
// non-owner, and domain.ErrConflict once the annotation is DELETED. A delete
// that commits first wins over a racing update.
func (s *Service) Update(ctx context.Context, identity *auth.Identity, id uuid.UUID, patch UpdateInput) (*domain.Annotation, error) {
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	current, err := s.annotations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("annotation.Update get: %w", err)
	}

	if current.UserID != identity.UserID {
		return nil, domain.ErrForbidden
	}
	if current.IsDeleted() {
		return nil, domain.ErrConflict
	}

	next := *current
	if patch.Metadata != nil {
		next.Metadata = maps.Clone(*patch.Metadata)
	}
	if patch.Tags != nil {
		next.Tags = slices.Clone(*patch.Tags)
	}
	next.UpdatedAt = s.now()

	// The store re-checks the NORMAL guard; a delete committed since the
	// read above surfaces as Conflict here.
	updated, err := s.annotations.Update(ctx, &next)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("annotation.Update: %w", err)
	}

	return updated, nil
}
