package annotation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Find returns annotations visible to the identity. With no explicit groups
// the read spans the identity's whole scope; explicitly requested groups
// outside the scope fail with domain.ErrGroupNotAccessible rather than being
// silently dropped.
func (s *Service) Find(ctx context.Context, identity *auth.Identity, input FindInput) ([]domain.Annotation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	scope := identity.Scope()
	groupIDs := input.GroupIDs
	if len(groupIDs) == 0 {
		groupIDs = scope.AccessibleGroupIDs()
		if len(groupIDs) == 0 {
			return nil, nil
		}
	} else {
		for _, g := range groupIDs {
			if !scope.IsAccessible(g) {
				return nil, domain.ErrGroupNotAccessible
			}
		}
	}

	filter := domain.AnnotationFilter{
		GroupIDs:        groupIDs,
		DocumentURI:     input.DocumentURI,
		Status:          input.Status,
		SuggestionsOnly: input.SuggestionsOnly,
		Limit:           input.Limit,
		Offset:          input.Offset,
	}

	found, err := s.annotations.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("annotation.Find: %w", err)
	}
	return found, nil
}

// CountByGroup counts annotations in a single scoped group. Used by
// verification tooling.
func (s *Service) CountByGroup(ctx context.Context, identity *auth.Identity, groupID uuid.UUID) (int, error) {
	if !identity.Scope().IsAccessible(groupID) {
		return 0, domain.ErrGroupNotAccessible
	}

	n, err := s.annotations.CountByGroup(ctx, groupID)
	if err != nil {
		return 0, fmt.Errorf("annotation.CountByGroup: %w", err)
	}
	return n, nil
}
