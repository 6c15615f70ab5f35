package annotation

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Create validates and persists a new annotation owned by the identity.
// The target group must be within the identity's scope
// (domain.ErrGroupNotAccessible otherwise).
func (s *Service) Create(ctx context.Context, identity *auth.Identity, input CreateInput) (*domain.Annotation, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	if !identity.Scope().IsAccessible(input.GroupID) {
		return nil, domain.ErrGroupNotAccessible
	}

	now := s.now()
	candidate := &domain.Annotation{
		ID:          uuid.New(),
		UserID:      identity.UserID,
		DocumentURI: input.DocumentURI,
		GroupID:     input.GroupID,
		Metadata:    maps.Clone(input.Metadata),
		Status:      domain.StatusNormal,
		Tags:        slices.Clone(input.Tags),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.annotations.Create(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("annotation.Create: %w", err)
	}

	s.log.InfoContext(ctx, "annotation created",
		slog.String("annotation_id", created.ID.String()),
		slog.String("group_id", created.GroupID.String()),
		slog.Bool("suggestion", created.IsSuggestion()))

	return created, nil
}
