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

// DeleteByID soft-deletes an annotation owned by the identity. The row is
// retained with status DELETED; deletion provenance is never destroyed.
// Deleting an already-DELETED annotation is domain.ErrConflict, not a silent
// success: deletions are single-shot actions with observable effect.
func (s *Service) DeleteByID(ctx context.Context, identity *auth.Identity, id uuid.UUID) error {
	current, err := s.annotations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("annotation.DeleteByID get: %w", err)
	}

	if current.UserID != identity.UserID {
		return domain.ErrForbidden
	}
	if current.IsDeleted() {
		return domain.ErrConflict
	}

	if err := s.annotations.MarkDeleted(ctx, id, s.now(), nil); err != nil {
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrNotFound) {
			return err
		}
		return fmt.Errorf("annotation.DeleteByID: %w", err)
	}

	s.log.InfoContext(ctx, "annotation deleted",
		slog.String("annotation_id", id.String()))

	return nil
}

// BulkDelete soft-deletes multiple annotations with the same preconditions as
// DeleteByID, applied per id. The batch is partial-failure tolerant: one bad
// id never aborts the rest, and the per-id outcome is the only error channel.
func (s *Service) BulkDelete(ctx context.Context, identity *auth.Identity, ids []uuid.UUID) (*BulkDeleteResult, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError("ids", "required (at least 1)")
	}
	if len(ids) > s.cfg.MaxBulkDelete {
		return nil, domain.NewValidationError("ids", fmt.Sprintf("too many (max %d)", s.cfg.MaxBulkDelete))
	}

	result := &BulkDeleteResult{}
	for _, id := range ids {
		if err := s.DeleteByID(ctx, identity, id); err != nil {
			result.Failed = append(result.Failed, BulkDeleteFailure{
				AnnotationID: id,
				Reason:       err.Error(),
			})
			continue
		}
		result.Deleted = append(result.Deleted, id)
	}

	if len(result.Failed) > 0 {
		s.log.WarnContext(ctx, "bulk delete partially failed",
			slog.Int("deleted", len(result.Deleted)),
			slog.Int("failed", len(result.Failed)))
	}

	return result, nil
}
