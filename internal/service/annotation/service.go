// Package annotation implements the annotation lifecycle: creation, update,
// soft deletion (single and bulk), and the suggestion accept/reject workflow.
// Every operation takes the authenticated identity explicitly and enforces
// ownership, group scope, and status preconditions before committing a
// transition.
package annotation

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/auth"
	"github.com/openmargin/annotations-backend/internal/config"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// annotationRepo defines the store interface needed by the lifecycle service.
//
// Update and MarkDeleted are guarded transitions: they succeed only while the
// row status is NORMAL. On a guard miss they return domain.ErrConflict if the
// row exists (already DELETED) and domain.ErrNotFound if it does not. This is
// the per-row atomicity the ordering rule relies on: whichever transition the
// store commits first wins, later conflicting transitions observe Conflict.
type annotationRepo interface {
	Create(ctx context.Context, a *domain.Annotation) (*domain.Annotation, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Annotation, error)
	Update(ctx context.Context, a *domain.Annotation) (*domain.Annotation, error)
	MarkDeleted(ctx context.Context, id uuid.UUID, deletedAt time.Time, res *domain.Resolution) error
	Find(ctx context.Context, filter domain.AnnotationFilter) ([]domain.Annotation, error)
	CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error)
}

// Service implements the annotation lifecycle state machine.
type Service struct {
	log         *slog.Logger
	annotations annotationRepo
	resolver    auth.SuggestionResolver
	cfg         config.AnnotationConfig
	now         func() time.Time
}

// NewService creates a new annotation service instance.
func NewService(
	logger *slog.Logger,
	annotations annotationRepo,
	resolver auth.SuggestionResolver,
	cfg config.AnnotationConfig,
) *Service {
	return &Service{
		log:         logger.With("service", "annotation"),
		annotations: annotations,
		resolver:    resolver,
		cfg:         cfg,
		now:         time.Now,
	}
}

// WithClock overrides the service clock. Intended for tests.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}
