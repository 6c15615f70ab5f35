package annotation

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/domain"
)

// memAnnotationRepo is an in-memory annotation store with the same guarded
// transition semantics as the PostgreSQL repository: Update and MarkDeleted
// only apply while the row is NORMAL.
type memAnnotationRepo struct {
	mu   sync.Mutex
	rows map[uuid.UUID]domain.Annotation
}

func newMemAnnotationRepo() *memAnnotationRepo {
	return &memAnnotationRepo{rows: make(map[uuid.UUID]domain.Annotation)}
}

func (r *memAnnotationRepo) Create(_ context.Context, a *domain.Annotation) (*domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[a.ID] = *a
	stored := r.rows[a.ID]
	return &stored, nil
}

func (r *memAnnotationRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &row, nil
}

func (r *memAnnotationRepo) Update(_ context.Context, a *domain.Annotation) (*domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.rows[a.ID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if current.Status != domain.StatusNormal {
		return nil, domain.ErrConflict
	}
	r.rows[a.ID] = *a
	stored := r.rows[a.ID]
	return &stored, nil
}

func (r *memAnnotationRepo) MarkDeleted(_ context.Context, id uuid.UUID, deletedAt time.Time, res *domain.Resolution) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.rows[id]
	if !ok {
		return domain.ErrNotFound
	}
	if current.Status != domain.StatusNormal {
		return domain.ErrConflict
	}
	current.Status = domain.StatusDeleted
	current.UpdatedAt = deletedAt
	current.Resolution = res
	r.rows[id] = current
	return nil
}

func (r *memAnnotationRepo) Find(_ context.Context, filter domain.AnnotationFilter) ([]domain.Annotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Annotation
	for _, row := range r.rows {
		if !slices.Contains(filter.GroupIDs, row.GroupID) {
			continue
		}
		if filter.DocumentURI != nil && row.DocumentURI != *filter.DocumentURI {
			continue
		}
		if filter.Status != nil && row.Status != *filter.Status {
			continue
		}
		if filter.SuggestionsOnly && !row.IsSuggestion() {
			continue
		}
		out = append(out, row)
	}
	return out, nil
}

func (r *memAnnotationRepo) CountByGroup(_ context.Context, groupID uuid.UUID) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, row := range r.rows {
		if row.GroupID == groupID {
			n++
		}
	}
	return n, nil
}

// get returns the stored row for assertions.
func (r *memAnnotationRepo) get(id uuid.UUID) (domain.Annotation, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[id]
	return row, ok
}

func (r *memAnnotationRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}
