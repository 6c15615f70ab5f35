// Package annotation implements the annotation repository using PostgreSQL.
// Fixed-shape statements use raw SQL; the filtered listing is built with
// squirrel. Metadata is stored as JSONB and tags as a text array.
package annotation

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/openmargin/annotations-backend/internal/adapter/postgres"
	"github.com/openmargin/annotations-backend/internal/domain"
)

// Repo provides annotation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new annotation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const annotationColumns = `id, user_id, document_uri, group_id, metadata, status, tags,
       created_at, updated_at, resolution_actor_id, resolution_outcome, resolution_resolved_at`

const createSQL = `
INSERT INTO annotations (id, user_id, document_uri, group_id, metadata, status, tags,
                         created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + annotationColumns

const getByIDSQL = `
SELECT ` + annotationColumns + `
FROM annotations
WHERE id = $1`

// updateSQL only touches rows still in NORMAL status; the service relies on
// this guard to lose cleanly against a concurrent delete.
const updateSQL = `
UPDATE annotations
SET metadata = $2, tags = $3, updated_at = $4
WHERE id = $1 AND status = 'NORMAL'
RETURNING ` + annotationColumns

const markDeletedSQL = `
UPDATE annotations
SET status = 'DELETED', updated_at = $2,
    resolution_actor_id = $3, resolution_outcome = $4, resolution_resolved_at = $5
WHERE id = $1 AND status = 'NORMAL'`

// Create inserts a new annotation and returns the persisted row.
func (r *Repo) Create(ctx context.Context, a *domain.Annotation) (*domain.Annotation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		a.ID, a.UserID, a.DocumentURI, a.GroupID,
		metadataOrEmpty(a.Metadata), string(a.Status), tagsOrEmpty(a.Tags),
		a.CreatedAt, a.UpdatedAt,
	)

	created, err := scanAnnotation(row)
	if err != nil {
		return nil, postgres.MapError(err, "annotation", a.ID)
	}

	return created, nil
}

// GetByID returns an annotation by primary key regardless of status.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Annotation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	a, err := scanAnnotation(querier.QueryRow(ctx, getByIDSQL, id))
	if err != nil {
		return nil, postgres.MapError(err, "annotation", id)
	}

	return a, nil
}

// Update replaces metadata and tags on a NORMAL annotation and returns the
// persisted row. On a guard miss: domain.ErrConflict if the row exists
// (already DELETED), domain.ErrNotFound if it does not.
func (r *Repo) Update(ctx context.Context, a *domain.Annotation) (*domain.Annotation, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateSQL, a.ID, metadataOrEmpty(a.Metadata), tagsOrEmpty(a.Tags), a.UpdatedAt)

	updated, err := scanAnnotation(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, r.guardMiss(ctx, a.ID)
		}
		return nil, postgres.MapError(err, "annotation", a.ID)
	}

	return updated, nil
}

// MarkDeleted transitions a NORMAL annotation to DELETED, stamping updated_at
// and, for suggestion resolutions, the resolution columns. On a guard miss:
// domain.ErrConflict if the row exists, domain.ErrNotFound if it does not.
func (r *Repo) MarkDeleted(ctx context.Context, id uuid.UUID, deletedAt time.Time, res *domain.Resolution) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var actorID *uuid.UUID
	var outcome *string
	var resolvedAt *time.Time
	if res != nil {
		actorID = &res.ActorID
		o := string(res.Outcome)
		outcome = &o
		resolvedAt = &res.ResolvedAt
	}

	tag, err := querier.Exec(ctx, markDeletedSQL, id, deletedAt, actorID, outcome, resolvedAt)
	if err != nil {
		return postgres.MapError(err, "annotation", id)
	}
	if tag.RowsAffected() == 0 {
		return r.guardMiss(ctx, id)
	}

	return nil
}

// guardMiss disambiguates a zero-row guarded write: the row is either already
// DELETED (Conflict) or absent (NotFound).
func (r *Repo) guardMiss(ctx context.Context, id uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var exists bool
	err := querier.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM annotations WHERE id = $1)`, id,
	).Scan(&exists)
	if err != nil {
		return postgres.MapError(err, "annotation", id)
	}

	if exists {
		return fmt.Errorf("annotation %s: %w", id, domain.ErrConflict)
	}
	return fmt.Errorf("annotation %s: %w", id, domain.ErrNotFound)
}

// Find returns annotations matching the filter, newest first. The filter's
// GroupIDs are already scope-checked by the service.
func (r *Repo) Find(ctx context.Context, filter domain.AnnotationFilter) ([]domain.Annotation, error) {
	if len(filter.GroupIDs) == 0 {
		return []domain.Annotation{}, nil
	}

	builder := sq.Select(
		"id", "user_id", "document_uri", "group_id", "metadata", "status", "tags",
		"created_at", "updated_at",
		"resolution_actor_id", "resolution_outcome", "resolution_resolved_at",
	).
		From("annotations").
		Where(sq.Eq{"group_id": filter.GroupIDs}).
		OrderBy("created_at DESC", "id").
		PlaceholderFormat(sq.Dollar)

	if filter.DocumentURI != nil {
		builder = builder.Where(sq.Eq{"document_uri": *filter.DocumentURI})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": string(*filter.Status)})
	}
	if filter.SuggestionsOnly {
		builder = builder.Where(sq.Expr("? = ANY(tags)", domain.TagSuggestion))
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build find query: %w", err)
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("find annotations: %w", err)
	}
	defer rows.Close()

	annotations, err := scanAnnotations(rows)
	if err != nil {
		return nil, fmt.Errorf("find annotations: %w", err)
	}

	return annotations, nil
}

// CountByGroup returns the number of annotations in a group, any status.
func (r *Repo) CountByGroup(ctx context.Context, groupID uuid.UUID) (int, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	var count int
	err := querier.QueryRow(ctx,
		`SELECT count(*) FROM annotations WHERE group_id = $1`, groupID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count annotations by group: %w", err)
	}

	return count, nil
}

// ---------------------------------------------------------------------------
// Row scanning helpers
// ---------------------------------------------------------------------------

// metadataOrEmpty keeps nil maps out of the NOT NULL jsonb column.
func metadataOrEmpty(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	return m
}

// tagsOrEmpty keeps nil slices out of the NOT NULL text[] column.
func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

// scanAnnotation scans one row in annotationColumns order, folding the three
// nullable resolution columns back into a *domain.Resolution.
func scanAnnotation(row pgx.Row) (*domain.Annotation, error) {
	var (
		a          domain.Annotation
		status     string
		actorID    *uuid.UUID
		outcome    *string
		resolvedAt *time.Time
	)

	err := row.Scan(
		&a.ID, &a.UserID, &a.DocumentURI, &a.GroupID,
		&a.Metadata, &status, &a.Tags,
		&a.CreatedAt, &a.UpdatedAt,
		&actorID, &outcome, &resolvedAt,
	)
	if err != nil {
		return nil, err
	}

	a.Status = domain.AnnotationStatus(status)
	if actorID != nil && outcome != nil && resolvedAt != nil {
		a.Resolution = &domain.Resolution{
			ActorID:    *actorID,
			Outcome:    domain.ResolutionOutcome(*outcome),
			ResolvedAt: *resolvedAt,
		}
	}

	return &a, nil
}

func scanAnnotations(rows pgx.Rows) ([]domain.Annotation, error) {
	var annotations []domain.Annotation
	for rows.Next() {
		a, err := scanAnnotation(rows)
		if err != nil {
			return nil, err
		}
		annotations = append(annotations, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if annotations == nil {
		annotations = []domain.Annotation{}
	}

	return annotations, nil
}
