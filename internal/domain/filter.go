package domain

import "github.com/google/uuid"

// AnnotationFilter narrows annotation reads. GroupIDs is mandatory for every
// query: visibility is always group-scoped, there is no unscoped read path.
type AnnotationFilter struct {
	GroupIDs        []uuid.UUID
	DocumentURI     *string
	Status          *AnnotationStatus
	SuggestionsOnly bool
	Limit           int
	Offset          int
}
