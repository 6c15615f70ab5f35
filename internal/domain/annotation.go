package domain

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// AnnotationStatus is the persisted lifecycle status of an annotation.
// DELETED is terminal; there is no un-delete.
type AnnotationStatus string

const (
	StatusNormal  AnnotationStatus = "NORMAL"
	StatusDeleted AnnotationStatus = "DELETED"
)

func (s AnnotationStatus) String() string { return string(s) }

// IsValid returns true if the status is a known value.
func (s AnnotationStatus) IsValid() bool {
	return s == StatusNormal || s == StatusDeleted
}

// TagSuggestion marks an annotation as a proposed change subject to
// accept/reject resolution. Suggestion semantics are layered over the
// persisted status via this tag, not a separate status field.
const TagSuggestion = "suggestion"

// Metadata keys with reserved semantics.
const (
	// MetaResponseStatus is a workflow marker carried in annotation metadata.
	MetaResponseStatus = "responseStatus"
	// ResponseStatusSent is a terminal workflow marker. It may never be set
	// at creation time.
	ResponseStatusSent = "SENT"
)

// ResolutionOutcome records how a suggestion was resolved.
type ResolutionOutcome string

const (
	ResolutionAccepted ResolutionOutcome = "ACCEPTED"
	ResolutionRejected ResolutionOutcome = "REJECTED"
)

func (o ResolutionOutcome) String() string { return string(o) }

// IsValid returns true if the outcome is a known value.
func (o ResolutionOutcome) IsValid() bool {
	return o == ResolutionAccepted || o == ResolutionRejected
}

// Resolution is the immutable provenance recorded when a suggestion is
// accepted or rejected. The row it lives on is DELETED at the same moment.
type Resolution struct {
	ActorID    uuid.UUID
	Outcome    ResolutionOutcome
	ResolvedAt time.Time
}

// Annotation is the unit of user content: a structured note attached to a
// document, visible within a single group.
type Annotation struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	DocumentURI string
	GroupID     uuid.UUID
	Metadata    map[string]any
	Status      AnnotationStatus
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	Resolution  *Resolution
}

// IsDeleted returns true if the annotation has been soft-deleted.
func (a *Annotation) IsDeleted() bool {
	return a.Status == StatusDeleted
}

// IsSuggestion returns true if the annotation carries the suggestion tag.
func (a *Annotation) IsSuggestion() bool {
	return slices.Contains(a.Tags, TagSuggestion)
}

// IsResolved returns true if suggestion resolution provenance has been
// recorded on the annotation.
func (a *Annotation) IsResolved() bool {
	return a.Resolution != nil
}

// HasSentResponseStatus reports whether the metadata carries the terminal
// responseStatus=SENT workflow marker.
func HasSentResponseStatus(metadata map[string]any) bool {
	v, ok := metadata[MetaResponseStatus]
	if !ok {
		return false
	}
	s, ok := v.(string)
	return ok && s == ResponseStatusSent
}
