package annotation

import (
	"github.com/google/uuid"

	"github.com/openmargin/annotations-backend/internal/domain"
)

const (
	maxDocumentURILen = 2048
	maxTags           = 32
	maxTagLen         = 128
)

// CreateInput holds parameters for annotation creation.
type CreateInput struct {
	DocumentURI string
	GroupID     uuid.UUID
	Metadata    map[string]any
	Tags        []string
}

// Validate validates the create input. Metadata carrying the terminal
// responseStatus=SENT workflow marker is rejected: creation must not start
// in a finished workflow state.
func (i CreateInput) Validate() error {
	var errs []domain.FieldError

	if i.DocumentURI == "" {
		errs = append(errs, domain.FieldError{Field: "document_uri", Message: "required"})
	} else if len(i.DocumentURI) > maxDocumentURILen {
		errs = append(errs, domain.FieldError{Field: "document_uri", Message: "too long"})
	}

	if i.GroupID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "group_id", Message: "required"})
	}

	if domain.HasSentResponseStatus(i.Metadata) {
		errs = append(errs, domain.FieldError{Field: "metadata", Message: "responseStatus SENT not allowed at creation"})
	}

	errs = append(errs, validateTags(i.Tags)...)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput is a partial patch; nil fields are left untouched.
type UpdateInput struct {
	Metadata *map[string]any
	Tags     *[]string
}

// Validate validates the update patch.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Metadata == nil && i.Tags == nil {
		errs = append(errs, domain.FieldError{Field: "patch", Message: "at least one field required"})
	}
	if i.Tags != nil {
		errs = append(errs, validateTags(*i.Tags)...)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateTags(tags []string) []domain.FieldError {
	var errs []domain.FieldError
	if len(tags) > maxTags {
		errs = append(errs, domain.FieldError{Field: "tags", Message: "too many"})
	}
	for _, tag := range tags {
		if tag == "" || len(tag) > maxTagLen {
			errs = append(errs, domain.FieldError{Field: "tags", Message: "empty or too long tag"})
			break
		}
	}
	return errs
}

// FindInput narrows a visibility read. Empty GroupIDs means "everything the
// identity can see".
type FindInput struct {
	GroupIDs        []uuid.UUID
	DocumentURI     *string
	Status          *domain.AnnotationStatus
	SuggestionsOnly bool
	Limit           int
	Offset          int
}

// Validate validates the find input.
func (i FindInput) Validate() error {
	var errs []domain.FieldError

	if i.Limit < 0 || i.Limit > 1000 {
		errs = append(errs, domain.FieldError{Field: "limit", Message: "out of range (0..1000)"})
	}
	if i.Offset < 0 {
		errs = append(errs, domain.FieldError{Field: "offset", Message: "must be >= 0"})
	}
	if i.Status != nil && !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "unknown status"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}
