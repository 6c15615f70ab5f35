package annotation

import "github.com/google/uuid"

// BulkDeleteFailure records why one id in a bulk delete was not deleted.
type BulkDeleteFailure struct {
	AnnotationID uuid.UUID
	Reason       string
}

// BulkDeleteResult is the per-id outcome of a bulk delete. The batch is never
// all-or-nothing; callers must inspect both slices.
type BulkDeleteResult struct {
	Deleted []uuid.UUID
	Failed  []BulkDeleteFailure
}
