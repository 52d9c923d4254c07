package wash

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrValidation matches every ValidationError.
	ErrValidation = errors.New("invalid submission")
	// ErrDuplicateInSubmission matches every DuplicateInSubmissionError.
	ErrDuplicateInSubmission = errors.New("duplicate photo in submission")
	// ErrDuplicatePhotoReused matches every DuplicatePhotoReusedError.
	ErrDuplicatePhotoReused = errors.New("photo already used")
	// ErrStoreConflict matches every StoreConflictError.
	ErrStoreConflict = errors.New("wash record conflict")
	// ErrNotFound is returned when a record id does not exist.
	ErrNotFound = errors.New("wash record not found")
	// ErrForbidden is returned when the caller may not perform the operation.
	ErrForbidden = errors.New("operation not allowed")
)

// ValidationError reports missing or malformed submission input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// DuplicateInSubmissionError reports two or more slots of one submission carrying the same photo.
type DuplicateInSubmissionError struct {
	Slots []PhotoSlot
}

func (e *DuplicateInSubmissionError) Error() string {
	return fmt.Sprintf("the same photo was uploaded for slots %s", joinSlots(e.Slots))
}

func (e *DuplicateInSubmissionError) Is(target error) bool { return target == ErrDuplicateInSubmission }

// DuplicatePhotoReusedError reports photos already present in a stored wash record.
type DuplicatePhotoReusedError struct {
	Slots  []PhotoSlot
	UnitID string
	Week   string
	Depot  string
}

func (e *DuplicatePhotoReusedError) Error() string {
	return fmt.Sprintf("photos for slots %s were already used in another wash (unit %s, week %s, depot %s)",
		joinSlots(e.Slots), e.UnitID, e.Week, e.Depot)
}

func (e *DuplicatePhotoReusedError) Is(target error) bool { return target == ErrDuplicatePhotoReused }

// StoreConflictError reports a uniqueness violation on (week, depot, unit). The upsert may be retried.
type StoreConflictError struct {
	Week   string
	Depot  string
	UnitID string
	Err    error
}

func (e *StoreConflictError) Error() string {
	return fmt.Sprintf("concurrent write for unit %s, week %s, depot %s: %v", e.UnitID, e.Week, e.Depot, e.Err)
}

func (e *StoreConflictError) Unwrap() error { return e.Err }

func (e *StoreConflictError) Is(target error) bool { return target == ErrStoreConflict }

// Retryable reports that the upsert can be submitted again.
func (e *StoreConflictError) Retryable() bool { return true }

func joinSlots(slots []PhotoSlot) string {
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
