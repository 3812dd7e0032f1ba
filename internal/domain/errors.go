package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors used across layers.
var (
	ErrNotFound         = errors.New("not found")
	ErrUnknownItem      = errors.New("unknown item")
	ErrNotSelected      = errors.New("item is not selected")
	ErrInvalidItemID    = errors.New("invalid item id")
	ErrSubmissionLocked = errors.New("a submission is already in flight")
	ErrEmptySelection   = errors.New("nothing selected")
	ErrStaleCompletion  = errors.New("completion does not match the in-flight request")
	ErrNotInFlight      = errors.New("no request in flight")
	ErrViewDetached     = errors.New("view has navigated away")
	ErrUnsupported      = errors.New("not supported by this workflow")
)

// ValidationError lists selected items whose required fields are empty.
// It is raised before any network activity.
type ValidationError struct {
	Missing []ItemID
}

func (e *ValidationError) Error() string {
	ids := make([]string, len(e.Missing))
	for i, id := range e.Missing {
		ids[i] = string(id)
	}
	return fmt.Sprintf("required fields are empty for %s", strings.Join(ids, ", "))
}
