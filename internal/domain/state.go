package domain

import "time"

// FieldState is the derived validation/value state of one input.
type FieldState struct {
	Required bool
	Value    string
}

// DerivedState holds the dependent inputs of a selected item.
type DerivedState struct {
	Quantity FieldState
	Unit     FieldState
}

// Get returns the state of a single field.
func (d DerivedState) Get(f Field) FieldState {
	if f == FieldUnit {
		return d.Unit
	}
	return d.Quantity
}

// Missing reports whether a required field has no value.
func (d DerivedState) Missing() bool {
	return (d.Quantity.Required && d.Quantity.Value == "") ||
		(d.Unit.Required && d.Unit.Value == "")
}

// Snapshot is the frozen selection captured when a submit is accepted.
// Payloads are built from a Snapshot only, never from live state.
type Snapshot struct {
	IDs     []ItemID
	Meta    map[ItemID]Metadata
	Fields  map[ItemID]DerivedState
	TakenAt time.Time
}

// Empty reports whether nothing was selected.
func (s Snapshot) Empty() bool { return len(s.IDs) == 0 }

// Has reports whether id is part of the snapshot.
func (s Snapshot) Has(id ItemID) bool {
	for _, v := range s.IDs {
		if v == id {
			return true
		}
	}
	return false
}

// RequestStatus is the lifecycle of the single in-flight request a
// workflow instance may have.
type RequestStatus int

const (
	RequestIdle RequestStatus = iota
	RequestInFlight
	RequestSucceeded
	RequestFailed
)

// String returns a human-readable request status.
func (s RequestStatus) String() string {
	switch s {
	case RequestIdle:
		return "idle"
	case RequestInFlight:
		return "in flight"
	case RequestSucceeded:
		return "succeeded"
	case RequestFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RequestState tags the status with the request id (in flight) or the
// failure reason.
type RequestState struct {
	Status RequestStatus
	ID     string
	Reason string
}

// String renders the state for status bars and logs.
func (r RequestState) String() string {
	switch r.Status {
	case RequestInFlight:
		return "in flight (" + r.ID + ")"
	case RequestFailed:
		if r.Reason != "" {
			return "failed: " + r.Reason
		}
	}
	return r.Status.String()
}
