package model

import "errors"

// Error taxonomy shared by the services and the store. Store implementations
// return these sentinels (usually wrapped) so callers can map them with
// errors.Is without knowing the backend.
var (
	// ErrNotFound means a referenced volunteer, event, match or task does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule was violated: a duplicate
	// (volunteer, event) match or a claim on an already-assigned task
	ErrConflict = errors.New("conflict")

	// ErrCapacityExceeded means the event already holds max_volunteers
	// pending or confirmed matches
	ErrCapacityExceeded = errors.New("capacity exceeded")

	// ErrInvalidArgument means a caller-supplied value is out of range or
	// malformed (negative score, rating outside [0,100], unknown status)
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNoMatch means no open, compatible event qualified for a volunteer
	ErrNoMatch = errors.New("no matching event")
)
