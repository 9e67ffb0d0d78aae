package domain

import "fmt"

// ValidationError represents malformed or out-of-domain input.
type ValidationError struct {
	Message string
}

func (e ValidationError) Error() string {
	if e.Message == "" {
		return "validation failed"
	}
	return e.Message
}

// Is enables errors.Is matching on ValidationError.
func (e ValidationError) Is(target error) bool {
	_, ok := target.(ValidationError)
	if ok {
		return true
	}
	_, ok = target.(*ValidationError)
	return ok
}

// ErrValidation is the sentinel error for malformed input.
var ErrValidation = ValidationError{}

// NotFoundError represents a missing resource. The repository also
// returns it when an update targets an id that does not exist.
type NotFoundError struct {
	Resource string
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// Is enables errors.Is matching on NotFoundError.
func (e NotFoundError) Is(target error) bool {
	_, ok := target.(NotFoundError)
	if ok {
		return true
	}
	_, ok = target.(*NotFoundError)
	return ok
}

// ErrNotFound is the sentinel error for missing resources.
var ErrNotFound = NotFoundError{}

// NotOrganizerError means the requester does not own the webinar.
type NotOrganizerError struct {
	WebinarID string
	UserID    string
}

func (e NotOrganizerError) Error() string {
	return "user is not allowed to update this webinar"
}

// Is enables errors.Is matching on NotOrganizerError.
func (e NotOrganizerError) Is(target error) bool {
	_, ok := target.(NotOrganizerError)
	if ok {
		return true
	}
	_, ok = target.(*NotOrganizerError)
	return ok
}

// ErrNotOrganizer is the sentinel error for ownership rejections.
var ErrNotOrganizer = NotOrganizerError{}

// ReduceSeatsError means the requested count is below the stored one.
// Seat counts only move up through this service.
type ReduceSeatsError struct {
	Current   int
	Requested int
}

func (e ReduceSeatsError) Error() string {
	return fmt.Sprintf("cannot reduce seats from %d to %d", e.Current, e.Requested)
}

// Is enables errors.Is matching on ReduceSeatsError.
func (e ReduceSeatsError) Is(target error) bool {
	_, ok := target.(ReduceSeatsError)
	if ok {
		return true
	}
	_, ok = target.(*ReduceSeatsError)
	return ok
}

// ErrReduceSeats is the sentinel error for seat reductions.
var ErrReduceSeats = ReduceSeatsError{}

// TooManySeatsError means the requested count exceeds the fixed ceiling.
type TooManySeatsError struct {
	Requested int
	Limit     int
}

func (e TooManySeatsError) Error() string {
	return fmt.Sprintf("seat count %d exceeds the maximum of %d", e.Requested, e.Limit)
}

// Is enables errors.Is matching on TooManySeatsError.
func (e TooManySeatsError) Is(target error) bool {
	_, ok := target.(TooManySeatsError)
	if ok {
		return true
	}
	_, ok = target.(*TooManySeatsError)
	return ok
}

// ErrTooManySeats is the sentinel error for ceiling violations.
var ErrTooManySeats = TooManySeatsError{}

// ConflictError means a create collided with an existing id.
type ConflictError struct {
	Resource string
}

func (e ConflictError) Error() string {
	if e.Resource == "" {
		return "already exists"
	}
	return fmt.Sprintf("%s already exists", e.Resource)
}

// Is enables errors.Is matching on ConflictError.
func (e ConflictError) Is(target error) bool {
	_, ok := target.(ConflictError)
	if ok {
		return true
	}
	_, ok = target.(*ConflictError)
	return ok
}

// ErrConflict is the sentinel error for duplicate creations.
var ErrConflict = ConflictError{}
