package models

import "errors"

// Failure classes shared by the core packages. Handlers map these to HTTP
// status codes with errors.Is.
var (
	ErrNotFound          = errors.New("referenced entity does not exist")
	ErrConflict          = errors.New("conflicting record already exists")
	ErrInvalidState      = errors.New("transition not legal from current state")
	ErrForbidden         = errors.New("actor not authorized for this mutation")
	ErrNoAvailableDoctor = errors.New("no accepted and available doctor at this hospital")
)
