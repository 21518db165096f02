package session

import "github.com/blinkrail/blinkrail/internal/apperr"

var (
	// ErrMalformed is returned when a session record cannot be decoded.
	ErrMalformed = &apperr.Error{
		Message: "malformed session record",
	}

	// ErrInvalidRecord is returned when a decoded record breaks a session
	// invariant.
	ErrInvalidRecord = &apperr.Error{
		Message: "invalid session record: %s",
	}
)
