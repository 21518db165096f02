package store

import "github.com/blinkrail/blinkrail/internal/apperr"

var (
	errBlinkrailRunning = &apperr.Error{
		Message: "is Blinkrail already running? Only one instance can be active at a time",
	}

	// ErrNoPausedSession is returned when there is nothing to resume.
	ErrNoPausedSession = &apperr.Error{
		Message: "session not found: please start a new session",
	}

	errSessionNotStarted = &apperr.Error{
		Message: "session %s cannot be archived before it starts",
	}

	errCorruptSession = &apperr.Error{
		Message: "stored session under key %q is corrupt",
	}
)
