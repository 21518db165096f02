package store

import (
	"time"

	"github.com/blinkrail/blinkrail/internal/session"
)

// DB is the database storage interface.
type DB interface {
	// SaveSession archives a finished session. Saving the same session again
	// overwrites the earlier copy.
	SaveSession(sess *session.Session) error
	// GetSessions returns archived sessions that started within the given
	// bounds in ascending order of start time
	GetSessions(
		since, until time.Time,
		opts ...session.Option,
	) ([]*session.Session, error)
	// SavePaused stores an unfinished session so that it can be resumed later
	SavePaused(sess *session.Session) error
	// PausedSessions returns the saved unfinished sessions, most recently
	// started first. The options attach collaborators to the decoded sessions.
	PausedSessions(opts ...session.Option) ([]*session.Session, error)
	// DeletePaused removes a saved unfinished session
	DeletePaused(id string) error
	// Close ends the database connection
	Close() error
}
