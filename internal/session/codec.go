package session

import (
	"math"
	"time"

	json "github.com/goccy/go-json"
)

// record is the flat persisted form of a session.
type record struct {
	ID            string         `json:"id"`
	Duration      int64          `json:"duration"`
	RemainingTime int64          `json:"remaining_time"`
	State         State          `json:"state"`
	StartedAt     *time.Time     `json:"started_at,omitempty"`
	CompletedAt   *time.Time     `json:"completed_at,omitempty"`
	Interruptions []Interruption `json:"interruptions"`
}

func (s *Session) toRecord() record {
	r := record{
		ID:            s.id,
		Duration:      int64(s.duration / time.Second),
		RemainingTime: int64(s.remaining / time.Second),
		State:         s.state,
		Interruptions: s.Interruptions(),
	}

	if r.Interruptions == nil {
		r.Interruptions = []Interruption{}
	}

	if t, ok := s.StartedAt(); ok {
		r.StartedAt = &t
	}

	if t, ok := s.CompletedAt(); ok {
		r.CompletedAt = &t
	}

	return r
}

// MarshalJSON encodes the session as a flat record. Durations are whole
// seconds.
func (s *Session) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.toRecord())
}

// UnmarshalJSON restores the state of a session from its record. Clock,
// notifier, reward policy and subscribers are kept.
func (s *Session) UnmarshalJSON(b []byte) error {
	var r record

	err := json.Unmarshal(b, &r)
	if err != nil {
		return ErrMalformed.Wrap(err)
	}

	err = r.validate()
	if err != nil {
		return err
	}

	s.id = r.ID
	s.duration = time.Duration(r.Duration) * time.Second
	s.remaining = time.Duration(r.RemainingTime) * time.Second
	s.state = r.State
	s.interruptions = r.Interruptions
	s.startedAt = time.Time{}
	s.completedAt = time.Time{}

	if isSet(r.StartedAt) {
		s.startedAt = *r.StartedAt
	}

	if isSet(r.CompletedAt) {
		s.completedAt = *r.CompletedAt
	}

	// a restored completed session has already been announced
	s.notified = s.state == Completed

	return nil
}

// maxSeconds is the longest duration, in seconds, that fits a time.Duration.
const maxSeconds = math.MaxInt64 / int64(time.Second)

// isSet reports whether a decoded timestamp carries a time. An explicit zero
// time counts as missing.
func isSet(t *time.Time) bool {
	return t != nil && !t.IsZero()
}

func (r *record) validate() error {
	switch {
	case r.ID == "":
		return ErrInvalidRecord.Fmt("missing id")
	case r.Duration < 0 || r.RemainingTime < 0:
		return ErrInvalidRecord.Fmt("negative duration")
	case r.Duration > maxSeconds:
		return ErrInvalidRecord.Fmt("duration out of range")
	case r.RemainingTime > r.Duration:
		return ErrInvalidRecord.Fmt("remaining time exceeds duration")
	case (r.State != Ready) != isSet(r.StartedAt):
		return ErrInvalidRecord.Fmt("start time does not match state " + r.State.String())
	case (r.State == Completed) != isSet(r.CompletedAt):
		return ErrInvalidRecord.Fmt("completion time does not match state " + r.State.String())
	}

	return nil
}

// Decode restores a session from its JSON record. Options attach the
// collaborators that are not part of the record.
func Decode(b []byte, opts ...Option) (*Session, error) {
	s := newSession(opts...)

	err := s.UnmarshalJSON(b)
	if err != nil {
		return nil, err
	}

	return s, nil
}
