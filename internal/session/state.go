package session

import "fmt"

// State is the lifecycle stage of a focus session.
type State int

const (
	// Ready is a session that has not been started.
	Ready State = iota
	// Active is a session that is counting down.
	Active
	// Paused is a started session whose countdown is on hold.
	Paused
	// Completed is terminal: no operation leaves it.
	Completed
)

var stateNames = map[State]string{
	Ready:     "ready",
	Active:    "active",
	Paused:    "paused",
	Completed: "completed",
}

// String returns the lowercase name of the state.
func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}

	return fmt.Sprintf("State(%d)", int(s))
}

// ParseState converts a state name back to a State.
func ParseState(name string) (State, error) {
	for s, n := range stateNames {
		if n == name {
			return s, nil
		}
	}

	return Ready, ErrMalformed.Wrap(fmt.Errorf("unknown state %q", name))
}

// MarshalText encodes the state as its name.
func (s State) MarshalText() ([]byte, error) {
	if _, ok := stateNames[s]; !ok {
		return nil, fmt.Errorf("cannot encode %s", s)
	}

	return []byte(s.String()), nil
}

// UnmarshalText decodes a state name.
func (s *State) UnmarshalText(b []byte) error {
	parsed, err := ParseState(string(b))
	if err != nil {
		return err
	}

	*s = parsed

	return nil
}
