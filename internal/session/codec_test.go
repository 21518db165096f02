package session_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/testutil"
)

type recordGolden struct {
	s      *session.Session
	t      *testing.T
	golden string
}

func (r recordGolden) Output() ([]byte, string) {
	r.t.Helper()

	b, err := r.s.MarshalJSON()
	require.NoError(r.t, err)

	var buf bytes.Buffer

	require.NoError(r.t, json.Indent(&buf, b, "", "  "))

	buf.WriteByte('\n')

	return buf.Bytes(), r.golden
}

func TestMarshalGolden(t *testing.T) {
	t.Run("paused", func(t *testing.T) {
		clock := testutil.NewClock(epoch)

		s := session.New(
			25*time.Minute,
			session.WithID("7c9e6679-7425-40de-944b-e07fc1f90ae7"),
			session.WithClock(clock),
		)

		s.Start()
		clock.Advance(time.Minute)
		s.RecordInterruption("slack ping")

		for range 3 {
			s.Tick()
		}

		s.Pause()

		testutil.CompareGoldenFile(t, recordGolden{
			t:      t,
			s:      s,
			golden: "paused_session",
		})
	})

	t.Run("completed", func(t *testing.T) {
		clock := testutil.NewClock(epoch)

		s := session.New(
			65*time.Minute,
			session.WithID("d6f1c0a2-3b4e-4f5a-8c7d-9e0f1a2b3c4d"),
			session.WithClock(clock),
		)

		s.Start()
		clock.Advance(65 * time.Minute)

		for s.Tick() {
		}

		testutil.CompareGoldenFile(t, recordGolden{
			t:      t,
			s:      s,
			golden: "completed_session",
		})
	})
}

func TestRoundTrip(t *testing.T) {
	s, clock, _ := newTestSession(t, 50*time.Minute)

	s.Start()
	clock.Advance(2 * time.Minute)
	s.RecordInterruption("coffee")

	for range 120 {
		s.Tick()
	}

	s.Pause()

	b, err := json.Marshal(s)
	require.NoError(t, err)

	got, err := session.Decode(b)
	require.NoError(t, err)

	assert.Equal(t, s.ID(), got.ID())
	assert.Equal(t, s.State(), got.State())
	assert.Equal(t, s.Duration(), got.Duration())
	assert.Equal(t, s.Remaining(), got.Remaining())
	assert.Equal(t, s.Interruptions(), got.Interruptions())

	want, _ := s.StartedAt()
	have, ok := got.StartedAt()
	require.True(t, ok)
	assert.True(t, want.Equal(have))

	again, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, string(b), string(again))
}

func TestDecodedSessionContinues(t *testing.T) {
	b := []byte(`{
		"id": "abc",
		"duration": 120,
		"remaining_time": 1,
		"state": "paused",
		"started_at": "2024-03-10T09:00:00Z",
		"interruptions": []
	}`)

	spy := &notifierSpy{}

	s, err := session.Decode(
		b,
		session.WithClock(testutil.NewClock(epoch.Add(time.Hour))),
		session.WithNotifier(spy),
	)
	require.NoError(t, err)

	require.True(t, s.Resume())
	require.True(t, s.Tick())

	assert.Equal(t, session.Completed, s.State())
	assert.Len(t, spy.calls, 1)
	assert.Equal(t, 2, s.CalculateRewards().FocusSparks)
}

func TestDecodedCompletedSessionIsNotAnnouncedAgain(t *testing.T) {
	b := []byte(`{
		"id": "abc",
		"duration": 60,
		"remaining_time": 0,
		"state": "completed",
		"started_at": "2024-03-10T09:00:00Z",
		"completed_at": "2024-03-10T09:01:00Z",
		"interruptions": null
	}`)

	spy := &notifierSpy{}

	s, err := session.Decode(b, session.WithNotifier(spy))
	require.NoError(t, err)

	assert.False(t, s.Start())
	assert.False(t, s.Complete())
	assert.Empty(t, spy.calls)
	assert.Equal(t, 1, s.CalculateRewards().FocusSparks)
}

func TestUnmarshalKeepsCollaborators(t *testing.T) {
	s, _, spy := newTestSession(t, time.Minute)

	var calls int

	s.Subscribe(func(session.Transition) {
		calls++
	})

	err := s.UnmarshalJSON([]byte(`{
		"id": "restored",
		"duration": 1,
		"remaining_time": 1,
		"state": "active",
		"started_at": "2024-03-10T09:00:00Z"
	}`))
	require.NoError(t, err)

	assert.Equal(t, "restored", s.ID())

	s.Tick()

	assert.Equal(t, 1, calls)
	assert.Len(t, spy.calls, 1)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		err   error
		name  string
		input string
	}{
		{
			name:  "not json",
			input: `session`,
			err:   session.ErrMalformed,
		},
		{
			name:  "wrong type",
			input: `{"id": "x", "duration": "25m", "remaining_time": 0, "state": "ready"}`,
			err:   session.ErrMalformed,
		},
		{
			name:  "unknown state",
			input: `{"id": "x", "duration": 60, "remaining_time": 60, "state": "sleeping"}`,
			err:   session.ErrMalformed,
		},
		{
			name:  "missing id",
			input: `{"duration": 60, "remaining_time": 60, "state": "ready"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "negative duration",
			input: `{"id": "x", "duration": -60, "remaining_time": 0, "state": "ready"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "remaining exceeds duration",
			input: `{"id": "x", "duration": 60, "remaining_time": 61, "state": "ready"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "active without start time",
			input: `{"id": "x", "duration": 60, "remaining_time": 30, "state": "active"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "ready with start time",
			input: `{"id": "x", "duration": 60, "remaining_time": 60, "state": "ready", "started_at": "2024-03-10T09:00:00Z"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "completed without completion time",
			input: `{"id": "x", "duration": 60, "remaining_time": 0, "state": "completed", "started_at": "2024-03-10T09:00:00Z"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "duration overflows",
			input: `{"id": "x", "duration": 10000000000, "remaining_time": 10000000000, "state": "paused", "started_at": "2024-03-10T09:00:00Z"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "active with zero start time",
			input: `{"id": "x", "duration": 60, "remaining_time": 30, "state": "active", "started_at": "0001-01-01T00:00:00Z"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "completed with zero completion time",
			input: `{"id": "x", "duration": 60, "remaining_time": 0, "state": "completed", "started_at": "2024-03-10T09:00:00Z", "completed_at": "0001-01-01T00:00:00Z"}`,
			err:   session.ErrInvalidRecord,
		},
		{
			name:  "paused with completion time",
			input: `{"id": "x", "duration": 60, "remaining_time": 10, "state": "paused", "started_at": "2024-03-10T09:00:00Z", "completed_at": "2024-03-10T09:01:00Z"}`,
			err:   session.ErrInvalidRecord,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := session.Decode([]byte(tc.input))

			assert.Nil(t, s)
			require.Error(t, err)
			assert.True(
				t,
				errors.Is(err, tc.err),
				"expected %v, got %v",
				tc.err,
				err,
			)
		})
	}
}

func TestFailedUnmarshalLeavesSessionUntouched(t *testing.T) {
	s, _, _ := newTestSession(t, time.Minute)

	err := s.UnmarshalJSON([]byte(`{"id": "", "duration": 1}`))
	require.Error(t, err)

	assert.Equal(t, "test-session", s.ID())
	assert.Equal(t, time.Minute, s.Duration())
}

func TestStateText(t *testing.T) {
	for _, st := range []session.State{
		session.Ready,
		session.Active,
		session.Paused,
		session.Completed,
	} {
		b, err := st.MarshalText()
		require.NoError(t, err)

		got, err := session.ParseState(string(b))
		require.NoError(t, err)
		assert.Equal(t, st, got)
	}

	_, err := session.State(42).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "State(42)", session.State(42).String())
}
