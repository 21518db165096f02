package timer

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkrail/blinkrail/internal/ledger"
	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/testutil"
)

var epoch = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

type fakeDB struct {
	saveErr  error
	archived []string
	paused   map[string]int
	deleted  []string
}

func (f *fakeDB) SaveSession(s *session.Session) error {
	f.archived = append(f.archived, s.ID())
	return f.saveErr
}

func (f *fakeDB) GetSessions(_, _ time.Time, _ ...session.Option) ([]*session.Session, error) {
	return nil, nil
}

func (f *fakeDB) SavePaused(s *session.Session) error {
	if f.paused == nil {
		f.paused = make(map[string]int)
	}

	f.paused[s.ID()] = int(s.Remaining() / time.Second)

	return nil
}

func (f *fakeDB) PausedSessions(...session.Option) ([]*session.Session, error) {
	return nil, nil
}

func (f *fakeDB) DeletePaused(id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeDB) Close() error {
	return nil
}

type fakeLedger struct {
	entries []ledger.Entry
}

func (f *fakeLedger) Record(_ context.Context, e ledger.Entry) error {
	f.entries = append(f.entries, e)
	return nil
}

type fakeRecorder struct {
	completed int
}

func (f *fakeRecorder) RecordCompleted(context.Context, *session.Session) error {
	f.completed++
	return nil
}

func (f *fakeRecorder) Close(context.Context) error {
	return nil
}

type fixture struct {
	timer    *Timer
	db       *fakeDB
	ledger   *fakeLedger
	recorder *fakeRecorder
}

func newFixture(t *testing.T, d time.Duration) *fixture {
	t.Helper()

	clock := testutil.NewClock(epoch)

	sess := session.New(d, session.WithID("abc"), session.WithClock(clock))

	f := &fixture{
		db:       &fakeDB{},
		ledger:   &fakeLedger{},
		recorder: &fakeRecorder{},
	}

	f.timer = New(
		context.Background(),
		sess,
		f.db,
		f.ledger,
		f.recorder,
		Options{Clock: clock, ExtendBy: 5 * time.Minute},
	)

	return f
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}

	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}

	_, ok := cmd().(tea.QuitMsg)

	return ok
}

func (f *fixture) send(msg tea.Msg) tea.Cmd {
	_, cmd := f.timer.Update(msg)
	return cmd
}

func (f *fixture) tick() tea.Cmd {
	return f.send(tickMsg{id: f.timer.tickID})
}

func TestInitStartsSession(t *testing.T) {
	f := newFixture(t, time.Minute)

	cmd := f.timer.Init()

	assert.NotNil(t, cmd)
	assert.Equal(t, session.Active, f.timer.Session().State())
}

func TestInitResumesPausedSession(t *testing.T) {
	f := newFixture(t, time.Minute)

	sess := f.timer.Session()
	sess.Start()
	sess.Pause()

	f.timer.Init()

	assert.Equal(t, session.Active, sess.State())
}

func TestTickCountsDown(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.timer.Init()

	cmd := f.tick()

	assert.NotNil(t, cmd)
	assert.False(t, isQuit(cmd))
	assert.Equal(t, 59*time.Second, f.timer.Session().Remaining())
}

func TestStaleTickIsDropped(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.timer.Init()

	stale := tickMsg{id: f.timer.tickID}

	f.send(keyPress("p"))
	require.Equal(t, session.Paused, f.timer.Session().State())

	assert.Nil(t, f.send(stale))
	assert.Equal(t, time.Minute, f.timer.Session().Remaining())

	f.send(keyPress(" "))
	require.Equal(t, session.Active, f.timer.Session().State())

	assert.Nil(t, f.send(stale), "tick from before the pause")
	assert.Equal(t, time.Minute, f.timer.Session().Remaining())

	f.tick()
	assert.Equal(t, 59*time.Second, f.timer.Session().Remaining())
}

func TestPauseSavesSession(t *testing.T) {
	f := newFixture(t, time.Minute)
	f.timer.Init()
	f.tick()

	f.send(keyPress("p"))

	assert.Equal(t, map[string]int{"abc": 59}, f.db.paused)
	assert.Contains(t, f.timer.View(), "PAUSED")
}

func TestCompletionSettlesOnce(t *testing.T) {
	f := newFixture(t, 2*time.Second)
	f.timer.Init()

	assert.False(t, isQuit(f.tick()))
	assert.True(t, isQuit(f.tick()))

	assert.Equal(t, session.Completed, f.timer.Session().State())
	assert.Equal(t, []string{"abc"}, f.db.archived)
	assert.Equal(t, []string{"abc"}, f.db.deleted)
	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, "abc", f.ledger.entries[0].SessionID)
	assert.Equal(t, 1, f.recorder.completed)

	assert.Nil(t, f.tick())
	f.send(keyPress("c"))
	assert.Len(t, f.ledger.entries, 1)

	assert.Contains(t, f.timer.View(), "Your focus session is complete")
}

func TestCompleteKey(t *testing.T) {
	f := newFixture(t, 60*time.Minute)
	f.timer.Init()

	cmd := f.send(keyPress("c"))

	assert.True(t, isQuit(cmd))
	assert.Equal(t, session.Completed, f.timer.Session().State())
	assert.Equal(t, 90, f.ledger.entries[0].Rewards.FocusSparks)
	assert.Contains(t, f.timer.View(), "+90 focus sparks")
	assert.Contains(t, f.timer.View(), "Deep focus bonus")
}

func TestExtendKey(t *testing.T) {
	f := newFixture(t, 25*time.Minute)
	f.timer.Init()

	f.send(keyPress("e"))

	assert.Equal(t, 30*time.Minute, f.timer.Session().Duration())
	assert.Equal(t, 30*time.Minute, f.timer.Session().Remaining())
}

func TestRecordInterruption(t *testing.T) {
	f := newFixture(t, 25*time.Minute)
	f.timer.Init()

	f.send(keyPress("i"))
	require.True(t, f.timer.inputting)

	for _, r := range "slack" {
		f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	// keys meant for the timer are typed into the prompt
	f.send(keyPress("p"))
	assert.Equal(t, session.Active, f.timer.Session().State())

	f.send(keyPress("enter"))

	assert.False(t, f.timer.inputting)

	got := f.timer.Session().Interruptions()
	require.Len(t, got, 1)
	assert.Equal(t, "slackp", got[0].Reason)
	assert.Contains(t, f.timer.View(), "1 interruption")
}

func TestReasonTypedAtTheEndIsKept(t *testing.T) {
	f := newFixture(t, 2*time.Second)
	f.timer.Init()
	f.tick()

	f.send(keyPress("i"))

	for _, r := range "door" {
		f.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}

	cmd := f.tick()

	assert.True(t, isQuit(cmd))
	assert.Equal(t, session.Completed, f.timer.Session().State())
	assert.False(t, f.timer.inputting)

	got := f.timer.Session().Interruptions()
	require.Len(t, got, 1)
	assert.Equal(t, "door", got[0].Reason)

	require.Len(t, f.ledger.entries, 1)
	assert.Equal(t, got, f.ledger.entries[0].Interruptions)
}

func TestCancelInterruption(t *testing.T) {
	f := newFixture(t, 25*time.Minute)
	f.timer.Init()

	f.send(keyPress("i"))
	f.send(keyPress("x"))
	f.send(keyPress("esc"))

	assert.False(t, f.timer.inputting)
	assert.Empty(t, f.timer.Session().Interruptions())
}

func TestQuitSavesUnfinishedSession(t *testing.T) {
	for _, k := range []string{"q", "ctrl+c"} {
		t.Run(k, func(t *testing.T) {
			f := newFixture(t, time.Minute)
			f.timer.Init()
			f.tick()

			cmd := f.send(keyPress(k))

			assert.True(t, isQuit(cmd))
			assert.Equal(t, session.Paused, f.timer.Session().State())
			assert.Equal(t, map[string]int{"abc": 59}, f.db.paused)
			assert.Empty(t, f.db.archived)
			assert.Contains(t, f.timer.View(), "blinkrail resume")
		})
	}
}

func TestSettlementErrorIsShown(t *testing.T) {
	f := newFixture(t, time.Second)
	f.db.saveErr = errors.New("disk full")
	f.timer.Init()

	f.tick()

	assert.Equal(t, session.Completed, f.timer.Session().State())
	require.Error(t, f.timer.Err())
	assert.Len(t, f.ledger.entries, 1, "ledger is still updated")
	assert.Contains(t, f.timer.View(), "disk full")
}

func TestStatusLineClock(t *testing.T) {
	f := newFixture(t, 25*time.Minute)
	f.timer.Init()

	assert.Contains(t, f.timer.statusLine(), "until 09:25 AM")

	f.timer.opts.TwentyFourHour = true
	assert.Contains(t, f.timer.statusLine(), "until 09:25")
}
