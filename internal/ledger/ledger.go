// Package ledger keeps a queryable record of the rewards earned by completed
// sessions in a SQLite database
package ledger

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/maruel/natural"
	_ "modernc.org/sqlite"

	"github.com/blinkrail/blinkrail/internal/apperr"
	"github.com/blinkrail/blinkrail/internal/osutil"
	"github.com/blinkrail/blinkrail/internal/session"
	"github.com/blinkrail/blinkrail/internal/timeutil"
)

var (
	errOpenLedger = &apperr.Error{
		Message: "unable to open reward ledger at %s",
	}
	errRecord = &apperr.Error{
		Message: "unable to record rewards for session %s",
	}
	errQuery = &apperr.Error{
		Message: "unable to query reward ledger",
	}
	errNotCompleted = &apperr.Error{
		Message: "session %s has not completed",
	}
)

const schema = `
CREATE TABLE IF NOT EXISTS rewards (
	session_id TEXT PRIMARY KEY,
	started_at INTEGER NOT NULL,
	completed_at INTEGER NOT NULL,
	day TEXT NOT NULL,
	duration_seconds INTEGER NOT NULL,
	focus_sparks INTEGER NOT NULL,
	experience_points INTEGER NOT NULL,
	has_bonus INTEGER NOT NULL,
	interruptions INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS interruptions (
	session_id TEXT NOT NULL,
	position INTEGER NOT NULL,
	reason TEXT NOT NULL,
	at INTEGER NOT NULL,
	PRIMARY KEY (session_id, position)
);

CREATE INDEX IF NOT EXISTS idx_rewards_started_at ON rewards(started_at);
`

// Entry is the ledger row of one completed session.
type Entry struct {
	StartedAt     time.Time
	CompletedAt   time.Time
	SessionID     string
	Interruptions []session.Interruption
	Duration      time.Duration
	Rewards       session.Rewards
}

// NewEntry builds the ledger entry of a completed session.
func NewEntry(s *session.Session) (Entry, error) {
	completedAt, ok := s.CompletedAt()
	if !ok {
		return Entry{}, errNotCompleted.Fmt(s.ID())
	}

	startedAt, _ := s.StartedAt()

	return Entry{
		SessionID:     s.ID(),
		StartedAt:     startedAt,
		CompletedAt:   completedAt,
		Duration:      s.Duration(),
		Rewards:       s.CalculateRewards(),
		Interruptions: s.Interruptions(),
	}, nil
}

// Totals summarises the ledger over a period.
type Totals struct {
	Sessions         int           `json:"sessions"`
	FocusSparks      int           `json:"focus_sparks"`
	ExperiencePoints int           `json:"experience_points"`
	BonusSessions    int           `json:"bonus_sessions"`
	Interruptions    int           `json:"interruptions"`
	FocusTime        time.Duration `json:"focus_time"`
}

// Day is the ledger total of a single calendar day.
type Day struct {
	Day string `json:"day"`
	Totals
}

// Reason counts how often an interruption reason was logged.
type Reason struct {
	Reason string `json:"reason"`
	Count  int    `json:"count"`
}

// Ledger is a SQLite backed reward ledger.
type Ledger struct {
	db *sql.DB
}

// Open creates or opens the ledger database at path.
func Open(path string) (*Ledger, error) {
	err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission)
	if err != nil {
		return nil, errOpenLedger.Fmt(path).Wrap(err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errOpenLedger.Fmt(path).Wrap(err)
	}

	// sqlite allows a single writer
	db.SetMaxOpenConns(1)

	_, err = db.Exec(schema)
	if err != nil {
		_ = db.Close()
		return nil, errOpenLedger.Fmt(path).Wrap(err)
	}

	return &Ledger{db: db}, nil
}

// Close closes the database connection.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Record stores the rewards of a session. Recording the same session again
// replaces the earlier row.
func (l *Ledger) Record(ctx context.Context, e Entry) error {
	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return errRecord.Fmt(e.SessionID).Wrap(err)
	}

	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(
		ctx,
		`INSERT OR REPLACE INTO rewards (
			session_id, started_at, completed_at, day, duration_seconds,
			focus_sparks, experience_points, has_bonus, interruptions
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.SessionID,
		e.StartedAt.Unix(),
		e.CompletedAt.Unix(),
		timeutil.DayKey(e.StartedAt.Local()),
		int64(e.Duration/time.Second),
		e.Rewards.FocusSparks,
		e.Rewards.ExperiencePoints,
		e.Rewards.HasBonus,
		len(e.Interruptions),
	)
	if err != nil {
		return errRecord.Fmt(e.SessionID).Wrap(err)
	}

	_, err = tx.ExecContext(
		ctx,
		`DELETE FROM interruptions WHERE session_id = ?`,
		e.SessionID,
	)
	if err != nil {
		return errRecord.Fmt(e.SessionID).Wrap(err)
	}

	for i, v := range e.Interruptions {
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO interruptions (session_id, position, reason, at)
			VALUES (?, ?, ?, ?)`,
			e.SessionID,
			i,
			v.Reason,
			v.Timestamp.Unix(),
		)
		if err != nil {
			return errRecord.Fmt(e.SessionID).Wrap(err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return errRecord.Fmt(e.SessionID).Wrap(err)
	}

	return nil
}

const totalsColumns = `
	COUNT(*),
	COALESCE(SUM(focus_sparks), 0),
	COALESCE(SUM(experience_points), 0),
	COALESCE(SUM(has_bonus), 0),
	COALESCE(SUM(interruptions), 0),
	COALESCE(SUM(duration_seconds), 0)`

func scanTotals(row interface{ Scan(...any) error }, t *Totals) error {
	var secs int64

	err := row.Scan(
		&t.Sessions,
		&t.FocusSparks,
		&t.ExperiencePoints,
		&t.BonusSessions,
		&t.Interruptions,
		&secs,
	)
	if err != nil {
		return err
	}

	t.FocusTime = time.Duration(secs) * time.Second

	return nil
}

// Totals sums the sessions that started within the given bounds.
func (l *Ledger) Totals(ctx context.Context, since, until time.Time) (Totals, error) {
	var t Totals

	row := l.db.QueryRowContext(
		ctx,
		`SELECT `+totalsColumns+`
		FROM rewards
		WHERE started_at >= ? AND started_at <= ?`,
		since.Unix(),
		until.Unix(),
	)

	err := scanTotals(row, &t)
	if err != nil {
		return Totals{}, errQuery.Wrap(err)
	}

	return t, nil
}

// Daily returns one row per day with sessions in the given bounds, in
// ascending order.
func (l *Ledger) Daily(ctx context.Context, since, until time.Time) ([]Day, error) {
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT day, `+totalsColumns+`
		FROM rewards
		WHERE started_at >= ? AND started_at <= ?
		GROUP BY day
		ORDER BY day ASC`,
		since.Unix(),
		until.Unix(),
	)
	if err != nil {
		return nil, errQuery.Wrap(err)
	}

	defer rows.Close()

	var days []Day

	for rows.Next() {
		var (
			d    Day
			secs int64
		)

		err = rows.Scan(
			&d.Day,
			&d.Sessions,
			&d.FocusSparks,
			&d.ExperiencePoints,
			&d.BonusSessions,
			&d.Interruptions,
			&secs,
		)
		if err != nil {
			return nil, errQuery.Wrap(err)
		}

		d.FocusTime = time.Duration(secs) * time.Second

		days = append(days, d)
	}

	err = rows.Err()
	if err != nil {
		return nil, errQuery.Wrap(err)
	}

	return days, nil
}

// Reasons returns the interruption reasons logged during sessions in the
// given bounds, most frequent first. Ties are ordered naturally by reason and
// blank reasons are skipped. A limit of zero returns every reason.
func (l *Ledger) Reasons(
	ctx context.Context,
	since, until time.Time,
	limit int,
) ([]Reason, error) {
	rows, err := l.db.QueryContext(
		ctx,
		`SELECT i.reason, COUNT(*)
		FROM interruptions i
		JOIN rewards r ON r.session_id = i.session_id
		WHERE r.started_at >= ? AND r.started_at <= ? AND TRIM(i.reason) != ''
		GROUP BY i.reason`,
		since.Unix(),
		until.Unix(),
	)
	if err != nil {
		return nil, errQuery.Wrap(err)
	}

	defer rows.Close()

	var reasons []Reason

	for rows.Next() {
		var r Reason

		err = rows.Scan(&r.Reason, &r.Count)
		if err != nil {
			return nil, errQuery.Wrap(err)
		}

		reasons = append(reasons, r)
	}

	err = rows.Err()
	if err != nil {
		return nil, errQuery.Wrap(err)
	}

	slices.SortFunc(reasons, func(a, b Reason) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}

		if natural.Less(a.Reason, b.Reason) {
			return -1
		}

		if natural.Less(b.Reason, a.Reason) {
			return 1
		}

		return 0
	})

	if limit > 0 && len(reasons) > limit {
		reasons = reasons[:limit]
	}

	return reasons, nil
}
