package ledger

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blinkrail/blinkrail/internal/session"
)

func TestRecordKeepsInterruptionTimes(t *testing.T) {
	ctx := context.Background()

	l, err := Open(filepath.Join(t.TempDir(), "ledger.db"))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = l.Close()
	})

	start := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.UTC)

	e := Entry{
		SessionID:   "a",
		StartedAt:   start,
		CompletedAt: start.Add(25 * time.Minute),
		Duration:    25 * time.Minute,
		Interruptions: []session.Interruption{
			{Reason: "phone", Timestamp: start.Add(3 * time.Minute)},
			{Reason: "door", Timestamp: start.Add(11 * time.Minute)},
		},
	}

	require.NoError(t, l.Record(ctx, e))

	rows, err := l.db.QueryContext(
		ctx,
		`SELECT reason, at FROM interruptions WHERE session_id = ? ORDER BY position`,
		"a",
	)
	require.NoError(t, err)

	defer rows.Close()

	var got []session.Interruption

	for rows.Next() {
		var (
			reason string
			at     int64
		)

		require.NoError(t, rows.Scan(&reason, &at))

		got = append(got, session.Interruption{
			Reason:    reason,
			Timestamp: time.Unix(at, 0).UTC(),
		})
	}

	require.NoError(t, rows.Err())
	assert.Equal(t, e.Interruptions, got)
}
