// Package testutil holds helpers shared by Blinkrail tests
package testutil

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"

	"github.com/blinkrail/blinkrail/internal/osutil"
)

type GoldenTest interface {
	Output() ([]byte, string)
}

// CompareGoldenFile verifies that the output of an operation matches
// the expected output.
func CompareGoldenFile(t *testing.T, tc GoldenTest) {
	t.Helper()

	if runtime.GOOS == osutil.Windows {
		// TODO: need to sort out line endings
		t.Skip("skipping golden file test in Windows")
	}

	g := goldie.New(
		t,
		goldie.WithFixtureDir("testdata"),
	)

	snap, golden := tc.Output()

	if snap != nil {
		g.Assert(t, golden, snap)
		return
	}

	f := filepath.Join("testdata", golden+".golden")
	if _, err := os.Stat(f); err == nil || errors.Is(err, os.ErrExist) {
		t.Fatalf("expected no output, but golden file exists: %s", f)
	}
}

// Clock is a manually advanced clock for deterministic timestamps.
type Clock struct {
	now time.Time
}

// NewClock returns a clock stopped at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the current fake time.
func (c *Clock) Now() time.Time {
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}
