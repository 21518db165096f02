package ui

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintTable(t *testing.T) {
	pterm.DisableColor()

	var buf bytes.Buffer

	err := PrintTable([][]string{
		{"#", "STARTED"},
		{"1", "Mar 10, 2024 09:00 AM"},
	}, &buf)
	require.NoError(t, err)

	out := buf.String()

	assert.Contains(t, out, "STARTED")
	assert.Contains(t, out, "Mar 10, 2024 09:00 AM")
}
