package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/ariel-frischer/dailyrelease/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedHistory(t *testing.T) string {
	t.Helper()

	stateDir := t.TempDir()
	base := time.Date(2024, time.May, 1, 6, 0, 0, 0, time.UTC)
	require.NoError(t, history.SaveHistory(stateDir, &history.File{Entries: []history.Entry{
		{Timestamp: base, Release: "2024.04.30", Date: "2024-04-30", Outcome: history.OutcomeSkipped, Duration: "1s", Detail: "no pull requests merged"},
		{Timestamp: base.Add(24 * time.Hour), Release: "2024.05.01", Date: "2024-05-01", Pulls: 3, Outcome: history.OutcomePublished, Duration: "4s", ReleaseURL: "https://github.com/o/r/releases/tag/2024.05.01"},
		{Timestamp: base.Add(48 * time.Hour), Release: "2024.05.02", Date: "2024-05-02", Pulls: 1, Outcome: history.OutcomeFailed, Duration: "2s", Detail: "push rejected"},
	}}))
	return stateDir
}

func TestRunHistory_Plain(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runHistoryWithStateDir(&out, seedHistory(t), 2, true))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "2024-05-03T06:00:00Z\t2024.05.02\t2024-05-02\t1\tfailed\t2s\tpush rejected", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2024-05-02T06:00:00Z\t2024.05.01\t"))
}

func TestRunHistory_Pretty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runHistoryWithStateDir(&out, seedHistory(t), 0, false))

	text := out.String()
	assert.Contains(t, text, "https://github.com/o/r/releases/tag/2024.05.01")
	assert.Contains(t, text, "(no pull requests merged)")
	assert.Equal(t, 3, strings.Count(text, "\n"))
}

func TestRunHistory_Empty(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, runHistoryWithStateDir(&out, t.TempDir(), 0, false))
	assert.Equal(t, "No history available.\n", out.String())
}
