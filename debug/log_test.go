package debug

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readLog(t *testing.T, dir string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, "debug.log"))
	require.NoError(t, err)
	return string(data)
}

func TestLogDisabledIsNoop(t *testing.T) {
	Disable()
	assert.False(t, Enabled())
	Log("test", "nothing %d", 1)
	Error("test", errors.New("boom"), "nothing")
}

func TestLogWritesCategory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")
	require.NoError(t, Enable(dir))
	defer Disable()
	assert.True(t, Enabled())

	Log("player", "tick=%d", 7)
	Error("session", errors.New("device busy"), "start failed")
	Error("session", nil, "not logged")

	out := readLog(t, dir)
	assert.Contains(t, out, "Debug logging started")
	assert.Contains(t, out, "cat=player")
	assert.Contains(t, out, "tick=7")
	assert.Contains(t, out, "start failed")
	assert.Contains(t, out, "device busy")
	assert.NotContains(t, out, "not logged")
}

func TestLogEvery(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Enable(dir))
	defer Disable()

	for i := 0; i < 6; i++ {
		LogEvery(3, "every", "burst")
	}

	out := readLog(t, dir)
	assert.Contains(t, out, "count=3")
	assert.Contains(t, out, "count=6")
	assert.NotContains(t, out, "count=4")
}
