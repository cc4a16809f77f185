package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadHistory_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "history")
	assert.Nil(t, loadHistory(path))
	assert.Nil(t, loadHistory(""))
}

func TestLoadHistory_ReadsLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte("open 2-1\n\ntab examples\nback\n"), 0o644))

	assert.Equal(t, []string{"open 2-1", "tab examples", "back"}, loadHistory(path))
}

func TestLoadHistory_TruncatesOverMax(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("home\n", 600)), 0o644))

	assert.Len(t, loadHistory(path), maxHistoryLines)
}

func TestAppendHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "history")

	appendHistory(path, "open 2-1")
	appendHistory(path, "  tab notes  ")
	appendHistory(path, "   ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "open 2-1\ntab notes\n", string(data))
}

func TestCommandBar_PersistsHistory(t *testing.T) {
	env := testApp(t)
	env.app.HistoryPath = filepath.Join(t.TempDir(), "history")
	appendHistory(env.app.HistoryPath, "open 2-1")

	d := NewTestDriver(t, env.app)
	d.Command("help")
	assert.Equal(t, []string{"open 2-1", "help"}, loadHistory(env.app.HistoryPath))

	// Up recalls the newest entry first, including ones from earlier sessions.
	d.PressKey(':')
	d.PressUp()
	assert.Equal(t, "help", d.appModel().cmdBar.input.Value())
	d.PressUp()
	assert.Equal(t, "open 2-1", d.appModel().cmdBar.input.Value())
	d.PressDown()
	d.PressDown()
	assert.Empty(t, d.appModel().cmdBar.input.Value())
}
