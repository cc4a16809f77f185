package formatter

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatCommandHelp(t *testing.T) {
	out := FormatCommandHelp([]HelpCategory{
		{Title: "Lessons", Commands: [][2]string{{"open <lesson>", "open a lesson by id"}}},
		{Title: "Navigation", Commands: [][2]string{{"back", "return to the previous view"}}},
	})

	assert.Contains(t, out, "LESSONS")
	assert.Contains(t, out, "NAVIGATION")
	assert.Contains(t, out, "open <lesson>")
	assert.Contains(t, out, "return to the previous view")
	assert.Less(t, strings.Index(out, "LESSONS"), strings.Index(out, "NAVIGATION"))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinner_WritesAndClears(t *testing.T) {
	var buf syncBuffer
	stop := StartSpinner(&buf, "importing")

	assert.Eventually(t, func() bool {
		return strings.Contains(buf.String(), "importing")
	}, time.Second, 10*time.Millisecond)

	stop()
	stop()
	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"), "stop clears the line")
}
