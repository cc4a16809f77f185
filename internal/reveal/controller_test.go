package reveal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func fiveSteps() []string {
	return []string{"s1", "s2", "s3", "s4", "s5"}
}

func TestController_StartsAtZero(t *testing.T) {
	c := New("lesson/examples", fiveSteps())
	assert.Equal(t, 0, c.Revealed())
	assert.Equal(t, 5, c.Total())
	assert.Empty(t, c.Visible())
}

func TestController_PrevAtZeroIsNoop(t *testing.T) {
	c := New("x", fiveSteps())
	c.Prev()
	assert.Equal(t, 0, c.Revealed())
}

func TestController_NextClampsAtTotal(t *testing.T) {
	c := New("x", fiveSteps())
	for i := 0; i < 7; i++ {
		c.Next()
	}
	assert.Equal(t, 5, c.Revealed())
	assert.True(t, c.Done())
}

func TestController_AllIsIdempotent(t *testing.T) {
	c := New("x", fiveSteps())
	c.All()
	c.All()
	assert.Equal(t, c.Total(), c.Revealed())
}

func TestController_ResetAndPrev(t *testing.T) {
	c := New("x", fiveSteps())
	c.Next()
	c.Next()
	c.Next()
	c.Prev()
	assert.Equal(t, 2, c.Revealed())
	assert.Equal(t, []string{"s1", "s2"}, c.Visible())

	c.Reset()
	assert.Equal(t, 0, c.Revealed())
}

func TestController_BindNewIdentityResets(t *testing.T) {
	c := New("lesson-1/examples", fiveSteps())
	c.All()

	c.Bind("lesson-2/examples", []string{"a", "b"})
	assert.Equal(t, 0, c.Revealed())
	assert.Equal(t, 2, c.Total())
	assert.Equal(t, "lesson-2/examples", c.Identity())
}

func TestController_BindSameIdentityKeepsCursorClamped(t *testing.T) {
	c := New("x", fiveSteps())
	c.Next()
	c.Next()
	c.Next()

	c.Bind("x", fiveSteps())
	assert.Equal(t, 3, c.Revealed())

	c.Bind("x", []string{"only"})
	assert.Equal(t, 1, c.Revealed())
}

func TestController_EmptySequence(t *testing.T) {
	c := New("empty", nil)
	for _, a := range []Action{ActionNext, ActionPrev, ActionAll, ActionReset} {
		assert.False(t, c.Apply(a), a.String())
		assert.False(t, c.Enabled(a), a.String())
	}
	assert.Equal(t, 0, c.Revealed())
	assert.Empty(t, c.Visible())
	assert.True(t, c.Done())
}

func TestController_Enabled(t *testing.T) {
	c := New("x", fiveSteps())

	assert.True(t, c.Enabled(ActionNext))
	assert.True(t, c.Enabled(ActionAll))
	assert.False(t, c.Enabled(ActionPrev))
	assert.False(t, c.Enabled(ActionReset))

	c.All()
	assert.False(t, c.Enabled(ActionNext))
	assert.False(t, c.Enabled(ActionAll))
	assert.True(t, c.Enabled(ActionPrev))
	assert.True(t, c.Enabled(ActionReset))

	assert.False(t, c.Enabled(ActionNone))
}

func TestController_ApplyReportsChange(t *testing.T) {
	c := New("x", []string{"only"})
	assert.True(t, c.Apply(ActionNext))
	assert.False(t, c.Apply(ActionNext))
	assert.False(t, c.Apply(ActionAll))
	assert.True(t, c.Apply(ActionReset))
	assert.False(t, c.Apply(ActionNone))
}

func TestController_RapidEventsCompose(t *testing.T) {
	c := New("x", fiveSteps())
	c.Apply(ActionNext)
	c.Apply(ActionNext)
	assert.Equal(t, 2, c.Revealed())
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "next", ActionNext.String())
	assert.Equal(t, "prev", ActionPrev.String())
	assert.Equal(t, "all", ActionAll.String())
	assert.Equal(t, "reset", ActionReset.String())
	assert.Equal(t, "none", ActionNone.String())
}
