package reveal

import (
	"testing"

	"pgregory.net/rapid"
)

func TestProperty_CursorStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 12).Draw(t, "total")
		units := make([]string, n)
		c := New("seq", units)

		model := 0
		ops := rapid.SliceOf(rapid.SampledFrom([]Action{ActionNext, ActionPrev, ActionAll, ActionReset, ActionNone})).Draw(t, "ops")
		for _, op := range ops {
			enabled := c.Enabled(op)
			changed := c.Apply(op)

			switch op {
			case ActionNext:
				model = min(n, model+1)
			case ActionPrev:
				model = max(0, model-1)
			case ActionAll:
				model = n
			case ActionReset:
				model = 0
			}

			if c.Revealed() != model {
				t.Fatalf("after %v: revealed %d, want %d", op, c.Revealed(), model)
			}
			if c.Revealed() < 0 || c.Revealed() > c.Total() {
				t.Fatalf("revealed %d outside [0, %d]", c.Revealed(), c.Total())
			}
			if changed && !enabled {
				t.Fatalf("%v changed state while disabled", op)
			}
			if len(c.Visible()) != c.Revealed() {
				t.Fatalf("visible prefix has %d units, cursor is %d", len(c.Visible()), c.Revealed())
			}
		}
	})
}
