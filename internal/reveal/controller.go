// Package reveal implements the progressive-disclosure cursor used by the
// stepper: a single revealed count over a fixed sequence of units, driven by
// buttons, keyboard shortcuts and swipe gestures.
package reveal

// Action is one of the four cursor operations.
type Action int

const (
	ActionNone Action = iota
	ActionNext
	ActionPrev
	ActionAll
	ActionReset
)

func (a Action) String() string {
	switch a {
	case ActionNext:
		return "next"
	case ActionPrev:
		return "prev"
	case ActionAll:
		return "all"
	case ActionReset:
		return "reset"
	default:
		return "none"
	}
}

// Controller holds the revealed count over a bound sequence.
// All operations clamp to [0, Total()] and never fail.
type Controller struct {
	identity string
	units    []string
	revealed int
}

// New creates a controller bound to units with nothing revealed.
func New(identity string, units []string) *Controller {
	return &Controller{identity: identity, units: units}
}

// Bind attaches a sequence. A different identity resets the cursor to zero;
// re-binding the same identity keeps the cursor, clamped to the new length.
func (c *Controller) Bind(identity string, units []string) {
	if identity != c.identity {
		c.identity = identity
		c.revealed = 0
	}
	c.units = units
	c.clamp()
}

// Identity returns the identity of the bound sequence.
func (c *Controller) Identity() string { return c.identity }

// Total is the length of the bound sequence.
func (c *Controller) Total() int { return len(c.units) }

// Revealed is the number of units currently disclosed.
func (c *Controller) Revealed() int { return c.revealed }

// Done reports whether every unit is revealed.
func (c *Controller) Done() bool { return c.revealed >= len(c.units) }

// Visible returns the revealed prefix of the sequence.
func (c *Controller) Visible() []string {
	return c.units[:c.revealed]
}

// Next reveals one more unit.
func (c *Controller) Next() {
	c.revealed = min(len(c.units), c.revealed+1)
}

// Prev hides the last revealed unit.
func (c *Controller) Prev() {
	c.revealed = max(0, c.revealed-1)
}

// All reveals every unit.
func (c *Controller) All() {
	c.revealed = len(c.units)
}

// Reset hides every unit.
func (c *Controller) Reset() {
	c.revealed = 0
}

// Enabled reports whether the control for a is active. Forward controls are
// disabled once everything is revealed; backward controls at zero.
func (c *Controller) Enabled(a Action) bool {
	switch a {
	case ActionNext, ActionAll:
		return c.revealed < len(c.units)
	case ActionPrev, ActionReset:
		return c.revealed > 0
	default:
		return false
	}
}

// Apply runs a and reports whether the cursor moved.
func (c *Controller) Apply(a Action) bool {
	before := c.revealed
	switch a {
	case ActionNext:
		c.Next()
	case ActionPrev:
		c.Prev()
	case ActionAll:
		c.All()
	case ActionReset:
		c.Reset()
	}
	return c.revealed != before
}

func (c *Controller) clamp() {
	c.revealed = max(0, min(c.revealed, len(c.units)))
}
