package reveal

import (
	"math"
	"time"
)

const (
	// SwipeMaxDuration is the longest touch that still counts as a swipe.
	SwipeMaxDuration = 600 * time.Millisecond
	// SwipeMinDistance is the horizontal travel, in pixels, a swipe must exceed.
	SwipeMinDistance = 40.0
)

// Touch is one sampled touch point.
type Touch struct {
	X, Y float64
	At   time.Time
}

// ClassifySwipe evaluates a touch from start to end. A quick, mostly
// horizontal movement past SwipeMinDistance is a swipe: leftward reveals the
// next unit, rightward the previous one. Anything else is ActionNone so the
// touch can scroll normally.
func ClassifySwipe(start, end Touch) Action {
	dx := end.X - start.X
	dy := end.Y - start.Y
	dt := end.At.Sub(start.At)

	if dt > SwipeMaxDuration {
		return ActionNone
	}
	if math.Abs(dx) <= math.Abs(dy) || math.Abs(dx) <= SwipeMinDistance {
		return ActionNone
	}
	if dx < 0 {
		return ActionNext
	}
	return ActionPrev
}

// Gesture tracks a single in-flight touch between start and end events.
type Gesture struct {
	start  Touch
	active bool
}

// Begin records the touch-start sample, replacing any unfinished touch.
func (g *Gesture) Begin(t Touch) {
	g.start = t
	g.active = true
}

// Active reports whether a touch has started and not yet ended.
func (g *Gesture) Active() bool { return g.active }

// End closes the touch and classifies it. An end without a start is ignored.
func (g *Gesture) End(t Touch) Action {
	if !g.active {
		return ActionNone
	}
	g.active = false
	return ClassifySwipe(g.start, t)
}

// Cancel drops the in-flight touch.
func (g *Gesture) Cancel() {
	g.active = false
}
