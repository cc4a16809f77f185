package reveal

// KeyContext describes the input focus when a key arrives.
type KeyContext struct {
	// InputFocused is set while a text input (command bar, form) has focus.
	InputFocused bool
	// Composing is set while composed input (IME, bracketed paste) is
	// being delivered.
	Composing bool
}

// KeyAction maps a key name to a cursor action. The boolean is false when
// the key is not a reveal shortcut or must be ignored in the given context;
// callers consume the key only when it is true.
func KeyAction(key string, ctx KeyContext) (Action, bool) {
	if ctx.InputFocused || ctx.Composing {
		return ActionNone, false
	}
	switch key {
	case "right", " ", "space":
		return ActionNext, true
	case "left":
		return ActionPrev, true
	case "a", "A":
		return ActionAll, true
	case "r", "R":
		return ActionReset, true
	}
	return ActionNone, false
}
