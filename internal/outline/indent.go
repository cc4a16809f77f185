package outline

// IndentStep is the number of terminal columns per outline indent step.
const IndentStep = 2

// Indent returns the left padding, in columns, for an outline level.
// Bullets (level 5) sit between levels 1 and 2.
func Indent(level int) int {
	switch level {
	case 1:
		return 0
	case 2:
		return IndentStep
	case 3:
		return 2 * IndentStep
	case 4:
		return 3 * IndentStep
	case 5:
		return IndentStep / 2
	default:
		return 0
	}
}
