package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// StepCounter renders the reveal progress as "n/total".
func StepCounter(revealed, total int) string {
	return fmt.Sprintf("%d/%d", revealed, total)
}

// RenderStepBar renders a compact block bar for revealed/total, followed by
// the counter. An empty sequence renders only the counter.
func RenderStepBar(revealed, total, width int) string {
	counter := StepCounter(revealed, total)
	if total <= 0 {
		return Dim(counter)
	}
	if width < 2 {
		width = 2
	}
	filled := revealed * width / total
	filled = max(0, min(filled, width))

	style := StyleYellow
	if revealed >= total {
		style = StyleGreen
	}
	bar := style.Render(strings.Repeat(filledBlock, filled)) + Dim(strings.Repeat(emptyBlock, width-filled))
	return bar + " " + counter
}
