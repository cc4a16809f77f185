package reveal

import (
	"strings"

	"github.com/honphysics/portal/internal/outline"
)

// StepLayout is the render plan for one multi-line unit. Headings and images
// render bare in outline order; everything else is grouped into one body
// block indented by the first heading's level.
type StepLayout struct {
	Bare         []outline.Node
	Body         []outline.Node
	HeadingLevel int
	BodyIndent   int
}

// Layout classifies every line of unit and splits the result into the bare
// and body groups.
func Layout(unit string, c outline.Classifier) StepLayout {
	var l StepLayout
	headingSeen := false
	for _, line := range strings.Split(unit, "\n") {
		n := c.Classify(line)
		if n.IsBare() {
			if n.Kind == outline.KindHeading && !headingSeen {
				headingSeen = true
				l.HeadingLevel = n.Level
			}
			l.Bare = append(l.Bare, n)
			continue
		}
		l.Body = append(l.Body, n)
	}
	if l.HeadingLevel >= 1 && l.HeadingLevel <= 4 {
		l.BodyIndent = outline.Indent(l.HeadingLevel)
	}
	return l
}
