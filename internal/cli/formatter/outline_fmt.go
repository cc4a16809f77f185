package formatter

import (
	"fmt"
	"strings"

	"github.com/honphysics/portal/internal/outline"
	"github.com/honphysics/portal/internal/reveal"
)

var (
	subscripts = map[rune]rune{
		'0': '₀', '1': '₁', '2': '₂', '3': '₃', '4': '₄',
		'5': '₅', '6': '₆', '7': '₇', '8': '₈', '9': '₉',
		'+': '₊', '-': '₋', '=': '₌', '(': '₍', ')': '₎',
		'a': 'ₐ', 'e': 'ₑ', 'o': 'ₒ', 'x': 'ₓ', 'h': 'ₕ', 'k': 'ₖ',
		'l': 'ₗ', 'm': 'ₘ', 'n': 'ₙ', 'p': 'ₚ', 's': 'ₛ', 't': 'ₜ',
		'i': 'ᵢ', 'r': 'ᵣ', 'u': 'ᵤ', 'v': 'ᵥ', 'j': 'ⱼ',
	}
	superscripts = map[rune]rune{
		'0': '⁰', '1': '¹', '2': '²', '3': '³', '4': '⁴',
		'5': '⁵', '6': '⁶', '7': '⁷', '8': '⁸', '9': '⁹',
		'+': '⁺', '-': '⁻', '−': '⁻', '=': '⁼', '(': '⁽', ')': '⁾',
		'n': 'ⁿ', 'i': 'ⁱ',
	}
)

// scriptText maps every rune of s through table. When any rune has no
// mapping the text falls back to marker{s}.
func scriptText(s string, table map[rune]rune, marker string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		m, ok := table[r]
		if !ok {
			return marker + "{" + s + "}"
		}
		out = append(out, m)
	}
	return string(out)
}

// RenderSpans renders inline spans for the terminal. Text is never
// interpreted as markup here; only the span styles produce formatting.
func RenderSpans(spans []outline.Span) string {
	var b strings.Builder
	for _, s := range spans {
		text := s.Text
		switch {
		case s.Style.Has(outline.StyleSub):
			text = scriptText(text, subscripts, "_")
		case s.Style.Has(outline.StyleSup):
			text = scriptText(text, superscripts, "^")
		}
		style := StyleFg
		switch {
		case s.Style.Has(outline.StyleBold | outline.StyleItalic):
			style = StyleBold.Italic(true)
		case s.Style.Has(outline.StyleBold):
			style = StyleBold
		case s.Style.Has(outline.StyleItalic):
			style = StyleItalic
		}
		if s.Style == outline.SpanPlain {
			b.WriteString(text)
			continue
		}
		b.WriteString(style.Render(text))
	}
	return b.String()
}

// RenderInline parses inline markup in text and renders it.
func RenderInline(text string) string {
	return RenderSpans(outline.ParseInline(text))
}

// RenderNode renders one outline node at its indent.
func RenderNode(n outline.Node, imagePath func(string) string) string {
	switch n.Kind {
	case outline.KindHeading:
		pad := strings.Repeat(" ", outline.Indent(n.Level))
		return pad + HeadingStyle(n.Level).Render(outline.PlainText(outline.ParseInline(n.Text)))
	case outline.KindSubpoint:
		return strings.Repeat(" ", outline.Indent(n.Level)) + RenderInline(n.Text)
	case outline.KindBullet:
		return strings.Repeat(" ", outline.Indent(n.Level)) + StyleYellow.Render("•") + " " + RenderInline(n.Text)
	case outline.KindImage:
		src := n.Text
		if imagePath != nil {
			src = imagePath(src)
		}
		return StyleBlue.Render("▣ image") + " " + Dim(src)
	default:
		return RenderInline(n.Text)
	}
}

// RenderOutline renders nodes one per line.
func RenderOutline(nodes []outline.Node, imagePath func(string) string) string {
	lines := make([]string, len(nodes))
	for i, n := range nodes {
		lines[i] = RenderNode(n, imagePath)
	}
	return strings.Join(lines, "\n")
}

// RenderStep renders one stepper unit: headings and images bare in order,
// then the remaining lines as one body block under the first heading.
func RenderStep(l reveal.StepLayout, imagePath func(string) string) string {
	var parts []string
	for _, n := range l.Bare {
		parts = append(parts, RenderNode(n, imagePath))
	}
	if len(l.Body) > 0 {
		body := make([]string, len(l.Body))
		for i, n := range l.Body {
			body[i] = RenderNode(n, imagePath)
		}
		parts = append(parts, Indent(strings.Join(body, "\n"), l.BodyIndent))
	}
	return strings.Join(parts, "\n")
}

// FormatClassified prints one line per node as "kind level text".
func FormatClassified(nodes []outline.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		fmt.Fprintf(&b, "%-8s %d %s\n", n.Kind, n.Level, n.Text)
	}
	return b.String()
}

// FormatSpans prints the inline spans of each node's text, one span per line.
func FormatSpans(nodes []outline.Node) string {
	var b strings.Builder
	for i, n := range nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, s := range outline.ParseInline(n.Text) {
			fmt.Fprintf(&b, "%-12s %q\n", styleName(s.Style), s.Text)
		}
	}
	return b.String()
}

func styleName(s outline.Style) string {
	if s == outline.SpanPlain {
		return "plain"
	}
	var names []string
	for _, f := range []struct {
		bit  outline.Style
		name string
	}{
		{outline.StyleBold, "bold"},
		{outline.StyleItalic, "italic"},
		{outline.StyleSub, "sub"},
		{outline.StyleSup, "sup"},
	} {
		if s.Has(f.bit) {
			names = append(names, f.name)
		}
	}
	return strings.Join(names, "+")
}
