package outline

import "regexp"

// Style is a bit set of inline formatting applied to a span.
type Style uint8

const (
	StyleBold Style = 1 << iota
	StyleItalic
	StyleSub
	StyleSup
)

// SpanPlain is the style of unformatted text.
const SpanPlain Style = 0

// Has reports whether all bits of f are set.
func (s Style) Has(f Style) bool { return s&f == f }

// Span is a run of text sharing one inline style.
type Span struct {
	Text  string
	Style Style
}

type inlineRule struct {
	rx    *regexp.Regexp
	style Style
}

// inlineRules run in order; each rule only sees text that earlier rules
// did not consume as a delimiter. Emphasis comes before tags so
// "**H<sub>2</sub>O**" nests the subscript inside the bold run.
var inlineRules = []inlineRule{
	{regexp.MustCompile(`\*\*([^*]+)\*\*`), StyleBold},
	{regexp.MustCompile(`\*([^*]+)\*`), StyleItalic},
	{regexp.MustCompile(`_([^_]+)_`), StyleItalic},
	{regexp.MustCompile(`(?i)<sub>(.*?)</sub>`), StyleSub},
	{regexp.MustCompile(`(?i)<sup>(.*?)</sup>`), StyleSup},
	{regexp.MustCompile(`(?i)<strong>(.*?)</strong>`), StyleBold},
	{regexp.MustCompile(`(?i)<b>(.*?)</b>`), StyleBold},
	{regexp.MustCompile(`(?i)<em>(.*?)</em>`), StyleItalic},
	{regexp.MustCompile(`(?i)<i>(.*?)</i>`), StyleItalic},
}

// ParseInline splits text into styled spans. Only the whitelisted emphasis
// syntax and tags produce formatting; any other markup is kept verbatim as
// plain text.
func ParseInline(text string) []Span {
	return mergeSpans(parseInline(text, SpanPlain, inlineRules))
}

// PlainText returns the text of spans with all formatting removed.
func PlainText(spans []Span) string {
	var n int
	for _, s := range spans {
		n += len(s.Text)
	}
	b := make([]byte, 0, n)
	for _, s := range spans {
		b = append(b, s.Text...)
	}
	return string(b)
}

func parseInline(text string, style Style, rules []inlineRule) []Span {
	if text == "" {
		return nil
	}
	if len(rules) == 0 {
		return []Span{{Text: text, Style: style}}
	}

	r, rest := rules[0], rules[1:]
	matches := r.rx.FindAllStringSubmatchIndex(text, -1)
	if len(matches) == 0 {
		return parseInline(text, style, rest)
	}

	var spans []Span
	prev := 0
	for _, m := range matches {
		spans = append(spans, parseInline(text[prev:m[0]], style, rest)...)
		spans = append(spans, parseInline(text[m[2]:m[3]], style|r.style, rest)...)
		prev = m[1]
	}
	spans = append(spans, parseInline(text[prev:], style, rest)...)
	return spans
}

func mergeSpans(spans []Span) []Span {
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}
