// Package outline classifies loosely formatted lesson text into typed
// outline nodes (headings, subpoints, bullets, images and paragraphs).
package outline

import (
	"regexp"
	"strings"
)

// Kind is the outline role of a classified line.
type Kind string

const (
	KindImage    Kind = "image"
	KindHeading  Kind = "heading"
	KindSubpoint Kind = "subpoint"
	KindBullet   Kind = "bullet"
	KindPara     Kind = "para"
)

// Node is the classification result for one raw line.
type Node struct {
	Kind  Kind
	Text  string
	Level int
}

// IsBare reports whether the node renders outside a step's body block.
func (n Node) IsBare() bool {
	return n.Kind == KindHeading || n.Kind == KindImage
}

// Explicit marker patterns, evaluated against the trimmed line.
// Letters are checked before Roman numerals so "C." is a letter heading.
var (
	rxImage       = regexp.MustCompile(`(?i)^\s*//image\s*_\s*(.+)$`)
	rxUpperLetter = regexp.MustCompile(`^[A-Z][.)]\s+`)
	rxNumber      = regexp.MustCompile(`^\d+[.)]\s+`)
	rxLowerLetter = regexp.MustCompile(`^[a-z][.)]\s+`)
	rxUpperRoman  = regexp.MustCompile(`^(?:I|II|III|IV|V|VI|VII|VIII|IX|X)[.)]\s+`)
	rxLowerRoman  = regexp.MustCompile(`^(?:i|ii|iii|iv|v|vi|vii|viii|ix|x)[.)]\s+`)
	rxBullet      = regexp.MustCompile(`^\s*-\s+`)
)

type markerRule struct {
	rx    *regexp.Regexp
	kind  Kind
	level int
}

// markerRules is the precedence chain for explicit markers. Order matters.
var markerRules = []markerRule{
	{rxUpperLetter, KindHeading, 2},
	{rxNumber, KindHeading, 3},
	{rxLowerLetter, KindSubpoint, 4},
	{rxUpperRoman, KindHeading, 1},
	{rxLowerRoman, KindHeading, 1},
}

// Classifier holds the policy knobs of the classification chain.
// The zero value applies the strict policy: lines containing a colon are
// never promoted to implicit headings.
type Classifier struct {
	// AllowColonTitles lets "Label: value" shaped lines qualify as
	// implicit headings.
	AllowColonTitles bool
}

// Default is the classifier used by the package-level helpers.
var Default = Classifier{}

// Classify classifies a line with the default policy.
func Classify(line string) Node {
	return Default.Classify(line)
}

// LooksLikeTitle applies the implicit-heading heuristic with the default policy.
func LooksLikeTitle(line string) bool {
	return Default.LooksLikeTitle(line)
}

// Classify maps one raw line to exactly one Node. The first matching rule
// wins; a line matching nothing is a paragraph that keeps its original
// (untrimmed) text.
func (c Classifier) Classify(line string) Node {
	trimmed := strings.TrimSpace(line)

	if m := rxImage.FindStringSubmatch(trimmed); m != nil {
		return Node{Kind: KindImage, Text: strings.TrimSpace(m[1]), Level: 0}
	}

	for _, r := range markerRules {
		if r.rx.MatchString(trimmed) {
			return Node{Kind: r.kind, Text: trimmed, Level: r.level}
		}
	}

	if loc := rxBullet.FindStringIndex(line); loc != nil {
		return Node{Kind: KindBullet, Text: line[loc[1]:], Level: 5}
	}

	if c.LooksLikeTitle(trimmed) {
		return Node{Kind: KindHeading, Text: trimmed, Level: 2}
	}

	return Node{Kind: KindPara, Text: line, Level: 0}
}

// ClassifyAll classifies each line independently.
func (c Classifier) ClassifyAll(lines []string) []Node {
	nodes := make([]Node, 0, len(lines))
	for _, l := range lines {
		nodes = append(nodes, c.Classify(l))
	}
	return nodes
}
