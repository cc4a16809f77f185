package outline

import (
	"regexp"
	"strings"
)

var (
	rxTitleBullet   = regexp.MustCompile(`^\s*[-•]`)
	rxTitleNumber   = regexp.MustCompile(`^\d+[.)]\s`)
	rxTitleLetter   = regexp.MustCompile(`^[A-Za-z][.)]\s`)
	rxTitleRoman    = regexp.MustCompile(`^(?:I|II|III|IV|V|VI|VII|VIII|IX|X|i|ii|iii|iv|v|vi|vii|viii|ix|x)[.)]\s`)
	rxTerminalPunct = regexp.MustCompile(`[.!?:;]\s*$`)
)

const (
	minTitleWords   = 3
	minTitleLetters = 5
)

// LooksLikeTitle reports whether a line reads like an unmarked title such as
// "The Mole (mol) as a Counting Unit": at least three words, at least five
// letters, no terminal punctuation and no leading outline marker.
func (c Classifier) LooksLikeTitle(line string) bool {
	t := strings.TrimSpace(line)
	if t == "" {
		return false
	}
	if rxTitleBullet.MatchString(t) ||
		rxTitleNumber.MatchString(t) ||
		rxTitleLetter.MatchString(t) ||
		rxTitleRoman.MatchString(t) {
		return false
	}
	if rxTerminalPunct.MatchString(t) {
		return false
	}
	if len(strings.Fields(t)) < minTitleWords {
		return false
	}
	if countLetters(t) < minTitleLetters {
		return false
	}
	if !c.AllowColonTitles && strings.Contains(t, ":") {
		return false
	}
	return true
}

func countLetters(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
			n++
		}
	}
	return n
}
