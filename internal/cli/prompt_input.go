package cli

import (
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question on out and reads the answer from in.
// An empty answer, or no answer at all, picks defaultYes.
func confirm(in io.Reader, out io.Writer, question string, defaultYes bool) bool {
	hint := "[y/N]"
	if defaultYes {
		hint = "[Y/n]"
	}
	if out != nil {
		fmt.Fprintf(out, "%s %s ", question, hint)
	}

	text, err := readPromptLine(in)
	if err != nil && text == "" {
		return defaultYes
	}

	switch strings.TrimSpace(strings.ToLower(text)) {
	case "":
		return defaultYes
	case "y", "yes":
		return true
	}
	return false
}

// readPromptLine reads until either LF or CR so Enter works in normal and raw terminal modes.
func readPromptLine(in io.Reader) (string, error) {
	if in == nil {
		return "", io.EOF
	}

	var buf []byte
	var one [1]byte

	for {
		n, err := in.Read(one[:])
		if n > 0 {
			switch one[0] {
			case '\n', '\r':
				return string(buf), nil
			default:
				buf = append(buf, one[0])
			}
		}

		if err != nil {
			if err == io.EOF && len(buf) > 0 {
				return string(buf), nil
			}
			return string(buf), err
		}
	}
}
