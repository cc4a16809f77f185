package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// choiceFlag is a string flag restricted to a fixed set of values.
type choiceFlag struct {
	value   string
	choices []string
}

var _ pflag.Value = (*choiceFlag)(nil)

func newChoiceFlag(def string, choices ...string) *choiceFlag {
	return &choiceFlag{value: def, choices: choices}
}

func (f *choiceFlag) String() string { return f.value }

func (f *choiceFlag) Set(s string) error {
	for _, c := range f.choices {
		if strings.EqualFold(s, c) {
			f.value = c
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.choices, ", "))
}

func (f *choiceFlag) Type() string { return "string" }

// viewFlag holds a lesson view name. Any name is accepted since lessons
// may define their own tabs; the lesson decides whether it exists.
type viewFlag struct {
	name string
}

var _ pflag.Value = (*viewFlag)(nil)

func (f *viewFlag) String() string { return f.name }

func (f *viewFlag) Set(s string) error {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return fmt.Errorf("view name is empty")
	}
	f.name = s
	return nil
}

func (f *viewFlag) Type() string { return "view" }
