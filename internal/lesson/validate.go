package lesson

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/honphysics/portal/internal/domain"
)

// Validate checks a lesson file before conversion.
// Returns a slice of all validation errors found.
func Validate(f *LessonFile) []error {
	var errs []error

	if len(f.Views) == 0 {
		errs = append(errs, fmt.Errorf("views: at least one view is required"))
	}
	for _, name := range f.Order {
		if _, ok := f.Views[name]; !ok {
			errs = append(errs, fmt.Errorf("order: view %q not defined", name))
		}
	}
	for _, name := range sortedViewNames(f.Views) {
		errs = append(errs, validateView(f.Dir, "views."+name, f.Views[name])...)
	}

	return errs
}

func validateView(dir, prefix string, v *ViewFile) []error {
	if v == nil {
		return []error{fmt.Errorf("%s: view is empty", prefix)}
	}
	var errs []error

	kind := v.Kind()
	if !domain.ValidViewKinds[kind] {
		errs = append(errs, fmt.Errorf("%s.type: invalid value %q", prefix, v.Type))
	}
	if kind == domain.ViewKindMarkdown && v.Text == "" && v.Src == "" {
		errs = append(errs, fmt.Errorf("%s: md view needs text or src", prefix))
	}
	if v.Tool != nil {
		if mode := v.Tool.LaunchMode(); mode != "" && !domain.ValidLaunchModes[mode] {
			errs = append(errs, fmt.Errorf("%s.tool.launch: invalid value %q (expected embed or new-tab)", prefix, mode))
		}
	}
	if v.Src != "" && !filepath.IsLocal(v.Src) {
		errs = append(errs, fmt.Errorf("%s.src: %q must stay inside the lesson directory", prefix, v.Src))
	} else if v.Src != "" {
		if _, err := os.Stat(filepath.Join(dir, v.Src)); errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("%s.src: file %q not found", prefix, v.Src))
		}
	}

	return errs
}

func sortedViewNames(views map[string]*ViewFile) []string {
	names := make([]string, 0, len(views))
	for name := range views {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
