package cli

import "github.com/honphysics/portal/internal/domain"

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Terminal dimensions
	Width  int
	Height int

	// Open lesson, for the command bar's tab completion.
	ActiveLessonID string
	ActiveTabs     []domain.ViewName

	// CmdFocused mirrors the command bar focus so views can ignore
	// shortcut keys while text is being typed.
	CmdFocused bool
}

// SetActiveLesson records the lesson shown by the top lesson view.
func (s *SharedState) SetActiveLesson(l *domain.Lesson) {
	if l == nil {
		s.ActiveLessonID = ""
		s.ActiveTabs = nil
		return
	}
	s.ActiveLessonID = l.ID
	s.ActiveTabs = l.Tabs()
}

// headerHeight is the number of lines above the content area: title and
// separator.
const headerHeight = 2

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator),
// status bar (2 lines: separator + hints), and command bar (1 line).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 1 {
		return 1
	}
	return h
}
