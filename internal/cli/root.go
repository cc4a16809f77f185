package cli

import (
	"time"

	"github.com/honphysics/portal/internal/launcher"
	"github.com/honphysics/portal/internal/outline"
	"github.com/honphysics/portal/internal/service"
	"github.com/spf13/cobra"
)

// App holds the services and settings used by CLI commands and the TUI.
type App struct {
	Courses service.CourseService
	Tools   service.ToolService
	Lessons service.LessonService

	Classifier outline.Classifier
	// PageURL is the address tool hrefs resolve against.
	PageURL string
	Opener  launcher.Opener

	// Pixel size of one terminal cell, used to turn mouse drags into swipes.
	CellWidthPx  float64
	CellHeightPx float64
	Debounce     time.Duration

	// HistoryPath is where command bar history persists; empty keeps it in memory.
	HistoryPath string

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool
	// Now is the clock for gestures and timestamps; nil means time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) opener() launcher.Opener {
	if a.Opener != nil {
		return a.Opener
	}
	return launcher.BrowserOpener{}
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "portal" command. Without a subcommand
// an interactive terminal opens the TUI; otherwise help is printed.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "portal",
		Short:         "Physics course portal, lesson viewer and stepper",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !app.interactive() {
				return cmd.Help()
			}
			return runTUI(app, nil)
		},
	}

	root.AddCommand(
		newClassifyCmd(app),
		newLessonCmd(app),
		newCourseCmd(app),
		newUnlockCmd(app),
		newToolsCmd(app),
		newToolCmd(app),
		newWatchCmd(app),
	)

	return root
}
