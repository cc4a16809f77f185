package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "watch <lesson-id>",
		Short: "Open a lesson and reload it whenever its files change",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := app.Lessons.Load(context.Background(), args[0])
			if err != nil {
				return err
			}

			w, err := watcher.New(app.Lessons.Dir(l.ID),
				watcher.WithDebounceDuration(app.Debounce),
				watcher.WithOnError(func(err error) {
					fmt.Fprintln(os.Stderr, formatter.Error(err))
				}),
			)
			if err != nil {
				return err
			}
			if err := w.Start(); err != nil {
				return fmt.Errorf("watching %s: %w", w.Dir(), err)
			}
			defer w.Stop()

			if !app.interactive() {
				return watchPlain(cmd, app, l, w)
			}
			return runTUI(app, []func(*SharedState) View{
				func(s *SharedState) View { return newLessonView(s, l).watchChanges(w.Changed()) },
			})
		},
	}
}

// watchPlain re-renders the first view of the lesson to stdout after every
// change until the command's context ends.
func watchPlain(cmd *cobra.Command, app *App, l *domain.Lesson, w *watcher.Watcher) error {
	out := cmd.OutOrStdout()
	ctx := cmd.Context()
	render := func(l *domain.Lesson) {
		name, err := pickView(l, "")
		if err != nil {
			fmt.Fprintln(out, formatter.Error(err))
			return
		}
		fmt.Fprintln(out, lessonHeader(l, name))
		fmt.Fprintln(out, renderStatic(app, l, name))
	}

	render(l)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Changed():
			next, err := app.Lessons.Load(ctx, l.ID)
			if err != nil {
				fmt.Fprintln(out, formatter.Error(err))
				continue
			}
			fmt.Fprintln(out, formatter.Dim("── reloaded ──"))
			render(next)
		}
	}
}
