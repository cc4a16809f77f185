package cli

import (
	"context"
	"fmt"

	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/reveal"
	"github.com/spf13/cobra"
)

func newLessonCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lesson",
		Short: "Show lesson views",
	}

	cmd.AddCommand(
		newLessonShowCmd(app),
		newLessonStepsCmd(app),
		newLessonRecentCmd(app),
	)

	return cmd
}

func newLessonShowCmd(app *App) *cobra.Command {
	view := &viewFlag{}

	cmd := &cobra.Command{
		Use:   "show <lesson-id>",
		Short: "Render one view of a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := app.Lessons.Load(ctx, args[0])
			if err != nil {
				return err
			}
			name, err := pickView(l, view.String())
			if err != nil {
				return err
			}
			if err := app.Lessons.Open(ctx, l.ID, name); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, lessonHeader(l, name))
			fmt.Fprintln(out)
			fmt.Fprintln(out, renderStatic(app, l, name))
			return nil
		},
	}

	cmd.Flags().Var(view, "view", "View to render (default: first tab)")
	return cmd
}

func newLessonStepsCmd(app *App) *cobra.Command {
	view := &viewFlag{name: string(domain.ViewExamples)}
	var n int
	var all bool

	cmd := &cobra.Command{
		Use:   "steps <lesson-id>",
		Short: "Reveal the first steps of a steps view",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			l, err := app.Lessons.Load(ctx, args[0])
			if err != nil {
				return err
			}
			name, err := pickView(l, view.String())
			if err != nil {
				return err
			}
			v := l.View(name)
			if v.Kind != domain.ViewKindSteps {
				return fmt.Errorf("view %q of lesson %s is a %s view, not steps", name, l.ID, v.Kind)
			}

			ctrl := reveal.New(l.SequenceID(name), v.Steps)
			if all {
				ctrl.Apply(reveal.ActionAll)
			} else {
				for range min(n, ctrl.Total()) {
					ctrl.Apply(reveal.ActionNext)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, lessonHeader(l, name))
			fmt.Fprintln(out, formatter.RenderStepBar(ctrl.Revealed(), ctrl.Total(), 12))
			for _, step := range ctrl.Visible() {
				fmt.Fprintln(out)
				fmt.Fprintln(out, formatter.RenderStep(reveal.Layout(step, app.Classifier), l.ImagePath))
			}
			return nil
		},
	}

	cmd.Flags().Var(view, "view", "Steps view to reveal")
	cmd.Flags().IntVar(&n, "reveal", 1, "Number of steps to reveal")
	cmd.Flags().BoolVar(&all, "all", false, "Reveal every step")
	cmd.MarkFlagsMutuallyExclusive("reveal", "all")
	return cmd
}

func newLessonRecentCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List recently opened lesson tabs",
		RunE: func(cmd *cobra.Command, args []string) error {
			visits, err := app.Lessons.Recent(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(visits) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No lessons opened yet."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatVisits(visits, app.now()))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries")
	return cmd
}
