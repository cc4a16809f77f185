package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/honphysics/portal/internal/domain"
	"github.com/honphysics/portal/internal/launcher"
	"github.com/honphysics/portal/internal/repository"
	"github.com/spf13/cobra"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "course",
		Short: "Manage the course catalog",
	}

	cmd.AddCommand(
		newCourseImportCmd(app),
		newCourseListCmd(app),
		newCourseRelockCmd(app),
	)

	return cmd
}

func newCourseImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <course.json>",
		Short: "Replace the course catalog from a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				stop := formatter.StartSpinner(cmd.ErrOrStderr(), "Importing "+args[0])
				defer stop()
			}
			res, err := app.Courses.Import(context.Background(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatImportResult(res.UnitCount, res.ItemCount, res.ToolCount))
			return nil
		},
	}
}

func newCourseListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List units and items",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			units, err := app.Courses.Units(ctx)
			if err != nil {
				return err
			}
			unlocked := func(id string) bool {
				ok, err := app.Courses.IsUnlocked(ctx, id)
				return err == nil && ok
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatCourse(units, unlocked))
			return nil
		},
	}
}

func newCourseRelockCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "relock",
		Short: "Forget every unlocked item and tool",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() && !yes &&
				!confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Relock every unlocked item and tool?", false) {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("Cancelled."))
				return nil
			}
			if err := app.Courses.Relock(context.Background()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All items locked again.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newUnlockCmd(app *App) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "unlock <item-or-tool-id>",
		Short: "Unlock a password-protected item or tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]

			if password == "" {
				if !app.interactive() {
					return fmt.Errorf("--password is required")
				}
				if err := passwordForm("Password for "+id, &password).Run(); err != nil {
					return err
				}
			}

			err := app.Courses.Unlock(ctx, id, password)
			if errors.Is(err, repository.ErrNotFound) {
				err = app.Tools.Unlock(ctx, id, password)
			}
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no item or tool with id %q", id)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Unlocked %s\n", formatter.StyleGreen.Render("✔"), id)
			return nil
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Password")
	return cmd
}

func newToolsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tools",
		Short: "List the toolkit catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			tools, err := app.Tools.List(ctx)
			if err != nil {
				return err
			}
			unlocked := func(id string) bool {
				ok, err := app.Tools.IsUnlocked(ctx, id)
				return err == nil && ok
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTools(tools, unlocked))
			return nil
		},
	}
}

func newToolCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tool",
		Short: "Inspect and open tools",
	}
	cmd.AddCommand(newToolPlanCmd(app))
	return cmd
}

func newToolPlanCmd(app *App) *cobra.Command {
	var page, label string
	var open bool
	launch := newChoiceFlag(string(domain.LaunchEmbed), string(domain.LaunchEmbed), string(domain.LaunchNewTab))

	cmd := &cobra.Command{
		Use:   "plan <href>",
		Short: "Show how a tool link resolves and whether it can be embedded",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("page") {
				page = app.PageURL
			}
			plan := launcher.Plan(domain.ToolDescriptor{
				Label:  label,
				Href:   args[0],
				Launch: domain.LaunchMode(launch.String()),
			}, page)

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatLaunchPlan(plan))
			if open && plan.CanOpen() {
				return app.opener().Open(cmd.Context(), plan.URL)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&page, "page", "", "Page URL the href is relative to (default: configured page URL)")
	cmd.Flags().StringVar(&label, "label", "", "Tool label")
	cmd.Flags().Var(launch, "launch", "Launch mode: embed or new-tab")
	cmd.Flags().BoolVar(&open, "open", false, "Open the resolved URL in the browser")
	return cmd
}
