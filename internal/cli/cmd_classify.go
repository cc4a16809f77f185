package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/honphysics/portal/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newClassifyCmd(app *App) *cobra.Command {
	format := newChoiceFlag("text", "text", "spans", "render")
	var allowColon bool

	cmd := &cobra.Command{
		Use:   "classify [file]",
		Short: "Classify outline lines from a file or stdin",
		Long: `Classify each input line as a heading, subpoint, bullet, image or
paragraph and print "kind level text". --format spans prints the inline
formatting spans of each line; --format render prints the styled outline.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("opening input: %w", err)
				}
				defer f.Close()
				r = f
			}

			lines, err := readLines(r)
			if err != nil {
				return err
			}

			c := app.Classifier
			if allowColon {
				c.AllowColonTitles = true
			}
			nodes := c.ClassifyAll(lines)

			out := cmd.OutOrStdout()
			switch format.String() {
			case "spans":
				fmt.Fprint(out, formatter.FormatSpans(nodes))
			case "render":
				fmt.Fprintln(out, formatter.RenderOutline(nodes, nil))
			default:
				fmt.Fprint(out, formatter.FormatClassified(nodes))
			}
			return nil
		},
	}

	cmd.Flags().Var(format, "format", "Output format: text, spans or render")
	cmd.Flags().BoolVar(&allowColon, "allow-colon-titles", false, `Let "Label: value" lines become implicit headings`)
	return cmd
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading input: %w", err)
	}
	return lines, nil
}
