package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/phanxgames/motion/easing"
)

func easingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "easings",
		Short: "List the named easing curves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range easing.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
	return cmd
}

// sample <expr>: print the curve at evenly spaced points.
func sampleCmd() *cobra.Command {
	var (
		steps int
		width int
	)
	cmd := &cobra.Command{
		Use:   "sample <expr>",
		Short: "Print samples of an easing expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fn, err := easing.Parse(args[0])
			if err != nil {
				return err
			}
			if steps < 1 {
				return fmt.Errorf("steps must be at least 1, got %d", steps)
			}
			out := cmd.OutOrStdout()
			for i := 0; i <= steps; i++ {
				t := float64(i) / float64(steps)
				y := fn(t)
				fmt.Fprintf(out, "%.3f  %8.4f  %s\n", t, y, bar(y, width))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&steps, "steps", 10, "number of intervals between 0 and 1")
	cmd.Flags().IntVar(&width, "width", 40, "width of the bar for progress 1")
	return cmd
}

// bar renders y as a run of '#'. Values outside [0, 1] are clipped and marked.
func bar(y float64, width int) string {
	switch {
	case y < 0:
		return "<"
	case y > 1:
		return strings.Repeat("#", width) + ">"
	}
	return strings.Repeat("#", int(y*float64(width)+0.5))
}
