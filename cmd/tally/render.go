package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tally/internal/errors"
	"github.com/vango-dev/tally/pkg/components"
	"github.com/vango-dev/tally/pkg/render"
)

func renderCmd() *cobra.Command {
	var (
		message string
		step    int
		clicks  int
		html    bool
		pretty  bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the counter after a number of clicks",
		Long: `Render mounts a counter, activates it --clicks times and prints the
result. By default only the visible text is printed.

Examples:
  tally render --message Count --clicks 3
  tally render --message Total --step 5 --clicks 2 --html`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if clicks < 0 {
				return errors.New("E020").WithDetailf("--clicks must not be negative, got %d", clicks)
			}

			props := components.CounterProps{Message: message}
			if cmd.Flags().Changed("step") {
				props.Step = components.StepOf(step)
			}
			counter := components.NewCounter(props)
			defer counter.Unmount()
			for i := 0; i < clicks; i++ {
				counter.Activate()
			}

			view := counter.Render()
			if !html {
				fmt.Fprintln(cmd.OutOrStdout(), render.TextContent(view))
				return nil
			}

			out, err := render.NewRenderer(render.RendererConfig{Pretty: pretty}).RenderToString(view)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "Count", "Display message")
	cmd.Flags().IntVarP(&step, "step", "s", components.DefaultStep, "Increment per click")
	cmd.Flags().IntVarP(&clicks, "clicks", "n", 0, "Number of activations before rendering")
	cmd.Flags().BoolVar(&html, "html", false, "Print HTML instead of text")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "Indent HTML output")

	return cmd
}
