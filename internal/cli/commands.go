package cli

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"schedsim/internal/sched"
	"schedsim/internal/tui"
	"schedsim/internal/workload"
)

func newRunCmd(opts *options, logger *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run every scenario under each policy on the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, scenarios, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			policies, err := cfg.ParsedPolicies()
			if err != nil {
				return err
			}
			if opts.live && cfg.TickMS == 0 && !cmd.Flags().Changed("tick-ms") {
				cfg.TickMS = sched.DemoTickMS
			}

			recOpts, closeRec, err := recorderOption(cfg)
			if err != nil {
				return err
			}
			defer closeRec()

			out := cmd.OutOrStdout()
			term := tui.NewTerminal(out)
			var screen tcell.Screen
			if opts.live {
				if screen, err = openScreen(); err != nil {
					return err
				}
				defer func() {
					if screen != nil {
						screen.Fini()
					}
				}()
				term = tui.NewLive(screen)
			}
			for i, s := range scenarios {
				term.AddScenario(fmt.Sprintf("#%d", i+1), s)
			}

			d, err := sched.NewDriver(cfg, append(recOpts, sched.WithSink(term), sched.WithLogger(logger))...)
			if err != nil {
				return err
			}

			var sums []sched.Summary
			for _, p := range policies {
				sum, err := d.RunAll(p, scenarios)
				if err != nil {
					return err
				}
				sums = append(sums, sum)
			}
			if screen != nil {
				term.ResultLine("press any key to exit")
			}
			if err := term.Close(); err != nil {
				return err
			}
			if screen != nil {
				waitForKey(screen)
				screen.Fini()
				screen = nil
			}

			for _, sum := range sums {
				tui.RenderRuns(out, sum)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&opts.live, "live", false, "Draw the panes full screen and redraw them on every tick")
	return cmd
}

func openScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("open terminal: %w", err)
	}
	return screen, nil
}

// waitForKey holds the final frame until a key is pressed.
func waitForKey(screen tcell.Screen) {
	for {
		switch screen.PollEvent().(type) {
		case *tcell.EventKey, nil:
			return
		}
	}
}

func newCompareCmd(opts *options, logger *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "compare",
		Short: "Run all policies concurrently and print a comparison table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, scenarios, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			policies, err := cfg.ParsedPolicies()
			if err != nil {
				return err
			}

			recOpts, closeRec, err := recorderOption(cfg)
			if err != nil {
				return err
			}
			defer closeRec()

			sums, err := sched.Compare(cfg, policies, scenarios, append(recOpts, sched.WithLogger(logger))...)
			if err != nil {
				return err
			}
			tui.RenderSummaries(cmd.OutOrStdout(), sums)
			return nil
		},
	}
}

func newScenariosCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the scenarios a run would use",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, scenarios, err := loadConfig(cmd, opts)
			if err != nil {
				return err
			}
			for i, s := range scenarios {
				fmt.Fprintf(cmd.OutOrStdout(), "#%d %s\n", i+1, workload.Format(s))
			}
			return nil
		},
	}
}
