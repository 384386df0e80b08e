package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

type options struct {
	configPath string
	logLevel   string
	logFormat  string
	policies   []string
	scenarios  []string
	systemHZ   int
	tickMS     int
	random     int
	seed       int64
	csvPath    string
	debug      bool
	live       bool
}

// NewRootCmd creates the root cobra command for the schedsim CLI.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	logger := logrus.New()

	root := &cobra.Command{
		Use:   "schedsim",
		Short: "Discrete-time CPU scheduling simulator",
		Long:  "schedsim compares FCFS, RR, SJF and SRTF over synthetic workloads on a logical tick clock.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return configureLogger(logger, opts, cmd.ErrOrStderr())
		},
		SilenceUsage: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.configPath, "config", "c", "schedsim.yml", "YAML config file (ignored if missing)")
	pf.StringVar(&opts.logLevel, "log-level", "warn", "Log level (debug, info, warn, error)")
	pf.StringVar(&opts.logFormat, "log-format", "text", "Log format (text, json)")
	pf.StringSliceVarP(&opts.policies, "policy", "p", nil, "Policies to run (FCFS, RR, SJF, SRTF)")
	pf.StringArrayVarP(&opts.scenarios, "scenario", "s", nil, `Burst list, e.g. "8,8,64" (repeatable)`)
	pf.IntVar(&opts.systemHZ, "hz", 0, "Ticks per quantum and per arrival")
	pf.IntVar(&opts.tickMS, "tick-ms", -1, "Real-time pacing per tick in ms (0 disables)")
	pf.IntVar(&opts.random, "random", 0, "Number of random scenarios to add")
	pf.Int64Var(&opts.seed, "seed", 0, "Seed for random scenarios")
	pf.StringVar(&opts.csvPath, "csv", "", "Write the event trace to this CSV file")
	pf.BoolVar(&opts.debug, "debug", false, "Show the event trace")

	root.AddCommand(
		newRunCmd(opts, logger),
		newCompareCmd(opts, logger),
		newScenariosCmd(opts),
	)

	return root
}

func configureLogger(logger *logrus.Logger, opts *options, w io.Writer) error {
	level, err := logrus.ParseLevel(opts.logLevel)
	if err != nil {
		return err
	}
	logger.SetLevel(level)
	logger.SetOutput(w)
	if strings.EqualFold(opts.logFormat, "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// loadConfig merges the config file with the flags that were set.
func loadConfig(cmd *cobra.Command, opts *options) (sched.Config, [][]int64, error) {
	cfg, err := sched.Load(opts.configPath)
	if err != nil {
		return cfg, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("hz") {
		cfg.SystemHZ = opts.systemHZ
	}
	if flags.Changed("tick-ms") && opts.tickMS >= 0 {
		cfg.TickMS = opts.tickMS
	}
	if flags.Changed("debug") {
		cfg.Debug = opts.debug
	}
	if flags.Changed("csv") {
		cfg.CSVPath = opts.csvPath
	}
	if len(opts.policies) > 0 {
		cfg.Policies = opts.policies
	}
	if len(opts.scenarios) > 0 {
		cfg.Scenarios = nil
		for _, s := range opts.scenarios {
			bursts, err := workload.Parse(s)
			if err != nil {
				return cfg, nil, err
			}
			cfg.Scenarios = append(cfg.Scenarios, bursts)
		}
	}
	if flags.Changed("random") {
		cfg.Random.Count = opts.random
	}
	if flags.Changed("seed") {
		cfg.Random.Seed = opts.seed
	}

	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}
	return cfg, workload.Resolve(cfg), nil
}

// recorderOption opens the CSV recorder when one is configured. The
// returned close func is never nil.
func recorderOption(cfg sched.Config) ([]sched.Option, func() error, error) {
	if cfg.CSVPath == "" {
		return nil, func() error { return nil }, nil
	}
	rec, err := sched.NewCSVRecorder(cfg.CSVPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open csv log: %w", err)
	}
	return []sched.Option{sched.WithRecorder(rec)}, rec.Close, nil
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
