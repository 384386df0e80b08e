package sched

import (
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Summary aggregates the runs of one policy over a list of scenarios.
type Summary struct {
	Policy        string
	Runs          []RunResult
	AvgWaiting    float64 // mean of the per-run averages
	TotalSwitches int
	AvgSwitches   float64
}

// RunAll simulates every scenario under p, each with a fresh scheduler and
// spawner, then pushes the aggregate result lines to the sink.
func (d *Driver) RunAll(p Policy, scenarios [][]int64) (Summary, error) {
	sum := Summary{Policy: p.String()}
	if len(scenarios) == 0 {
		return sum, nil
	}

	for i, bursts := range scenarios {
		s, err := New(p)
		if err != nil {
			return sum, err
		}
		res, err := d.Run(s, bursts)
		if err != nil {
			return sum, fmt.Errorf("%s scenario %d: %w", p, i, err)
		}
		sum.Runs = append(sum.Runs, res)
	}

	sum.aggregate()
	d.sink.ResultLine(fmt.Sprintf("%s: average waiting time over %d runs %.3f", sum.Policy, len(sum.Runs), sum.AvgWaiting))
	d.sink.ResultLine(fmt.Sprintf("%s: total context switches %d", sum.Policy, sum.TotalSwitches))
	d.sink.ResultLine(fmt.Sprintf("%s: average context switches %.3f", sum.Policy, sum.AvgSwitches))
	return sum, nil
}

func (s *Summary) aggregate() {
	var waiting float64
	s.TotalSwitches = 0
	for _, r := range s.Runs {
		waiting += r.AvgWaiting
		s.TotalSwitches += r.ContextSwitches
	}
	n := float64(len(s.Runs))
	s.AvgWaiting = waiting / n
	s.AvgSwitches = float64(s.TotalSwitches) / n
}

// Compare runs every policy over the same scenarios concurrently, one
// headless driver per policy. Results come back in the order of policies.
func Compare(cfg Config, policies []Policy, scenarios [][]int64, opts ...Option) ([]Summary, error) {
	for i, bursts := range scenarios {
		if err := ValidateScenario(bursts); err != nil {
			return nil, fmt.Errorf("scenario %d: %w", i, err)
		}
	}

	// headless: no pacing, no debug pane
	cfg.TickMS = 0
	cfg.Debug = false
	dopts := append(append([]Option(nil), opts...), WithSink(Discard))

	out := make([]Summary, len(policies))
	var g errgroup.Group
	for i, p := range policies {
		i, p := i, p
		g.Go(func() error {
			d, err := NewDriver(cfg, dopts...)
			if err != nil {
				return err
			}
			sum, err := d.RunAll(p, scenarios)
			if err != nil {
				return err
			}
			out[i] = sum
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
