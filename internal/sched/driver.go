// internal/sched/driver.go

package sched

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Log is the package logger used when a Driver is not given its own.
var Log = logrus.New()

var (
	ErrEmptyScenario = errors.New("scenario has no seed process")
	ErrInvalidBurst  = errors.New("burst time must be at least 1")
)

// ValidateScenario checks that a burst list can drive a run.
func ValidateScenario(bursts []int64) error {
	if len(bursts) == 0 {
		return ErrEmptyScenario
	}
	for i, b := range bursts {
		if b < 1 {
			return fmt.Errorf("%w: process %d has burst %d", ErrInvalidBurst, i, b)
		}
	}
	return nil
}

// RunResult is the outcome of one simulation run.
type RunResult struct {
	RunID           uuid.UUID
	Policy          string
	Bursts          []int64
	Ticks           int64       // tick at which the run found no processes left
	Spawned         int         // processes created, seed included
	Unspawned       int         // arrivals dropped because the system emptied first
	AvgWaiting      float64     // incremental mean of the sampled waiting times
	Samples         []int64     // waiting times sampled at quantum boundaries
	ContextSwitches int         // counted by each policy's own rules
	Completed       []ProcessID // in completion order
	PacedTicks      int64       // ticks held back by the real-time clock, 0 when unpaced
}

// Driver runs the tick loop for one scheduler at a time.
type Driver struct {
	cfg      Config
	sink     Sink
	log      *logrus.Logger
	recorder *CSVRecorder
}

// Option configures a Driver.
type Option func(*Driver)

// WithSink sets where snapshots, debug and result lines go.
func WithSink(s Sink) Option {
	return func(d *Driver) { d.sink = s }
}

// WithLogger replaces the package logger.
func WithLogger(l *logrus.Logger) Option {
	return func(d *Driver) { d.log = l }
}

// WithRecorder writes every event to r.
func WithRecorder(r *CSVRecorder) Option {
	return func(d *Driver) { d.recorder = r }
}

// NewDriver creates a driver; it keeps no per-run state, so one driver can
// run many scenarios one after another.
func NewDriver(cfg Config, opts ...Option) (*Driver, error) {
	if cfg.SystemHZ < 1 {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidHZ, cfg.SystemHZ)
	}
	d := &Driver{cfg: cfg, sink: Discard, log: Log}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// run holds the state of a single simulation run.
type run struct {
	d       *Driver
	s       Scheduler
	entry   *logrus.Entry
	spawner *Spawner
	pending []int64
	mean    RunningMean
	res     RunResult
}

// Run simulates s over bursts, consumed in arrival order: the first one is
// the seed process, every following one arrives at the next multiple of
// SystemHZ. s must be freshly created.
func (d *Driver) Run(s Scheduler, bursts []int64) (RunResult, error) {
	if err := ValidateScenario(bursts); err != nil {
		return RunResult{}, err
	}

	r := &run{
		d:       d,
		s:       s,
		spawner: NewSpawner(),
		pending: bursts,
		res: RunResult{
			RunID:  uuid.New(),
			Policy: s.Name(),
			Bursts: append([]int64(nil), bursts...),
		},
	}
	r.entry = d.log.WithFields(logrus.Fields{"policy": s.Name(), "run_id": r.res.RunID.String()})
	r.entry.WithField("processes", len(bursts)).Info("simulation started")

	var clock *TickClock
	if dur := d.cfg.TickDuration(); dur > 0 {
		clock = NewTickClock(dur)
		defer clock.Stop()
	}

	hz := int64(d.cfg.SystemHZ)
	d.sink.SetHeader(fmt.Sprintf("%s (system_hz=%d)", s.Name(), hz))

	// the equivalent of init
	r.arrive(0)

	var tick int64
	for ; ; tick++ {
		// 1) publish, 2) stop once nothing is left
		d.sink.DisplayProcesses(snapshot(s.ListProcesses()))
		if !s.HasProcesses() {
			break
		}

		// 3) execute the current process
		cur := r.current(tick)
		cur.RecordExecution()
		r.emit(tick, EventExecute, cur)

		// 4) arrivals come once per quantum
		if tick%hz == 0 && len(r.pending) > 0 {
			r.arrive(tick)
		}

		// 5) a finished process leaves in the tick it finished
		if cur := r.current(tick); cur.Done() {
			r.res.Completed = append(r.res.Completed, cur.ID)
			s.KillCurrent()
			r.emit(tick, EventFinish, cur)
		}

		// 6) quantum boundary
		if s.HasProcesses() && tick%hz == hz-1 {
			s.Schedule()
			next := r.current(tick)
			r.mean.Add(next.WaitingTime, r.spawner.Spawned())
			r.emit(tick, EventSwitch, next)
		}

		// 7) everyone the policy considers waiting ages by one tick
		if s.HasProcesses() {
			s.IncreaseWaitingTimes()
		}

		// 8) cosmetic pacing
		if clock != nil {
			clock.Wait()
		}
	}
	r.emit(tick, EventIdle, nil)

	r.res.Ticks = tick
	r.res.Spawned = r.spawner.Spawned()
	r.res.Unspawned = len(r.pending)
	r.res.AvgWaiting = r.mean.Value()
	r.res.Samples = r.mean.Samples()
	r.res.ContextSwitches = s.ContextSwitches()
	if clock != nil {
		r.res.PacedTicks = clock.Paced()
	}

	if r.res.Unspawned > 0 {
		r.entry.WithField("unspawned", r.res.Unspawned).Warn("system emptied before every process arrived")
	}
	r.entry.WithFields(logrus.Fields{
		"ticks":            r.res.Ticks,
		"avg_waiting":      r.res.AvgWaiting,
		"context_switches": r.res.ContextSwitches,
	}).Info("simulation ended (no more processes)")

	d.sink.ResultLine(fmt.Sprintf("%s: avg waiting time %.3f, context switches %d, ticks %d",
		s.Name(), r.res.AvgWaiting, r.res.ContextSwitches, r.res.Ticks))

	return r.res, nil
}

// arrive spawns the next pending process at tick.
func (r *run) arrive(tick int64) {
	prev := r.s.Current()

	p := r.spawner.Spawn(r.pending[0], tick)
	r.pending = r.pending[1:]
	r.s.AddProcess(p)
	r.emit(tick, EventArrive, p)

	if prev != nil && r.s.Current() == p {
		r.emit(tick, EventPreempt, p)
	}
}

// current asserts the loop invariant: steps after the emptiness check
// always have a process to work on.
func (r *run) current(tick int64) *Process {
	p := r.s.Current()
	if p == nil {
		panic(fmt.Sprintf("sched: %s has no current process at tick %d although HasProcesses() is %t",
			r.s.Name(), tick, r.s.HasProcesses()))
	}
	return p
}

func (r *run) emit(tick int64, kind EventKind, p *Process) {
	ev := Event{Tick: tick, Kind: kind, Switches: r.s.ContextSwitches()}
	if p != nil {
		ev.PID = p.ID
		ev.Burst = p.BurstTime
		ev.Executed = p.ExecutionTime
		ev.Waiting = p.WaitingTime
	}

	r.entry.WithFields(logrus.Fields{
		"tick":  tick,
		"event": kind.String(),
		"pid":   ev.PID,
	}).Debug(ev.String())

	if r.d.cfg.Debug {
		r.d.sink.DebugLine(ev.String())
	}
	if r.d.recorder != nil {
		if err := r.d.recorder.Record(r.res.RunID, r.res.Policy, ev); err != nil {
			r.entry.WithError(err).Error("failed to record event")
		}
	}
}
