package sched

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingSink keeps everything the driver pushes.
type recordingSink struct {
	headers   []string
	debug     []string
	results   []string
	snapshots [][]Process
}

func (r *recordingSink) DisplayProcesses(procs []Process) { r.snapshots = append(r.snapshots, procs) }
func (r *recordingSink) SetHeader(text string)            { r.headers = append(r.headers, text) }
func (r *recordingSink) DebugLine(text string)            { r.debug = append(r.debug, text) }
func (r *recordingSink) ResultLine(text string)           { r.results = append(r.results, text) }

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestDriver(t *testing.T, hz int, opts ...Option) (*Driver, *recordingSink) {
	t.Helper()
	sink := &recordingSink{}
	cfg := DefaultConfig()
	cfg.SystemHZ = hz
	d, err := NewDriver(cfg, append([]Option{WithSink(sink), WithLogger(quietLogger())}, opts...)...)
	require.NoError(t, err)
	return d, sink
}

func mustNew(t *testing.T, p Policy) Scheduler {
	t.Helper()
	s, err := New(p)
	require.NoError(t, err)
	return s
}

func TestFCFSEndToEnd(t *testing.T) {
	d, sink := newTestDriver(t, 8)

	res, err := d.Run(NewFCFS(), []int64{8, 8, 8, 8, 8, 8, 8, 64})
	require.NoError(t, err)

	assert.Equal(t, int64(8*7+64), res.Ticks)
	assert.Equal(t, 8, res.ContextSwitches)
	assert.Equal(t, 8, res.Spawned)
	assert.Zero(t, res.Unspawned)
	assert.Equal(t, []ProcessID{0, 1, 2, 3, 4, 5, 6, 7}, res.Completed)
	assert.Equal(t, []string{"FCFS (system_hz=8)"}, sink.headers)
	require.Len(t, sink.results, 1)
	assert.Contains(t, sink.results[0], "context switches 8")
	assert.Empty(t, sink.debug, "debug trace is off by default")
	assert.Zero(t, res.PacedTicks)

	// arrivals are stamped with the tick they were spawned at
	arrivals := map[ProcessID]int64{}
	for _, snap := range sink.snapshots {
		for _, p := range snap {
			arrivals[p.ID] = p.ArrivalTime
		}
	}
	assert.Equal(t, map[ProcessID]int64{0: 0, 1: 0, 2: 8, 3: 16, 4: 24, 5: 32, 6: 40, 7: 48}, arrivals)
}

func TestRoundRobinSingleProcess(t *testing.T) {
	d, _ := newTestDriver(t, 2)

	res, err := d.Run(NewRoundRobin(), []int64{4})
	require.NoError(t, err)

	assert.Equal(t, int64(4), res.Ticks)
	// one quantum expiry at tick 1, one wrap when the process leaves at tick 3
	assert.Equal(t, 2, res.ContextSwitches)
	assert.Equal(t, []int64{1}, res.Samples)
	assert.Equal(t, 1.0, res.AvgWaiting)
}

func TestSRTFArrivalPreemptsSeed(t *testing.T) {
	d, sink := newTestDriver(t, 8)
	d.cfg.Debug = true

	res, err := d.Run(NewSRTF(), []int64{10, 3})
	require.NoError(t, err)

	assert.Equal(t, []ProcessID{1, 0}, res.Completed)
	// seed insertion, preemption, two completions
	assert.Equal(t, 4, res.ContextSwitches)
	assert.Equal(t, int64(13), res.Ticks)

	var preempt string
	for _, line := range sink.debug {
		if strings.Contains(line, "Preempt") {
			preempt = line
		}
	}
	assert.Contains(t, preempt, "Tick: 0000000")
	assert.Contains(t, preempt, "proc_1")
}

func TestSJFKeepsSeedRunning(t *testing.T) {
	d, _ := newTestDriver(t, 2)

	res, err := d.Run(NewSJF(), []int64{20, 1, 1, 1})
	require.NoError(t, err)
	assert.Equal(t, ProcessID(0), res.Completed[0])
	assert.Equal(t, 4, res.ContextSwitches)
}

func TestRunEndsWhenSystemEmpties(t *testing.T) {
	d, _ := newTestDriver(t, 8)

	res, err := d.Run(NewFCFS(), []int64{1, 1, 5})
	require.NoError(t, err)
	assert.Equal(t, int64(2), res.Ticks)
	assert.Equal(t, 2, res.Spawned)
	assert.Equal(t, 1, res.Unspawned)
}

func TestRunRejectsBadScenarios(t *testing.T) {
	d, _ := newTestDriver(t, 8)

	_, err := d.Run(NewFCFS(), nil)
	assert.True(t, errors.Is(err, ErrEmptyScenario))

	_, err = d.Run(NewFCFS(), []int64{3, 0})
	assert.True(t, errors.Is(err, ErrInvalidBurst))

	_, err = NewDriver(Config{SystemHZ: 0})
	assert.True(t, errors.Is(err, ErrInvalidHZ))
}

// Every snapshot is taken at the start of a tick: exactly one process ran in
// the previous tick, nobody finished is still around and waiting times only
// grow.
func TestSnapshotInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, p := range Policies {
		for _, hz := range []int{1, 2, 3, 8} {
			bursts := make([]int64, 12)
			for i := range bursts {
				bursts[i] = 1 + rng.Int63n(20)
			}

			d, sink := newTestDriver(t, hz)
			res, err := d.Run(mustNew(t, p), bursts)
			require.NoError(t, err)
			require.Equal(t, len(sink.snapshots), int(res.Ticks)+1)

			prev := map[ProcessID]Process{}
			for tick, snap := range sink.snapshots {
				cur := map[ProcessID]Process{}
				for _, proc := range snap {
					require.False(t, proc.Done(), "%s hz=%d tick %d: %s finished but still queued", p, hz, tick, proc.Name)
					require.LessOrEqual(t, proc.ExecutionTime, proc.BurstTime)
					cur[proc.ID] = proc
				}

				if tick > 0 {
					var ran int64
					for id, before := range prev {
						after, ok := cur[id]
						if !ok {
							// removed: it must have used its last tick just now
							require.Equal(t, before.BurstTime-1, before.ExecutionTime)
							ran++
							continue
						}
						delta := after.ExecutionTime - before.ExecutionTime
						require.True(t, delta == 0 || delta == 1)
						require.GreaterOrEqual(t, after.WaitingTime, before.WaitingTime)
						ran += delta
					}
					require.Equal(t, int64(1), ran, "%s hz=%d tick %d", p, hz, tick)
				}
				prev = cur
			}
			assert.Equal(t, len(bursts), res.Spawned+res.Unspawned)
		}
	}
}

func TestRunningMeanMatchesBatchMean(t *testing.T) {
	samples := []int64{3, 0, 17, 4, 4, 9, 120, 1}

	var m RunningMean
	var sum float64
	for i, s := range samples {
		m.Add(s, i+1)
		sum += float64(s)
	}
	batch := sum / float64(len(samples))
	assert.InEpsilon(t, batch, m.Value(), 1e-9)
	assert.Equal(t, samples, m.Samples())
}

func TestRunningMeanDependsOnDivisor(t *testing.T) {
	var a, b RunningMean
	a.Add(4, 1)
	a.Add(0, 2)
	b.Add(4, 2)
	b.Add(0, 2)

	assert.Equal(t, 2.0, a.Value())
	assert.Equal(t, 1.0, b.Value())
	assert.False(t, math.IsNaN(b.Value()))
}

// The driver divides each sample by the processes spawned so far, not by the
// sample count, so its mean drifts away from the plain mean of its samples.
func TestRunMeanUsesSpawnedCount(t *testing.T) {
	d, sink := newTestDriver(t, 2)

	res, err := d.Run(NewFCFS(), []int64{5, 3, 7, 2, 9})
	require.NoError(t, err)
	assert.Equal(t, int64(26), res.Ticks)
	assert.Equal(t, []int64{0, 0, 4, 5, 5, 5, 5, 10, 10, 10, 10, 10}, res.Samples)

	var sum int64
	for _, s := range res.Samples {
		sum += s
	}
	batch := float64(sum) / float64(len(res.Samples))
	assert.InDelta(t, 74.0/12, batch, 1e-9)
	assert.InDelta(t, 7.824729088, res.AvgWaiting, 1e-6)
	assert.Greater(t, res.AvgWaiting-batch, 1.5)

	arrivals := map[ProcessID]int64{}
	for _, snap := range sink.snapshots {
		for _, p := range snap {
			arrivals[p.ID] = p.ArrivalTime
		}
	}
	assert.Equal(t, map[ProcessID]int64{0: 0, 1: 0, 2: 2, 3: 4, 4: 6}, arrivals)
}

func TestRunPanicsOnBrokenScheduler(t *testing.T) {
	d, _ := newTestDriver(t, 8)
	assert.Panics(t, func() {
		_, _ = d.Run(&brokenScheduler{FCFS: NewFCFS()}, []int64{3})
	})
}

// brokenScheduler claims to hold processes but never has a current one.
type brokenScheduler struct{ *FCFS }

func (b *brokenScheduler) Current() *Process { return nil }

func TestRunWritesCSVTrace(t *testing.T) {
	var buf bytes.Buffer
	rec, err := NewCSVRecorderWriter(&buf)
	require.NoError(t, err)

	d, _ := newTestDriver(t, 2, WithRecorder(rec))
	res, err := d.Run(NewRoundRobin(), []int64{3, 2, 2})
	require.NoError(t, err)
	require.NoError(t, rec.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	assert.Equal(t, csvHeader, rows[0])

	kinds := map[string]int{}
	for _, row := range rows[1:] {
		assert.Equal(t, res.RunID.String(), row[0])
		assert.Equal(t, "RR", row[1])
		kinds[row[3]]++
	}
	assert.Equal(t, res.Spawned, kinds["Arrive"])
	assert.Equal(t, res.Spawned, kinds["Finish"])
	assert.Equal(t, int(res.Ticks), kinds["Execute"])
	assert.Equal(t, 1, kinds["Idle"])
}

func TestRunWithPacing(t *testing.T) {
	d, _ := newTestDriver(t, 2)
	d.cfg.TickMS = 1

	res, err := d.Run(NewFCFS(), []int64{2, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, res.ContextSwitches)
	assert.Equal(t, int64(3), res.Ticks)
	assert.Equal(t, res.Ticks, res.PacedTicks, "every executed tick waits for the clock")
}
