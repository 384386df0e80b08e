// internal/sched/process.go

package sched

import "fmt"

// ProcessID uniquely identifies a process within one simulation run.
type ProcessID uint64

// Process is one simulated job. Once added to a Scheduler it is owned and
// mutated by that scheduler only.
type Process struct {
	ID            ProcessID
	Name          string
	ArrivalTime   int64 // tick at which the process entered the system
	BurstTime     int64 // total ticks required, never decreases
	ExecutionTime int64 // ticks executed so far
	WaitingTime   int64 // ticks spent present but not executing
}

// RecordExecution accounts one tick of CPU time to the process.
func (p *Process) RecordExecution() {
	p.ExecutionTime++
}

// Done reports whether the process has consumed its whole burst.
func (p *Process) Done() bool {
	return p.ExecutionTime >= p.BurstTime
}

// IncreaseWaitingTime accounts one tick spent waiting.
func (p *Process) IncreaseWaitingTime() {
	p.WaitingTime++
}

// Progress returns ExecutionTime/BurstTime clamped to [0, 1].
func (p *Process) Progress() float64 {
	if p.BurstTime <= 0 {
		return 1
	}
	r := float64(p.ExecutionTime) / float64(p.BurstTime)
	switch {
	case r < 0:
		return 0
	case r > 1:
		return 1
	}
	return r
}

// Spawner hands out processes with monotonically increasing IDs.
type Spawner struct {
	nextID ProcessID
}

// NewSpawner creates a spawner whose first process gets ID 0.
func NewSpawner() *Spawner {
	return &Spawner{}
}

// Spawn creates a fresh process. burst must be >= 1; the caller validates
// scenarios before a run starts.
func (s *Spawner) Spawn(burst, arrival int64) *Process {
	id := s.nextID
	s.nextID++

	return &Process{
		ID:          id,
		Name:        fmt.Sprintf("proc_%d", id),
		ArrivalTime: arrival,
		BurstTime:   burst,
	}
}

// Spawned returns the number of processes issued so far.
func (s *Spawner) Spawned() int {
	return int(s.nextID)
}
