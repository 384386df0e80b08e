// internal/sched/roundrobin.go

package sched

import (
	"github.com/emirpasic/gods/lists/arraylist"
)

// RoundRobin cycles through the live set one quantum at a time.
type RoundRobin struct {
	list            *arraylist.List
	current         int // -1 until the first process arrives
	contextSwitches int
}

// NewRoundRobin creates an empty round-robin scheduler.
func NewRoundRobin() *RoundRobin {
	return &RoundRobin{list: arraylist.New(), current: -1}
}

func (s *RoundRobin) Name() string { return PolicyRR.String() }

func (s *RoundRobin) HasProcesses() bool { return !s.list.Empty() }

// AddProcess appends p. The first process ever added becomes current.
func (s *RoundRobin) AddProcess(p *Process) {
	s.list.Add(p)
	if s.current < 0 {
		s.current = 0
	}
}

// Schedule moves to the next process in the ring. Every quantum expiry
// counts as a switch, even when the ring holds a single process.
func (s *RoundRobin) Schedule() {
	if s.current < 0 || s.list.Empty() {
		s.current = 0
	} else {
		s.current = (s.current + 1) % s.list.Size()
	}
	s.contextSwitches++
}

func (s *RoundRobin) Current() *Process {
	if s.current < 0 {
		return nil
	}
	v, ok := s.list.Get(s.current)
	if !ok {
		return nil
	}
	return v.(*Process)
}

// KillCurrent removes the current process. The successor slides into the
// same index; running off the end wraps to 0 and counts as a switch.
func (s *RoundRobin) KillCurrent() {
	if s.current < 0 {
		return
	}
	s.list.Remove(s.current)
	if s.current >= s.list.Size() {
		s.current = 0
		s.contextSwitches++
	}
}

func (s *RoundRobin) ListProcesses() []*Process {
	return toProcesses(s.list.Values())
}

// IncreaseWaitingTimes advances every process in the ring, the running
// one included.
func (s *RoundRobin) IncreaseWaitingTimes() {
	s.list.Each(func(_ int, v interface{}) {
		v.(*Process).IncreaseWaitingTime()
	})
}

func (s *RoundRobin) ContextSwitches() int { return s.contextSwitches }
