// internal/sched/fcfs.go

package sched

import (
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// FCFS runs processes strictly in arrival order and never preempts.
type FCFS struct {
	queue           *linkedlistqueue.Queue
	contextSwitches int
}

// NewFCFS creates an empty first-come-first-served scheduler.
func NewFCFS() *FCFS {
	return &FCFS{queue: linkedlistqueue.New()}
}

func (s *FCFS) Name() string { return PolicyFCFS.String() }

func (s *FCFS) HasProcesses() bool { return !s.queue.Empty() }

func (s *FCFS) AddProcess(p *Process) {
	s.queue.Enqueue(p)
}

// Schedule is a no-op: the head of the queue always runs.
func (s *FCFS) Schedule() {}

func (s *FCFS) Current() *Process {
	v, ok := s.queue.Peek()
	if !ok {
		return nil
	}
	return v.(*Process)
}

// KillCurrent dequeues the head. Loading the next process still costs a
// context switch even though no choice was made.
func (s *FCFS) KillCurrent() {
	if _, ok := s.queue.Dequeue(); ok {
		s.contextSwitches++
	}
}

func (s *FCFS) ListProcesses() []*Process {
	return toProcesses(s.queue.Values())
}

// IncreaseWaitingTimes advances every queued process except the head.
func (s *FCFS) IncreaseWaitingTimes() {
	for i, v := range s.queue.Values() {
		if i == 0 {
			continue
		}
		v.(*Process).IncreaseWaitingTime()
	}
}

func (s *FCFS) ContextSwitches() int { return s.contextSwitches }

func toProcesses(values []interface{}) []*Process {
	out := make([]*Process, 0, len(values))
	for _, v := range values {
		out = append(out, v.(*Process))
	}
	return out
}
