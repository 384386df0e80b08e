// internal/sched/scheduler.go

package sched

import (
	"errors"
	"fmt"
	"strings"
)

// Scheduler owns the live set of processes of one run and decides which of
// them executes next. Implementations are not safe for concurrent use; the
// driver is their only caller.
type Scheduler interface {
	// Name is the static identifier of the policy.
	Name() string
	HasProcesses() bool
	// AddProcess inserts p at a policy-determined position.
	AddProcess(p *Process)
	// Schedule re-evaluates the current process at a quantum boundary.
	Schedule()
	// Current returns the process to execute this tick, or nil when empty.
	Current() *Process
	// KillCurrent removes the finished current process.
	KillCurrent()
	// ListProcesses returns the live set in internal order, current first.
	ListProcesses() []*Process
	// IncreaseWaitingTimes advances the waiting time of every process the
	// policy does not consider executing.
	IncreaseWaitingTimes()
	ContextSwitches() int
}

// Policy selects one of the scheduler variants.
type Policy int

const (
	PolicyFCFS Policy = iota
	PolicyRR
	PolicySJF
	PolicySRTF
)

// Policies lists every variant in presentation order.
var Policies = []Policy{PolicyFCFS, PolicyRR, PolicySJF, PolicySRTF}

var ErrUnknownPolicy = errors.New("unknown scheduling policy")

func (p Policy) String() string {
	switch p {
	case PolicyFCFS:
		return "FCFS"
	case PolicyRR:
		return "RR"
	case PolicySJF:
		return "SJF"
	case PolicySRTF:
		return "SRTF"
	default:
		return "Unknown"
	}
}

// ParsePolicy accepts the policy name case-insensitively, plus a few
// spelled-out aliases.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fcfs", "fifo":
		return PolicyFCFS, nil
	case "rr", "roundrobin", "round-robin":
		return PolicyRR, nil
	case "sjf":
		return PolicySJF, nil
	case "srtf":
		return PolicySRTF, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
}

// New creates an empty scheduler for the given policy.
func New(p Policy) (Scheduler, error) {
	switch p {
	case PolicyFCFS:
		return NewFCFS(), nil
	case PolicyRR:
		return NewRoundRobin(), nil
	case PolicySJF:
		return NewSJF(), nil
	case PolicySRTF:
		return NewSRTF(), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
}

// nodeKey orders waiting processes in a burst queue.
type nodeKey struct {
	burst int64
	rank  uint64 // insertion sequence, newer ranks sort first among equal bursts
}

// cmp implements the Comparator for the red-black tree: ascending burst,
// then newest insertion first.
func cmp(a, b any) int {
	ka, kb := a.(nodeKey), b.(nodeKey)
	switch {
	case ka.burst < kb.burst:
		return -1
	case ka.burst > kb.burst:
		return 1
	case ka.rank > kb.rank:
		return -1
	case ka.rank < kb.rank:
		return 1
	default:
		return 0
	}
}
