// internal/sched/sjf.go

package sched

// SJF runs the shortest queued job next but never preempts the running
// one: an arrival is only ever ordered among the waiting processes.
type SJF struct {
	q               *burstQueue
	contextSwitches int
}

// NewSJF creates an empty shortest-job-first scheduler.
func NewSJF() *SJF {
	return &SJF{q: newBurstQueue()}
}

func (s *SJF) Name() string { return PolicySJF.String() }

func (s *SJF) HasProcesses() bool { return !s.q.empty() }

func (s *SJF) AddProcess(p *Process) {
	if s.q.empty() {
		s.q.head = p
		return
	}
	s.q.push(p)
}

// Schedule is a no-op: the order is fixed at insertion.
func (s *SJF) Schedule() {}

func (s *SJF) Current() *Process { return s.q.head }

func (s *SJF) KillCurrent() {
	if s.q.empty() {
		return
	}
	s.q.popHead()
	s.contextSwitches++
}

func (s *SJF) ListProcesses() []*Process { return s.q.list() }

// IncreaseWaitingTimes advances every process, the running one included.
func (s *SJF) IncreaseWaitingTimes() {
	for _, p := range s.q.list() {
		p.IncreaseWaitingTime()
	}
}

func (s *SJF) ContextSwitches() int { return s.contextSwitches }
