// internal/sched/srtf.go

package sched

// SRTF keeps every process, the running one included, ordered by burst
// time; a shorter (or equally short) arrival preempts the running process.
//
// Ordering uses the nominal BurstTime, not BurstTime-ExecutionTime.
type SRTF struct {
	q               *burstQueue
	contextSwitches int
}

// NewSRTF creates an empty shortest-remaining-time-first scheduler.
func NewSRTF() *SRTF {
	return &SRTF{q: newBurstQueue()}
}

func (s *SRTF) Name() string { return PolicySRTF.String() }

func (s *SRTF) HasProcesses() bool { return !s.q.empty() }

// AddProcess inserts p by burst time. Landing in front of the queue is a
// context switch, including the very first insertion. A head that has
// already finished is never displaced; it leaves on its own this tick.
func (s *SRTF) AddProcess(p *Process) {
	head := s.q.head
	if head == nil || (p.BurstTime <= head.BurstTime && !head.Done()) {
		s.q.replaceHead(p)
		s.contextSwitches++
		return
	}
	s.q.push(p)
}

// Schedule is a no-op: insertion keeps the order.
func (s *SRTF) Schedule() {}

func (s *SRTF) Current() *Process { return s.q.head }

func (s *SRTF) KillCurrent() {
	if s.q.empty() {
		return
	}
	s.q.popHead()
	s.contextSwitches++
}

func (s *SRTF) ListProcesses() []*Process { return s.q.list() }

// IncreaseWaitingTimes advances every process except the running head.
func (s *SRTF) IncreaseWaitingTimes() {
	for _, p := range s.q.waiting() {
		p.IncreaseWaitingTime()
	}
}

func (s *SRTF) ContextSwitches() int { return s.contextSwitches }
