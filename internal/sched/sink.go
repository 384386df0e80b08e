package sched

// Sink consumes what the simulation has to show. The simulation only ever
// writes to it.
type Sink interface {
	// DisplayProcesses receives a copy of the live set, current first.
	DisplayProcesses(procs []Process)
	SetHeader(text string)
	DebugLine(text string)
	ResultLine(text string)
}

// Discard is a headless Sink.
var Discard Sink = discard{}

type discard struct{}

func (discard) DisplayProcesses([]Process) {}
func (discard) SetHeader(string)           {}
func (discard) DebugLine(string)           {}
func (discard) ResultLine(string)          {}

func snapshot(procs []*Process) []Process {
	out := make([]Process, len(procs))
	for i, p := range procs {
		out[i] = *p
	}
	return out
}
