// internal/sched/schedulerEvent.go

package sched

import (
	"fmt"
	"strings"
)

// EventKind represents the type of simulation event
type EventKind int

const (
	EventIdle EventKind = iota
	EventArrive
	EventExecute
	EventPreempt
	EventFinish
	EventSwitch
)

// Event is emitted by the driver on every tick and on key actions.
type Event struct {
	Tick     int64
	Kind     EventKind
	PID      ProcessID
	Burst    int64
	Executed int64
	Waiting  int64
	Switches int
}

func (ek EventKind) String() string {
	switch ek {
	case EventIdle:
		return "Idle"
	case EventArrive:
		return "Arrive"
	case EventExecute:
		return "Execute"
	case EventPreempt:
		return "Preempt"
	case EventFinish:
		return "Finish"
	case EventSwitch:
		return "Switch"
	default:
		return "Unknown"
	}
}

// String renders the event as one line of the debug trace.
func (ev Event) String() string {
	if ev.Kind == EventIdle {
		return fmt.Sprintf("Tick: %07d [%s] => no processes left, switches=%d",
			ev.Tick, center(ev.Kind.String(), 9), ev.Switches)
	}
	return fmt.Sprintf("Tick: %07d [%s] => proc_%d, executed %d/%d, waited %d, switches=%d",
		ev.Tick,
		center(ev.Kind.String(), 9),
		ev.PID,
		ev.Executed,
		ev.Burst,
		ev.Waiting,
		ev.Switches,
	)
}

// center pads str on both sides to width.
func center(str string, width int) string {
	if len(str) >= width {
		return str
	}
	spaces := (width - len(str)) / 2
	return strings.Repeat(" ", spaces) + str + strings.Repeat(" ", width-(spaces+len(str)))
}
