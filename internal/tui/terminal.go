// Package tui renders a simulation on a terminal.
package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/olekukonko/tablewriter"
	"github.com/rivo/tview"

	"schedsim/internal/sched"
	"schedsim/internal/workload"
)

const maxDebug = 12

type scenario struct {
	label  string
	bursts []int64
}

// Terminal is a sched.Sink with the panes of the classic layout: header,
// process list, results, scenarios and an optional debug trace.
//
// A Terminal built by NewLive draws those panes on a tcell screen and
// redraws them on every process snapshot. One built by NewTerminal only
// streams debug and result lines, and Close prints the scenarios.
type Terminal struct {
	w         io.Writer
	debug     []string
	results   []string
	scenarios []scenario

	screen     tcell.Screen
	root       *tview.Flex
	header     *tview.TextView
	procs      *processList
	resultView *tview.TextView
	scenView   *tview.TextView
	debugView  *tview.TextView
	debugShown bool
}

var _ sched.Sink = (*Terminal)(nil)

// NewTerminal creates a streaming sink writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

// NewLive creates a sink drawing on screen, which must already be
// initialised. The caller keeps ownership of the screen.
func NewLive(screen tcell.Screen) *Terminal {
	t := &Terminal{
		w:          io.Discard,
		screen:     screen,
		header:     pane(tview.NewTextView(), "Header"),
		procs:      newProcessList(),
		resultView: pane(tview.NewTextView(), "Results"),
		scenView:   pane(tview.NewTextView(), "Scenarios"),
		debugView:  pane(tview.NewTextView(), "Debug"),
	}
	t.resultView.SetWrap(false)
	t.debugView.SetWrap(false)

	side := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.resultView, 0, 2, false).
		AddItem(t.scenView, 0, 1, false)
	body := tview.NewFlex().
		AddItem(t.procs, 0, 1, false).
		AddItem(side, 0, 1, false)
	t.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(t.header, 3, 0, false).
		AddItem(body, 0, 1, false)
	return t
}

func pane(tv *tview.TextView, title string) *tview.TextView {
	tv.SetBorder(true).SetTitle(" " + title + " ").SetTitleAlign(tview.AlignLeft)
	return tv
}

func (t *Terminal) live() bool { return t.screen != nil }

func (t *Terminal) DisplayProcesses(procs []sched.Process) {
	if !t.live() {
		return
	}
	t.procs.set(procs)
	t.draw()
}

func (t *Terminal) SetHeader(text string) {
	if t.live() {
		t.header.SetText(text)
		return
	}
	fmt.Fprintf(t.w, "== %s ==\n", text)
}

func (t *Terminal) DebugLine(text string) {
	t.debug = append(t.debug, text)
	if len(t.debug) > maxDebug {
		t.debug = t.debug[len(t.debug)-maxDebug:]
	}
	if !t.live() {
		fmt.Fprintln(t.w, text)
		return
	}
	if !t.debugShown {
		t.root.AddItem(t.debugView, maxDebug+2, 0, false)
		t.debugShown = true
	}
	t.debugView.SetText(strings.Join(t.debug, "\n"))
}

func (t *Terminal) ResultLine(text string) {
	t.results = append(t.results, text)
	if !t.live() {
		fmt.Fprintln(t.w, text)
		return
	}
	t.resultView.SetText(strings.Join(t.results, "\n")).ScrollToEnd()
}

// AddScenario lists a scenario in the scenarios pane.
func (t *Terminal) AddScenario(label string, bursts []int64) {
	t.scenarios = append(t.scenarios, scenario{label: label, bursts: bursts})
	if t.live() {
		t.scenView.SetText(t.scenarioText())
	}
}

// Close draws the final state once more.
func (t *Terminal) Close() error {
	if t.live() {
		t.draw()
		return nil
	}
	if len(t.scenarios) > 0 {
		fmt.Fprintf(t.w, "\nScenarios\n%s", t.scenarioText())
	}
	return nil
}

func (t *Terminal) scenarioText() string {
	var b strings.Builder
	for _, s := range t.scenarios {
		fmt.Fprintf(&b, "  %s %s\n", s.label, workload.Format(s.bursts))
	}
	return b.String()
}

func (t *Terminal) draw() {
	w, h := t.screen.Size()
	t.root.SetRect(0, 0, w, h)
	t.screen.Clear()
	t.root.Draw(t.screen)
	t.screen.Show()
}

// RenderSummaries writes one table row per policy.
func RenderSummaries(w io.Writer, sums []sched.Summary) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Policy", "Runs", "Avg waiting", "Total switches", "Avg switches"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, s := range sums {
		table.Append([]string{
			s.Policy,
			fmt.Sprint(len(s.Runs)),
			fmt.Sprintf("%.3f", s.AvgWaiting),
			fmt.Sprint(s.TotalSwitches),
			fmt.Sprintf("%.3f", s.AvgSwitches),
		})
	}
	table.Render()
}

// RenderRuns writes one table row per run of a summary.
func RenderRuns(w io.Writer, sum sched.Summary) {
	fmt.Fprintf(w, "%s runs\n", sum.Policy)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Scenario", "Ticks", "Spawned", "Unspawned", "Avg waiting", "Switches"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for _, r := range sum.Runs {
		table.Append([]string{
			workload.Format(r.Bursts),
			fmt.Sprint(r.Ticks),
			fmt.Sprint(r.Spawned),
			fmt.Sprint(r.Unspawned),
			fmt.Sprintf("%.3f", r.AvgWaiting),
			fmt.Sprint(r.ContextSwitches),
		})
	}
	table.SetFooter([]string{"", "", "", "", fmt.Sprintf("%.3f", sum.AvgWaiting), fmt.Sprint(sum.TotalSwitches)})
	table.Render()
}
