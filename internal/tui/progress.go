package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"schedsim/internal/sched"
)

const (
	nameWidth  = 10
	labelWidth = 5 // " 100%"
	barFill    = '█'
	barEmpty   = '░'
)

// processList draws one gauge per process: its name, a bar of the executed
// share of its burst and the percentage.
type processList struct {
	*tview.Box
	procs []sched.Process
}

func newProcessList() *processList {
	l := &processList{Box: tview.NewBox()}
	l.SetBorder(true).SetTitle(" Process list ").SetTitleAlign(tview.AlignLeft)
	return l
}

func (l *processList) set(procs []sched.Process) {
	l.procs = procs
}

func (l *processList) Draw(screen tcell.Screen) {
	l.DrawForSubclass(screen, l)
	x, y, width, height := l.GetInnerRect()

	barWidth := width - nameWidth - labelWidth - 1
	for i, p := range l.procs {
		if i >= height {
			break
		}
		row := y + i
		tview.Print(screen, p.Name, x, row, nameWidth, tview.AlignLeft, tview.Styles.PrimaryTextColor)
		if barWidth <= 0 {
			continue
		}
		filled := filledCells(p.Progress(), barWidth)
		for c := 0; c < barWidth; c++ {
			r, color := barEmpty, tview.Styles.ContrastBackgroundColor
			if c < filled {
				r, color = barFill, tcell.ColorGreen
			}
			screen.SetContent(x+nameWidth+1+c, row, r, nil, tcell.StyleDefault.Foreground(color))
		}
		tview.Print(screen, percent(p.Progress()), x+nameWidth+1+barWidth, row, labelWidth, tview.AlignRight, tview.Styles.SecondaryTextColor)
	}
}

// filledCells is how many of width cells ratio covers, ratio clamped to [0, 1].
func filledCells(ratio float64, width int) int {
	return int(clamp(ratio) * float64(width))
}

func percent(ratio float64) string {
	return fmt.Sprintf("%3d%%", int(clamp(ratio)*100))
}

func clamp(ratio float64) float64 {
	switch {
	case ratio < 0:
		return 0
	case ratio > 1:
		return 1
	}
	return ratio
}
