package display

import (
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/timer"
)

// Status is what the bar shows. It is read on every redraw.
type Status struct {
	Favorites          int
	Shopping           int
	Collections        int
	Timers             []domain.Timer
	KeyboardNavigation bool
}

// StatusFunc supplies the current status.
type StatusFunc func() Status

func renderBar(st Status, width int) string {
	parts := []string{
		labelStyle.Render("♥ ") + countStyle.Render(fmt.Sprint(st.Favorites)),
		labelStyle.Render("🛒 ") + countStyle.Render(fmt.Sprint(st.Shopping)),
		labelStyle.Render("▤ ") + countStyle.Render(fmt.Sprint(st.Collections)),
	}
	for _, t := range st.Timers {
		parts = append(parts, timerPart(t))
	}
	if st.KeyboardNavigation {
		parts = append(parts, timerPendingStyle.Render("^F search ^H home ^R random ^T theme"))
	}

	content := " " + strings.Join(parts, sepStyle.Render("  │  ")) + " "
	if width <= 0 {
		width = 80
	}
	return barBg.Width(width).Render(content)
}

func timerPart(t domain.Timer) string {
	label := labelStyle.Render(t.Label + ": ")
	switch t.State {
	case domain.TimerFinished:
		return timerDoneStyle.Render(t.Label + ": DONE")
	case domain.TimerRunning:
		return label + timerRunStyle.Render(timer.Format(t.Remaining))
	case domain.TimerPaused:
		return label + timerPendingStyle.Render(timer.Format(t.Remaining)+" paused")
	default:
		return label + timerPendingStyle.Render(timer.Format(t.Remaining))
	}
}

func windowTitle(st Status) string {
	var p []string
	for _, t := range st.Timers {
		switch {
		case t.Finished():
			p = append(p, t.Label+": DONE!")
		case t.Running():
			p = append(p, t.Label+": "+timer.Format(t.Remaining))
		}
	}
	if len(p) == 0 {
		return "Recipe Box"
	}
	return "Recipe Box - " + strings.Join(p, " | ")
}
