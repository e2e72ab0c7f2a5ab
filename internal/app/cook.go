package app

import (
	"context"
	"fmt"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/timer"
	"github.com/hammamikhairi/recipebox/internal/view"
)

func (a *App) handleTimerNew(_ context.Context, cmd command.Command) error {
	minutes, seconds, err := command.ParseDuration(cmd.Arg(0))
	if err != nil {
		return err
	}
	in := timerInput{
		Minutes: minutes,
		Seconds: seconds,
		Total:   minutes*60 + seconds,
		Label:   cmd.Arg(1),
	}
	if err := a.validate.check(in); err != nil {
		return err
	}

	t, err := a.timers.Create(in.Minutes, in.Seconds, in.Label)
	if err != nil {
		return err
	}
	if err := a.timers.Start(t.ID); err != nil {
		return err
	}
	a.out.PrintHint(fmt.Sprintf("Timer %d %q started: %s", t.ID, t.Label, timer.Format(t.Total)))
	return nil
}

// timerOp runs one timer operation then shows every timer.
func (a *App) timerOp(cmd command.Command, op func(id int) error) error {
	id, err := atoi("timer", cmd.Arg(0))
	if err != nil {
		return err
	}
	if err := op(id); err != nil {
		return err
	}
	a.out.Println(a.view.Timers(a.snapshot()))
	return nil
}

func (a *App) handleTimerStart(_ context.Context, cmd command.Command) error {
	return a.timerOp(cmd, a.timers.Start)
}

func (a *App) handleTimerPause(_ context.Context, cmd command.Command) error {
	return a.timerOp(cmd, a.timers.Pause)
}

func (a *App) handleTimerReset(_ context.Context, cmd command.Command) error {
	return a.timerOp(cmd, a.timers.Reset)
}

func (a *App) handleTimerDelete(_ context.Context, cmd command.Command) error {
	return a.timerOp(cmd, a.timers.Delete)
}

func (a *App) handleTimers(_ context.Context, _ command.Command) error {
	a.out.Println(a.view.Timers(a.snapshot()))
	return nil
}

func (a *App) handleRate(ctx context.Context, cmd command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	n, err := atoi("rating", cmd.Arg(0))
	if err != nil {
		return err
	}
	if err := a.validate.check(ratingInput{Rating: n}); err != nil {
		return err
	}
	if err := a.stores.Ratings.Set(ctx, r.ID, n); err != nil {
		return err
	}
	a.out.PrintHint(fmt.Sprintf("Rated %s %s", r.Name, view.Stars(n)))
	return nil
}

func (a *App) handleNote(ctx context.Context, cmd command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	text := cmd.Arg(0)
	if text == "" {
		if note, ok := a.stores.Notes.Lookup(r.ID); ok && note.Note != "" {
			a.out.Println(note.Note)
			a.out.PrintHint("Last edited " + note.LastModified.Local().Format("Jan 2, 2006 15:04"))
		} else {
			a.out.PrintHint("No note yet. Use 'note <text>' to add one.")
		}
		return nil
	}
	if err := a.validate.check(noteInput{Text: text}); err != nil {
		return err
	}
	a.stores.Notes.Save(ctx, r.ID, text)
	a.out.PrintHint("Note saved for " + r.Name + ".")
	return nil
}

func (a *App) handleCooked(ctx context.Context, _ command.Command) error {
	r, err := a.current()
	if err != nil {
		return err
	}
	entry := a.stores.History.Record(ctx, r.ID, r.Name)
	a.out.PrintHint(fmt.Sprintf("Marked %s as cooked on %s.", r.Name, entry.CookedOn.Local().Format("Jan 2, 2006")))
	return nil
}

func (a *App) handleHistory(_ context.Context, _ command.Command) error {
	a.out.Println(a.view.History(a.snapshot()))
	return nil
}
