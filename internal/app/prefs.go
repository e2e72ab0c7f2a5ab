package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/view"
)

func (a *App) handleTheme(ctx context.Context, cmd command.Command) error {
	want := domain.Theme(strings.ToLower(cmd.Arg(0)))
	theme := a.stores.Theme.Get()
	if want == "" || want != theme {
		theme = a.stores.Theme.Toggle(ctx)
	}
	a.out.PrintHint(fmt.Sprintf("Theme: %s", theme))
	a.out.Println(a.view.Counts(a.snapshot()))
	return nil
}

func (a *App) handleAccessibility(ctx context.Context, cmd command.Command) error {
	acc := a.stores.Accessibility
	switch setting := strings.ToLower(cmd.Arg(0)); setting {
	case "":
	case "font", "size":
		in := fontInput{Size: strings.ToLower(cmd.Arg(1))}
		if err := a.validate.check(in); err != nil {
			return err
		}
		if err := acc.SetFontSize(ctx, domain.FontSize(in.Size)); err != nil {
			return err
		}
	case "contrast":
		acc.ToggleHighContrast(ctx)
	case "speech", "tts":
		if !acc.ToggleTextToSpeech(ctx) && a.speaker != nil {
			a.speaker.Stop()
		}
	case "reading":
		acc.ToggleReadingMode(ctx)
	case "keys", "keyboard":
		acc.ToggleKeyboardNavigation(ctx)
	default:
		return fmt.Errorf("%w: unknown setting %q (font, contrast, speech, reading, keys)", domain.ErrInvalidInput, setting)
	}
	a.out.Println(a.view.Accessibility(a.snapshot()))
	return nil
}

func (a *App) handleRead(ctx context.Context, cmd command.Command) error {
	if strings.EqualFold(cmd.Arg(0), "stop") {
		if a.speaker != nil {
			a.speaker.Stop()
		}
		a.out.PrintHint("Stopped reading.")
		return nil
	}

	r, err := a.current()
	if err != nil {
		return err
	}
	if !a.stores.Accessibility.Get().TextToSpeech {
		a.out.PrintHint("Text to speech is off. Turn it on with 'a11y speech'.")
		return nil
	}
	if a.speaker == nil {
		a.out.PrintError("Speech is not configured. Set AZURE_SPEECH_KEY and AZURE_SPEECH_REGION.")
		return nil
	}

	err = a.speaker.Speak(ctx, view.RecipeText(r, a.stores.Notes.Get(r.ID)))
	if errors.Is(err, domain.ErrNotImplemented) {
		a.out.PrintError("Speech is not available on this machine.")
		return nil
	}
	if err != nil {
		return err
	}
	a.out.PrintHint("Reading " + r.Name + ". Use 'read stop' to stop.")
	return nil
}
