package main

import (
	"context"
	"fmt"
	"time"

	"github.com/hammamikhairi/recipebox/internal/app"
	"github.com/hammamikhairi/recipebox/internal/config"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/notify"
	"github.com/hammamikhairi/recipebox/internal/speech"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/timer"
	"github.com/hammamikhairi/recipebox/internal/view"
)

// runInteractive wires every component and hands the terminal to the UI.
func runInteractive(parent context.Context, cc *commandContext) error {
	cfg, err := cc.ensureConfig()
	if err != nil {
		return err
	}
	log, closeLog := cc.openLogger(cfg)
	defer closeLog()

	// Cancelled when the UI quits.
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	var application *app.App
	ui := display.NewUI(func() display.Status {
		if application == nil {
			return display.Status{}
		}
		return application.Status()
	})

	toast := notify.NewToast(log.Named("notify"), ui.Printf)
	var notifier domain.Notifier = toast
	if cfg.NtfyConfigured() {
		push := notify.NewNtfy(cfg.Notifications.NtfyTopic,
			time.Duration(cfg.Notifications.RequestTimeout)*time.Second, log.Named("ntfy"))
		notifier = notify.Multi{toast, push}
		log.Info("push notifications enabled")
	}

	adapter, closeStorage, err := cc.openStorage(cfg, log)
	if err != nil {
		return err
	}
	defer closeStorage()
	adapter.SetFailureHandler(toast)

	stores := store.Open(ctx, adapter, log.Named("store"), domain.Theme(cfg.UI.DefaultTheme))
	stores.Events.Subscribe(func(store.Event) { ui.Refresh() })

	alerter, speaker, stopSpeech := buildAudio(cfg, log)
	defer stopSpeech()

	timers := timer.New(alerter, notifier, log.Named("timer"),
		timer.WithTickInterval(time.Duration(cfg.Timers.TickMillis)*time.Millisecond),
		timer.WithOnChange(func(domain.Timer) { ui.Refresh() }),
	)
	defer timers.Stop()

	client, err := newCatalog(cfg, log)
	if err != nil {
		return err
	}

	views := view.New(
		view.WithShuffler(client.Shuffle),
		view.WithWidth(display.TermWidth()),
		view.WithRecommendationCount(cfg.UI.RecommendationCount),
	)
	ui.OnResize(views.SetWidth)

	application = app.New(app.Deps{
		Stores:   stores,
		Timers:   timers,
		Catalog:  client,
		View:     views,
		Notifier: notifier,
		Speaker:  speaker,
		Out:      ui,
		Log:      log.Named("app"),
	},
		app.WithExportDir(cfg.Paths.ExportDir),
		app.WithRefresh(ui.Refresh),
	)

	fmt.Println(display.RenderBanner(0))
	fmt.Println(display.BannerStyle.Render("  Type 'help' for commands, 'quit' to exit."))
	fmt.Println()

	go func() {
		ui.WaitReady()
		application.Run(ctx, ui.InputChan())
		ui.Quit()
	}()

	// Bubble Tea owns the terminal; blocks until quit.
	if err := ui.Run(); err != nil {
		log.Error("display: %v", err)
		return err
	}
	return nil
}

// buildAudio picks the timer alert and the recipe reader. The speaker is
// nil when speech is off or has no credentials; a missing audio device
// degrades both to silent stand-ins.
func buildAudio(cfg *config.Config, log *logger.Logger) (domain.Alerter, domain.Speaker, func()) {
	var alerter domain.Alerter = speech.NewNoopAlerter(log.Named("alert"))
	var speaker domain.Speaker
	stop := func() {}

	if !cfg.Timers.AlertSound && !cfg.SpeechConfigured() {
		return alerter, speaker, stop
	}

	player, err := speech.NewPlayer(log.Named("audio"))
	if err != nil {
		log.Warn("audio output unavailable, alerts and speech disabled: %v", err)
		return alerter, speech.NewNoopSpeaker(log.Named("speech")), stop
	}

	if cfg.Timers.AlertSound {
		alerter = speech.NewBeeper(player, log.Named("alert"))
	}

	switch {
	case !cfg.Speech.Enabled:
	case !cfg.SpeechConfigured():
		log.Info("TTS disabled: set %s and %s to enable", config.EnvAzureSpeechKey, config.EnvAzureSpeechRegion)
	default:
		tts := speech.NewAzureClient(cfg.Speech.Key, cfg.Speech.Region, log.Named("tts"),
			speech.WithVoice(cfg.Speech.Voice))
		cache := speech.NewAudioCache(tts.Voice(), cfg.Speech.CacheDir, speech.DefaultCacheEntries, log.Named("tts-cache"))
		reader := speech.NewReader(tts, player, log.Named("reader"), speech.WithCache(cache))
		speaker = reader
		stop = func() {
			reader.Stop()
			reader.Wait()
		}
		log.Info("TTS enabled (voice=%s, region=%s)", tts.Voice(), cfg.Speech.Region)
	}
	return alerter, speaker, stop
}
