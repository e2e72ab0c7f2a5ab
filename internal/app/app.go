// Package app is the application context. It owns the domain stores, the
// timers and the catalog client, and routes each parsed command through a
// dispatch table to a typed handler. Every handler finishes its mutations
// before it renders, so output always reflects the state it just wrote.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/atotto/clipboard"

	"github.com/hammamikhairi/recipebox/internal/catalog"
	"github.com/hammamikhairi/recipebox/internal/command"
	"github.com/hammamikhairi/recipebox/internal/display"
	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/store"
	"github.com/hammamikhairi/recipebox/internal/timer"
	"github.com/hammamikhairi/recipebox/internal/view"
)

// Printer receives rendered output. display.UI satisfies it.
type Printer interface {
	Println(a ...interface{})
	PrintError(text string)
	PrintHint(text string)
}

// Deps are the collaborators the app is built from. Speaker may be nil
// when no speech backend is configured.
type Deps struct {
	Stores   *store.Stores
	Timers   *timer.Manager
	Catalog  *catalog.Client
	View     *view.Synchronizer
	Notifier domain.Notifier
	Speaker  domain.Speaker
	Out      Printer
	Log      *logger.Logger
}

// Option configures an App.
type Option func(*App)

// WithClipboard replaces the system clipboard writer.
func WithClipboard(fn func(string) error) Option {
	return func(a *App) { a.copyText = fn }
}

// WithExportDir sets where print and shop export write files.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

// WithRefresh registers a callback run after every handled line.
func WithRefresh(fn func()) Option {
	return func(a *App) { a.refresh = fn }
}

type handlerFunc func(ctx context.Context, cmd command.Command) error

// confirmation is an action waiting for a y/yes answer.
type confirmation struct {
	prompt string
	run    func(ctx context.Context) error
}

// App is the application context. Handle must be called from one
// goroutine; the stores and timers it drives are safe for concurrent use.
type App struct {
	stores   *store.Stores
	timers   *timer.Manager
	catalog  *catalog.Client
	view     *view.Synchronizer
	notifier domain.Notifier
	speaker  domain.Speaker
	out      Printer
	log      *logger.Logger

	parser    *command.Parser
	validate  *inputValidator
	copyText  func(string) error
	exportDir string
	refresh   func()
	handlers  map[command.Type]handlerFunc

	// Session state, touched only by Handle.
	listed         []domain.Recipe
	servings       int
	filterCategory string
	filterArea     string
	pending        *confirmation
}

// New builds the app and its dispatch table.
func New(deps Deps, opts ...Option) *App {
	a := &App{
		stores:    deps.Stores,
		timers:    deps.Timers,
		catalog:   deps.Catalog,
		view:      deps.View,
		notifier:  deps.Notifier,
		speaker:   deps.Speaker,
		out:       deps.Out,
		log:       deps.Log,
		parser:    command.NewParser(deps.Log.Named("parser")),
		validate:  newInputValidator(),
		copyText:  clipboard.WriteAll,
		exportDir: ".",
		refresh:   func() {},
	}
	for _, opt := range opts {
		opt(a)
	}

	a.handlers = map[command.Type]handlerFunc{
		command.Search:        a.handleSearch,
		command.Filter:        a.handleFilter,
		command.ClearFilter:   a.handleClearFilter,
		command.Open:          a.handleOpen,
		command.Close:         a.handleClose,
		command.Random:        a.handleRandom,
		command.Fav:           a.handleFav,
		command.Favs:          a.handleFavs,
		command.ShopAdd:       a.handleShopAdd,
		command.Shop:          a.handleShop,
		command.ShopToggle:    a.handleShopToggle,
		command.ShopRemove:    a.handleShopRemove,
		command.ShopClear:     a.handleShopClear,
		command.ShopExport:    a.handleShopExport,
		command.Collections:   a.handleCollections,
		command.CollNew:       a.handleCollNew,
		command.CollAdd:       a.handleCollAdd,
		command.CollRemove:    a.handleCollRemove,
		command.CollDelete:    a.handleCollDelete,
		command.CollView:      a.handleCollView,
		command.TimerNew:      a.handleTimerNew,
		command.TimerStart:    a.handleTimerStart,
		command.TimerPause:    a.handleTimerPause,
		command.TimerReset:    a.handleTimerReset,
		command.TimerDelete:   a.handleTimerDelete,
		command.Timers:        a.handleTimers,
		command.Rate:          a.handleRate,
		command.Note:          a.handleNote,
		command.Cooked:        a.handleCooked,
		command.History:       a.handleHistory,
		command.Theme:         a.handleTheme,
		command.Accessibility: a.handleAccessibility,
		command.Read:          a.handleRead,
		command.Print:         a.handlePrint,
		command.Email:         a.handleEmail,
		command.Share:         a.handleShare,
		command.Copy:          a.handleCopy,
		command.Recs:          a.handleRecs,
		command.ForYou:        a.handleForYou,
		command.Trending:      a.handleTrending,
		command.Help:          a.handleHelp,
	}
	return a
}

// Run reads lines until ctx is cancelled, the input closes, or the user
// quits.
func (a *App) Run(ctx context.Context, input <-chan string) {
	a.out.Println(a.view.Welcome(a.snapshot()))
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-input:
			if !ok {
				return
			}
			if !a.Handle(ctx, line) {
				return
			}
		}
	}
}

// Handle executes one input line. It returns false when the user asked to
// quit.
func (a *App) Handle(ctx context.Context, line string) bool {
	defer a.refresh()

	cmd := a.parser.Parse(line)
	if cmd.Type == command.Unknown && cmd.Raw == "" {
		return true
	}

	if a.pending != nil {
		p := a.pending
		a.pending = nil
		switch cmd.Type {
		case command.Confirm:
			a.report(p.run(ctx))
			return true
		case command.Deny:
			a.out.PrintHint("Cancelled.")
			return true
		}
		a.out.PrintHint("Cancelled: " + p.prompt)
	}

	switch cmd.Type {
	case command.Quit:
		a.log.Info("quit requested")
		return false
	case command.Unknown:
		a.out.PrintHint(fmt.Sprintf("Unknown command %q. Type 'help' for the list.", cmd.Raw))
		return true
	case command.Confirm, command.Deny:
		a.out.PrintHint("Nothing to confirm.")
		return true
	}

	h, ok := a.handlers[cmd.Type]
	if !ok {
		a.log.Warn("no handler for %s", cmd.Type)
		return true
	}
	a.log.Debug("dispatching %s %q", cmd.Type, cmd.Args)
	a.report(h(ctx, cmd))
	return true
}

// report renders a handler error. Invalid input gets an inline message,
// transport failures the generic error state; a superseded response is
// dropped without output.
func (a *App) report(err error) {
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrStale):
		a.log.Debug("stale response dropped: %v", err)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrTimerFinished),
		errors.Is(err, domain.ErrAlreadyExists):
		a.out.PrintError(err.Error())
	default:
		a.log.Error("command failed: %v", err)
		a.out.Println(a.view.Error(a.snapshot(), err))
	}
}

// confirm parks an action until the next y/yes.
func (a *App) confirm(prompt string, run func(ctx context.Context) error) {
	a.pending = &confirmation{prompt: prompt, run: run}
	a.out.PrintHint(prompt + " (y/n)")
}

// Pending reports whether an action is waiting for confirmation.
func (a *App) Pending() bool { return a.pending != nil }

func (a *App) snapshot() view.Snapshot {
	return view.Capture(a.stores, a.timers, a.catalog)
}

// current returns the open recipe or a hint-worthy error.
func (a *App) current() (domain.Recipe, error) {
	r, ok := a.catalog.Current()
	if !ok {
		return domain.Recipe{}, fmt.Errorf("%w: open a recipe first", domain.ErrInvalidInput)
	}
	return r, nil
}

// Status summarizes state for the display's status bar.
func (a *App) Status() display.Status {
	return display.Status{
		Favorites:          a.stores.Favorites.Len(),
		Shopping:           a.stores.Shopping.Len(),
		Collections:        a.stores.Collections.Len(),
		Timers:             a.timers.All(),
		KeyboardNavigation: a.stores.Accessibility.Get().KeyboardNavigation,
	}
}

// exportPath resolves a user-supplied file name against the export dir.
func (a *App) exportPath(name, fallback string) string {
	if name == "" {
		name = fallback
	}
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(a.exportDir, name)
}

func writeExport(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
