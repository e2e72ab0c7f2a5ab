// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type manages a persistent status bar (counts and timers) and an
// input prompt at the bottom of the terminal. All application output is
// printed above the rendered area via Program.Println / Printf, so
// concurrent writes never garble the display.
package display

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ── Styles ───────────────────────────────────────────────────────

var (
	barBg = lipgloss.NewStyle().
		Background(lipgloss.Color("#27272a")).
		Foreground(lipgloss.Color("#a1a1aa"))

	countStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f9a8d4"))

	timerRunStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fde68a"))

	timerDoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)

	timerPendingStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#71717a")).
				Italic(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a1a1aa"))

	sepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#52525b"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#94a3b8"))

	// BannerStyle is the startup banner color.
	BannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fb923c"))

	secondaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#71717a"))

	urgentOutputStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#fca5a5"))

	userInputEchoStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#a1a1aa"))
)

const promptText = "recipes> "

// Shortcut commands sent when keyboard navigation is on.
const (
	ShortcutHome   = "close"
	ShortcutRandom = "random"
	ShortcutTheme  = "theme"
	searchPrefill  = "search "
)

// ── UI ───────────────────────────────────────────────────────────

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking). Other goroutines may safely call
// [UI.Println], [UI.Printf], [UI.Refresh] and read from [UI.InputChan] at
// any time after [UI.WaitReady] returns.
type UI struct {
	program  *tea.Program
	inputCh  chan string
	readyCh  chan struct{}
	quitCh   chan struct{}
	status   StatusFunc
	onResize func(width int)
	ready    atomic.Bool
	done     atomic.Bool
}

// NewUI creates the display. Call Run() to start.
func NewUI(status StatusFunc) *UI {
	if status == nil {
		status = func() Status { return Status{} }
	}
	return &UI{
		status:  status,
		inputCh: make(chan string, 16),
		readyCh: make(chan struct{}),
		quitCh:  make(chan struct{}),
	}
}

// OnResize registers a callback for terminal width changes.
func (u *UI) OnResize(fn func(width int)) { u.onResize = fn }

// Println prints a line above the prompt. Thread-safe.
// If the program hasn't started yet, falls back to fmt.Println.
func (u *UI) Println(a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Println(a...)
	} else {
		fmt.Println(a...)
	}
}

// Printf prints formatted text above the prompt on its own line. Thread-safe.
func (u *UI) Printf(format string, a ...interface{}) {
	if u.program != nil && !u.done.Load() {
		u.program.Printf(format, a...)
	} else {
		fmt.Printf(format+"\n", a...)
	}
}

// PrintError prints an error line.
func (u *UI) PrintError(text string) {
	u.Println(urgentOutputStyle.Render("  " + text))
}

// PrintHint prints a dimmed line.
func (u *UI) PrintHint(text string) {
	u.Println(secondaryStyle.Render("  " + text))
}

// PrintUserInput echoes the user's typed command into the scrollback.
func (u *UI) PrintUserInput(text string) {
	u.Println(promptStyle.Render(promptText) + userInputEchoStyle.Render(text))
}

// Refresh asks the UI to redraw the status bar now. Safe to call from any
// goroutine; a no-op before the program is running or after it quit.
func (u *UI) Refresh() {
	if u.program == nil || !u.ready.Load() || u.done.Load() {
		return
	}
	go u.program.Send(refreshMsg{})
}

// InputChan returns completed user-input lines.
func (u *UI) InputChan() <-chan string { return u.inputCh }

// WaitReady blocks until the Bubble Tea event loop is running.
func (u *UI) WaitReady() { <-u.readyCh }

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if u.program != nil {
		u.program.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until quit.
func (u *UI) Run() error {
	m := newModel(u.status, u.inputCh, u.readyCh)
	m.echoFn = u.PrintUserInput
	m.onReady = func() { u.ready.Store(true) }
	m.onResize = u.onResize

	u.program = tea.NewProgram(m)
	_, err := u.program.Run()
	u.done.Store(true)
	close(u.quitCh)
	return err
}

// ── Bubble Tea model ─────────────────────────────────────────────

type model struct {
	status   StatusFunc
	input    textinput.Model
	inputCh  chan<- string
	readyCh  chan struct{}
	echoFn   func(string)
	onReady  func()
	onResize func(int)
	current  Status
	width    int
}

func newModel(status StatusFunc, inputCh chan<- string, readyCh chan struct{}) model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct; styled
	// prompts add ANSI bytes to the offset calculations.
	ti.Prompt = promptText
	ti.PromptStyle = promptStyle
	ti.TextStyle = userInputEchoStyle
	ti.Cursor.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#94a3b8"))
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60 // updated on first WindowSizeMsg

	return model{
		status:  status,
		input:   ti,
		inputCh: inputCh,
		readyCh: readyCh,
		current: status(),
	}
}

// Messages.
type (
	tickMsg    time.Time
	refreshMsg struct{}
)

func (m model) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tickCmd(),
		signalReady(m.readyCh, m.onReady),
	)
}

func signalReady(ch chan struct{}, onReady func()) tea.Cmd {
	return func() tea.Msg {
		if onReady != nil {
			onReady()
		}
		close(ch)
		return nil
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// submit queues a line for the application and echoes it.
func (m model) submit(line string) tea.Cmd {
	m.inputCh <- line
	echoFn := m.echoFn
	if echoFn == nil {
		return nil
	}
	// Echo from a Cmd so it runs outside Update.
	return func() tea.Msg {
		echoFn(line)
		return nil
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			v := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(v) != "" {
				return m, m.submit(v)
			}
			return m, nil
		}
		if m.current.KeyboardNavigation {
			if cmd, handled := m.shortcut(msg); handled {
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > len(promptText) {
			m.input.Width = msg.Width - len(promptText)
		}
		if m.onResize != nil {
			m.onResize(msg.Width)
		}
		return m, nil

	case tickMsg:
		m.current = m.status()
		return m, tea.Batch(tickCmd(), tea.SetWindowTitle(windowTitle(m.current)))

	case refreshMsg:
		m.current = m.status()
		return m, tea.SetWindowTitle(windowTitle(m.current))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// shortcut maps the navigation keys: Ctrl+F focuses a search, Ctrl+H
// goes home, Ctrl+R opens a random recipe, Ctrl+T toggles the theme and
// Esc closes the current panel.
func (m *model) shortcut(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch msg.Type {
	case tea.KeyCtrlF:
		m.input.SetValue(searchPrefill)
		m.input.CursorEnd()
		return nil, true
	case tea.KeyCtrlH, tea.KeyEsc:
		m.input.Reset()
		return m.submit(ShortcutHome), true
	case tea.KeyCtrlR:
		return m.submit(ShortcutRandom), true
	case tea.KeyCtrlT:
		return m.submit(ShortcutTheme), true
	}
	return nil, false
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(renderBar(m.current, m.width))
	b.WriteByte('\n')
	b.WriteByte('\n')
	b.WriteString(m.input.View())
	return b.String()
}
