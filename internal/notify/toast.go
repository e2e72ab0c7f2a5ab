// Package notify delivers user-facing notifications: inline toasts in the
// terminal UI, ntfy push messages, and a fan-out over several of those.
package notify

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*Toast)(nil)

// PrintFunc is a function used to print formatted output.
// Matches the signature of both fmt.Printf and display.UI.Printf.
type PrintFunc func(format string, a ...interface{})

var (
	toastStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#22d3ee")).Bold(true)
	urgentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
)

// Toast prints notifications into the terminal scrollback.
type Toast struct {
	log     *logger.Logger
	printFn PrintFunc
}

// NewToast creates a terminal notifier.
// If printFn is nil, fmt.Printf is used.
func NewToast(log *logger.Logger, printFn PrintFunc) *Toast {
	if printFn == nil {
		printFn = func(format string, a ...interface{}) {
			fmt.Printf(format+"\n", a...)
		}
	}
	return &Toast{log: log, printFn: printFn}
}

// SetPrinter swaps the output function once the UI is running.
func (n *Toast) SetPrinter(printFn PrintFunc) {
	if printFn != nil {
		n.printFn = printFn
	}
}

// Notify prints a normal notification.
func (n *Toast) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	n.printFn("%s", toastStyle.Render(message))
	return nil
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *Toast) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	n.printFn("%s", urgentStyle.Render("⏰ "+message))
	return nil
}
