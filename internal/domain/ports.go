package domain

import "context"

// Catalog looks recipes up in the remote recipe service.
type Catalog interface {
	Search(ctx context.Context, query string) ([]Recipe, error)
	LookupByID(ctx context.Context, id string) (*Recipe, error)
}

// Notifier delivers messages to the user. Implementations can write to
// the terminal, push to a phone, or fan out to several of those.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Alerter plays the audible alert when a timer finishes.
type Alerter interface {
	Alert(ctx context.Context) error
}

// Speaker reads text aloud. Speak replaces anything currently being read.
type Speaker interface {
	Speak(ctx context.Context, text string) error
	Stop()
}
