// Package store holds the in-memory domain stores. Each store owns one
// persisted key, is safe for concurrent use, writes through the storage
// adapter after every mutation and then announces the change.
package store

import (
	"sync"
	"time"

	"github.com/hammamikhairi/recipebox/internal/logger"
	"github.com/hammamikhairi/recipebox/internal/storage"
)

// EventKind identifies which store changed.
type EventKind int

const (
	FavoritesChanged EventKind = iota
	ShoppingChanged
	CollectionsChanged
	NotesChanged
	RatingsChanged
	HistoryChanged
	AccessibilityChanged
	ThemeChanged
)

// String returns a short name for the event kind.
func (k EventKind) String() string {
	switch k {
	case FavoritesChanged:
		return "favorites"
	case ShoppingChanged:
		return "shopping"
	case CollectionsChanged:
		return "collections"
	case NotesChanged:
		return "notes"
	case RatingsChanged:
		return "ratings"
	case HistoryChanged:
		return "history"
	case AccessibilityChanged:
		return "accessibility"
	case ThemeChanged:
		return "theme"
	default:
		return "unknown"
	}
}

// Event is emitted after a store mutation has been persisted.
type Event struct {
	Kind EventKind
}

// Listener receives store events. It runs on the mutating goroutine after
// the store lock is released.
type Listener func(Event)

// Events fans store events out to one listener. The listener can be set
// after the stores are built.
type Events struct {
	mu sync.RWMutex
	fn Listener
}

// NewEvents creates an event hub with no listener.
func NewEvents() *Events { return &Events{} }

// Subscribe sets the listener, replacing any previous one.
func (e *Events) Subscribe(fn Listener) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fn = fn
}

func (e *Events) emit(kind EventKind) {
	if e == nil {
		return
	}
	e.mu.RLock()
	fn := e.fn
	e.mu.RUnlock()
	if fn != nil {
		fn(Event{Kind: kind})
	}
}

// base is embedded in every store.
type base struct {
	adapter *storage.Adapter
	log     *logger.Logger
	events  *Events
	now     func() time.Time
}

// Option configures a store.
type Option func(*base)

// WithEvents routes change events to the given hub.
func WithEvents(e *Events) Option {
	return func(b *base) { b.events = e }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(b *base) { b.now = now }
}

func newBase(a *storage.Adapter, log *logger.Logger, opts []Option) base {
	b := base{
		adapter: a,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, o := range opts {
		o(&b)
	}
	return b
}
