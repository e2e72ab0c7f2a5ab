// Package timer runs independent kitchen countdown timers. Each running
// timer owns one goroutine and one ticker; pausing, resetting or deleting
// cancels that goroutine before the call returns its new state.
package timer

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Option configures the manager.
type Option func(*Manager)

// WithTickInterval sets the length of one countdown second.
func WithTickInterval(d time.Duration) Option {
	return func(m *Manager) {
		m.tickInterval = d
	}
}

// WithTickerFactory replaces the ticker source.
func WithTickerFactory(f TickerFactory) Option {
	return func(m *Manager) {
		m.newTicker = f
	}
}

// WithOnChange registers a callback run after every tick and every
// state change.
func WithOnChange(fn func(domain.Timer)) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// handle is the cancellable run of one timer. gen identifies the run so a
// tick from a cancelled run can be told apart from a live one.
type handle struct {
	cancel context.CancelFunc
	gen    uint64
}

type entry struct {
	timer  domain.Timer
	handle *handle
}

// Manager owns every timer.
type Manager struct {
	alerter      domain.Alerter
	notifier     domain.Notifier
	log          *logger.Logger
	tickInterval time.Duration
	newTicker    TickerFactory

	mu       sync.Mutex
	timers   map[int]*entry
	nextID   int
	gen      uint64
	onChange func(domain.Timer)

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a timer manager.
func New(alerter domain.Alerter, notifier domain.Notifier, log *logger.Logger, opts ...Option) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	m := &Manager{
		alerter:      alerter,
		notifier:     notifier,
		log:          log,
		tickInterval: 1 * time.Second,
		newTicker:    newRealTicker,
		timers:       make(map[int]*entry),
		ctx:          ctx,
		cancel:       cancel,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SetOnChange replaces the change callback.
func (m *Manager) SetOnChange(fn func(domain.Timer)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onChange = fn
}

// Create adds an idle timer. The duration must be positive. An empty
// label becomes "Timer N".
func (m *Manager) Create(minutes, seconds int, label string) (domain.Timer, error) {
	total := minutes*60 + seconds
	if minutes < 0 || seconds < 0 || total <= 0 {
		return domain.Timer{}, fmt.Errorf("timer duration %dm%ds: %w", minutes, seconds, domain.ErrInvalidInput)
	}

	m.mu.Lock()
	m.nextID++
	if label == "" {
		label = fmt.Sprintf("Timer %d", m.nextID)
	}
	t := domain.Timer{
		ID:        m.nextID,
		Label:     label,
		Total:     total,
		Remaining: total,
		State:     domain.TimerIdle,
	}
	m.timers[t.ID] = &entry{timer: t}
	fn := m.onChange
	m.mu.Unlock()

	m.log.Info("timer %d %q created (%s)", t.ID, t.Label, Format(total))
	notify(fn, t)
	return t, nil
}

// Start runs an idle or paused timer. Starting a running timer does
// nothing; starting a finished one is an error.
func (m *Manager) Start(id int) error {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("timer %d: %w", id, domain.ErrNotFound)
	}
	switch e.timer.State {
	case domain.TimerFinished:
		m.mu.Unlock()
		return fmt.Errorf("timer %d: %w", id, domain.ErrTimerFinished)
	case domain.TimerRunning:
		m.mu.Unlock()
		return nil
	}

	m.gen++
	ctx, cancel := context.WithCancel(m.ctx)
	h := &handle{cancel: cancel, gen: m.gen}
	e.handle = h
	e.timer.State = domain.TimerRunning
	t := e.timer
	ticker := m.newTicker(m.tickInterval)
	m.wg.Add(1)
	go m.run(ctx, id, h.gen, ticker)
	fn := m.onChange
	m.mu.Unlock()

	m.log.Debug("timer %d started (gen=%d, remaining=%ds)", id, h.gen, t.Remaining)
	notify(fn, t)
	return nil
}

// Pause stops the countdown of a running timer and keeps the remaining
// time. Pausing a timer that is not running does nothing.
func (m *Manager) Pause(id int) error {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("timer %d: %w", id, domain.ErrNotFound)
	}
	if e.timer.State != domain.TimerRunning {
		m.mu.Unlock()
		return nil
	}
	e.release()
	e.timer.State = domain.TimerPaused
	t := e.timer
	fn := m.onChange
	m.mu.Unlock()

	m.log.Debug("timer %d paused at %ds", id, t.Remaining)
	notify(fn, t)
	return nil
}

// Reset stops a timer and restores its full duration. Finished timers
// cannot be reset; create a new one.
func (m *Manager) Reset(id int) error {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("timer %d: %w", id, domain.ErrNotFound)
	}
	if e.timer.State == domain.TimerFinished {
		m.mu.Unlock()
		return fmt.Errorf("timer %d: %w", id, domain.ErrTimerFinished)
	}
	e.release()
	e.timer.Remaining = e.timer.Total
	e.timer.State = domain.TimerIdle
	t := e.timer
	fn := m.onChange
	m.mu.Unlock()

	m.log.Debug("timer %d reset", id)
	notify(fn, t)
	return nil
}

// Delete cancels and removes a timer.
func (m *Manager) Delete(id int) error {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("timer %d: %w", id, domain.ErrNotFound)
	}
	e.release()
	delete(m.timers, id)
	t := e.timer
	fn := m.onChange
	m.mu.Unlock()

	m.log.Info("timer %d %q deleted", id, t.Label)
	notify(fn, t)
	return nil
}

// Get returns a snapshot of one timer.
func (m *Manager) Get(id int) (domain.Timer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.timers[id]
	if !ok {
		return domain.Timer{}, fmt.Errorf("timer %d: %w", id, domain.ErrNotFound)
	}
	return e.timer, nil
}

// All returns snapshots of every timer ordered by id.
func (m *Manager) All() []domain.Timer {
	m.mu.Lock()
	out := make([]domain.Timer, 0, len(m.timers))
	for _, e := range m.timers {
		out = append(out, e.timer)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of timers.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.timers)
}

// Stop cancels every running timer and waits for their goroutines.
func (m *Manager) Stop() {
	m.cancel()
	m.wg.Wait()
	m.log.Info("timer manager stopped")
}

// release cancels the current run, if any. Caller holds m.mu.
func (e *entry) release() {
	if e.handle != nil {
		e.handle.cancel()
		e.handle = nil
	}
}

// run drives one run of one timer until it is cancelled or finishes.
func (m *Manager) run(ctx context.Context, id int, gen uint64, ticker Ticker) {
	defer m.wg.Done()
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			if done := m.tick(id, gen); done {
				return
			}
		}
	}
}

// tick decrements one timer by one second. Reports whether the run is over.
func (m *Manager) tick(id int, gen uint64) bool {
	m.mu.Lock()
	e, ok := m.timers[id]
	if !ok || e.handle == nil || e.handle.gen != gen || e.timer.State != domain.TimerRunning {
		m.mu.Unlock()
		return true
	}

	e.timer.Remaining--
	finished := false
	if e.timer.Remaining <= 0 {
		e.timer.Remaining = 0
		e.timer.State = domain.TimerFinished
		e.release()
		finished = true
	}
	t := e.timer
	fn := m.onChange
	m.mu.Unlock()

	notify(fn, t)
	if finished {
		m.complete(t)
	}
	return finished
}

// complete fires the finish effects. It runs once per timer because only
// the tick that moves a timer to Finished reaches it.
func (m *Manager) complete(t domain.Timer) {
	m.log.Info("timer %d %q finished", t.ID, t.Label)

	if m.alerter != nil {
		if err := m.alerter.Alert(m.ctx); err != nil {
			m.log.Warn("timer %d: alert: %v", t.ID, err)
		}
	}
	if m.notifier != nil {
		msg := fmt.Sprintf("Timer Finished! %s is complete!", t.Label)
		if err := m.notifier.NotifyUrgent(m.ctx, msg); err != nil {
			m.log.Error("timer %d: notify: %v", t.ID, err)
		}
	}
}

func notify(fn func(domain.Timer), t domain.Timer) {
	if fn != nil {
		fn(t)
	}
}

// Format renders seconds as mm:ss.
func Format(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
