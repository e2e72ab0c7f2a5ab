package timer

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// mockNotifier collects notifications for testing.
type mockNotifier struct {
	mu       sync.Mutex
	messages []string
	urgent   []string
}

func (m *mockNotifier) Notify(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
	return nil
}

func (m *mockNotifier) NotifyUrgent(_ context.Context, msg string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.urgent = append(m.urgent, msg)
	return nil
}

func (m *mockNotifier) urgentMessages() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.urgent...)
}

type mockAlerter struct {
	mu    sync.Mutex
	count int
}

func (a *mockAlerter) Alert(context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.count++
	return nil
}

func (a *mockAlerter) alerts() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.count
}

// fakeTicker is driven by the test through an unbuffered channel, so a
// send returns only once the run loop has taken the tick.
type fakeTicker struct {
	ch      chan time.Time
	mu      sync.Mutex
	stopped bool
}

func (f *fakeTicker) C() <-chan time.Time { return f.ch }

func (f *fakeTicker) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stopped = true
}

func (f *fakeTicker) isStopped() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stopped
}

type fakeTickers struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (f *fakeTickers) factory(time.Duration) Ticker {
	f.mu.Lock()
	defer f.mu.Unlock()
	t := &fakeTicker{ch: make(chan time.Time)}
	f.tickers = append(f.tickers, t)
	return t
}

func (f *fakeTickers) last(t *testing.T) *fakeTicker {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.tickers) == 0 {
		t.Fatal("no ticker created")
	}
	return f.tickers[len(f.tickers)-1]
}

func (f *fakeTickers) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.tickers)
}

func newTestManager(t *testing.T) (*Manager, *fakeTickers, *mockAlerter, *mockNotifier) {
	t.Helper()
	ft := &fakeTickers{}
	alerter := &mockAlerter{}
	notifier := &mockNotifier{}
	m := New(alerter, notifier, logger.New(logger.LevelOff, nil), WithTickerFactory(ft.factory))
	t.Cleanup(m.Stop)
	return m, ft, alerter, notifier
}

func TestThirtyTicksFinishesOnce(t *testing.T) {
	m, ft, alerter, notifier := newTestManager(t)

	tm, err := m.Create(0, 30, "Eggs")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := m.Start(tm.ID); err != nil {
		t.Fatalf("start: %v", err)
	}

	tk := ft.last(t)
	for i := 0; i < 30; i++ {
		tk.ch <- time.Now()
	}
	m.Stop()

	got, _ := m.Get(tm.ID)
	if got.State != domain.TimerFinished || got.Remaining != 0 {
		t.Fatalf("expected finished at 0, got %s at %d", got.State, got.Remaining)
	}
	if n := alerter.alerts(); n != 1 {
		t.Fatalf("expected one alert, got %d", n)
	}
	urgent := notifier.urgentMessages()
	if len(urgent) != 1 || urgent[0] != "Timer Finished! Eggs is complete!" {
		t.Fatalf("unexpected urgent notifications %q", urgent)
	}
	if !tk.isStopped() {
		t.Fatal("ticker not released after finish")
	}
	if err := m.Start(tm.ID); !errors.Is(err, domain.ErrTimerFinished) {
		t.Fatalf("expected ErrTimerFinished on restart, got %v", err)
	}
	if err := m.Reset(tm.ID); !errors.Is(err, domain.ErrTimerFinished) {
		t.Fatalf("expected ErrTimerFinished on reset, got %v", err)
	}
}

func TestCreateValidation(t *testing.T) {
	m, _, _, _ := newTestManager(t)

	tests := []struct {
		name    string
		min     int
		sec     int
		wantErr bool
	}{
		{"zero", 0, 0, true},
		{"negative", -1, 30, true},
		{"seconds only", 0, 45, false},
		{"minutes", 5, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Create(tt.min, tt.sec, "")
			if tt.wantErr != errors.Is(err, domain.ErrInvalidInput) {
				t.Fatalf("Create(%d, %d) err=%v, wantErr %v", tt.min, tt.sec, err, tt.wantErr)
			}
		})
	}

	all := m.All()
	if len(all) != 2 || all[0].Label != "Timer 1" || all[1].Label != "Timer 2" {
		t.Fatalf("unexpected timers %+v", all)
	}
}

func TestPauseResumeKeepsRemaining(t *testing.T) {
	m, ft, _, _ := newTestManager(t)
	tm, _ := m.Create(1, 0, "Rice")
	_ = m.Start(tm.ID)

	first := ft.last(t)
	for i := 0; i < 5; i++ {
		first.ch <- time.Now()
	}
	if err := m.Pause(tm.ID); err != nil {
		t.Fatalf("pause: %v", err)
	}

	got, _ := m.Get(tm.ID)
	if got.State != domain.TimerPaused {
		t.Fatalf("expected paused, got %s", got.State)
	}
	// The fifth tick may still be applying when Pause takes the lock.
	if got.Remaining != 55 && got.Remaining != 56 {
		t.Fatalf("expected 55 or 56 remaining, got %d", got.Remaining)
	}

	_ = m.Start(tm.ID)
	if ft.count() != 2 {
		t.Fatalf("expected a fresh ticker per run, got %d", ft.count())
	}
	if err := m.Start(tm.ID); err != nil {
		t.Fatalf("start while running: %v", err)
	}
	if ft.count() != 2 {
		t.Fatal("start while running created another ticker")
	}
}

func TestStaleTickIsDiscarded(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	tm, _ := m.Create(0, 10, "Tea")
	_ = m.Start(tm.ID)

	m.mu.Lock()
	oldGen := m.timers[tm.ID].handle.gen
	m.mu.Unlock()

	_ = m.Reset(tm.ID)
	_ = m.Start(tm.ID)

	if done := m.tick(tm.ID, oldGen); !done {
		t.Fatal("stale run should stop")
	}
	got, _ := m.Get(tm.ID)
	if got.Remaining != 10 {
		t.Fatalf("stale tick changed remaining to %d", got.Remaining)
	}
}

func TestUnknownTimer(t *testing.T) {
	m, _, _, _ := newTestManager(t)
	ops := map[string]func(int) error{
		"start":  m.Start,
		"pause":  m.Pause,
		"reset":  m.Reset,
		"delete": m.Delete,
	}
	for name, op := range ops {
		if err := op(42); !errors.Is(err, domain.ErrNotFound) {
			t.Fatalf("%s: expected ErrNotFound, got %v", name, err)
		}
	}
}

func TestDeleteReleasesTicker(t *testing.T) {
	m, ft, _, _ := newTestManager(t)
	tm, _ := m.Create(0, 10, "Pasta")
	_ = m.Start(tm.ID)
	if err := m.Delete(tm.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if m.Len() != 0 {
		t.Fatal("timer still listed after delete")
	}

	tk := ft.last(t)
	deadline := time.After(2 * time.Second)
	for !tk.isStopped() {
		select {
		case <-deadline:
			t.Fatal("ticker not stopped after delete")
		default:
			time.Sleep(time.Millisecond)
		}
	}
}

func TestInvariantUnderRandomOps(t *testing.T) {
	m, ft, _, _ := newTestManager(t)
	tm, _ := m.Create(0, 8, "Soup")
	rng := rand.New(rand.NewPCG(1, 2))

	check := func(step int) {
		got, _ := m.Get(tm.ID)
		if got.Remaining < 0 || got.Remaining > got.Total {
			t.Fatalf("step %d: remaining %d outside [0,%d]", step, got.Remaining, got.Total)
		}
		if got.Running() && got.Finished() {
			t.Fatalf("step %d: running and finished", step)
		}
	}

	for step := 0; step < 300; step++ {
		switch rng.IntN(4) {
		case 0:
			_ = m.Start(tm.ID)
		case 1:
			_ = m.Pause(tm.ID)
		case 2:
			_ = m.Reset(tm.ID)
		case 3:
			got, _ := m.Get(tm.ID)
			if got.Running() {
				// The run may finish between Get and the send.
				select {
				case ft.last(t).ch <- time.Now():
				case <-time.After(50 * time.Millisecond):
				}
			}
		}
		check(step)
	}
}

func TestOnChangeFires(t *testing.T) {
	ft := &fakeTickers{}
	var mu sync.Mutex
	var states []domain.TimerState
	m := New(nil, nil, logger.New(logger.LevelOff, nil),
		WithTickerFactory(ft.factory),
		WithOnChange(func(tm domain.Timer) {
			mu.Lock()
			defer mu.Unlock()
			states = append(states, tm.State)
		}))
	defer m.Stop()

	tm, _ := m.Create(0, 1, "")
	_ = m.Start(tm.ID)
	ft.last(t).ch <- time.Now()
	m.Stop()

	mu.Lock()
	defer mu.Unlock()
	want := []domain.TimerState{domain.TimerIdle, domain.TimerRunning, domain.TimerFinished}
	if len(states) != len(want) {
		t.Fatalf("expected %v, got %v", want, states)
	}
	for i := range want {
		if states[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, states)
		}
	}
}

func TestFormat(t *testing.T) {
	tests := map[int]string{0: "00:00", 5: "00:05", 90: "01:30", 3600: "60:00", -3: "00:00"}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Fatalf("Format(%d)=%q, want %q", in, got, want)
		}
	}
}
