package timer

import "time"

// Ticker delivers periodic ticks. It mirrors the parts of time.Ticker the
// manager uses so tests can drive ticks by hand.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates a ticker for one run of one timer.
type TickerFactory func(d time.Duration) Ticker

type realTicker struct {
	t *time.Ticker
}

func (r realTicker) C() <-chan time.Time { return r.t.C }
func (r realTicker) Stop()               { r.t.Stop() }

func newRealTicker(d time.Duration) Ticker {
	return realTicker{t: time.NewTicker(d)}
}
