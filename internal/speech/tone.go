package speech

import (
	"context"
	"encoding/binary"
	"math"
	"sync"
	"time"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

var _ domain.Alerter = (*Beeper)(nil)

// Beeper plays the timer alert on an Output.
type Beeper struct {
	out  Output
	log  *logger.Logger
	mu   sync.Mutex // one alert at a time
	tone []byte
	gap  []byte
}

// NewBeeper prepares the alert samples once.
func NewBeeper(out Output, log *logger.Logger) *Beeper {
	return &Beeper{
		out:  out,
		log:  log,
		tone: Tone(AlertFrequency, AlertToneDuration, AlertGain),
		gap:  Silence(AlertGap),
	}
}

// Alert plays the beeps and returns when they finish or ctx ends.
func (b *Beeper) Alert(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.log.Debug("alert: playing %d beeps", AlertRepeats)
	for i := 0; i < AlertRepeats; i++ {
		if i > 0 {
			if err := b.out.PlayPCM(ctx, b.gap); err != nil {
				return err
			}
		}
		if err := b.out.PlayPCM(ctx, b.tone); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

// Tone synthesizes a sine wave whose gain ramps exponentially from gain
// down to 0.01 over d, as s16le mono at SampleRate.
func Tone(freq float64, d time.Duration, gain float64) []byte {
	n := samples(d)
	out := make([]byte, n*2)
	const floor = 0.01
	for i := 0; i < n; i++ {
		t := float64(i) / SampleRate
		progress := float64(i) / float64(n)
		g := gain * math.Pow(floor/gain, progress)
		v := g * math.Sin(2*math.Pi*freq*t)
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(v*math.MaxInt16)))
	}
	return out
}

// Silence returns d worth of zero samples.
func Silence(d time.Duration) []byte {
	return make([]byte, samples(d)*2)
}

func samples(d time.Duration) int {
	return int(d.Seconds() * SampleRate)
}
