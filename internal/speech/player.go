package speech

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Output is the speaker the alert tone and recipe readings go to.
type Output interface {
	Play(ctx context.Context, wav []byte) error
	PlayPCM(ctx context.Context, pcm []byte) error
	Stop()
}

var _ Output = (*Player)(nil)

// pollInterval is how often a blocking play checks for completion.
const pollInterval = 10 * time.Millisecond

// Player owns the process-wide oto context. One sound plays at a time: a
// timer alert and a reading share it, and Stop silences whichever is on.
type Player struct {
	otoCtx *oto.Context
	log    *logger.Logger

	mu      sync.Mutex
	current *oto.Player
}

// NewPlayer opens the audio device at the speech sample rate. It fails on
// machines without an output device; callers fall back to silence.
func NewPlayer(log *logger.Logger) (*Player, error) {
	otoCtx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready

	log.Debug("audio ready: %d Hz, %d channel(s)", SampleRate, ChannelCount)
	return &Player{otoCtx: otoCtx, log: log}, nil
}

// Play speaks a synthesized recipe chunk.
func (p *Player) Play(ctx context.Context, wav []byte) error {
	pcm, err := extractPCM(wav)
	if err != nil {
		return err
	}
	return p.PlayPCM(ctx, pcm)
}

// PlayPCM blocks until the samples have played, ctx is done or Stop runs.
// The alert tone is generated directly as PCM and comes in here.
func (p *Player) PlayPCM(ctx context.Context, pcm []byte) error {
	sound := p.otoCtx.NewPlayer(bytes.NewReader(pcm))
	p.setCurrent(sound)
	defer p.clearCurrent(sound)

	sound.Play()
	p.log.Debug("playing %d bytes", len(pcm))

	tick := time.NewTicker(pollInterval)
	defer tick.Stop()
	for sound.IsPlaying() {
		select {
		case <-ctx.Done():
			sound.Pause()
		case <-tick.C:
		}
	}
	return sound.Close()
}

// Stop cuts off the sound in progress. A no-op when idle.
func (p *Player) Stop() {
	p.mu.Lock()
	sound := p.current
	p.mu.Unlock()

	if sound == nil {
		return
	}
	sound.Pause()
	p.log.Debug("playback stopped")
}

func (p *Player) setCurrent(sound *oto.Player) {
	p.mu.Lock()
	p.current = sound
	p.mu.Unlock()
}

func (p *Player) clearCurrent(sound *oto.Player) {
	p.mu.Lock()
	if p.current == sound {
		p.current = nil
	}
	p.mu.Unlock()
}

const wavHeaderSize = 44

var (
	errShortWAV  = errors.New("wav data too short")
	errNotWAV    = errors.New("not a RIFF/WAVE payload")
	errNoPCMData = errors.New("wav has no data chunk")
)

// extractPCM returns the samples of the data chunk of a RIFF/WAVE payload,
// skipping any chunks Azure puts before it.
func extractPCM(wav []byte) ([]byte, error) {
	if len(wav) < wavHeaderSize {
		return nil, errShortWAV
	}
	if !bytes.Equal(wav[0:4], []byte("RIFF")) || !bytes.Equal(wav[8:12], []byte("WAVE")) {
		return nil, errNotWAV
	}

	for pos := 12; pos+8 <= len(wav); {
		id := wav[pos : pos+4]
		size := int(binary.LittleEndian.Uint32(wav[pos+4 : pos+8]))
		body := pos + 8
		if bytes.Equal(id, []byte("data")) {
			return wav[body:min(body+size, len(wav))], nil
		}
		// Chunk bodies are padded to an even length.
		pos = body + size + size%2
	}
	return nil, errNoPCMData
}
