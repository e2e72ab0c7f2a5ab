package speech

import (
	"context"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

func testLog() *logger.Logger { return logger.New(logger.LevelOff, nil) }

type fakeOutput struct {
	mu     sync.Mutex
	wav    []string
	pcm    []int
	stops  int
	cancel context.CancelFunc // cancels after the first PCM play when set
}

func (f *fakeOutput) Play(ctx context.Context, wav []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wav = append(f.wav, string(wav))
	return nil
}

func (f *fakeOutput) PlayPCM(ctx context.Context, pcm []byte) error {
	f.mu.Lock()
	f.pcm = append(f.pcm, len(pcm))
	cancel := f.cancel
	f.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	return nil
}

func (f *fakeOutput) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeOutput) played() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.wav...)
}

func TestToneShape(t *testing.T) {
	pcm := Tone(AlertFrequency, AlertToneDuration, AlertGain)
	require.Len(t, pcm, SampleRate/2*2)

	var peak float64
	for i := 0; i < len(pcm); i += 2 {
		v := math.Abs(float64(int16(binary.LittleEndian.Uint16(pcm[i:]))))
		peak = math.Max(peak, v)
	}
	assert.LessOrEqual(t, peak, AlertGain*math.MaxInt16+1)
	assert.Greater(t, peak, 0.2*math.MaxInt16)

	tail := int16(binary.LittleEndian.Uint16(pcm[len(pcm)-2:]))
	assert.Less(t, math.Abs(float64(tail)), 0.02*math.MaxInt16)
	assert.Len(t, Silence(AlertGap), SampleRate/10*2)
}

func TestBeeperPlaysTwoTonesWithGap(t *testing.T) {
	out := &fakeOutput{}
	b := NewBeeper(out, testLog())
	require.NoError(t, b.Alert(context.Background()))

	tone := len(Tone(AlertFrequency, AlertToneDuration, AlertGain))
	gap := len(Silence(AlertGap))
	assert.Equal(t, []int{tone, gap, tone}, out.pcm)
}

func TestBeeperStopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := &fakeOutput{cancel: cancel}
	err := NewBeeper(out, testLog()).Alert(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, out.pcm, 1)
}

func TestAzureSynthesize(t *testing.T) {
	var gotBody, gotKey, gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		gotFormat = r.Header.Get("X-Microsoft-OutputFormat")
		_, _ = w.Write([]byte("RIFFAUDIO"))
	}))
	defer srv.Close()

	c := NewAzureClient("secret", "westeurope", testLog(), WithEndpoint(srv.URL), WithVoice("en-GB-SoniaNeural"))
	audio, err := c.Synthesize(context.Background(), "Salt & pepper <to taste>")
	require.NoError(t, err)
	assert.Equal(t, "RIFFAUDIO", string(audio))
	assert.Equal(t, "secret", gotKey)
	assert.Equal(t, DefaultAudioFormat, gotFormat)
	assert.Contains(t, gotBody, "name='en-GB-SoniaNeural'")
	assert.Contains(t, gotBody, "Salt &amp; pepper &lt;to taste&gt;")
}

func TestAzureErrorIsTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewAzureClient("k", "r", testLog(), WithEndpoint(srv.URL)).Synthesize(context.Background(), "hi")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransport))
	assert.Contains(t, err.Error(), "429")
}

func TestAudioCacheLayers(t *testing.T) {
	dir := t.TempDir()
	c := NewAudioCache("voice-a", dir, 2, testLog())
	c.Put("one", []byte("1"))

	got, ok := c.Get("one")
	require.True(t, ok)
	assert.Equal(t, "1", string(got))

	warm := NewAudioCache("voice-a", dir, 2, testLog())
	got, ok = warm.Get("one")
	require.True(t, ok, "disk layer should survive a new cache")
	assert.Equal(t, "1", string(got))

	other := NewAudioCache("voice-b", dir, 2, testLog())
	_, ok = other.Get("one")
	assert.False(t, ok)

	hits, misses := warm.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(0), misses)
}

func TestAudioCacheEvictsInMemory(t *testing.T) {
	c := NewAudioCache("v", "", 2, testLog())
	c.Put("a", []byte("a"))
	c.Put("b", []byte("b"))
	c.Put("c", []byte("c"))
	assert.Equal(t, 2, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
}

// blockingSynth echoes text, blocking on texts that start with "slow"
// until the request is cancelled.
type blockingSynth struct {
	started chan string
}

func (s *blockingSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.started != nil {
		s.started <- text
	}
	if strings.HasPrefix(text, "slow") {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return []byte(text), nil
}

func TestReaderNewReadInterrupts(t *testing.T) {
	out := &fakeOutput{}
	synth := &blockingSynth{started: make(chan string, 4)}
	r := NewReader(synth, out, testLog())

	require.NoError(t, r.Speak(context.Background(), "slow first recipe"))
	assert.Equal(t, "slow first recipe", <-synth.started)

	require.NoError(t, r.Speak(context.Background(), "second recipe"))
	r.Wait()

	assert.Equal(t, []string{"second recipe"}, out.played())
	assert.GreaterOrEqual(t, out.stops, 1)
}

func TestReaderChunksAndCaches(t *testing.T) {
	out := &fakeOutput{}
	cache := NewAudioCache("v", "", 8, testLog())
	r := NewReader(&blockingSynth{}, out, testLog(), WithChunkSize(12), WithCache(cache))

	require.NoError(t, r.Speak(context.Background(), "Boil water. Add pasta! Drain?"))
	r.Wait()
	assert.Equal(t, []string{"Boil water.", "Add pasta!", "Drain?"}, out.played())
	assert.Equal(t, 3, cache.Len())
}

func TestReaderStripsDecoration(t *testing.T) {
	out := &fakeOutput{}
	r := NewReader(&blockingSynth{}, out, testLog(), WithChunkSize(0))
	require.NoError(t, r.Speak(context.Background(), "\x1b[1m★★★☆☆ Tikka ♥\x1b[0m"))
	r.Wait()
	assert.Equal(t, []string{"Tikka"}, out.played())
}

func TestNoopSpeakerReportsDisabled(t *testing.T) {
	err := NewNoopSpeaker(testLog()).Speak(context.Background(), "hello")
	assert.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.NoError(t, NewNoopAlerter(testLog()).Alert(context.Background()))
}

func TestExtractPCM(t *testing.T) {
	wav := make([]byte, 44+4)
	copy(wav[0:], "RIFF")
	copy(wav[8:], "WAVE")
	copy(wav[12:], "fmt ")
	binary.LittleEndian.PutUint32(wav[16:], 16)
	copy(wav[36:], "data")
	binary.LittleEndian.PutUint32(wav[40:], 4)
	copy(wav[44:], []byte{1, 2, 3, 4})

	pcm, err := extractPCM(wav)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3, 4}, pcm)

	_, err = extractPCM([]byte("short"))
	assert.ErrorIs(t, err, errShortWAV)
}

func TestExtractPCMSkipsPaddedChunks(t *testing.T) {
	// RIFF header, a 3-byte LIST chunk padded to 4, then a 2-byte data chunk.
	wav := make([]byte, 0, 64)
	wav = append(wav, "RIFF\x00\x00\x00\x00WAVE"...)
	wav = append(wav, "LIST"...)
	wav = binary.LittleEndian.AppendUint32(wav, 3)
	wav = append(wav, 'a', 'b', 'c', 0)
	wav = append(wav, "data"...)
	wav = binary.LittleEndian.AppendUint32(wav, 2)
	wav = append(wav, 7, 8)
	for len(wav) < wavHeaderSize {
		wav = append(wav, 0)
	}

	pcm, err := extractPCM(wav)
	require.NoError(t, err)
	assert.Equal(t, []byte{7, 8}, pcm)

	notWAV := make([]byte, wavHeaderSize)
	copy(notWAV, "OggS")
	_, err = extractPCM(notWAV)
	assert.ErrorIs(t, err, errNotWAV)
}

func TestAzureEmptyVoiceKeepsDefault(t *testing.T) {
	c := NewAzureClient("k", "westeurope", testLog(), WithVoice(""))
	assert.Equal(t, DefaultVoice, c.Voice())
}
