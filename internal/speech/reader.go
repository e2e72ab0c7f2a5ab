package speech

import (
	"context"
	"regexp"
	"strings"
	"sync"
	"unicode"

	"golang.org/x/sync/errgroup"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

var _ domain.Speaker = (*Reader)(nil)

// DefaultChunkSize is the approximate character budget per TTS request.
const DefaultChunkSize = 200

// ReaderOption configures a Reader.
type ReaderOption func(*Reader)

// WithChunkSize sets the approximate max character count per TTS chunk.
// Longer text is split at sentence boundaries and synthesized in parallel.
func WithChunkSize(n int) ReaderOption {
	return func(r *Reader) {
		r.chunkSize = n
	}
}

// WithCache attaches an audio cache.
func WithCache(c *AudioCache) ReaderOption {
	return func(r *Reader) {
		r.cache = c
	}
}

// Reader speaks text in the background. Starting a new read interrupts
// the one in progress.
type Reader struct {
	tts       Synthesizer
	out       Output
	cache     *AudioCache
	log       *logger.Logger
	chunkSize int

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewReader creates a reader over a synthesizer and an output.
func NewReader(tts Synthesizer, out Output, log *logger.Logger, opts ...ReaderOption) *Reader {
	r := &Reader{
		tts:       tts,
		out:       out,
		log:       log,
		chunkSize: DefaultChunkSize,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Speak interrupts any current read and starts reading text. It returns
// once playback has been scheduled.
func (r *Reader) Speak(ctx context.Context, text string) error {
	text = cleanForSpeech(text)
	r.Stop()
	if text == "" {
		return nil
	}

	runCtx, cancel := context.WithCancel(ctx)
	r.mu.Lock()
	r.cancel = cancel
	r.mu.Unlock()

	chunks := splitChunks(text, r.chunkSize)
	r.log.Debug("reader: speaking %d chars in %d chunks", len(text), len(chunks))

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		defer cancel()
		r.run(runCtx, chunks)
	}()
	return nil
}

// Stop interrupts the current read, if any.
func (r *Reader) Stop() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.mu.Unlock()

	if cancel != nil {
		cancel()
		r.out.Stop()
	}
}

// Wait blocks until every started read has returned.
func (r *Reader) Wait() { r.wg.Wait() }

func (r *Reader) run(ctx context.Context, chunks []string) {
	audio := make([][]byte, len(chunks))
	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range chunks {
		g.Go(func() error {
			data, err := r.synthesize(gctx, chunk)
			if err != nil {
				r.log.Error("reader: chunk %d synthesis failed: %v", i, err)
				return nil
			}
			audio[i] = data
			return nil
		})
	}
	_ = g.Wait()

	for i, data := range audio {
		if ctx.Err() != nil {
			r.log.Debug("reader: interrupted before chunk %d", i)
			return
		}
		if data == nil {
			continue
		}
		if err := r.out.Play(ctx, data); err != nil {
			r.log.Error("reader: chunk %d playback failed: %v", i, err)
		}
	}
}

func (r *Reader) synthesize(ctx context.Context, text string) ([]byte, error) {
	if r.cache != nil {
		if audio, ok := r.cache.Get(text); ok {
			return audio, nil
		}
	}
	audio, err := r.tts.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	if r.cache != nil {
		r.cache.Put(text, audio)
	}
	return audio, nil
}

// splitChunks breaks text into sentence-boundary chunks of approximately
// size characters.
func splitChunks(text string, size int) []string {
	if size <= 0 || len(text) <= size {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder
	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}
	for _, s := range splitSentences(text) {
		if current.Len() > 0 && current.Len()+len(s) > size {
			flush()
		}
		current.WriteString(s)
	}
	flush()
	return chunks
}

// splitSentences splits text at . ! ? or newlines, keeping the
// punctuation with the preceding sentence.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		current.WriteRune(runes[i])
		if isSentenceEnd(runes[i]) {
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
				current.WriteRune(runes[i])
			}
			sentences = append(sentences, current.String())
			current.Reset()
		}
	}
	if current.Len() > 0 {
		sentences = append(sentences, current.String())
	}
	return sentences
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '\n'
}

var (
	ansiCodes  = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	decoration = regexp.MustCompile(`[★☆♥•]`)
)

// cleanForSpeech strips terminal styling and glyphs that shouldn't be spoken.
func cleanForSpeech(msg string) string {
	cleaned := ansiCodes.ReplaceAllString(msg, "")
	cleaned = decoration.ReplaceAllString(cleaned, "")
	return strings.TrimSpace(cleaned)
}
