package speech

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/hammamikhairi/recipebox/internal/logger"
)

// DefaultCacheEntries bounds the in-memory layer.
const DefaultCacheEntries = 64

// AudioCache is a two-tier cache (bounded in-memory LRU + filesystem) for
// synthesized audio. The key is sha256(voice + ":" + text), so a voice
// change misses until the voice is switched back. Safe for concurrent use.
type AudioCache struct {
	entries  *lru.Cache[string, []byte]
	log      *logger.Logger
	voice    string
	cacheDir string // empty disables the disk layer
	hits     atomic.Int64
	misses   atomic.Int64
}

// NewAudioCache creates an audio cache holding up to size entries in
// memory. An empty cacheDir keeps everything in memory.
func NewAudioCache(voice, cacheDir string, size int, log *logger.Logger) *AudioCache {
	if size <= 0 {
		size = DefaultCacheEntries
	}
	entries, _ := lru.New[string, []byte](size)
	c := &AudioCache{
		entries:  entries,
		log:      log,
		voice:    voice,
		cacheDir: cacheDir,
	}

	if cacheDir != "" {
		if err := os.MkdirAll(cacheDir, 0o755); err != nil {
			log.Error("cache: failed to create cache dir %s: %v", cacheDir, err)
			c.cacheDir = ""
		}
	}
	return c
}

// Get returns cached audio for text, checking memory then disk.
func (c *AudioCache) Get(text string) ([]byte, bool) {
	key := c.hashKey(text)

	if data, ok := c.entries.Get(key); ok {
		c.hits.Add(1)
		c.log.Debug("cache hit (mem): %s (%d bytes)", truncateForLog(text, 40), len(data))
		return data, true
	}

	if c.cacheDir != "" {
		if data, err := os.ReadFile(c.diskPath(key)); err == nil {
			c.entries.Add(key, data)
			c.hits.Add(1)
			c.log.Debug("cache hit (disk): %s (%d bytes)", truncateForLog(text, 40), len(data))
			return data, true
		}
	}

	c.misses.Add(1)
	return nil, false
}

// Put stores audio for text in memory and, when enabled, on disk.
func (c *AudioCache) Put(text string, audio []byte) {
	key := c.hashKey(text)
	c.entries.Add(key, audio)
	c.log.Debug("cache store (mem): %s (%d bytes, %d entries)", truncateForLog(text, 40), len(audio), c.entries.Len())

	if c.cacheDir == "" {
		return
	}
	path := c.diskPath(key)
	if err := os.WriteFile(path, audio, 0o644); err != nil {
		c.log.Error("cache: disk write failed for %s: %v", path, err)
	}
}

// Len returns the number of in-memory entries.
func (c *AudioCache) Len() int { return c.entries.Len() }

// Stats returns hit and miss counts.
func (c *AudioCache) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

func (c *AudioCache) hashKey(text string) string {
	h := sha256.Sum256([]byte(c.voice + ":" + text))
	return hex.EncodeToString(h[:])
}

func (c *AudioCache) diskPath(key string) string {
	return filepath.Join(c.cacheDir, key+".wav")
}

func truncateForLog(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
