package audio

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a bounded, within-run cache of stored clips, keyed by what
// produced them. Values keep the clip metadata but not the audio bytes;
// the backing file holds those. Eviction deletes the file. Repeated reads
// of the same text skip the synthesis call entirely.
type Cache struct {
	clips *lru.Cache[string, *Clip]
}

// NewCache creates a Cache holding up to size clips. size <= 0 disables
// caching; all operations become no-ops.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		return &Cache{}, nil
	}

	clips, err := lru.NewWithEvict[string, *Clip](size, func(_ string, clip *Clip) {
		os.Remove(clip.Path)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create clip cache: %w", err)
	}

	return &Cache{clips: clips}, nil
}

// CacheKey derives the cache key for a synthesis request. Provider, voice,
// model and speed are all part of the key: the same text at a different
// speed is a different clip.
func CacheKey(provider, text, voice, model string, speed float64) string {
	h := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%s|%.3f|%s", provider, voice, model, speed, text)))
	return hex.EncodeToString(h[:])
}

// Get returns the cached clip for key, if present and still on disk.
func (c *Cache) Get(key string) (*Clip, bool) {
	if c.clips == nil {
		return nil, false
	}
	clip, ok := c.clips.Get(key)
	if !ok {
		return nil, false
	}
	if _, err := os.Stat(clip.Path); err != nil {
		c.clips.Remove(key)
		return nil, false
	}
	return clip, true
}

// Add records a stored clip under key, dropping the in-memory audio bytes.
// The cache owns the backing file from here on and deletes it on eviction
// or purge.
func (c *Cache) Add(key string, clip *Clip) {
	if c.clips == nil || clip.Path == "" {
		return
	}
	c.clips.Add(key, &Clip{
		Format:       clip.Format,
		SpeedApplied: clip.SpeedApplied,
		Path:         clip.Path,
	})
}

// Enabled reports whether the cache actually holds clips.
func (c *Cache) Enabled() bool {
	return c.clips != nil
}

// Len returns the number of cached clips.
func (c *Cache) Len() int {
	if c.clips == nil {
		return 0
	}
	return c.clips.Len()
}

// Purge evicts everything, deleting all cached files. Called on shutdown.
func (c *Cache) Purge() {
	if c.clips == nil {
		return
	}
	c.clips.Purge()
}
