// Package animcache provides an LRU-like cache of composited animation
// frames, so re-displaying a frame already decoded (seeking backwards, or
// looping) doesn't require re-running the compositor.
package animcache

import "sync"

// FrameKey identifies one composited frame of one stream.
type FrameKey struct {
	StreamID string
	Index    int
}

// Cache caches composited RGBA frame buffers, keyed by stream and frame
// index. Entries are tagged with the canvas dimensions they were
// composited at; a Get against different dimensions misses, since the
// bytes no longer describe the current canvas.
type Cache struct {
	mu      sync.Mutex
	cache   map[FrameKey]*cacheEntry
	order   []FrameKey
	maxSize int
}

type cacheEntry struct {
	pix  []byte
	w, h int
}

// New creates a frame cache with the given maximum number of entries.
func New(maxEntries int) *Cache {
	if maxEntries <= 0 {
		maxEntries = 64
	}
	return &Cache{
		cache:   make(map[FrameKey]*cacheEntry, maxEntries),
		order:   make([]FrameKey, 0, maxEntries),
		maxSize: maxEntries,
	}
}

// Get returns a previously cached frame's pixels, or nil if there is no
// entry, or the cached entry was composited at different dimensions than
// (w, h). The returned slice must not be mutated by the caller.
func (c *Cache) Get(streamID string, index, w, h int) []byte {
	key := FrameKey{StreamID: streamID, Index: index}
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.cache[key]
	if !ok || e.w != w || e.h != h {
		return nil
	}
	return e.pix
}

// Put stores a copy of pix against (streamID, index, w, h), evicting the
// oldest entry if the cache is full.
func (c *Cache) Put(streamID string, index, w, h int, pix []byte) {
	key := FrameKey{StreamID: streamID, Index: index}
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.cache[key]; ok {
		return // already cached
	}
	for len(c.cache) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.cache, oldest)
	}

	stored := make([]byte, len(pix))
	copy(stored, pix)
	c.cache[key] = &cacheEntry{pix: stored, w: w, h: h}
	c.order = append(c.order, key)
}

// InvalidateStream drops every cached frame belonging to streamID. The
// façade calls this whenever a stream's canvas dimensions grow, since every
// previously cached composite was produced against the smaller canvas.
func (c *Cache) InvalidateStream(streamID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.order[:0]
	for _, key := range c.order {
		if key.StreamID == streamID {
			delete(c.cache, key)
			continue
		}
		kept = append(kept, key)
	}
	c.order = kept
}
