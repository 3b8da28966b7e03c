// Package paging implements a bounded per-file chunk cache between the
// viewer and a byte-range-capable backing store.
package paging

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/logging"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/store"
)

// Defaults, overridable through Options.
const (
	DefaultChunkSize       = 1 << 20 // 1 MiB
	DefaultMaxCachedChunks = 20
)

// ErrFileNotRegistered is returned when GetBytes or Preload is called for a
// file that was never passed to InitFile.
var ErrFileNotRegistered = errors.New("file not registered with cache")

// Options configures a Cache.
type Options struct {
	ChunkSize       int64
	MaxCachedChunks int
	Logger          *log.Logger
}

type chunkKey struct {
	start int64
	end   int64
}

// chunk is a fixed-size, offset-aligned byte range fetched from the store.
// Only the final chunk of a file may be shorter than the chunk size.
type chunk struct {
	start        int64
	end          int64 // exclusive
	bytes        []byte
	lastAccessed int64
}

type fileEntry struct {
	size   int64
	chunks map[chunkKey]*chunk
}

// Cache is a bounded chunk cache over a Store. Each registered file has its
// own chunk map, capped at MaxCachedChunks entries with LRU eviction run
// after every insertion. A Cache is constructed per viewer session and
// injected into the sources that read through it.
type Cache struct {
	mu        sync.Mutex
	store     store.Store
	chunkSize int64
	maxChunks int
	logger    *log.Logger

	files map[string]*fileEntry
	clock int64 // monotonic access counter for LRU ordering
}

// New creates a cache backed by the given store.
func New(backing store.Store, opts Options) *Cache {
	if opts.ChunkSize <= 0 {
		opts.ChunkSize = DefaultChunkSize
	}
	if opts.MaxCachedChunks <= 0 {
		opts.MaxCachedChunks = DefaultMaxCachedChunks
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}

	return &Cache{
		store:     backing,
		chunkSize: opts.ChunkSize,
		maxChunks: opts.MaxCachedChunks,
		logger:    opts.Logger,
		files:     make(map[string]*fileEntry),
	}
}

// InitFile registers a file with its total size. Registration is idempotent;
// a second call for the same file is a no-op. Must precede any GetBytes or
// Preload call for that file.
func (c *Cache) InitFile(fileID string, totalSize int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.files[fileID]; ok {
		return
	}
	c.files[fileID] = &fileEntry{
		size:   totalSize,
		chunks: make(map[chunkKey]*chunk),
	}
}

// ClearFile drops all cached chunks and the file's registration.
func (c *Cache) ClearFile(fileID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.files, fileID)
}

// FileSize returns the registered total size of a file.
func (c *Cache) FileSize(fileID string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.files[fileID]
	if !ok {
		return 0, ErrFileNotRegistered
	}
	return entry.size, nil
}

// ChunkCount returns how many chunks are currently cached for a file.
func (c *Cache) ChunkCount(fileID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.files[fileID]
	if !ok {
		return 0
	}
	return len(entry.chunks)
}

// GetBytes returns the bytes of fileID in [offset, offset+length), truncated
// to the file's size. Ranges already covered by cached chunks are served
// without touching the store; missing chunks are fetched, inserted, and the
// eviction bound re-established. A store failure leaves the cache unchanged
// and is returned to the caller.
func (c *Cache) GetBytes(ctx context.Context, fileID string, offset, length int64) ([]byte, error) {
	if offset < 0 || length < 0 {
		return nil, fmt.Errorf("invalid range [%d, %d+%d)", offset, offset, length)
	}

	c.mu.Lock()
	entry, ok := c.files[fileID]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrFileNotRegistered, fileID)
	}
	size := entry.size
	c.mu.Unlock()

	end := offset + length
	if end > size {
		end = size
	}
	if offset >= end {
		return nil, nil
	}

	out := make([]byte, 0, end-offset)
	for pos := offset; pos < end; {
		ck, err := c.ensureChunk(ctx, fileID, c.alignDown(pos))
		if err != nil {
			return nil, err
		}
		take := ck.end
		if take > end {
			take = end
		}
		out = append(out, ck.bytes[pos-ck.start:take-ck.start]...)
		pos = take
	}
	return out, nil
}

// Preload warms up every chunk intersecting [centerOffset-radius,
// centerOffset+radius] that is not already cached. It returns immediately;
// fetch failures are logged and never surfaced.
func (c *Cache) Preload(ctx context.Context, fileID string, centerOffset, radius int64) {
	go c.preload(ctx, fileID, centerOffset, radius)
}

func (c *Cache) preload(ctx context.Context, fileID string, centerOffset, radius int64) {
	c.mu.Lock()
	entry, ok := c.files[fileID]
	if !ok {
		c.mu.Unlock()
		return
	}
	size := entry.size
	c.mu.Unlock()

	lo := c.alignDown(max64(centerOffset-radius, 0))
	hi := min64(centerOffset+radius, size-1)

	for start := lo; start <= hi; start += c.chunkSize {
		if _, err := c.ensureChunk(ctx, fileID, start); err != nil {
			c.logger.Warn("preload fetch failed",
				logging.FieldFile, fileID,
				logging.FieldChunk, start,
				logging.FieldError, err)
			return
		}
	}
}

// ensureChunk returns the cached chunk starting at chunkStart, fetching and
// inserting it on a miss. The lock is not held across the store call, so two
// concurrent misses for the same chunk may both fetch; the later insert
// overwrites the earlier with equivalent bytes.
func (c *Cache) ensureChunk(ctx context.Context, fileID string, chunkStart int64) (*chunk, error) {
	c.mu.Lock()
	entry, ok := c.files[fileID]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrFileNotRegistered, fileID)
	}

	chunkEnd := chunkStart + c.chunkSize
	if chunkEnd > entry.size {
		chunkEnd = entry.size
	}
	key := chunkKey{start: chunkStart, end: chunkEnd}

	if ck, ok := entry.chunks[key]; ok {
		c.clock++
		ck.lastAccessed = c.clock
		c.mu.Unlock()
		return ck, nil
	}
	c.mu.Unlock()

	data, err := c.store.ReadRange(ctx, fileID, chunkStart, chunkEnd-chunkStart)
	if err != nil {
		return nil, fmt.Errorf("fetch of chunk [%d, %d) failed: %w", chunkStart, chunkEnd, err)
	}
	if int64(len(data)) != chunkEnd-chunkStart {
		return nil, fmt.Errorf("store returned %d bytes for chunk [%d, %d)", len(data), chunkStart, chunkEnd)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// The file may have been cleared while the fetch was in flight; the
	// stale bytes are simply dropped.
	entry, ok = c.files[fileID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrFileNotRegistered, fileID)
	}

	c.clock++
	ck := &chunk{
		start:        chunkStart,
		end:          chunkEnd,
		bytes:        data,
		lastAccessed: c.clock,
	}
	entry.chunks[key] = ck
	c.evictLocked(fileID, entry)
	return ck, nil
}

// evictLocked removes least-recently-accessed chunks until the bound holds.
// Caller holds c.mu.
func (c *Cache) evictLocked(fileID string, entry *fileEntry) {
	for len(entry.chunks) > c.maxChunks {
		var oldestKey chunkKey
		var oldest *chunk
		for key, ck := range entry.chunks {
			if oldest == nil || ck.lastAccessed < oldest.lastAccessed {
				oldestKey = key
				oldest = ck
			}
		}
		delete(entry.chunks, oldestKey)
		c.logger.Debug("evicted chunk",
			logging.FieldFile, fileID,
			logging.FieldChunk, oldestKey.start,
			logging.FieldChunks, len(entry.chunks))
	}
}

func (c *Cache) alignDown(offset int64) int64 {
	return (offset / c.chunkSize) * c.chunkSize
}

func max64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
