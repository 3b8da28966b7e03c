package source

import (
	"context"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/paging"
)

// PagedSource serves bytes through an injected paging cache.
// Used for large or remote files.
type PagedSource struct {
	cache  *paging.Cache
	fileID string
	size   int64
}

// NewPagedSource registers the file with the cache and returns a source
// reading through it.
func NewPagedSource(cache *paging.Cache, fileID string, totalSize int64) *PagedSource {
	cache.InitFile(fileID, totalSize)
	return &PagedSource{
		cache:  cache,
		fileID: fileID,
		size:   totalSize,
	}
}

// Size returns the registered file size.
func (s *PagedSource) Size() int64 {
	return s.size
}

// GetBytes reads [offset, offset+length) through the cache.
func (s *PagedSource) GetBytes(ctx context.Context, offset, length int64) ([]byte, error) {
	if offset < 0 || length <= 0 {
		return nil, nil
	}
	return s.cache.GetBytes(ctx, s.fileID, offset, length)
}

// Preload warms up chunks around centerOffset without blocking.
func (s *PagedSource) Preload(ctx context.Context, centerOffset, radius int64) {
	s.cache.Preload(ctx, s.fileID, centerOffset, radius)
}

// Close drops the file's cached chunks and registration.
func (s *PagedSource) Close() {
	s.cache.ClearFile(s.fileID)
}
