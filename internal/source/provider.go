package source

import "context"

// ByteSource is the core abstraction for reading file bytes.
// The view window only interacts with this interface.
//
// There are two concrete variants: InMemorySource for files small enough to
// hold resident, and PagedSource for files read through the paging cache.
// The variant is chosen explicitly when the view is opened, never inferred.
type ByteSource interface {
	// Size returns the total file size in bytes.
	Size() int64

	// GetBytes returns the bytes in [offset, offset+length), truncated
	// to the file's size. Out-of-range reads clamp; they never error.
	GetBytes(ctx context.Context, offset, length int64) ([]byte, error)
}
