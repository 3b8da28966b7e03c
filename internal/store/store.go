package store

import "context"

// Store is the byte-range-capable backing store a viewer session reads from.
// Implementations must support partial reads without transferring the whole
// file: a request for [offset, offset+length) returns exactly length bytes,
// or fewer when the range runs past end of file (truncation, not an error).
type Store interface {
	// ReadRange returns the bytes of fileID in [offset, offset+length),
	// truncated at end of file.
	ReadRange(ctx context.Context, fileID string, offset, length int64) ([]byte, error)

	// SizeOf returns the total size of fileID in bytes.
	SizeOf(ctx context.Context, fileID string) (int64, error)
}
