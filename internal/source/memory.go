package source

import "context"

// InMemorySource serves bytes from a fully resident buffer.
// Used for files below the in-memory threshold.
type InMemorySource struct {
	data []byte
}

// NewInMemorySource wraps an already loaded buffer.
func NewInMemorySource(data []byte) *InMemorySource {
	return &InMemorySource{data: data}
}

// Size returns the buffer length.
func (s *InMemorySource) Size() int64 {
	return int64(len(s.data))
}

// GetBytes returns a copy of [offset, offset+length), clamped to the buffer.
func (s *InMemorySource) GetBytes(ctx context.Context, offset, length int64) ([]byte, error) {
	if offset < 0 || length <= 0 || offset >= int64(len(s.data)) {
		return nil, nil
	}
	end := offset + length
	if end > int64(len(s.data)) {
		end = int64(len(s.data))
	}
	out := make([]byte, end-offset)
	copy(out, s.data[offset:end])
	return out, nil
}
