package store

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/exp/mmap"
)

// LocalStore serves byte ranges from memory-mapped local files.
// The fileID is the file path; mappings are opened lazily and kept
// for the life of the store.
type LocalStore struct {
	mu    sync.Mutex
	files map[string]*mappedFile
}

type mappedFile struct {
	reader *mmap.ReaderAt
	size   int64
}

// NewLocalStore creates an empty local store.
func NewLocalStore() *LocalStore {
	return &LocalStore{
		files: make(map[string]*mappedFile),
	}
}

func (s *LocalStore) open(path string) (*mappedFile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.files[path]; ok {
		return f, nil
	}

	reader, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to map %s: %w", path, err)
	}

	info, err := os.Stat(path)
	if err != nil {
		reader.Close()
		return nil, err
	}

	f := &mappedFile{reader: reader, size: info.Size()}
	s.files[path] = f
	return f, nil
}

// ReadRange reads [offset, offset+length) from the file, truncated at EOF.
func (s *LocalStore) ReadRange(ctx context.Context, fileID string, offset, length int64) ([]byte, error) {
	f, err := s.open(fileID)
	if err != nil {
		return nil, err
	}

	end := offset + length
	if end > f.size {
		end = f.size
	}
	if offset >= end {
		return nil, nil
	}

	buf := make([]byte, end-offset)
	if _, err := f.reader.ReadAt(buf, offset); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read %s at %d: %w", fileID, offset, err)
	}
	return buf, nil
}

// SizeOf returns the file size.
func (s *LocalStore) SizeOf(ctx context.Context, fileID string) (int64, error) {
	f, err := s.open(fileID)
	if err != nil {
		return 0, err
	}
	return f.size, nil
}

// Close closes all mappings.
func (s *LocalStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var firstErr error
	for path, f := range s.files {
		if err := f.reader.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(s.files, path)
	}
	return firstErr
}
