package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/source"
)

// Exporter writes selected byte ranges out to files in a cache directory.
type Exporter struct {
	outDir string
}

// NewExporter creates an exporter writing to the system temp directory.
func NewExporter() *Exporter {
	return &Exporter{
		outDir: os.TempDir(),
	}
}

// ExportRange copies [start, end] (inclusive, matching the selection range)
// from the source into a new file and returns its path. It reads through the
// ByteSource contract, so it behaves identically for in-memory and paged
// files; large ranges are copied in bounded pieces rather than one read.
func (e *Exporter) ExportRange(ctx context.Context, src source.ByteSource, name string, start, end int64) (string, error) {
	if start < 0 || end < start {
		return "", fmt.Errorf("invalid range: %d-%d", start, end)
	}

	outPath := filepath.Join(e.outDir, fmt.Sprintf("bap-export-%d-%d-%s", start, end, filepath.Base(name)))
	outFile, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create export file: %w", err)
	}
	defer outFile.Close()

	const pieceSize = 256 * 1024
	for pos := start; pos <= end; pos += pieceSize {
		length := int64(pieceSize)
		if pos+length > end+1 {
			length = end + 1 - pos
		}

		data, err := src.GetBytes(ctx, pos, length)
		if err != nil {
			os.Remove(outPath)
			return "", fmt.Errorf("failed to read range at %d: %w", pos, err)
		}
		if len(data) == 0 {
			break
		}
		if _, err := outFile.Write(data); err != nil {
			os.Remove(outPath)
			return "", fmt.Errorf("failed to write export file: %w", err)
		}
	}

	return outPath, nil
}
