package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/highlight"
)

// TagsFile is the on-disk shape of an annotation tags file. Tags supply the
// highlight ranges overlaid on the view; the viewer reads them wholesale and
// never writes them back.
type TagsFile struct {
	Tags []Tag `toml:"tags"`
}

// Tag is one labeled byte range
type Tag struct {
	Start int64  `toml:"start"`
	End   int64  `toml:"end"`
	Color string `toml:"color"`
	Label string `toml:"label"`
	Kind  string `toml:"kind"`
}

// LoadTags reads an annotation tags file and converts it to highlight
// ranges, preserving file order. Overlap resolution is first-in-file-wins,
// so the order in the file is significant.
func LoadTags(path string) ([]highlight.Range, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tags file: %w", err)
	}

	var tf TagsFile
	if err := toml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse tags file: %w", err)
	}

	ranges := make([]highlight.Range, 0, len(tf.Tags))
	for i, tag := range tf.Tags {
		if tag.End < tag.Start {
			return nil, fmt.Errorf("tag %d (%q): end %d before start %d", i, tag.Label, tag.End, tag.Start)
		}
		ranges = append(ranges, highlight.Range{
			Start: tag.Start,
			End:   tag.End,
			Color: tag.Color,
			Label: tag.Label,
			Kind:  tag.Kind,
		})
	}
	return ranges, nil
}
