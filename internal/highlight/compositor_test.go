package highlight_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/highlight"
)

func testRanges() []highlight.Range {
	return []highlight.Range{
		{Start: 0, End: 16, Color: "#ff0000", Label: "header", Kind: "struct"},
		{Start: 8, End: 32, Color: "#00ff00", Label: "payload", Kind: "data"},
		{Start: 100, End: 101, Color: "#0000ff", Label: "flag", Kind: "field"},
	}
}

func TestCovering(t *testing.T) {
	t.Parallel()

	c := highlight.NewCompositor(testRanges(), "#1a1a1a")

	tests := []struct {
		name   string
		offset int64
		labels []string
	}{
		{name: "only first", offset: 0, labels: []string{"header"}},
		{name: "overlap keeps list order", offset: 10, labels: []string{"header", "payload"}},
		{name: "start is inclusive", offset: 8, labels: []string{"header", "payload"}},
		{name: "end is exclusive", offset: 16, labels: []string{"payload"}},
		{name: "single byte range", offset: 100, labels: []string{"flag"}},
		{name: "past single byte range", offset: 101, labels: nil},
		{name: "uncovered", offset: 50, labels: nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := c.Covering(tc.offset)
			require.Len(t, got, len(tc.labels))
			for i, label := range tc.labels {
				assert.Equal(t, label, got[i].Label)
			}
		})
	}
}

func TestStyleForEmpty(t *testing.T) {
	t.Parallel()

	c := highlight.NewCompositor(testRanges(), "#1a1a1a")
	_, ok := c.StyleFor(nil)
	assert.False(t, ok)
}

func TestStyleForFirstRangeWins(t *testing.T) {
	t.Parallel()

	c := highlight.NewCompositor(testRanges(), "#1a1a1a")

	// At offset 10 both header and payload apply; the style must come from
	// header alone, so it matches the style of a header-only byte.
	overlapped, ok := c.StyleAt(10)
	require.True(t, ok)
	headerOnly, ok := c.StyleAt(0)
	require.True(t, ok)
	payloadOnly, ok := c.StyleAt(20)
	require.True(t, ok)

	assert.Equal(t, headerOnly.GetBackground(), overlapped.GetBackground())
	assert.NotEqual(t, payloadOnly.GetBackground(), overlapped.GetBackground())
}

func TestStyleAtUncovered(t *testing.T) {
	t.Parallel()

	c := highlight.NewCompositor(testRanges(), "#1a1a1a")
	_, ok := c.StyleAt(50)
	assert.False(t, ok)
}

func TestRangesAreReadOnlyOrder(t *testing.T) {
	t.Parallel()

	ranges := testRanges()
	c := highlight.NewCompositor(ranges, "#1a1a1a")

	got := c.Ranges()
	require.Len(t, got, 3)
	assert.Equal(t, "header", got[0].Label)
	assert.Equal(t, "payload", got[1].Label)
	assert.Equal(t, "flag", got[2].Label)
}

func TestEmptyCompositor(t *testing.T) {
	t.Parallel()

	c := highlight.NewCompositor(nil, "#1a1a1a")
	assert.Empty(t, c.Covering(0))
	_, ok := c.StyleAt(0)
	assert.False(t, ok)
}
