package render_test

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/config"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/highlight"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/render"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/view"
)

var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

func newRenderer(ranges []highlight.Range) *render.HexRenderer {
	cfg := config.DefaultConfig()
	comp := highlight.NewCompositor(ranges, cfg.Theme.Background)
	return render.NewHexRenderer(cfg, comp)
}

func TestRenderFullLine(t *testing.T) {
	t.Parallel()

	r := newRenderer(nil)
	line := view.LineRecord{
		Offset: 0x1230,
		Bytes:  []byte("Hello, world!!!\x00"),
	}

	out := plain(r.Render(line, view.NewSelection()))

	assert.Contains(t, out, "00001230")
	assert.Contains(t, out, "48") // 'H'
	assert.Contains(t, out, "00") // trailing NUL
	assert.Contains(t, out, "Hello, world!!!.")
}

func TestRenderShortLineKeepsColumns(t *testing.T) {
	t.Parallel()

	r := newRenderer(nil)
	full := plain(r.Render(view.LineRecord{Offset: 0, Bytes: make([]byte, 16)}, view.NewSelection()))
	short := plain(r.Render(view.LineRecord{Offset: 0, Bytes: []byte{0xaa, 0xbb}}, view.NewSelection()))

	// Short lines pad the hex area so the ASCII gutter starts at the same
	// column as a full line's.
	require.NotEmpty(t, full)
	fullHexEnd := len(full) - 16
	shortHexEnd := len(short) - 2
	assert.Equal(t, fullHexEnd, shortHexEnd)
	assert.Contains(t, short, "aa bb")
}

func TestRenderWithSelectionAndHighlight(t *testing.T) {
	t.Parallel()

	ranges := []highlight.Range{{Start: 4, End: 8, Color: "#ff8800", Label: "field"}}
	r := newRenderer(ranges)

	sel := view.NewSelection()
	sel.Click(0)
	sel.Release(1)

	line := view.LineRecord{Offset: 0, Bytes: []byte("ABCDEFGHIJKLMNOP")}
	out := plain(r.Render(line, sel))

	// Styling never changes the text content.
	assert.Contains(t, out, "41 42 43 44")
	assert.Contains(t, out, "ABCDEFGHIJKLMNOP")
}
