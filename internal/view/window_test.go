package view_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/source"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/view"
)

func testGeometry() view.Geometry {
	return view.Geometry{BytesPerLine: 16, LineHeightPx: 24, VisibleLineCount: 50}
}

func patternSource(size int) *source.InMemorySource {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i)
	}
	return source.NewInMemorySource(data)
}

func TestComputeVisibleRange(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(16*1000), testGeometry())

	tests := []struct {
		name      string
		scrollTop int64
		firstLine int64
		offset    int64
		count     int
	}{
		{name: "top", scrollTop: 0, firstLine: 0, offset: 0, count: 50},
		{name: "one line down", scrollTop: 24, firstLine: 1, offset: 16, count: 50},
		{name: "mid-line pixels floor", scrollTop: 30, firstLine: 1, offset: 16, count: 50},
		{name: "deep", scrollTop: 24 * 500, firstLine: 500, offset: 8000, count: 50},
		{name: "clamped to bottom", scrollTop: 24 * 1000, firstLine: 950, offset: 15200, count: 50},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w.SetScrollTop(tc.scrollTop)
			vr := w.ComputeVisibleRange()
			assert.Equal(t, tc.firstLine, vr.FirstLineIndex)
			assert.Equal(t, tc.offset, vr.ByteOffset)
			assert.Equal(t, tc.count, vr.LineCount)
		})
	}
}

func TestVirtualizationBound(t *testing.T) {
	t.Parallel()

	// A million lines; the rendered window never exceeds visibleLineCount.
	w := view.NewWindow(patternSource(16*1_000_000), testGeometry())

	for _, top := range []int64{0, 24, 24 * 999_999, 24 * 123_456, 1 << 40} {
		w.SetScrollTop(top)
		vr := w.ComputeVisibleRange()
		assert.LessOrEqual(t, vr.LineCount, 50, "scrollTop %d", top)
	}

	// Scrolling by exactly one line's pixels shifts the window by one line.
	w.SetScrollTop(2400)
	before := w.ComputeVisibleRange()
	w.SetScrollTop(2400 + 24)
	after := w.ComputeVisibleRange()
	assert.Equal(t, before.FirstLineIndex+1, after.FirstLineIndex)
	assert.Equal(t, before.ByteOffset+16, after.ByteOffset)
}

func TestVisibleLines(t *testing.T) {
	t.Parallel()

	// 100 bytes: 7 lines, the last one 4 bytes short of full.
	w := view.NewWindow(patternSource(100), testGeometry())

	lines, err := w.VisibleLines(context.Background())
	require.NoError(t, err)
	require.Len(t, lines, 7)

	assert.Equal(t, int64(0), lines[0].Offset)
	assert.Equal(t, int64(16), lines[1].Offset)
	assert.Len(t, lines[0].Bytes, 16)
	assert.Len(t, lines[6].Bytes, 4)
	assert.Equal(t, byte(0x10), lines[1].Bytes[0])
	assert.Equal(t, byte(0x63), lines[6].Bytes[3])
}

func TestLinesForIgnoresLaterScroll(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(16*1000), testGeometry())
	vr := w.ComputeVisibleRange()

	// A range computed before a scroll still loads its own lines.
	w.GotoBottom()

	lines, err := w.LinesFor(context.Background(), vr)
	require.NoError(t, err)
	require.Len(t, lines, vr.LineCount)
	assert.Equal(t, int64(0), lines[0].Offset)
}

func TestVisibleLinesEmptyFile(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(0), testGeometry())
	lines, err := w.VisibleLines(context.Background())
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestScrollClamping(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(16*100), testGeometry())

	w.SetScrollTop(-500)
	assert.Equal(t, int64(0), w.ScrollTop())

	// 100 lines, 50 visible: max scroll is 50 lines' worth of pixels.
	w.SetScrollTop(1 << 30)
	assert.Equal(t, int64(50*24), w.ScrollTop())

	// Files smaller than the viewport never scroll.
	small := view.NewWindow(patternSource(16*10), testGeometry())
	small.SetScrollTop(100)
	assert.Equal(t, int64(0), small.ScrollTop())
}

func TestScrollLinesAndPaging(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(16*1000), testGeometry())

	w.ScrollLines(3)
	assert.Equal(t, int64(3*24), w.ScrollTop())
	w.ScrollLines(-1)
	assert.Equal(t, int64(2*24), w.ScrollTop())

	w.GotoTop()
	w.PageDown()
	assert.Equal(t, int64(49*24), w.ScrollTop())
	w.PageUp()
	assert.Equal(t, int64(0), w.ScrollTop())

	w.GotoBottom()
	assert.Equal(t, int64(950*24), w.ScrollTop())
}

func TestJumpToAddress(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(0x10000), testGeometry())

	// "6699" parses as hex 0x6699; its line is 0x669 (offset/16), and the
	// view centers on it with the byte selected.
	require.NoError(t, w.JumpToAddress("6699"))

	wantLine := int64(0x6699) / 16
	wantTop := wantLine*24 - (50*24)/2
	assert.Equal(t, wantTop, w.ScrollTop())

	start, end, ok := w.Selection().Range()
	require.True(t, ok)
	assert.Equal(t, int64(0x6699), start)
	assert.Equal(t, int64(0x6699), end)
	assert.Equal(t, view.Selected, w.Selection().State())
}

func TestJumpToAddressNearTopClampsToZero(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(0x10000), testGeometry())
	require.NoError(t, w.JumpToAddress("0x10"))
	assert.Equal(t, int64(0), w.ScrollTop())
}

func TestJumpToAddressOutOfRangeIsNoOp(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(0x1000), testGeometry())
	w.SetScrollTop(240)

	// Parsed fine, but past EOF: nothing changes and no error surfaces.
	require.NoError(t, w.JumpToAddress("0xFFFFFF"))
	assert.Equal(t, int64(240), w.ScrollTop())
	assert.Equal(t, view.Idle, w.Selection().State())

	require.NoError(t, w.JumpToAddress("-5"))
	assert.Equal(t, int64(240), w.ScrollTop())
}

func TestJumpToAddressInvalidInput(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(0x1000), testGeometry())
	err := w.JumpToAddress("not an address")
	assert.ErrorIs(t, err, view.ErrInvalidAddress)
	assert.Equal(t, int64(0), w.ScrollTop())
}

func TestPercentScrolled(t *testing.T) {
	t.Parallel()

	w := view.NewWindow(patternSource(16*100), testGeometry())
	assert.Equal(t, 0.0, w.PercentScrolled())
	w.GotoBottom()
	assert.Equal(t, 100.0, w.PercentScrolled())

	small := view.NewWindow(patternSource(16), testGeometry())
	assert.Equal(t, 100.0, small.PercentScrolled())
}
