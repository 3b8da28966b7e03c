// Package view implements the virtualized addressing window that maps scroll
// position to the byte ranges needed to render the visible lines.
package view

import (
	"context"
	"fmt"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/source"
)

// Default line geometry.
const (
	DefaultBytesPerLine     = 16
	DefaultLineHeightPx     = 24
	DefaultVisibleLineCount = 50
)

// Geometry is the fixed line layout of a window. The rendering window stays
// bounded by VisibleLineCount regardless of file size.
type Geometry struct {
	BytesPerLine     int
	LineHeightPx     int
	VisibleLineCount int
}

// DefaultGeometry returns the standard 16-bytes-per-line layout.
func DefaultGeometry() Geometry {
	return Geometry{
		BytesPerLine:     DefaultBytesPerLine,
		LineHeightPx:     DefaultLineHeightPx,
		VisibleLineCount: DefaultVisibleLineCount,
	}
}

// VisibleRange describes the slice of lines a scroll position exposes.
type VisibleRange struct {
	FirstLineIndex int64
	ByteOffset     int64
	LineCount      int
}

// LineRecord is one renderable line: its starting offset and its bytes.
// The final line of a file may be short.
type LineRecord struct {
	Offset int64
	Bytes  []byte
}

// Window converts scroll position and line geometry into the minimal byte
// range that must be resident to render the current view. It reads through
// a ByteSource chosen once at open time.
type Window struct {
	src       source.ByteSource
	geom      Geometry
	scrollTop int64 // pixels
	selection *Selection
}

// NewWindow creates a window over the given source. Zero geometry fields
// fall back to the defaults.
func NewWindow(src source.ByteSource, geom Geometry) *Window {
	if geom.BytesPerLine <= 0 {
		geom.BytesPerLine = DefaultBytesPerLine
	}
	if geom.LineHeightPx <= 0 {
		geom.LineHeightPx = DefaultLineHeightPx
	}
	if geom.VisibleLineCount <= 0 {
		geom.VisibleLineCount = DefaultVisibleLineCount
	}
	return &Window{
		src:       src,
		geom:      geom,
		selection: NewSelection(),
	}
}

// Geometry returns the window's fixed line layout.
func (w *Window) Geometry() Geometry {
	return w.geom
}

// Selection returns the window's selection machine.
func (w *Window) Selection() *Selection {
	return w.selection
}

// Size returns the total file size in bytes.
func (w *Window) Size() int64 {
	return w.src.Size()
}

// TotalLines returns ceil(size / bytesPerLine).
func (w *Window) TotalLines() int64 {
	bpl := int64(w.geom.BytesPerLine)
	return (w.src.Size() + bpl - 1) / bpl
}

// TotalHeight returns the virtual document height in pixels.
func (w *Window) TotalHeight() int64 {
	return w.TotalLines() * int64(w.geom.LineHeightPx)
}

// ViewportHeight returns the rendered window height in pixels.
func (w *Window) ViewportHeight() int64 {
	return int64(w.geom.VisibleLineCount) * int64(w.geom.LineHeightPx)
}

// ScrollTop returns the current scroll position in pixels.
func (w *Window) ScrollTop() int64 {
	return w.scrollTop
}

// SetScrollTop moves the scroll position, clamped to the document bounds.
func (w *Window) SetScrollTop(px int64) {
	maxScroll := w.TotalHeight() - w.ViewportHeight()
	if maxScroll < 0 {
		maxScroll = 0
	}
	if px > maxScroll {
		px = maxScroll
	}
	if px < 0 {
		px = 0
	}
	w.scrollTop = px
}

// ScrollLines scrolls by n lines; negative scrolls up.
func (w *Window) ScrollLines(n int) {
	w.SetScrollTop(w.scrollTop + int64(n)*int64(w.geom.LineHeightPx))
}

// PageDown scrolls down by one page.
func (w *Window) PageDown() {
	w.ScrollLines(w.geom.VisibleLineCount - 1)
}

// PageUp scrolls up by one page.
func (w *Window) PageUp() {
	w.ScrollLines(-(w.geom.VisibleLineCount - 1))
}

// GotoTop scrolls to the beginning.
func (w *Window) GotoTop() {
	w.SetScrollTop(0)
}

// GotoBottom scrolls to the end.
func (w *Window) GotoBottom() {
	w.SetScrollTop(w.TotalHeight())
}

// ComputeVisibleRange maps the current scroll position to the contiguous
// line slice that must be rendered, clipped to file bounds.
func (w *Window) ComputeVisibleRange() VisibleRange {
	firstLine := w.scrollTop / int64(w.geom.LineHeightPx)
	totalLines := w.TotalLines()
	if firstLine > totalLines {
		firstLine = totalLines
	}

	count := int64(w.geom.VisibleLineCount)
	if remaining := totalLines - firstLine; remaining < count {
		count = remaining
	}
	if count < 0 {
		count = 0
	}

	return VisibleRange{
		FirstLineIndex: firstLine,
		ByteOffset:     firstLine * int64(w.geom.BytesPerLine),
		LineCount:      int(count),
	}
}

// VisibleLines materializes the currently visible lines with one read
// against the source.
func (w *Window) VisibleLines(ctx context.Context) ([]LineRecord, error) {
	return w.LinesFor(ctx, w.ComputeVisibleRange())
}

// LinesFor materializes the lines of a previously computed range. It touches
// only the source and the fixed geometry, never the scroll position, so a
// range snapshotted on the update loop can be loaded from another goroutine.
func (w *Window) LinesFor(ctx context.Context, vr VisibleRange) ([]LineRecord, error) {
	if vr.LineCount == 0 {
		return nil, nil
	}

	bpl := int64(w.geom.BytesPerLine)
	data, err := w.src.GetBytes(ctx, vr.ByteOffset, int64(vr.LineCount)*bpl)
	if err != nil {
		return nil, fmt.Errorf("failed to load visible range at %d: %w", vr.ByteOffset, err)
	}

	lines := make([]LineRecord, 0, vr.LineCount)
	for i := int64(0); i < int64(vr.LineCount); i++ {
		lo := i * bpl
		if lo >= int64(len(data)) {
			break
		}
		hi := lo + bpl
		if hi > int64(len(data)) {
			hi = int64(len(data))
		}
		lines = append(lines, LineRecord{
			Offset: vr.ByteOffset + lo,
			Bytes:  data[lo:hi],
		})
	}
	return lines, nil
}

// JumpToAddress parses an address, centers the view on its line, and selects
// the byte there. Unparseable input returns ErrInvalidAddress; a parsed
// address outside the file is a silent no-op.
func (w *Window) JumpToAddress(input string) error {
	addr, err := ParseAddress(input)
	if err != nil {
		return err
	}
	if addr < 0 || addr >= w.src.Size() {
		return nil
	}

	lineIndex := addr / int64(w.geom.BytesPerLine)
	top := lineIndex*int64(w.geom.LineHeightPx) - w.ViewportHeight()/2
	if top < 0 {
		top = 0
	}
	w.SetScrollTop(top)
	w.selection.SelectByte(addr)
	return nil
}

// PercentScrolled reports how far through the document the window is.
func (w *Window) PercentScrolled() float64 {
	maxScroll := w.TotalHeight() - w.ViewportHeight()
	if maxScroll <= 0 {
		return 100
	}
	return float64(w.scrollTop) / float64(maxScroll) * 100
}
