// Package highlight answers which externally supplied annotation ranges
// cover a given byte, and how to style them.
package highlight

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

// Alpha applied when blending a range color into the base background.
const blendAlpha = 0.35

// Range is a labeled, colored byte interval supplied wholesale by the tag
// or search configuration. [Start, End) in byte offsets. Read-only here.
type Range struct {
	Start int64
	End   int64
	Color string // hex, e.g. "#ff8800"
	Label string
	Kind  string
}

// Compositor overlays a stable, caller-ordered range set on the view.
// It owns nothing; the set is never mutated here.
type Compositor struct {
	ranges []Range
	baseBg colorful.Color
}

// NewCompositor creates a compositor over the given ranges, blending range
// colors into baseBg (hex). The caller's ordering of ranges is significant:
// where ranges overlap, the first in the list wins.
func NewCompositor(ranges []Range, baseBg string) *Compositor {
	base, err := colorful.Hex(baseBg)
	if err != nil {
		base = colorful.Color{} // black
	}
	return &Compositor{ranges: ranges, baseBg: base}
}

// Covering returns every range with Start <= offset < End, in list order.
func (c *Compositor) Covering(offset int64) []Range {
	var out []Range
	for _, r := range c.ranges {
		if r.Start <= offset && offset < r.End {
			out = append(out, r)
		}
	}
	return out
}

// StyleFor returns the style for a byte covered by the given ranges. The
// first range determines the color: its hue alpha-blended into the base
// background, with an underline as the outline. Later overlapping ranges are
// not blended in. ok is false when no range applies.
func (c *Compositor) StyleFor(ranges []Range) (style lipgloss.Style, ok bool) {
	if len(ranges) == 0 {
		return lipgloss.NewStyle(), false
	}

	tint, err := colorful.Hex(ranges[0].Color)
	if err != nil {
		tint = colorful.Color{R: 1, G: 1, B: 1}
	}
	bg := c.baseBg.BlendRgb(tint, blendAlpha)

	return lipgloss.NewStyle().
		Background(lipgloss.Color(bg.Hex())).
		Underline(true), true
}

// StyleAt is Covering followed by StyleFor.
func (c *Compositor) StyleAt(offset int64) (lipgloss.Style, bool) {
	return c.StyleFor(c.Covering(offset))
}

// Ranges returns the underlying range set in caller order.
func (c *Compositor) Ranges() []Range {
	return c.ranges
}
