package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/config"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/highlight"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/view"
	"github.com/Waxmaker/binary-annotator-pro-sub001/pkg/binval"
)

// HexRenderer turns line records into styled hex dump rows: an offset
// column, grouped hex bytes, and an ASCII gutter. Selection takes precedence
// over annotation highlights for a byte's styling.
type HexRenderer struct {
	compositor   *highlight.Compositor
	bytesPerLine int

	offsetStyle    lipgloss.Style
	hexEvenStyle   lipgloss.Style
	hexOddStyle    lipgloss.Style
	asciiStyle     lipgloss.Style
	selectionStyle lipgloss.Style
}

// NewHexRenderer creates a renderer with the theme's styles.
func NewHexRenderer(cfg *config.Config, compositor *highlight.Compositor) *HexRenderer {
	theme := cfg.Theme
	return &HexRenderer{
		compositor:     compositor,
		bytesPerLine:   cfg.Viewer.BytesPerLine,
		offsetStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Offset)),
		hexEvenStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color(theme.HexEven)),
		hexOddStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color(theme.HexOdd)),
		asciiStyle:     lipgloss.NewStyle().Foreground(lipgloss.Color(theme.ASCII)),
		selectionStyle: lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Selection)).Reverse(true),
	}
}

// Render produces one styled hex dump row for a line record.
func (r *HexRenderer) Render(line view.LineRecord, sel *view.Selection) string {
	var b strings.Builder

	b.WriteString(r.offsetStyle.Render(fmt.Sprintf("%08x", line.Offset)))
	b.WriteString("  ")

	for i := 0; i < r.bytesPerLine; i++ {
		if i > 0 {
			b.WriteString(" ")
			if i%8 == 0 {
				b.WriteString(" ")
			}
		}
		if i >= len(line.Bytes) {
			b.WriteString("  ")
			continue
		}

		offset := line.Offset + int64(i)
		cell := fmt.Sprintf("%02x", line.Bytes[i])
		b.WriteString(r.styleByte(offset, i, sel).Render(cell))
	}

	b.WriteString("  ")
	b.WriteString(r.renderASCII(line, sel))

	return b.String()
}

// styleByte picks the style for one byte cell: selection wins over
// annotation highlights, which win over the alternating hex shades.
func (r *HexRenderer) styleByte(offset int64, col int, sel *view.Selection) lipgloss.Style {
	if sel != nil && sel.Contains(offset) {
		return r.selectionStyle
	}
	if r.compositor != nil {
		if style, ok := r.compositor.StyleAt(offset); ok {
			return style
		}
	}
	if col%2 == 1 {
		return r.hexOddStyle
	}
	return r.hexEvenStyle
}

func (r *HexRenderer) renderASCII(line view.LineRecord, sel *view.Selection) string {
	var b strings.Builder
	for i, c := range line.Bytes {
		offset := line.Offset + int64(i)
		ch := "."
		if binval.IsPrintable(c) {
			ch = string(c)
		}
		switch {
		case sel != nil && sel.Contains(offset):
			b.WriteString(r.selectionStyle.Render(ch))
		default:
			if r.compositor != nil {
				if style, ok := r.compositor.StyleAt(offset); ok {
					b.WriteString(style.Render(ch))
					continue
				}
			}
			b.WriteString(r.asciiStyle.Render(ch))
		}
	}
	return b.String()
}
