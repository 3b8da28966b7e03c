package ui

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/config"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/export"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/render"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/source"
	"github.com/Waxmaker/binary-annotator-pro-sub001/internal/view"
	"github.com/Waxmaker/binary-annotator-pro-sub001/pkg/binval"
)

// Mode represents the current UI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeGoto
)

// Width of the offset column plus its two-space gap, for mouse mapping.
const offsetColWidth = 10

// linesMsg carries a freshly materialized visible window. inspect holds the
// bytes at the selection start for the inspector panel.
type linesMsg struct {
	lines   []view.LineRecord
	inspect []byte
	err     error
}

// exportedMsg reports the outcome of a selection export.
type exportedMsg struct {
	path string
	err  error
}

// Model is the main application model: one file viewed through a window.
type Model struct {
	window    *view.Window
	src       source.ByteSource
	paged     *source.PagedSource // nil when the file is fully in memory
	renderer  *render.HexRenderer
	exporter  *export.Exporter
	cfg       *config.Config
	gotoInput textinput.Model

	mode   Mode
	width  int
	height int

	lines     []view.LineRecord
	inspect   []byte
	bigEndian bool

	filename  string
	statusMsg string
	err       error
}

// Options configures a new model.
type Options struct {
	Filename string
	Source   source.ByteSource
	Paged    *source.PagedSource // same as Source when paged, else nil
	Renderer *render.HexRenderer
	Config   *config.Config
}

// NewModel creates the application model.
func NewModel(opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Address (hex, or 0x…)"
	ti.CharLimit = 32

	window := view.NewWindow(opts.Source, view.Geometry{
		BytesPerLine:     opts.Config.Viewer.BytesPerLine,
		LineHeightPx:     opts.Config.Viewer.LineHeightPx,
		VisibleLineCount: opts.Config.Viewer.VisibleLineCount,
	})

	return &Model{
		window:    window,
		src:       opts.Source,
		paged:     opts.Paged,
		renderer:  opts.Renderer,
		exporter:  export.NewExporter(),
		cfg:       opts.Config,
		gotoInput: ti,
		mode:      ModeNormal,
		bigEndian: true,
		filename:  opts.Filename,
	}
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return m.loadVisible()
}

// loadVisible materializes the visible lines off the update loop, since a
// cache miss blocks on the store fetch. The visible range and selection are
// snapshotted here, on the update loop; the command goroutine only reads
// through the source.
func (m *Model) loadVisible() tea.Cmd {
	window := m.window
	src := m.src
	vr := m.window.ComputeVisibleRange()
	selStart, _, selected := m.window.Selection().Range()
	return func() tea.Msg {
		ctx := context.Background()
		lines, err := window.LinesFor(ctx, vr)
		if err != nil {
			return linesMsg{err: err}
		}

		var inspect []byte
		if selected {
			inspect, _ = src.GetBytes(ctx, selStart, 8)
		}
		return linesMsg{lines: lines, inspect: inspect}
	}
}

// afterScroll reloads the view and warms the cache around the new position.
func (m *Model) afterScroll() tea.Cmd {
	if m.paged != nil {
		vr := m.window.ComputeVisibleRange()
		m.paged.Preload(context.Background(), vr.ByteOffset, m.cfg.Cache.PreloadRadius)
	}
	return m.loadVisible()
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case linesMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.lines = msg.lines
		m.inspect = msg.inspect
		return m, nil

	case exportedMsg:
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("export failed: %v", msg.err)
		} else {
			m.statusMsg = "exported to " + msg.path
		}
		return m, nil
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == ModeGoto {
		return m.handleGotoKey(msg)
	}

	m.statusMsg = ""

	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		m.window.ScrollLines(1)
		return m, m.afterScroll()
	case "k", "up":
		m.window.ScrollLines(-1)
		return m, m.afterScroll()

	case "f", "pgdown", " ", "ctrl+d":
		m.window.PageDown()
		return m, m.afterScroll()
	case "b", "pgup", "ctrl+u":
		m.window.PageUp()
		return m, m.afterScroll()

	case "g", "home":
		m.window.GotoTop()
		return m, m.afterScroll()
	case "G", "end":
		m.window.GotoBottom()
		return m, m.afterScroll()

	case ":":
		m.mode = ModeGoto
		m.gotoInput.SetValue("")
		m.gotoInput.Focus()
		return m, textinput.Blink

	case "x":
		m.bigEndian = !m.bigEndian
		return m, nil

	case "w":
		return m, m.exportSelection()

	case "esc":
		m.window.Selection().Clear()
		return m, m.loadVisible()
	}

	return m, nil
}

func (m *Model) handleGotoKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		input := m.gotoInput.Value()
		m.mode = ModeNormal
		m.gotoInput.Blur()

		if err := m.window.JumpToAddress(input); err != nil {
			if errors.Is(err, view.ErrInvalidAddress) {
				m.statusMsg = fmt.Sprintf("invalid address: %q", input)
				return m, nil
			}
			m.err = err
			return m, nil
		}
		return m, m.afterScroll()

	case "esc":
		m.mode = ModeNormal
		m.gotoInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.gotoInput, cmd = m.gotoInput.Update(msg)
	return m, cmd
}

func (m *Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	offset, ok := m.offsetAt(msg.X, msg.Y)
	if !ok {
		return m, nil
	}

	sel := m.window.Selection()
	switch {
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		sel.Click(offset)
	case msg.Action == tea.MouseActionMotion:
		sel.Drag(offset)
	case msg.Action == tea.MouseActionRelease:
		sel.Release(offset)
	default:
		return m, nil
	}
	return m, m.loadVisible()
}

// offsetAt maps a terminal cell to the byte offset it displays.
func (m *Model) offsetAt(x, y int) (int64, bool) {
	if y < 0 || y >= len(m.lines) {
		return 0, false
	}
	line := m.lines[y]
	if len(line.Bytes) == 0 {
		return 0, false
	}

	col := x - offsetColWidth
	if col < 0 {
		col = 0
	}

	// Hex cells are 3 wide with an extra space after each group of 8.
	idx := col / 3
	if col >= 8*3+1 {
		idx = (col - 1) / 3
	}

	// Rendered hex block width: two digits per byte, a gap between cells,
	// and one extra gap per group boundary. 48 columns at 16 bytes per line.
	bpl := m.cfg.Viewer.BytesPerLine
	hexWidth := bpl*3 - 1 + (bpl-1)/8
	if col >= hexWidth+2 {
		// Click landed in the ASCII gutter.
		idx = col - hexWidth - 2
	}

	if idx < 0 {
		idx = 0
	}
	if idx >= len(line.Bytes) {
		idx = len(line.Bytes) - 1
	}
	return line.Offset + int64(idx), true
}

func (m *Model) exportSelection() tea.Cmd {
	start, end, ok := m.window.Selection().Range()
	if !ok {
		m.statusMsg = "nothing selected"
		return nil
	}

	exporter := m.exporter
	src := m.src
	name := m.filename
	return func() tea.Msg {
		path, err := exporter.ExportRange(context.Background(), src, name, start, end)
		return exportedMsg{path: path, err: err}
	}
}

// View implements tea.Model
func (m *Model) View() string {
	var builder strings.Builder

	maxRows := m.height - 3
	if maxRows < 1 {
		maxRows = 1
	}

	rows := 0
	for _, line := range m.lines {
		if rows >= maxRows {
			break
		}
		builder.WriteString(m.renderer.Render(line, m.window.Selection()))
		builder.WriteString("\n")
		rows++
	}
	for ; rows < maxRows; rows++ {
		builder.WriteString("~\n")
	}

	builder.WriteString(m.inspectorLine())
	builder.WriteString("\n")
	builder.WriteString(m.statusLine())
	builder.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Theme.Offset))
	help := "j/k:scroll  f/b:page  g/G:top/bottom  ::goto  w:export  x:endian  esc:clear  q:quit"
	builder.WriteString(helpStyle.Render(help))

	return builder.String()
}

func (m *Model) inspectorLine() string {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color(m.cfg.Theme.ASCII))

	start, end, ok := m.window.Selection().Range()
	if !ok || len(m.inspect) == 0 {
		return style.Render(" no selection")
	}

	var order binary.ByteOrder = binary.BigEndian
	endian := "BE"
	if !m.bigEndian {
		order = binary.LittleEndian
		endian = "LE"
	}

	iv := binval.Interpret(m.inspect, order)
	parts := []string{fmt.Sprintf(" sel 0x%x-0x%x (%d bytes) %s", start, end, end-start+1, endian)}
	if iv.OkU8 {
		parts = append(parts, fmt.Sprintf("u8:%d", iv.U8))
	}
	if iv.OkU16 {
		parts = append(parts, fmt.Sprintf("u16:%d", iv.U16))
	}
	if iv.OkU32 {
		parts = append(parts, fmt.Sprintf("u32:%d", iv.U32))
	}
	if iv.OkU64 {
		parts = append(parts, fmt.Sprintf("u64:%d", iv.U64))
	}
	if iv.OkF32 {
		parts = append(parts, fmt.Sprintf("f32:%g", iv.F32))
	}
	if iv.OkF64 {
		parts = append(parts, fmt.Sprintf("f64:%g", iv.F64))
	}
	parts = append(parts, "ascii:"+binval.ASCIIPreview(m.inspect))

	return style.Render(strings.Join(parts, "  "))
}

func (m *Model) statusLine() string {
	statusStyle := lipgloss.NewStyle().
		Background(lipgloss.Color(m.cfg.Theme.StatusBar)).
		Foreground(lipgloss.Color(m.cfg.Theme.StatusText)).
		Width(m.width)

	if m.mode == ModeGoto {
		return statusStyle.Render(":" + m.gotoInput.View())
	}

	if m.err != nil {
		return statusStyle.Render(fmt.Sprintf(" error: %v (scroll to retry)", m.err))
	}

	vr := m.window.ComputeVisibleRange()
	status := fmt.Sprintf(" %s  0x%08x  %.0f%%", m.filename, vr.ByteOffset, m.window.PercentScrolled())
	if m.paged != nil {
		status += "  [paged]"
	}
	if m.statusMsg != "" {
		status += "  " + m.statusMsg
	}
	return statusStyle.Render(status)
}

// Close releases the model's source. Paged files drop their cached chunks.
func (m *Model) Close() error {
	if m.paged != nil {
		m.paged.Close()
	}
	return nil
}
