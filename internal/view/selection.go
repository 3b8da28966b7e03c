package view

// SelectionState names the states of the click-drag selection machine.
type SelectionState int

const (
	// Idle: no selection and no drag in progress.
	Idle SelectionState = iota
	// Selecting: anchor placed, extent follows the pointer.
	Selecting
	// Selected: a committed range.
	Selected
)

// Selection tracks an anchor/extent byte range chosen by click-drag.
// It lives in the same byte-offset coordinate space as the view window but
// is independent of paging. The machine cycles for the life of the view.
type Selection struct {
	state  SelectionState
	anchor int64
	extent int64
}

// NewSelection returns a selection in the Idle state.
func NewSelection() *Selection {
	return &Selection{state: Idle}
}

// State returns the current machine state.
func (s *Selection) State() SelectionState {
	return s.state
}

// Click places the anchor and begins selecting. A second click while
// selecting commits the range, so click-drag-release and click-click both
// produce a selection. A click on a committed range starts a fresh one.
func (s *Selection) Click(offset int64) {
	if s.state == Selecting {
		s.Release(offset)
		return
	}
	s.state = Selecting
	s.anchor = offset
	s.extent = offset
}

// Drag extends the live preview range while selecting; a no-op otherwise.
func (s *Selection) Drag(offset int64) {
	if s.state != Selecting {
		return
	}
	s.extent = offset
}

// Release commits the range at the given offset.
func (s *Selection) Release(offset int64) {
	if s.state != Selecting {
		return
	}
	s.extent = offset
	s.state = Selected
}

// SelectByte commits a point selection, as used by goto-address.
func (s *Selection) SelectByte(offset int64) {
	s.state = Selected
	s.anchor = offset
	s.extent = offset
}

// Clear returns to Idle with no selection.
func (s *Selection) Clear() {
	s.state = Idle
	s.anchor = 0
	s.extent = 0
}

// Range returns the normalized [start, end] byte range. While selecting it is
// the live preview; once committed it is the final range. ok is false in Idle.
func (s *Selection) Range() (start, end int64, ok bool) {
	if s.state == Idle {
		return 0, 0, false
	}
	if s.anchor <= s.extent {
		return s.anchor, s.extent, true
	}
	return s.extent, s.anchor, true
}

// Contains reports whether offset falls inside the current range.
func (s *Selection) Contains(offset int64) bool {
	start, end, ok := s.Range()
	return ok && offset >= start && offset <= end
}
