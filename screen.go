package vtcore

// SavedCursor is the DECSC/DECRC save slot: position, current style, and
// active charset.
type SavedCursor struct {
	X, Y    int
	Attr    Attribute
	Charset CharsetIndex
}

// Screen is one of the Terminal's two buffers (normal or alternate): a
// circular ring of lines backing both the active viewport and, for the
// normal buffer, scrollback, plus cursor and scroll-region state.
//
// The viewport row at viewport-y y always lives at lines[yBase+y]; yDisp
// never exceeds yBase; the active area always exists (len(lines) >= rows).
type Screen struct {
	cols, rows int
	lines      *CircularBuffer[Line]

	cursorX, cursorY int
	yBase, yDisp     int
	scrollTop        int
	scrollBottom     int

	savedCursor    SavedCursor
	hasSavedCursor bool
}

// NewScreen returns a screen of cols x rows, backed by a ring of
// rows+scrollback blank lines.
func NewScreen(cols, rows, scrollback int) *Screen {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if scrollback < 0 {
		scrollback = 0
	}
	s := &Screen{
		cols:         cols,
		rows:         rows,
		lines:        NewCircularBuffer[Line](rows + scrollback),
		scrollTop:    0,
		scrollBottom: rows - 1,
	}
	for i := 0; i < rows; i++ {
		s.lines.Push(NewLine(cols, DefaultAttribute()))
	}
	return s
}

// Cols returns the column count.
func (s *Screen) Cols() int { return s.cols }

// Rows returns the row count.
func (s *Screen) Rows() int { return s.rows }

// CursorX returns the cursor column; it may transiently equal Cols() to
// mark pending wrap.
func (s *Screen) CursorX() int { return s.cursorX }

// CursorY returns the viewport-relative cursor row.
func (s *Screen) CursorY() int { return s.cursorY }

// YBase returns the absolute row where the active area's top currently
// sits.
func (s *Screen) YBase() int { return s.yBase }

// YDisp returns the absolute row the user is viewing.
func (s *Screen) YDisp() int { return s.yDisp }

// ScrollTop returns the viewport-relative top of the scroll region.
func (s *Screen) ScrollTop() int { return s.scrollTop }

// ScrollBottom returns the viewport-relative bottom of the scroll region.
func (s *Screen) ScrollBottom() int { return s.scrollBottom }

// AbsoluteY converts a viewport-relative row to an absolute lines index.
func (s *Screen) AbsoluteY(yViewport int) int { return s.yBase + yViewport }

// GetLine returns the line at an absolute index, or nil if out of range.
func (s *Screen) GetLine(absoluteY int) *Line {
	if absoluteY < 0 || absoluteY >= s.lines.Len() {
		return nil
	}
	return s.lines.GetPtr(absoluteY)
}

// CurrentLine returns the cursor's current line (viewport-relative row
// CursorY, in the active area).
func (s *Screen) CurrentLine() *Line {
	return s.GetLine(s.AbsoluteY(s.cursorY))
}

// GetBlankLine returns a fresh line of Cols() space cells styled with
// attr.
func (s *Screen) GetBlankLine(attr Attribute, wrapped bool) Line {
	l := NewLine(s.cols, attr)
	l.SetWrapped(wrapped)
	return l
}

// SetCursor sets the cursor position, clamped to the active area.
func (s *Screen) SetCursor(x, y int) {
	s.cursorX = clampInt(x, 0, s.cols-1)
	s.cursorY = clampInt(y, 0, s.rows-1)
}

// MoveCursor sets the cursor position without clamping, so callers can
// represent the "pending wrap" state (x == cols).
func (s *Screen) MoveCursor(x, y int) {
	s.cursorX = x
	s.cursorY = y
}

// ScrollUp scrolls the active region up by n lines (content moves up,
// revealing new blank lines at the bottom), applied n times. wrapped
// marks whether the newly revealed line continues the one above (used by
// autowrap). fillAttr styles any newly created blank line.
func (s *Screen) ScrollUp(n int, wrapped bool, fillAttr Attribute) {
	for i := 0; i < n; i++ {
		s.scrollUpOnce(wrapped, fillAttr)
	}
}

func (s *Screen) scrollUpOnce(wrapped bool, fillAttr Attribute) {
	if s.scrollTop == 0 {
		wasAtBottom := s.yDisp == s.yBase
		recycled := s.lines.Push(s.GetBlankLine(fillAttr, wrapped))
		if !recycled {
			s.yBase++
		}
		if wasAtBottom {
			s.yDisp = s.yBase
		}
		return
	}
	s.lines.Splice(s.yBase+s.scrollTop, 1)
	s.lines.Splice(s.yBase+s.scrollBottom, 0, s.GetBlankLine(fillAttr, wrapped))
}

// ScrollDown scrolls the active region down by n lines (content moves
// down; a blank line appears at scrollTop), applied n times, using the
// absolute form of the region math regardless of whether scrollTop is 0.
func (s *Screen) ScrollDown(n int, fillAttr Attribute) {
	for i := 0; i < n; i++ {
		s.lines.Splice(s.yBase+s.scrollBottom, 1)
		s.lines.Splice(s.yBase+s.scrollTop, 0, s.GetBlankLine(fillAttr, false))
	}
}

// ScrollDisp moves only the viewport (yDisp) by delta, clamped to
// [0, yBase].
func (s *Screen) ScrollDisp(delta int) {
	s.yDisp = clampInt(s.yDisp+delta, 0, s.yBase)
}

// ScrollToTop moves the viewport to the oldest available line.
func (s *Screen) ScrollToTop() { s.yDisp = 0 }

// ScrollToBottom moves the viewport back to the active area.
func (s *Screen) ScrollToBottom() { s.yDisp = s.yBase }

// ScrollLines moves the viewport by n lines relative to its current
// position (n<0 scrolls back, n>0 scrolls forward).
func (s *Screen) ScrollLines(n int) { s.ScrollDisp(n) }

// SetScrollRegion sets the scroll region, clamped to [0, rows-1] with
// bottom >= top.
func (s *Screen) SetScrollRegion(top, bottom int) {
	top = clampInt(top, 0, s.rows-1)
	bottom = clampInt(bottom, top, s.rows-1)
	s.scrollTop = top
	s.scrollBottom = bottom
}

// ResetScrollRegion restores the scroll region to the full viewport.
func (s *Screen) ResetScrollRegion() {
	s.scrollTop = 0
	s.scrollBottom = s.rows - 1
}

// SaveCursor records the cursor position, style, and charset for a later
// RestoreCursor.
func (s *Screen) SaveCursor(attr Attribute, charset CharsetIndex) {
	s.savedCursor = SavedCursor{X: s.cursorX, Y: s.cursorY, Attr: attr, Charset: charset}
	s.hasSavedCursor = true
}

// RestoreCursor restores a previously saved cursor, returning the saved
// attribute/charset. If nothing was saved, the cursor moves to (0,0) and
// the given defaults are returned unchanged.
func (s *Screen) RestoreCursor(defaultAttr Attribute, defaultCharset CharsetIndex) (Attribute, CharsetIndex) {
	if !s.hasSavedCursor {
		s.SetCursor(0, 0)
		return defaultAttr, defaultCharset
	}
	s.SetCursor(s.savedCursor.X, s.savedCursor.Y)
	return s.savedCursor.Attr, s.savedCursor.Charset
}

// Resize changes the screen's dimensions in place, preserving scrollback
// capacity, resizing every line to the new width (content is truncated or
// padded, not rewrapped), and clamping cursor/viewport state.
func (s *Screen) Resize(newCols, newRows int) {
	if newCols < 1 {
		newCols = 1
	}
	if newRows < 1 {
		newRows = 1
	}
	oldRows := s.rows
	oldMax := s.lines.MaxLength()
	scrollbackCap := oldMax - oldRows

	newMax := newRows + scrollbackCap
	s.lines.Resize(newMax)

	fill := SpaceCell(DefaultAttribute())
	for i := 0; i < s.lines.Len(); i++ {
		l := s.lines.GetPtr(i)
		l.Resize(newCols, fill)
	}
	for s.lines.Len() < newRows {
		s.lines.Push(NewLine(newCols, DefaultAttribute()))
	}

	if s.scrollBottom == oldRows-1 {
		s.scrollBottom = newRows - 1
	} else {
		s.scrollBottom = clampInt(s.scrollBottom, 0, newRows-1)
	}
	s.scrollTop = clampInt(s.scrollTop, 0, s.scrollBottom)

	s.cols = newCols
	s.rows = newRows

	maxYBase := s.lines.Len() - newRows
	if maxYBase < 0 {
		maxYBase = 0
	}
	s.yBase = clampInt(s.yBase, 0, maxYBase)
	s.yDisp = clampInt(s.yDisp, 0, s.yBase)
	s.SetCursor(s.cursorX, s.cursorY)
}

// InsertLines inserts n blank lines at viewport row y, shifting the lines
// between y and scrollBottom down; lines scrolled past scrollBottom are
// dropped. The caller must confirm y lies within the scroll region.
func (s *Screen) InsertLines(y, n int, fillAttr Attribute) {
	for i := 0; i < n; i++ {
		s.lines.Splice(s.AbsoluteY(s.scrollBottom), 1)
		s.lines.Splice(s.AbsoluteY(y), 0, s.GetBlankLine(fillAttr, false))
	}
}

// DeleteLines deletes n lines at viewport row y, shifting the lines below
// up; blanks are appended at scrollBottom. The caller must confirm y lies
// within the scroll region.
func (s *Screen) DeleteLines(y, n int, fillAttr Attribute) {
	for i := 0; i < n; i++ {
		s.lines.Splice(s.AbsoluteY(y), 1)
		s.lines.Splice(s.AbsoluteY(s.scrollBottom), 0, s.GetBlankLine(fillAttr, false))
	}
}

// EraseScrollback drops every absolute line above the active area (CSI 3J),
// resetting yBase and yDisp to 0.
func (s *Screen) EraseScrollback() {
	if s.yBase <= 0 {
		return
	}
	s.lines.TrimStart(s.yBase)
	s.yBase = 0
	s.yDisp = 0
}

// ClearVisible resets every line in the active area to space cells with
// attr and moves the cursor to (0,0). It does not touch scrollback.
func (s *Screen) ClearVisible(attr Attribute) {
	for y := 0; y < s.rows; y++ {
		l := s.GetLine(s.AbsoluteY(y))
		l.FillAll(SpaceCell(attr))
		l.SetWrapped(false)
		l.SetLineAttr(LineAttrNormal)
	}
	s.SetCursor(0, 0)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
