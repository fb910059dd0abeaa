package vtcore

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"
)

// Print implements ParserSink: writes a glyph at the cursor, handling
// autowrap, insert mode, and wide-character spacer cells.
func (t *Terminal) Print(r rune) {
	r = translateCharset(t.charsets[t.charsetIndex], r)
	width := runeWidth(r)
	if width == 0 {
		t.appendCombining(r)
		return
	}

	s := t.screen()
	if s.CursorX() >= s.Cols() {
		if !t.wraparound {
			return
		}
		if s.CursorY() == s.ScrollBottom() {
			s.SetCursor(0, s.CursorY())
			s.ScrollUp(1, true, t.attr)
			t.emit(ScrolledEvent{})
		} else {
			s.SetCursor(0, s.CursorY()+1)
			if line := s.CurrentLine(); line != nil {
				line.SetWrapped(true)
			}
		}
	}

	x, y := s.CursorX(), s.CursorY()
	line := s.GetLine(s.AbsoluteY(y))
	if line == nil {
		return
	}
	if t.insertMode {
		shiftLineRight(line, x, width, s.Cols())
	}
	line.Set(x, NewCellFromString(string(r), width, t.attr))
	if width == 2 && x+1 < s.Cols() {
		line.Set(x+1, SpacerCell(t.attr))
	}
	s.MoveCursor(x+width, y)
	t.emit(CursorMovedEvent{X: s.CursorX(), Y: s.CursorY()})
}

func shiftLineRight(line *Line, x, width, cols int) {
	count := cols - width - x
	if count > 0 {
		line.CopyCellsFrom(line, x, x+width, count, true)
	}
}

// appendCombining attaches a zero-width rune to the cell immediately before
// the cursor, rather than occupying a column of its own.
func (t *Terminal) appendCombining(r rune) {
	s := t.screen()
	px := s.CursorX() - 1
	if px < 0 {
		return
	}
	line := s.GetLine(s.AbsoluteY(s.CursorY()))
	if line == nil {
		return
	}
	prev := line.Get(px)
	if prev.IsNull() {
		return
	}
	line.Set(px, NewCellFromString(prev.Content()+string(r), prev.Width(), prev.Attr()))
}

// Execute implements ParserSink for the C0 control codes.
func (t *Terminal) Execute(code byte) {
	s := t.screen()
	switch code {
	case 0x07:
		t.emit(BellRangEvent{})
	case 0x08:
		if s.CursorX() > 0 {
			s.SetCursor(s.CursorX()-1, s.CursorY())
		}
	case 0x09:
		s.SetCursor(t.nextTabStop(s.CursorX(), s.Cols()), s.CursorY())
	case 0x0A, 0x0B, 0x0C:
		t.lineFeed()
		if t.convertEOL {
			s.SetCursor(0, s.CursorY())
		}
		t.emit(LineFedEvent{})
	case 0x0D:
		s.SetCursor(0, s.CursorY())
	case 0x0E:
		t.charsetIndex = CharsetIndexG1
	case 0x0F:
		t.charsetIndex = CharsetIndexG0
	}
}

// lineFeed advances the cursor one row, scrolling the active region if the
// cursor sits at scrollBottom. Shared by LF/VT/FF, IND, and NEL.
func (t *Terminal) lineFeed() {
	s := t.screen()
	if s.CursorY() == s.ScrollBottom() {
		s.ScrollUp(1, false, t.attr)
		t.emit(ScrolledEvent{})
		return
	}
	s.SetCursor(s.CursorX(), s.CursorY()+1)
}

func (t *Terminal) nextTabStop(x, cols int) int {
	next := ((x / t.tabStopWidth) + 1) * t.tabStopWidth
	if next > cols-1 {
		next = cols - 1
	}
	return next
}

func (t *Terminal) prevTabStop(x int) int {
	if x <= 0 {
		return 0
	}
	return ((x - 1) / t.tabStopWidth) * t.tabStopWidth
}

// intParam reads a CSI parameter where a missing or zero value means "use
// the command's default", the usual ECMA-48 convention.
func intParam(p *Params, i, def int) int {
	v := int(p.Get(i, int32(def)))
	if v == 0 {
		return def
	}
	return v
}

func (t *Terminal) cursorYBounds(s *Screen) (lo, hi int) {
	if t.originMode {
		return s.ScrollTop(), s.ScrollBottom()
	}
	return 0, s.Rows() - 1
}

// Csi implements ParserSink: dispatches one CSI sequence by its
// collected-bytes+final identifier.
func (t *Terminal) Csi(identifier string, params *Params) {
	s := t.screen()
	switch identifier {
	case "A":
		n := intParam(params, 0, 1)
		lo, _ := t.cursorYBounds(s)
		s.SetCursor(s.CursorX(), max(s.CursorY()-n, lo))
	case "B":
		n := intParam(params, 0, 1)
		_, hi := t.cursorYBounds(s)
		s.SetCursor(s.CursorX(), min(s.CursorY()+n, hi))
	case "C":
		n := intParam(params, 0, 1)
		s.SetCursor(min(s.CursorX()+n, s.Cols()-1), s.CursorY())
	case "D":
		n := intParam(params, 0, 1)
		s.SetCursor(max(s.CursorX()-n, 0), s.CursorY())
	case "E":
		n := intParam(params, 0, 1)
		s.SetCursor(0, min(s.CursorY()+n, s.Rows()-1))
	case "F":
		n := intParam(params, 0, 1)
		s.SetCursor(0, max(s.CursorY()-n, 0))
	case "G":
		c := intParam(params, 0, 1)
		s.SetCursor(clampInt(c-1, 0, s.Cols()-1), s.CursorY())
	case "H", "f":
		t.cursorPosition(s, params)
	case "I":
		n := intParam(params, 0, 1)
		x := s.CursorX()
		for i := 0; i < n; i++ {
			x = t.nextTabStop(x, s.Cols())
		}
		s.SetCursor(x, s.CursorY())
	case "J":
		t.eraseDisplay(s, intParam(params, 0, 0))
	case "K":
		t.eraseLine(s, intParam(params, 0, 0))
	case "L":
		t.insertLines(s, intParam(params, 0, 1))
	case "M":
		t.deleteLines(s, intParam(params, 0, 1))
	case "P":
		t.deleteChars(s, intParam(params, 0, 1))
	case "S":
		n := intParam(params, 0, 1)
		s.ScrollUp(n, false, t.attr)
		t.emit(ScrolledEvent{})
	case "T":
		n := intParam(params, 0, 1)
		s.ScrollDown(n, t.attr)
		t.emit(ScrolledEvent{})
	case "X":
		t.eraseChars(s, intParam(params, 0, 1))
	case "Z":
		n := intParam(params, 0, 1)
		x := s.CursorX()
		for i := 0; i < n; i++ {
			x = t.prevTabStop(x)
		}
		s.SetCursor(x, s.CursorY())
	case "@":
		t.insertChars(s, intParam(params, 0, 1))
	case "c":
		t.reply([]byte("\x1b[?1;2c"))
	case ">c":
		t.reply([]byte("\x1b[>0;10;0c"))
	case "d":
		r := intParam(params, 0, 1)
		row := r - 1
		lo, hi := t.cursorYBounds(s)
		if t.originMode {
			row += s.ScrollTop()
		}
		s.SetCursor(s.CursorX(), clampInt(row, lo, hi))
	case "m":
		t.sgr(params)
	case "n":
		t.dsr(s, params)
	case "?n":
		t.dsrPrivate(s, params)
	case "r":
		top := intParam(params, 0, 1) - 1
		bottom := intParam(params, 1, s.Rows()) - 1
		s.SetScrollRegion(top, bottom)
	case "s":
		t.saveCursor()
	case "u":
		t.restoreCursor()
	case "h":
		t.setAnsiModes(params, true)
	case "l":
		t.setAnsiModes(params, false)
	case "?h":
		t.decset(params, true)
	case "?l":
		t.decset(params, false)
	case " q":
		t.decscusr(intParam(params, 0, 1))
	case "t":
		t.windowManip(params)
	}
}

func (t *Terminal) cursorPosition(s *Screen, params *Params) {
	row := intParam(params, 0, 1) - 1
	col := intParam(params, 1, 1) - 1
	lo, hi := t.cursorYBounds(s)
	if t.originMode {
		row += s.ScrollTop()
	}
	s.SetCursor(clampInt(col, 0, s.Cols()-1), clampInt(row, lo, hi))
}

func (t *Terminal) eraseLineRange(s *Screen, y, start, end int) {
	line := s.GetLine(s.AbsoluteY(y))
	if line == nil {
		return
	}
	line.Fill(SpaceCell(t.attr), start, end)
}

func (t *Terminal) eraseDisplay(s *Screen, mode int) {
	switch mode {
	case 0:
		t.eraseLineRange(s, s.CursorY(), s.CursorX(), s.Cols())
		for y := s.CursorY() + 1; y < s.Rows(); y++ {
			t.eraseLineRange(s, y, 0, s.Cols())
		}
	case 1:
		for y := 0; y < s.CursorY(); y++ {
			t.eraseLineRange(s, y, 0, s.Cols())
		}
		t.eraseLineRange(s, s.CursorY(), 0, s.CursorX()+1)
	case 2:
		for y := 0; y < s.Rows(); y++ {
			t.eraseLineRange(s, y, 0, s.Cols())
		}
	case 3:
		s.EraseScrollback()
	}
}

func (t *Terminal) eraseLine(s *Screen, mode int) {
	switch mode {
	case 0:
		t.eraseLineRange(s, s.CursorY(), s.CursorX(), s.Cols())
	case 1:
		t.eraseLineRange(s, s.CursorY(), 0, s.CursorX()+1)
	case 2:
		t.eraseLineRange(s, s.CursorY(), 0, s.Cols())
	}
}

func (t *Terminal) insertLines(s *Screen, n int) {
	if s.CursorY() < s.ScrollTop() || s.CursorY() > s.ScrollBottom() {
		return
	}
	s.InsertLines(s.CursorY(), n, t.attr)
}

func (t *Terminal) deleteLines(s *Screen, n int) {
	if s.CursorY() < s.ScrollTop() || s.CursorY() > s.ScrollBottom() {
		return
	}
	s.DeleteLines(s.CursorY(), n, t.attr)
}

// deleteChars shifts cells left from the cursor, filling the vacated right
// edge with the current attribute (BCE).
func (t *Terminal) deleteChars(s *Screen, n int) {
	line := s.CurrentLine()
	if line == nil {
		return
	}
	x, cols := s.CursorX(), s.Cols()
	if n > cols-x {
		n = cols - x
	}
	count := cols - x - n
	if count > 0 {
		line.CopyCellsFrom(line, x+n, x, count, false)
	}
	line.Fill(SpaceCell(t.attr), cols-n, cols)
}

// insertChars shifts cells right from the cursor, filling the vacated cells
// at the cursor with the current attribute (BCE).
func (t *Terminal) insertChars(s *Screen, n int) {
	line := s.CurrentLine()
	if line == nil {
		return
	}
	x, cols := s.CursorX(), s.Cols()
	if n > cols-x {
		n = cols - x
	}
	count := cols - x - n
	if count > 0 {
		line.CopyCellsFrom(line, x, x+n, count, true)
	}
	line.Fill(SpaceCell(t.attr), x, x+n)
}

func (t *Terminal) eraseChars(s *Screen, n int) {
	line := s.CurrentLine()
	if line == nil {
		return
	}
	x := s.CursorX()
	end := min(x+n, s.Cols())
	line.Fill(SpaceCell(t.attr), x, end)
}

// sgr applies a sequence of SGR attribute parameters.
func (t *Terminal) sgr(params *Params) {
	if params.Len() == 0 {
		t.attr = DefaultAttribute()
		return
	}
	for i := 0; i < params.Len(); i++ {
		v := params.Get(i, 0)
		switch {
		case v == 0:
			t.attr = DefaultAttribute()
		case v == 1:
			t.attr = t.attr.WithFlag(AttrBold)
		case v == 2:
			t.attr = t.attr.WithFlag(AttrDim)
		case v == 3:
			t.attr = t.attr.WithFlag(AttrItalic)
		case v == 4:
			t.attr = t.attr.WithFlag(AttrUnderline)
		case v == 5:
			t.attr = t.attr.WithFlag(AttrBlink)
		case v == 7:
			t.attr = t.attr.WithFlag(AttrInverse)
		case v == 8:
			t.attr = t.attr.WithFlag(AttrInvisible)
		case v == 9:
			t.attr = t.attr.WithFlag(AttrStrikethrough)
		case v == 22:
			t.attr = t.attr.WithoutFlag(AttrBold).WithoutFlag(AttrDim)
		case v == 23:
			t.attr = t.attr.WithoutFlag(AttrItalic)
		case v == 24:
			t.attr = t.attr.WithoutFlag(AttrUnderline)
		case v == 27:
			t.attr = t.attr.WithoutFlag(AttrInverse)
		case v == 28:
			t.attr = t.attr.WithoutFlag(AttrInvisible)
		case v == 29:
			t.attr = t.attr.WithoutFlag(AttrStrikethrough)
		case v >= 30 && v <= 37:
			t.attr = t.attr.WithFg(ColorModePalette, uint32(v-30))
		case v >= 40 && v <= 47:
			t.attr = t.attr.WithBg(ColorModePalette, uint32(v-40))
		case v >= 90 && v <= 97:
			t.attr = t.attr.WithFg(ColorModePalette, uint32(v-90+8))
		case v >= 100 && v <= 107:
			t.attr = t.attr.WithBg(ColorModePalette, uint32(v-100+8))
		case v == 39:
			t.attr = t.attr.WithDefaultFg()
		case v == 49:
			t.attr = t.attr.WithDefaultBg()
		case v == 38:
			i += t.sgrExtendedColor(params, i, true)
		case v == 48:
			i += t.sgrExtendedColor(params, i, false)
		}
	}
}

// sgrExtendedColor handles 38/48 (extended fg/bg colour), either as
// colon-delimited sub-parameters (38:5:N, 38:2:R:G:B) or as plain
// semicolon-delimited params; returns how many additional top-level
// parameters beyond the 38/48 itself were consumed.
func (t *Terminal) sgrExtendedColor(params *Params, i int, fg bool) int {
	if subs := params.GetSubs(i); len(subs) > 0 {
		switch subs[0] {
		case 5:
			if len(subs) > 1 {
				t.setExtColor(fg, ColorModePalette, uint32(subs[1]))
			}
		case 2:
			if len(subs) >= 4 {
				r, g, b := subs[len(subs)-3], subs[len(subs)-2], subs[len(subs)-1]
				t.setExtColor(fg, ColorModeRGB, uint32(r)<<16|uint32(g)<<8|uint32(b))
			}
		}
		return 0
	}
	switch params.Get(i+1, -1) {
	case 5:
		idx := params.Get(i+2, 0)
		t.setExtColor(fg, ColorModePalette, uint32(idx))
		return 2
	case 2:
		r := params.Get(i+2, 0)
		g := params.Get(i+3, 0)
		b := params.Get(i+4, 0)
		t.setExtColor(fg, ColorModeRGB, uint32(r)<<16|uint32(g)<<8|uint32(b))
		return 4
	}
	return 0
}

func (t *Terminal) setExtColor(fg bool, mode ColorMode, value uint32) {
	if fg {
		t.attr = t.attr.WithFg(mode, value)
	} else {
		t.attr = t.attr.WithBg(mode, value)
	}
}

// dsr handles ANSI CSI n (Device Status Report).
func (t *Terminal) dsr(s *Screen, params *Params) {
	switch params.Get(0, 0) {
	case 5:
		t.reply([]byte("\x1b[0n"))
	case 6:
		row, col := t.cursorReportPosition(s)
		t.reply([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
	}
}

// dsrPrivate handles CSI ? n (DEC-private Device Status Report).
func (t *Terminal) dsrPrivate(s *Screen, params *Params) {
	switch params.Get(0, 0) {
	case 6:
		row, col := t.cursorReportPosition(s)
		t.reply([]byte(fmt.Sprintf("\x1b[?%d;%dR", row, col)))
	case 15:
		t.reply([]byte("\x1b[?13n"))
	case 25:
		t.reply([]byte("\x1b[?21n"))
	case 26:
		t.reply([]byte("\x1b[?27;1;0;0n"))
	}
}

func (t *Terminal) cursorReportPosition(s *Screen) (row, col int) {
	row = s.CursorY() + 1
	if t.originMode {
		row -= s.ScrollTop()
	}
	col = s.CursorX() + 1
	return row, col
}

// setAnsiModes handles CSI h/l without the `?` private-mode prefix (ANSI
// SM/RM); only mode 4 (insert) is meaningful to the core.
func (t *Terminal) setAnsiModes(params *Params, set bool) {
	for i := 0; i < params.Len(); i++ {
		if params.Get(i, 0) == 4 {
			t.insertMode = set
		}
	}
}

// decset handles CSI ? h/l (DECSET/DECRST).
func (t *Terminal) decset(params *Params, set bool) {
	for i := 0; i < params.Len(); i++ {
		switch params.Get(i, 0) {
		case 1:
			t.appCursorKeys = set
		case 6:
			t.originMode = set
			t.screen().SetCursor(0, 0)
		case 7:
			t.wraparound = set
		case 9:
			t.setMouseTracking(MouseTrackingX10, set)
		case 25:
			t.cursorVisible = set
		case 66:
			t.appKeypad = set
		case 1000:
			t.setMouseTracking(MouseTrackingVT200, set)
		case 1002:
			t.setMouseTracking(MouseTrackingBtnEvent, set)
		case 1003:
			t.setMouseTracking(MouseTrackingAnyEvent, set)
		case 1004:
			t.sendFocusEvents = set
		case 1005:
			t.setMouseEncoding(MouseEncodingUTF8, set)
		case 1006:
			t.setMouseEncoding(MouseEncodingSGR, set)
		case 1015:
			t.setMouseEncoding(MouseEncodingURXVT, set)
		case 1047:
			if set {
				t.switchToAlt(false)
			} else {
				t.switchToNormal(false)
			}
		case 1048:
			if set {
				t.saveCursor()
			} else {
				t.restoreCursor()
			}
		case 1049:
			if set {
				t.switchToAlt(true)
			} else {
				t.switchToNormal(true)
			}
		case 2004:
			t.bracketedPaste = set
		case 1036:
			t.metaSendsEscape = set
			if set {
				t.win32Input = false
				t.altSendsEscape = false
			}
		case 1039:
			t.altSendsEscape = set
			if set {
				t.win32Input = false
				t.metaSendsEscape = false
			}
		case 9001:
			t.win32Input = set
			if set {
				t.metaSendsEscape = false
				t.altSendsEscape = false
			}
		}
	}
}

func (t *Terminal) setMouseTracking(mode MouseTrackingMode, set bool) {
	if set {
		t.mouseTracking = mode
	} else if t.mouseTracking == mode {
		t.mouseTracking = MouseTrackingNone
	}
}

func (t *Terminal) setMouseEncoding(enc MouseEncoding, set bool) {
	if set {
		t.mouseEncoding = enc
	} else if t.mouseEncoding == enc {
		t.mouseEncoding = MouseEncodingDefault
	}
}

// decscusr handles CSI n SP q (DECSCUSR).
func (t *Terminal) decscusr(n int) {
	var style CursorStyle
	var blink bool
	switch n {
	case 0, 1:
		style, blink = CursorStyleBlinkingBlock, true
	case 2:
		style, blink = CursorStyleSteadyBlock, false
	case 3:
		style, blink = CursorStyleBlinkingUnderline, true
	case 4:
		style, blink = CursorStyleSteadyUnderline, false
	case 5:
		style, blink = CursorStyleBlinkingBar, true
	case 6:
		style, blink = CursorStyleSteadyBar, false
	default:
		return
	}
	if style != t.cursorStyle || blink != t.cursorBlink {
		t.cursorStyle, t.cursorBlink = style, blink
		t.emit(CursorStyleChangedEvent{Style: style, Blink: blink})
	}
}

// windowManip handles CSI Ps ; ... t (window manipulation).
// Query operations (11/13/14/15/16) need the embedder's answer before a
// reply can be built, so they emit WindowInfoRequestedEvent directly on the
// bus rather than through the deferred pendingEvents queue used elsewhere:
// that is the one place in the core where a listener runs synchronously,
// mid-dispatch, instead of after Write releases its lock.
func (t *Terminal) windowManip(params *Params) {
	p := t.permissions
	switch params.Get(0, 0) {
	case 1:
		if p.RestoreWin {
			t.emit(WindowRestoredEvent{})
		}
	case 2:
		if p.MinimizeWin {
			t.emit(WindowMinimizedEvent{})
		}
	case 3:
		if p.SetWinPosition {
			t.emit(WindowMovedEvent{X: int(params.Get(1, 0)), Y: int(params.Get(2, 0))})
		}
	case 4:
		if p.SetWinSizePixels {
			t.emit(WindowResizedEvent{H: int(params.Get(1, 0)), W: int(params.Get(2, 0))})
		}
	case 5:
		if p.Raise {
			t.emit(WindowRaisedEvent{})
		}
	case 6:
		if p.Lower {
			t.emit(WindowLoweredEvent{})
		}
	case 7:
		if p.Refresh {
			t.emit(WindowRefreshedEvent{})
		}
	case 8:
		if p.SetWinSizeChars {
			r, c := int(params.Get(1, 0)), int(params.Get(2, 0))
			if r > 0 && c > 0 {
				t.resizeInternal(c, r)
			}
		}
	case 9:
		switch params.Get(1, 0) {
		case 0:
			if p.RestoreWin {
				t.emit(WindowRestoredEvent{})
			}
		case 1, 2:
			if p.MaximizeWin {
				t.emit(WindowMaximizedEvent{})
			}
		}
	case 10:
		if p.FullscreenWin {
			t.emit(WindowFullscreenedEvent{})
		}
	case 11:
		if !p.GetWinState {
			return
		}
		req := &WindowInfoRequest{Kind: WindowInfoState}
		t.bus.emit(WindowInfoRequestedEvent{Request: req})
		if req.Handled {
			if req.Iconified {
				t.reply([]byte("\x1b[2t"))
			} else {
				t.reply([]byte("\x1b[1t"))
			}
		}
	case 13:
		if !p.GetWinPosition {
			return
		}
		req := &WindowInfoRequest{Kind: WindowInfoPosition}
		t.bus.emit(WindowInfoRequestedEvent{Request: req})
		if req.Handled {
			t.reply([]byte(fmt.Sprintf("\x1b[3;%d;%dt", req.X, req.Y)))
		}
	case 14:
		if !p.GetWinSizePixels {
			return
		}
		req := &WindowInfoRequest{Kind: WindowInfoSizePixels}
		t.bus.emit(WindowInfoRequestedEvent{Request: req})
		if req.Handled {
			t.reply([]byte(fmt.Sprintf("\x1b[4;%d;%dt", req.H, req.W)))
		}
	case 15:
		if !p.GetScreenSizePixels {
			return
		}
		req := &WindowInfoRequest{Kind: WindowInfoScreenSizePixels}
		t.bus.emit(WindowInfoRequestedEvent{Request: req})
		if req.Handled {
			t.reply([]byte(fmt.Sprintf("\x1b[5;%d;%dt", req.H, req.W)))
		}
	case 16:
		if !p.GetCellSizePixels {
			return
		}
		req := &WindowInfoRequest{Kind: WindowInfoCellSizePixels}
		t.bus.emit(WindowInfoRequestedEvent{Request: req})
		if req.Handled {
			t.reply([]byte(fmt.Sprintf("\x1b[6;%d;%dt", req.H, req.W)))
		}
	case 18:
		if p.GetWinSizeChars {
			t.reply([]byte(fmt.Sprintf("\x1b[8;%d;%dt", t.rows, t.cols)))
		}
	case 19:
		if p.GetScreenSizePixels {
			t.reply([]byte(fmt.Sprintf("\x1b[9;%d;%dt", t.rows, t.cols)))
		}
	case 20:
		if p.GetIconTitle && t.title != "" {
			t.reply([]byte(fmt.Sprintf("\x1b]L%s\x07", t.title)))
		}
	case 21:
		if p.GetWinTitle {
			t.reply([]byte(fmt.Sprintf("\x1b]l%s\x07", t.title)))
		}
	}
}

// Esc implements ParserSink: dispatches one ESC final-byte sequence, plus
// the charset-designator and DEC-line-attribute families that carry a
// single collected intermediate byte.
func (t *Terminal) Esc(final byte, collected []byte) {
	if len(collected) == 1 {
		switch collected[0] {
		case '(', ')', '*', '+':
			t.designateCharset(collected[0], final)
			return
		case '#':
			t.escLineAttr(final)
			return
		}
	}
	switch final {
	case 'D':
		t.lineFeed()
		t.emit(LineFedEvent{})
	case 'E':
		t.lineFeed()
		s := t.screen()
		s.SetCursor(0, s.CursorY())
		t.emit(LineFedEvent{})
	case 'M':
		s := t.screen()
		if s.CursorY() == s.ScrollTop() {
			s.ScrollDown(1, t.attr)
			t.emit(ScrolledEvent{})
		} else if s.CursorY() > 0 {
			s.SetCursor(s.CursorX(), s.CursorY()-1)
		}
	case '7':
		t.saveCursor()
	case '8':
		t.restoreCursor()
	case 'c':
		t.resetAll()
	}
}

func (t *Terminal) designateCharset(intermediate, final byte) {
	idx := CharsetIndexG0
	switch intermediate {
	case ')':
		idx = CharsetIndexG1
	case '*':
		idx = CharsetIndexG2
	case '+':
		idx = CharsetIndexG3
	}
	cs := CharsetASCII
	if final == '0' {
		cs = CharsetLineDrawing
	}
	t.charsets[idx] = cs
}

func (t *Terminal) escLineAttr(final byte) {
	var la LineAttr
	switch final {
	case '3':
		la = LineAttrDoubleHeightTop
	case '4':
		la = LineAttrDoubleHeightBottom
	case '5':
		la = LineAttrNormal
	case '6':
		la = LineAttrDoubleWidth
	default:
		return
	}
	if line := t.screen().CurrentLine(); line != nil {
		line.SetLineAttr(la)
	}
}

func (t *Terminal) saveCursor() {
	t.screen().SaveCursor(t.attr, t.charsetIndex)
}

func (t *Terminal) restoreCursor() {
	attr, cs := t.screen().RestoreCursor(t.attr, t.charsetIndex)
	t.attr, t.charsetIndex = attr, cs
}

// Osc implements ParserSink: dispatches one OSC payload by its leading
// ";"-delimited command code.
func (t *Terminal) Osc(payload []byte) {
	code, rest := splitOnce(string(payload), ';')
	switch code {
	case "0", "2":
		t.title = rest
		t.emit(TitleChangedEvent{Title: rest})
	case "7":
		path := decodeFileURI(rest)
		t.currentDirectory = path
		t.emit(DirectoryChangedEvent{Path: path})
	case "8":
		t.handleHyperlink(rest)
	case "4":
		// Palette colour change: acknowledged, no semantic effect in the core.
	case "10", "11", "12":
		t.replyDynamicColor(code, rest)
	case "52":
		t.handleClipboard(rest)
	case "104":
		// Reset palette: acknowledged, no-op (core has no palette overrides).
	}
}

func splitOnce(s string, sep byte) (before, after string) {
	if idx := strings.IndexByte(s, sep); idx >= 0 {
		return s[:idx], s[idx+1:]
	}
	return s, ""
}

func decodeFileURI(s string) string {
	const prefix = "file://"
	if strings.HasPrefix(s, prefix) {
		rest := s[len(prefix):]
		if idx := strings.IndexByte(rest, '/'); idx >= 0 {
			rest = rest[idx:]
		} else {
			rest = "/"
		}
		s = rest
	}
	if decoded, err := url.PathUnescape(s); err == nil {
		return decoded
	}
	return s
}

func (t *Terminal) handleHyperlink(rest string) {
	params, uri := splitOnce(rest, ';')
	if uri == "" {
		t.currentHyperlink = ""
		t.currentHyperlinkID = ""
		t.emit(HyperlinkChangedEvent{})
		return
	}
	id := ""
	for _, kv := range strings.Split(params, ":") {
		if k, v, ok := strings.Cut(kv, "="); ok && k == "id" {
			id = v
		}
	}
	t.currentHyperlink = uri
	t.currentHyperlinkID = id
	t.hyperlinkSeq++
	t.emit(HyperlinkChangedEvent{URL: uri, ID: id})
}

func (t *Terminal) replyDynamicColor(code, rest string) {
	if rest != "?" {
		return
	}
	var c = DefaultForeground
	switch code {
	case "10":
		c = ResolveForeground(t.attr)
	case "11":
		c = ResolveBackground(t.attr)
	case "12":
		c = DefaultCursorColor
	}
	t.reply([]byte(fmt.Sprintf("\x1b]%s;%s\x07", code, FormatXParseColor(c))))
}

func (t *Terminal) handleClipboard(rest string) {
	sel, data := splitOnce(rest, ';')
	if data == "?" {
		t.reply([]byte(fmt.Sprintf("\x1b]52;%s;\x07", sel)))
		return
	}
	base64.StdEncoding.DecodeString(data) // malformed payloads are tolerated, not surfaced
}

// Dcs implements ParserSink. The core defines no DCS-family operation; a
// well-formed but unrecognised DCS sequence is simply absorbed.
func (t *Terminal) Dcs(identifier string, params *Params, data []byte) {}
