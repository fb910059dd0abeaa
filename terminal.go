package vtcore

import "sync"

// WindowPermissions gates the window-manipulation operations in the CSI
// `t` family. Every flag defaults to false: an embedder must
// opt in before the core will honour (and reply to) the corresponding
// request.
type WindowPermissions struct {
	RestoreWin          bool
	MinimizeWin         bool
	SetWinPosition      bool
	SetWinSizePixels    bool
	Raise               bool
	Lower               bool
	Refresh             bool
	SetWinSizeChars     bool
	MaximizeWin         bool
	FullscreenWin       bool
	GetWinState         bool
	GetWinPosition      bool
	GetWinSizePixels    bool
	GetScreenSizePixels bool
	GetCellSizePixels   bool
	GetWinSizeChars     bool
	GetIconTitle        bool
	GetWinTitle         bool
}

// config collects the values Option funcs mutate before New builds the
// Terminal proper; it lets WithX funcs stay simple closures instead of
// needing a fully-constructed Terminal to write into.
type config struct {
	cols, rows   int
	scrollback   int
	tabStopWidth int
	convertEOL   bool
	termName     string
	cursorStyle  CursorStyle
	cursorBlink  bool
	permissions  WindowPermissions
}

// Option configures a Terminal at construction time.
type Option func(*config)

func defaultConfig() config {
	return config{
		cols:         80,
		rows:         24,
		scrollback:   1000,
		tabStopWidth: 8,
		termName:     "xterm",
		cursorStyle:  CursorStyleBlinkingBlock,
		cursorBlink:  true,
	}
}

// WithSize sets the initial column and row count.
func WithSize(cols, rows int) Option {
	return func(c *config) { c.cols, c.rows = cols, rows }
}

// WithScrollback sets the normal buffer's scrollback capacity in lines.
func WithScrollback(n int) Option {
	return func(c *config) { c.scrollback = n }
}

// WithTabStopWidth sets the default tab stop width (default 8).
func WithTabStopWidth(n int) Option {
	return func(c *config) { c.tabStopWidth = n }
}

// WithTermName sets the reported terminal name, for embedders that surface
// it to the host environment; the core does not interpret it.
func WithTermName(name string) Option {
	return func(c *config) { c.termName = name }
}

// WithConvertEOL enables translating a bare LF into CR+LF semantics.
func WithConvertEOL(v bool) Option {
	return func(c *config) { c.convertEOL = v }
}

// WithWindowPermissions sets which window-manipulation operations (CSI `t`)
// are honoured. Every operation defaults to disabled.
func WithWindowPermissions(p WindowPermissions) Option {
	return func(c *config) { c.permissions = p }
}

// WithCursorStyle sets the initial cursor style and blink state.
func WithCursorStyle(style CursorStyle, blink bool) Option {
	return func(c *config) { c.cursorStyle, c.cursorBlink = style, blink }
}

// Terminal is the façade: it owns the normal and alternate screens, the
// byte-level parser, and the keyboard/mouse encoders, and exposes the
// write/encode/resize/reset surface a headless embedder drives. The core
// is single-threaded per instance: Write must not be called concurrently
// with itself, but the accessor methods take an internal lock so a
// renderer on another goroutine can safely read state between writes.
type Terminal struct {
	mu sync.Mutex

	cols, rows   int
	scrollback   int
	tabStopWidth int
	convertEOL   bool
	termName     string
	permissions  WindowPermissions

	primary   *Screen
	alternate *Screen
	active    BufferKind

	parser *EscParser

	attr         Attribute
	charsetIndex CharsetIndex
	charsets     [4]Charset

	insertMode      bool
	appCursorKeys   bool
	appKeypad       bool
	bracketedPaste  bool
	originMode      bool
	cursorVisible   bool
	wraparound      bool
	reverseWrap     bool
	sendFocusEvents bool
	win32Input      bool
	metaSendsEscape bool
	altSendsEscape  bool

	cursorStyle CursorStyle
	cursorBlink bool

	title              string
	currentDirectory   string
	currentHyperlink   string
	currentHyperlinkID string
	hyperlinkSeq       int

	mouseTracking MouseTrackingMode
	mouseEncoding MouseEncoding

	bus           eventBus
	pendingEvents []Event

	selActive   bool
	selStartAbs int
	selStartCol int
	selEndAbs   int
	selEndCol   int
}

// New builds a Terminal from the given options, defaulting to an 80x24
// screen with 1000 lines of scrollback.
func New(opts ...Option) *Terminal {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cols < 1 {
		cfg.cols = 1
	}
	if cfg.rows < 1 {
		cfg.rows = 1
	}

	t := &Terminal{
		cols:          cfg.cols,
		rows:          cfg.rows,
		scrollback:    cfg.scrollback,
		tabStopWidth:  cfg.tabStopWidth,
		convertEOL:    cfg.convertEOL,
		termName:      cfg.termName,
		permissions:   cfg.permissions,
		primary:       NewScreen(cfg.cols, cfg.rows, cfg.scrollback),
		alternate:     NewScreen(cfg.cols, cfg.rows, 0),
		active:        BufferNormal,
		attr:          DefaultAttribute(),
		cursorVisible: true,
		wraparound:    true,
		cursorStyle:   cfg.cursorStyle,
		cursorBlink:   cfg.cursorBlink,
	}
	t.parser = NewEscParser(t)
	return t
}

func (t *Terminal) screen() *Screen {
	if t.active == BufferAlternate {
		return t.alternate
	}
	return t.primary
}

// withLock runs fn under the terminal lock, then delivers any events it
// queued after releasing the lock, so a listener calling back into a
// public accessor never deadlocks against the same goroutine.
func (t *Terminal) withLock(fn func()) {
	t.mu.Lock()
	fn()
	events := t.pendingEvents
	t.pendingEvents = nil
	t.mu.Unlock()
	for _, e := range events {
		t.bus.emit(e)
	}
}

func (t *Terminal) emit(e Event) {
	t.pendingEvents = append(t.pendingEvents, e)
}

func (t *Terminal) reply(data []byte) {
	t.emit(DataReceivedEvent{Data: data})
}

// OnEvent registers fn to receive every future event synchronously, in
// generation order. The returned function unregisters it.
func (t *Terminal) OnEvent(fn func(Event)) func() {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.bus.Subscribe(fn)
}

// Write feeds bytes to the parser. Writing the same bytes in one call or
// split across many calls produces identical observable effects.
func (t *Terminal) Write(data []byte) {
	t.withLock(func() {
		t.parser.Parse(data)
	})
}

// WriteString is a convenience wrapper over Write.
func (t *Terminal) WriteString(s string) { t.Write([]byte(s)) }

// WriteLine writes s followed by CRLF.
func (t *Terminal) WriteLine(s string) { t.Write([]byte(s + "\r\n")) }

// Cols returns the current column count.
func (t *Terminal) Cols() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols
}

// Rows returns the current row count.
func (t *Terminal) Rows() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rows
}

// ActiveBuffer reports which screen is currently active.
func (t *Terminal) ActiveBuffer() BufferKind {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

// CursorPosition returns the active screen's viewport-relative cursor.
func (t *Terminal) CursorPosition() (x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.screen()
	return s.CursorX(), s.CursorY()
}

// CursorVisible reports whether the cursor is currently shown (DECTCEM).
func (t *Terminal) CursorVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorVisible
}

// CursorStyle returns the current cursor style and blink state.
func (t *Terminal) CursorStyle() (CursorStyle, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cursorStyle, t.cursorBlink
}

// Title returns the current window title.
func (t *Terminal) Title() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.title
}

// CurrentDirectory returns the last OSC-7-reported directory.
func (t *Terminal) CurrentDirectory() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.currentDirectory
}

// GetLine returns a clone of the active screen's line at absolute index
// absoluteY, or false if out of range. Cloning keeps callers from holding
// a reference a later splice/resize would invalidate.
func (t *Terminal) GetLine(absoluteY int) (Line, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	l := t.screen().GetLine(absoluteY)
	if l == nil {
		return Line{}, false
	}
	return l.Clone(), true
}

// LineContent returns the trimmed text of the active screen's line at
// viewport row y.
func (t *Terminal) LineContent(y int) string {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.screen()
	l := s.GetLine(s.AbsoluteY(y))
	if l == nil {
		return ""
	}
	return l.TranslateToString(true, 0, l.Len())
}

// String returns the text content of every row in the active area, joined
// with newlines.
func (t *Terminal) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.screen()
	out := ""
	for y := 0; y < s.Rows(); y++ {
		l := s.GetLine(s.AbsoluteY(y))
		if y > 0 {
			out += "\n"
		}
		if l != nil {
			out += l.TranslateToString(true, 0, l.Len())
		}
	}
	return out
}

// Position identifies a cell by viewport row and column. A negative Row
// addresses scrollback, with -1 the line immediately above the viewport.
type Position struct {
	Row, Col int
}

// Search finds every occurrence of pattern in the active screen's active
// area (the rows starting at YBase, wherever ScrollLines/ScrollToTop have
// moved the view), returning the position of each match's first character.
func (t *Terminal) Search(pattern string) []Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pattern == "" {
		return nil
	}
	s := t.screen()
	var matches []Position
	pr := []rune(pattern)
	for y := 0; y < s.Rows(); y++ {
		l := s.GetLine(s.AbsoluteY(y))
		if l == nil {
			continue
		}
		row := []rune(l.TranslateToString(false, 0, l.Len()))
		for col := 0; col <= len(row)-len(pr); col++ {
			if runesEqual(row[col:col+len(pr)], pr) {
				matches = append(matches, Position{Row: y, Col: col})
			}
		}
	}
	return matches
}

// SearchScrollback finds every occurrence of pattern in the active
// screen's scrollback (rows above the active area). Returned Row values
// are negative, -1 being the row immediately above the viewport.
func (t *Terminal) SearchScrollback(pattern string) []Position {
	t.mu.Lock()
	defer t.mu.Unlock()
	if pattern == "" {
		return nil
	}
	s := t.screen()
	var matches []Position
	pr := []rune(pattern)
	for abs := 0; abs < s.YBase(); abs++ {
		l := s.GetLine(abs)
		if l == nil {
			continue
		}
		row := []rune(l.TranslateToString(false, 0, l.Len()))
		for col := 0; col <= len(row)-len(pr); col++ {
			if runesEqual(row[col:col+len(pr)], pr) {
				matches = append(matches, Position{Row: abs - s.YBase(), Col: col})
			}
		}
	}
	return matches
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// SetSelection marks [start,end] as selected, both ends inclusive,
// normalizing order.
func (t *Terminal) SetSelection(start, end Position) {
	t.mu.Lock()
	defer t.mu.Unlock()
	s := t.screen()
	sa, sc := s.AbsoluteY(start.Row), start.Col
	ea, ec := s.AbsoluteY(end.Row), end.Col
	if ea < sa || (ea == sa && ec < sc) {
		sa, sc, ea, ec = ea, ec, sa, sc
	}
	t.selStartAbs, t.selStartCol = sa, sc
	t.selEndAbs, t.selEndCol = ea, ec
	t.selActive = true
}

// ClearSelection deactivates the current selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.selActive = false
}

// HasSelection reports whether a selection is active.
func (t *Terminal) HasSelection() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.selActive
}

// IsSelected reports whether the viewport cell (row, col) is selected.
func (t *Terminal) IsSelected(row, col int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selActive {
		return false
	}
	abs := t.screen().AbsoluteY(row)
	if abs < t.selStartAbs || abs > t.selEndAbs {
		return false
	}
	if abs == t.selStartAbs && col < t.selStartCol {
		return false
	}
	if abs == t.selEndAbs && col > t.selEndCol {
		return false
	}
	return true
}

// SelectedText returns the text within the active selection, rows joined
// by newlines.
func (t *Terminal) SelectedText() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.selActive {
		return ""
	}
	s := t.screen()
	var out string
	for abs := t.selStartAbs; abs <= t.selEndAbs; abs++ {
		l := s.GetLine(abs)
		if l == nil {
			continue
		}
		start, end := 0, l.Len()
		if abs == t.selStartAbs {
			start = t.selStartCol
		}
		if abs == t.selEndAbs {
			end = t.selEndCol + 1
		}
		if abs > t.selStartAbs {
			out += "\n"
		}
		out += l.TranslateToString(false, start, end)
	}
	return out
}

// Resize changes both screens' dimensions. It is a no-op if cols/rows are
// unchanged, otherwise it fires Resized.
func (t *Terminal) Resize(cols, rows int) {
	t.withLock(func() {
		t.resizeInternal(cols, rows)
	})
}

// resizeInternal does the work of Resize assuming the caller already holds
// t.mu (e.g. CSI `t` 8 ; r ; c, dispatched from within Write).
func (t *Terminal) resizeInternal(cols, rows int) {
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	if cols == t.cols && rows == t.rows {
		return
	}
	t.primary.Resize(cols, rows)
	t.alternate.Resize(cols, rows)
	t.cols, t.rows = cols, rows
	t.emit(ResizedEvent{Cols: cols, Rows: rows})
}

// Reset clears parser state, resets every mode flag to its default, blanks
// both screens, and switches back to the normal buffer (RIS).
func (t *Terminal) Reset() {
	t.withLock(func() {
		t.resetAll()
	})
}

func (t *Terminal) resetAll() {
	t.parser.Reset()
	t.insertMode = false
	t.appCursorKeys = false
	t.appKeypad = false
	t.bracketedPaste = false
	t.originMode = false
	t.cursorVisible = true
	t.wraparound = true
	t.reverseWrap = false
	t.sendFocusEvents = false
	t.win32Input = false
	t.metaSendsEscape = false
	t.altSendsEscape = false
	t.mouseTracking = MouseTrackingNone
	t.mouseEncoding = MouseEncodingDefault
	t.attr = DefaultAttribute()
	t.charsetIndex = CharsetIndexG0
	t.charsets = [4]Charset{}
	t.title = ""
	t.currentDirectory = ""
	t.currentHyperlink = ""
	t.currentHyperlinkID = ""
	t.active = BufferNormal
	t.selActive = false

	for _, s := range []*Screen{t.primary, t.alternate} {
		s.ResetScrollRegion()
		s.ClearVisible(DefaultAttribute())
	}
}

// Clear wipes only the active screen's visible area and homes the cursor.
func (t *Terminal) Clear() {
	t.withLock(func() {
		t.screen().ClearVisible(t.attr)
	})
}

// ScrollLines scrolls the active screen's viewport by n lines relative to
// its current position.
func (t *Terminal) ScrollLines(n int) {
	t.withLock(func() {
		t.screen().ScrollLines(n)
		t.emit(ScrolledEvent{})
	})
}

// ScrollToTop scrolls the viewport to the oldest available line.
func (t *Terminal) ScrollToTop() {
	t.withLock(func() {
		t.screen().ScrollToTop()
		t.emit(ScrolledEvent{})
	})
}

// ScrollToBottom scrolls the viewport back to the active area.
func (t *Terminal) ScrollToBottom() {
	t.withLock(func() {
		t.screen().ScrollToBottom()
		t.emit(ScrolledEvent{})
	})
}

// SwitchToAltBuffer activates the alternate screen. Idempotent.
func (t *Terminal) SwitchToAltBuffer() {
	t.withLock(func() { t.switchToAlt(false) })
}

// SwitchToNormalBuffer activates the normal screen. Idempotent.
func (t *Terminal) SwitchToNormalBuffer() {
	t.withLock(func() { t.switchToNormal(false) })
}

func (t *Terminal) switchToAlt(saveCursor bool) {
	if t.active == BufferAlternate {
		return
	}
	if saveCursor {
		t.primary.SaveCursor(t.attr, t.charsetIndex)
	}
	t.active = BufferAlternate
	t.alternate.ClearVisible(t.attr)
	t.emit(BufferChangedEvent{Active: BufferAlternate})
}

func (t *Terminal) switchToNormal(restoreCursor bool) {
	if t.active == BufferNormal {
		return
	}
	t.active = BufferNormal
	if restoreCursor {
		attr, cs := t.primary.RestoreCursor(t.attr, t.charsetIndex)
		t.attr, t.charsetIndex = attr, cs
	}
	t.emit(BufferChangedEvent{Active: BufferNormal})
}

// EncodeKey returns the byte sequence for a named key under the given
// modifiers, per the terminal's current cursor-key and keypad modes. Win32
// input mode (DECSET 9001) does not change the output; Win32-format key
// events come from EncodeWin32KeyEvent.
func (t *Terminal) EncodeKey(key Key, mods Modifiers) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keyEncoder().EncodeKey(key, mods)
}

// EncodeChar returns the byte sequence for a literal character under the
// given modifiers.
func (t *Terminal) EncodeChar(c rune, mods Modifiers) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.keyEncoder().EncodeChar(c, mods)
}

// EncodeMouse returns the byte sequence for a mouse event, or nil if the
// current tracking mode does not report it.
func (t *Terminal) EncodeMouse(btn MouseButton, x, y int, ev MouseEventType, mods Modifiers) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	enc := MouseEncoder{Tracking: t.mouseTracking, Encoding: t.mouseEncoding}
	return enc.Encode(btn, x, y, ev, mods)
}

// EncodeFocus returns the byte sequence for a focus in/out event, or nil
// if focus reporting is disabled.
func (t *Terminal) EncodeFocus(focused bool) []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.sendFocusEvents {
		return nil
	}
	return EncodeFocusEvent(focused)
}

func (t *Terminal) keyEncoder() KeyEncoder {
	return KeyEncoder{
		AppCursorKeys: t.appCursorKeys,
		AppKeypad:     t.appKeypad,
	}
}
