package vtcore

import "testing"

func TestTerminalResizeIdempotentAndEvent(t *testing.T) {
	term := New(WithSize(80, 24))
	var resized int
	var gotCols, gotRows int
	term.OnEvent(func(e Event) {
		if r, ok := e.(ResizedEvent); ok {
			resized++
			gotCols, gotRows = r.Cols, r.Rows
		}
	})

	term.Resize(80, 24)
	if resized != 0 {
		t.Fatalf("Resize to unchanged size fired Resized %d times, want 0", resized)
	}

	term.Resize(100, 30)
	if resized != 1 {
		t.Fatalf("Resize fired Resized %d times, want 1", resized)
	}
	if gotCols != 100 || gotRows != 30 {
		t.Fatalf("Resized event = (%d,%d), want (100,30)", gotCols, gotRows)
	}
	if term.Cols() != 100 || term.Rows() != 30 {
		t.Fatalf("Cols/Rows = (%d,%d), want (100,30)", term.Cols(), term.Rows())
	}
}

func TestTerminalResizePreservesContent(t *testing.T) {
	term := New(WithSize(10, 5))
	term.WriteString("hello")
	term.Resize(20, 10)

	line, _ := term.GetLine(0)
	if got := line.TranslateToString(true, 0, line.Len()); got != "hello" {
		t.Fatalf("line 0 after resize = %q, want %q", got, "hello")
	}
	if line.Len() != 20 {
		t.Fatalf("line len after resize = %d, want 20", line.Len())
	}
}

func TestTerminalResetRestoresDefaultModes(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("\x1b[4h")     // insert mode on (SM 4)
	term.WriteString("\x1b[?25l")   // hide cursor
	term.WriteString("\x1b[?1049h") // switch to alt buffer
	term.WriteString("hello")

	term.Reset()

	if !term.CursorVisible() {
		t.Fatalf("cursor visible after Reset = false, want true")
	}
	if term.ActiveBuffer() != BufferNormal {
		t.Fatalf("active buffer after Reset = %v, want normal", term.ActiveBuffer())
	}
	x, y := term.CursorPosition()
	if x != 0 || y != 0 {
		t.Fatalf("cursor after Reset = (%d,%d), want (0,0)", x, y)
	}
	line, _ := term.GetLine(0)
	if got := line.TranslateToString(true, 0, line.Len()); got != "" {
		t.Fatalf("line 0 after Reset = %q, want empty", got)
	}
}

func TestTerminalClearOnlyActiveArea(t *testing.T) {
	term := New(WithSize(80, 5), WithScrollback(100))
	term.WriteString("scrollback-line\r\n\r\n\r\n\r\n\r\n")
	term.Clear()

	matches := term.SearchScrollback("scrollback-line")
	if len(matches) == 0 {
		t.Fatalf("Clear erased scrollback, want it preserved")
	}
	x, y := term.CursorPosition()
	if x != 0 || y != 0 {
		t.Fatalf("cursor after Clear = (%d,%d), want (0,0)", x, y)
	}
}

func TestTerminalScrollToTopAndBottom(t *testing.T) {
	term := New(WithSize(80, 5), WithScrollback(100))
	for i := 0; i < 20; i++ {
		term.WriteString("x\r\n")
	}

	term.ScrollToTop()
	matches := term.Search("x")
	if len(matches) == 0 {
		t.Fatalf("expected to find content in the active area after ScrollToTop")
	}

	term.ScrollToBottom()
}

func TestTerminalBufferSwitchEvents(t *testing.T) {
	term := New(WithSize(80, 24))
	var events []BufferKind
	term.OnEvent(func(e Event) {
		if b, ok := e.(BufferChangedEvent); ok {
			events = append(events, b.Active)
		}
	})

	term.SwitchToAltBuffer()
	term.SwitchToAltBuffer() // idempotent, no second event
	term.SwitchToNormalBuffer()

	if len(events) != 2 || events[0] != BufferAlternate || events[1] != BufferNormal {
		t.Fatalf("buffer switch events = %v, want [Alternate Normal]", events)
	}
}

func TestTerminalTitleAndDirectory(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("\x1b]2;my window\x07")
	if term.Title() != "my window" {
		t.Fatalf("Title() = %q, want %q", term.Title(), "my window")
	}

	term.WriteString("\x1b]7;file://host/home/user\x07")
	if term.CurrentDirectory() != "/home/user" {
		t.Fatalf("CurrentDirectory() = %q, want %q", term.CurrentDirectory(), "/home/user")
	}
}

func TestTerminalSelection(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("hello world")

	term.SetSelection(Position{Row: 0, Col: 0}, Position{Row: 0, Col: 4})
	if !term.HasSelection() {
		t.Fatalf("HasSelection() = false, want true")
	}
	if !term.IsSelected(0, 2) {
		t.Fatalf("IsSelected(0,2) = false, want true")
	}
	if term.IsSelected(0, 10) {
		t.Fatalf("IsSelected(0,10) = true, want false")
	}
	if got := term.SelectedText(); got != "hello" {
		t.Fatalf("SelectedText() = %q, want %q", got, "hello")
	}

	term.ClearSelection()
	if term.HasSelection() {
		t.Fatalf("HasSelection() after clear = true, want false")
	}
}

func TestTerminalEncodeFocusGatedByMode(t *testing.T) {
	term := New(WithSize(80, 24))
	if got := term.EncodeFocus(true); got != nil {
		t.Fatalf("EncodeFocus before DECSET 1004 = %q, want nil", got)
	}

	term.WriteString("\x1b[?1004h")
	if got := term.EncodeFocus(true); string(got) != "\x1b[I" {
		t.Fatalf("EncodeFocus(true) = %q, want %q", got, "\x1b[I")
	}
	if got := term.EncodeFocus(false); string(got) != "\x1b[O" {
		t.Fatalf("EncodeFocus(false) = %q, want %q", got, "\x1b[O")
	}
}

func TestTerminalWriteSplitAcrossCallsMatchesSingleCall(t *testing.T) {
	one := New(WithSize(20, 5))
	one.WriteString("\x1b[1;31mhello\x1b[0m world\r\n")

	split := New(WithSize(20, 5))
	data := "\x1b[1;31mhello\x1b[0m world\r\n"
	for i := 0; i < len(data); i++ {
		split.WriteString(string(data[i]))
	}

	if one.String() != split.String() {
		t.Fatalf("split write mismatch:\n%q\nwant\n%q", split.String(), one.String())
	}
}

func TestTerminalWriteLine(t *testing.T) {
	term := New(WithSize(20, 5))
	term.WriteLine("hi")
	line0, _ := term.GetLine(0)
	if got := line0.TranslateToString(true, 0, line0.Len()); got != "hi" {
		t.Fatalf("line 0 = %q, want %q", got, "hi")
	}
	x, y := term.CursorPosition()
	if x != 0 || y != 1 {
		t.Fatalf("cursor after WriteLine = (%d,%d), want (0,1)", x, y)
	}
}
