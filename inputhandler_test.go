package vtcore

import (
	"strconv"
	"testing"
)

func TestInputHandlerAutowrap(t *testing.T) {
	term := New(WithSize(10, 24))
	term.WriteString("XXXXXXXXXXY")

	line0, _ := term.GetLine(0)
	if got := line0.TranslateToString(true, 0, line0.Len()); got != "XXXXXXXXXX" {
		t.Fatalf("line 0 = %q, want %q", got, "XXXXXXXXXX")
	}
	if line0.Wrapped() {
		t.Fatalf("line 0 wrapped = true, want false")
	}

	line1, _ := term.GetLine(1)
	if line1.Get(0).Content() != "Y" {
		t.Fatalf("line 1 col 0 = %q, want %q", line1.Get(0).Content(), "Y")
	}
	if !line1.Wrapped() {
		t.Fatalf("line 1 wrapped = false, want true")
	}

	x, y := term.CursorPosition()
	if x != 1 || y != 1 {
		t.Fatalf("cursor = (%d,%d), want (1,1)", x, y)
	}
}

func TestInputHandlerSGRThenPrint(t *testing.T) {
	term := New(WithSize(10, 24))
	term.WriteString("\x1b[1;3;4;31mX")

	line, _ := term.GetLine(0)
	cell := line.Get(0)
	if cell.Content() != "X" {
		t.Fatalf("cell content = %q, want %q", cell.Content(), "X")
	}
	a := cell.Attr()
	if !a.HasFlag(AttrBold) || !a.HasFlag(AttrItalic) || !a.HasFlag(AttrUnderline) {
		t.Fatalf("attr flags missing: bold=%v italic=%v underline=%v",
			a.HasFlag(AttrBold), a.HasFlag(AttrItalic), a.HasFlag(AttrUnderline))
	}
	if a.FgMode() != ColorModePalette || a.FgValue() != 1 {
		t.Fatalf("fg = mode %v value %v, want palette 1", a.FgMode(), a.FgValue())
	}
}

func TestInputHandlerDSRCursorPosition(t *testing.T) {
	term := New(WithSize(80, 24))
	var got []byte
	term.OnEvent(func(e Event) {
		if d, ok := e.(DataReceivedEvent); ok {
			got = d.Data
		}
	})

	term.WriteString("\x1b[6;11H") // CUP to row 6, col 11 -> (x=10, y=5)
	term.WriteString("\x1b[6n")

	want := "\x1b[6;11R"
	if string(got) != want {
		t.Fatalf("DSR reply = %q, want %q", got, want)
	}
}

func TestInputHandlerScrollIntoScrollback(t *testing.T) {
	term := New(WithSize(80, 5), WithScrollback(100))
	for i := 0; i < 10; i++ {
		term.WriteString("L" + strconv.Itoa(i) + "\r\n")
	}

	line0, _ := term.GetLine(0)
	if got := line0.TranslateToString(true, 0, line0.Len()); got != "L0" {
		t.Fatalf("line 0 = %q, want %q", got, "L0")
	}

	// 4 line feeds move the cursor down to row 4, the other 6 scroll:
	// yBase is 6 and the cursor sits on absolute row 10.
	cursorLine, _ := term.GetLine(10)
	if got := cursorLine.TranslateToString(true, 0, cursorLine.Len()); got != "" {
		t.Fatalf("line 10 = %q, want empty", got)
	}
}

func TestInputHandlerDeleteCharsWithBCE(t *testing.T) {
	term := New(WithSize(20, 24))
	term.WriteString("XXXXXXXXXXXXXXXXXXXX") // 20 X's
	term.WriteString("\x1b[44m")              // blue background
	term.WriteString("\x1b[1;6H")             // cursor to col 5 (0-based)
	term.WriteString("\x1b[3P")               // DCH 3

	line, _ := term.GetLine(0)
	for i := 0; i < 5; i++ {
		if line.Get(i).Content() != "X" {
			t.Fatalf("col %d = %q, want X", i, line.Get(i).Content())
		}
	}
	for i := 5; i <= 16; i++ {
		if line.Get(i).Content() != "X" {
			t.Fatalf("col %d = %q, want X (shifted)", i, line.Get(i).Content())
		}
	}
	for i := 17; i <= 19; i++ {
		c := line.Get(i)
		if c.Content() != " " {
			t.Fatalf("col %d content = %q, want space", i, c.Content())
		}
		if c.Attr().BgMode() != ColorModePalette || c.Attr().BgValue() != 4 {
			t.Fatalf("col %d bg = mode %v value %v, want palette 4", i, c.Attr().BgMode(), c.Attr().BgValue())
		}
	}
}

func TestInputHandlerAltBufferCursorRoundTrip(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("\x1b[11;16H") // row 11 col 16 -> (x=15, y=10)
	term.WriteString("\x1b[?1049h")

	term.WriteString("\x1b[1;1H") // home, in alt buffer

	term.WriteString("\x1b[?1049l")

	x, y := term.CursorPosition()
	if x != 15 || y != 10 {
		t.Fatalf("cursor after restore = (%d,%d), want (15,10)", x, y)
	}
	if term.ActiveBuffer() != BufferNormal {
		t.Fatalf("active buffer = %v, want normal", term.ActiveBuffer())
	}
}

func TestInputHandlerDECSCUSR(t *testing.T) {
	term := New(WithSize(80, 24))
	var fired bool
	var style CursorStyle
	var blink bool
	term.OnEvent(func(e Event) {
		if ev, ok := e.(CursorStyleChangedEvent); ok {
			fired = true
			style, blink = ev.Style, ev.Blink
		}
	})

	term.WriteString("\x1b[6 q")

	gotStyle, gotBlink := term.CursorStyle()
	if gotStyle != CursorStyleSteadyBar || gotBlink != false {
		t.Fatalf("cursor style = (%v, blink=%v), want (Bar, blink=false)", gotStyle, gotBlink)
	}
	if !fired || style != CursorStyleSteadyBar || blink != false {
		t.Fatalf("CursorStyleChanged not fired with expected values")
	}
}

func TestInputHandlerMouseSGR(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("\x1b[?1000h\x1b[?1006h")

	down := term.EncodeMouse(MouseButtonLeft, 5, 10, MouseDown, 0)
	if string(down) != "\x1b[<0;6;11M" {
		t.Fatalf("mouse down = %q, want %q", down, "\x1b[<0;6;11M")
	}
	up := term.EncodeMouse(MouseButtonLeft, 5, 10, MouseUp, 0)
	if string(up) != "\x1b[<0;6;11m" {
		t.Fatalf("mouse up = %q, want %q", up, "\x1b[<0;6;11m")
	}
}

func TestInputHandlerKeyWithModifiers(t *testing.T) {
	term := New(WithSize(80, 24))

	got := term.EncodeKey(KeyUp, ModCtrl|ModAlt)
	if string(got) != "\x1b[1;7A" {
		t.Fatalf("EncodeKey(Up, Ctrl|Alt) = %q, want %q", got, "\x1b[1;7A")
	}

	gotChar := term.EncodeChar('a', ModCtrl|ModAlt)
	if string(gotChar) != "\x1b\x01" {
		t.Fatalf("EncodeChar('a', Ctrl|Alt) = %q, want %q", gotChar, "\x1b\x01")
	}
}

func TestInputHandlerInsertCharsShiftsRight(t *testing.T) {
	term := New(WithSize(10, 24))
	term.WriteString("ABCDE")
	term.WriteString("\x1b[1;1H")
	term.WriteString("\x1b[2@")

	line, _ := term.GetLine(0)
	if line.Get(0).Content() != " " || line.Get(1).Content() != " " {
		t.Fatalf("inserted cells not blank: %q %q", line.Get(0).Content(), line.Get(1).Content())
	}
	if line.Get(2).Content() != "A" || line.Get(6).Content() != "E" {
		t.Fatalf("shifted content wrong: col2=%q col6=%q", line.Get(2).Content(), line.Get(6).Content())
	}
}

func TestInputHandlerEraseDisplayScrollback(t *testing.T) {
	term := New(WithSize(80, 5), WithScrollback(100))
	for i := 0; i < 10; i++ {
		term.WriteString("L" + strconv.Itoa(i) + "\r\n")
	}
	term.WriteString("\x1b[3J")

	matches := term.SearchScrollback("L0")
	if len(matches) != 0 {
		t.Fatalf("scrollback not erased: found %v", matches)
	}

	visible := term.Search("L9")
	if len(visible) == 0 {
		t.Fatalf("CSI 3J erased the visible screen, want it left intact")
	}
}

func TestInputHandlerOSCTitleAndHyperlink(t *testing.T) {
	term := New(WithSize(80, 24))
	var title string
	var link HyperlinkChangedEvent
	term.OnEvent(func(e Event) {
		switch ev := e.(type) {
		case TitleChangedEvent:
			title = ev.Title
		case HyperlinkChangedEvent:
			link = ev
		}
	})

	term.WriteString("\x1b]0;my title\x07")
	if title != "my title" {
		t.Fatalf("title = %q, want %q", title, "my title")
	}

	term.WriteString("\x1b]8;id=abc;https://example.com\x07")
	if link.URL != "https://example.com" || link.ID != "abc" {
		t.Fatalf("hyperlink = %+v", link)
	}
}

func TestInputHandlerResetRestoresDefaults(t *testing.T) {
	term := New(WithSize(80, 24))
	term.WriteString("\x1b[1m\x1b[?1049h\x1b[?25l")
	term.WriteString("\x1bc")

	if term.ActiveBuffer() != BufferNormal {
		t.Fatalf("active buffer after RIS = %v, want normal", term.ActiveBuffer())
	}
	if !term.CursorVisible() {
		t.Fatalf("cursor visible after RIS = false, want true")
	}
}
