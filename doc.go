// Package vtcore implements a headless VT/ANSI terminal emulator: a byte
// stream in, structured cell/cursor/mode state out, no display attached.
//
// # Quick start
//
//	term := vtcore.New(vtcore.WithSize(80, 24))
//	term.WriteString("\x1b[31mHello \x1b[32mWorld\x1b[0m!")
//	fmt.Println(term.LineContent(0)) // "Hello World!"
//
// # Architecture
//
//   - [Terminal]: the façade; owns both screens, the parser, and the
//     key/mouse encoders.
//   - [Screen]: one buffer (normal or alternate): a ring of [Line]s plus
//     cursor and scroll-region state.
//   - [Line]: a fixed-length row of [Cell]s.
//   - [Cell]: one grid position's text, width, and [Attribute].
//   - [EscParser]: the byte-level VT500 state machine; dispatches to
//     Terminal's [ParserSink] methods.
//   - [KeyEncoder] / [MouseEncoder]: translate input events into the wire
//     bytes a host would send.
//
// # Dual buffers
//
// Terminal maintains a normal buffer (with scrollback) and an alternate
// buffer (without). Applications switch between them with CSI ?1047/1049,
// or a caller can drive it directly:
//
//	term.SwitchToAltBuffer()
//	term.ActiveBuffer() // vtcore.BufferAlternate
//
// # Events
//
// Side effects that need to leave the core (replies to send back to the
// host, bells, title changes, resizes, and so on) are delivered through a
// single listener mechanism:
//
//	stop := term.OnEvent(func(e vtcore.Event) {
//	    if d, ok := e.(vtcore.DataReceivedEvent); ok {
//	        ptyWriter.Write(d.Data)
//	    }
//	})
//	defer stop()
//
// Events are delivered synchronously, in generation order, from within the
// Write/EncodeKey/EncodeMouse/EncodeFocus call that produced them.
//
// # Thread safety
//
// Terminal's accessor methods take an internal lock, so a reader on another
// goroutine can safely call them between writes. Write itself is not
// reentrant: it must not be called concurrently with itself, and an event
// listener must not call back into Write from within its callback.
//
// # Selection and search
//
//	term.SetSelection(vtcore.Position{Row: 0, Col: 0}, vtcore.Position{Row: 2, Col: 10})
//	text := term.SelectedText()
//
//	matches := term.Search("error")
//	scrollbackMatches := term.SearchScrollback("error")
//
// # Supported sequences
//
// CUU/CUD/CUF/CUB/CNL/CPL/CHA/CUP/HVP, CHT/CBT, ED/EL/ECH, ICH/DCH/IL/DL,
// SU/SD/DECSTBM, SGR (including 256-colour and truecolor), DECSET/DECRST
// (including the 1047/1048/1049 alternate-screen family), DSR, DECSCUSR,
// the CSI t window-manipulation family, OSC 0/2/4/7/8/10/11/12/52/104, the
// ESC IND/NEL/RI/DECSC/DECRC/RIS family, and the ESC # 3/4/5/6 line
// attributes. ESC # 8 (DECALN) is ignored.
package vtcore
