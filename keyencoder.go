package vtcore

import "fmt"

// Modifiers is a bitmask of held keyboard modifiers.
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModAlt
	ModCtrl
)

func (m Modifiers) has(f Modifiers) bool { return m&f != 0 }

// code returns the xterm modifier parameter: 1 + Shift?1 + Alt?2 + Ctrl?4.
func (m Modifiers) code() int {
	n := 1
	if m.has(ModShift) {
		n += 1
	}
	if m.has(ModAlt) {
		n += 2
	}
	if m.has(ModCtrl) {
		n += 4
	}
	return n
}

// Key names every non-printable key EncodeKey understands.
type Key int

const (
	KeyUp Key = iota
	KeyDown
	KeyRight
	KeyLeft
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyInsert
	KeyDelete
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
	KeyF13
	KeyF14
	KeyF15
	KeyF16
	KeyF17
	KeyF18
	KeyF19
	KeyF20
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace
	KeyKeypad0
	KeyKeypad1
	KeyKeypad2
	KeyKeypad3
	KeyKeypad4
	KeyKeypad5
	KeyKeypad6
	KeyKeypad7
	KeyKeypad8
	KeyKeypad9
	KeyKeypadDecimal
	KeyKeypadEnter
	KeyKeypadAdd
	KeyKeypadSubtract
	KeyKeypadMultiply
	KeyKeypadDivide
)

var arrowFinal = map[Key]byte{KeyUp: 'A', KeyDown: 'B', KeyRight: 'C', KeyLeft: 'D', KeyHome: 'H', KeyEnd: 'F'}

var tildeCode = map[Key]int{
	KeyPageUp: 5, KeyPageDown: 6, KeyInsert: 2, KeyDelete: 3,
	KeyF5: 15, KeyF6: 17, KeyF7: 18, KeyF8: 19, KeyF9: 20, KeyF10: 21, KeyF11: 23, KeyF12: 24,
	KeyF13: 25, KeyF14: 26, KeyF15: 28, KeyF16: 29, KeyF17: 31, KeyF18: 32, KeyF19: 33, KeyF20: 34,
}

var f1to4Final = map[Key]byte{KeyF1: 'P', KeyF2: 'Q', KeyF3: 'R', KeyF4: 'S'}

var keypadDigitFinal = map[Key]byte{
	KeyKeypad0: 'p', KeyKeypad1: 'q', KeyKeypad2: 'r', KeyKeypad3: 's', KeyKeypad4: 't',
	KeyKeypad5: 'u', KeyKeypad6: 'v', KeyKeypad7: 'w', KeyKeypad8: 'x', KeyKeypad9: 'y',
	KeyKeypadDecimal: 'n',
}

var keypadDigitLiteral = map[Key]byte{
	KeyKeypad0: '0', KeyKeypad1: '1', KeyKeypad2: '2', KeyKeypad3: '3', KeyKeypad4: '4',
	KeyKeypad5: '5', KeyKeypad6: '6', KeyKeypad7: '7', KeyKeypad8: '8', KeyKeypad9: '9',
	KeyKeypadDecimal: '.',
}

var keypadOperatorLiteral = map[Key]byte{
	KeyKeypadAdd: '+', KeyKeypadSubtract: '-', KeyKeypadMultiply: '*', KeyKeypadDivide: '/',
}

// Win32KeyEvent carries the fields a Win32-input-mode (DECSET 9001) key
// event reports, mirroring the Windows console's KEY_EVENT_RECORD.
type Win32KeyEvent struct {
	VirtualKey   int
	ScanCode     int
	Char         rune
	KeyDown      bool
	ControlState uint16
	RepeatCount  int
}

// Win32 ControlKeyState bits.
const (
	Win32RightAlt    uint16 = 1
	Win32LeftAlt     uint16 = 2
	Win32RightCtrl   uint16 = 4
	Win32LeftCtrl    uint16 = 8
	Win32Shift       uint16 = 0x10
	Win32NumLock     uint16 = 0x20
	Win32ScrollLock  uint16 = 0x40
	Win32CapsLock    uint16 = 0x80
	Win32EnhancedKey uint16 = 0x100
)

// KeyEncoder turns a named key or literal character, under the current
// modes, into the wire byte sequence a host would send. Win32 input mode
// (DECSET 9001) bypasses this type entirely: an embedder on that platform
// already holds the raw VK/scan-code/char fields and calls
// EncodeWin32KeyEvent directly instead of going through Key/Modifiers.
type KeyEncoder struct {
	AppCursorKeys bool
	AppKeypad     bool
}

// EncodeKey returns the byte sequence for a named key press.
func (e KeyEncoder) EncodeKey(key Key, mods Modifiers) []byte {
	if final, ok := arrowFinal[key]; ok {
		return e.encodeArrowLike(final, mods)
	}
	if n, ok := tildeCode[key]; ok {
		return e.encodeTilde(n, mods)
	}
	if final, ok := f1to4Final[key]; ok {
		return e.encodeSS3(final, mods)
	}
	switch key {
	case KeyEnter:
		return []byte("\r")
	case KeyTab:
		if mods.has(ModShift) {
			return []byte("\x1b[Z")
		}
		return []byte("\t")
	case KeyBackspace:
		return []byte("\x7f")
	case KeyEscape:
		return []byte("\x1b")
	case KeySpace:
		return []byte(" ")
	case KeyKeypadEnter:
		return []byte("\r")
	}
	if final, ok := keypadOperatorLiteral[key]; ok {
		return []byte{final}
	}
	if _, ok := keypadDigitFinal[key]; ok {
		return e.encodeKeypadDigit(key)
	}
	return nil
}

func (e KeyEncoder) encodeArrowLike(final byte, mods Modifiers) []byte {
	if mods != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.code(), final))
	}
	if e.AppCursorKeys {
		return []byte{0x1b, 'O', final}
	}
	return []byte{0x1b, '[', final}
}

// encodeSS3 encodes F1-F4: always SS3 (ESC O <final>) when unmodified,
// regardless of DECCKM — only arrows/Home/End are gated by AppCursorKeys.
func (e KeyEncoder) encodeSS3(final byte, mods Modifiers) []byte {
	if mods != 0 {
		return []byte(fmt.Sprintf("\x1b[1;%d%c", mods.code(), final))
	}
	return []byte{0x1b, 'O', final}
}

func (e KeyEncoder) encodeTilde(n int, mods Modifiers) []byte {
	if mods != 0 {
		return []byte(fmt.Sprintf("\x1b[%d;%d~", n, mods.code()))
	}
	return []byte(fmt.Sprintf("\x1b[%d~", n))
}

func (e KeyEncoder) encodeKeypadDigit(key Key) []byte {
	if e.AppKeypad {
		return []byte{0x1b, 'O', keypadDigitFinal[key]}
	}
	return []byte{keypadDigitLiteral[key]}
}

// EncodeChar returns the byte sequence for a literal character press.
func (e KeyEncoder) EncodeChar(c rune, mods Modifiers) []byte {
	ctrl := mods.has(ModCtrl)
	alt := mods.has(ModAlt)

	var base []byte
	switch {
	case ctrl:
		base = []byte{ctrlByte(c)}
	default:
		base = []byte(string(c))
	}
	if alt {
		return append([]byte{0x1b}, base...)
	}
	return base
}

func ctrlByte(c rune) byte {
	lower := c
	if lower >= 'A' && lower <= 'Z' {
		lower = lower - 'A' + 'a'
	}
	switch lower {
	case ' ', '@':
		return 0x00
	case '[':
		return 0x1b
	case '\\':
		return 0x1c
	case ']':
		return 0x1d
	case '^':
		return 0x1e
	case '_':
		return 0x1f
	case '?':
		return 0x7f
	}
	if lower >= 'a' && lower <= 'z' {
		return byte(lower-'a') + 1
	}
	return byte(c)
}

// EncodeWin32KeyEvent renders a Win32-input-mode key event, per the
// Windows-console-compatible wire format DECSET 9001 selects.
func EncodeWin32KeyEvent(ev Win32KeyEvent) []byte {
	down := 0
	if ev.KeyDown {
		down = 1
	}
	uc := int(ev.Char)
	return []byte(fmt.Sprintf("\x1b[%d;%d;%d;%d;%d;%d_", ev.VirtualKey, ev.ScanCode, uc, down, ev.ControlState, ev.RepeatCount))
}
