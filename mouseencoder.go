package vtcore

import "fmt"

// MouseTrackingMode selects which mouse events are reported.
type MouseTrackingMode int

const (
	MouseTrackingNone MouseTrackingMode = iota
	MouseTrackingX10
	MouseTrackingVT200
	MouseTrackingBtnEvent
	MouseTrackingAnyEvent
)

// MouseEncoding selects the wire format mouse reports use.
type MouseEncoding int

const (
	MouseEncodingDefault MouseEncoding = iota
	MouseEncodingUTF8
	MouseEncodingSGR
	MouseEncodingURXVT
)

// MouseButton identifies which button a press/release/drag event names.
// Motion carries no button.
type MouseButton int

const (
	MouseButtonLeft MouseButton = iota
	MouseButtonMiddle
	MouseButtonRight
	MouseButtonNone
)

// MouseEventType is the kind of mouse activity being reported.
type MouseEventType int

const (
	MouseDown MouseEventType = iota
	MouseUp
	MouseMotion
	MouseWheelUp
	MouseWheelDown
)

// MouseEncoder turns a mouse event into the wire byte sequence for the
// current tracking mode and encoding.
type MouseEncoder struct {
	Tracking MouseTrackingMode
	Encoding MouseEncoding
}

func (e MouseEncoder) allowed(ev MouseEventType, btn MouseButton) bool {
	switch e.Tracking {
	case MouseTrackingNone:
		return false
	case MouseTrackingX10:
		return ev == MouseDown
	case MouseTrackingVT200:
		return ev == MouseDown || ev == MouseUp || ev == MouseWheelUp || ev == MouseWheelDown
	case MouseTrackingBtnEvent:
		return ev != MouseMotion || btn != MouseButtonNone
	case MouseTrackingAnyEvent:
		return true
	}
	return false
}

// Encode returns the wire bytes for the event, or nil if the current
// tracking mode does not report it.
func (e MouseEncoder) Encode(btn MouseButton, x, y int, ev MouseEventType, mods Modifiers) []byte {
	if !e.allowed(ev, btn) {
		return nil
	}
	cb := e.buttonByte(btn, ev, mods)
	cx, cy := x+1, y+1

	switch e.Encoding {
	case MouseEncodingSGR:
		final := byte('M')
		if ev == MouseUp {
			final = 'm'
		}
		return []byte(fmt.Sprintf("\x1b[<%d;%d;%d%c", cb, cx, cy, final))
	case MouseEncodingURXVT:
		return []byte(fmt.Sprintf("\x1b[%d;%d;%dM", cb+32, cx, cy))
	case MouseEncodingUTF8:
		cxb, cyb := clampMouseCoord(cx+32), clampMouseCoord(cy+32)
		out := []byte{0x1b, '[', 'M', byte(cb + 32)}
		out = append(out, []byte(string(rune(cxb)))...)
		out = append(out, []byte(string(rune(cyb)))...)
		return out
	default:
		cxb, cyb := clampMouseCoord(cx+32), clampMouseCoord(cy+32)
		return []byte{0x1b, '[', 'M', byte(cb + 32), byte(cxb), byte(cyb)}
	}
}

func clampMouseCoord(v int) int {
	if v < 32 {
		return 32
	}
	if v > 255 {
		return 255
	}
	return v
}

func (e MouseEncoder) buttonByte(btn MouseButton, ev MouseEventType, mods Modifiers) int {
	var cb int
	switch ev {
	case MouseWheelUp:
		cb = 64
	case MouseWheelDown:
		cb = 65
	case MouseMotion:
		cb = 32
		if btn != MouseButtonNone {
			cb += int(btn)
		} else {
			cb += 3
		}
	case MouseUp:
		if e.Encoding == MouseEncodingSGR || e.Encoding == MouseEncodingURXVT {
			cb = int(btn)
		} else {
			cb = 3
		}
	case MouseDown:
		cb = int(btn)
	}
	if mods.has(ModShift) {
		cb += 4
	}
	if mods.has(ModAlt) {
		cb += 8
	}
	if mods.has(ModCtrl) {
		cb += 16
	}
	return cb
}

// EncodeFocusEvent returns the focus-in or focus-out byte sequence.
func EncodeFocusEvent(focused bool) []byte {
	if focused {
		return []byte("\x1b[I")
	}
	return []byte("\x1b[O")
}
