package vtcore

// BufferKind identifies which of the two screens is active.
type BufferKind int

const (
	BufferNormal BufferKind = iota
	BufferAlternate
)

// WindowInfoRequestKind identifies which window-manipulation query a
// WindowInfoRequested event is asking the embedder to answer.
type WindowInfoRequestKind int

const (
	WindowInfoState WindowInfoRequestKind = iota
	WindowInfoPosition
	WindowInfoSizePixels
	WindowInfoScreenSizePixels
	WindowInfoCellSizePixels
)

// WindowInfoRequest carries a window-manipulation query that only the
// embedder (owning the actual window) can answer. The handler fills in
// the reply fields it has meaningful values for and sets Handled=true to
// authorise InputHandler to send the corresponding reply.
type WindowInfoRequest struct {
	Kind      WindowInfoRequestKind
	X, Y      int
	W, H      int
	Iconified bool
	Handled   bool
}

// Event is the common interface of every observable event the core emits.
// All events are delivered synchronously, in generation order, from
// within the Write/EncodeKey/EncodeMouse/EncodeFocus call that produced
// them.
type Event interface {
	eventMarker()
}

type baseEvent struct{}

func (baseEvent) eventMarker() {}

// DataReceivedEvent carries bytes the core wants written back to the
// host (DSR/DA replies, OSC query responses, ...).
type DataReceivedEvent struct {
	baseEvent
	Data []byte
}

// TitleChangedEvent fires on OSC 0/2.
type TitleChangedEvent struct {
	baseEvent
	Title string
}

// DirectoryChangedEvent fires on OSC 7.
type DirectoryChangedEvent struct {
	baseEvent
	Path string
}

// HyperlinkChangedEvent fires on OSC 8. URL and ID are empty when the
// hyperlink is cleared.
type HyperlinkChangedEvent struct {
	baseEvent
	URL string
	ID  string
}

// BellRangEvent fires on BEL (0x07).
type BellRangEvent struct{ baseEvent }

// ResizedEvent fires after Terminal.Resize actually changes dimensions.
type ResizedEvent struct {
	baseEvent
	Cols, Rows int
}

// ScrolledEvent fires whenever the active screen's viewport or active
// area shifts.
type ScrolledEvent struct{ baseEvent }

// LineFedEvent fires on every line feed (LF/VT/FF/IND/NEL).
type LineFedEvent struct{ baseEvent }

// CursorMovedEvent fires after a printed glyph advances the cursor. Other
// cursor movement (CUP and the other CSI moves, CR, LF, BS, HT, DECRC) does
// not emit it.
type CursorMovedEvent struct {
	baseEvent
	X, Y int
}

// CursorStyleChangedEvent fires on DECSCUSR when style or blink changes.
type CursorStyleChangedEvent struct {
	baseEvent
	Style CursorStyle
	Blink bool
}

// BufferChangedEvent fires on buffer switch (DECSET 1047/1049, or
// Terminal.SwitchToAltBuffer/SwitchToNormalBuffer).
type BufferChangedEvent struct {
	baseEvent
	Active BufferKind
}

// Window manipulation events (CSI t family).
type WindowMovedEvent struct {
	baseEvent
	X, Y int
}
type WindowResizedEvent struct {
	baseEvent
	W, H int
}
type WindowMinimizedEvent struct{ baseEvent }
type WindowMaximizedEvent struct{ baseEvent }
type WindowRestoredEvent struct{ baseEvent }
type WindowRaisedEvent struct{ baseEvent }
type WindowLoweredEvent struct{ baseEvent }
type WindowRefreshedEvent struct{ baseEvent }
type WindowFullscreenedEvent struct{ baseEvent }

// WindowInfoRequestedEvent fires for query-style window operations (get
// position/size/state); Request must be filled in and Handled set by a
// listener before InputHandler will emit the corresponding reply.
type WindowInfoRequestedEvent struct {
	baseEvent
	Request *WindowInfoRequest
}

// eventBus is a simple ordered list of listener closures, matching the
// "vector of listener closures" design note rather than one interface per
// concern.
type eventBus struct {
	listeners []func(Event)
}

// Subscribe registers fn to receive every future event and returns a
// function that removes it.
func (b *eventBus) Subscribe(fn func(Event)) func() {
	b.listeners = append(b.listeners, fn)
	idx := len(b.listeners) - 1
	return func() {
		if idx < len(b.listeners) {
			b.listeners[idx] = nil
		}
	}
}

func (b *eventBus) emit(e Event) {
	for _, fn := range b.listeners {
		if fn != nil {
			fn(e)
		}
	}
}
