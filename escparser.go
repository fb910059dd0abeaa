package vtcore

import "unicode/utf8"

// ParserSink receives the typed events the byte-level state machine
// produces. Implementations must not re-enter EscParser.Parse from within
// a callback.
type ParserSink interface {
	Print(r rune)
	Execute(code byte)
	Csi(identifier string, params *Params)
	Esc(final byte, collected []byte)
	Osc(payload []byte)
	Dcs(identifier string, params *Params, data []byte)
}

type parserState int

const (
	stateGround parserState = iota
	stateEscape
	stateEscapeIntermediate
	stateCsiEntry
	stateCsiParam
	stateCsiIntermediate
	stateCsiIgnore
	stateOscString
	stateSosPmApcString
	stateDcsEntry
	stateDcsParam
	stateDcsIgnore
	stateDcsPassthrough
)

// EscParser is a byte-level state machine implementing Paul Williams'
// VT500 parser model. It is total over any byte stream: malformed
// sequences are absorbed and the machine returns to Ground.
type EscParser struct {
	sink ParserSink

	state     parserState
	collected []byte
	params    *Params
	subActive bool

	oscBuf   []byte
	dcsBuf   []byte
	dcsFinal byte

	utf8Buf []byte
}

// NewEscParser returns a parser that dispatches to sink.
func NewEscParser(sink ParserSink) *EscParser {
	return &EscParser{sink: sink, params: NewParams()}
}

// Reset returns the parser to Ground and discards any in-flight sequence.
func (p *EscParser) Reset() {
	p.state = stateGround
	p.collected = p.collected[:0]
	p.params.Reset()
	p.subActive = false
	p.oscBuf = p.oscBuf[:0]
	p.dcsBuf = p.dcsBuf[:0]
	p.utf8Buf = p.utf8Buf[:0]
}

// Parse feeds bytes through the state machine. Parsing the same stream in
// one call or split across many calls produces identical observable
// effects: all state persists between calls.
func (p *EscParser) Parse(data []byte) {
	for _, b := range data {
		p.step(b)
	}
}

func (p *EscParser) step(b byte) {
	switch p.state {
	case stateGround:
		p.stepGround(b)
	case stateEscape:
		p.stepEscape(b)
	case stateEscapeIntermediate:
		p.stepEscapeIntermediate(b)
	case stateCsiEntry:
		p.stepCsiEntry(b)
	case stateCsiParam:
		p.stepCsiParam(b)
	case stateCsiIntermediate:
		p.stepCsiIntermediate(b)
	case stateCsiIgnore:
		p.stepCsiIgnore(b)
	case stateOscString:
		p.stepOscString(b)
	case stateSosPmApcString:
		p.stepSosPmApcString(b)
	case stateDcsEntry:
		p.stepDcsEntry(b)
	case stateDcsParam:
		p.stepDcsParam(b)
	case stateDcsIgnore:
		p.stepDcsIgnore(b)
	case stateDcsPassthrough:
		p.stepDcsPassthrough(b)
	}
}

func isC0(b byte) bool { return b <= 0x1F || (b >= 0x80 && b <= 0x9F) }
func isIntermediate(b byte) bool { return b >= 0x20 && b <= 0x2F }
func isFinal(b byte) bool        { return b >= 0x40 && b <= 0x7E }

// isEscFinal is the dispatch range for the plain Escape/EscapeIntermediate
// states, which is wider than CSI/DCS's: it starts at 0x30 rather than
// 0x40, so bare ESC sequences like ESC 7 (DECSC) and ESC 8 (DECRC) dispatch
// as final bytes rather than being swallowed.
func isEscFinal(b byte) bool    { return b >= 0x30 && b <= 0x7E }
func isParamMarker(b byte) bool { return b >= 0x3C && b <= 0x3F }
func isDigit(b byte) bool       { return b >= 0x30 && b <= 0x39 }

func (p *EscParser) resetForEntry() {
	p.collected = p.collected[:0]
	p.params.Reset()
	p.subActive = false
}

func (p *EscParser) stepGround(b byte) {
	if len(p.utf8Buf) > 0 {
		p.utf8Buf = append(p.utf8Buf, b)
		if !utf8.FullRune(p.utf8Buf) {
			if len(p.utf8Buf) >= utf8.UTFMax {
				p.utf8Buf = p.utf8Buf[:0]
			}
			return
		}
		r, _ := utf8.DecodeRune(p.utf8Buf)
		p.utf8Buf = p.utf8Buf[:0]
		p.sink.Print(r)
		return
	}
	if b == 0x1B {
		p.state = stateEscape
		return
	}
	if isC0(b) {
		p.sink.Execute(b)
		return
	}
	if b < 0x80 {
		p.sink.Print(rune(b))
		return
	}
	p.utf8Buf = append(p.utf8Buf[:0], b)
	if utf8.FullRune(p.utf8Buf) {
		r, _ := utf8.DecodeRune(p.utf8Buf)
		p.utf8Buf = p.utf8Buf[:0]
		p.sink.Print(r)
	}
}

func (p *EscParser) stepEscape(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		p.sink.Execute(b)
		return
	}
	switch b {
	case '[':
		p.resetForEntry()
		p.state = stateCsiEntry
		return
	case ']':
		p.oscBuf = p.oscBuf[:0]
		p.state = stateOscString
		return
	case 'P':
		p.resetForEntry()
		p.dcsBuf = p.dcsBuf[:0]
		p.state = stateDcsEntry
		return
	case 'X', '^', '_':
		p.state = stateSosPmApcString
		return
	}
	if isIntermediate(b) {
		p.collected = append(p.collected[:0], b)
		p.state = stateEscapeIntermediate
		return
	}
	if isEscFinal(b) {
		final := b
		collected := append([]byte(nil), p.collected...)
		p.state = stateGround
		p.sink.Esc(final, collected)
		return
	}
	p.state = stateGround
}

func (p *EscParser) stepEscapeIntermediate(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		p.sink.Execute(b)
		return
	}
	if isIntermediate(b) {
		p.collected = append(p.collected, b)
		return
	}
	if isEscFinal(b) {
		final := b
		collected := append([]byte(nil), p.collected...)
		p.state = stateGround
		p.sink.Esc(final, collected)
		return
	}
	p.state = stateGround
}

func (p *EscParser) paramDigit(d byte) {
	if p.params.Len() == 0 {
		p.params.Add(ParamAbsent)
	}
	if p.subActive {
		cur := p.lastSub()
		if cur < 0 {
			cur = 0
		}
		p.params.UpdateLastSub(cur*10 + int32(d-'0'))
		return
	}
	cur := p.params.Get(p.params.Len()-1, 0)
	if cur < 0 {
		cur = 0
	}
	p.params.UpdateLast(cur*10 + int32(d-'0'))
}

func (p *EscParser) lastSub() int32 {
	subs := p.params.GetSubs(p.params.Len() - 1)
	if len(subs) == 0 {
		return ParamAbsent
	}
	return subs[len(subs)-1]
}

func (p *EscParser) paramSemicolon() {
	p.subActive = false
	if p.params.Len() == 0 {
		// a leading ';' means the first parameter was omitted.
		p.params.Add(ParamAbsent)
	}
	p.params.Add(0)
}

func (p *EscParser) paramColon() {
	p.params.AddSub(ParamAbsent)
	p.subActive = true
}

// entry/param/intermediate/ignore handling shared between CSI and DCS.

func (p *EscParser) stepCsiEntry(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		p.sink.Execute(b)
		return
	}
	switch {
	case isParamMarker(b):
		p.collected = append(p.collected, b)
		p.state = stateCsiParam
	case isDigit(b):
		p.paramDigit(b)
		p.state = stateCsiParam
	case b == ';':
		p.paramSemicolon()
		p.state = stateCsiParam
	case b == ':':
		if p.params.Len() == 0 {
			p.params.Add(ParamAbsent)
		}
		p.paramColon()
		p.state = stateCsiParam
	case isIntermediate(b):
		p.collected = append(p.collected, b)
		p.state = stateCsiIntermediate
	case isFinal(b):
		p.dispatchCsi(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *EscParser) stepCsiParam(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		p.sink.Execute(b)
		return
	}
	switch {
	case isDigit(b):
		p.paramDigit(b)
	case b == ';':
		p.paramSemicolon()
	case b == ':':
		p.paramColon()
	case isParamMarker(b):
		p.state = stateCsiIgnore
	case isIntermediate(b):
		p.collected = append(p.collected, b)
		p.state = stateCsiIntermediate
	case isFinal(b):
		p.dispatchCsi(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *EscParser) stepCsiIntermediate(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		p.sink.Execute(b)
		return
	}
	switch {
	case isIntermediate(b):
		p.collected = append(p.collected, b)
	case isFinal(b):
		p.dispatchCsi(b)
	default:
		p.state = stateCsiIgnore
	}
}

func (p *EscParser) stepCsiIgnore(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		p.sink.Execute(b)
		return
	}
	if isFinal(b) {
		p.state = stateGround
		return
	}
}

func (p *EscParser) dispatchCsi(final byte) {
	identifier := string(p.collected) + string(final)
	params := p.params
	p.state = stateGround
	p.sink.Csi(identifier, params)
}

func (p *EscParser) stepOscString(b byte) {
	switch b {
	case 0x1B:
		payload := append([]byte(nil), p.oscBuf...)
		p.state = stateEscape
		p.sink.Osc(payload)
		return
	case 0x07:
		payload := append([]byte(nil), p.oscBuf...)
		p.state = stateGround
		p.sink.Osc(payload)
		return
	}
	if b >= 0x20 {
		p.oscBuf = append(p.oscBuf, b)
	}
	// other controls within OSC are ignored.
}

func (p *EscParser) stepSosPmApcString(b byte) {
	switch b {
	case 0x1B:
		p.state = stateEscape
	case 0x07:
		p.state = stateGround
	}
	// payload bytes are discarded: the public event surface has no sink
	// method for SOS/PM/APC.
}

func (p *EscParser) stepDcsEntry(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		return
	}
	switch {
	case isParamMarker(b):
		p.collected = append(p.collected, b)
		p.state = stateDcsParam
	case isDigit(b):
		p.paramDigit(b)
		p.state = stateDcsParam
	case b == ';':
		p.paramSemicolon()
		p.state = stateDcsParam
	case b == ':':
		if p.params.Len() == 0 {
			p.params.Add(ParamAbsent)
		}
		p.paramColon()
		p.state = stateDcsParam
	case isIntermediate(b):
		p.collected = append(p.collected, b)
	case isFinal(b):
		p.dcsFinal = b
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *EscParser) stepDcsParam(b byte) {
	if isC0(b) {
		if b == 0x1B {
			p.resetForEntry()
			p.state = stateEscape
			return
		}
		return
	}
	switch {
	case isDigit(b):
		p.paramDigit(b)
	case b == ';':
		p.paramSemicolon()
	case b == ':':
		p.paramColon()
	case isParamMarker(b):
		p.state = stateDcsIgnore
	case isIntermediate(b):
		p.collected = append(p.collected, b)
	case isFinal(b):
		p.dcsFinal = b
		p.state = stateDcsPassthrough
	default:
		p.state = stateDcsIgnore
	}
}

func (p *EscParser) stepDcsIgnore(b byte) {
	switch b {
	case 0x1B:
		p.resetForEntry()
		p.state = stateEscape
	case 0x9C:
		p.state = stateGround
	}
}

func (p *EscParser) stepDcsPassthrough(b byte) {
	switch b {
	case 0x1B:
		p.finishDcs()
		p.state = stateEscape
		return
	case 0x9C:
		p.finishDcs()
		p.state = stateGround
		return
	}
	p.dcsBuf = append(p.dcsBuf, b)
}

func (p *EscParser) finishDcs() {
	identifier := string(p.collected) + string(p.dcsFinal)
	data := append([]byte(nil), p.dcsBuf...)
	params := p.params
	p.sink.Dcs(identifier, params, data)
}
