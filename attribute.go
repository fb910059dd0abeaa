package vtcore

// ColorMode selects how the low 25 bits of an fg/bg word are interpreted.
type ColorMode uint8

const (
	// ColorModePalette treats the value as a palette index 0..255; 256 is
	// the default foreground index, 257 the default background index.
	ColorModePalette ColorMode = 0
	// ColorModeRGB treats the value as a packed R<<16|G<<8|B triple.
	ColorModeRGB ColorMode = 1
)

// Attribute flags, packed into the low bits of the ext word.
const (
	AttrBold uint32 = 1 << iota
	AttrDim
	AttrItalic
	AttrUnderline
	AttrBlink
	AttrInverse
	AttrInvisible
	AttrStrikethrough
	AttrOverline
)

const (
	// DefaultFgIndex is the palette index meaning "use the default foreground".
	DefaultFgIndex uint32 = 256
	// DefaultBgIndex is the palette index meaning "use the default background".
	DefaultBgIndex uint32 = 257

	colorValueMask uint32 = 0x01FFFFFF // low 25 bits
	colorModeShift       = 25
)

// Attribute is a packed 12-byte style value: fg, bg, and ext flag words.
// Two Attributes are equal iff all three words are equal.
type Attribute struct {
	fg  uint32
	bg  uint32
	ext uint32
}

// DefaultAttribute returns the zero-value style: default fg/bg, no flags.
func DefaultAttribute() Attribute {
	return Attribute{fg: DefaultFgIndex, bg: DefaultBgIndex, ext: 0}
}

func packColor(mode ColorMode, value uint32) uint32 {
	return (value & colorValueMask) | (uint32(mode) << colorModeShift)
}

// FgMode returns the colour mode of the foreground word.
func (a Attribute) FgMode() ColorMode { return ColorMode(a.fg >> colorModeShift) }

// FgValue returns the low 25 bits of the foreground word.
func (a Attribute) FgValue() uint32 { return a.fg & colorValueMask }

// BgMode returns the colour mode of the background word.
func (a Attribute) BgMode() ColorMode { return ColorMode(a.bg >> colorModeShift) }

// BgValue returns the low 25 bits of the background word.
func (a Attribute) BgValue() uint32 { return a.bg & colorValueMask }

// WithFg returns a copy with the foreground set to value under mode.
func (a Attribute) WithFg(mode ColorMode, value uint32) Attribute {
	a.fg = packColor(mode, value)
	return a
}

// WithBg returns a copy with the background set to value under mode.
func (a Attribute) WithBg(mode ColorMode, value uint32) Attribute {
	a.bg = packColor(mode, value)
	return a
}

// WithDefaultFg returns a copy whose foreground is the default colour.
func (a Attribute) WithDefaultFg() Attribute {
	return a.WithFg(ColorModePalette, DefaultFgIndex)
}

// WithDefaultBg returns a copy whose background is the default colour.
func (a Attribute) WithDefaultBg() Attribute {
	return a.WithBg(ColorModePalette, DefaultBgIndex)
}

// HasFlag reports whether the given flag bit is set.
func (a Attribute) HasFlag(flag uint32) bool { return a.ext&flag != 0 }

// WithFlag returns a copy with flag set.
func (a Attribute) WithFlag(flag uint32) Attribute {
	a.ext |= flag
	return a
}

// WithoutFlag returns a copy with flag cleared.
func (a Attribute) WithoutFlag(flag uint32) Attribute {
	a.ext &^= flag
	return a
}

// Reset returns the default attribute (SGR 0).
func (a Attribute) Reset() Attribute { return DefaultAttribute() }

// Equal reports bitwise equality of all three words.
func (a Attribute) Equal(b Attribute) bool {
	return a.fg == b.fg && a.bg == b.bg && a.ext == b.ext
}

// Hash derives a hash from all three words. Equal attributes always hash equal.
func (a Attribute) Hash() uint64 {
	h := uint64(a.fg)
	h = h*1099511628211 ^ uint64(a.bg)
	h = h*1099511628211 ^ uint64(a.ext)
	return h
}

// Clone returns a copy of a. Attribute is a value type, so this is a no-op
// beyond the implicit copy; it exists for symmetry with Cell/Line.Clone.
func (a Attribute) Clone() Attribute { return a }
