package vtcore

import "testing"

func TestDefaultAttribute(t *testing.T) {
	a := DefaultAttribute()
	if a.FgValue() != DefaultFgIndex || a.FgMode() != ColorModePalette {
		t.Fatalf("default fg = mode %d value %d", a.FgMode(), a.FgValue())
	}
	if a.BgValue() != DefaultBgIndex {
		t.Fatalf("default bg = %d, want %d", a.BgValue(), DefaultBgIndex)
	}
	if a.ext != 0 {
		t.Fatalf("default ext = %d, want 0", a.ext)
	}
}

func TestAttributeFlags(t *testing.T) {
	a := DefaultAttribute().WithFlag(AttrBold).WithFlag(AttrUnderline)
	if !a.HasFlag(AttrBold) || !a.HasFlag(AttrUnderline) {
		t.Fatalf("expected bold+underline set")
	}
	if a.HasFlag(AttrItalic) {
		t.Fatalf("italic should not be set")
	}
	a = a.WithoutFlag(AttrBold)
	if a.HasFlag(AttrBold) {
		t.Fatalf("bold should be cleared")
	}
	if !a.HasFlag(AttrUnderline) {
		t.Fatalf("underline should remain set")
	}
}

func TestAttributeColor(t *testing.T) {
	a := DefaultAttribute().WithFg(ColorModePalette, 1)
	if a.FgValue() != 1 || a.FgMode() != ColorModePalette {
		t.Fatalf("fg = mode %d value %d", a.FgMode(), a.FgValue())
	}
	rgb := uint32(0x10<<16 | 0x20<<8 | 0x30)
	a = a.WithBg(ColorModeRGB, rgb)
	if a.BgMode() != ColorModeRGB || a.BgValue() != rgb {
		t.Fatalf("bg rgb = mode %d value %x", a.BgMode(), a.BgValue())
	}
}

func TestAttributeColorClampsTo25Bits(t *testing.T) {
	a := DefaultAttribute().WithFg(ColorModeRGB, 0xFFFFFFFF)
	if a.FgValue() != 0xFFFFFFFF&colorValueMask {
		t.Fatalf("fg value not clamped: %x", a.FgValue())
	}
}

func TestAttributeEquality(t *testing.T) {
	a := DefaultAttribute().WithFlag(AttrBold)
	b := DefaultAttribute().WithFlag(AttrBold)
	c := DefaultAttribute().WithFlag(AttrItalic)

	if !a.Equal(b) {
		t.Fatalf("a and b should be equal")
	}
	if a.Hash() != b.Hash() {
		t.Fatalf("equal attributes must hash equal")
	}
	if a.Equal(c) {
		t.Fatalf("a and c should not be equal")
	}
}

func TestAttributeReset(t *testing.T) {
	a := DefaultAttribute().WithFlag(AttrBold).WithFg(ColorModePalette, 3)
	a = a.Reset()
	if !a.Equal(DefaultAttribute()) {
		t.Fatalf("reset did not restore default attribute")
	}
}
