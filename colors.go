package vtcore

import "image/color"

// DefaultPalette is the standard 256-color palette: 16 named colors
// (0-15), 216 color cube (16-231), 24 grayscale (232-255).
var DefaultPalette = [256]color.RGBA{
	{0, 0, 0, 255},       // Black
	{205, 49, 49, 255},   // Red
	{13, 188, 121, 255},  // Green
	{229, 229, 16, 255},  // Yellow
	{36, 114, 200, 255},  // Blue
	{188, 63, 188, 255},  // Magenta
	{17, 168, 205, 255},  // Cyan
	{229, 229, 229, 255}, // White

	{102, 102, 102, 255}, // Bright Black
	{241, 76, 76, 255},   // Bright Red
	{35, 209, 139, 255},  // Bright Green
	{245, 245, 67, 255},  // Bright Yellow
	{59, 142, 234, 255},  // Bright Blue
	{214, 112, 214, 255}, // Bright Magenta
	{41, 184, 219, 255},  // Bright Cyan
	{255, 255, 255, 255}, // Bright White
}

func init() {
	i := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				DefaultPalette[i] = color.RGBA{R: uint8(r * 51), G: uint8(g * 51), B: uint8(b * 51), A: 255}
				i++
			}
		}
	}
	for j := 0; j < 24; j++ {
		gray := uint8(8 + j*10)
		DefaultPalette[232+j] = color.RGBA{gray, gray, gray, 255}
	}
}

// DefaultForeground is the default text color (light gray).
var DefaultForeground = color.RGBA{229, 229, 229, 255}

// DefaultBackground is the default background color (black).
var DefaultBackground = color.RGBA{0, 0, 0, 255}

// DefaultCursorColor is the default cursor rendering color.
var DefaultCursorColor = color.RGBA{229, 229, 229, 255}

// ResolveForeground resolves an Attribute's foreground word to concrete
// RGBA, for callers (OSC 10 replies, renderers) that need real color.
func ResolveForeground(a Attribute) color.RGBA {
	return resolveColorWord(a.FgMode(), a.FgValue(), true)
}

// ResolveBackground resolves an Attribute's background word to concrete
// RGBA.
func ResolveBackground(a Attribute) color.RGBA {
	return resolveColorWord(a.BgMode(), a.BgValue(), false)
}

func resolveColorWord(mode ColorMode, value uint32, fg bool) color.RGBA {
	if mode == ColorModeRGB {
		return color.RGBA{
			R: uint8((value >> 16) & 0xFF),
			G: uint8((value >> 8) & 0xFF),
			B: uint8(value & 0xFF),
			A: 255,
		}
	}
	switch value {
	case DefaultFgIndex:
		return DefaultForeground
	case DefaultBgIndex:
		return DefaultBackground
	}
	if value < 256 {
		return DefaultPalette[value]
	}
	if fg {
		return DefaultForeground
	}
	return DefaultBackground
}

// FormatXParseColor renders an RGBA value in the X11 "rgb:RRRR/GGGG/BBBB"
// format OSC 10/11/12/4 replies use, each channel scaled from 8 to 16
// bits by byte repetition.
func FormatXParseColor(c color.RGBA) string {
	const hex = "0123456789abcdef"
	expand := func(v uint8) [4]byte {
		return [4]byte{hex[v>>4], hex[v&0xF], hex[v>>4], hex[v&0xF]}
	}
	r, g, b := expand(c.R), expand(c.G), expand(c.B)
	return "rgb:" + string(r[:]) + "/" + string(g[:]) + "/" + string(b[:])
}
