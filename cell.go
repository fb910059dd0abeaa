package vtcore

import "unicode/utf8"

// Cell is one grid position: a short run of text (one base codepoint plus
// any combining marks), its display width, and its style.
//
// content is empty for the trailing half of a wide pair. A null cell has
// codepoint 0, width 1, and empty content; a space cell has codepoint 0x20,
// width 1, and content " ".
type Cell struct {
	content   string
	width     int
	attr      Attribute
	codepoint rune
}

// NewCell builds a cell from a codepoint, display width, and style.
func NewCell(codepoint rune, width int, attr Attribute) Cell {
	content := ""
	if codepoint != 0 {
		content = string(codepoint)
	}
	return Cell{content: content, width: width, attr: attr, codepoint: codepoint}
}

// NewCellFromString builds a cell from a (possibly multi-codepoint) string;
// the cell's codepoint is the first scalar value in s.
func NewCellFromString(s string, width int, attr Attribute) Cell {
	var cp rune
	if s != "" {
		r, _ := utf8.DecodeRuneInString(s)
		cp = r
	}
	return Cell{content: s, width: width, attr: attr, codepoint: cp}
}

// NullCell returns the zero cell: no glyph, width 1.
func NullCell() Cell {
	return Cell{content: "", width: 1, attr: DefaultAttribute(), codepoint: 0}
}

// SpaceCell returns a cell holding a single space with the given style.
func SpaceCell(attr Attribute) Cell {
	return Cell{content: " ", width: 1, attr: attr, codepoint: 0x20}
}

// SpacerCell returns the width-0 trailing half of a wide cell, carrying attr
// so BCE fills stay consistent across the pair.
func SpacerCell(attr Attribute) Cell {
	return Cell{content: "", width: 0, attr: attr, codepoint: 0}
}

// Content returns the cell's text run.
func (c Cell) Content() string { return c.content }

// Width returns the cell's display width: 0, 1, or 2.
func (c Cell) Width() int { return c.width }

// Attr returns the cell's style.
func (c Cell) Attr() Attribute { return c.attr }

// Codepoint returns the cell's base scalar value (0 for a null cell).
func (c Cell) Codepoint() rune { return c.codepoint }

// WithAttr returns a copy of c with attr replaced.
func (c Cell) WithAttr(attr Attribute) Cell {
	c.attr = attr
	return c
}

// IsNull reports whether this is the zero cell (codepoint 0, width 1).
func (c Cell) IsNull() bool {
	return c.codepoint == 0 && c.width == 1
}

// IsWhitespace reports whether the cell holds only space characters (or is
// the empty spacer half of a wide pair).
func (c Cell) IsWhitespace() bool {
	if c.content == "" {
		return true
	}
	for _, r := range c.content {
		if r != ' ' {
			return false
		}
	}
	return true
}

// Equal compares content, width, and attribute.
func (c Cell) Equal(other Cell) bool {
	return c.content == other.content && c.width == other.width && c.attr.Equal(other.attr)
}

// Clone returns a copy of c. Cell is a value type; provided for symmetry
// with Line/Attribute.
func (c Cell) Clone() Cell { return c }
