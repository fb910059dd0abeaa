package vtcore

import "strings"

// LineAttr is the DEC double-width/double-height line attribute.
type LineAttr int

const (
	LineAttrNormal LineAttr = iota
	LineAttrDoubleWidth
	LineAttrDoubleHeightTop
	LineAttrDoubleHeightBottom
)

// Line is a fixed-length row of cells plus the metadata a screen needs to
// reflow and render it: whether it continues the row above (autowrap) and
// its DEC line attribute.
//
// generation is bumped on any mutation a renderer would care about
// (lineAttr changes, cell writes, resize); it stands in for the opaque
// cache token the design notes call for.
type Line struct {
	cells      []Cell
	wrapped    bool
	lineAttr   LineAttr
	generation uint64
}

// NewLine returns a line of cols space cells with the given fill style.
func NewLine(cols int, fill Attribute) Line {
	cells := make([]Cell, cols)
	blank := SpaceCell(fill)
	for i := range cells {
		cells[i] = blank
	}
	return Line{cells: cells}
}

// Len returns the number of cells (== cols).
func (l *Line) Len() int { return len(l.cells) }

// Generation returns the current cache-invalidation token.
func (l *Line) Generation() uint64 { return l.generation }

func (l *Line) touch() { l.generation++ }

// Wrapped reports whether this line continues the one above it.
func (l *Line) Wrapped() bool { return l.wrapped }

// SetWrapped sets the continuation flag.
func (l *Line) SetWrapped(w bool) {
	if l.wrapped == w {
		return
	}
	l.wrapped = w
	l.touch()
}

// LineAttr returns the DEC line attribute.
func (l *Line) LineAttr() LineAttr { return l.lineAttr }

// SetLineAttr sets the DEC line attribute, invalidating the cache token.
func (l *Line) SetLineAttr(a LineAttr) {
	if l.lineAttr == a {
		return
	}
	l.lineAttr = a
	l.touch()
}

// Get returns the cell at i, or a null cell if i is out of range.
func (l *Line) Get(i int) Cell {
	if i < 0 || i >= len(l.cells) {
		return NullCell()
	}
	return l.cells[i]
}

// Set writes the cell at i; out-of-range indices are ignored.
func (l *Line) Set(i int, c Cell) {
	if i < 0 || i >= len(l.cells) {
		return
	}
	l.cells[i] = c
	l.touch()
}

// Resize grows or shrinks the line to newCols. Growth appends copies of
// fill; shrinking truncates; equal length is a no-op.
func (l *Line) Resize(newCols int, fill Cell) {
	cur := len(l.cells)
	if newCols == cur {
		return
	}
	if newCols < cur {
		l.cells = l.cells[:newCols]
		l.touch()
		return
	}
	grown := make([]Cell, newCols)
	copy(grown, l.cells)
	for i := cur; i < newCols; i++ {
		grown[i] = fill
	}
	l.cells = grown
	l.touch()
}

// Fill writes cell across the half-open range [start, end).
func (l *Line) Fill(cell Cell, start, end int) {
	if start < 0 {
		start = 0
	}
	if end > len(l.cells) {
		end = len(l.cells)
	}
	for i := start; i < end; i++ {
		l.cells[i] = cell
	}
	if end > start {
		l.touch()
	}
}

// FillAll fills every cell in the line.
func (l *Line) FillAll(cell Cell) {
	l.Fill(cell, 0, len(l.cells))
}

// CopyCellsFrom copies length cells from src[srcStart:] into l[dstStart:].
// reverse selects the traversal direction so an in-place, overlapping move
// within the same line (src == l) stays correct.
func (l *Line) CopyCellsFrom(src *Line, srcStart, dstStart, length int, reverse bool) {
	if length <= 0 {
		return
	}
	if reverse {
		for i := length - 1; i >= 0; i-- {
			l.Set(dstStart+i, src.Get(srcStart+i))
		}
		return
	}
	for i := 0; i < length; i++ {
		l.Set(dstStart+i, src.Get(srcStart+i))
	}
}

// TranslateToString concatenates cell content over [start, end). If
// trimRight, trailing whitespace is stripped.
func (l *Line) TranslateToString(trimRight bool, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end > len(l.cells) {
		end = len(l.cells)
	}
	var b strings.Builder
	for i := start; i < end; i++ {
		b.WriteString(l.cells[i].Content())
	}
	s := b.String()
	if trimRight {
		s = strings.TrimRight(s, " ")
	}
	return s
}

// TrimmedLength returns the index just past the last non-space, non-empty
// cell (0 for an all-blank line).
func (l *Line) TrimmedLength() int {
	for i := len(l.cells) - 1; i >= 0; i-- {
		c := l.cells[i]
		if !c.IsWhitespace() {
			return i + 1
		}
	}
	return 0
}

// Clone returns a deep copy of l.
func (l *Line) Clone() Line {
	cells := make([]Cell, len(l.cells))
	copy(cells, l.cells)
	return Line{cells: cells, wrapped: l.wrapped, lineAttr: l.lineAttr}
}

// CopyFrom replaces l's size, wrap flag, line attribute, and all cells
// with a copy of other's.
func (l *Line) CopyFrom(other *Line) {
	l.cells = append(l.cells[:0], other.cells...)
	l.wrapped = other.wrapped
	l.lineAttr = other.lineAttr
	l.touch()
}
