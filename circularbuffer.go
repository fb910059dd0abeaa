package vtcore

import "fmt"

// CircularBuffer is a fixed-capacity ring. Logical index 0..Len()-1 maps to
// physical storage via (start+i) mod maxLength. Pushing past capacity
// overwrites the oldest element rather than growing.
//
// Out-of-range indexed access (Get/Set) is a hard error: it signals a bug
// in the caller, not a recoverable condition, the same way an out-of-range
// slice index panics in the standard library.
type CircularBuffer[T any] struct {
	data      []T
	start     int
	length    int
	maxLength int
}

// NewCircularBuffer returns an empty buffer with the given capacity.
func NewCircularBuffer[T any](maxLength int) *CircularBuffer[T] {
	if maxLength < 0 {
		maxLength = 0
	}
	return &CircularBuffer[T]{data: make([]T, maxLength), maxLength: maxLength}
}

// Len returns the number of elements currently stored.
func (b *CircularBuffer[T]) Len() int { return b.length }

// MaxLength returns the current capacity.
func (b *CircularBuffer[T]) MaxLength() int { return b.maxLength }

func (b *CircularBuffer[T]) physical(i int) int {
	if b.maxLength == 0 {
		return 0
	}
	p := b.start + i
	p %= b.maxLength
	if p < 0 {
		p += b.maxLength
	}
	return p
}

func (b *CircularBuffer[T]) checkRange(i int) {
	if i < 0 || i >= b.length {
		panic(fmt.Sprintf("vtcore: circular buffer index %d out of range [0,%d)", i, b.length))
	}
}

// Get returns the logical i-th element. Out-of-range i panics.
func (b *CircularBuffer[T]) Get(i int) T {
	b.checkRange(i)
	return b.data[b.physical(i)]
}

// Set overwrites the logical i-th element. Out-of-range i panics.
func (b *CircularBuffer[T]) Set(i int, v T) {
	b.checkRange(i)
	b.data[b.physical(i)] = v
}

// GetPtr returns a pointer to the i-th element's backing storage, for
// callers that need to mutate it in place (e.g. a Line's cells) without a
// copy/Set round-trip. The pointer is invalidated by any operation that
// reshuffles storage (Splice, Resize, TrimStart, further Push once full).
// Out-of-range i panics.
func (b *CircularBuffer[T]) GetPtr(i int) *T {
	b.checkRange(i)
	return &b.data[b.physical(i)]
}

// Push appends v. If the buffer is full, the oldest element is overwritten
// and reports whether an element was recycled (evicted).
func (b *CircularBuffer[T]) Push(v T) (recycled bool) {
	if b.maxLength == 0 {
		return false
	}
	if b.length < b.maxLength {
		b.data[b.physical(b.length)] = v
		b.length++
		return false
	}
	b.data[b.start] = v
	b.start = (b.start + 1) % b.maxLength
	return true
}

// Pop removes and returns the last (most recently pushed) element.
func (b *CircularBuffer[T]) Pop() (T, bool) {
	var zero T
	if b.length == 0 {
		return zero, false
	}
	v := b.Get(b.length - 1)
	b.length--
	return v, true
}

// Recycle pops the most recent element only if the buffer is full, for
// callers that want to reuse the storage rather than discard it. Returns
// the element and true if one was recycled.
func (b *CircularBuffer[T]) Recycle() (T, bool) {
	var zero T
	if b.length < b.maxLength {
		return zero, false
	}
	return b.Pop()
}

// TrimStart drops the first n logical elements. n<0 is a no-op; n is
// clamped so length never goes negative.
func (b *CircularBuffer[T]) TrimStart(n int) {
	if n <= 0 {
		return
	}
	if n > b.length {
		n = b.length
	}
	m := b.maxLength
	if m == 0 {
		m = 1
	}
	b.start = (b.start + n) % m
	b.length -= n
}

// Clear empties the buffer without releasing capacity.
func (b *CircularBuffer[T]) Clear() {
	b.start = 0
	b.length = 0
}

// ShiftElements moves the block [start, start+count) by direction, in
// place. A positive direction traverses high-to-low so an overlapping
// rightward move preserves source values; a negative direction traverses
// low-to-high for a leftward move.
func (b *CircularBuffer[T]) ShiftElements(start, count, direction int) {
	if count <= 0 || direction == 0 {
		return
	}
	if direction > 0 {
		for i := count - 1; i >= 0; i-- {
			src := start + i
			dst := start + i + direction
			if src < 0 || src >= b.length || dst < 0 || dst >= b.length {
				continue
			}
			b.Set(dst, b.Get(src))
		}
		return
	}
	for i := 0; i < count; i++ {
		src := start + i
		dst := start + i + direction
		if src < 0 || src >= b.length || dst < 0 || dst >= b.length {
			continue
		}
		b.Set(dst, b.Get(src))
	}
}

// Splice deletes deleteCount logical elements starting at start, then
// inserts items at that position, shifting the tail as needed. If the
// insertion would overflow capacity, the overflow is pushed at the tail
// (rotating out the oldest elements), matching Push's overwrite behavior.
func (b *CircularBuffer[T]) Splice(start, deleteCount int, items ...T) {
	if start < 0 {
		start = 0
	}
	if start > b.length {
		start = b.length
	}
	if deleteCount < 0 {
		deleteCount = 0
	}
	if start+deleteCount > b.length {
		deleteCount = b.length - start
	}

	result := make([]T, 0, b.length-deleteCount+len(items))
	for i := 0; i < start; i++ {
		result = append(result, b.Get(i))
	}
	result = append(result, items...)
	for i := start + deleteCount; i < b.length; i++ {
		result = append(result, b.Get(i))
	}

	b.Clear()
	for _, v := range result {
		b.Push(v)
	}
}

// Resize changes capacity. Shrinking below the current length drops the
// oldest elements first.
func (b *CircularBuffer[T]) Resize(newMax int) {
	if newMax < 0 {
		newMax = 0
	}
	keep := b.length
	if keep > newMax {
		keep = newMax
	}
	dropped := b.length - keep
	newData := make([]T, newMax)
	for i := 0; i < keep; i++ {
		newData[i] = b.Get(dropped + i)
	}
	b.data = newData
	b.start = 0
	b.length = keep
	b.maxLength = newMax
}
