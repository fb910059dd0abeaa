package vtcore

import "testing"

func TestCircularBufferPushWithinCapacity(t *testing.T) {
	b := NewCircularBuffer[int](4)
	for i := 0; i < 3; i++ {
		if recycled := b.Push(i); recycled {
			t.Fatalf("push %d should not recycle", i)
		}
	}
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	for i := 0; i < 3; i++ {
		if got := b.Get(i); got != i {
			t.Fatalf("get(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestCircularBufferPushOverwritesOldest(t *testing.T) {
	b := NewCircularBuffer[int](3)
	for i := 0; i < 5; i++ {
		b.Push(i)
	}
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	// after pushing 0,1,2,3,4 into cap 3: first element should be the
	// (k-M)-th pushed value = pushed index 2 -> value 2.
	if got := b.Get(0); got != 2 {
		t.Fatalf("get(0) = %d, want 2", got)
	}
	if got := b.Get(2); got != 4 {
		t.Fatalf("get(2) = %d, want 4", got)
	}
}

func TestCircularBufferOutOfRangeAccessPanics(t *testing.T) {
	b := NewCircularBuffer[int](2)
	b.Push(1)
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic on out-of-range access")
		}
	}()
	b.Get(5)
}

func TestCircularBufferTrimStart(t *testing.T) {
	b := NewCircularBuffer[int](5)
	for i := 0; i < 5; i++ {
		b.Push(i)
	}
	b.TrimStart(2)
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	if got := b.Get(0); got != 2 {
		t.Fatalf("get(0) = %d, want 2", got)
	}
}

func TestCircularBufferSplice(t *testing.T) {
	b := NewCircularBuffer[int](10)
	for i := 0; i < 5; i++ {
		b.Push(i)
	}
	b.Splice(1, 2, 100, 101, 102)
	want := []int{0, 100, 101, 102, 3, 4}
	if b.Len() != len(want) {
		t.Fatalf("len = %d, want %d", b.Len(), len(want))
	}
	for i, w := range want {
		if got := b.Get(i); got != w {
			t.Fatalf("get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestCircularBufferSpliceOverflowRotates(t *testing.T) {
	b := NewCircularBuffer[int](3)
	for i := 0; i < 3; i++ {
		b.Push(i)
	}
	b.Splice(3, 0, 10, 11)
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	want := []int{2, 10, 11}
	for i, w := range want {
		if got := b.Get(i); got != w {
			t.Fatalf("get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestCircularBufferRecycle(t *testing.T) {
	b := NewCircularBuffer[int](2)
	b.Push(1)
	if _, ok := b.Recycle(); ok {
		t.Fatalf("recycle should report false when not full")
	}
	b.Push(2)
	v, ok := b.Recycle()
	if !ok || v != 2 {
		t.Fatalf("recycle = %d,%v want 2,true", v, ok)
	}
	if b.Len() != 1 {
		t.Fatalf("len after recycle = %d, want 1", b.Len())
	}
}

func TestCircularBufferResizeShrinkDropsOldest(t *testing.T) {
	b := NewCircularBuffer[int](5)
	for i := 0; i < 5; i++ {
		b.Push(i)
	}
	b.Resize(3)
	if b.Len() != 3 {
		t.Fatalf("len = %d, want 3", b.Len())
	}
	want := []int{2, 3, 4}
	for i, w := range want {
		if got := b.Get(i); got != w {
			t.Fatalf("get(%d) = %d, want %d", i, got, w)
		}
	}
}

func TestCircularBufferShiftElements(t *testing.T) {
	b := NewCircularBuffer[int](10)
	for i := 0; i < 6; i++ {
		b.Push(i)
	}
	// shift [0,4) right by 1: overlapping, needs high-to-low traversal.
	b.ShiftElements(0, 4, 1)
	want := []int{0, 0, 1, 2, 3, 5}
	for i, w := range want {
		if got := b.Get(i); got != w {
			t.Fatalf("get(%d) = %d, want %d", i, got, w)
		}
	}
}
