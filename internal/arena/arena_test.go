package arena

import (
	"bytes"
	"strings"
	"testing"
)

func TestPushPopRestoresCursor(t *testing.T) {
	tests := []struct {
		name  string
		depth int
	}{
		{"single", 1},
		{"nested", 3},
		{"deep", 17},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := New(nil, 64)
			a.Alloc(10)
			before := a.Cursor()

			for i := 0; i < tt.depth; i++ {
				a.Push()
				a.Alloc(int64(7 + i))
				a.Format("scratch %d", i)
			}
			for i := 0; i < tt.depth; i++ {
				a.Pop()
			}

			if got := a.Cursor(); got != before {
				t.Errorf("cursor after pops = %d, want %d", got, before)
			}
			if a.Depth() != 0 {
				t.Errorf("depth after pops = %d, want 0", a.Depth())
			}
		})
	}
}

func TestPopInterleavedWithAllocs(t *testing.T) {
	a := New(nil, 32)
	a.Push()
	mark := a.Cursor()
	a.Alloc(100) // forces growth inside a scope
	a.Pop()
	if got := a.Cursor(); got != mark {
		t.Errorf("cursor after pop = %d, want %d", got, mark)
	}
	// The scope's space is reusable.
	if off := a.Alloc(1); off != mark {
		t.Errorf("next alloc at %d, want %d", off, mark)
	}
}

func TestPopWithoutPushPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on pop without push")
		}
	}()
	a := New(nil, 16)
	a.Pop()
}

func TestAllocGrowth(t *testing.T) {
	a := New(nil, 16)
	n := a.Space() + 100

	off := a.Alloc(n)
	if a.Cap() < off+n {
		t.Fatalf("capacity %d does not cover allocation ending at %d", a.Cap(), off+n)
	}

	// A second allocation of the same size fits without further growth.
	capBefore := a.Cap()
	a.Alloc(n)
	if a.Cap() != capBefore {
		t.Errorf("second alloc of %d grew the arena from %d to %d", n, capBefore, a.Cap())
	}
}

func TestFormatNeverTruncates(t *testing.T) {
	a := New(nil, 16)
	long := strings.Repeat("x", 500)

	off := a.Format("<%s>", long)
	got := a.Bytes(off, a.Cursor())
	if want := "<" + long + ">"; string(got) != want {
		t.Errorf("formatted content truncated or corrupted: got %d bytes, want %d", len(got), len(want))
	}
}

func TestFormatContentSurvivesGrowth(t *testing.T) {
	a := New(nil, 64)
	off := a.Format("%s=%d", "answer", 42)
	end := a.Cursor()

	a.Alloc(10000) // relocates the buffer

	if got := a.Bytes(off, end); !bytes.Equal(got, []byte("answer=42")) {
		t.Errorf("content after growth = %q, want %q", got, "answer=42")
	}
}

func TestAlignedAlloc(t *testing.T) {
	a := New(nil, 256)
	a.Alloc(3)
	for i := 0; i < 4; i++ {
		off := a.AlignedAlloc(int64(5 + i))
		if off%16 != 0 {
			t.Errorf("aligned alloc %d at offset %d, want 16-byte boundary", i, off)
		}
	}
}

func TestPushAligns(t *testing.T) {
	a := New(nil, 64)
	a.Alloc(5)
	a.Push()
	if got := a.Cursor(); got%16 != 0 {
		t.Errorf("cursor after push = %d, want 16-byte boundary", got)
	}
	a.Pop()
}

func TestPopRestoresUnalignedCursor(t *testing.T) {
	// The mark is the cursor at the Push call, not the aligned cursor:
	// the alignment pad belongs to the scope and goes away with it.
	a := New(nil, 64)
	a.Alloc(10)

	a.Push()
	a.Alloc(7)
	a.Pop()

	if got := a.Cursor(); got != 10 {
		t.Errorf("cursor after pop = %d, want 10 (pre-push)", got)
	}
}

func TestCustomAllocator(t *testing.T) {
	calls := 0
	alloc := func(old []byte, size int64) []byte {
		calls++
		buf := make([]byte, size)
		copy(buf, old)
		return buf
	}

	a := New(alloc, 8)
	if calls != 1 {
		t.Fatalf("allocator called %d times at init, want 1", calls)
	}

	off := a.Append([]byte("hello"))
	a.Alloc(100) // growth goes through the allocator
	if calls != 2 {
		t.Errorf("allocator called %d times after growth, want 2", calls)
	}
	if got := a.Bytes(off, off+5); string(got) != "hello" {
		t.Errorf("content lost across custom-allocator growth: %q", got)
	}
}
