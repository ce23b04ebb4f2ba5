// Package arena implements a growable bump allocator with LIFO-scoped
// restore points. An arena hands out offsets into its buffer rather
// than addresses, so allocations stay addressable across growth.
package arena

import "fmt"

// Allocator is the pluggable memory operation behind an Arena. It is
// realloc-shaped: a nil old slice allocates a fresh buffer, otherwise
// the returned buffer must be at least size bytes and carry over old's
// contents. An Allocator that cannot satisfy a request must panic;
// the kernel treats allocation failure as a hard fault.
type Allocator func(old []byte, size int64) []byte

// DefaultAllocator backs arenas with the Go heap.
func DefaultAllocator(old []byte, size int64) []byte {
	buf := make([]byte, size)
	copy(buf, old)
	return buf
}

const (
	// DefaultCapacity is the buffer size an arena starts with when the
	// caller does not ask for one, and the minimum amount of growth.
	DefaultCapacity = 4096

	alignment = 16
)

// Arena is a single contiguous growable buffer with a bump cursor and
// a stack of restore points. The cursor only increases except on Pop,
// which resets it to the matching Push mark.
type Arena struct {
	alloc  Allocator
	buf    []byte
	cursor int64
	marks  []int64
}

// New creates an arena backed by alloc with the given initial
// capacity. A nil alloc uses DefaultAllocator; a non-positive capacity
// uses DefaultCapacity.
func New(alloc Allocator, capacity int64) *Arena {
	if alloc == nil {
		alloc = DefaultAllocator
	}
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Arena{alloc: alloc, buf: alloc(nil, capacity)}
}

// Cursor returns the offset of the next free byte.
func (a *Arena) Cursor() int64 {
	return a.cursor
}

// Cap returns the current buffer capacity in bytes.
func (a *Arena) Cap() int64 {
	return int64(len(a.buf))
}

// Space returns the free space left before growth is required.
func (a *Arena) Space() int64 {
	return int64(len(a.buf)) - a.cursor
}

// Depth returns the number of outstanding restore points.
func (a *Arena) Depth() int {
	return len(a.marks)
}

// ensure grows the buffer so that at least n more bytes fit. Growth is
// by max(2*cap, n, DefaultCapacity) bytes beyond the current capacity.
func (a *Arena) ensure(n int64) {
	if a.cursor+n <= int64(len(a.buf)) {
		return
	}
	grow := 2 * int64(len(a.buf))
	if n > grow {
		grow = n
	}
	if grow < DefaultCapacity {
		grow = DefaultCapacity
	}
	size := int64(len(a.buf)) + grow
	buf := a.alloc(a.buf, size)
	if int64(len(buf)) < size {
		panic(fmt.Sprintf("arena: allocator returned %d bytes, need %d", len(buf), size))
	}
	a.buf = buf
}

// Alloc reserves n fresh bytes and returns their offset.
func (a *Arena) Alloc(n int64) int64 {
	if n < 0 {
		panic("arena: negative allocation")
	}
	a.ensure(n)
	off := a.cursor
	a.cursor += n
	return off
}

// align pads the cursor up to a 16-byte boundary.
func (a *Arena) align() {
	if mod := a.cursor % alignment; mod != 0 {
		a.Alloc(alignment - mod)
	}
}

// AlignedAlloc reserves n bytes starting on a 16-byte boundary.
func (a *Arena) AlignedAlloc(n int64) int64 {
	a.align()
	return a.Alloc(n)
}

// Push records a restore point so that everything allocated after it
// can be released in one Pop. Restore points nest with strict LIFO
// discipline. The mark is the cursor as it stands at the call; the
// alignment pad that follows belongs to the scope and is released with
// it.
func (a *Arena) Push() {
	a.marks = append(a.marks, a.cursor)
	a.align()
}

// Pop releases everything allocated since the matching Push. Popping
// without an outstanding Push is a defect in the caller and panics.
func (a *Arena) Pop() {
	if len(a.marks) == 0 {
		panic("arena: pop without matching push")
	}
	a.cursor = a.marks[len(a.marks)-1]
	a.marks = a.marks[:len(a.marks)-1]
}

// Format appends printf-style text to the arena and returns the offset
// of the first written byte. The text is measured first; the buffer
// grows exactly enough that the content is never truncated.
func (a *Arena) Format(format string, args ...any) int64 {
	text := fmt.Appendf(nil, format, args...)
	return a.Append(text)
}

// Append copies b into the arena and returns its offset.
func (a *Arena) Append(b []byte) int64 {
	off := a.Alloc(int64(len(b)))
	copy(a.buf[off:], b)
	return off
}

// Bytes returns the span [start, end) of the buffer. The slice aliases
// the current buffer, so it is valid only until the next allocation in
// this arena; callers that need the content longer copy it out.
func (a *Arena) Bytes(start, end int64) []byte {
	return a.buf[start:end:end]
}

// Release drops the buffer and all restore points. The arena must not
// be used afterwards.
func (a *Arena) Release() {
	a.buf = nil
	a.cursor = 0
	a.marks = nil
}
