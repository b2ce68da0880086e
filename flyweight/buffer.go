package flyweight

// DirectBuffer is a region of externally owned memory a view can read.
type DirectBuffer interface {
	Bytes() []byte
	Capacity() int
}

// MutableDirectBuffer is a DirectBuffer that supports in-place writes.
// Views bound to one accept writes; views bound to anything else are
// read-only.
type MutableDirectBuffer interface {
	DirectBuffer
	MutableBytes() []byte
}

// Buffer is a read-only DirectBuffer over a caller-owned slice.
type Buffer struct {
	b []byte
}

// NewBuffer wraps b for read-only access.
func NewBuffer(b []byte) *Buffer {
	return &Buffer{b: b}
}

// Wrap points the buffer at a new slice. Views bound to it must be bound
// again afterwards.
func (b *Buffer) Wrap(p []byte) {
	b.b = p
}

func (b *Buffer) Bytes() []byte {
	return b.b
}

func (b *Buffer) Capacity() int {
	return len(b.b)
}

// MutableBuffer is a writable DirectBuffer over a caller-owned slice.
type MutableBuffer struct {
	Buffer
}

// NewMutableBuffer wraps b for read and write access.
func NewMutableBuffer(b []byte) *MutableBuffer {
	return &MutableBuffer{Buffer{b: b}}
}

func (b *MutableBuffer) MutableBytes() []byte {
	return b.b
}
