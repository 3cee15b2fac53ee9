// Package chunklist implements a FIFO byte buffer built from a chain
// of chunks, the accumulating read/write buffer that
// sits between a connection's socket and its fetcher subtask. Bytes
// are appended in whole chunks (one per socket read) and consumed a
// few bytes at a time, with a read cursor tracking the first
// unconsumed byte of the head chunk; a fully drained head chunk is
// dropped.
package chunklist

// chunkSize is the size of Advance's scratch buffer, the most bytes it
// discards per Read; it mirrors the connection task's ≈1 KiB socket
// buffers. Appended chunks are sized to the appended slice, not to
// chunkSize.
const chunkSize = 1024

type chunk struct {
	data []byte
	pos  int // index of the first unconsumed byte
}

func (c *chunk) remaining() int { return len(c.data) - c.pos }

// List is a growable FIFO of byte chunks with a read cursor.
type List struct {
	chunks []*chunk
	size   int // total unconsumed bytes across all chunks
}

// New returns an empty chunk list.
func New() *List { return &List{} }

// Append copies b into a new chunk at the tail of the list. The
// caller's slice is not retained.
func (l *List) Append(b []byte) {
	if len(b) == 0 {
		return
	}
	buf := make([]byte, len(b))
	copy(buf, b)
	l.chunks = append(l.chunks, &chunk{data: buf})
	l.size += len(b)
}

// Len reports the total number of unconsumed bytes.
func (l *List) Len() int { return l.size }

// Empty reports whether no unconsumed bytes remain.
func (l *List) Empty() bool { return l.size == 0 }

// Read consumes up to len(dst) bytes into dst, returning how many
// were copied. It never blocks and never returns an error; zero means
// the list is drained.
func (l *List) Read(dst []byte) int {
	n := 0
	for n < len(dst) && len(l.chunks) > 0 {
		head := l.chunks[0]
		k := copy(dst[n:], head.data[head.pos:])
		head.pos += k
		n += k
		l.size -= k
		if head.remaining() == 0 {
			l.chunks = l.chunks[1:]
		}
	}
	return n
}

// Peek returns up to n unconsumed bytes without advancing the read
// cursor, cloned so the caller may hold onto the slice.
func (l *List) Peek(n int) []byte {
	out := make([]byte, 0, n)
	for _, c := range l.chunks {
		if len(out) >= n {
			break
		}
		take := min(n-len(out), c.remaining())
		out = append(out, c.data[c.pos:c.pos+take]...)
	}
	return out
}

// HeadChunk returns the length of the current head chunk (0 if
// empty), the unit SEND drains in one write-side step.
func (l *List) HeadChunk() int {
	if len(l.chunks) == 0 {
		return 0
	}
	return l.chunks[0].remaining()
}

// Advance discards n already-peeked bytes from the front of the list,
// used by SEND after a successful (possibly short) write.
func (l *List) Advance(n int) {
	var discard [chunkSize]byte
	for n > 0 {
		k := n
		if k > len(discard) {
			k = len(discard)
		}
		got := l.Read(discard[:k])
		if got == 0 {
			return
		}
		n -= got
	}
}

// Reset drops every chunk, returning the list to empty.
func (l *List) Reset() {
	l.chunks = nil
	l.size = 0
}
