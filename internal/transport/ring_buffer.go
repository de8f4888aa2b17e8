package transport

import "sync"

// RingBuffer is a fixed-capacity byte FIFO shared between a serial reader
// goroutine (producer) and the bridge loop (consumer). When full, new data
// is dropped and counted rather than blocking the reader.
type RingBuffer struct {
	mu      sync.Mutex
	buf     []byte
	head    int
	tail    int
	size    int
	dropped uint32
}

// NewRingBuffer creates a ring buffer holding up to capacity bytes.
func NewRingBuffer(capacity int) *RingBuffer {
	return &RingBuffer{buf: make([]byte, capacity)}
}

// Write appends data, dropping whatever does not fit.
func (rb *RingBuffer) Write(data []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for _, b := range data {
		if rb.size == len(rb.buf) {
			rb.dropped++
			continue
		}
		rb.buf[rb.head] = b
		rb.head = (rb.head + 1) % len(rb.buf)
		rb.size++
	}
}

// ReadByte pops the oldest byte. ok is false when the buffer is empty.
func (rb *RingBuffer) ReadByte() (b byte, ok bool) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.size == 0 {
		return 0, false
	}
	b = rb.buf[rb.tail]
	rb.tail = (rb.tail + 1) % len(rb.buf)
	rb.size--
	return b, true
}

// Discard removes up to n of the oldest bytes and returns how many were
// actually removed.
func (rb *RingBuffer) Discard(n int) int {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if n > rb.size {
		n = rb.size
	}
	rb.tail = (rb.tail + n) % len(rb.buf)
	rb.size -= n
	return n
}

// Len returns the number of buffered bytes.
func (rb *RingBuffer) Len() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.size
}

// Dropped returns the number of bytes lost to overflow.
func (rb *RingBuffer) Dropped() uint32 {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.dropped
}
