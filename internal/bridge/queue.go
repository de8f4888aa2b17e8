package bridge

import "github.com/dbehnke/crsfbridge/internal/protocol/crsf"

// OutputQueue is the single-slot pass-through buffer between the commanding
// link and the scheduler. A queued frame is transmitted in place of the
// next RC frame.
type OutputQueue struct {
	buf     [crsf.MaxFrameSize]byte
	length  int
	pending bool
}

// Queue stores a frame for transmission at the next opportunity. It fails
// when a frame is already pending or the frame exceeds the maximum frame
// size; the caller decides whether to drop or retry.
func (q *OutputQueue) Queue(frame []byte) bool {
	if q.pending || len(frame) > crsf.MaxFrameSize {
		return false
	}
	copy(q.buf[:], frame)
	q.length = len(frame)
	q.pending = true
	return true
}

// Take removes and returns the pending frame. The returned slice aliases
// the queue's buffer and is valid until the next Queue call.
func (q *OutputQueue) Take() ([]byte, bool) {
	if !q.pending {
		return nil, false
	}
	q.pending = false
	return q.buf[:q.length], true
}

// Pending reports whether a frame is waiting.
func (q *OutputQueue) Pending() bool { return q.pending }
