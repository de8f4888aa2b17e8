package bridge

import "time"

// ByteSource is a polled, non-blocking supply of received bytes.
type ByteSource interface {
	// Available returns the number of buffered received bytes.
	Available() int
	// ReadByte pops one buffered byte. Only valid when Available() > 0.
	ReadByte() byte
}

// Port is the half-duplex medium driver boundary. A single shared wire
// carries both directions, so the scheduler owns all turn-taking: it must
// never call Transmit while IsTransmitting reports true, and it must not
// read while a transmission is still leaving the wire.
type Port interface {
	ByteSource

	// Transmit enqueues a frame for transmission and switches the medium
	// to drive mode. Non-blocking.
	Transmit(data []byte)
	// IsTransmitting reports whether the medium is in transmit mode.
	IsTransmitting() bool
	// TXComplete reports whether all enqueued bytes have left the wire.
	TXComplete() bool
	// SwitchToRX returns the medium to sensing mode and discards up to
	// discardEcho self-heard bytes from the receive buffer. The discard is
	// bounded so a fast reply arriving right behind the echo survives.
	SwitchToRX(discardEcho int)
}

// Clock returns a free-running, monotonically increasing microsecond
// counter. It is expected to wrap; all consumers compare timestamps with
// unsigned modular subtraction.
type Clock func() uint32

// MicrosClock returns a Clock backed by the runtime monotonic clock.
func MicrosClock() Clock {
	start := time.Now()
	return func() uint32 {
		return uint32(time.Since(start).Microseconds())
	}
}
