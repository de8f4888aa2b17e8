package transport

import (
	"fmt"
	"log"
	"sync"
	"time"

	"go.bug.st/serial"
)

const rxBufferSize = 4096

// HostLink is the commanding-controller byte transport: a plain serial
// connection (typically USB CDC) carrying CRSF frames in both directions.
// Inbound bytes are buffered by a reader goroutine and polled by the
// bridge loop; outbound frames are written atomically, one write call per
// frame.
type HostLink struct {
	port serial.Port
	rx   *RingBuffer

	writeMu sync.Mutex
	closed  chan struct{}
	debug   bool
}

// OpenHostLink opens the commanding-link serial port and starts its reader.
func OpenHostLink(portName string, baud int, debug bool) (*HostLink, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open host serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(10 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("configure host serial port %s: %w", portName, err)
	}

	l := &HostLink{
		port:   port,
		rx:     NewRingBuffer(rxBufferSize),
		closed: make(chan struct{}),
		debug:  debug,
	}
	go l.readLoop()

	log.Printf("[HOST] serial link open on %s @ %d baud", portName, baud)
	return l, nil
}

func (l *HostLink) readLoop() {
	buf := make([]byte, 256)
	for {
		select {
		case <-l.closed:
			return
		default:
		}

		n, err := l.port.Read(buf)
		if err != nil {
			select {
			case <-l.closed:
				return
			default:
			}
			if l.debug {
				log.Printf("[HOST] serial read error: %v", err)
			}
			continue
		}
		if n > 0 {
			l.rx.Write(buf[:n])
		}
	}
}

// Available returns the number of buffered inbound bytes.
func (l *HostLink) Available() int { return l.rx.Len() }

// ReadByte pops one buffered inbound byte.
func (l *HostLink) ReadByte() byte {
	b, _ := l.rx.ReadByte()
	return b
}

// WriteFrame writes one complete frame as a single write call.
func (l *HostLink) WriteFrame(frame []byte) error {
	l.writeMu.Lock()
	defer l.writeMu.Unlock()

	n, err := l.port.Write(frame)
	if err != nil {
		return fmt.Errorf("host write: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("host write: short write %d of %d bytes", n, len(frame))
	}
	return nil
}

// DroppedBytes returns inbound bytes lost to buffer overflow.
func (l *HostLink) DroppedBytes() uint32 { return l.rx.Dropped() }

// Close stops the reader and closes the port.
func (l *HostLink) Close() error {
	close(l.closed)
	return l.port.Close()
}
