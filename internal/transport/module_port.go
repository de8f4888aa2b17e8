package transport

import (
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"go.bug.st/serial"
)

// ModulePort drives the link to the TX module through a standard serial
// adapter and implements the bridge.Port contract. On a true one-wire
// half-duplex hookup the adapter hears its own transmissions; the bridge
// compensates by asking SwitchToRX to discard exactly the transmitted byte
// count, so a fast reply queued right behind the echo is preserved.
type ModulePort struct {
	port serial.Port
	rx   *RingBuffer

	transmitting atomic.Bool
	txComplete   atomic.Bool

	// echo bytes still owed to the discard after SwitchToRX; only touched
	// from the bridge loop
	pendingDiscard int

	closed chan struct{}
	debug  bool
}

// OpenModulePort opens the module-side serial port and starts its reader.
func OpenModulePort(portName string, baud int, debug bool) (*ModulePort, error) {
	port, err := serial.Open(portName, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("open module serial port %s: %w", portName, err)
	}
	if err := port.SetReadTimeout(10 * time.Millisecond); err != nil {
		port.Close()
		return nil, fmt.Errorf("configure module serial port %s: %w", portName, err)
	}

	p := &ModulePort{
		port:   port,
		rx:     NewRingBuffer(rxBufferSize),
		closed: make(chan struct{}),
		debug:  debug,
	}
	p.txComplete.Store(true)
	go p.readLoop()

	log.Printf("[CRSF] module port open on %s @ %d baud", portName, baud)
	return p, nil
}

func (p *ModulePort) readLoop() {
	buf := make([]byte, 256)
	for {
		select {
		case <-p.closed:
			return
		default:
		}

		n, err := p.port.Read(buf)
		if err != nil {
			select {
			case <-p.closed:
				return
			default:
			}
			if p.debug {
				log.Printf("[CRSF] module read error: %v", err)
			}
			continue
		}
		if n > 0 {
			p.rx.Write(buf[:n])
		}
	}
}

// Transmit enqueues data and flips the port into transmit mode. The write
// and the physical drain run on their own goroutine so the bridge loop
// never blocks; completion is visible through TXComplete.
func (p *ModulePort) Transmit(data []byte) {
	frame := make([]byte, len(data))
	copy(frame, data)

	p.transmitting.Store(true)
	p.txComplete.Store(false)

	go func() {
		if _, err := p.port.Write(frame); err != nil && p.debug {
			log.Printf("[CRSF] module write error: %v", err)
		}
		if err := p.port.Drain(); err != nil && p.debug {
			log.Printf("[CRSF] module drain error: %v", err)
		}
		p.txComplete.Store(true)
	}()
}

// IsTransmitting reports whether the port is in transmit mode.
func (p *ModulePort) IsTransmitting() bool { return p.transmitting.Load() }

// TXComplete reports whether all enqueued bytes have left the wire.
func (p *ModulePort) TXComplete() bool { return p.txComplete.Load() }

// SwitchToRX leaves transmit mode and discards up to discardEcho self-heard
// bytes from the receive buffer. Echo still in flight through the adapter at
// switch time is owed to the discard and consumed as it arrives.
func (p *ModulePort) SwitchToRX(discardEcho int) {
	p.pendingDiscard = discardEcho - p.rx.Discard(discardEcho)
	p.transmitting.Store(false)
}

func (p *ModulePort) consumePendingDiscard() {
	if p.pendingDiscard > 0 {
		p.pendingDiscard -= p.rx.Discard(p.pendingDiscard)
	}
}

// Available returns the number of buffered received bytes.
func (p *ModulePort) Available() int {
	p.consumePendingDiscard()
	return p.rx.Len()
}

// ReadByte pops one buffered received byte.
func (p *ModulePort) ReadByte() byte {
	p.consumePendingDiscard()
	b, _ := p.rx.ReadByte()
	return b
}

// DroppedBytes returns received bytes lost to buffer overflow.
func (p *ModulePort) DroppedBytes() uint32 { return p.rx.Dropped() }

// Close stops the reader and closes the port.
func (p *ModulePort) Close() error {
	close(p.closed)
	return p.port.Close()
}
