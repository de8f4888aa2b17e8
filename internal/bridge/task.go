package bridge

import (
	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
	"github.com/dbehnke/crsfbridge/internal/rc"
	"github.com/dbehnke/crsfbridge/internal/timing"
)

// Task owns the half-duplex medium and runs the transmit/receive turn
// taking. One Run call is one cooperative, non-blocking iteration; all
// shared state (channel store, output queue, sync state) is touched only
// from this call stack.
type Task struct {
	port      Port
	moduleAsm *crsf.Assembler
	sync      *timing.ModuleSync
	channels  *rc.Channels
	failsafe  *rc.Failsafe
	queue     *OutputQueue
	now       Clock

	lastTXTime   uint32
	lastTXBytes  int
	rcFramesSent uint32
}

// NewTask wires the scheduler. moduleAsm is the assembler for the module
// link; its dispatch policy is the caller's choice.
func NewTask(port Port, moduleAsm *crsf.Assembler, sync *timing.ModuleSync,
	channels *rc.Channels, failsafe *rc.Failsafe, queue *OutputQueue, now Clock) *Task {
	return &Task{
		port:      port,
		moduleAsm: moduleAsm,
		sync:      sync,
		channels:  channels,
		failsafe:  failsafe,
		queue:     queue,
		now:       now,
	}
}

// Run executes one scheduler iteration. The step order is load-bearing:
// the TX-to-RX switch must happen before any read so self-echo is never
// ingested as real traffic, and ingestion must finish before the transmit
// decision so a sync frame received this iteration influences this
// iteration's period check.
func (t *Task) Run() {
	// 1. transmission finished: return the wire to RX, dropping only the
	// echo of the bytes just sent
	if t.port.IsTransmitting() && t.port.TXComplete() {
		t.port.SwitchToRX(t.lastTXBytes)
	}

	// 2. drain whatever the module sent while we listened
	if !t.port.IsTransmitting() {
		for n := t.port.Available(); n > 0; n-- {
			t.moduleAsm.ProcessByte(t.port.ReadByte())
		}
	}

	// 3. transmit on the period boundary
	if t.port.IsTransmitting() {
		return
	}
	now := t.now()
	if now-t.lastTXTime < t.sync.AdjustedPeriod() {
		return
	}

	if t.failsafe.Active(now) {
		// suppress RC and pass-through alike, but move the reference so
		// the elapsed check does not fire on every subsequent iteration
		t.lastTXTime = now
		return
	}

	if frame, ok := t.queue.Take(); ok {
		t.transmit(frame)
	} else {
		channels := t.channels.All()
		t.transmit(crsf.BuildRCFrame(&channels))
		t.rcFramesSent++
	}
	t.lastTXTime = t.now()
}

func (t *Task) transmit(frame []byte) {
	t.lastTXBytes = len(frame)
	t.port.Transmit(frame)
}

// RCFramesSent returns the number of RC frames transmitted to the module.
func (t *Task) RCFramesSent() uint32 { return t.rcFramesSent }

// LastTXTime returns the reference timestamp of the last transmission slot.
func (t *Task) LastTXTime() uint32 { return t.lastTXTime }
