package bridge

import (
	"context"
	"log"
	"runtime"
	"time"

	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
)

// Gateway ties the two links together: it drains commanding-link bytes
// through the host assembler and runs the scheduler task, all on a single
// goroutine so the shared state keeps its single-call-stack ownership.
type Gateway struct {
	host    ByteSource
	hostAsm *crsf.Assembler
	task    *Task

	moduleAsm      *crsf.Assembler
	moduleDispatch *ModuleDispatch
	hostDispatch   *HostDispatch

	statsInterval time.Duration
}

// NewGateway assembles the bridge loop. statsInterval of zero disables the
// periodic statistics log line.
func NewGateway(host ByteSource, hostAsm *crsf.Assembler, moduleAsm *crsf.Assembler,
	task *Task, moduleDispatch *ModuleDispatch, hostDispatch *HostDispatch,
	statsInterval time.Duration) *Gateway {
	return &Gateway{
		host:           host,
		hostAsm:        hostAsm,
		moduleAsm:      moduleAsm,
		task:           task,
		moduleDispatch: moduleDispatch,
		hostDispatch:   hostDispatch,
		statsInterval:  statsInterval,
	}
}

// Poll runs one bridge iteration: commanding-link ingestion first, then the
// scheduler. Never blocks.
func (g *Gateway) Poll() {
	for n := g.host.Available(); n > 0; n-- {
		g.hostAsm.ProcessByte(g.host.ReadByte())
	}
	g.task.Run()
}

// Run polls until the context is cancelled.
func (g *Gateway) Run(ctx context.Context) error {
	log.Printf("[BRIDGE] gateway running")

	var lastStats time.Time
	if g.statsInterval > 0 {
		lastStats = time.Now()
	}

	for {
		if ctx.Err() != nil {
			log.Printf("[BRIDGE] gateway stopping")
			return nil
		}

		g.Poll()

		if g.statsInterval > 0 && time.Since(lastStats) >= g.statsInterval {
			g.logStats()
			lastStats = time.Now()
		}

		// the loop itself must stay hot (the scheduler owns all timing),
		// but yield so we do not starve the serial reader goroutines
		runtime.Gosched()
	}
}

func (g *Gateway) logStats() {
	log.Printf("[BRIDGE] module: rx=%d crcErr=%d fwd=%d sync=%d | host: rx=%d crcErr=%d rc=%d queued=%d dropped=%d unknown=%d | sent: rc=%d",
		g.moduleAsm.FramesReceived(), g.moduleAsm.CRCErrors(),
		g.moduleDispatch.ForwardedFrames(), g.moduleDispatch.TimingUpdates(),
		g.hostAsm.FramesReceived(), g.hostAsm.CRCErrors(),
		g.hostDispatch.RCFramesReceived(), g.hostDispatch.QueuedFrames(),
		g.hostDispatch.DroppedFrames(), g.hostDispatch.UnknownFrames(),
		g.task.RCFramesSent())
}
