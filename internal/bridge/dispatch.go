package bridge

import (
	"log"

	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
	"github.com/dbehnke/crsfbridge/internal/rc"
	"github.com/dbehnke/crsfbridge/internal/timing"
)

// FrameWriter writes one complete frame as a single atomic write.
type FrameWriter interface {
	WriteFrame(frame []byte) error
}

// FrameObserver gets a read-only look at frames passing through the bridge
// without affecting how they are handled.
type FrameObserver interface {
	ObserveFrame(frame crsf.Frame)
}

// ModuleDispatch is the frame policy for the link to the TX module: timing
// sync frames are consumed locally, everything else is forwarded verbatim
// to the commanding link.
type ModuleDispatch struct {
	sync     *timing.ModuleSync
	host     FrameWriter
	observer FrameObserver
	now      Clock
	debug    bool

	forwardedFrames uint32
	writeErrors     uint32
	timingUpdates   uint32
}

// NewModuleDispatch creates the module-link dispatch policy. observer may
// be nil.
func NewModuleDispatch(sync *timing.ModuleSync, host FrameWriter, observer FrameObserver, now Clock, debug bool) *ModuleDispatch {
	return &ModuleDispatch{
		sync:     sync,
		host:     host,
		observer: observer,
		now:      now,
		debug:    debug,
	}
}

// HandleFrame implements crsf.FrameHandler.
func (d *ModuleDispatch) HandleFrame(frame crsf.Frame) {
	if frame.Type == crsf.FrameTypeRadioID {
		if rate, lag, ok := crsf.ParseTimingSync(frame.Payload); ok {
			d.sync.Update(rate, lag, d.now())
			d.timingUpdates++
			if d.debug {
				log.Printf("[CRSF] timing sync: rate=%dus lag=%dus", rate, lag)
			}
		}
		// timing frames are consumed, never forwarded
		return
	}

	if d.observer != nil {
		d.observer.ObserveFrame(frame)
	}

	if d.host != nil {
		if err := d.host.WriteFrame(frame.Raw); err != nil {
			d.writeErrors++
			if d.debug {
				log.Printf("[CRSF] forward to host failed: %v", err)
			}
			return
		}
		d.forwardedFrames++
	}
}

// ForwardedFrames returns the number of frames relayed to the commanding link.
func (d *ModuleDispatch) ForwardedFrames() uint32 { return d.forwardedFrames }

// TimingUpdates returns the number of timing sync frames consumed.
func (d *ModuleDispatch) TimingUpdates() uint32 { return d.timingUpdates }

// WriteErrors returns the number of failed host writes.
func (d *ModuleDispatch) WriteErrors() uint32 { return d.writeErrors }

// HostDispatch is the frame policy for the commanding link: RC frames feed
// the channel store and failsafe monitor, a fixed allow-list of query types
// is queued for pass-through to the module, everything else is dropped.
type HostDispatch struct {
	channels *rc.Channels
	failsafe *rc.Failsafe
	queue    *OutputQueue
	now      Clock
	debug    bool

	rcFramesReceived uint32
	queuedFrames     uint32
	droppedFrames    uint32
	unknownFrames    uint32
}

// NewHostDispatch creates the commanding-link dispatch policy.
func NewHostDispatch(channels *rc.Channels, failsafe *rc.Failsafe, queue *OutputQueue, now Clock, debug bool) *HostDispatch {
	return &HostDispatch{
		channels: channels,
		failsafe: failsafe,
		queue:    queue,
		now:      now,
		debug:    debug,
	}
}

// HandleFrame implements crsf.FrameHandler.
func (d *HostDispatch) HandleFrame(frame crsf.Frame) {
	switch frame.Type {
	case crsf.FrameTypeRCChannels:
		if len(frame.Payload) != crsf.RCChannelsPayloadLen {
			return
		}
		var values [crsf.NumChannels]uint16
		crsf.UnpackChannels(frame.Payload, &values)
		d.channels.SetNative(&values)
		d.failsafe.RecordRCFrame(d.now())
		d.rcFramesReceived++

	case crsf.FrameTypeDevicePing, crsf.FrameTypeParamRead, crsf.FrameTypeParamWrite, crsf.FrameTypeCommand:
		if d.queue.Queue(frame.Raw) {
			d.queuedFrames++
		} else {
			d.droppedFrames++
			if d.debug {
				log.Printf("[CDC] output queue full, dropping frame type 0x%02X", frame.Type)
			}
		}

	default:
		d.unknownFrames++
		if d.debug {
			log.Printf("[CDC] unhandled frame type: 0x%02X", frame.Type)
		}
	}
}

// RCFramesReceived returns the number of RC channel updates applied.
func (d *HostDispatch) RCFramesReceived() uint32 { return d.rcFramesReceived }

// QueuedFrames returns the number of frames queued for pass-through.
func (d *HostDispatch) QueuedFrames() uint32 { return d.queuedFrames }

// DroppedFrames returns the number of pass-through frames lost to queue
// contention.
func (d *HostDispatch) DroppedFrames() uint32 { return d.droppedFrames }

// UnknownFrames returns the number of frames with unrecognized types.
func (d *HostDispatch) UnknownFrames() uint32 { return d.unknownFrames }
