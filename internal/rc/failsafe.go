package rc

// DefaultFailsafeTimeoutUs is the cutoff after which a silent commanding
// link suppresses RC transmission.
const DefaultFailsafeTimeoutUs = 100000

// Failsafe tracks the recency of RC updates from the commanding link and
// gates outbound RC transmission. Timestamps are a free-running microsecond
// counter; elapsed time is computed with unsigned modular subtraction so
// counter wraparound does not produce false positives.
type Failsafe struct {
	timeoutUs   uint32
	lastRCFrame uint32
	seen        bool
}

// NewFailsafe creates a failsafe monitor. A timeout of 0 selects the
// default 100ms.
func NewFailsafe(timeoutUs uint32) *Failsafe {
	if timeoutUs == 0 {
		timeoutUs = DefaultFailsafeTimeoutUs
	}
	return &Failsafe{timeoutUs: timeoutUs}
}

// RecordRCFrame marks an RC frame as received at the given time.
func (f *Failsafe) RecordRCFrame(nowUs uint32) {
	f.lastRCFrame = nowUs
	f.seen = true
}

// Active reports whether failsafe is engaged: no RC frame was ever
// received, or the last one is older than the timeout.
func (f *Failsafe) Active(nowUs uint32) bool {
	if !f.seen {
		return true
	}
	return nowUs-f.lastRCFrame > f.timeoutUs
}

// LastRCFrame returns the timestamp of the last recorded RC frame and
// whether one was ever recorded.
func (f *Failsafe) LastRCFrame() (uint32, bool) {
	return f.lastRCFrame, f.seen
}
