// Package timing derives the outbound RC frame cadence from the periodic
// timing-correction frames sent by the TX module.
package timing

// Period limits in microseconds.
const (
	DefaultPeriodUs = 4000 // 250Hz until the module advertises a rate
	MinPeriodUs     = 1000
	MaxPeriodUs     = 50000
)

// ModuleSync consumes timing corrections (refresh rate plus a signed input
// lag) and produces the adjusted inter-frame period. The lag acts as a
// negative-feedback integrator: each AdjustedPeriod call consumes exactly
// the correction it applied, so a correction truncated by clamping carries
// its remainder into later periods.
type ModuleSync struct {
	refreshRate int32 // us
	inputLag    int32 // us
	lastUpdate  uint32
	valid       bool

	defaultPeriod uint32
	minPeriod     int32
	maxPeriod     int32
}

// NewModuleSync creates a synchronizer with the given fallback period and
// period clamps; zeros select the defaults.
func NewModuleSync(defaultPeriodUs, minPeriodUs, maxPeriodUs uint32) *ModuleSync {
	if defaultPeriodUs == 0 {
		defaultPeriodUs = DefaultPeriodUs
	}
	if minPeriodUs == 0 {
		minPeriodUs = MinPeriodUs
	}
	if maxPeriodUs == 0 {
		maxPeriodUs = MaxPeriodUs
	}
	return &ModuleSync{
		defaultPeriod: defaultPeriodUs,
		minPeriod:     int32(minPeriodUs),
		maxPeriod:     int32(maxPeriodUs),
	}
}

// Update stores a timing correction received from the module.
func (s *ModuleSync) Update(refreshRateUs, inputLagUs int32, nowUs uint32) {
	s.refreshRate = refreshRateUs
	s.inputLag = inputLagUs
	s.lastUpdate = nowUs
	s.valid = true
}

// AdjustedPeriod returns the period to wait before the next transmission
// and consumes the corresponding amount of stored lag. Before the first
// Update it returns the configured fallback period.
func (s *ModuleSync) AdjustedPeriod() uint32 {
	if !s.valid {
		return s.defaultPeriod
	}

	adjusted := s.refreshRate + s.inputLag
	if adjusted < s.minPeriod {
		adjusted = s.minPeriod
	} else if adjusted > s.maxPeriod {
		adjusted = s.maxPeriod
	}

	s.inputLag -= adjusted - s.refreshRate

	return uint32(adjusted)
}

// Valid reports whether a timing correction has ever been received.
func (s *ModuleSync) Valid() bool { return s.valid }

// RefreshRate returns the last advertised refresh rate in microseconds.
func (s *ModuleSync) RefreshRate() int32 { return s.refreshRate }

// InputLag returns the lag not yet consumed, in microseconds.
func (s *ModuleSync) InputLag() int32 { return s.inputLag }

// Age returns the microseconds elapsed since the last update, using
// wraparound-safe arithmetic. Zero when no update was ever received.
func (s *ModuleSync) Age(nowUs uint32) uint32 {
	if !s.valid {
		return 0
	}
	return nowUs - s.lastUpdate
}
