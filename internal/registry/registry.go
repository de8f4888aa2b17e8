// Package registry keeps track of CRSF devices observed on the module
// link. DEVICE_INFO replies passing through the bridge populate an
// in-memory cache and, when a database is configured, a persistent device
// table. Observation never alters forwarding.
package registry

import (
	"log"
	"sync"
	"time"

	"github.com/dbehnke/crsfbridge/internal/database"
	"github.com/dbehnke/crsfbridge/internal/protocol/crsf"
)

// Registry observes pass-through traffic and records discovered devices.
// A nil repository keeps the registry memory-only.
type Registry struct {
	repository *database.DeviceRepository
	debug      bool

	mu       sync.RWMutex
	devices  map[uint8]crsf.DeviceInfo
	lastSeen map[uint8]time.Time

	lastStats  crsf.LinkStatistics
	statsValid bool
	linkUp     bool

	deviceInfoFrames uint32
	linkStatsFrames  uint32
	parseErrors      uint32
	storeErrors      uint32
}

// New creates a registry. repository may be nil.
func New(repository *database.DeviceRepository, debug bool) *Registry {
	return &Registry{
		repository: repository,
		debug:      debug,
		devices:    make(map[uint8]crsf.DeviceInfo),
		lastSeen:   make(map[uint8]time.Time),
	}
}

// ObserveFrame inspects a frame being forwarded from the module to the
// commanding link. Only DEVICE_INFO and LINK_STATISTICS are examined.
func (r *Registry) ObserveFrame(frame crsf.Frame) {
	switch frame.Type {
	case crsf.FrameTypeDeviceInfo:
		r.observeDeviceInfo(frame)
	case crsf.FrameTypeLinkStatistics:
		r.observeLinkStatistics(frame)
	}
}

func (r *Registry) observeDeviceInfo(frame crsf.Frame) {
	info, err := crsf.ParseDeviceInfo(frame.Payload)
	if err != nil {
		r.mu.Lock()
		r.parseErrors++
		r.mu.Unlock()
		if r.debug {
			log.Printf("[REGISTRY] bad device info payload: %v", err)
		}
		return
	}

	r.mu.Lock()
	_, known := r.devices[info.Origin]
	r.devices[info.Origin] = info
	r.lastSeen[info.Origin] = time.Now()
	r.deviceInfoFrames++
	r.mu.Unlock()

	if !known {
		log.Printf("[REGISTRY] discovered device %q at 0x%02X (serial %d, %d fields)",
			info.Name, info.Origin, info.SerialNumber, info.FieldCount)
	}

	if r.repository != nil {
		device := &database.Device{
			Address:      info.Origin,
			Name:         info.Name,
			SerialNumber: info.SerialNumber,
			HardwareID:   info.HardwareID,
			SoftwareID:   info.SoftwareID,
			FieldCount:   info.FieldCount,
			ParamVersion: info.ParamVersion,
		}
		if err := r.repository.Record(device); err != nil {
			r.mu.Lock()
			r.storeErrors++
			r.mu.Unlock()
			if r.debug {
				log.Printf("[REGISTRY] persist device 0x%02X failed: %v", info.Origin, err)
			}
		}
	}
}

func (r *Registry) observeLinkStatistics(frame crsf.Frame) {
	stats, err := crsf.ParseLinkStatistics(frame.Payload)
	if err != nil {
		r.mu.Lock()
		r.parseErrors++
		r.mu.Unlock()
		return
	}

	r.mu.Lock()
	wasUp := r.linkUp
	r.lastStats = stats
	r.statsValid = true
	r.linkUp = stats.UplinkLinkQuality > 0
	isUp := r.linkUp
	r.linkStatsFrames++
	r.mu.Unlock()

	if isUp != wasUp {
		if isUp {
			log.Printf("[REGISTRY] link up: LQ=%d%% RSSI=-%ddBm", stats.UplinkLinkQuality, stats.UplinkRSSI1)
		} else {
			log.Printf("[REGISTRY] link down")
		}
	}
}

// Device returns the cached info for an address.
func (r *Registry) Device(address uint8) (crsf.DeviceInfo, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	info, ok := r.devices[address]
	return info, ok
}

// Devices returns a snapshot of all cached devices.
func (r *Registry) Devices() []crsf.DeviceInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]crsf.DeviceInfo, 0, len(r.devices))
	for _, info := range r.devices {
		out = append(out, info)
	}
	return out
}

// LinkStatistics returns the last observed link statistics.
func (r *Registry) LinkStatistics() (crsf.LinkStatistics, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lastStats, r.statsValid
}

// Stats is a snapshot of the registry counters.
type Stats struct {
	DeviceInfoFrames uint32
	LinkStatsFrames  uint32
	ParseErrors      uint32
	StoreErrors      uint32
	KnownDevices     int
}

// Snapshot returns the current counters.
func (r *Registry) Snapshot() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Stats{
		DeviceInfoFrames: r.deviceInfoFrames,
		LinkStatsFrames:  r.linkStatsFrames,
		ParseErrors:      r.parseErrors,
		StoreErrors:      r.storeErrors,
		KnownDevices:     len(r.devices),
	}
}
