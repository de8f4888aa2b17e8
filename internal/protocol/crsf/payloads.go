package crsf

import (
	"encoding/binary"
	"fmt"
)

// ParseTimingSync extracts the refresh rate and input lag from a RADIO_ID
// frame payload: [dest][origin][subcmd][rate:4][offset:4], rate and offset
// big-endian in 100ns units. Returns false when the payload is not a timing
// subcommand. The results are converted to microseconds.
func ParseTimingSync(payload []byte) (refreshRateUs, inputLagUs int32, ok bool) {
	if len(payload) < 11 {
		return 0, 0, false
	}
	if payload[2] != SubcmdTiming {
		return 0, 0, false
	}

	rate := int32(binary.BigEndian.Uint32(payload[3:7]))
	offset := int32(binary.BigEndian.Uint32(payload[7:11]))

	return rate / 10, offset / 10, true
}

// LinkStatistics is the decoded LINK_STATISTICS payload. The bridge only
// observes these for connection logging; the frame itself is forwarded
// verbatim.
type LinkStatistics struct {
	UplinkRSSI1       uint8
	UplinkRSSI2       uint8
	UplinkLinkQuality uint8
	UplinkSNR         int8
	ActiveAntenna     uint8
	RFMode            uint8
	UplinkTXPower     uint8
	DownlinkRSSI      uint8
	DownlinkQuality   uint8
	DownlinkSNR       int8
}

// ParseLinkStatistics decodes a LINK_STATISTICS payload.
func ParseLinkStatistics(payload []byte) (LinkStatistics, error) {
	if len(payload) < LinkStatsPayloadLen {
		return LinkStatistics{}, fmt.Errorf("link statistics payload too short: %d bytes", len(payload))
	}
	return LinkStatistics{
		UplinkRSSI1:       payload[0],
		UplinkRSSI2:       payload[1],
		UplinkLinkQuality: payload[2],
		UplinkSNR:         int8(payload[3]),
		ActiveAntenna:     payload[4],
		RFMode:            payload[5],
		UplinkTXPower:     payload[6],
		DownlinkRSSI:      payload[7],
		DownlinkQuality:   payload[8],
		DownlinkSNR:       int8(payload[9]),
	}, nil
}

// DeviceInfo is the decoded DEVICE_INFO payload, sent by devices in reply to
// a device ping.
type DeviceInfo struct {
	Dest         byte
	Origin       byte
	Name         string
	SerialNumber uint32
	HardwareID   uint32
	SoftwareID   uint32
	FieldCount   uint8
	ParamVersion uint8
}

// ParseDeviceInfo decodes a DEVICE_INFO payload:
// [dest][origin][name\0][serial:4][hw:4][sw:4][fieldCount][paramVersion].
func ParseDeviceInfo(payload []byte) (DeviceInfo, error) {
	if len(payload) < 3 {
		return DeviceInfo{}, fmt.Errorf("device info payload too short: %d bytes", len(payload))
	}

	info := DeviceInfo{
		Dest:   payload[0],
		Origin: payload[1],
	}

	// NUL-terminated display name
	rest := payload[2:]
	nameEnd := -1
	for i, b := range rest {
		if b == 0 {
			nameEnd = i
			break
		}
	}
	if nameEnd < 0 {
		return DeviceInfo{}, fmt.Errorf("device info name not terminated")
	}
	info.Name = string(rest[:nameEnd])

	rest = rest[nameEnd+1:]
	if len(rest) < 14 {
		return DeviceInfo{}, fmt.Errorf("device info payload truncated after name: %d bytes", len(rest))
	}
	info.SerialNumber = binary.BigEndian.Uint32(rest[0:4])
	info.HardwareID = binary.BigEndian.Uint32(rest[4:8])
	info.SoftwareID = binary.BigEndian.Uint32(rest[8:12])
	info.FieldCount = rest[12]
	info.ParamVersion = rest[13]

	return info, nil
}
