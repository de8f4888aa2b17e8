package crsf

// CRSF frame types
const (
	FrameTypeGPS            = 0x02
	FrameTypeVario          = 0x07
	FrameTypeBatterySensor  = 0x08
	FrameTypeHeartbeat      = 0x0B
	FrameTypeLinkStatistics = 0x14
	FrameTypeRCChannels     = 0x16 // RC channels packed, 16x11 bit
	FrameTypeAttitude       = 0x1E
	FrameTypeFlightMode     = 0x21
	FrameTypeDevicePing     = 0x28
	FrameTypeDeviceInfo     = 0x29
	FrameTypeParamEntry     = 0x2B
	FrameTypeParamRead      = 0x2C
	FrameTypeParamWrite     = 0x2D
	FrameTypeCommand        = 0x32
	FrameTypeRadioID        = 0x3A // timing/sync frames from the TX module
	FrameTypeMSPRequest     = 0x7A
	FrameTypeMSPResponse    = 0x7B
	FrameTypeMSPWrite       = 0x7C
)

// CRSF device addresses
const (
	AddrBroadcast        = 0x00
	AddrUSB              = 0x10
	AddrBluetooth        = 0x12
	AddrCurrentSensor    = 0xC0
	AddrGPS              = 0xC2
	AddrFlightController = 0xC8 // also the sync byte for handset->module frames
	AddrRaceTag          = 0xCC
	AddrRadio            = 0xEA // radio transmitter / handset
	AddrReceiver         = 0xEC
	AddrModule           = 0xEE // CRSF transmitter module
	AddrELRSLua          = 0xEF
)

// SyncByte is the leading byte used for frames originated by the handset.
const SyncByte = AddrFlightController

// RadioID subcommands
const (
	SubcmdTiming = 0x10 // OpenTX-style mixer sync (rate + offset)
)

// Frame and payload sizes
const (
	MaxFrameSize         = 64 // address + length + type + payload + crc
	MaxPayloadSize       = 60
	RCChannelsPayloadLen = 22 // 16 channels x 11 bit
	RCFrameLen           = RCChannelsPayloadLen + 4
	LinkStatsPayloadLen  = 10

	// Valid range for the length byte (type + payload + crc)
	MinLengthByte = 2
	MaxLengthByte = MaxFrameSize - 2
)

// Native channel values (11-bit encoding)
const (
	ChannelMin    = 172  // ~987us in the standard profile
	ChannelValue  = 191  // 1000us in the standard profile
	ChannelCenter = 992  // 1500us
	ChannelMax2k  = 1792 // 2000us in the standard profile
	ChannelMax    = 1811 // ~2012us in the standard profile

	ChannelFullMin = 0    // 1000us in the full-range profile
	ChannelFullMax = 1984 // 2000us in the full-range profile

	NumChannels = 16
)

// CRCPoly is the CRSF frame CRC-8 polynomial.
const CRCPoly = 0xD5
