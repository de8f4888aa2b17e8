package crsf

import "fmt"

// Frame is a validated view of a complete CRSF frame.
//
// Raw and Payload alias the buffer the frame was assembled in; callers that
// keep a frame past the current dispatch must copy them.
type Frame struct {
	Addr    byte
	Type    byte
	Payload []byte
	Raw     []byte // address + length + type + payload + crc
}

// Validate checks a complete raw frame: declared length against actual size
// and the CRC trailer over type + payload. On success the returned Frame
// aliases raw.
func Validate(raw []byte) (Frame, error) {
	if len(raw) < 4 {
		return Frame{}, fmt.Errorf("frame too short: %d bytes", len(raw))
	}

	length := raw[1]
	if length < MinLengthByte || length > MaxLengthByte {
		return Frame{}, fmt.Errorf("invalid length byte 0x%02X", length)
	}
	if int(length)+2 != len(raw) {
		return Frame{}, fmt.Errorf("declared length %d does not match frame size %d", length, len(raw))
	}

	want := CRC8(raw[2 : len(raw)-1])
	got := raw[len(raw)-1]
	if want != got {
		return Frame{}, fmt.Errorf("CRC mismatch: got 0x%02X, want 0x%02X", got, want)
	}

	return Frame{
		Addr:    raw[0],
		Type:    raw[2],
		Payload: raw[3 : len(raw)-1],
		Raw:     raw,
	}, nil
}

// Build constructs a frame with the simple 3-byte header:
// [addr][len][type][payload...][crc].
func Build(addr, frameType byte, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+4)
	frame = append(frame, addr, byte(1+len(payload)+1), frameType)
	frame = append(frame, payload...)
	frame = append(frame, CRC8(frame[2:]))
	return frame
}

// BuildExt constructs a frame with the extended 5-byte header used for
// device discovery and parameter traffic: dest and origin are inserted
// between the type and the payload and are covered by the CRC.
func BuildExt(addr, frameType, dest, origin byte, payload []byte) []byte {
	frame := make([]byte, 0, len(payload)+6)
	frame = append(frame, addr, byte(3+len(payload)+1), frameType, dest, origin)
	frame = append(frame, payload...)
	frame = append(frame, CRC8(frame[2:]))
	return frame
}

// BuildRCFrame builds an RC channels frame addressed to the TX module.
func BuildRCFrame(channels *[NumChannels]uint16) []byte {
	frame := make([]byte, RCFrameLen)
	frame[0] = AddrModule
	frame[1] = RCChannelsPayloadLen + 2
	frame[2] = FrameTypeRCChannels
	PackChannels(channels, frame[3:3+RCChannelsPayloadLen])
	frame[RCFrameLen-1] = CRC8(frame[2 : RCFrameLen-1])
	return frame
}

// BuildPingFrame builds a broadcast device ping originated by the handset.
func BuildPingFrame() []byte {
	return BuildExt(SyncByte, FrameTypeDevicePing, AddrBroadcast, AddrRadio, nil)
}

// BuildParamReadFrame builds a parameter read request for one field chunk of
// the addressed device.
func BuildParamReadFrame(device, param, chunk byte) []byte {
	return BuildExt(SyncByte, FrameTypeParamRead, device, AddrRadio, []byte{param, chunk})
}
