package crsf

import (
	"bytes"
	"testing"
)

func TestBuildPingFrame(t *testing.T) {
	want := []byte{0xC8, 0x04, 0x28, 0x00, 0xEA, 0x54}
	if got := BuildPingFrame(); !bytes.Equal(got, want) {
		t.Errorf("BuildPingFrame() = % X, want % X", got, want)
	}
}

func TestBuildParamReadFrame(t *testing.T) {
	frame := BuildParamReadFrame(AddrModule, 5, 0)

	if len(frame) != 8 {
		t.Fatalf("frame length = %d, want 8", len(frame))
	}
	if frame[0] != SyncByte || frame[1] != 6 || frame[2] != FrameTypeParamRead {
		t.Errorf("bad header: % X", frame[:3])
	}
	if frame[3] != AddrModule || frame[4] != AddrRadio {
		t.Errorf("bad addressing: dest=0x%02X origin=0x%02X", frame[3], frame[4])
	}
	if frame[5] != 5 || frame[6] != 0 {
		t.Errorf("bad payload: % X", frame[5:7])
	}
	if want := CRC8(frame[2:7]); frame[7] != want {
		t.Errorf("CRC = 0x%02X, want 0x%02X", frame[7], want)
	}
}

func TestBuildRCFrame(t *testing.T) {
	var channels [NumChannels]uint16
	for i := range channels {
		channels[i] = ChannelCenter
	}

	frame := BuildRCFrame(&channels)

	if len(frame) != RCFrameLen {
		t.Fatalf("frame length = %d, want %d", len(frame), RCFrameLen)
	}
	if frame[0] != AddrModule {
		t.Errorf("address = 0x%02X, want 0x%02X", frame[0], AddrModule)
	}
	if frame[1] != RCChannelsPayloadLen+2 {
		t.Errorf("length byte = %d, want %d", frame[1], RCChannelsPayloadLen+2)
	}
	if frame[2] != FrameTypeRCChannels {
		t.Errorf("type = 0x%02X, want 0x%02X", frame[2], FrameTypeRCChannels)
	}
	if want := CRC8(frame[2 : RCFrameLen-1]); frame[RCFrameLen-1] != want {
		t.Errorf("CRC = 0x%02X, want 0x%02X", frame[RCFrameLen-1], want)
	}

	// it must validate and unpack back to the input
	parsed, err := Validate(frame)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	var got [NumChannels]uint16
	UnpackChannels(parsed.Payload, &got)
	if got != channels {
		t.Errorf("unpacked channels = %v, want %v", got, channels)
	}
}

func TestValidate(t *testing.T) {
	good := BuildRCFrame(&[NumChannels]uint16{})

	tests := []struct {
		name      string
		mutate    func([]byte) []byte
		expectErr bool
	}{
		{"valid frame", func(f []byte) []byte { return f }, false},
		{"corrupted CRC", func(f []byte) []byte {
			f[len(f)-1] ^= 0xFF
			return f
		}, true},
		{"corrupted payload byte", func(f []byte) []byte {
			f[10] ^= 0x01
			return f
		}, true},
		{"truncated", func(f []byte) []byte { return f[:len(f)-3] }, true},
		{"length byte too small", func(f []byte) []byte {
			f[1] = 1
			return f
		}, true},
		{"length byte too large", func(f []byte) []byte {
			f[1] = MaxLengthByte + 1
			return f
		}, true},
		{"too short for any frame", func(f []byte) []byte { return f[:3] }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := make([]byte, len(good))
			copy(frame, good)
			frame = tt.mutate(frame)

			_, err := Validate(frame)
			if tt.expectErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.expectErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidateParsesFields(t *testing.T) {
	frame := Build(AddrRadio, FrameTypeHeartbeat, []byte{0xAB, 0xCD})

	parsed, err := Validate(frame)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if parsed.Addr != AddrRadio {
		t.Errorf("Addr = 0x%02X, want 0x%02X", parsed.Addr, AddrRadio)
	}
	if parsed.Type != FrameTypeHeartbeat {
		t.Errorf("Type = 0x%02X, want 0x%02X", parsed.Type, FrameTypeHeartbeat)
	}
	if !bytes.Equal(parsed.Payload, []byte{0xAB, 0xCD}) {
		t.Errorf("Payload = % X, want AB CD", parsed.Payload)
	}
}
