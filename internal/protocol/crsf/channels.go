package crsf

// PackChannels packs 16 channel values into the 22-byte RC channels payload.
// Each channel occupies 11 bits, little-bit-first, with no byte alignment
// between fields. Values are masked to 11 bits.
func PackChannels(channels *[NumChannels]uint16, out []byte) {
	_ = out[RCChannelsPayloadLen-1]

	var acc uint32
	var bits uint
	idx := 0
	for i := 0; i < NumChannels; i++ {
		acc |= uint32(channels[i]&0x07FF) << bits
		bits += 11
		for bits >= 8 {
			out[idx] = byte(acc)
			acc >>= 8
			bits -= 8
			idx++
		}
	}
}

// UnpackChannels is the exact inverse of PackChannels.
func UnpackChannels(in []byte, channels *[NumChannels]uint16) {
	_ = in[RCChannelsPayloadLen-1]

	var acc uint32
	var bits uint
	idx := 0
	for i := 0; i < NumChannels; i++ {
		for bits < 11 {
			acc |= uint32(in[idx]) << bits
			bits += 8
			idx++
		}
		channels[i] = uint16(acc & 0x07FF)
		acc >>= 11
		bits -= 11
	}
}
