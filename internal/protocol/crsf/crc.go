package crsf

// crcTable is the lookup table for CRC-8 with polynomial 0xD5, built once at
// startup from the bit-serial definition so the two can never disagree.
var crcTable [256]byte

func init() {
	for i := 0; i < 256; i++ {
		crc := byte(i)
		for bit := 0; bit < 8; bit++ {
			if crc&0x80 != 0 {
				crc = (crc << 1) ^ CRCPoly
			} else {
				crc <<= 1
			}
		}
		crcTable[i] = crc
	}
}

// CRC8 computes the CRSF frame CRC (poly 0xD5, init 0x00, no reflection)
// over data. Frames carry this CRC over the type and payload bytes only.
func CRC8(data []byte) byte {
	var crc byte
	for _, b := range data {
		crc = crcTable[crc^b]
	}
	return crc
}
