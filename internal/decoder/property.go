package decoder

import (
	"encoding/binary"
	"time"
)

// PropertyFrameDelay identifies the property that stores per-frame delays.
// Its value holds 4 bytes per frame: a little-endian uint32 counting
// hundredths of a second.
const PropertyFrameDelay uint16 = 0x5100

const delayUnit = time.Second / 100

// FrameDelay reads the delay of frame i from a PropertyFrameDelay value.
// A value too short to hold frame i reads as a zero delay.
func FrameDelay(value []byte, i int) time.Duration {
	off := i * 4
	if i < 0 || off+4 > len(value) {
		return 0
	}

	// byte 0 carries bits 0-7, byte 3 carries bits 24-31
	hundredths := uint32(value[off]) |
		uint32(value[off+1])<<8 |
		uint32(value[off+2])<<16 |
		uint32(value[off+3])<<24

	return time.Duration(hundredths) * delayUnit
}

// delayProperty packs GIF delays (hundredths of a second) into a
// PropertyFrameDelay value.
func delayProperty(delays []int) []byte {
	buf := make([]byte, 4*len(delays))
	for i, d := range delays {
		if d < 0 {
			d = 0
		}
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(d))
	}
	return buf
}
