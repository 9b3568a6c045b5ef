package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeAirbornePosition_AltitudeQ1(t *testing.T) {
	// spec.md §8 scenario 4: code 0000 0011 0011 0000 -> combined 0x190
	// -> 400*25-1000 = 9000 ft. Build a minimal ME field carrying just
	// that altitude code in the expected bit positions.
	r := &bitWriter{}
	r.writeBits(9, 5)               // type code (airborne position)
	r.writeBits(0, 2)               // surveillance status
	r.writeBits(0, 1)               // single antenna
	r.writeBits(0b000001100110000, 12)
	r.writeBits(0, 1) // time flag
	r.writeBits(0, 1) // odd/even flag
	r.writeBits(0, 17)
	r.writeBits(0, 17)

	pos := DecodeAirbornePosition(9, r.bytes(7))

	assert.Equal(t, AltitudeFeet, pos.Altitude.Unit)
	assert.Equal(t, uint32(9000), pos.Altitude.Value)
}

func TestAltitude_ConvertersRoundTripApproximately(t *testing.T) {
	feet := Altitude{Unit: AltitudeFeet, Value: 10000}
	meters := feet.ToMeters()
	back := meters.ToFeet()

	assert.InDelta(t, float64(feet.Value), float64(back.Value), 2)
}

// bitWriter is a tiny MSB-first bit packer used only by tests to build
// synthetic ME fields without hand-computing byte layouts.
type bitWriter struct {
	bits []bool
}

func (w *bitWriter) writeBits(value uint32, count int) {
	for i := count - 1; i >= 0; i-- {
		w.bits = append(w.bits, (value>>uint(i))&1 == 1)
	}
}

func (w *bitWriter) bytes(n int) []byte {
	out := make([]byte, n)
	for i, b := range w.bits {
		if b {
			out[i/8] |= 1 << (7 - (i % 8))
		}
	}
	return out
}
