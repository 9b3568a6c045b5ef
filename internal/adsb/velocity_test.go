package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeVelocity_GroundSpeedSubtype1(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(19, 5)      // type code
	w.writeBits(1, 3)       // subtype: ground speed, normal
	w.writeBits(0, 5)       // intent change / IFR / NAC-v
	w.writeBits(0, 1)       // E/W direction: east
	w.writeBits(101, 10)    // E/W velocity
	w.writeBits(1, 1)       // N/S direction: south
	w.writeBits(51, 10)     // N/S velocity
	w.writeBits(0, 1)       // vertical rate source
	w.writeBits(0, 1)       // vertical rate sign
	w.writeBits(0, 9)       // vertical rate
	w.writeBits(0, 2)       // reserved/unused padding to byte boundary

	v, ok := DecodeVelocity(w.bytes(9))

	require.True(t, ok)
	assert.Equal(t, SubtypeGroundSpeedNormal, v.Subtype)
	assert.InDelta(t, 100, v.VxEast, 0.5)
	assert.InDelta(t, -50, v.VyNorth, 0.5)
}

func TestDecodeVelocity_UnknownSubtypeRejected(t *testing.T) {
	w := &bitWriter{}
	w.writeBits(19, 5)
	w.writeBits(0, 3) // subtype 0: reserved
	w.writeBits(0, 48)

	_, ok := DecodeVelocity(w.bytes(7))
	assert.False(t, ok)
}
