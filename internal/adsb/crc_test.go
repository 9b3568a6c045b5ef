package adsb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// knownGoodFrame is a synthetic but internally-consistent DF17 frame:
// its trailing 3 bytes are set to the CRC of the preceding 11, so
// Validate reports ok and the correction tests have a stable baseline.
func knownGoodFrame() [14]byte {
	var data [14]byte
	data[0] = 17 << 3 // DF17
	data[1], data[2], data[3] = 0xAB, 0xCD, 0xEF
	data[4] = 1 << 3 // TC 1 (identification)
	data[5] = 0x11
	data[6] = 0x22
	data[7] = 0x33
	data[8] = 0x44
	data[9] = 0x55
	data[10] = 0x66

	crc := checksum(data[:], 112)
	data[11] = byte(crc >> 16)
	data[12] = byte(crc >> 8)
	data[13] = byte(crc)
	return data
}

func TestParityEngine_ValidatesKnownGoodFrame(t *testing.T) {
	data := knownGoodFrame()
	engine := NewParityEngine()

	ok, _ := engine.Validate(data[:], 112)
	assert.True(t, ok)
}

func TestParityEngine_CorrectsSingleBitFlip(t *testing.T) {
	original := knownGoodFrame()
	flipped := original
	// Flip bit 40 (byte 5, bit 0 from MSB).
	flipped[5] ^= 1 << 7

	engine := NewParityEngine()
	ok, _ := engine.Validate(flipped[:], 112)
	require.False(t, ok)

	pos, corrected := engine.CorrectSingleBit(flipped[:], 112)
	require.True(t, corrected)
	assert.Equal(t, 40, pos)
	assert.Equal(t, original, flipped)
}

func TestParityEngine_DeclinesTwoFlipsWhenDoubleDisabled(t *testing.T) {
	original := knownGoodFrame()
	flipped := original
	flipped[5] ^= 1 << 7
	flipped[6] ^= 1 << 3

	engine := NewParityEngine()
	_, corrected := engine.CorrectSingleBit(flipped[:], 112)
	assert.False(t, corrected)
}

func TestParityEngine_CorrectsTwoFlipsWhenEnabled(t *testing.T) {
	original := knownGoodFrame()
	flipped := original
	flipped[5] ^= 1 << 7
	flipped[6] ^= 1 << 3

	engine := &ParityEngine{EnableDoubleBitCorrection: true}
	_, _, corrected := engine.CorrectDoubleBit(flipped[:], 112)
	assert.True(t, corrected)
	assert.Equal(t, original, flipped)
}

func TestGrayToBinary_RoundTrips(t *testing.T) {
	for x := uint32(0); x < 4096; x++ {
		gray := x ^ (x >> 1)
		assert.Equal(t, x, grayToBinary(gray))
	}
}
