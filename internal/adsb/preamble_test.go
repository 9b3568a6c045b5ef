package adsb

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func syntheticPreamble() []float32 {
	// "1010000101000000": high samples at 0, 2, 7, 9.
	hi, lo := float32(1.0), float32(0.1)
	pattern := []float32{hi, lo, hi, lo, lo, lo, lo, hi, lo, hi, lo, lo, lo, lo, lo, lo}
	return pattern
}

func TestIsPreamble_AcceptsCanonicalPattern(t *testing.T) {
	assert.True(t, isPreamble(syntheticPreamble()))
}

func TestIsPreamble_RejectsFlatSignal(t *testing.T) {
	flat := make([]float32, 16)
	for i := range flat {
		flat[i] = 0.5
	}
	assert.False(t, isPreamble(flat))
}

func TestScanPreambles_PositionEquivariant(t *testing.T) {
	base := make([]float32, 0, 512)
	base = append(base, make([]float32, 50)...)
	base = append(base, syntheticPreamble()...)
	base = append(base, make([]float32, frameSampleLen)...)

	shifted := make([]float32, 0, len(base)+7)
	shifted = append(shifted, make([]float32, 7)...)
	shifted = append(shifted, base...)

	baseStarts := ScanPreambles(base)
	shiftedStarts := ScanPreambles(shifted)

	if assert.NotEmpty(t, baseStarts) && assert.NotEmpty(t, shiftedStarts) {
		assert.Equal(t, baseStarts[0]+7, shiftedStarts[0])
	}
}

func TestScanPreambles_RandomNoiseRejectedByCRC(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	engine := NewParityEngine()

	accepted := 0
	const trials = 2000

	for i := 0; i < trials; i++ {
		window := make([]float32, preambleLen+frameSampleLen)
		for j := range window {
			window[j] = rng.Float32()
		}
		if !isPreamble(window[:preambleLen]) {
			continue
		}
		frame := SliceBits(window[preambleLen:])
		df := frame[0] >> 3
		bits := 112
		if df <= 11 {
			bits = 56
		}
		if ok, _ := engine.Validate(frame[:], bits); ok {
			accepted++
		}
	}

	// Overwhelmingly unlikely for a random window to pass both the
	// preamble pattern and a 24-bit CRC by chance.
	assert.LessOrEqual(t, accepted, 1)
}
