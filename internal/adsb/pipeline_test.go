package adsb

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mode1090/internal/sink"
)

// recordingSink captures every call the pipeline makes so tests can
// assert on the end-to-end behavior without a real rendering backend.
type recordingSink struct {
	attributes []struct{ icaoHex, callsign, speedKts, headingDeg, latlong string }
	lines      []string
}

func (s *recordingSink) UpdatePath(string, []sink.Point)  {}
func (s *recordingSink) UpdatePoint(string, []sink.Point) {}

func (s *recordingSink) SetAttributes(icaoHex, callsign, speedKts, headingDeg, latlong string) {
	s.attributes = append(s.attributes, struct{ icaoHex, callsign, speedKts, headingDeg, latlong string }{
		icaoHex, callsign, speedKts, headingDeg, latlong,
	})
}

func (s *recordingSink) LogLine(line string) {
	s.lines = append(s.lines, line)
}

// bitsOf returns the MSB-first bit sequence of data's first n bytes.
func bitsOf(data []byte, n int) []bool {
	bits := make([]bool, 0, n*8)
	for i := 0; i < n; i++ {
		for b := 7; b >= 0; b-- {
			bits = append(bits, (data[i]>>uint(b))&1 == 1)
		}
	}
	return bits
}

// ppmEncode turns a bit sequence into a 2-samples-per-bit magnitude
// envelope: a high/low sample pair per bit, high first for 1, low
// first for 0 - mirroring SliceBits' a>b convention.
func ppmEncode(bits []bool) []float32 {
	const hi, lo = float32(0.8), float32(0.2)
	out := make([]float32, 0, len(bits)*2)
	for _, b := range bits {
		if b {
			out = append(out, hi, lo)
		} else {
			out = append(out, lo, hi)
		}
	}
	return out
}

// magnitudeToIQ fabricates interleaved I/Q bytes whose magnitude
// envelope (per MagnitudeFromIQ) approximates mag, by driving the I
// component alone and holding Q at its zero-contribution value.
func magnitudeToIQ(mag []float32) []byte {
	buf := make([]byte, len(mag)*2)
	for k, m := range mag {
		buf[2*k] = byte(127.0 + m*127.0)
		buf[2*k+1] = 127
	}
	return buf
}

func TestPipeline_EndToEndIdentificationFrame(t *testing.T) {
	var data [14]byte
	data[0] = 17 << 3 // DF17
	data[1], data[2], data[3] = 0xAB, 0xCD, 0xEF
	// ME field from spec.md §8 scenario 2 (identification, TC 4).
	copy(data[4:11], []byte{0x20, 0x1C, 0x32, 0xC3, 0x97, 0xCF, 0x20})

	crc := checksum(data[:], 112)
	data[11] = byte(crc >> 16)
	data[12] = byte(crc >> 8)
	data[13] = byte(crc)

	_, wantCallsign := DecodeIdentification(data[4:11])
	require.NotEmpty(t, wantCallsign)

	preamble := []float32{0.8, 0.1, 0.8, 0.1, 0.1, 0.1, 0.1, 0.8, 0.1, 0.8, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	body := ppmEncode(bitsOf(data[:], 14))

	samples := make([]float32, 0, len(preamble)+len(body)+40)
	samples = append(samples, make([]float32, 20)...) // leading noise floor
	samples = append(samples, preamble...)
	samples = append(samples, body...)
	samples = append(samples, make([]float32, 20)...) // trailing padding

	iq := magnitudeToIQ(samples)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	registry := NewRegistry(MaxPathLength, 0)
	parity := NewParityEngine()
	fakeSink := &recordingSink{}
	pipeline := NewPipeline(registry, parity, fakeSink, logger)

	pipeline.ProcessSamples(iq)

	stats := pipeline.Stats()
	assert.Equal(t, uint64(1), stats.FramesAccepted)
	assert.Equal(t, uint64(0), stats.FramesRejected)

	require.Len(t, fakeSink.attributes, 1)
	got := fakeSink.attributes[0]
	assert.Equal(t, "ABCDEF", got.icaoHex)
	assert.Equal(t, wantCallsign, got.callsign)
	assert.Equal(t, "pending", got.speedKts)
	assert.Equal(t, "pending", got.headingDeg)

	ac, ok := registry.Get(0xABCDEF)
	require.True(t, ok)
	assert.Equal(t, wantCallsign, ac.Callsign)
}

func TestPipeline_StraddlingBlockBoundaryStillDecodes(t *testing.T) {
	var data [14]byte
	data[0] = 17 << 3
	data[1], data[2], data[3] = 0x11, 0x22, 0x33
	copy(data[4:11], []byte{0x20, 0x1C, 0x32, 0xC3, 0x97, 0xCF, 0x20})
	crc := checksum(data[:], 112)
	data[11] = byte(crc >> 16)
	data[12] = byte(crc >> 8)
	data[13] = byte(crc)

	preamble := []float32{0.8, 0.1, 0.8, 0.1, 0.1, 0.1, 0.1, 0.8, 0.1, 0.8, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	body := ppmEncode(bitsOf(data[:], 14))

	full := make([]float32, 0, len(preamble)+len(body))
	full = append(full, preamble...)
	full = append(full, body...)

	split := 10
	first := magnitudeToIQ(full[:split])
	second := magnitudeToIQ(full[split:])

	logger := logrus.New()
	logger.SetOutput(io.Discard)
	registry := NewRegistry(MaxPathLength, 0)
	parity := NewParityEngine()
	fakeSink := &recordingSink{}
	pipeline := NewPipeline(registry, parity, fakeSink, logger)

	pipeline.ProcessSamples(first)
	pipeline.ProcessSamples(second)

	assert.Equal(t, uint64(1), pipeline.Stats().FramesAccepted)
}
