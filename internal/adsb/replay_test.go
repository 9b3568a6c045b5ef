package adsb_test

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mode1090/internal/adsb"
	"mode1090/internal/beast"
	"mode1090/internal/sink"
)

type stubSink struct {
	attributes []struct{ icaoHex, callsign string }
}

func (s *stubSink) UpdatePath(string, []sink.Point)  {}
func (s *stubSink) UpdatePoint(string, []sink.Point) {}
func (s *stubSink) SetAttributes(icaoHex, callsign, _, _, _ string) {
	s.attributes = append(s.attributes, struct{ icaoHex, callsign string }{icaoHex, callsign})
}
func (s *stubSink) LogLine(string) {}

// TestBeastReplay_FeedsRecordedFrameThroughPipeline exercises the full
// Recorder -> Beast binary bytes -> Replay -> Pipeline.ProcessFrame
// round trip: a frame recorded by Recorder must decode back into the
// same aircraft update a live capture would have produced.
func TestBeastReplay_FeedsRecordedFrameThroughPipeline(t *testing.T) {
	var frame adsb.Frame
	frame.Bits = 112
	frame.Timestamp = time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	copy(frame.Data[:], []byte{
		0x88, 0x4A, 0xC1, 0x93, 0x08, 0x20, 0x1C, 0x30, 0x20, 0x20, 0x20, 0x91, 0x55, 0xC7,
	})

	ok, _ := adsb.NewParityEngine().Validate(frame.Data[:], frame.Bits)
	require.True(t, ok, "fixture frame must carry a valid CRC")

	encoded := beast.EncodeFrame(&frame)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	registry := adsb.NewRegistry(adsb.MaxPathLength, adsb.ICAOStaleTTL*time.Second)
	s := &stubSink{}
	pipeline := adsb.NewPipeline(registry, adsb.NewParityEngine(), s, logger)

	require.NoError(t, beast.Replay(bytes.NewReader(encoded), pipeline, logger))

	require.NotEmpty(t, s.attributes)
	assert.Equal(t, "4AC193", s.attributes[0].icaoHex)
	assert.NotEmpty(t, s.attributes[0].callsign)

	stats := pipeline.Stats()
	assert.Equal(t, uint64(1), stats.FramesAccepted)
	assert.Equal(t, uint64(0), stats.FramesRejected)
}
