package beast

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"mode1090/internal/adsb"
	"mode1090/internal/logging"
)

// Recorder implements adsb.FrameRecorder, appending every accepted
// DF17/18 frame to a rotated log in Beast binary wire format — the
// same format internal/beast's Decoder reads back, so a Recorder's
// output is byte-for-byte replayable through Decoder.Decode.
type Recorder struct {
	logRotator *logging.LogRotator
	logger     *logrus.Logger
}

// NewRecorder creates a Beast binary recorder backed by logRotator.
func NewRecorder(logRotator *logging.LogRotator, logger *logrus.Logger) *Recorder {
	return &Recorder{logRotator: logRotator, logger: logger}
}

// RecordFrame appends f, Beast-encoded, to the rotator's current file.
func (r *Recorder) RecordFrame(f *adsb.Frame) error {
	writer, err := r.logRotator.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get log writer: %w", err)
	}

	if _, err := writer.Write(EncodeFrame(f)); err != nil {
		return fmt.Errorf("failed to write beast frame: %w", err)
	}
	return nil
}

// EncodeFrame renders f in Beast binary format: sync byte, message
// type, a 6-byte timestamp (nanoseconds since f.Timestamp's day start,
// scaled to the 12MHz counter Beast uses), a signal placeholder, and
// the frame payload with 0x1A bytes escaped.
func EncodeFrame(f *adsb.Frame) []byte {
	msgType := byte(ModeS)
	payloadLen := 7
	if f.Bits == 112 {
		msgType = ModeSLong
		payloadLen = 14
	}

	dayStart := time.Date(f.Timestamp.Year(), f.Timestamp.Month(), f.Timestamp.Day(), 0, 0, 0, 0, f.Timestamp.Location())
	counter := uint64(f.Timestamp.Sub(dayStart).Nanoseconds()) * 12 / 1000

	header := make([]byte, 0, 9)
	header = append(header, SyncByte, msgType)
	for i := 5; i >= 0; i-- {
		header = append(header, byte(counter>>(8*uint(i))))
	}
	header = append(header, 0) // signal strength: unavailable from the demodulator

	escaped := make([]byte, 0, payloadLen+2)
	for _, b := range f.Data[:payloadLen] {
		escaped = append(escaped, b)
		if b == SyncByte {
			escaped = append(escaped, SyncByte)
		}
	}

	out := make([]byte, 0, len(header)+len(escaped))
	out = append(out, header...)
	out = append(out, escaped...)
	return out
}
