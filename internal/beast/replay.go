package beast

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"mode1090/internal/adsb"
)

// Replay decodes Beast binary messages from r and feeds each Mode S
// short/long message into pipeline, bypassing the preamble scanner and
// PPM bit slicer since the frames are already demodulated. It is the
// read-side counterpart to Recorder: a file produced by Recorder is
// replayable here unchanged.
func Replay(r io.Reader, pipeline *adsb.Pipeline, logger *logrus.Logger) error {
	decoder := NewDecoder(logger)
	buf := make([]byte, 4096)

	for {
		n, err := r.Read(buf)
		if n > 0 {
			messages, decodeErr := decoder.Decode(buf[:n])
			if decodeErr != nil {
				return fmt.Errorf("beast replay: %w", decodeErr)
			}
			for _, msg := range messages {
				feedPipeline(msg, pipeline)
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("beast replay: %w", err)
		}
	}
}

func feedPipeline(msg *Message, pipeline *adsb.Pipeline) {
	var bits int
	switch msg.MessageType {
	case ModeS:
		bits = 56
	case ModeSLong:
		bits = 112
	default:
		return // Mode A/C and status messages carry no ADS-B frame
	}

	pipeline.ProcessFrame(msg.Data, bits, msg.Timestamp)
}
