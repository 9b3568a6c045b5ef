package app

// Default configuration constants.
const (
	DefaultFrequency  = 1090000000 // 1090 MHz
	DefaultSampleRate = 2000000    // 2 Msamples/s, the PPM bit-slicing model's native rate
	DefaultGain       = 40         // Manual gain, dB (0 selects auto gain)
)

// Sink selects which Visualization Sink implementation the
// application drives alongside the always-on recording sinks.
type Sink string

const (
	SinkNone Sink = "none"
	SinkSDL  Sink = "sdl"
	SinkTUI  Sink = "tui"
)

// Config holds application configuration.
type Config struct {
	Frequency       uint32
	SampleRate      uint32
	Gain            int
	DeviceIndex     int
	ReplayFile      string // non-empty selects a FileSource instead of a live device
	BeastReplayFile string // non-empty replays a recorded Beast binary log instead of capturing/decoding IQ
	LogDir          string
	LogRotateUTC    bool
	VizSink         Sink
	Verbose         bool
	ShowVersion     bool
}
