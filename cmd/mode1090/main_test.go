package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"mode1090/internal/app"
)

func TestShowVersion(t *testing.T) {
	assert.NotPanics(t, func() {
		app.ShowVersion()
	})
}

func TestConfig_DefaultsMatchFlagDefaults(t *testing.T) {
	assert.Equal(t, uint32(1090000000), uint32(app.DefaultFrequency))
	assert.Equal(t, uint32(2000000), uint32(app.DefaultSampleRate))
	assert.Equal(t, 40, app.DefaultGain)
}

func TestSink_VizSinkValuesRoundTripFromFlagString(t *testing.T) {
	tests := []struct {
		flagValue string
		want      app.Sink
	}{
		{"none", app.SinkNone},
		{"sdl", app.SinkSDL},
		{"tui", app.SinkTUI},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, app.Sink(tt.flagValue))
	}
}
