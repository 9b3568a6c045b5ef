package app

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestConfig_Defaults(t *testing.T) {
	cfg := Config{
		Frequency:    DefaultFrequency,
		SampleRate:   DefaultSampleRate,
		Gain:         DefaultGain,
		DeviceIndex:  0,
		LogDir:       "./logs",
		LogRotateUTC: true,
		VizSink:      SinkNone,
	}

	assert.Equal(t, uint32(1090000000), cfg.Frequency)
	assert.Equal(t, uint32(2000000), cfg.SampleRate)
	assert.Equal(t, 40, cfg.Gain)
}

func TestShowVersion_DoesNotPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		ShowVersion()
	})
}

func TestNewApplication_SetsConfigLoggerAndContext(t *testing.T) {
	config := Config{
		Frequency:    DefaultFrequency,
		SampleRate:   DefaultSampleRate,
		Gain:         DefaultGain,
		DeviceIndex:  0,
		LogDir:       "./test_logs",
		LogRotateUTC: true,
		VizSink:      SinkNone,
	}

	application := NewApplication(config)

	assert.NotNil(t, application)
	assert.NotNil(t, application.logger)
	assert.NotNil(t, application.ctx)
	assert.Equal(t, config, application.config)
}

func TestNewApplication_VerboseSetsDebugLevel(t *testing.T) {
	verboseApp := NewApplication(Config{Verbose: true})
	quietApp := NewApplication(Config{Verbose: false})

	assert.Equal(t, logrus.DebugLevel, verboseApp.logger.GetLevel())
	assert.Equal(t, logrus.InfoLevel, quietApp.logger.GetLevel())
}

func TestMain(m *testing.M) {
	code := m.Run()
	os.RemoveAll("./test_logs")
	os.Exit(code)
}
