package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mode1090/internal/app"
)

func main() {
	var config app.Config
	var vizSink string

	rootCmd := &cobra.Command{
		Use:   "mode1090",
		Short: "Mode-S/ADS-B decoder",
		Long: `Mode-S/ADS-B decoder for RTL-SDR receivers.

Captures I/Q samples at 2 Msamples/s, demodulates Mode-S Extended
Squitter messages using a matched-preamble PPM decoder, validates and
corrects CRC, resolves aircraft tracks via CPR position decoding, and
emits BaseStation (SBS) and Beast binary recordings alongside an
optional live visualization.

Example usage:
  mode1090 --frequency 1090000000 --sample-rate 2000000 --gain 40 --device 0
  mode1090 --replay-file capture.bin --sink tui
  mode1090 --beast-replay-file recorded.beast --sink sdl`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion()
				return nil
			}

			config.VizSink = app.Sink(vizSink)

			application := app.NewApplication(config)
			return application.Start()
		},
	}

	rootCmd.Flags().Uint32VarP(&config.Frequency, "frequency", "f", app.DefaultFrequency, "Frequency to tune to (Hz)")
	rootCmd.Flags().Uint32VarP(&config.SampleRate, "sample-rate", "s", app.DefaultSampleRate, "Sample rate (Hz)")
	rootCmd.Flags().IntVarP(&config.Gain, "gain", "g", app.DefaultGain, "Gain setting (0 for auto)")
	rootCmd.Flags().IntVarP(&config.DeviceIndex, "device", "d", 0, "RTL-SDR device index")
	rootCmd.Flags().StringVar(&config.ReplayFile, "replay-file", "", "Replay raw I/Q samples from a file instead of a live device")
	rootCmd.Flags().StringVar(&config.BeastReplayFile, "beast-replay-file", "", "Replay a recorded Beast binary log instead of capturing/decoding IQ")
	rootCmd.Flags().StringVarP(&config.LogDir, "log-dir", "l", "./logs", "Log directory")
	rootCmd.Flags().BoolVarP(&config.LogRotateUTC, "utc", "u", true, "Use UTC for log rotation")
	rootCmd.Flags().StringVar(&vizSink, "sink", "none", "Visualization sink: none, sdl, tui")
	rootCmd.Flags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
