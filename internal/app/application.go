package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"mode1090/internal/adsb"
	"mode1090/internal/basestation"
	"mode1090/internal/beast"
	"mode1090/internal/logging"
	"mode1090/internal/rtlsdr"
	"mode1090/internal/sink"
	"mode1090/internal/sink/sdl"
	"mode1090/internal/sink/tui"
)

// sampleBlockSize is how many bytes Application asks its SampleSource
// for per ProcessSamples call.
const sampleBlockSize = 256 * 1024

// Application wires the Sample Source, the decode Pipeline, the
// Visualization Sink, and the secondary recording sinks together, and
// owns their lifecycle.
type Application struct {
	config Config
	logger *logrus.Logger

	source   rtlsdr.SampleSource
	device   *rtlsdr.Device
	pipeline *adsb.Pipeline

	logRotator   *logging.LogRotator
	beastRotator *logging.LogRotator
	vizSink      sink.Sink

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewApplication creates an Application from config. Collaborators
// are constructed lazily in initializeComponents, matching the
// teacher's two-phase construct/initialize split.
func NewApplication(config Config) *Application {
	ctx, cancel := context.WithCancel(context.Background())

	logger := logrus.New()
	if config.Verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.InfoLevel)
	}

	return &Application{
		config: config,
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start initializes every component, runs until a shutdown signal
// arrives, then shuts down gracefully.
func (app *Application) Start() error {
	app.logger.WithFields(logrus.Fields{
		"version":    Version,
		"build_time": BuildTime,
		"git_commit": GitCommit,
	}).Info("starting mode1090")

	if err := app.initializeComponents(); err != nil {
		return fmt.Errorf("failed to initialize components: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	app.run()

	<-sigChan
	app.logger.Info("received shutdown signal")
	app.shutdown()

	return nil
}

// initializeComponents wires the Sample Source, recording sinks,
// visualization sink, and the decode Pipeline.
func (app *Application) initializeComponents() error {
	var err error

	if app.config.BeastReplayFile == "" {
		if app.config.ReplayFile != "" {
			f, err := os.Open(app.config.ReplayFile)
			if err != nil {
				return fmt.Errorf("failed to open replay file: %w", err)
			}
			app.source = rtlsdr.NewFileSource(f)
		} else {
			app.device, err = rtlsdr.NewDevice(app.config.DeviceIndex, app.logger)
			if err != nil {
				return fmt.Errorf("failed to initialize rtl-sdr: %w", err)
			}
			if err := app.device.Configure(app.config.Frequency, app.config.SampleRate, app.config.Gain); err != nil {
				return fmt.Errorf("failed to configure rtl-sdr: %w", err)
			}
			app.source = app.device
		}
	}

	app.logRotator, err = logging.NewLogRotator(app.config.LogDir, app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize log rotator: %w", err)
	}

	app.beastRotator, err = logging.NewLogRotator(app.config.LogDir+"/beast", app.config.LogRotateUTC, app.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize beast log rotator: %w", err)
	}

	switch app.config.VizSink {
	case SinkSDL:
		viz, err := sdl.NewRenderer()
		if err != nil {
			return fmt.Errorf("failed to initialize sdl sink: %w", err)
		}
		app.vizSink = viz
	case SinkTUI:
		viz, err := tui.NewDashboard()
		if err != nil {
			return fmt.Errorf("failed to initialize tui sink: %w", err)
		}
		app.vizSink = viz
	default:
		app.vizSink = sink.Noop{}
	}

	registry := adsb.NewRegistry(adsb.MaxPathLength, adsb.ICAOStaleTTL*time.Second)
	parity := adsb.NewParityEngine()

	recorders := []adsb.FrameRecorder{
		basestation.NewWriter(app.logRotator, app.logger),
		beast.NewRecorder(app.beastRotator, app.logger),
	}

	app.pipeline = adsb.NewPipeline(registry, parity, app.vizSink, app.logger, recorders...)

	return nil
}

// run starts the goroutines that drive capture, log rotation, and
// periodic statistics reporting.
func (app *Application) run() {
	app.logger.Info("starting capture and decode")

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		if app.config.BeastReplayFile != "" {
			app.beastReplayLoop()
		} else {
			app.captureLoop()
		}
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.logRotator.Start(app.ctx)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.beastRotator.Start(app.ctx)
	}()

	app.wg.Add(1)
	go func() {
		defer app.wg.Done()
		app.reportStatistics()
	}()

	app.logger.Info("all components started")
}

// captureLoop is the single cooperative task (spec.md §5): it reads
// one sample block from the source, hands it to the pipeline to
// process to completion, and only then requests the next block.
func (app *Application) captureLoop() {
	buf := make([]byte, sampleBlockSize)

	for {
		select {
		case <-app.ctx.Done():
			app.logger.Info("capture loop stopped")
			return
		default:
		}

		n, err := app.source.Read(buf)
		if n > 0 {
			app.pipeline.ProcessSamples(buf[:n])
		}
		if err != nil {
			app.logger.WithError(err).Info("sample source exhausted")
			app.cancel()
			return
		}
	}
}

// beastReplayLoop feeds a recorded Beast binary log through the
// pipeline's ProcessFrame entry point, then cancels the run context
// once the file is exhausted, the same way captureLoop reacts to a
// FileSource running dry.
func (app *Application) beastReplayLoop() {
	f, err := os.Open(app.config.BeastReplayFile)
	if err != nil {
		app.logger.WithError(err).Error("failed to open beast replay file")
		app.cancel()
		return
	}
	defer f.Close()

	if err := beast.Replay(f, app.pipeline, app.logger); err != nil {
		app.logger.WithError(err).Warn("beast replay ended early")
	} else {
		app.logger.Info("beast replay finished")
	}
	app.cancel()
}

// reportStatistics logs pipeline counters periodically.
func (app *Application) reportStatistics() {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-app.ctx.Done():
			return
		case <-ticker.C:
			s := app.pipeline.Stats()
			app.logger.WithFields(logrus.Fields{
				"preambles_scanned": s.PreamblesScanned,
				"frames_accepted":   s.FramesAccepted,
				"corrected_1bit":    s.FramesCorrected1,
				"corrected_2bit":    s.FramesCorrected2,
				"frames_rejected":   s.FramesRejected,
				"positions":         s.PositionsResolved,
			}).Info("pipeline statistics")
		}
	}
}

// shutdown cancels the run context, waits (bounded) for goroutines,
// and releases collaborators.
func (app *Application) shutdown() {
	app.logger.Info("shutting down")
	app.cancel()

	done := make(chan struct{})
	go func() {
		app.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		app.logger.Info("all goroutines finished")
	case <-time.After(5 * time.Second):
		app.logger.Warn("shutdown timeout, forcing exit")
	}

	if app.device != nil {
		app.device.Close()
	}
	if app.logRotator != nil {
		app.logRotator.Close()
	}
	if app.beastRotator != nil {
		app.beastRotator.Close()
	}
	if closer, ok := app.vizSink.(interface{ Close() error }); ok {
		closer.Close()
	}

	app.logger.Info("shutdown complete")
}
