// Copyright (c) 2012-2017 Joseph D Poirier
// Distributable under the terms of The New BSD License
// that can be found in the LICENSE file.

//go:build cgo

// Package rtlsdr adapts github.com/jpoirier/gortlsdr (which wraps
// librtlsdr, turning a Realtek RTL2832-based DVB dongle into an SDR
// receiver) into the blocking SampleSource contract the pipeline's
// caller expects (spec.md §6). No demodulation logic lives here — only
// device configuration and the async-to-synchronous read adapter.
package rtlsdr

import (
	"context"
	"errors"
	"fmt"

	rtlsdr "github.com/jpoirier/gortlsdr"
	"github.com/sirupsen/logrus"
)

// BufferChunkSize is the per-callback read size requested from librtlsdr.
const BufferChunkSize = 16384

// SampleSource is the blocking Sample Source contract (spec.md §6):
// Read fills buf with interleaved u8 I/Q samples and returns how many
// bytes it wrote, blocking until at least some data is available.
type SampleSource interface {
	Read(buf []byte) (int, error)
}

// Device is a SampleSource backed by a real RTL-SDR dongle.
type Device struct {
	device   *rtlsdr.Context
	logger   *logrus.Logger
	index    int
	isOpen   bool
	ctx      context.Context
	cancelFn context.CancelFunc

	samples  chan []byte
	leftover []byte
	readErr  error
}

// NewDevice opens the count check for device index and returns an
// unconfigured Device; call Configure before Read.
func NewDevice(index int, logger *logrus.Logger) (*Device, error) {
	count := rtlsdr.GetDeviceCount()
	if count == 0 {
		return nil, errors.New("no RTL-SDR devices found")
	}
	if index >= count {
		return nil, fmt.Errorf("device index %d out of range (0-%d)", index, count-1)
	}

	return &Device{
		logger:  logger,
		index:   index,
		samples: make(chan []byte, 64),
	}, nil
}

// Configure opens the device, sets frequency/sample-rate/gain, and
// starts the async capture goroutine feeding Read.
func (d *Device) Configure(frequency, sampleRate uint32, gain int) error {
	var err error

	d.device, err = rtlsdr.Open(d.index)
	if err != nil {
		return fmt.Errorf("failed to open device: %w", err)
	}
	d.isOpen = true

	if err := d.device.SetCenterFreq(int(frequency)); err != nil {
		return fmt.Errorf("failed to set frequency: %w", err)
	}
	if err := d.device.SetSampleRate(int(sampleRate)); err != nil {
		return fmt.Errorf("failed to set sample rate: %w", err)
	}

	if gain == 0 {
		if err := d.device.SetTunerGainMode(false); err != nil {
			return fmt.Errorf("failed to set auto gain: %w", err)
		}
	} else {
		if err := d.device.SetTunerGainMode(true); err != nil {
			return fmt.Errorf("failed to set manual gain mode: %w", err)
		}
		if err := d.device.SetTunerGain(gain * 10); err != nil {
			return fmt.Errorf("failed to set gain: %w", err)
		}
	}

	if err := d.device.ResetBuffer(); err != nil {
		return fmt.Errorf("failed to reset buffer: %w", err)
	}

	d.logger.WithFields(logrus.Fields{
		"device_index": d.index,
		"frequency":    frequency,
		"sample_rate":  sampleRate,
		"gain":         gain,
	}).Info("rtl-sdr device configured")

	d.ctx, d.cancelFn = context.WithCancel(context.Background())
	d.startCapture()

	return nil
}

// startCapture launches librtlsdr's async reader, pushing each
// callback's buffer onto d.samples so Read can pull synchronously.
func (d *Device) startCapture() {
	bufLen := 16 * BufferChunkSize

	callback := func(data []byte) {
		cp := make([]byte, len(data))
		copy(cp, data)
		select {
		case d.samples <- cp:
		case <-d.ctx.Done():
		default:
			d.logger.Debug("dropping capture buffer, channel full")
		}
	}

	go func() {
		defer func() {
			if p := recover(); p != nil {
				d.logger.WithField("panic", p).Error("rtl-sdr capture panic")
			}
		}()
		if err := d.device.ReadAsync(callback, nil, 0, bufLen); err != nil {
			d.readErr = fmt.Errorf("rtl-sdr read async failed: %w", err)
		}
		close(d.samples)
	}()
}

// Read implements SampleSource: it blocks until a capture buffer is
// available, serving any previous buffer's remainder first.
func (d *Device) Read(buf []byte) (int, error) {
	if len(d.leftover) == 0 {
		chunk, ok := <-d.samples
		if !ok {
			if d.readErr != nil {
				return 0, d.readErr
			}
			return 0, errors.New("rtl-sdr capture stopped")
		}
		d.leftover = chunk
	}

	n := copy(buf, d.leftover)
	d.leftover = d.leftover[n:]
	return n, nil
}

// Close stops capture and closes the device.
func (d *Device) Close() error {
	if d.cancelFn != nil {
		d.cancelFn()
	}
	if d.device != nil && d.isOpen {
		if err := d.device.CancelAsync(); err != nil {
			d.logger.WithError(err).Debug("failed to cancel async reading")
		}
		if err := d.device.Close(); err != nil {
			return fmt.Errorf("failed to close device: %w", err)
		}
		d.isOpen = false
		d.logger.Info("rtl-sdr device closed")
	}
	return nil
}
