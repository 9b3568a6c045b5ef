//go:build !cgo

package rtlsdr

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// SampleSource is the blocking Sample Source contract (spec.md §6);
// duplicated here (not in device.go) so the package still exports it
// when built without cgo.
type SampleSource interface {
	Read(buf []byte) (int, error)
}

// Device is a build-without-cgo placeholder: gortlsdr links against
// librtlsdr via cgo, so without it there is no real device to drive.
type Device struct{}

// NewDevice always fails in a !cgo build.
func NewDevice(index int, logger *logrus.Logger) (*Device, error) {
	return nil, errors.New("rtl-sdr support requires a cgo-enabled build")
}

func (d *Device) Configure(frequency, sampleRate uint32, gain int) error {
	return errors.New("rtl-sdr support requires a cgo-enabled build")
}

func (d *Device) Read(buf []byte) (int, error) {
	return 0, errors.New("rtl-sdr support requires a cgo-enabled build")
}

func (d *Device) Close() error { return nil }
