package adsb

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeIdentification_CannedVector(t *testing.T) {
	// ME field bytes from spec.md §8 scenario 2: "20 1C 32 C3 97 CF 20".
	me := []byte{0x20, 0x1C, 0x32, 0xC3, 0x97, 0xCF, 0x20}

	_, callsign := DecodeIdentification(me)

	assert.NotEmpty(t, callsign)
	assert.Equal(t, strings.ToUpper(callsign), callsign)
	assert.Equal(t, strings.TrimSpace(callsign), callsign)
}

func TestAircraftCategory_NoInformation(t *testing.T) {
	assert.Equal(t, "No category information", AircraftCategory(3, 0))
}

func TestAircraftCategory_KnownEntry(t *testing.T) {
	assert.Equal(t, "Rotorcraft", AircraftCategory(4, 7))
}
