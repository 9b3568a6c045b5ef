package adsb

// SliceBits converts a 224-sample PPM data region (2 samples per bit)
// into a 14-byte frame, MSB-first. data must have exactly
// frameSampleLen (224) entries; short frames still slice the full
// region, and callers read only the first 7 bytes.
func SliceBits(data []float32) [14]byte {
	var frame [14]byte
	for i := 0; i < 112; i++ {
		a, b := data[2*i], data[2*i+1]
		if a > b {
			byteIdx := i / 8
			bitIdx := 7 - (i % 8)
			frame[byteIdx] |= 1 << bitIdx
		}
	}
	return frame
}
