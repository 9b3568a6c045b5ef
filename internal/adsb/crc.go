package adsb

// checksumLUT is the 112-entry Mode-S CRC generator table: row j holds
// the 24-bit syndrome contribution of bit j of a 112-bit frame. Rows
// 88-111 (the 24 parity-field bits) are zero, after the generator polynomial
// (MODES_GENERATOR_POLY = 0xfff409) — this keeps the flip-in-parity-
// field case handled uniformly by the same correction loop as any
// other bit.
var checksumLUT = [112]uint32{
	0x3935ea, 0x1c9af5, 0xf1b77e, 0x78dbbf, 0xc397db, 0x9e31e9, 0xb0e2f0, 0x587178, 0x2c38bc,
	0x161c5e, 0x0b0e2f, 0xfa7d13, 0x82c48d, 0xbe9842, 0x5f4c21, 0xd05c14, 0x682e0a, 0x341705,
	0xe5f186, 0x72f8c3, 0xc68665, 0x9cb936, 0x4e5c9b, 0xd8d449, 0x939020, 0x49c810, 0x24e408,
	0x127204, 0x093902, 0x049c81, 0xfdb444, 0x7eda22, 0x3f6d11, 0xe04c8c, 0x702646, 0x381323,
	0xe3f395, 0x8e03ce, 0x4701e7, 0xdc7af7, 0x91c77f, 0xb719bb, 0xa476d9, 0xadc168, 0x56e0b4,
	0x2b705a, 0x15b82d, 0xf52612, 0x7a9309, 0xc2b380, 0x6159c0, 0x30ace0, 0x185670, 0x0c2b38,
	0x06159c, 0x030ace, 0x018567, 0xff38b7, 0x80665f, 0xbfc92b, 0xa01e91, 0xaff54c, 0x57faa6,
	0x2bfd53, 0xea04ad, 0x8af852, 0x457c29, 0xdd4410, 0x6ea208, 0x375104, 0x1ba882, 0x0dd441,
	0xf91024, 0x7c8812, 0x3e4409, 0xe0d800, 0x706c00, 0x383600, 0x1c1b00, 0x0e0d80, 0x0706c0,
	0x038360, 0x01c1b0, 0x00e0d8, 0x00706c, 0x003836, 0x001c1b, 0xfff409, 0x000000, 0x000000,
	0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
	0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000, 0x000000,
	0x000000, 0x000000, 0x000000, 0x000000,
}

// ParityEngine computes and, where possible, repairs the Mode-S 24-bit
// parity over a frame.
type ParityEngine struct {
	// EnableDoubleBitCorrection turns on exhaustive two-bit error
	// correction. O(bits^2) per frame and roughly a quarter of CPU at
	// peak traffic; off by default.
	EnableDoubleBitCorrection bool
}

// NewParityEngine returns a ParityEngine with double-bit correction
// disabled.
func NewParityEngine() *ParityEngine {
	return &ParityEngine{}
}

// checksum computes the Mode-S CRC over the first bits bits of data
// (MSB-first).
func checksum(data []byte, bits int) uint32 {
	offset := 0
	if bits != 112 {
		offset = 112 - 56
	}
	var crc uint32
	for j := 0; j < bits; j++ {
		byteIdx := j / 8
		bitIdx := j % 8
		mask := byte(1 << (7 - bitIdx))
		if data[byteIdx]&mask != 0 {
			crc ^= checksumLUT[j+offset]
		}
	}
	return crc
}

// transmittedParity reads the trailing 24-bit big-endian parity field
// for a frame of the given bit length.
func transmittedParity(data []byte, bits int) uint32 {
	end := bits / 8
	return uint32(data[end-3])<<16 | uint32(data[end-2])<<8 | uint32(data[end-1])
}

// Validate reports whether the frame's computed CRC matches its
// transmitted parity field, along with the computed value.
func (p *ParityEngine) Validate(data []byte, bits int) (ok bool, crc uint32) {
	crc = checksum(data, bits)
	return crc == transmittedParity(data, bits), crc
}

// CorrectSingleBit attempts to find and repair exactly one flipped bit.
// On success it mutates data in place and returns the corrected bit
// position; it declines (returns ok=false) if no single flip
// reconciles the CRC.
func (p *ParityEngine) CorrectSingleBit(data []byte, bits int) (pos int, ok bool) {
	byteLen := bits / 8
	scratch := make([]byte, byteLen)
	for j := 0; j < bits; j++ {
		copy(scratch, data[:byteLen])
		byteIdx := j / 8
		bitIdx := j % 8
		scratch[byteIdx] ^= 1 << (7 - bitIdx)

		if checksum(scratch, bits) == transmittedParity(scratch, bits) {
			copy(data[:byteLen], scratch)
			return j, true
		}
	}
	return 0, false
}

// CorrectDoubleBit attempts exhaustive two-bit error correction. Only
// called when EnableDoubleBitCorrection is set.
func (p *ParityEngine) CorrectDoubleBit(data []byte, bits int) (pos1, pos2 int, ok bool) {
	byteLen := bits / 8
	scratch := make([]byte, byteLen)
	for j := 0; j < bits; j++ {
		byteIdx1 := j / 8
		bitIdx1 := j % 8
		for i := j + 1; i < bits; i++ {
			byteIdx2 := i / 8
			bitIdx2 := i % 8

			copy(scratch, data[:byteLen])
			scratch[byteIdx1] ^= 1 << (7 - bitIdx1)
			scratch[byteIdx2] ^= 1 << (7 - bitIdx2)

			if checksum(scratch, bits) == transmittedParity(scratch, bits) {
				copy(data[:byteLen], scratch)
				return j, i, true
			}
		}
	}
	return 0, 0, false
}
