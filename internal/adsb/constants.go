package adsb

// AISCharset is the 64-entry AIS 6-bit character set used to decode
// ADS-B identification callsigns. Index by the 6-bit code read from
// the ME field; '#' is a non-printable sentinel trimmed from the
// decoded string.
const AISCharset = "#ABCDEFGHIJKLMNOPQRSTUVWXYZ##### ###############0123456789######"

// CPR (Compact Position Reporting) constants.
const (
	cprLatBits  = 17
	cprLonBits  = 17
	cprScale    = 1 << 17 // 2^17
	cprNzones   = 15
	cprDlatEven = 360.0 / 60.0
	cprDlatOdd  = 360.0 / 59.0
)

// Downlink Formats.
const (
	DF0           = 0
	DF4           = 4
	DF5           = 5
	DF11          = 11
	DF16          = 16
	DF17          = 17
	DF18          = 18
	DF20          = 20
	DF21          = 21
	DF24Min       = 24
	DF31Max       = 31
	shortFrameLen = 7  // bytes, DF <= 11
	longFrameLen  = 14 // bytes, DF17/18 extended squitter
)

// ADS-B ME Type Codes.
const (
	tcIdentMin       = 1
	tcIdentMax       = 4
	tcSurfaceMin     = 5
	tcSurfaceMax     = 8
	tcAirbornePosMin = 9
	tcAirbornePosMax = 18
	tcVelocity       = 19
	tcGNSSPosMin     = 20
	tcGNSSPosMax     = 22
)

// MaxPathLength bounds the per-aircraft track history kept in the
// registry. The spec does not mandate a bound, but allows a ring
// buffer without changing position-decode semantics.
const MaxPathLength = 120

// ICAOStaleTTL is the recency window after which an aircraft with no
// fresh frames is eligible for eviction by the optional staleness
// reaper. Not used for parity/address recovery — DF17/18 here is pure
// parity, no AP brute-forcing.
const ICAOStaleTTL = 5 * 60 // seconds
