package adsb

import (
	"math"
	"time"
)

// CPRFrame holds one odd or even fractional position report.
type CPRFrame struct {
	Lat17     uint32
	Lon17     uint32
	Timestamp time.Time
}

// isZero reports whether the frame has never been populated.
func (f CPRFrame) isZero() bool {
	return f.Lat17 == 0 && f.Lon17 == 0 && f.Timestamp.IsZero()
}

// cprMod is the Euclidean remainder (always non-negative), unlike Go's
// %, which keeps the sign of the dividend.
func cprMod(a, b int) int {
	r := a % b
	if r < 0 {
		r += b
	}
	return r
}

// NL returns the number of longitude zones for a given latitude
// (1..59), via the closed-form cosine formula — not a lookup table.
func NL(latDeg float64) int {
	a := 1.0 - math.Cos(math.Pi/(2.0*cprNzones))
	b := math.Pow(math.Cos(latDeg*math.Pi/180.0), 2)
	c := 1.0 - a/b
	if math.Abs(c) > 1.0 {
		return 1
	}
	nl := int(math.Floor((2.0 * math.Pi) / math.Acos(c)))
	if nl > 59 {
		// At the equator the formula reaches exactly 60.
		return 59
	}
	return nl
}

func cprN(lat float64, isOdd bool) int {
	nl := NL(lat)
	if isOdd {
		nl--
	}
	if nl < 1 {
		nl = 1
	}
	return nl
}

func cprDlon(lat float64, isOdd bool) float64 {
	return 360.0 / float64(cprN(lat, isOdd))
}

// DecodeGlobalPosition pairs an even and odd CPR frame into a single
// globally-unambiguous lat/lon, per spec.md §4.7. It returns ok=false
// if the pair straddles a longitude-zone boundary (NL mismatch) or
// either frame is unset; freshness (≤10s) gating is the caller's
// responsibility (spec.md §4.7, enforced before calling decode).
func DecodeGlobalPosition(even, odd CPRFrame) (lat, lon float64, ok bool) {
	if even.isZero() || odd.isZero() {
		return 0, 0, false
	}

	latEven := float64(even.Lat17)
	latOdd := float64(odd.Lat17)
	lonEven := float64(even.Lon17)
	lonOdd := float64(odd.Lon17)

	j := int(math.Floor((59.0*latEven-60.0*latOdd)/cprScale + 0.5))
	rlatEven := cprDlatEven * (float64(cprMod(j, 60)) + latEven/cprScale)
	rlatOdd := cprDlatOdd * (float64(cprMod(j, 59)) + latOdd/cprScale)

	if rlatEven >= 270.0 {
		rlatEven -= 360.0
	}
	if rlatOdd >= 270.0 {
		rlatOdd -= 360.0
	}

	if NL(rlatEven) != NL(rlatOdd) {
		return 0, 0, false
	}

	var rlat, lonRaw float64
	var isOdd bool
	if even.Timestamp.After(odd.Timestamp) {
		rlat, lonRaw, isOdd = rlatEven, lonEven, false
	} else {
		rlat, lonRaw, isOdd = rlatOdd, lonOdd, true
	}

	ni := cprN(rlat, isOdd)
	m := int(math.Floor((lonEven*float64(NL(rlat)-1)-lonOdd*float64(NL(rlat)))/cprScale + 0.5))

	lon = cprDlon(rlat, isOdd) * (float64(cprMod(m, ni)) + lonRaw/cprScale)
	if lon > 180.0 {
		lon -= 360.0
	}

	return rlat, lon, true
}
