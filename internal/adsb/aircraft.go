package adsb

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang/geo/s2"
	cache "github.com/patrickmn/go-cache"
)

// ICAO is the 24-bit globally unique aircraft identifier, the registry
// primary key.
type ICAO uint32

// String renders the address as six uppercase hex digits.
func (i ICAO) String() string {
	return fmt.Sprintf("%06X", uint32(i))
}

// Position is a decoded lat/lon fix. Latitude/longitude are carried as
// an s2.LatLng so downstream consumers (sinks, path-length math) get
// correct geodesic behavior for free instead of naive planar deltas.
type Position struct {
	LatLng    s2.LatLng
	Timestamp time.Time
}

// NewPosition builds a Position from degrees.
func NewPosition(latDeg, lonDeg float64, ts time.Time) Position {
	return Position{LatLng: s2.LatLngFromDegrees(latDeg, lonDeg), Timestamp: ts}
}

// Lat returns latitude in degrees.
func (p Position) Lat() float64 { return p.LatLng.Lat.Degrees() }

// Lon returns longitude in degrees.
func (p Position) Lon() float64 { return p.LatLng.Lng.Degrees() }

// Aircraft is one entry in the Registry: identity, last-known
// position, path history, odd/even CPR scratch, and optional velocity.
type Aircraft struct {
	ICAO     ICAO
	Callsign string
	Category string

	CPREven CPRFrame
	CPROdd  CPRFrame

	Position             *Position
	PositionInterpolated *Position
	Path                 []Position

	Altitude *Altitude
	Velocity *Velocity
}

func newAircraft(icao ICAO) *Aircraft {
	return &Aircraft{ICAO: icao}
}

// UpdateCPR records a new odd or even fractional position report.
func (a *Aircraft) UpdateCPR(isOdd bool, lat17, lon17 uint32, ts time.Time) {
	frame := CPRFrame{Lat17: lat17, Lon17: lon17, Timestamp: ts}
	if isOdd {
		a.CPROdd = frame
	} else {
		a.CPREven = frame
	}
}

// TryResolvePosition attempts CPR pairing: both frames must be set, and
// their timestamps must be within 10s of each other (spec.md §4.7,
// §4.8). On success it updates Position, PositionInterpolated, and
// appends to Path (capped at maxPathLen, FIFO eviction).
func (a *Aircraft) TryResolvePosition(maxPathLen int) bool {
	if a.CPREven.isZero() || a.CPROdd.isZero() {
		return false
	}

	delta := a.CPREven.Timestamp.Sub(a.CPROdd.Timestamp)
	if delta < 0 {
		delta = -delta
	}
	if delta > 10*time.Second {
		return false
	}

	lat, lon, ok := DecodeGlobalPosition(a.CPREven, a.CPROdd)
	if !ok {
		return false
	}

	now := time.Now()
	pos := NewPosition(lat, lon, now)
	a.Position = &pos
	interp := pos
	a.PositionInterpolated = &interp
	a.Path = append(a.Path, pos)
	if maxPathLen > 0 && len(a.Path) > maxPathLen {
		a.Path = a.Path[len(a.Path)-maxPathLen:]
	}
	return true
}

// SpeedKts returns the ground speed in knots, or ok=false if velocity
// hasn't been received yet (spec.md §9: speed must yield "pending").
func (a *Aircraft) SpeedKts() (speed float64, ok bool) {
	if a.Velocity == nil {
		return 0, false
	}
	vx, vy := a.Velocity.VxEast, a.Velocity.VyNorth
	return sqrtSumSquares(vx, vy), true
}

// HeadingDeg returns the track in degrees clockwise from north, or
// ok=false if velocity hasn't been received yet.
func (a *Aircraft) HeadingDeg() (heading float64, ok bool) {
	if a.Velocity == nil {
		return 0, false
	}
	h := atan2Deg(a.Velocity.VxEast, a.Velocity.VyNorth)
	if h < 0 {
		h += 360
	}
	return h, true
}

// Registry maps ICAO to Aircraft. Entries are created lazily on first
// DF11/17/18 frame. The registry lives inside the pipeline task — the
// pipeline goroutine never needs the mutex for correctness, but the
// optional staleness reaper's go-cache janitor runs on its own
// goroutine and does, so the mutex guards against that one concurrent
// writer.
type Registry struct {
	mu            sync.Mutex
	aircraft      map[ICAO]*Aircraft
	seen          *cache.Cache
	maxPathLength int
}

// NewRegistry creates a Registry with the given path cap. staleTTL of
// zero disables the reaper (entries are never evicted, matching
// spec.md §4.8's default).
func NewRegistry(maxPathLength int, staleTTL time.Duration) *Registry {
	r := &Registry{
		aircraft:      make(map[ICAO]*Aircraft),
		maxPathLength: maxPathLength,
	}

	if staleTTL > 0 {
		r.seen = cache.New(staleTTL, staleTTL/2)
		r.seen.OnEvicted(func(key string, _ interface{}) {
			r.mu.Lock()
			defer r.mu.Unlock()
			delete(r.aircraft, icaoFromKey(key))
		})
	}

	return r
}

func icaoFromKey(key string) ICAO {
	var v uint32
	fmt.Sscanf(key, "%06X", &v)
	return ICAO(v)
}

// GetOrCreate returns the aircraft for icao, creating it if this is
// its first frame, and refreshes its staleness-reaper entry.
func (r *Registry) GetOrCreate(icao ICAO) *Aircraft {
	r.mu.Lock()
	defer r.mu.Unlock()

	ac, exists := r.aircraft[icao]
	if !exists {
		ac = newAircraft(icao)
		r.aircraft[icao] = ac
	}
	if r.seen != nil {
		r.seen.SetDefault(icao.String(), struct{}{})
	}
	return ac
}

// Get returns the aircraft for icao without creating it.
func (r *Registry) Get(icao ICAO) (*Aircraft, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ac, ok := r.aircraft[icao]
	return ac, ok
}

// Len returns the number of tracked aircraft.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.aircraft)
}

// ForEach calls fn for every tracked aircraft. fn must not mutate the
// registry.
func (r *Registry) ForEach(fn func(*Aircraft)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ac := range r.aircraft {
		fn(ac)
	}
}
