// Package sink defines the Visualization Sink contract (spec.md §6):
// the write-only external collaborator the core pipeline pushes
// updates to on every accepted, state-changing frame.
package sink

// Point is a single geographic fix.
type Point struct {
	Lat float64
	Lon float64
}

// Sink receives per-aircraft updates keyed by the bare six-digit ICAO
// hex address; no "world/plane/" entity-path prefix is added by the
// pipeline or by the implementations here.
type Sink interface {
	// UpdatePath publishes the full polyline for an aircraft: its path
	// history plus the current interpolated position.
	UpdatePath(icaoHex string, path []Point)

	// UpdatePoint publishes the point set for an aircraft, with radius
	// larger on the latest point than on history points.
	UpdatePoint(icaoHex string, path []Point)

	// SetAttributes publishes scalar attributes for an aircraft.
	// speedKts and headingDeg are "pending" when velocity hasn't been
	// received yet.
	SetAttributes(icaoHex string, callsign, speedKts, headingDeg, latlong string)

	// LogLine appends a debug-level text log line (used for callsign
	// changes, per spec.md §6).
	LogLine(line string)
}

// Noop discards every update. It is the default Visualization Sink
// when the application is run with no rendering backend selected —
// the recording sinks still run off the same pipeline regardless.
type Noop struct{}

func (Noop) UpdatePath(string, []Point)                            {}
func (Noop) UpdatePoint(string, []Point)                           {}
func (Noop) SetAttributes(string, string, string, string, string) {}
func (Noop) LogLine(string)                                       {}
