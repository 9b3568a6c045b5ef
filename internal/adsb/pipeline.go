package adsb

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"mode1090/internal/sink"
)

// Stats accumulates pipeline-wide counters, reported periodically by
// the application layer (spec.md treats this as ambient, not core).
type Stats struct {
	PreamblesScanned  uint64
	FramesAccepted    uint64
	FramesCorrected1  uint64
	FramesCorrected2  uint64
	FramesRejected    uint64
	PositionsResolved uint64
}

// FrameRecorder receives every accepted DF17/18 frame, independent of
// and in addition to the Visualization Sink: BaseStation/Beast export
// operate on a single frame rather than on aggregated Aircraft state
// (spec.md §4.5 Frame Router is their natural attachment point).
type FrameRecorder interface {
	RecordFrame(f *Frame) error
}

// Pipeline is the single-threaded cooperative core (spec.md §5): one
// caller feeds it sample blocks, and it runs IQ→Magnitude through Sink
// Emitter to completion before the caller requests the next block. It
// holds no suspension points and performs no I/O of its own; the
// sample source and sink are both supplied externally.
type Pipeline struct {
	parity    *ParityEngine
	registry  *Registry
	sink      sink.Sink
	recorders []FrameRecorder
	logger    *logrus.Logger
	stats     Stats

	// carry holds the tail of the previous block's magnitude envelope
	// so a preamble straddling a block boundary is not missed.
	carry []float32
}

// NewPipeline wires a Pipeline from its collaborators: the parity
// engine, the aircraft registry, the visualization sink, and zero or
// more secondary frame recorders (BaseStation, Beast, ...).
func NewPipeline(registry *Registry, parity *ParityEngine, s sink.Sink, logger *logrus.Logger, recorders ...FrameRecorder) *Pipeline {
	return &Pipeline{
		parity:    parity,
		registry:  registry,
		sink:      s,
		recorders: recorders,
		logger:    logger,
	}
}

// Stats returns a snapshot of the running counters.
func (p *Pipeline) Stats() Stats {
	return p.stats
}

// ProcessSamples is the entry point for one sample block: interleaved
// u8 I/Q bytes, as delivered by the Sample Source collaborator.
func (p *Pipeline) ProcessSamples(iq []byte) {
	mag := MagnitudeFromIQ(iq)

	window := mag
	if len(p.carry) > 0 {
		window = make([]float32, 0, len(p.carry)+len(mag))
		window = append(window, p.carry...)
		window = append(window, mag...)
	}

	starts := ScanPreambles(window)
	p.stats.PreamblesScanned += uint64(len(starts))

	for _, start := range starts {
		data := window[start : start+frameSampleLen]
		p.processFrame(data)
	}

	carryLen := preambleLen + frameSampleLen - 1
	if len(window) > carryLen {
		p.carry = append(p.carry[:0], window[len(window)-carryLen:]...)
	} else {
		p.carry = append(p.carry[:0], window...)
	}
}

// processFrame slices, validates, and routes a single 224-sample
// candidate frame (Preamble Scanner → PPM Bit Slicer → Parity Engine →
// Frame Router → ADS-B ME Parser → CPR Decoder → Aircraft Registry →
// Sink Emitter).
func (p *Pipeline) processFrame(data []float32) {
	sliced := SliceBits(data)
	df := sliced[0] >> 3

	bits := 112
	if df <= 11 {
		bits = 56
	}

	p.validateAndRoute(&Frame{Data: sliced, Bits: bits, Timestamp: time.Now()})
}

// ProcessFrame feeds a single already-demodulated frame through parity
// validation and the Frame Router, bypassing the preamble scanner and
// PPM bit slicer ProcessSamples uses for live IQ. This is the entry
// point for replaying frames recovered by another path, such as a
// Beast binary recording (internal/beast.Replay).
func (p *Pipeline) ProcessFrame(data []byte, bits int, ts time.Time) {
	var sliced [14]byte
	copy(sliced[:], data)
	p.validateAndRoute(&Frame{Data: sliced, Bits: bits, Timestamp: ts})
}

// validateAndRoute runs the Parity Engine over frame and, if it
// passes (directly or via single/double-bit correction), routes it.
func (p *Pipeline) validateAndRoute(frame *Frame) {
	df := frame.Data[0] >> 3

	ok, _ := p.parity.Validate(frame.Data[:], frame.Bits)
	if !ok {
		if pos, corrected := p.parity.CorrectSingleBit(frame.Data[:], frame.Bits); corrected {
			frame.ErrorsCorrected = 1
			p.stats.FramesCorrected1++
			p.logger.WithFields(logrus.Fields{"bit": pos, "df": df}).Warn("corrected single-bit parity error")
		} else if p.parity.EnableDoubleBitCorrection {
			if pos1, pos2, corrected2 := p.parity.CorrectDoubleBit(frame.Data[:], frame.Bits); corrected2 {
				frame.ErrorsCorrected = 2
				p.stats.FramesCorrected2++
				p.logger.WithFields(logrus.Fields{"bit1": pos1, "bit2": pos2, "df": df}).Warn("corrected double-bit parity error")
			} else {
				p.stats.FramesRejected++
				return
			}
		} else {
			p.stats.FramesRejected++
			return
		}
	}

	p.stats.FramesAccepted++
	p.routeFrame(frame)
}

// routeFrame implements the Frame Router (spec.md §4.5).
func (p *Pipeline) routeFrame(f *Frame) {
	df := f.DF()

	switch df {
	case DF11, DF17, DF18:
		icao := f.ICAO()
		ac := p.registry.GetOrCreate(icao)

		if df == DF17 || df == DF18 {
			for _, rec := range p.recorders {
				if err := rec.RecordFrame(f); err != nil {
					p.logger.WithError(err).Debug("frame recorder failed")
				}
			}
			p.parseME(ac, f)
		}

	case DF0, DF4, DF5, DF16, DF20, DF21:
		p.logger.WithField("df", df).Debug("classified, not parsed")

	default:
		if df >= DF24Min && df <= DF31Max {
			p.logger.WithField("df", df).Debug("classified, not parsed")
			return
		}
		p.logger.WithField("df", df).Debug("unknown downlink format")
	}
}

// parseME implements the ADS-B ME Parser (spec.md §4.6) and drives the
// CPR Decoder, Aircraft Registry update, and Sink Emitter for DF17/18
// frames.
func (p *Pipeline) parseME(ac *Aircraft, f *Frame) {
	me := f.ME()
	tc := f.TypeCode()

	switch {
	case tc >= tcIdentMin && tc <= tcIdentMax:
		_, callsign := DecodeIdentification(me)
		if callsign != "" && callsign != ac.Callsign {
			ac.Callsign = callsign
			p.sink.LogLine(fmt.Sprintf("craft %s updated callsign to %s", ac.ICAO, callsign))
			p.emit(ac)
		}

	case (tc >= tcAirbornePosMin && tc <= tcAirbornePosMax) || (tc >= tcGNSSPosMin && tc <= tcGNSSPosMax):
		pos := DecodeAirbornePosition(tc, me)
		ac.Altitude = &pos.Altitude
		ac.UpdateCPR(pos.OddFormat, pos.LatCPR, pos.LonCPR, f.Timestamp)

		if ac.TryResolvePosition(p.registry.maxPathLength) {
			p.stats.PositionsResolved++
			p.emit(ac)
		}

	case tc == tcVelocity:
		if v, ok := DecodeVelocity(me); ok {
			ac.Velocity = &v
			p.emit(ac)
		}

	default:
		p.logger.WithField("tc", tc).Debug("unknown type code, no state change")
	}
}

// emit implements the Sink Emitter (spec.md §4.9): publish updated
// state for ac to the visualization collaborator.
func (p *Pipeline) emit(ac *Aircraft) {
	icaoHex := ac.ICAO.String()

	points := make([]sink.Point, 0, len(ac.Path)+1)
	for _, pt := range ac.Path {
		points = append(points, sink.Point{Lat: pt.Lat(), Lon: pt.Lon()})
	}
	if ac.PositionInterpolated != nil {
		points = append(points, sink.Point{Lat: ac.PositionInterpolated.Lat(), Lon: ac.PositionInterpolated.Lon()})
	}

	p.sink.UpdatePath(icaoHex, points)
	p.sink.UpdatePoint(icaoHex, points)

	speedStr := "pending"
	headingStr := "pending"
	if speed, ok := ac.SpeedKts(); ok {
		speedStr = fmt.Sprintf("%.1f", speed)
	}
	if heading, ok := ac.HeadingDeg(); ok {
		headingStr = fmt.Sprintf("%.1f", heading)
	}

	latlong := "pending"
	if ac.Position != nil {
		latlong = fmt.Sprintf("%.6f,%.6f", ac.Position.Lat(), ac.Position.Lon())
	}

	p.sink.SetAttributes(icaoHex, ac.Callsign, speedStr, headingStr, latlong)
}
