// Package basestation writes accepted Mode-S frames in the BaseStation
// (SBS) CSV wire format used by virtual-radar-server and similar
// tooling. It is a secondary recording sink, downstream of the Frame
// Router rather than the Aircraft Registry: it formats what a single
// frame itself carries and does not perform CPR pairing (spec.md §4.7
// is the Aircraft Registry's job, not this one).
package basestation

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"mode1090/internal/adsb"
	"mode1090/internal/logging"
)

// BaseStation message types.
const (
	SEL = "SEL"
	ID  = "ID"
	AIR = "AIR"
	STA = "STA"
	CLK = "CLK"
	MSG = "MSG"
)

// BaseStation transmission types.
const (
	TransmissionES_ID_CAT       = 1
	TransmissionES_SURFACE      = 2
	TransmissionES_AIRBORNE     = 3
	TransmissionES_VELOCITY     = 4
	TransmissionSURVEILLANCE    = 5
	TransmissionSURVEILLANCE_ID = 6
	TransmissionAIR_TO_AIR      = 7
	TransmissionALL_CALL        = 8
)

// Message is one BaseStation CSV row.
type Message struct {
	MessageType      string
	TransmissionType int
	SessionID        int
	AircraftID       int
	HexIdent         string
	FlightID         int
	DateGenerated    time.Time
	TimeGenerated    time.Time
	DateLogged       time.Time
	TimeLogged       time.Time
	Callsign         string
	Altitude         string
	GroundSpeed      string
	Track            string
	Latitude         string
	Longitude        string
	VerticalRate     string
	Squawk           string
	Alert            string
	Emergency        string
	SPI              string
	IsOnGround       string
}

// Writer implements adsb.FrameRecorder, formatting every accepted
// DF17/18 frame as a BaseStation CSV line.
type Writer struct {
	logRotator *logging.LogRotator
	logger     *logrus.Logger
	sessionID  int
	aircraftID int
}

// NewWriter creates a BaseStation writer backed by logRotator.
func NewWriter(logRotator *logging.LogRotator, logger *logrus.Logger) *Writer {
	return &Writer{
		logRotator: logRotator,
		logger:     logger,
		sessionID:  1,
		aircraftID: 1,
	}
}

// RecordFrame converts f to a BaseStation line and appends it to the
// rotator's current log file. Frames of an unrecognized type code
// produce no output (not an error).
func (w *Writer) RecordFrame(f *adsb.Frame) error {
	baseMsg := w.convertFrame(f)
	if baseMsg == nil {
		return nil
	}

	writer, err := w.logRotator.GetWriter()
	if err != nil {
		return fmt.Errorf("failed to get log writer: %w", err)
	}

	if _, err := writer.Write([]byte(w.formatCSV(baseMsg) + "\n")); err != nil {
		return fmt.Errorf("failed to write to log: %w", err)
	}
	return nil
}

func (w *Writer) convertFrame(f *adsb.Frame) *Message {
	df := f.DF()
	if df != 17 && df != 18 {
		return nil
	}

	now := time.Now()
	baseMsg := &Message{
		MessageType:   MSG,
		SessionID:     w.sessionID,
		AircraftID:    w.aircraftID,
		FlightID:      w.aircraftID,
		HexIdent:      f.ICAO().String(),
		DateGenerated: f.Timestamp,
		TimeGenerated: f.Timestamp,
		DateLogged:    now,
		TimeLogged:    now,
	}

	tc := f.TypeCode()
	me := f.ME()

	switch {
	case tc >= 1 && tc <= 4:
		baseMsg.TransmissionType = TransmissionES_ID_CAT
		_, callsign := adsb.DecodeIdentification(me)
		baseMsg.Callsign = callsign

	case tc >= 5 && tc <= 8:
		baseMsg.TransmissionType = TransmissionES_SURFACE

	case (tc >= 9 && tc <= 18) || (tc >= 20 && tc <= 22):
		baseMsg.TransmissionType = TransmissionES_AIRBORNE
		pos := adsb.DecodeAirbornePosition(tc, me)
		baseMsg.Altitude = strconv.Itoa(int(pos.Altitude.ToFeet().Value))

	case tc == 19:
		baseMsg.TransmissionType = TransmissionES_VELOCITY
		if v, ok := adsb.DecodeVelocity(me); ok {
			speed := int(math.Sqrt(v.VxEast*v.VxEast + v.VyNorth*v.VyNorth))
			baseMsg.GroundSpeed = strconv.Itoa(speed)
			baseMsg.VerticalRate = strconv.Itoa(int(v.VerticalRate))
		}

	default:
		return nil
	}

	return baseMsg
}

func (w *Writer) formatCSV(msg *Message) string {
	fields := []string{
		msg.MessageType,
		strconv.Itoa(msg.TransmissionType),
		strconv.Itoa(msg.SessionID),
		strconv.Itoa(msg.AircraftID),
		msg.HexIdent,
		strconv.Itoa(msg.FlightID),
		msg.DateGenerated.Format("2006/01/02"),
		msg.TimeGenerated.Format("15:04:05.000"),
		msg.DateLogged.Format("2006/01/02"),
		msg.TimeLogged.Format("15:04:05.000"),
		msg.Callsign,
		msg.Altitude,
		msg.GroundSpeed,
		msg.Track,
		msg.Latitude,
		msg.Longitude,
		msg.VerticalRate,
		msg.Squawk,
		msg.Alert,
		msg.Emergency,
		msg.SPI,
		msg.IsOnGround,
	}
	return strings.Join(fields, ",")
}
