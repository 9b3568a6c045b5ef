package adsb

import "strings"

// categoryTable maps (typeCode, aircraftType) to a human-readable wake
// vortex / emitter category, per the ADS-B TC1-4 identification format.
var categoryTable = map[[2]uint8]string{
	{1, 0}: "Reserved",
	{2, 1}: "Surface emergency vehicle",
	{2, 3}: "Surface service vehicle",
	{2, 4}: "Ground obstruction",
	{2, 5}: "Ground obstruction",
	{2, 6}: "Ground obstruction",
	{2, 7}: "Ground obstruction",
	{3, 1}: "Glider, sailplane",
	{3, 2}: "Lighter-than-air",
	{3, 3}: "Parachutist, skydiver",
	{3, 4}: "Ultralight, hang-glider, paraglider",
	{3, 5}: "Reserved",
	{3, 6}: "Unmanned aerial vehicle",
	{3, 7}: "Space or transatmospheric vehicle",
	{4, 1}: "Light (less than 7000 kg)",
	{4, 2}: "Medium 1 (between 7000 kg and 34000 kg)",
	{4, 3}: "Medium 2 (between 34000 kg to 136000 kg)",
	{4, 4}: "High vortex aircraft",
	{4, 5}: "Heavy (larger than 136000 kg)",
	{4, 6}: "High performance (>5 g acceleration) and high speed (>400 kt)",
	{4, 7}: "Rotorcraft",
}

// AircraftCategory returns the emitter category description for a
// TC1-4 identification message, or "No category information" /
// "<unknown wake vortex category>" fallbacks.
func AircraftCategory(typeCode, aircraftType uint8) string {
	if aircraftType == 0 {
		return "No category information"
	}
	if desc, ok := categoryTable[[2]uint8{typeCode, aircraftType}]; ok {
		return desc
	}
	return "<unknown wake vortex category>"
}

// DecodeIdentification parses a TC1-4 ME field: 5-bit TC, 3-bit
// aircraft type/category, then 8 six-bit AIS characters. The returned
// callsign is right-trimmed of the charset's '#' sentinel and
// whitespace.
func DecodeIdentification(me []byte) (aircraftType uint8, callsign string) {
	r := newBitReader(me)
	r.readBits(5) // type code, already known to caller
	aircraftType = uint8(r.readBits(3))

	var sb strings.Builder
	for i := 0; i < 8; i++ {
		idx := r.readBits(6)
		sb.WriteByte(AISCharset[idx])
	}

	callsign = strings.TrimRight(sb.String(), "# ")
	callsign = strings.TrimSpace(callsign)
	return aircraftType, callsign
}
