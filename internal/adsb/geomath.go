package adsb

import "math"

func sqrtSumSquares(a, b float64) float64 {
	return math.Sqrt(a*a + b*b)
}

// atan2Deg computes heading from an (east, north) vector: degrees
// clockwise from north, per spec.md §6 (heading = atan2(vx, vy)·180/π).
func atan2Deg(vxEast, vyNorth float64) float64 {
	return math.Atan2(vxEast, vyNorth) * 180.0 / math.Pi
}
