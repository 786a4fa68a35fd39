package query

import (
	"strconv"
	"strings"
)

// LatLng is a geographic point.
type LatLng struct {
	Lat float64
	Lng float64
}

// BoundingBox is a rectangle given by two opposite corners.
type BoundingBox struct {
	P1 LatLng
	P2 LatLng
}

// Radius is the aroundRadius parameter: a distance in meters, or All to
// disable the radius limit.
type Radius struct {
	Meters int
	All    bool
}

// RadiusAll removes the radius limit around a point.
func RadiusAll() *Radius {
	return &Radius{All: true}
}

// RadiusMeters limits matches to m meters around a point.
func RadiusMeters(m int) *Radius {
	return &Radius{Meters: m}
}

func (r Radius) String() string {
	if r.All {
		return "all"
	}
	return strconv.Itoa(r.Meters)
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func joinPoints(points ...LatLng) string {
	parts := make([]string, 0, len(points)*2)
	for _, p := range points {
		parts = append(parts, formatCoord(p.Lat), formatCoord(p.Lng))
	}
	return strings.Join(parts, ",")
}

func joinBoxes(boxes []BoundingBox) string {
	points := make([]LatLng, 0, len(boxes)*2)
	for _, b := range boxes {
		points = append(points, b.P1, b.P2)
	}
	return joinPoints(points...)
}
