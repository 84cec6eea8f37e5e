package spatial

import (
	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

// EarthRadiusMeters is the Earth's mean radius
const EarthRadiusMeters = 6371000.0

// Point is a latitude/longitude pair in degrees
type Point struct {
	Lat float64
	Lon float64
}

func (p Point) latLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.Lat, p.Lon)
}

// HaversineDistance calculates the great-circle distance between two points in meters
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	return angleToMeters(Point{lat1, lon1}.latLng().Distance(Point{lat2, lon2}.latLng()))
}

// PathLength sums the great-circle distance between consecutive points
func PathLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	polyline := make(s2.Polyline, len(points))
	for i, p := range points {
		polyline[i] = s2.PointFromLatLng(p.latLng())
	}
	return angleToMeters(polyline.Length())
}

// WithinRadius reports whether p lies within radiusMeters of center
func WithinRadius(center, p Point, radiusMeters float64) bool {
	return HaversineDistance(center.Lat, center.Lon, p.Lat, p.Lon) <= radiusMeters
}

func angleToMeters(a s1.Angle) float64 {
	return a.Radians() * EarthRadiusMeters
}
