// Package geo holds the pure geospatial and scoring functions used by the
// telemetry aggregator. Nothing here touches I/O.
package geo

import (
	"math"

	"github.com/mmcloughlin/geohash"

	"github.com/Admir-Walker/Fleet-Management-System/internal/domain"
)

// earthDiameterKm is twice the mean Earth radius (6371 km).
const earthDiameterKm = 12742

// GeohashPrecision is the cell size attached to persisted samples (~150 m).
const GeohashPrecision = 7

// DistanceKm returns the great-circle distance between a and b using the
// haversine formula. The haversine term is clamped to [0, 1] so rounding
// noise near antipodal points cannot push asin out of its domain.
func DistanceKm(a, b domain.GeoPoint) float64 {
	if a == b {
		return 0
	}
	const rad = math.Pi / 180
	lat1, lat2 := a.Lat*rad, b.Lat*rad
	dLat := lat2 - lat1
	dLon := (b.Long - a.Long) * rad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon
	h = math.Min(1, math.Max(0, h))

	return earthDiameterKm * math.Asin(math.Sqrt(h))
}

// Geohash encodes p as a geohash cell of GeohashPrecision characters.
func Geohash(p domain.GeoPoint) string {
	return geohash.EncodeWithPrecision(p.Lat, p.Long, GeohashPrecision)
}
