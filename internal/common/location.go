package common

import (
	"errors"
	"fmt"
	"math"
)

const earthRadiusKM = 6371.0

var ErrInvalidLatLng = errors.New("invalid latitude or longitude")

type Location struct {
	Lat float64 `json:"latitude" db:"latitude"`
	Lng float64 `json:"longitude" db:"longitude"`
}

func NewLocation(lat, lng float64) Location {
	return Location{Lat: lat, Lng: lng}
}

// DistanceKm returns the great-circle distance between two points in
// kilometers (Haversine).
func DistanceKm(a, b Location) float64 {
	dLat := degreesToRadians(b.Lat - a.Lat)
	dLng := degreesToRadians(b.Lng - a.Lng)

	aLat := degreesToRadians(a.Lat)
	bLat := degreesToRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(aLat)*math.Cos(bLat)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKM * c
}

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180
}

func ValidateLatLng(lat, lng float64) error {
	if lat < -90 || lat > 90 {
		return fmt.Errorf("%w: latitude must be between -90 and 90", ErrInvalidLatLng)
	}
	if lng < -180 || lng > 180 {
		return fmt.Errorf("%w: longitude must be between -180 and 180", ErrInvalidLatLng)
	}
	return nil
}
