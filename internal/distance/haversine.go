package distance

import (
	"math"

	"wine-trip-planner/internal/models"
)

const (
	// EarthRadiusMiles is the mean earth radius used for great-circle distance
	EarthRadiusMiles = 3959.0
	// AverageSpeedMPH converts straight-line distance into a drive time
	AverageSpeedMPH = 45.0
	// LongDistanceMins is the drive time above which a leg is flagged as long
	LongDistanceMins = 45
)

// Estimator turns a pair of coordinates into a driving estimate
type Estimator interface {
	Estimate(from, to models.Coordinates) models.DrivingEstimate
}

type haversineEstimator struct{}

// NewHaversineEstimator returns the straight-line, constant-speed estimator
func NewHaversineEstimator() Estimator {
	return haversineEstimator{}
}

func (haversineEstimator) Estimate(from, to models.Coordinates) models.DrivingEstimate {
	return Estimate(from, to)
}

// Estimate computes the great-circle distance between two points and a drive
// time at AverageSpeedMPH. Distance is rounded to one decimal, minutes to the
// nearest whole minute.
func Estimate(from, to models.Coordinates) models.DrivingEstimate {
	miles := HaversineMiles(from, to)
	mins := int(math.Round(miles / AverageSpeedMPH * 60))
	return models.DrivingEstimate{
		DistanceMiles:  math.Round(miles*10) / 10,
		DrivingMins:    mins,
		IsLongDistance: mins > LongDistanceMins,
	}
}

// HaversineMiles returns the unrounded great-circle distance in miles
func HaversineMiles(from, to models.Coordinates) float64 {
	lat1 := toRadians(from.Lat)
	lat2 := toRadians(to.Lat)
	dLat := toRadians(to.Lat - from.Lat)
	dLng := toRadians(to.Lng - from.Lng)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusMiles * c
}

// Legs estimates each transition between consecutive stops
func Legs(est Estimator, stops []models.Winery) []models.Leg {
	if len(stops) < 2 {
		return []models.Leg{}
	}
	legs := make([]models.Leg, 0, len(stops)-1)
	for i := 1; i < len(stops); i++ {
		prev, cur := stops[i-1], stops[i]
		legs = append(legs, models.Leg{
			FromID:   prev.ID,
			ToID:     cur.ID,
			Estimate: est.Estimate(prev.Coords, cur.Coords),
		})
	}
	return legs
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
