package testutil

import (
	"strconv"
	"time"

	"wine-trip-planner/internal/models"
)

// FixedNow is the clock used by tests that stamp profiles or exports
var FixedNow = time.Date(2024, time.June, 15, 10, 30, 0, 0, time.UTC)

// Region coordinates used by the fixtures
var (
	WoodinvilleCoords    = models.Coordinates{Lat: 47.7511, Lng: -122.1173}
	WallaWallaCoords     = models.Coordinates{Lat: 46.0646, Lng: -118.3430}
	ColumbiaValleyCoords = models.Coordinates{Lat: 46.2596, Lng: -119.2751}
	RedMountainCoords    = models.Coordinates{Lat: 46.2808, Lng: -119.4103}
)

// NewWinery builds a minimal winery in the given region
func NewWinery(id int64, region string) models.Winery {
	return models.Winery{
		ID:         id,
		Name:       "Winery " + strconv.FormatInt(id, 10),
		Region:     region,
		Coords:     coordsFor(region),
		SuitedFor:  []string{"intermediate"},
		WineTypes:  []string{"reds"},
		PriceLevel: "moderate",
		TastingFee: 20,
	}
}

// Scored wraps wineries into a ranked list with descending scores
func Scored(wineries ...models.Winery) []models.ScoredWinery {
	out := make([]models.ScoredWinery, len(wineries))
	for i, w := range wineries {
		out[i] = models.ScoredWinery{Winery: w, Score: len(wineries) - i}
	}
	return out
}

func coordsFor(region string) models.Coordinates {
	switch region {
	case "Woodinville":
		return WoodinvilleCoords
	case "Walla Walla":
		return WallaWallaCoords
	case "Columbia Valley":
		return ColumbiaValleyCoords
	case "Red Mountain":
		return RedMountainCoords
	default:
		return models.Coordinates{Lat: 46.6, Lng: -120.5}
	}
}
