package itinerary

import (
	"wine-trip-planner/internal/distance"
	"wine-trip-planner/internal/models"
)

// DayLegs pairs a day with the estimated transitions between its stops
type DayLegs struct {
	Day              int          `json:"day"`
	Legs             []models.Leg `json:"legs"`
	LongDistanceLegs int          `json:"long_distance_legs"`
}

// Legs estimates every adjacent transition in each day of the itinerary.
// The result is for display only and never changes the itinerary.
func Legs(est distance.Estimator, itin *models.Itinerary) []DayLegs {
	if itin == nil {
		return []DayLegs{}
	}
	out := make([]DayLegs, 0, len(itin.Days))
	for _, day := range itin.Days {
		legs := distance.Legs(est, day.Wineries)
		long := 0
		for _, leg := range legs {
			if leg.Estimate.IsLongDistance {
				long++
			}
		}
		out = append(out, DayLegs{Day: day.Day, Legs: legs, LongDistanceLegs: long})
	}
	return out
}

// Summary is the headline numbers shown above an itinerary
type Summary struct {
	Days          int      `json:"days"`
	TotalWineries int      `json:"total_wineries"`
	Regions       []string `json:"regions"`
	TotalFees     float64  `json:"total_tasting_fees"`
}

// Summarize computes the headline numbers for an itinerary
func Summarize(itin *models.Itinerary) Summary {
	s := Summary{Regions: []string{}}
	if itin == nil {
		return s
	}
	s.Days = len(itin.Days)
	s.TotalWineries = itin.TotalWineries()
	if regions := itin.Regions(); regions != nil {
		s.Regions = regions
	}
	for _, day := range itin.Days {
		for _, w := range day.Wineries {
			s.TotalFees += w.TastingFee
		}
	}
	return s
}
