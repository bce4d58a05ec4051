package scoring

import (
	"slices"

	"github.com/samber/lo"

	"wine-trip-planner/internal/models"
)

// MatchRestaurants filters dining by travel style. Luxury and budget travellers
// only see their own price level; everyone else sees the full list.
func MatchRestaurants(restaurants []models.Restaurant, answers models.QuizAnswers) []models.Restaurant {
	switch answers.TravelStyle {
	case "luxury", "budget":
		return lo.Filter(restaurants, func(r models.Restaurant, _ int) bool {
			return r.PriceLevel == answers.TravelStyle
		})
	default:
		return slices.Clone(restaurants)
	}
}

// MatchAccommodations filters lodging by travel style
func MatchAccommodations(accommodations []models.Accommodation, answers models.QuizAnswers) []models.Accommodation {
	switch answers.TravelStyle {
	case "luxury", "boutique", "budget":
		return lo.Filter(accommodations, func(a models.Accommodation, _ int) bool {
			return a.PriceLevel == answers.TravelStyle
		})
	default:
		return slices.Clone(accommodations)
	}
}

