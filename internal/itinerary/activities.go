package itinerary

import (
	"slices"

	"wine-trip-planner/internal/models"
)

var activityCatalog = []models.Activity{
	{Type: "dining", Description: "Lunch at recommended restaurant", Icon: "🍽️"},
	{Type: "nature", Description: "Scenic drive through wine country", Icon: "🏞️"},
	{Type: "culture", Description: "Visit local art gallery", Icon: "🎨"},
}

// ActivitiesFor derives the per-day extras from the interests answer.
// Each interest contributes at most once, in dining, nature, culture order.
func ActivitiesFor(answers models.QuizAnswers) []models.Activity {
	activities := []models.Activity{}
	for _, a := range activityCatalog {
		if slices.Contains(answers.Activities, a.Type) {
			activities = append(activities, a)
		}
	}
	return activities
}
