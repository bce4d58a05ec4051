package itinerary

import (
	"wine-trip-planner/internal/models"
)

// WineriesPerDay is the fixed per-day slot target for every trip shape
const WineriesPerDay = 2

// DayShape is the number of days and slots per day planned for a trip duration
type DayShape struct {
	Days           int
	WineriesPerDay int
}

var shapesByDuration = map[string]DayShape{
	"day":      {Days: 1, WineriesPerDay: WineriesPerDay},
	"weekend":  {Days: 2, WineriesPerDay: WineriesPerDay},
	"week":     {Days: 5, WineriesPerDay: WineriesPerDay},
	"flexible": {Days: 3, WineriesPerDay: WineriesPerDay},
}

// ShapeFor maps a duration answer to a day shape. Unknown or empty answers plan as flexible.
func ShapeFor(duration string) DayShape {
	if shape, ok := shapesByDuration[duration]; ok {
		return shape
	}
	return shapesByDuration["flexible"]
}

// Builder packs ranked wineries into a day-by-day itinerary
type Builder interface {
	Build(candidates []models.ScoredWinery, answers models.QuizAnswers) *models.Itinerary
}
