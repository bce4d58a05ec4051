package itinerary

import (
	"log"
	"sort"

	"github.com/samber/lo"

	"wine-trip-planner/internal/models"
)

// Driving model for a day: a base local drive plus time between each extra stop
const (
	baseDrivingMins   = 30
	perStopDrivingMin = 45
)

// regionPriority orders regions by convenience from Seattle; unlisted regions sort last
var regionPriority = map[string]int{
	"Woodinville":     1,
	"Columbia Valley": 2,
	"Walla Walla":     3,
	"Red Mountain":    4,
	"Yakima Valley":   5,
}

const unlistedRegionPriority = 6

type regionBuilder struct{}

// NewRegionBuilder returns the greedy builder that rotates through regions day by day
func NewRegionBuilder() Builder {
	return &regionBuilder{}
}

// Build fills each day from a target region first and tops it up with the best
// remaining candidates. It stops early once every candidate has been placed.
func (b *regionBuilder) Build(candidates []models.ScoredWinery, answers models.QuizAnswers) *models.Itinerary {
	shape := ShapeFor(answers.Duration)
	result := &models.Itinerary{Days: []models.DayPlan{}}

	if len(candidates) == 0 {
		log.Printf("[ITINERARY] No candidates to place: duration=%q", answers.Duration)
		return result
	}

	regions := SortRegions(lo.Uniq(lo.Map(candidates, func(c models.ScoredWinery, _ int) string {
		return c.Region
	})))
	activities := ActivitiesFor(answers)
	placed := make(map[int64]bool, len(candidates))

	for d := 0; d < shape.Days && len(placed) < len(candidates); d++ {
		remaining := lo.Filter(candidates, func(c models.ScoredWinery, _ int) bool {
			return !placed[c.ID]
		})
		byRegion := lo.GroupBy(remaining, func(c models.ScoredWinery) string {
			return c.Region
		})
		target := regions[d%len(regions)]

		var wineries []models.Winery
		for _, c := range byRegion[target] {
			if len(wineries) >= shape.WineriesPerDay {
				break
			}
			wineries = append(wineries, c.Winery)
			placed[c.ID] = true
		}

		for _, c := range remaining {
			if len(wineries) >= shape.WineriesPerDay {
				break
			}
			if placed[c.ID] {
				continue
			}
			wineries = append(wineries, c.Winery)
			placed[c.ID] = true
		}

		result.Days = append(result.Days, models.DayPlan{
			Day:                  d + 1,
			Wineries:             wineries,
			Region:               target,
			Activities:           append([]models.Activity{}, activities...),
			EstimatedDrivingMins: DrivingMinutes(len(wineries)),
		})
	}

	log.Printf("[ITINERARY] Built itinerary: duration=%q days=%d/%d placed=%d candidates=%d",
		answers.Duration, len(result.Days), shape.Days, len(placed), len(candidates))
	return result
}

// SortRegions orders regions by convenience priority, keeping encounter order for ties
func SortRegions(regions []string) []string {
	sorted := append([]string(nil), regions...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return priorityOf(sorted[i]) < priorityOf(sorted[j])
	})
	return sorted
}

func priorityOf(region string) int {
	if p, ok := regionPriority[region]; ok {
		return p
	}
	return unlistedRegionPriority
}

// DrivingMinutes is the coarse per-day driving estimate for a number of stops
func DrivingMinutes(stops int) int {
	if stops <= 0 {
		return 0
	}
	return baseDrivingMins + perStopDrivingMin*(stops-1)
}
