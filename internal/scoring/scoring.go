package scoring

import (
	"log"
	"slices"
	"sort"

	"github.com/samber/lo"

	"wine-trip-planner/internal/models"
)

// MaxCandidates caps the ranked list handed to the itinerary builder
const MaxCandidates = 12

// Point weights
const (
	experienceMatchPoints = 3
	wineTypeMatchPoints   = 2
	priceMatchPoints      = 2
	regionMatchPoints     = 1
)

// SurpriseRegion matches any winery region
const SurpriseRegion = "surprise"

// priceLevelsByStyle lists the price levels compatible with each travel style
var priceLevelsByStyle = map[string][]string{
	"luxury":    {"luxury", "premium"},
	"boutique":  {"premium", "moderate"},
	"adventure": {"moderate", "budget"},
	"budget":    {"budget", "moderate"},
}

// regionNames maps quiz region values to catalog region names
var regionNames = map[string]string{
	"columbia_valley": "Columbia Valley",
	"walla_walla":     "Walla Walla",
	"woodinville":     "Woodinville",
	"yakima":          "Yakima",
	"red_mountain":    "Red Mountain",
}

// RegionName returns the catalog region for a quiz region value
func RegionName(value string) (string, bool) {
	name, ok := regionNames[value]
	return name, ok
}

// ScoreWinery computes the match score of a single winery
func ScoreWinery(w models.Winery, answers models.QuizAnswers) int {
	score := 0

	if answers.Experience != "" && slices.Contains(w.SuitedFor, answers.Experience) {
		score += experienceMatchPoints
	}

	for _, wineType := range answers.WineTypes {
		if slices.Contains(w.WineTypes, wineType) {
			score += wineTypeMatchPoints
		}
	}

	if levels, ok := priceLevelsByStyle[answers.TravelStyle]; ok && slices.Contains(levels, w.PriceLevel) {
		score += priceMatchPoints
	}

	for _, region := range answers.Regions {
		if region == SurpriseRegion {
			score += regionMatchPoints
			continue
		}
		if name, ok := regionNames[region]; ok && name == w.Region {
			score += regionMatchPoints
		}
	}

	return score
}

// Score ranks wineries against the answers. Entries scoring zero are dropped,
// ties keep catalog order, and at most MaxCandidates are returned.
func Score(wineries []models.Winery, answers models.QuizAnswers) []models.ScoredWinery {
	scored := lo.FilterMap(wineries, func(w models.Winery, _ int) (models.ScoredWinery, bool) {
		s := ScoreWinery(w, answers)
		return models.ScoredWinery{Winery: w, Score: s}, s > 0
	})

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > MaxCandidates {
		scored = scored[:MaxCandidates]
	}

	log.Printf("[SCORING] Ranked wineries: catalog=%d matched=%d", len(wineries), len(scored))
	return scored
}

// Wineries strips the scores from a ranked list
func Wineries(scored []models.ScoredWinery) []models.Winery {
	return lo.Map(scored, func(s models.ScoredWinery, _ int) models.Winery {
		return s.Winery
	})
}
