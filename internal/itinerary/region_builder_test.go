package itinerary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-trip-planner/internal/catalog"
	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/scoring"
	"wine-trip-planner/internal/testutil"
)

func dayIDs(day models.DayPlan) []int64 {
	out := make([]int64, len(day.Wineries))
	for i, w := range day.Wineries {
		out[i] = w.ID
	}
	return out
}

func assertUnique(t *testing.T, itin *models.Itinerary) {
	t.Helper()
	seen := make(map[int64]bool)
	for _, day := range itin.Days {
		for _, w := range day.Wineries {
			assert.False(t, seen[w.ID], "winery %d placed twice", w.ID)
			seen[w.ID] = true
		}
	}
}

func catalogCandidates(t *testing.T, answers models.QuizAnswers) []models.ScoredWinery {
	t.Helper()
	c, err := catalog.Default()
	require.NoError(t, err)
	return scoring.Score(c.Wineries, answers)
}

func TestShapeFor(t *testing.T) {
	tests := []struct {
		duration string
		days     int
	}{
		{"day", 1},
		{"weekend", 2},
		{"week", 5},
		{"flexible", 3},
		{"", 3},
		{"fortnight", 3},
	}
	for _, tt := range tests {
		t.Run(tt.duration, func(t *testing.T) {
			shape := ShapeFor(tt.duration)
			assert.Equal(t, tt.days, shape.Days)
			assert.Equal(t, 2, shape.WineriesPerDay)
		})
	}
}

func TestSortRegions(t *testing.T) {
	got := SortRegions([]string{"Snohomish", "Walla Walla", "Yakima", "Woodinville", "Red Mountain", "Columbia Valley"})
	assert.Equal(t, []string{"Woodinville", "Columbia Valley", "Walla Walla", "Red Mountain", "Snohomish", "Yakima"}, got)
}

func TestBuild_WeekendFromCatalog(t *testing.T) {
	answers := models.QuizAnswers{
		Experience:  "intermediate",
		WineTypes:   []string{"reds"},
		Duration:    "weekend",
		TravelStyle: "boutique",
		Regions:     []string{"walla_walla"},
	}
	candidates := catalogCandidates(t, answers)
	require.GreaterOrEqual(t, len(candidates), 4)

	itin := NewRegionBuilder().Build(candidates, answers)

	require.Len(t, itin.Days, 2)
	assert.Equal(t, 4, itin.TotalWineries())
	assertUnique(t, itin)

	assert.Equal(t, 1, itin.Days[0].Day)
	assert.Equal(t, "Woodinville", itin.Days[0].Region)
	assert.Equal(t, []int64{1, 7}, dayIDs(itin.Days[0]))

	// Columbia Valley has one candidate; the day is topped up with the best remaining entry
	assert.Equal(t, 2, itin.Days[1].Day)
	assert.Equal(t, "Columbia Valley", itin.Days[1].Region)
	assert.Equal(t, []int64{3, 5}, dayIDs(itin.Days[1]))

	for _, day := range itin.Days {
		assert.Equal(t, 75, day.EstimatedDrivingMins)
	}
}

func TestBuild_WeekFromCatalog(t *testing.T) {
	answers := models.QuizAnswers{
		Experience:  "intermediate",
		WineTypes:   []string{"reds"},
		Duration:    "week",
		TravelStyle: "boutique",
		Regions:     []string{"walla_walla"},
	}

	itin := NewRegionBuilder().Build(catalogCandidates(t, answers), answers)

	require.Len(t, itin.Days, 5)
	assertUnique(t, itin)
	assert.Equal(t, []string{"Woodinville", "Columbia Valley", "Walla Walla", "Red Mountain", "Snohomish"},
		[]string{itin.Days[0].Region, itin.Days[1].Region, itin.Days[2].Region, itin.Days[3].Region, itin.Days[4].Region})
	assert.Equal(t, []int64{6, 11}, dayIDs(itin.Days[2]))
	assert.Equal(t, []int64{9, 10}, dayIDs(itin.Days[3]))
	assert.Equal(t, []int64{4, 12}, dayIDs(itin.Days[4]))
}

func TestBuild_EmptyCandidates(t *testing.T) {
	itin := NewRegionBuilder().Build(nil, models.QuizAnswers{Duration: "week"})

	require.NotNil(t, itin)
	assert.Empty(t, itin.Days)
}

func TestBuild_StopsWhenCandidatesRunOut(t *testing.T) {
	candidates := testutil.Scored(
		testutil.NewWinery(1, "Walla Walla"),
		testutil.NewWinery(2, "Woodinville"),
		testutil.NewWinery(3, "Walla Walla"),
	)

	itin := NewRegionBuilder().Build(candidates, models.QuizAnswers{Duration: "week"})

	require.Len(t, itin.Days, 2)
	assertUnique(t, itin)
	assert.Equal(t, "Woodinville", itin.Days[0].Region)
	// Woodinville has a single entry, so the day is filled with the top-ranked remaining one
	assert.Equal(t, []int64{2, 1}, dayIDs(itin.Days[0]))
	assert.Equal(t, "Walla Walla", itin.Days[1].Region)
	assert.Equal(t, []int64{3}, dayIDs(itin.Days[1]))
	assert.Equal(t, 30, itin.Days[1].EstimatedDrivingMins)
}

func TestBuild_TargetRegionRecordedWhenExhausted(t *testing.T) {
	candidates := testutil.Scored(
		testutil.NewWinery(1, "Woodinville"),
		testutil.NewWinery(2, "Woodinville"),
		testutil.NewWinery(3, "Woodinville"),
		testutil.NewWinery(4, "Woodinville"),
		testutil.NewWinery(5, "Red Mountain"),
	)

	itin := NewRegionBuilder().Build(candidates, models.QuizAnswers{Duration: "flexible"})

	require.Len(t, itin.Days, 3)
	assertUnique(t, itin)
	assert.Equal(t, []int64{1, 2}, dayIDs(itin.Days[0]))
	assert.Equal(t, "Red Mountain", itin.Days[1].Region)
	assert.Equal(t, []int64{5, 3}, dayIDs(itin.Days[1]))
	// Cycle returns to Woodinville
	assert.Equal(t, "Woodinville", itin.Days[2].Region)
	assert.Equal(t, []int64{4}, dayIDs(itin.Days[2]))
}

func TestBuild_FillsFromOtherRegionsWhenTargetIsEmpty(t *testing.T) {
	candidates := testutil.Scored(
		testutil.NewWinery(1, "Woodinville"),
		testutil.NewWinery(2, "Woodinville"),
		testutil.NewWinery(3, "Walla Walla"),
		testutil.NewWinery(4, "Woodinville"),
		testutil.NewWinery(5, "Woodinville"),
	)

	itin := NewRegionBuilder().Build(candidates, models.QuizAnswers{Duration: "flexible"})

	require.Len(t, itin.Days, 3)
	assert.Equal(t, []int64{1, 2}, dayIDs(itin.Days[0]))
	assert.Equal(t, []int64{3, 4}, dayIDs(itin.Days[1]))
	// Woodinville again; only one Woodinville entry is left
	assert.Equal(t, "Woodinville", itin.Days[2].Region)
	assert.Equal(t, []int64{5}, dayIDs(itin.Days[2]))
}

func TestBuild_NeverExceedsShape(t *testing.T) {
	var wineries []models.Winery
	regions := []string{"Woodinville", "Walla Walla", "Red Mountain", "Columbia Valley", "Yakima"}
	for i := int64(1); i <= 12; i++ {
		wineries = append(wineries, testutil.NewWinery(i, regions[int(i)%len(regions)]))
	}
	candidates := testutil.Scored(wineries...)

	for _, duration := range []string{"day", "weekend", "week", "flexible", ""} {
		itin := NewRegionBuilder().Build(candidates, models.QuizAnswers{Duration: duration})
		shape := ShapeFor(duration)

		assert.LessOrEqual(t, len(itin.Days), shape.Days, duration)
		assertUnique(t, itin)
		for i, day := range itin.Days {
			assert.Equal(t, i+1, day.Day)
			assert.LessOrEqual(t, len(day.Wineries), shape.WineriesPerDay)
		}
	}
}

func TestBuild_Activities(t *testing.T) {
	candidates := testutil.Scored(testutil.NewWinery(1, "Woodinville"), testutil.NewWinery(2, "Woodinville"))
	answers := models.QuizAnswers{Duration: "day", Activities: []string{"culture", "relaxation", "dining"}}

	itin := NewRegionBuilder().Build(candidates, answers)

	require.Len(t, itin.Days, 1)
	require.Len(t, itin.Days[0].Activities, 2)
	assert.Equal(t, "dining", itin.Days[0].Activities[0].Type)
	assert.Equal(t, "Lunch at recommended restaurant", itin.Days[0].Activities[0].Description)
	assert.Equal(t, "culture", itin.Days[0].Activities[1].Type)
	assert.Equal(t, "Visit local art gallery", itin.Days[0].Activities[1].Description)
}

func TestActivitiesFor_NoInterests(t *testing.T) {
	assert.Empty(t, ActivitiesFor(models.QuizAnswers{}))
	assert.NotNil(t, ActivitiesFor(models.QuizAnswers{}))
}

func TestDrivingMinutes(t *testing.T) {
	assert.Equal(t, 0, DrivingMinutes(0))
	assert.Equal(t, 30, DrivingMinutes(1))
	assert.Equal(t, 75, DrivingMinutes(2))
	assert.Equal(t, 120, DrivingMinutes(3))
}

func TestLegs(t *testing.T) {
	est := testutil.NewMockEstimator()
	a := testutil.NewWinery(1, "Woodinville")
	b := testutil.NewWinery(2, "Walla Walla")
	est.SetEstimate(a.Coords, b.Coords, models.DrivingEstimate{DistanceMiles: 212.9, DrivingMins: 284, IsLongDistance: true})

	itin := &models.Itinerary{Days: []models.DayPlan{
		{Day: 1, Wineries: []models.Winery{a, b}},
		{Day: 2, Wineries: []models.Winery{b}},
	}}

	legs := Legs(est, itin)

	require.Len(t, legs, 2)
	require.Len(t, legs[0].Legs, 1)
	assert.Equal(t, 284, legs[0].Legs[0].Estimate.DrivingMins)
	assert.Equal(t, 1, legs[0].LongDistanceLegs)
	assert.Empty(t, legs[1].Legs)
	assert.Len(t, est.Calls, 1)
}

func TestSummarize(t *testing.T) {
	a := testutil.NewWinery(1, "Woodinville")
	b := testutil.NewWinery(2, "Walla Walla")
	itin := &models.Itinerary{Days: []models.DayPlan{
		{Day: 1, Region: "Woodinville", Wineries: []models.Winery{a}},
		{Day: 2, Region: "Walla Walla", Wineries: []models.Winery{b}},
	}}

	s := Summarize(itin)

	assert.Equal(t, 2, s.Days)
	assert.Equal(t, 2, s.TotalWineries)
	assert.Equal(t, []string{"Woodinville", "Walla Walla"}, s.Regions)
	assert.Equal(t, 40.0, s.TotalFees)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Days)
	assert.NotNil(t, empty.Regions)
}
