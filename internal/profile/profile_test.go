package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-trip-planner/internal/catalog"
	"wine-trip-planner/internal/database"
	"wine-trip-planner/internal/models"
	"wine-trip-planner/internal/testutil"
)

type failingRepo struct {
	err error
}

func (r *failingRepo) Get(ctx context.Context, id string) (*models.Profile, error) { return nil, r.err }
func (r *failingRepo) List(ctx context.Context) ([]string, error)                  { return nil, r.err }
func (r *failingRepo) Save(ctx context.Context, p *models.Profile) error          { return r.err }
func (r *failingRepo) Delete(ctx context.Context, id string) error                { return r.err }

type stubRepo struct {
	profile *models.Profile
}

func (r *stubRepo) Get(ctx context.Context, id string) (*models.Profile, error) {
	if r.profile == nil || r.profile.ID != id {
		return nil, database.ErrNotFound
	}
	return r.profile.Clone(), nil
}
func (r *stubRepo) List(ctx context.Context) ([]string, error)         { return nil, nil }
func (r *stubRepo) Save(ctx context.Context, p *models.Profile) error { r.profile = p; return nil }
func (r *stubRepo) Delete(ctx context.Context, id string) error       { r.profile = nil; return nil }

func TestLoadOrDefault_Stored(t *testing.T) {
	stored := models.NewProfile("alice", testutil.FixedNow)
	stored.Favorites = []int64{3}
	repo := &stubRepo{profile: stored}

	p := LoadOrDefault(context.Background(), repo, "alice", testutil.FixedNow)
	assert.Equal(t, []int64{3}, p.Favorites)
}

func TestLoadOrDefault_DegradesOnFailure(t *testing.T) {
	tests := []struct {
		name string
		repo database.ProfileRepository
	}{
		{"missing", &stubRepo{}},
		{"unavailable", &failingRepo{err: errors.New("disk unavailable")}},
		{"nil repo", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := LoadOrDefault(context.Background(), tt.repo, "", testutil.FixedNow)
			require.NotNil(t, p)
			assert.Equal(t, DefaultID, p.ID)
			assert.Empty(t, p.Favorites)
			assert.NotNil(t, p.TastingNotes)
			assert.Equal(t, testutil.FixedNow, p.CreatedDate)
		})
	}
}

func TestLoadForUpdate(t *testing.T) {
	stored := models.NewProfile("alice", testutil.FixedNow)
	stored.Favorites = []int64{1, 2, 3}

	p, err := LoadForUpdate(context.Background(), &stubRepo{profile: stored}, "alice", testutil.FixedNow)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2, 3}, p.Favorites)

	p, err = LoadForUpdate(context.Background(), &stubRepo{}, "", testutil.FixedNow)
	require.NoError(t, err)
	assert.Equal(t, DefaultID, p.ID)
	assert.Empty(t, p.Favorites)

	locked := errors.New("database is locked")
	p, err = LoadForUpdate(context.Background(), &failingRepo{err: locked}, "alice", testutil.FixedNow)
	assert.ErrorIs(t, err, locked)
	assert.Nil(t, p)
}

func TestToggleFavorite(t *testing.T) {
	p := models.NewProfile("x", testutil.FixedNow)

	assert.True(t, ToggleFavorite(p, 5))
	assert.True(t, ToggleFavorite(p, 2))
	assert.Equal(t, []int64{5, 2}, p.Favorites)

	assert.False(t, ToggleFavorite(p, 5))
	assert.Equal(t, []int64{2}, p.Favorites)
}

func TestSetNote(t *testing.T) {
	p := &models.Profile{ID: "x"}

	SetNote(p, 4, "cassis and graphite")
	assert.Equal(t, "cassis and graphite", p.TastingNotes[4])

	SetNote(p, 4, "   ")
	_, ok := p.TastingNotes[4]
	assert.False(t, ok)
}

func TestRecordVisits(t *testing.T) {
	p := models.NewProfile("x", testutil.FixedNow)
	p.VisitHistory = []int64{2}
	itin := &models.Itinerary{Days: []models.DayPlan{
		{Day: 1, Wineries: []models.Winery{{ID: 1}, {ID: 2}}},
		{Day: 2, Wineries: []models.Winery{{ID: 3}}},
	}}

	RecordVisits(p, itin)
	RecordVisits(p, nil)

	assert.Equal(t, []int64{2, 1, 3}, p.VisitHistory)
}

func TestStats(t *testing.T) {
	c, err := catalog.Default()
	require.NoError(t, err)

	p := models.NewProfile("x", testutil.FixedNow)
	p.Favorites = []int64{5, 1, 6, 999}
	p.TastingNotes[5] = "bold"
	p.TastingNotes[1] = ""

	stats := Stats(p, c.Winery)

	assert.Equal(t, 4, stats.FavoriteCount)
	assert.Equal(t, 1, stats.NotesCount)
	assert.Equal(t, []string{"Walla Walla", "Woodinville"}, stats.RegionsExplored)
	assert.Equal(t, 2024, stats.MemberSince)
}

func TestReset(t *testing.T) {
	p := models.NewProfile("x", testutil.FixedNow)
	p.Favorites = []int64{1}

	cleared := Reset(p, testutil.FixedNow.AddDate(1, 0, 0))

	assert.Equal(t, "x", cleared.ID)
	assert.Empty(t, cleared.Favorites)
	assert.Equal(t, 2025, cleared.CreatedDate.Year())
}
