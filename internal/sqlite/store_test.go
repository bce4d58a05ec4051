package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wine-trip-planner/internal/database"
	"wine-trip-planner/internal/models"
)

func setupTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	store, err := New(path)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store, path
}

func TestNew_InitializesSchema(t *testing.T) {
	store, path := setupTestStore(t)
	ctx := context.Background()

	assert.Equal(t, path, store.GetDBPath())
	require.NoError(t, store.HealthCheck(ctx))

	var version int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT version FROM schema_version").Scan(&version))
	assert.Equal(t, schemaVersion, version)
}

func TestProfiles_SaveAndGet(t *testing.T) {
	store, path := setupTestStore(t)
	ctx := context.Background()

	p := models.NewProfile("default", time.Date(2022, 9, 10, 8, 0, 0, 0, time.UTC))
	p.Preferences = models.QuizAnswers{
		Experience:  "intermediate",
		WineTypes:   []string{"reds", "whites"},
		TravelStyle: "boutique",
		Duration:    "weekend",
	}
	p.Favorites = []int64{6, 1, 6}
	p.TastingNotes[6] = "dark fruit, long finish"
	p.VisitHistory = []int64{1, 7}
	p.Itinerary = &models.Itinerary{Days: []models.DayPlan{
		{Day: 1, Region: "Woodinville", Wineries: []models.Winery{{ID: 1, Name: "Chateau Ste. Michelle"}}, EstimatedDrivingMins: 30},
	}}

	require.NoError(t, store.Profiles().Save(ctx, p))

	got, err := store.Profiles().Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, []int64{6, 1}, got.Favorites)
	assert.Equal(t, []int64{1, 7}, got.VisitHistory)
	assert.Equal(t, map[int64]string{6: "dark fruit, long finish"}, got.TastingNotes)
	assert.Equal(t, p.Preferences, got.Preferences)
	assert.True(t, p.CreatedDate.Equal(got.CreatedDate))
	require.NotNil(t, got.Itinerary)
	assert.Equal(t, "Chateau Ste. Michelle", got.Itinerary.Days[0].Wineries[0].Name)
	assert.False(t, got.UpdatedAt.IsZero())

	// Data survives a reopen
	require.NoError(t, store.Close())
	reopened, err := New(path)
	require.NoError(t, err)
	defer reopened.Close()

	again, err := reopened.Profiles().Get(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, got.Favorites, again.Favorites)
}

func TestProfiles_SaveReplacesChildRows(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	p := models.NewProfile("x", time.Now())
	p.Favorites = []int64{1, 2}
	p.TastingNotes[1] = "crisp"
	require.NoError(t, store.Profiles().Save(ctx, p))

	p.Favorites = []int64{3}
	delete(p.TastingNotes, 1)
	p.Itinerary = nil
	require.NoError(t, store.Profiles().Save(ctx, p))

	got, err := store.Profiles().Get(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, []int64{3}, got.Favorites)
	assert.Empty(t, got.TastingNotes)
	assert.Nil(t, got.Itinerary)
}

func TestProfiles_DeleteCascades(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	p := models.NewProfile("x", time.Now())
	p.Favorites = []int64{4}
	p.TastingNotes[4] = "sweet"
	require.NoError(t, store.Profiles().Save(ctx, p))

	require.NoError(t, store.Profiles().Delete(ctx, "x"))

	_, err := store.Profiles().Get(ctx, "x")
	assert.ErrorIs(t, err, database.ErrNotFound)

	var count int
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM profile_favorites").Scan(&count))
	assert.Zero(t, count)
	require.NoError(t, store.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM tasting_notes").Scan(&count))
	assert.Zero(t, count)

	assert.ErrorIs(t, store.Profiles().Delete(ctx, "x"), database.ErrNotFound)
}

func TestProfiles_List(t *testing.T) {
	store, _ := setupTestStore(t)
	ctx := context.Background()

	ids, err := store.Profiles().List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, store.Profiles().Save(ctx, models.NewProfile("zed", time.Now())))
	require.NoError(t, store.Profiles().Save(ctx, models.NewProfile("amy", time.Now())))

	ids, err = store.Profiles().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"amy", "zed"}, ids)
}

func TestProfiles_SaveRequiresID(t *testing.T) {
	store, _ := setupTestStore(t)
	assert.Error(t, store.Profiles().Save(context.Background(), &models.Profile{}))
}

var _ database.DataStore = (*Store)(nil)
